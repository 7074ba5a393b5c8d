package services

import (
	"fmt"

	"github.com/oka8489/migiude-ai-v3/internal/data/repos/projects"
	"github.com/oka8489/migiude-ai-v3/internal/normalization"
	"github.com/oka8489/migiude-ai-v3/internal/platform/dbctx"
	"github.com/oka8489/migiude-ai-v3/internal/platform/logger"
)

// CodeAllocator derives a fiscal-year prefix from a project name and assigns
// the next sequence number for that prefix.
//
// Allocation is NOT idempotent under retry: the sequence is count+1 over
// already-saved rows, so a second call after a successful save yields the
// next number. Allocate exactly once per successful save, and never
// re-allocate when retrying a failed save. Two concurrent allocations for
// the same prefix can also hand out the same sequence (count-then-insert
// race); callers needing strictness must serialize per prefix externally.
type CodeAllocator interface {
	Allocate(dbc dbctx.Context, projectName string) (string, error)
}

type codeAllocator struct {
	projects projects.ProjectRepo
	log      *logger.Logger
}

func NewCodeAllocator(repo projects.ProjectRepo, baseLog *logger.Logger) CodeAllocator {
	return &codeAllocator{
		projects: repo,
		log:      baseLog.With("service", "CodeAllocator"),
	}
}

func (a *codeAllocator) Allocate(dbc dbctx.Context, projectName string) (string, error) {
	prefix := normalization.YearPrefix(projectName)
	count, err := a.projects.CountByCodePrefix(dbc, prefix)
	if err != nil {
		return "", fmt.Errorf("allocate project code: %w", err)
	}
	code := normalization.FormatProjectCode(prefix, int(count)+1)
	a.log.Debug("allocated project code", "prefix", prefix, "code", code)
	return code, nil
}
