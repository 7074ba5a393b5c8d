package services

import (
	"context"
	"testing"

	"github.com/oka8489/migiude-ai-v3/internal/data/repos/projects"
	"github.com/oka8489/migiude-ai-v3/internal/data/repos/testutil"
	types "github.com/oka8489/migiude-ai-v3/internal/domain"
	"github.com/oka8489/migiude-ai-v3/internal/platform/dbctx"
)

func testDBC(t *testing.T) dbctx.Context {
	t.Helper()
	tx := testutil.Tx(t, testutil.DB(t))
	return dbctx.Context{Ctx: context.Background(), Tx: tx}
}

func TestCodeAllocatorSequencePerPrefix(t *testing.T) {
	dbc := testDBC(t)
	repo := projects.NewProjectRepo(testutil.DB(t), testutil.Logger(t))
	allocator := NewCodeAllocator(repo, testutil.Logger(t))

	code, err := allocator.Allocate(dbc, "令和4年度 道路改良工事")
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if code != "R4-01" {
		t.Fatalf("first code = %q, want R4-01", code)
	}

	// Nothing saved yet, so the same number comes back.
	again, err := allocator.Allocate(dbc, "令和4年度 舗装補修工事")
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if again != "R4-01" {
		t.Fatalf("unsaved re-allocation = %q, want R4-01", again)
	}

	if _, err := repo.Create(dbc, &types.Project{ProjectCode: code}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	next, err := allocator.Allocate(dbc, "令和4年度 舗装補修工事")
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if next != "R4-02" {
		t.Fatalf("code after save = %q, want R4-02", next)
	}

	// A different era prefix keeps its own sequence.
	other, err := allocator.Allocate(dbc, "平成29年度 河川維持工事")
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if other != "H29-01" {
		t.Fatalf("heisei code = %q, want H29-01", other)
	}
}

func TestCodeAllocatorFallbackPrefix(t *testing.T) {
	dbc := testDBC(t)
	repo := projects.NewProjectRepo(testutil.DB(t), testutil.Logger(t))
	allocator := NewCodeAllocator(repo, testutil.Logger(t))

	code, err := allocator.Allocate(dbc, "国道10号 舗装補修工事")
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if code != "XX-01" {
		t.Fatalf("fallback code = %q, want XX-01", code)
	}
}
