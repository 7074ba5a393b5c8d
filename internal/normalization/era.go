package normalization

import (
	"fmt"
	"regexp"

	"golang.org/x/text/width"
)

// Project names carry the fiscal era in forms like 令和４年度 or 平成29年度,
// with full-width and half-width digits mixed freely.
var (
	reiwaPrefixRe  = regexp.MustCompile(`令和([０-９0-9]+)年度`)
	heiseiPrefixRe = regexp.MustCompile(`平成([０-９0-9]+)年度`)
)

const fallbackYearPrefix = "XX"

// YearPrefix derives the fiscal-year code prefix from a project name:
// 令和N年度 -> "RN", 平成N年度 -> "HN", otherwise "XX".
func YearPrefix(projectName string) string {
	if m := reiwaPrefixRe.FindStringSubmatch(projectName); m != nil {
		return "R" + width.Narrow.String(m[1])
	}
	if m := heiseiPrefixRe.FindStringSubmatch(projectName); m != nil {
		return "H" + width.Narrow.String(m[1])
	}
	return fallbackYearPrefix
}

// FormatProjectCode joins a year prefix and a sequence number into the
// canonical project-code form, e.g. ("R4", 3) -> "R4-03".
func FormatProjectCode(prefix string, seq int) string {
	return fmt.Sprintf("%s-%02d", prefix, seq)
}
