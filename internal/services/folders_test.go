package services

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/oka8489/migiude-ai-v3/internal/domain"
)

func TestSanitizeFolderName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"道路改良工事", "道路改良工事"},
		{"国道10号(日田/玖珠)工事", "国道10号(日田_玖珠)工事"},
		{`a\b:c*d?e"f<g>h|i`, "a_b_c_d_e_f_g_h_i"},
		{"  前後空白  ", "前後空白"},
	}
	for _, tt := range tests {
		if got := sanitizeFolderName(tt.in); got != tt.want {
			t.Fatalf("sanitizeFolderName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestProjectFolderPath(t *testing.T) {
	t.Setenv("DATA_DIR", filepath.Join("tmp", "data"))

	past := projectFolderPath(domain.ProjectTypePast, "R4-01", "道路改良工事")
	if !strings.Contains(past, filepath.Join("tmp", "data", "過去工事")) {
		t.Fatalf("past folder in wrong tree: %q", past)
	}
	if filepath.Base(past) != "R4-01_道路改良工事" {
		t.Fatalf("folder name = %q", filepath.Base(past))
	}

	current := projectFolderPath(domain.ProjectTypeCurrent, "R5-02", "舗装補修工事")
	if !strings.Contains(current, "新規工事") {
		t.Fatalf("current folder in wrong tree: %q", current)
	}

	unnamed := projectFolderPath(domain.ProjectTypePast, "XX-01", "  ")
	if filepath.Base(unnamed) != "XX-01_無題" {
		t.Fatalf("unnamed folder = %q", filepath.Base(unnamed))
	}
}
