package normalization

import "testing"

func TestResolveFiscalYear(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"april boundary", "2024/04/01", "2024年度"},
		{"march rolls back", "2024/03/31", "2023年度"},
		{"hyphen separator", "2023-10-15", "2023年度"},
		{"january", "2024-01-05", "2023年度"},
		{"reiwa era", "令和6年4月1日", "2024年度"},
		{"heisei era", "平成29年10月", "2017年度"},
		{"unparseable", "不明", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveFiscalYear(tt.in); got != tt.want {
				t.Fatalf("ResolveFiscalYear(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
