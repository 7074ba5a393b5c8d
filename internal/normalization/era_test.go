package normalization

import "testing"

func TestYearPrefix(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"reiwa half-width", "令和4年度 道路改良工事", "R4"},
		{"reiwa full-width", "令和４年度 舗装補修工事", "R4"},
		{"reiwa two digits", "令和10年度 橋梁補修工事", "R10"},
		{"heisei", "平成29年度 河川維持工事", "H29"},
		{"heisei full-width", "平成３１年度 トンネル工事", "H31"},
		{"era mid-name", "一般国道 令和5年度 交安工事", "R5"},
		{"no era", "国道10号 舗装補修工事", "XX"},
		{"era without nendo", "令和4年 5月発注", "XX"},
		{"empty", "", "XX"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := YearPrefix(tt.in); got != tt.want {
				t.Fatalf("YearPrefix(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatProjectCode(t *testing.T) {
	tests := []struct {
		prefix string
		seq    int
		want   string
	}{
		{"R4", 1, "R4-01"},
		{"R4", 12, "R4-12"},
		{"H29", 3, "H29-03"},
		{"XX", 100, "XX-100"},
	}
	for _, tt := range tests {
		if got := FormatProjectCode(tt.prefix, tt.seq); got != tt.want {
			t.Fatalf("FormatProjectCode(%q, %d) = %q, want %q", tt.prefix, tt.seq, got, tt.want)
		}
	}
}
