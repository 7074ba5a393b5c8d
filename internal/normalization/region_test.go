package normalization

import (
	"reflect"
	"testing"
)

func TestPrefecture(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"大分県日田市", "大分県"},
		{"北海道札幌市", "北海道"},
		{"東京都千代田区", "東京都"},
		{"京都府京都市", "京都府"},
		{"神奈川県横浜市", "神奈川県"},
		{"日田市内", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Prefecture(tt.in); got != tt.want {
			t.Fatalf("Prefecture(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitRegion(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"pref and city", "大分県日田市", []string{"大分県", "日田市"}},
		{"greedy city capture", "福岡県北九州市小倉北区", []string{"福岡県", "北九州市小倉北区"}},
		{"ward after to", "東京都千代田区", []string{"東京都", "千代田区"}},
		{"pref only", "大分県", []string{"大分県"}},
		{"bare city", "日田市", nil},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitRegion(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("SplitRegion(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}
