package normalization

import (
	"reflect"
	"testing"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []string
	}{
		{"nil", nil, nil},
		{"comma string", "舗装工,土工", []string{"舗装工", "土工"}},
		{"full-width comma", "舗装工、土工、排水構造物工", []string{"舗装工", "土工", "排水構造物工"}},
		{"newlines", "舗装工\n土工\n", []string{"舗装工", "土工"}},
		{"mixed delims and spaces", " 舗装工 、 土工 ", []string{"舗装工", "土工"}},
		{"native string slice", []string{"a", " b ", ""}, []string{"a", "b"}},
		{"any slice", []any{"a", nil, "b"}, []string{"a", "b"}},
		{"empty string", "   ", nil},
		{"single value", "舗装工", []string{"舗装工"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitList(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("SplitList(%#v) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}
