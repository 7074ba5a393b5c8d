package normalization

import (
	"regexp"
	"strings"
)

var (
	prefectureRe = regexp.MustCompile(`(北海道|.{2,3}[都府県])`)
	cityRe       = regexp.MustCompile(`[都府県]([^、,，\s]*(?:市|区|町|村|郡))`)
)

// Prefecture extracts the prefecture-level token from a free-text address.
// Returns "" when the address has no recognizable prefecture.
func Prefecture(location string) string {
	if location == "" {
		return ""
	}
	if m := prefectureRe.FindStringSubmatch(location); m != nil {
		return m[1]
	}
	return ""
}

// SplitRegion decomposes an address into separate region tokens, coarse to
// fine: 大分県日田市 -> ["大分県", "日田市"]. The city token is only taken when
// it follows a prefecture suffix, so a bare city name yields nothing. Never
// fails on unparseable input; the result is simply empty.
func SplitRegion(location string) []string {
	loc := strings.TrimSpace(location)
	if loc == "" {
		return nil
	}

	var parts []string
	pref := ""
	if m := prefectureRe.FindStringSubmatch(loc); m != nil {
		pref = m[1]
		parts = append(parts, pref)
	}

	if m := cityRe.FindStringSubmatch(loc); m != nil {
		city := strings.TrimSpace(m[1])
		if city != "" && city != pref {
			parts = append(parts, city)
		}
	}

	return parts
}
