package normalization

import (
	"fmt"
	"regexp"
	"strconv"
)

// Japanese fiscal years start in April; era years convert with a fixed
// calendar offset (令和1 = 2019, 平成1 = 1989).
var (
	numericYearMonthRe = regexp.MustCompile(`(\d{4})[/-](\d{1,2})`)
	reiwaYearRe        = regexp.MustCompile(`令和(\d+)年`)
	heiseiYearRe       = regexp.MustCompile(`平成(\d+)年`)
)

const (
	reiwaOffset  = 2018
	heiseiOffset = 1988
)

// ResolveFiscalYear maps a date string to its fiscal-year label, e.g.
// "2024-05-01" -> "2024年度" and "2024-02-01" -> "2023年度". Era-named dates
// (令和6年4月 etc.) convert via the fixed offsets. Unparseable input yields "".
func ResolveFiscalYear(dateStr string) string {
	if dateStr == "" {
		return ""
	}

	if m := numericYearMonthRe.FindStringSubmatch(dateStr); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if month < 4 {
			year--
		}
		return fmt.Sprintf("%d年度", year)
	}

	if m := reiwaYearRe.FindStringSubmatch(dateStr); m != nil {
		n, _ := strconv.Atoi(m[1])
		return fmt.Sprintf("%d年度", reiwaOffset+n)
	}

	if m := heiseiYearRe.FindStringSubmatch(dateStr); m != nil {
		n, _ := strconv.Atoi(m[1])
		return fmt.Sprintf("%d年度", heiseiOffset+n)
	}

	return ""
}
