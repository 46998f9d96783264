package csvimport

import (
	"strings"

	"github.com/shopspring/decimal"
)

// currencyStripper removes common currency symbols and non-breaking spaces
// before numeric normalization.
var currencyStripper = strings.NewReplacer("€", "", "$", "", "£", "", "¥", "", " ", "")

// ParseAmount converts a raw cell value into an exact signed decimal.
// Blank input and anything that survives normalization without a parseable
// number degrade to zero; amount parsing never fails hard.
//
// Separator handling: when both ',' and '.' are present, whichever occurs
// later is the decimal separator and the other is stripped as a thousands
// separator. A lone ',' is treated as the decimal separator.
func ParseAmount(raw string) decimal.Decimal {
	v := strings.TrimSpace(raw)
	if v == "" {
		return decimal.Zero
	}

	v = strings.TrimSpace(currencyStripper.Replace(v))

	hasComma := strings.Contains(v, ",")
	hasDot := strings.Contains(v, ".")
	switch {
	case hasComma && hasDot:
		if strings.LastIndex(v, ".") > strings.LastIndex(v, ",") {
			v = strings.ReplaceAll(v, ",", "")
		} else {
			v = strings.ReplaceAll(v, ".", "")
			v = strings.ReplaceAll(v, ",", ".")
		}
	case hasComma:
		v = strings.ReplaceAll(v, ",", ".")
	}

	// keep digits, decimal point and sign only
	v = strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' || r == '.' || r == '-' {
			return r
		}
		return -1
	}, v)

	if v == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero
	}
	return d
}
