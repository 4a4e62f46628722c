// Package price derives display prices from raw catalog price text and
// promotional badges. Every price parse in the application goes through here.
package price

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	hundred     = decimal.NewFromInt(100)
	digitsRegex = regexp.MustCompile(`\d+`)
)

// Parse strips everything but digits and '.', then reads the longest numeric
// prefix. Empty or non-numeric input yields zero.
func Parse(raw string) decimal.Decimal {
	s := clean(raw)
	if s == "" || s == "." {
		return decimal.Zero
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

func clean(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	s := b.String()
	// "1.2.3" reads as 1.2
	if i := strings.IndexByte(s, '.'); i >= 0 {
		if j := strings.IndexByte(s[i+1:], '.'); j >= 0 {
			s = s[:i+1+j]
		}
	}
	return s
}

// DiscountPercent returns the first run of digits in a discount badge text,
// or zero when the badge is not a discount or carries no digits.
func DiscountPercent(badge *Badge) decimal.Decimal {
	if badge == nil || badge.Type != BadgeDiscount {
		return decimal.Zero
	}
	m := digitsRegex.FindString(badge.Text)
	if m == "" {
		return decimal.Zero
	}
	pct, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Zero
	}
	return pct
}

// ResolveDecimal applies the badge to the parsed raw price and rounds to cents.
func ResolveDecimal(raw string, badge *Badge) decimal.Decimal {
	p := Parse(raw)
	if pct := DiscountPercent(badge); pct.IsPositive() {
		p = p.Sub(p.Mul(pct).Div(hundred))
		if p.IsNegative() {
			p = decimal.Zero
		}
	}
	return p.Round(2)
}

// Resolve is ResolveDecimal as a float64.
func Resolve(raw string, badge *Badge) float64 {
	return ResolveDecimal(raw, badge).InexactFloat64()
}

// Round rounds v to two decimal places.
func Round(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Format renders v with exactly two decimals.
func Format(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
