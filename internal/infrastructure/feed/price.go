package feed

import (
	"regexp"
	"strconv"
	"strings"
)

// CurrencySymbol prefixes every display price in the feed.
const CurrencySymbol = "₦"

// variantPattern matches "<variant name> – <₦price>" entries of the variant blob.
var variantPattern = regexp.MustCompile(`^(.+?)\s*–\s*(₦\s*[\d,]+(?:\.\d+)?)\s*$`)

// ParsePrice keeps only the digits of s and parses them as a base-10 integer.
// Empty or digitless input yields 0, as does a value too large for int.
func ParsePrice(s string) int {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	v, err := strconv.Atoi(b.String())
	if err != nil {
		return 0
	}
	return v
}

// FormatPrice renders a whole naira amount with thousands separators, e.g. ₦52,752.
func FormatPrice(v int) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	digits := strconv.Itoa(v)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + CurrencySymbol + b.String()
}
