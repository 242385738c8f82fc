package utils

import (
	"errors"
	"math"
	"strings"
)

// ErrInvalidPrice is returned when a submitted price is not a non-negative
// decimal with at most two fractional digits.
var ErrInvalidPrice = errors.New("invalid price")

// ParsePriceCents converts a decimal price string like "49.99" into cents.
// Parsing is done digit by digit rather than through float64 so that
// "0.10" is exactly 10 cents.  Negative values, more than two decimals,
// and anything non-numeric are rejected with ErrInvalidPrice.
func ParsePriceCents(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return 0, ErrInvalidPrice
	}
	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" && frac == "" {
		return 0, ErrInvalidPrice
	}
	if len(frac) > 2 {
		return 0, ErrInvalidPrice
	}
	// Guard every accumulation step so a pathologically long digit string
	// is rejected instead of wrapping around uint64.
	const maxBeforeDigit = (math.MaxUint64 - 9) / 10
	const maxWhole = (math.MaxUint64 - 99) / 100
	var cents uint64
	for i := 0; i < len(whole); i++ {
		ch := whole[i]
		if ch < '0' || ch > '9' {
			return 0, ErrInvalidPrice
		}
		if cents > maxBeforeDigit {
			return 0, ErrInvalidPrice
		}
		cents = cents*10 + uint64(ch-'0')
	}
	if cents > maxWhole {
		return 0, ErrInvalidPrice
	}
	cents *= 100
	mul := uint64(10)
	for i := 0; i < len(frac); i++ {
		ch := frac[i]
		if ch < '0' || ch > '9' {
			return 0, ErrInvalidPrice
		}
		cents += uint64(ch-'0') * mul
		mul /= 10
	}
	return cents, nil
}

// FormatPriceCents renders cents back into the "12.34" form used in API
// responses.
func FormatPriceCents(cents uint64) string {
	var b strings.Builder
	whole := cents / 100
	frac := cents % 100
	writeUint(&b, whole)
	b.WriteByte('.')
	b.WriteByte(byte('0' + frac/10))
	b.WriteByte(byte('0' + frac%10))
	return b.String()
}

func writeUint(b *strings.Builder, n uint64) {
	if n >= 10 {
		writeUint(b, n/10)
	}
	b.WriteByte(byte('0' + n%10))
}
