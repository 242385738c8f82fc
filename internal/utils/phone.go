package utils

import "strings"

// DigitsOnly strips every non-digit rune from a phone number.  Both
// account phones and store contact phones are normalized through this
// before validation or storage, so "+1 (555) 000-0000" and "15550000000"
// refer to the same number.
func DigitsOnly(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// WhatsAppLink builds the messaging deep link customers use to contact a
// seller.  The number is reduced to digits first; an empty number yields
// an empty link.
func WhatsAppLink(phone string) string {
	digits := DigitsOnly(phone)
	if digits == "" {
		return ""
	}
	return "https://wa.me/" + digits
}
