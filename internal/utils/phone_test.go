package utils

import "testing"

func TestDigitsOnly(t *testing.T) {
	cases := []struct{ in, want string }{
		{"+1 (555) 000-0000", "15550000000"},
		{"15550000000", "15550000000"},
		{"no digits", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := DigitsOnly(tc.in); got != tc.want {
			t.Errorf("DigitsOnly(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestWhatsAppLink(t *testing.T) {
	if got := WhatsAppLink("+1 (555) 000-0000"); got != "https://wa.me/15550000000" {
		t.Errorf("WhatsAppLink = %q", got)
	}
	if got := WhatsAppLink("n/a"); got != "" {
		t.Errorf("WhatsAppLink on empty digits = %q, want empty", got)
	}
}
