package handler

import (
	"testing"

	"github.com/sellerapp/storefront-api/internal/model"
)

func TestCollapseSpaces(t *testing.T) {
	cases := []struct{ in, want string }{
		{"  My   Shop  ", "My Shop"},
		{"one", "one"},
		{"a\tb\nc", "a b c"},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := collapseSpaces(tc.in); got != tc.want {
			t.Errorf("collapseSpaces(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsPIN(t *testing.T) {
	valid := []string{"0000", "1234", "9999"}
	for _, s := range valid {
		if !isPIN(s) {
			t.Errorf("isPIN(%q) = false, want true", s)
		}
	}
	invalid := []string{"", "123", "12345", "12a4", "12 4", "١٢٣٤"}
	for _, s := range invalid {
		if isPIN(s) {
			t.Errorf("isPIN(%q) = true, want false", s)
		}
	}
}

func TestToProductView(t *testing.T) {
	v := toProductView(model.Product{ID: 7, Name: "Mug", PriceCents: 1250})
	if v.Price != "12.50" {
		t.Errorf("Price = %q, want 12.50", v.Price)
	}
	if v.Images == nil {
		t.Error("Images must serialize as [], not null")
	}
}
