package normalization

import "testing"

func TestCityForStorage_LowerCasesEverything(t *testing.T) {
	cases := map[string]string{
		"NEW York": "new york",
		"new york": "new york",
		"New YORK": "new york",
		"Lisbon":   "lisbon",
	}
	for input, want := range cases {
		if got := CityForStorage(input); got != want {
			t.Fatalf("CityForStorage(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestCityForDisplay_TitleCasesEveryWord(t *testing.T) {
	cases := map[string]string{
		"new york":       "New York",
		"rio de janeiro": "Rio De Janeiro",
		"lisbon":         "Lisbon",
	}
	for stored, want := range cases {
		if got := CityForDisplay(stored); got != want {
			t.Fatalf("CityForDisplay(%q) = %q, want %q", stored, got, want)
		}
	}
}

func TestCityForDisplay_EmptyInput(t *testing.T) {
	if got := CityForDisplay(""); got != "" {
		t.Fatalf("CityForDisplay(\"\") = %q, want empty", got)
	}
}

func TestCityRoundTrip_SameResultRegardlessOfInputCasing(t *testing.T) {
	for _, input := range []string{"NEW York", "new york", "New YORK", "nEw YoRk"} {
		if got := CityForDisplay(CityForStorage(input)); got != "New York" {
			t.Fatalf("round trip of %q = %q, want %q", input, got, "New York")
		}
	}
}

func TestCityNormalization_Idempotent(t *testing.T) {
	stored := CityForStorage("SãO PAULO")
	if again := CityForStorage(stored); again != stored {
		t.Fatalf("storage normalization not idempotent: %q vs %q", stored, again)
	}
	display := CityForDisplay(stored)
	if again := CityForDisplay(display); again != display {
		t.Fatalf("display normalization not idempotent: %q vs %q", display, again)
	}
}

func TestPriceForDisplay_TwoDecimalsNoSeparators(t *testing.T) {
	cases := []struct {
		value float64
		want  string
	}{
		{1000, "1000.00"},
		{299999.5, "299999.50"},
		{300000.01, "300000.01"},
		{0, "0.00"},
		{1234567.891, "1234567.89"},
	}
	for _, tc := range cases {
		if got := PriceForDisplay(tc.value); got != tc.want {
			t.Fatalf("PriceForDisplay(%v) = %q, want %q", tc.value, got, tc.want)
		}
	}
}
