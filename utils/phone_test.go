package utils

import "testing"

func TestFormatPhoneNumber(t *testing.T) {
	cases := map[string]string{
		"31234567":      "22231234567",
		"+222 31234567": "22231234567",
		"03123 45 67":   "22231234567",
		"22231234567":   "22231234567",
		"":              "",
	}
	for input, want := range cases {
		if got := FormatPhoneNumber(input); got != want {
			t.Errorf("FormatPhoneNumber(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestValidatePhoneNumber(t *testing.T) {
	valid := []string{"21234567", "31234567", "41234567", "3123 45 67"}
	for _, p := range valid {
		if !ValidatePhoneNumber(p) {
			t.Errorf("ValidatePhoneNumber(%q) = false, want true", p)
		}
	}

	invalid := []string{"51234567", "3123456", "312345678", "", "abcdefgh"}
	for _, p := range invalid {
		if ValidatePhoneNumber(p) {
			t.Errorf("ValidatePhoneNumber(%q) = true, want false", p)
		}
	}
}

func TestDisplayPhoneNumber(t *testing.T) {
	if got := DisplayPhoneNumber("22231234567"); got != "+222 31 23 45 67" {
		t.Errorf("DisplayPhoneNumber = %q", got)
	}
	// Numbers that don't fit the pattern come back untouched
	if got := DisplayPhoneNumber("12345"); got != "12345" {
		t.Errorf("DisplayPhoneNumber short = %q", got)
	}
}
