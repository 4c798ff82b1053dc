package utils

import (
	"regexp"
	"strings"
)

var nonDigits = regexp.MustCompile(`\D`)

// FormatPhoneNumber strips non-digit characters and prefixes the Mauritanian
// country code (+222) when missing.
func FormatPhoneNumber(phoneNumber string) string {
	digits := nonDigits.ReplaceAllString(phoneNumber, "")

	if len(digits) > 0 && !strings.HasPrefix(digits, "222") {
		digits = strings.TrimLeft(digits, "0")
		digits = "222" + digits
	}

	return digits
}

// ValidatePhoneNumber checks for a valid local Mauritanian number: exactly
// 8 digits starting with 2, 3 or 4.
func ValidatePhoneNumber(phoneNumber string) bool {
	cleaned := nonDigits.ReplaceAllString(phoneNumber, "")

	if len(cleaned) != 8 {
		return false
	}

	switch cleaned[0] {
	case '2', '3', '4':
		return true
	}
	return false
}

// NormalizePhoneNumber normalizes a phone number for database storage.
func NormalizePhoneNumber(phoneNumber string) string {
	return FormatPhoneNumber(phoneNumber)
}

// DisplayPhoneNumber formats a stored number as +222 XX XX XX XX.
func DisplayPhoneNumber(phoneNumber string) string {
	formatted := FormatPhoneNumber(phoneNumber)
	if len(formatted) == 11 && strings.HasPrefix(formatted, "222") {
		return "+" + formatted[:3] + " " + formatted[3:5] + " " + formatted[5:7] + " " + formatted[7:9] + " " + formatted[9:11]
	}
	return phoneNumber
}
