package payment

import (
	"strings"
	"unicode"
)

// CountryCode is prefixed onto local phone numbers before they are sent
// to the payment processor.
const CountryCode = "+229"

const (
	nameErrorText  = "Le nom doit contenir au moins 3 caractères"
	phoneErrorText = "Le numéro doit contenir 10 chiffres"
)

// Form is the mobile-money form as typed by the user. Validation only
// surfaces after the first submit attempt, then tracks every keystroke.
type Form struct {
	FullName    string
	PhoneNumber string
}

// NameValid requires at least 3 non-space characters after trimming.
func (f Form) NameValid() bool {
	n := 0
	for _, r := range strings.TrimSpace(f.FullName) {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n >= 3
}

// PhoneValid requires exactly 10 digits once spaces are stripped.
func (f Form) PhoneValid() bool {
	digits := strings.ReplaceAll(f.PhoneNumber, " ", "")
	if len(digits) != 10 {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (f Form) Valid() bool {
	return f.NameValid() && f.PhoneValid()
}

// NormalizedPhone strips spaces and prefixes the country code when the
// number is not already international.
func (f Form) NormalizedPhone() string {
	digits := strings.ReplaceAll(f.PhoneNumber, " ", "")
	if strings.HasPrefix(digits, "+") {
		return digits
	}
	return CountryCode + digits
}

// SplitName cuts the full name on the first whitespace run: the first
// token is the firstname, the remainder the lastname. A single-token name
// yields an empty lastname.
func (f Form) SplitName() (firstname, lastname string) {
	fields := strings.Fields(f.FullName)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}
