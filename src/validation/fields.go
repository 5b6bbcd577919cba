package validation

import (
	"regexp"
	"strings"
)

var (
	// \p{Z} covers the Unicode spaces (NBSP, em space) that \s leaves out
	emailPattern = regexp.MustCompile(`^[^\s\p{Z}@]+@[^\s\p{Z}@]+\.[^\s\p{Z}@]+$`)
	phonePattern = regexp.MustCompile(`^[+]?[(]?[0-9]{1,4}[)]?[-\s\p{Z}./0-9]{7,15}$`)
)

// ValidName accepts any name longer than one character after trimming
func ValidName(name string) bool {
	return len([]rune(strings.TrimSpace(name))) > 1
}

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidPhone accepts an optional +, an optional bracketed prefix and 7 to 15 digits or separators
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// ContactValid is the gate of the contact step: name, email and phone must all be valid
func ContactValid(name, email, phone string) bool {
	return ValidName(name) && ValidEmail(email) && ValidPhone(phone)
}
