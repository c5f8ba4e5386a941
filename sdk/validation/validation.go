// Package validation provides small input validation helpers shared by the
// bridge layer.
package validation

import (
	"net/mail"
	"strings"
)

// IsBlank reports whether s is empty or only whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsEmail reports whether s parses as an RFC 5322 address. Bare addresses
// only; display names ("Alice <a@x.com>") are rejected.
func IsEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s
}

func StringPtr(s string) *string {
	return &s
}

// StringPtrValue returns the string value or an empty string if nil.
func StringPtrValue(s *string) string {
	if s != nil {
		return *s
	}
	return ""
}
