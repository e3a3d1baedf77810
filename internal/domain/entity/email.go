package entity

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeEmail returns the canonical form of an email address.
// The address is trimmed and the domain part (after the last "@") is
// NFKC-normalized and lower-cased. The local part is kept byte for byte.
// An address without "@" is returned trimmed and otherwise unchanged.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)

	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}

	return email[:at] + "@" + strings.ToLower(norm.NFKC.String(email[at+1:]))
}
