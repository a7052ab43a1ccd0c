package password

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// blacklist entries are stored lowercase.
var blacklist = map[string]struct{}{
	"password":    {},
	"123456":      {},
	"qwerty":      {},
	"admin":       {},
	"password123": {},
}

// IsBlacklisted reports whether pwd is a known common password, ignoring case.
func IsBlacklisted(pwd string) bool {
	// Plain lowercasing, not folding: "paſſword" is not "password".
	// cases.Caser is stateful, so each call gets its own.
	_, ok := blacklist[cases.Lower(language.Und).String(pwd)]
	return ok
}

// Blacklist returns the blacklisted passwords in no particular order.
func Blacklist() []string {
	out := make([]string, 0, len(blacklist))
	for pw := range blacklist {
		out = append(out, pw)
	}
	return out
}
