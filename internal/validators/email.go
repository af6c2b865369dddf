package validators

import (
	"net/mail"
	"regexp"
	"strings"
)

// NormalizeEmail trims and lowercases s and reports whether it is a bare
// address (no display name).
func NormalizeEmail(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return "", false
	}
	at := strings.LastIndex(s, "@")
	if at <= 0 || !strings.Contains(s[at+1:], ".") {
		return "", false
	}
	return s, true
}

var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// IsSlug accepts lowercase words joined by single hyphens.
func IsSlug(s string) bool {
	return len(s) <= 100 && slugRe.MatchString(s)
}
