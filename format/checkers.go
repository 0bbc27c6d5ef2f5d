package format

import (
	"net/url"
	"strings"
	"time"
	"unicode"
)

// IsEmail accepts addresses with exactly one '@', a non-empty local part and
// a dotted domain without empty labels. Whitespace and control characters
// are rejected anywhere.
func IsEmail(s string) bool {
	if strings.IndexFunc(s, func(r rune) bool { return unicode.IsSpace(r) || unicode.IsControl(r) }) >= 0 {
		return false
	}
	local, domain, ok := strings.Cut(s, "@")
	if !ok || local == "" || domain == "" || strings.Contains(domain, "@") {
		return false
	}
	if !strings.Contains(domain, ".") {
		return false
	}
	for _, label := range strings.Split(domain, ".") {
		if label == "" {
			return false
		}
	}
	return true
}

var urlSchemes = map[string]struct{}{"http": {}, "https": {}}

// IsURL accepts absolute http and https URLs with a host.
func IsURL(s string) bool {
	if s == "" || strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return false
	}
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() {
		return false
	}
	if _, ok := urlSchemes[strings.ToLower(u.Scheme)]; !ok {
		return false
	}
	return u.Host != "" && u.Hostname() != ""
}

// IsDateTime accepts RFC 3339 timestamps with optional fractional seconds.
func IsDateTime(s string) bool {
	if _, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return true
	}
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}

// IsDate accepts full dates (YYYY-MM-DD).
func IsDate(s string) bool {
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}
