package dispatch

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var urlPattern = regexp.MustCompile(`https?://\S+`)

// Session is the reference returned by a successful dispatch. URL is
// empty when the tool's output contained none; PRNumber is zero unless
// the URL path carries a pull-request segment.
type Session struct {
	URL      string
	PRNumber int
}

// ParseSession extracts the first URL from the tool's output and, when
// present, the pull-request number from its path.
func ParseSession(output string) Session {
	m := urlPattern.FindString(output)
	if m == "" {
		return Session{}
	}
	u := strings.TrimSpace(m)
	return Session{URL: u, PRNumber: prNumberFromURL(u)}
}

// prNumberFromURL returns the numeric path segment following the first
// "pull" segment, or zero. Only the segment immediately after the first
// "pull" is considered.
func prNumberFromURL(raw string) int {
	parsed, err := url.Parse(raw)
	if err != nil {
		return 0
	}
	var parts []string
	for _, p := range strings.Split(parsed.Path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	for i, p := range parts {
		if p != "pull" {
			continue
		}
		if i+1 < len(parts) && isDigits(parts[i+1]) {
			if n, err := strconv.Atoi(parts[i+1]); err == nil {
				return n
			}
		}
		break
	}
	return 0
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
