// Package status resolves human-entered status names against a board's
// single-select options. Operators decorate option names with emoji and
// punctuation ("Ready for Takeoff 🛫"), so matching runs on a normalized
// form rather than raw equality.
package status

import (
	"strings"
	"unicode"
)

// Option is a single-select field option as reported by the board.
type Option struct {
	ID   string
	Name string
}

// GateNames are the statuses that block new intake. Any item on the
// board holding one of these means a unit of work is already in flight
// somewhere, possibly in another repository sharing the board.
var GateNames = []string{
	"In Flight",
	"Debrief",
	"Remediation",
	"Verification",
	"Ready for Integration",
}

// Normalize strips every rune that is not alphanumeric or whitespace
// and lowercases the rest. Internal spaces are preserved, so multi-word
// names keep their token boundaries.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// Resolve maps a wanted status name to an option ID. Exact normalized
// equality wins; failing that, the first option in list order whose
// normalized name contains every whitespace-delimited token of the
// normalized wanted name is accepted. List order matters: a token-subset
// match for "ready" will hit "Ready for Integration" if it is enumerated
// before an exact "Ready" — callers relying on exact names should keep
// them first on the board.
func Resolve(options []Option, wanted string) (string, bool) {
	want := Normalize(wanted)
	for _, opt := range options {
		if Normalize(opt.Name) == want {
			return opt.ID, true
		}
	}
	tokens := strings.Fields(want)
	if len(tokens) == 0 {
		return "", false
	}
	for _, opt := range options {
		if containsAll(Normalize(opt.Name), tokens) {
			return opt.ID, true
		}
	}
	return "", false
}

// ResolveGate resolves each gate status name against the options.
// Names that fail to resolve are omitted; a board is allowed to lack
// some of the gate stages.
func ResolveGate(options []Option, names []string) []string {
	var ids []string
	seen := make(map[string]bool)
	for _, name := range names {
		id, ok := Resolve(options, name)
		if ok && !seen[id] {
			ids = append(ids, id)
			seen[id] = true
		}
	}
	return ids
}

func containsAll(key string, tokens []string) bool {
	for _, tok := range tokens {
		if !strings.Contains(key, tok) {
			return false
		}
	}
	return true
}
