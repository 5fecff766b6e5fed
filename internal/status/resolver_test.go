package status_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/get2knowio/deacon/internal/status"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"emoji stripped", "Ready ✅", "ready "},
		{"rocket stripped", "In Flight 🚀", "in flight "},
		{"punctuation stripped", "Ready-to-Go!", "readytogo"},
		{"colon and period", "Status: Done.", "status done"},
		{"internal spaces preserved", "Ready for Takeoff", "ready for takeoff"},
		{"lowercased", "MiXeD CaSe", "mixed case"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, status.Normalize(tt.in))
		})
	}
}

// Decorated and plain names must collapse to comparable forms once
// trailing whitespace is accounted for.
func TestNormalizeEquivalence(t *testing.T) {
	assert.Equal(t, status.Normalize("ready"), strings.TrimSpace(status.Normalize("Ready ✅")))
	assert.Equal(t, status.Normalize("in flight"), strings.TrimSpace(status.Normalize("In Flight 🚀")))
}

func TestResolveExactMatch(t *testing.T) {
	options := []status.Option{
		{ID: "opt1", Name: "Ready for Takeoff 🛫"},
		{ID: "opt2", Name: "In Flight"},
		{ID: "opt3", Name: "Done"},
	}

	id, ok := status.Resolve(options, "In Flight")
	assert.True(t, ok)
	assert.Equal(t, "opt2", id)
}

func TestResolveTokenSubset(t *testing.T) {
	options := []status.Option{
		{ID: "opt1", Name: "Ready for Takeoff 🛫"},
		{ID: "opt2", Name: "In Flight 🚀"},
	}

	// Decoration prevents exact equality, token containment still lands.
	id, ok := status.Resolve(options, "Ready for Takeoff")
	assert.True(t, ok)
	assert.Equal(t, "opt1", id)

	id, ok = status.Resolve(options, "In Flight")
	assert.True(t, ok)
	assert.Equal(t, "opt2", id)
}

// TestResolveListOrderAmbiguity pins the first-match-in-list-order
// behavior: a token-subset lookup for "ready" hits "Ready for
// Integration" when it precedes a decorated "Ready" option, and hits
// the exact option whenever exact equality is possible. This ordering
// is intentional and must not be "fixed".
func TestResolveListOrderAmbiguity(t *testing.T) {
	// Exact match always beats token subset, regardless of order.
	options := []status.Option{
		{ID: "integration", Name: "Ready for Integration"},
		{ID: "ready", Name: "Ready"},
	}
	id, ok := status.Resolve(options, "Ready")
	assert.True(t, ok)
	assert.Equal(t, "ready", id)

	// With only decorated options, the first token-subset match in list
	// order wins. The Integration option shadows the decorated Ready.
	options = []status.Option{
		{ID: "integration", Name: "Ready for Integration"},
		{ID: "ready", Name: "Ready ✅"},
	}
	id, ok = status.Resolve(options, "ready")
	assert.True(t, ok)
	assert.Equal(t, "integration", id)
}

func TestResolveNoMatch(t *testing.T) {
	options := []status.Option{
		{ID: "opt1", Name: "Backlog"},
		{ID: "opt2", Name: "Done"},
	}

	_, ok := status.Resolve(options, "In Flight")
	assert.False(t, ok)

	_, ok = status.Resolve(nil, "anything")
	assert.False(t, ok)

	_, ok = status.Resolve(options, "!!!")
	assert.False(t, ok, "fully-stripped wanted name must not match")
}

func TestResolveGate(t *testing.T) {
	options := []status.Option{
		{ID: "opt1", Name: "Ready for Takeoff"},
		{ID: "opt2", Name: "In Flight 🚀"},
		{ID: "opt3", Name: "Debrief"},
		{ID: "opt4", Name: "Done"},
	}

	ids := status.ResolveGate(options, status.GateNames)
	assert.ElementsMatch(t, []string{"opt2", "opt3"}, ids)
}

// Boards lacking gate stages simply yield a smaller gate set.
func TestResolveGateMissingStagesNonFatal(t *testing.T) {
	options := []status.Option{
		{ID: "opt1", Name: "Todo"},
		{ID: "opt2", Name: "Done"},
	}
	assert.Empty(t, status.ResolveGate(options, status.GateNames))
}
