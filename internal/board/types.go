// Package board provides the client and data types for the GitHub
// Projects v2 GraphQL API.
//
// This package handles all remote interactions with the tracking board:
// discovering the project and its fields, paginating through items, and
// applying field-value mutations. Responses are decoded into typed
// structures per query shape; absent or mismatched fields surface as
// errors rather than nil dereferences.
package board

import (
	"net/http"
	"time"

	"github.com/get2knowio/deacon/internal/status"
)

// API configuration constants.
const (
	// DefaultAPIEndpoint is the GitHub GraphQL API URL.
	DefaultAPIEndpoint = "https://api.github.com/graphql"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// PageSize is the number of items fetched per pagination request.
	PageSize = 100

	// MaxPages caps pagination to guard against malformed pageInfo
	// responses claiming more pages forever.
	MaxPages = 1000

	// MaxFields is the number of project fields requested; boards with
	// more fields than this are not supported.
	MaxFields = 50

	// MaxFieldValues is the number of field values requested per item.
	MaxFieldValues = 50
)

// Client provides methods to interact with the Projects v2 GraphQL API.
type Client struct {
	Token      string       // GitHub token with repo and project scopes
	Endpoint   string       // GraphQL endpoint (default: https://api.github.com/graphql)
	HTTPClient *http.Client // Optional custom HTTP client
}

// ContentKind classifies what an item on the board points at.
type ContentKind string

const (
	KindIssue       ContentKind = "Issue"
	KindPullRequest ContentKind = "PullRequest"
	KindNone        ContentKind = ""
)

// Project is the board: its node ID plus the field definitions needed
// to resolve status options. It is fetched once per run and treated as
// immutable for the run's duration.
type Project struct {
	ID     string
	Fields []Field
}

// Field is a project field definition. Single-select fields carry
// options; plain fields (text, number, date) carry none.
type Field struct {
	ID      string
	Name    string
	Options []status.Option
}

// StatusField locates the single-select field named "Status".
// Returns nil if the board has none.
func (p *Project) StatusField() *Field {
	for i := range p.Fields {
		f := &p.Fields[i]
		if f.Name == "Status" && f.Options != nil {
			return f
		}
	}
	return nil
}

// FieldByNormalizedName finds a field whose normalized name matches the
// normalized wanted name. Used for the auxiliary "PR" field lookup.
func (p *Project) FieldByNormalizedName(name string) *Field {
	want := status.Normalize(name)
	for i := range p.Fields {
		if status.Normalize(p.Fields[i].Name) == want {
			return &p.Fields[i]
		}
	}
	return nil
}

// Item is one board row: the referenced content plus its current
// single-select field values.
type Item struct {
	ID          string
	Kind        ContentKind
	Number      int    // issue or PR number (0 for draft/redacted content)
	Owner       string // repository owner login
	Repo        string // repository name
	FieldValues []FieldValue
}

// FieldValue is a single-select value currently assigned to an item.
type FieldValue struct {
	FieldID    string
	FieldName  string
	OptionName string
	OptionID   string
}

// HasOption reports whether the item carries the given option ID in any
// of its field values.
func (it *Item) HasOption(optionID string) bool {
	if optionID == "" {
		return false
	}
	for _, fv := range it.FieldValues {
		if fv.OptionID == optionID {
			return true
		}
	}
	return false
}

// ProjectRef identifies a visible project, used in preflight diagnostics.
type ProjectRef struct {
	Number int
	Title  string
}
