package intake

import (
	"context"
	"fmt"
	"strings"

	"github.com/get2knowio/deacon/internal/board"
)

// BoardReader is the query surface of the board client consumed here.
type BoardReader interface {
	Viewer(ctx context.Context) (string, error)
	ProbeProject(ctx context.Context, org, number string) (string, error)
	ListProjects(ctx context.Context, org string) ([]board.ProjectRef, error)
	FetchProject(ctx context.Context, org, number string) (*board.Project, error)
	FetchAllItems(ctx context.Context, projectID string) ([]board.Item, error)
}

// CheckResult is one preflight probe outcome.
type CheckResult struct {
	Name   string
	OK     bool
	Detail string
}

// Preflight verifies the credential and board visibility before a run
// touches anything. Non-mutating and safe to repeat. The returned
// results carry per-check detail for report rendering; the error is
// non-nil when any check failed.
func Preflight(ctx context.Context, client BoardReader, org, number string) ([]CheckResult, error) {
	var results []CheckResult

	login, err := client.Viewer(ctx)
	if err != nil {
		results = append(results, CheckResult{Name: "credential", Detail: err.Error()})
		return results, fmt.Errorf("credential check failed: %w", err)
	}
	if login == "" {
		results = append(results, CheckResult{Name: "credential", Detail: "token did not resolve to a login"})
		return results, fmt.Errorf("credential check failed: token is invalid or expired")
	}
	results = append(results, CheckResult{Name: "credential", OK: true, Detail: "authenticated as " + login})

	if _, err := client.ProbeProject(ctx, org, number); err != nil {
		detail := fmt.Sprintf("project #%s in %s is not accessible", number, org)
		if refs, lerr := client.ListProjects(ctx, org); lerr == nil && len(refs) > 0 {
			var visible []string
			for _, r := range refs {
				visible = append(visible, fmt.Sprintf("#%d %q", r.Number, r.Title))
			}
			detail += "; visible projects: " + strings.Join(visible, ", ")
		}
		results = append(results, CheckResult{Name: "board", Detail: detail})
		return results, fmt.Errorf("%s: %w", detail, err)
	}
	results = append(results, CheckResult{Name: "board", OK: true,
		Detail: fmt.Sprintf("project #%s in %s is visible", number, org)})

	return results, nil
}
