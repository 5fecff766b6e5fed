package intake

import (
	"context"
	"fmt"
	"strconv"

	"github.com/get2knowio/deacon/internal/board"
	"github.com/get2knowio/deacon/internal/debug"
	"github.com/get2knowio/deacon/internal/dispatch"
)

// BoardWriter is the mutation surface of the board client consumed by
// the post-dispatch steps.
type BoardWriter interface {
	CreateNumberField(ctx context.Context, projectID, name string) (string, error)
	SetItemSingleSelect(ctx context.Context, projectID, itemID, fieldID, optionID string) error
	SetItemNumber(ctx context.Context, projectID, itemID, fieldID string, value int) error
	SetItemText(ctx context.Context, projectID, itemID, fieldID, text string) error
}

// Commenter posts a comment on an issue in the repository context.
type Commenter interface {
	Comment(ctx context.Context, number int, body string) error
}

// Mutator applies the post-dispatch board updates. Steps one and two
// are best effort; only the final status transition can fail the run.
type Mutator struct {
	Board     BoardWriter
	Commenter Commenter
}

// Apply runs the three post-dispatch steps in order: kickoff comment,
// auxiliary PR field write, then the authoritative status transition.
// Called only after a confirmed dispatch.
func (m *Mutator) Apply(ctx context.Context, project *board.Project, itemID string, issueNumber int, session dispatch.Session, statusFieldID, inflightOptionID, kickoff string) error {
	if session.URL != "" {
		body := "Assigned to copilot session: " + session.URL
		if kickoff != "" {
			body = kickoff + "\n\n" + body
		}
		if err := m.Commenter.Comment(ctx, issueNumber, body); err != nil {
			aux := &AuxError{Step: "kickoff comment", Err: err}
			debug.PrintlnNormal("Warning: " + aux.Error())
		}
	}

	if session.PRNumber > 0 {
		if err := m.storePRNumber(ctx, project, itemID, session.PRNumber); err != nil {
			debug.PrintlnNormal("Warning: could not store PR id: " + err.Error())
		}
	}

	if err := m.Board.SetItemSingleSelect(ctx, project.ID, itemID, statusFieldID, inflightOptionID); err != nil {
		return fmt.Errorf("failed to move issue #%d to in-flight: %w", issueNumber, err)
	}
	return nil
}

// storePRNumber writes the pull-request number into the board's "PR"
// field, creating the field as numeric when absent. A pre-existing
// text-typed field rejects the numeric mutation; the text fallback
// covers that.
func (m *Mutator) storePRNumber(ctx context.Context, project *board.Project, itemID string, prNumber int) error {
	var fieldID string
	if f := project.FieldByNormalizedName("pr"); f != nil {
		fieldID = f.ID
	} else {
		created, err := m.Board.CreateNumberField(ctx, project.ID, "PR")
		if err != nil {
			return &AuxError{Step: "PR field creation", Err: err}
		}
		fieldID = created
	}

	if err := m.Board.SetItemNumber(ctx, project.ID, itemID, fieldID, prNumber); err != nil {
		debug.Logf("intake: numeric PR field write failed (%v), trying text\n", err)
		if err := m.Board.SetItemText(ctx, project.ID, itemID, fieldID, strconv.Itoa(prNumber)); err != nil {
			return &AuxError{Step: "PR field write", Err: err}
		}
	}
	return nil
}
