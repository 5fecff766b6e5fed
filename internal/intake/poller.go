package intake

import (
	"context"
	"fmt"
	"strings"

	"github.com/get2knowio/deacon/internal/config"
	"github.com/get2knowio/deacon/internal/debug"
	"github.com/get2knowio/deacon/internal/dispatch"
	"github.com/get2knowio/deacon/internal/status"
)

// BoardAPI combines the read and write surfaces of the board client.
type BoardAPI interface {
	BoardReader
	BoardWriter
}

// TaskDispatcher starts work on an issue and reports whether it
// actually started.
type TaskDispatcher interface {
	Dispatch(ctx context.Context, repoSlug string, number int) (dispatch.Session, bool)
}

// Poller runs one admission pass over the board.
type Poller struct {
	Board      BoardAPI
	Dispatcher TaskDispatcher
	Commenter  Commenter
	Config     config.Config
}

// RunOutcome reports what a single run did. Started is true only when
// a task was dispatched and confirmed; IssueNumber is zero when no
// candidate was processed.
type RunOutcome struct {
	Started     bool
	ItemID      string
	IssueNumber int
}

// Run executes one strictly sequential admission pass: preflight,
// project discovery, item fetch, gate check, candidate selection,
// dispatch, board mutation. Gated runs, empty boards, and dispatch
// failures are normal outcomes, not errors; only configuration and
// transport problems return one.
func (p *Poller) Run(ctx context.Context) (RunOutcome, error) {
	if _, err := Preflight(ctx, p.Board, p.Config.Org, p.Config.ProjectNumber); err != nil {
		return RunOutcome{}, err
	}

	project, err := p.Board.FetchProject(ctx, p.Config.Org, p.Config.ProjectNumber)
	if err != nil {
		return RunOutcome{}, err
	}

	statusField := project.StatusField()
	if statusField == nil {
		return RunOutcome{}, fmt.Errorf("board has no single-select Status field")
	}

	readyID, okReady := status.Resolve(statusField.Options, p.Config.StatusReady)
	inflightID, okInflight := status.Resolve(statusField.Options, p.Config.StatusInFlight)
	if !okReady || !okInflight {
		return RunOutcome{}, fmt.Errorf("could not resolve Status option IDs; check the %q and %q option names against the board",
			p.Config.StatusReady, p.Config.StatusInFlight)
	}
	gateIDs := status.ResolveGate(statusField.Options, status.GateNames)

	items, err := p.Board.FetchAllItems(ctx, project.ID)
	if err != nil {
		return RunOutcome{}, err
	}

	if Blocked(items, gateIDs) {
		debug.PrintlnNormal(fmt.Sprintf("Active item already in progress (one of: %s). Skipping intake.",
			strings.Join(status.GateNames, ", ")))
		debug.LogRun("gated", 0, "")
		return RunOutcome{}, nil
	}

	candidates := Candidates(items, p.Config.Owner, p.Config.Repo, readyID)
	chosen, ok := SelectCandidate(candidates)
	if !ok {
		debug.PrintlnNormal(fmt.Sprintf("No items in %s for this repository.", p.Config.StatusReady))
		debug.LogRun("idle", 0, "")
		return RunOutcome{}, nil
	}

	debug.PrintlnNormal(fmt.Sprintf("Processing Issue #%d", chosen.IssueNumber))

	session, started := p.Dispatcher.Dispatch(ctx, p.Config.RepoSlug(), chosen.IssueNumber)
	if !started {
		debug.PrintlnNormal("No action taken (agent task not configured or failed)")
		debug.LogRun("dispatch-failed", chosen.IssueNumber, "")
		return RunOutcome{IssueNumber: chosen.IssueNumber}, nil
	}

	mutator := &Mutator{Board: p.Board, Commenter: p.Commenter}
	if err := mutator.Apply(ctx, project, chosen.ItemID, chosen.IssueNumber, session,
		statusField.ID, inflightID, p.Config.KickoffComment); err != nil {
		return RunOutcome{Started: true, ItemID: chosen.ItemID, IssueNumber: chosen.IssueNumber}, err
	}

	debug.LogRun("dispatched", chosen.IssueNumber, "session "+session.URL)
	return RunOutcome{Started: true, ItemID: chosen.ItemID, IssueNumber: chosen.IssueNumber}, nil
}
