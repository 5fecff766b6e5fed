package intake

import "github.com/get2knowio/deacon/internal/board"

// Candidate couples a board item with its issue number.
type Candidate struct {
	ItemID      string
	IssueNumber int
}

// Candidates filters items down to issues of the given repository whose
// status is the ready option. Pull requests and items from other
// repositories never qualify.
func Candidates(items []board.Item, owner, repo, readyOptionID string) []Candidate {
	var out []Candidate
	for i := range items {
		item := &items[i]
		if item.Kind != board.KindIssue {
			continue
		}
		if item.Owner != owner || item.Repo != repo {
			continue
		}
		if item.HasOption(readyOptionID) {
			out = append(out, Candidate{ItemID: item.ID, IssueNumber: item.Number})
		}
	}
	return out
}

// SelectCandidate picks the candidate with the lowest issue number.
// Deterministic regardless of board ordering.
func SelectCandidate(candidates []Candidate) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.IssueNumber < best.IssueNumber {
			best = c
		}
	}
	return best, true
}
