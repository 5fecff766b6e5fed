package intake

import (
	"testing"

	"github.com/get2knowio/deacon/internal/board"
)

func itemWithStatus(id string, kind board.ContentKind, number int, owner, repo, optionID string) board.Item {
	item := board.Item{ID: id, Kind: kind, Number: number, Owner: owner, Repo: repo}
	if optionID != "" {
		item.FieldValues = []board.FieldValue{
			{FieldID: "F2", FieldName: "Status", OptionID: optionID},
		}
	}
	return item
}

func TestBlocked(t *testing.T) {
	gateIDs := []string{"O2", "O3", "O4", "O5", "O6"}

	tests := []struct {
		name  string
		items []board.Item
		gates []string
		want  bool
	}{
		{
			name: "no items",
			want: false,
		},
		{
			name: "only ready items",
			items: []board.Item{
				itemWithStatus("I1", board.KindIssue, 3, "org", "repo", "O1"),
			},
			gates: gateIDs,
			want:  false,
		},
		{
			name: "in-flight item blocks",
			items: []board.Item{
				itemWithStatus("I1", board.KindIssue, 3, "org", "repo", "O1"),
				itemWithStatus("I2", board.KindIssue, 4, "org", "repo", "O2"),
			},
			gates: gateIDs,
			want:  true,
		},
		{
			name: "gate item from another repository still blocks",
			items: []board.Item{
				itemWithStatus("I1", board.KindIssue, 3, "org", "repo", "O1"),
				itemWithStatus("I2", board.KindIssue, 9, "other", "elsewhere", "O4"),
			},
			gates: gateIDs,
			want:  true,
		},
		{
			name: "gate pull request still blocks",
			items: []board.Item{
				itemWithStatus("I1", board.KindPullRequest, 12, "org", "repo", "O6"),
			},
			gates: gateIDs,
			want:  true,
		},
		{
			name: "empty gate set never blocks",
			items: []board.Item{
				itemWithStatus("I1", board.KindIssue, 3, "org", "repo", "O2"),
			},
			gates: nil,
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Blocked(tt.items, tt.gates); got != tt.want {
				t.Errorf("Blocked() = %v, want %v", got, tt.want)
			}
		})
	}
}
