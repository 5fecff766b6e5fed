// Package intake orchestrates one admission run: check the gate, pick
// the lowest-numbered ready issue, dispatch it, and advance the board
// only on confirmed dispatch.
package intake

import "github.com/get2knowio/deacon/internal/board"

// Blocked reports whether any item on the board, regardless of
// repository or content kind, carries one of the gate option ids.
// An empty gate set never blocks.
func Blocked(items []board.Item, gateOptionIDs []string) bool {
	for i := range items {
		for _, id := range gateOptionIDs {
			if items[i].HasOption(id) {
				return true
			}
		}
	}
	return false
}
