// Package render draws the final state of a recorded game as text, for the
// CLI's per-game output.
package render

import (
	"fmt"
	"strings"

	"github.com/cognicore/sweeper/pkg/sweeper/knowledge"
	"github.com/cognicore/sweeper/pkg/sweeper/store"
)

// Session renders a finished game: clue digits for probed cells, F for
// flagged mines, * for a detonated mine, . for cells never touched.
func Session(sess store.Session, flagged []knowledge.Cell) string {
	grid := make([][]byte, sess.Height)
	for r := range grid {
		grid[r] = []byte(strings.Repeat(".", sess.Width))
	}

	for _, m := range sess.Moves {
		if m.Row < 0 || m.Row >= sess.Height || m.Col < 0 || m.Col >= sess.Width {
			continue
		}
		if m.Mine {
			grid[m.Row][m.Col] = '*'
		} else {
			grid[m.Row][m.Col] = byte('0' + m.Clue)
		}
	}
	for _, c := range flagged {
		if c.Row < 0 || c.Row >= sess.Height || c.Col < 0 || c.Col >= sess.Width {
			continue
		}
		grid[c.Row][c.Col] = 'F'
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %dx%d, %d mines\n", sess.ID, sess.Height, sess.Width, sess.Mines)
	for _, row := range grid {
		b.Write(row)
		b.WriteByte('\n')
	}
	return b.String()
}
