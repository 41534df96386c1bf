// Package knowledge holds the agent's belief state: logical sentences over
// board cells and the certainty sets they resolve into.
package knowledge

import (
	"fmt"
	"sort"
)

// Cell is a board coordinate. It is a plain value: comparable, never
// mutated, usable as a map key.
type Cell struct {
	Row int
	Col int
}

// String formats the cell as (row, col).
func (c Cell) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}

// Less orders cells by row, then column. Used wherever a deterministic
// cell ordering is needed (tie-breaks, canonical sentence form).
func (c Cell) Less(other Cell) bool {
	if c.Row != other.Row {
		return c.Row < other.Row
	}
	return c.Col < other.Col
}

// Neighborhood returns the up-to-8 cells at Chebyshev distance 1 from c,
// clipped to a height×width board. The cell itself is excluded.
func (c Cell) Neighborhood(height, width int) []Cell {
	out := make([]Cell, 0, 8)
	for r := c.Row - 1; r <= c.Row+1; r++ {
		for col := c.Col - 1; col <= c.Col+1; col++ {
			if r == c.Row && col == c.Col {
				continue
			}
			if r < 0 || r >= height || col < 0 || col >= width {
				continue
			}
			out = append(out, Cell{Row: r, Col: col})
		}
	}
	return out
}

// SortCells sorts a cell slice in place by (row, col).
func SortCells(cells []Cell) {
	sort.Slice(cells, func(i, j int) bool {
		return cells[i].Less(cells[j])
	})
}
