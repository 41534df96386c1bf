// Package board implements the game environment: it owns the true mine
// placement and answers the two queries the agent's world is built from,
// "is this cell a mine" and "how many mines border this cell". No inference
// happens here.
package board

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/cognicore/sweeper/pkg/sweeper/internalerr"
	"github.com/cognicore/sweeper/pkg/sweeper/knowledge"
)

// Board holds a fixed mine layout for one game.
type Board struct {
	height  int
	width   int
	mines   map[knowledge.Cell]struct{}
	flagged map[knowledge.Cell]struct{}
}

// New generates a board with the given number of mines placed uniformly at
// random using rng. Pass a seeded rand.Rand for reproducible layouts.
func New(height, width, mines int, rng *rand.Rand) (*Board, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("board %dx%d: %w", height, width, internalerr.ErrInvalidInput)
	}
	if mines < 0 || mines > height*width {
		return nil, fmt.Errorf("%d mines on %dx%d board: %w",
			mines, height, width, internalerr.ErrInvalidInput)
	}

	b := &Board{
		height:  height,
		width:   width,
		mines:   make(map[knowledge.Cell]struct{}, mines),
		flagged: make(map[knowledge.Cell]struct{}),
	}
	for len(b.mines) < mines {
		c := knowledge.Cell{Row: rng.Intn(height), Col: rng.Intn(width)}
		b.mines[c] = struct{}{}
	}
	return b, nil
}

// NewWithMines builds a board with an explicit mine layout. Out-of-bounds
// mine cells are rejected. Intended for tests and replays.
func NewWithMines(height, width int, mines []knowledge.Cell) (*Board, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("board %dx%d: %w", height, width, internalerr.ErrInvalidInput)
	}
	b := &Board{
		height:  height,
		width:   width,
		mines:   make(map[knowledge.Cell]struct{}, len(mines)),
		flagged: make(map[knowledge.Cell]struct{}),
	}
	for _, c := range mines {
		if !b.Contains(c) {
			return nil, fmt.Errorf("mine %v: %w", c, internalerr.ErrOutOfBounds)
		}
		b.mines[c] = struct{}{}
	}
	return b, nil
}

// Height returns the board height.
func (b *Board) Height() int { return b.height }

// Width returns the board width.
func (b *Board) Width() int { return b.width }

// MineCount returns the number of mines on the board.
func (b *Board) MineCount() int { return len(b.mines) }

// Contains reports whether c lies within the board bounds.
func (b *Board) Contains(c knowledge.Cell) bool {
	return c.Row >= 0 && c.Row < b.height && c.Col >= 0 && c.Col < b.width
}

// IsMine reports whether c holds a mine.
func (b *Board) IsMine(c knowledge.Cell) bool {
	_, ok := b.mines[c]
	return ok
}

// NearbyMines returns the number of mines among c's up-to-8 neighbors, not
// counting c itself.
func (b *Board) NearbyMines(c knowledge.Cell) (int, error) {
	if !b.Contains(c) {
		return 0, fmt.Errorf("cell %v: %w", c, internalerr.ErrOutOfBounds)
	}
	count := 0
	for _, n := range c.Neighborhood(b.height, b.width) {
		if b.IsMine(n) {
			count++
		}
	}
	return count, nil
}

// Flag marks c as a found mine. Flagging a non-mine cell is recorded too;
// it simply keeps Won from ever returning true.
func (b *Board) Flag(c knowledge.Cell) error {
	if !b.Contains(c) {
		return fmt.Errorf("cell %v: %w", c, internalerr.ErrOutOfBounds)
	}
	b.flagged[c] = struct{}{}
	return nil
}

// Won reports whether the flagged set equals the true mine set.
func (b *Board) Won() bool {
	if len(b.flagged) != len(b.mines) {
		return false
	}
	for c := range b.mines {
		if _, ok := b.flagged[c]; !ok {
			return false
		}
	}
	return true
}

// Mines returns the true mine cells in sorted order. Intended for
// post-game reporting, never for the agent.
func (b *Board) Mines() []knowledge.Cell {
	out := make([]knowledge.Cell, 0, len(b.mines))
	for c := range b.mines {
		out = append(out, c)
	}
	knowledge.SortCells(out)
	return out
}

// String renders the mine placement, X for a mine, blank otherwise.
func (b *Board) String() string {
	var sb strings.Builder
	rule := strings.Repeat("--", b.width) + "-\n"
	for r := 0; r < b.height; r++ {
		sb.WriteString(rule)
		for c := 0; c < b.width; c++ {
			if b.IsMine(knowledge.Cell{Row: r, Col: c}) {
				sb.WriteString("|X")
			} else {
				sb.WriteString("| ")
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(rule)
	return sb.String()
}
