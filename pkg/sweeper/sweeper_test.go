package sweeper

import (
	"math/rand"
	"testing"

	"github.com/cognicore/sweeper/pkg/sweeper/knowledge"
)

func newAgent(t *testing.T, height, width int, seed int64) *Agent {
	t.Helper()
	a, err := New(Options{
		Height: height,
		Width:  width,
		Rand:   rand.New(rand.NewSource(seed)),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func TestNewRejectsBadBoard(t *testing.T) {
	if _, err := New(Options{Height: 0, Width: 3}); err == nil {
		t.Error("zero height should be rejected")
	}
	if _, err := New(Options{Height: 3, Width: -1}); err == nil {
		t.Error("negative width should be rejected")
	}
}

func TestSafeMovePicksLowestCoordinate(t *testing.T) {
	a := newAgent(t, 1, 3, 1)

	// Zero clue proves both neighbors of (0,1) safe.
	if err := a.AddKnowledge(knowledge.Cell{Row: 0, Col: 1}, 0); err != nil {
		t.Fatalf("AddKnowledge: %v", err)
	}

	move, ok := a.SafeMove()
	if !ok {
		t.Fatal("a safe move should be known")
	}
	if move != (knowledge.Cell{Row: 0, Col: 0}) {
		t.Errorf("expected lowest-coordinate safe move (0, 0), got %v", move)
	}

	// Pure read: asking again changes nothing and returns the same cell.
	again, ok := a.SafeMove()
	if !ok || again != move {
		t.Errorf("SafeMove should be repeatable, got %v/%v", again, ok)
	}
	if len(a.MovesMade()) != 1 {
		t.Error("SafeMove must not record a move")
	}
}

func TestSafeMoveSkipsProbedCells(t *testing.T) {
	a := newAgent(t, 1, 3, 1)

	if err := a.AddKnowledge(knowledge.Cell{Row: 0, Col: 1}, 0); err != nil {
		t.Fatalf("AddKnowledge: %v", err)
	}
	if err := a.AddKnowledge(knowledge.Cell{Row: 0, Col: 0}, 0); err != nil {
		t.Fatalf("AddKnowledge: %v", err)
	}

	move, ok := a.SafeMove()
	if !ok || move != (knowledge.Cell{Row: 0, Col: 2}) {
		t.Errorf("expected (0, 2), got %v/%v", move, ok)
	}
}

func TestRandomMoveAvoidsMinesAndProbes(t *testing.T) {
	a := newAgent(t, 1, 3, 7)

	// Clue 1 at the corner proves (0,1) is a mine, leaving (0,2) as the
	// only legal random move.
	if err := a.AddKnowledge(knowledge.Cell{Row: 0, Col: 0}, 1); err != nil {
		t.Fatalf("AddKnowledge: %v", err)
	}

	move, ok := a.RandomMove()
	if !ok {
		t.Fatal("one cell is still playable")
	}
	if move != (knowledge.Cell{Row: 0, Col: 2}) {
		t.Errorf("expected (0, 2), got %v", move)
	}
}

func TestRandomMoveExhausted(t *testing.T) {
	a := newAgent(t, 1, 3, 3)

	// After this probe the board is fully classified: (0,1) probed,
	// (0,0) and (0,2) proven mines.
	if err := a.AddKnowledge(knowledge.Cell{Row: 0, Col: 1}, 2); err != nil {
		t.Fatalf("AddKnowledge: %v", err)
	}

	if _, ok := a.RandomMove(); ok {
		t.Error("no move should be possible on an exhausted board")
	}
	if _, ok := a.SafeMove(); ok {
		t.Error("no unprobed safe cell should remain")
	}
}

func TestKnownSetsAreSorted(t *testing.T) {
	a := newAgent(t, 1, 3, 5)

	if err := a.AddKnowledge(knowledge.Cell{Row: 0, Col: 1}, 2); err != nil {
		t.Fatalf("AddKnowledge: %v", err)
	}

	mines := a.KnownMines()
	if len(mines) != 2 {
		t.Fatalf("expected 2 known mines, got %v", mines)
	}
	if !mines[0].Less(mines[1]) {
		t.Errorf("mines should be sorted, got %v", mines)
	}
}
