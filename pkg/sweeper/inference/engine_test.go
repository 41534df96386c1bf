package inference

import (
	"errors"
	"testing"

	"github.com/cognicore/sweeper/pkg/sweeper/internalerr"
	"github.com/cognicore/sweeper/pkg/sweeper/knowledge"
)

func newSentence(t *testing.T, cells []knowledge.Cell, count int) *knowledge.Sentence {
	t.Helper()
	s, err := knowledge.NewSentence(cells, count)
	if err != nil {
		t.Fatalf("NewSentence: %v", err)
	}
	return s
}

func cellSet(cells []knowledge.Cell) map[knowledge.Cell]struct{} {
	set := make(map[knowledge.Cell]struct{}, len(cells))
	for _, c := range cells {
		set[c] = struct{}{}
	}
	return set
}

func TestZeroClueMarksWholeNeighborhoodSafe(t *testing.T) {
	base := knowledge.NewBase()
	e := New(base, 3, 3)

	if err := e.AddKnowledge(knowledge.Cell{Row: 1, Col: 1}, 0); err != nil {
		t.Fatalf("AddKnowledge: %v", err)
	}

	safes := cellSet(base.Safes())
	if len(safes) != 9 {
		t.Fatalf("expected all 9 cells safe, got %d", len(safes))
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if _, ok := safes[knowledge.Cell{Row: r, Col: c}]; !ok {
				t.Errorf("(%d, %d) should be safe", r, c)
			}
		}
	}
	if len(base.Mines()) != 0 {
		t.Errorf("no mines should be concluded, got %v", base.Mines())
	}
}

func TestSaturatedClueMarksNeighborhoodMined(t *testing.T) {
	base := knowledge.NewBase()
	e := New(base, 1, 3)

	// On a 1x3 board the middle cell has exactly two neighbors; a clue of
	// 2 proves both are mines.
	if err := e.AddKnowledge(knowledge.Cell{Row: 0, Col: 1}, 2); err != nil {
		t.Fatalf("AddKnowledge: %v", err)
	}

	mines := base.Mines()
	if len(mines) != 2 {
		t.Fatalf("expected 2 mines, got %v", mines)
	}
	if mines[0] != (knowledge.Cell{Row: 0, Col: 0}) || mines[1] != (knowledge.Cell{Row: 0, Col: 2}) {
		t.Errorf("unexpected mines: %v", mines)
	}
}

func TestSubsetResolutionDerivesSafes(t *testing.T) {
	base := knowledge.NewBase()
	base.Add(newSentence(t, []knowledge.Cell{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}, 1))
	base.Add(newSentence(t, []knowledge.Cell{{Row: 0, Col: 0}, {Row: 0, Col: 1}}, 1))
	e := New(base, 3, 3)

	if err := e.close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if !base.IsSafe(knowledge.Cell{Row: 0, Col: 2}) {
		t.Error("subset resolution should prove (0, 2) safe")
	}
	if base.IsMine(knowledge.Cell{Row: 0, Col: 2}) {
		t.Error("(0, 2) must not be a mine")
	}
}

func TestSubsetResolutionAcrossProbes(t *testing.T) {
	base := knowledge.NewBase()
	e := New(base, 2, 3)

	// Probe (1,1): one mine among its five neighbors.
	if err := e.AddKnowledge(knowledge.Cell{Row: 1, Col: 1}, 1); err != nil {
		t.Fatalf("first probe: %v", err)
	}
	// Probe (1,0): one mine among (0,0) and (0,1) once the safe (1,1) is
	// stripped. That sentence is a subset of the first, so the remainder
	// {(0,2), (1,2)} holds zero mines.
	if err := e.AddKnowledge(knowledge.Cell{Row: 1, Col: 0}, 1); err != nil {
		t.Fatalf("second probe: %v", err)
	}

	if !base.IsSafe(knowledge.Cell{Row: 0, Col: 2}) {
		t.Error("(0, 2) should be proven safe by subset resolution")
	}
	if !base.IsSafe(knowledge.Cell{Row: 1, Col: 2}) {
		t.Error("(1, 2) should be proven safe by subset resolution")
	}
}

func TestDerivedSentencesPersist(t *testing.T) {
	base := knowledge.NewBase()
	base.Add(newSentence(t, []knowledge.Cell{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 1}}, 2))
	base.Add(newSentence(t, []knowledge.Cell{{Row: 0, Col: 0}, {Row: 0, Col: 1}}, 1))
	e := New(base, 4, 4)

	if err := e.close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// The remainder {(1,0), (1,1)} = 1 is undecided but must survive in
	// the knowledge base for later observations to resolve against.
	want := newSentence(t, []knowledge.Cell{{Row: 1, Col: 0}, {Row: 1, Col: 1}}, 1)
	found := false
	for _, s := range base.Sentences() {
		if s.Equal(want) {
			found = true
		}
	}
	if !found {
		t.Errorf("derived sentence %v should persist, have %d sentences", want, len(base.Sentences()))
	}
}

func TestChainedConclusionsReachFixedPoint(t *testing.T) {
	base := knowledge.NewBase()
	// {(2,2)} = 1 resolves to a mine, which collapses the second sentence
	// to {(2,3)} = 0, which proves (2,3) safe.
	base.Add(newSentence(t, []knowledge.Cell{{Row: 2, Col: 2}}, 1))
	base.Add(newSentence(t, []knowledge.Cell{{Row: 2, Col: 2}, {Row: 2, Col: 3}}, 1))
	e := New(base, 4, 4)

	if err := e.close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if !base.IsMine(knowledge.Cell{Row: 2, Col: 2}) {
		t.Error("(2, 2) should be a proven mine")
	}
	if !base.IsSafe(knowledge.Cell{Row: 2, Col: 3}) {
		t.Error("(2, 3) should be proven safe")
	}
}

func TestProbedNeighborhoodAddsNoSentence(t *testing.T) {
	base := knowledge.NewBase()
	e := New(base, 3, 3)

	// Probe every cell around the center with zero clues, then the center
	// itself. Its whole neighborhood is already resolved, so no sentence
	// is left behind.
	for _, c := range (knowledge.Cell{Row: 1, Col: 1}).Neighborhood(3, 3) {
		if err := e.AddKnowledge(c, 0); err != nil {
			t.Fatalf("probe %v: %v", c, err)
		}
	}
	if err := e.AddKnowledge(knowledge.Cell{Row: 1, Col: 1}, 0); err != nil {
		t.Fatalf("center probe: %v", err)
	}

	if len(base.Sentences()) != 0 {
		t.Errorf("expected no live sentences, got %d", len(base.Sentences()))
	}
	if !base.IsSafe(knowledge.Cell{Row: 1, Col: 1}) {
		t.Error("the probed center must be marked safe")
	}
}

func TestRejectsOutOfBoundsProbe(t *testing.T) {
	e := New(knowledge.NewBase(), 3, 3)

	err := e.AddKnowledge(knowledge.Cell{Row: 3, Col: 0}, 0)
	if !errors.Is(err, internalerr.ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestRejectsRedundantProbe(t *testing.T) {
	base := knowledge.NewBase()
	e := New(base, 3, 3)

	if err := e.AddKnowledge(knowledge.Cell{Row: 0, Col: 0}, 1); err != nil {
		t.Fatalf("first probe: %v", err)
	}
	before := len(base.Sentences())

	err := e.AddKnowledge(knowledge.Cell{Row: 0, Col: 0}, 1)
	if !errors.Is(err, internalerr.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
	if len(base.Sentences()) != before {
		t.Error("a rejected probe must not change knowledge")
	}
}

func TestRejectsMalformedCount(t *testing.T) {
	e := New(knowledge.NewBase(), 3, 3)

	// The corner has three neighbors; clues outside [0, 3] are malformed.
	if err := e.AddKnowledge(knowledge.Cell{Row: 0, Col: 0}, 4); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for count 4, got %v", err)
	}
	if err := e.AddKnowledge(knowledge.Cell{Row: 0, Col: 0}, -1); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for count -1, got %v", err)
	}
}

func TestCertaintySetsGrowMonotonically(t *testing.T) {
	base := knowledge.NewBase()
	e := New(base, 1, 4)

	probes := []struct {
		cell  knowledge.Cell
		count int
	}{
		{knowledge.Cell{Row: 0, Col: 0}, 1},
		{knowledge.Cell{Row: 0, Col: 2}, 1},
		{knowledge.Cell{Row: 0, Col: 3}, 0},
	}

	var safes, mines, moves int
	for _, p := range probes {
		if err := e.AddKnowledge(p.cell, p.count); err != nil {
			t.Fatalf("probe %v: %v", p.cell, err)
		}
		if len(base.Safes()) < safes || len(base.Mines()) < mines || len(base.MovesMade()) < moves {
			t.Fatalf("certainty sets shrank after probing %v", p.cell)
		}
		safes, mines, moves = len(base.Safes()), len(base.Mines()), len(base.MovesMade())
	}
	if moves != 3 {
		t.Errorf("expected 3 moves made, got %d", moves)
	}
}

func TestNoSentenceReferencesResolvedCells(t *testing.T) {
	base := knowledge.NewBase()
	e := New(base, 2, 3)

	if err := e.AddKnowledge(knowledge.Cell{Row: 1, Col: 1}, 1); err != nil {
		t.Fatalf("probe: %v", err)
	}
	if err := e.AddKnowledge(knowledge.Cell{Row: 1, Col: 0}, 1); err != nil {
		t.Fatalf("probe: %v", err)
	}

	for _, s := range base.Sentences() {
		for _, c := range s.Cells() {
			if base.IsSafe(c) || base.IsMine(c) {
				t.Errorf("sentence %v references resolved cell %v", s, c)
			}
		}
		if s.Count() < 0 || s.Count() > s.Len() {
			t.Errorf("sentence %v violates the count invariant", s)
		}
	}
}
