// Package inference implements the agent's deduction procedure: each clue
// observation is folded into the knowledge base and propagated to a fixed
// point, so that every cell provable safe or mined from current knowledge
// is classified before the next probe.
package inference

import (
	"fmt"

	"github.com/cognicore/sweeper/pkg/sweeper/internalerr"
	"github.com/cognicore/sweeper/pkg/sweeper/knowledge"
)

// Engine runs clue observations to their deductive closure over a
// knowledge base it shares with its owning agent.
type Engine struct {
	height int
	width  int
	base   *knowledge.Base
}

// New creates an engine over the given knowledge base and board bounds.
func New(base *knowledge.Base, height, width int) *Engine {
	return &Engine{height: height, width: width, base: base}
}

// AddKnowledge records that the probed cell has exactly count mines among
// its neighbors, then deduces everything that follows: direct sentence
// resolution, the probed-cells rule, and subset resolution between sentence
// pairs, repeated until no set changes.
//
// The cell must be in bounds and not previously probed; count must lie in
// [0, |neighborhood|]. Violations are rejected before any state changes.
func (e *Engine) AddKnowledge(cell knowledge.Cell, count int) error {
	if cell.Row < 0 || cell.Row >= e.height || cell.Col < 0 || cell.Col >= e.width {
		return fmt.Errorf("probe %v: %w", cell, internalerr.ErrOutOfBounds)
	}
	if e.base.Probed(cell) {
		return fmt.Errorf("probe %v already made: %w", cell, internalerr.ErrDuplicate)
	}

	neighborhood := cell.Neighborhood(e.height, e.width)
	if count < 0 || count > len(neighborhood) {
		return fmt.Errorf("clue %d for %v with %d neighbors: %w",
			count, cell, len(neighborhood), internalerr.ErrInvalidInput)
	}

	e.base.RecordMove(cell)
	e.base.MarkSafe(cell)

	// Build the clue sentence with already-resolved cells stripped: known
	// safes leave the set, known mines leave it and lower the count. A
	// sentence that references a resolved cell would break the knowledge
	// base invariant the moment it is inserted.
	cells := make([]knowledge.Cell, 0, len(neighborhood))
	remaining := count
	for _, n := range neighborhood {
		switch {
		case e.base.IsSafe(n):
		case e.base.IsMine(n):
			remaining--
		default:
			cells = append(cells, n)
		}
	}
	if remaining < 0 || remaining > len(cells) {
		return fmt.Errorf("clue %d for %v contradicts known mines: %w",
			count, cell, internalerr.ErrInvalidInput)
	}
	if len(cells) > 0 {
		s, err := knowledge.NewSentence(cells, remaining)
		if err != nil {
			return fmt.Errorf("clue for %v: %w", cell, internalerr.ErrInvalidInput)
		}
		e.base.Add(s)
	}

	if err := e.close(); err != nil {
		return err
	}
	e.base.Prune()
	return nil
}

// close runs the deduction rules until a full pass changes nothing.
// Termination: the certainty sets only grow and are bounded by the board,
// and distinct derivable sentences over a finite board are finite.
func (e *Engine) close() error {
	for {
		changed := e.resolveDirect()
		if e.applyProbedRule() {
			changed = true
		}
		derived, err := e.resolveSubsets()
		if err != nil {
			return err
		}
		if derived {
			changed = true
		}
		if !changed {
			return nil
		}
	}
}

// resolveDirect classifies every cell a single sentence decides outright:
// count == |cells| makes them all mines, count == 0 makes them all safe.
// Marking a cell updates every other sentence, which can make new sentences
// decidable, so the scan repeats until a pass concludes nothing.
func (e *Engine) resolveDirect() bool {
	changed := false
	for {
		var mines, safes []knowledge.Cell
		for _, s := range e.base.Sentences() {
			if found, ok := s.KnownMines(); ok {
				mines = append(mines, found...)
			} else if found, ok := s.KnownSafes(); ok {
				safes = append(safes, found...)
			}
		}
		progressed := false
		for _, c := range mines {
			if !e.base.IsMine(c) {
				progressed = true
			}
			e.base.MarkMine(c)
		}
		for _, c := range safes {
			if !e.base.IsSafe(c) {
				progressed = true
			}
			e.base.MarkSafe(c)
		}
		if !progressed {
			return changed
		}
		changed = true
	}
}

// applyProbedRule applies the probed-cells shortcut: a probed cell is never
// a mine (the runner only probes cells the agent chose as safe), so if a
// sentence's unprobed cells number exactly its count, each of them is a
// mine.
func (e *Engine) applyProbedRule() bool {
	var mines []knowledge.Cell
	for _, s := range e.base.Sentences() {
		if s.Count() == 0 {
			continue
		}
		var unprobed []knowledge.Cell
		for _, c := range s.Cells() {
			if !e.base.Probed(c) {
				unprobed = append(unprobed, c)
			}
		}
		if len(unprobed) == s.Count() {
			mines = append(mines, unprobed...)
		}
	}
	changed := false
	for _, c := range mines {
		if !e.base.IsMine(c) {
			changed = true
		}
		e.base.MarkMine(c)
	}
	return changed
}

// resolveSubsets derives the remainder sentence for every pair where one
// sentence's cells are a subset of another's: if B holds B.count mines and
// its subset A holds A.count of them, then B − A holds exactly
// B.count − A.count. Derived sentences persist in the knowledge base so
// later observations can resolve against them.
func (e *Engine) resolveSubsets() (bool, error) {
	sents := e.base.Sentences()
	changed := false
	for _, sub := range sents {
		if sub.Resolved() {
			continue
		}
		for _, super := range sents {
			if sub == super || super.Resolved() || sub.Equal(super) {
				continue
			}
			if !sub.Subset(super) {
				continue
			}
			rest, err := super.Minus(sub)
			if err != nil {
				return false, fmt.Errorf("subset resolution %v into %v: %w",
					sub, super, internalerr.ErrInvalidInput)
			}
			if rest.Len() == 0 {
				continue
			}
			if e.base.Add(rest) {
				changed = true
			}
		}
	}
	return changed, nil
}
