package knowledge

import (
	"fmt"
	"strings"
)

// Sentence is an atomic logical constraint: exactly Count of the cells in
// its set are mines. Sentences only ever shrink: MarkMine and MarkSafe
// remove resolved cells as the agent learns facts.
type Sentence struct {
	cells map[Cell]struct{}
	count int
}

// NewSentence builds a sentence over the given cells. Duplicate cells in
// the input collapse into one. The count must satisfy 0 <= count <= |cells|
// after deduplication; a violation is a caller bug, not a deducible state.
func NewSentence(cells []Cell, count int) (*Sentence, error) {
	set := make(map[Cell]struct{}, len(cells))
	for _, c := range cells {
		set[c] = struct{}{}
	}
	if count < 0 || count > len(set) {
		return nil, fmt.Errorf("sentence count %d out of range for %d cells", count, len(set))
	}
	return &Sentence{cells: set, count: count}, nil
}

// Count returns the number of mines known to be among the sentence's cells.
func (s *Sentence) Count() int { return s.count }

// Len returns the number of unresolved cells in the sentence.
func (s *Sentence) Len() int { return len(s.cells) }

// Contains reports whether the sentence still references the cell.
func (s *Sentence) Contains(c Cell) bool {
	_, ok := s.cells[c]
	return ok
}

// Cells returns the unresolved cells in sorted order. The slice is a copy.
func (s *Sentence) Cells() []Cell {
	out := make([]Cell, 0, len(s.cells))
	for c := range s.cells {
		out = append(out, c)
	}
	SortCells(out)
	return out
}

// KnownMines returns all cells in the sentence that are provably mines:
// when the count equals the number of remaining cells, every one of them
// must be a mine. The second return is false when nothing can be concluded.
func (s *Sentence) KnownMines() ([]Cell, bool) {
	if len(s.cells) == 0 || s.count != len(s.cells) {
		return nil, false
	}
	return s.Cells(), true
}

// KnownSafes returns all cells in the sentence that are provably safe:
// when the count is zero, no remaining cell can be a mine. The second
// return is false when nothing can be concluded.
func (s *Sentence) KnownSafes() ([]Cell, bool) {
	if len(s.cells) == 0 || s.count != 0 {
		return nil, false
	}
	return s.Cells(), true
}

// MarkMine records the fact that c is a mine: the cell leaves the set and
// the count drops by one. No-op if the sentence does not reference c.
func (s *Sentence) MarkMine(c Cell) {
	if _, ok := s.cells[c]; !ok {
		return
	}
	delete(s.cells, c)
	s.count--
}

// MarkSafe records the fact that c is safe: the cell leaves the set and
// the count is unchanged, since the mines are among the cells that remain.
// No-op if the sentence does not reference c.
func (s *Sentence) MarkSafe(c Cell) {
	if _, ok := s.cells[c]; !ok {
		return
	}
	delete(s.cells, c)
}

// Resolved reports whether the sentence carries no remaining information.
func (s *Sentence) Resolved() bool {
	return len(s.cells) == 0
}

// Subset reports whether every cell of s is also in other.
func (s *Sentence) Subset(other *Sentence) bool {
	if len(s.cells) > len(other.cells) {
		return false
	}
	for c := range s.cells {
		if _, ok := other.cells[c]; !ok {
			return false
		}
	}
	return true
}

// Equal reports structural equality: same cell set, same count.
func (s *Sentence) Equal(other *Sentence) bool {
	if s.count != other.count || len(s.cells) != len(other.cells) {
		return false
	}
	for c := range s.cells {
		if _, ok := other.cells[c]; !ok {
			return false
		}
	}
	return true
}

// Minus derives the subset-resolution remainder: the cells of s not in sub,
// with sub's count subtracted. Callers must ensure sub is a subset of s.
func (s *Sentence) Minus(sub *Sentence) (*Sentence, error) {
	rest := make([]Cell, 0, len(s.cells)-len(sub.cells))
	for c := range s.cells {
		if _, ok := sub.cells[c]; !ok {
			rest = append(rest, c)
		}
	}
	return NewSentence(rest, s.count-sub.count)
}

// String renders the sentence in canonical form, e.g. "{(0, 1) (1, 1)} = 1".
func (s *Sentence) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, c := range s.Cells() {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(c.String())
	}
	fmt.Fprintf(&b, "} = %d", s.count)
	return b.String()
}
