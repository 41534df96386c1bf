package knowledge

// Base is the agent's knowledge base: the certainty sets accumulated so far
// plus every live sentence. It has exactly one owner (the agent) and is
// never shared across goroutines.
type Base struct {
	movesMade map[Cell]struct{}
	safes     map[Cell]struct{}
	mines     map[Cell]struct{}
	sentences []*Sentence
}

// NewBase creates an empty knowledge base.
func NewBase() *Base {
	return &Base{
		movesMade: make(map[Cell]struct{}),
		safes:     make(map[Cell]struct{}),
		mines:     make(map[Cell]struct{}),
	}
}

// RecordMove adds a probed cell to the moves-made set. Idempotent.
func (b *Base) RecordMove(c Cell) {
	b.movesMade[c] = struct{}{}
}

// MarkMine adds c to the proven-mine set and removes it from every live
// sentence, adjusting their counts. Idempotent: re-marking a known mine
// leaves all state unchanged because the sentence removals no-op.
func (b *Base) MarkMine(c Cell) {
	b.mines[c] = struct{}{}
	for _, s := range b.sentences {
		s.MarkMine(c)
	}
}

// MarkSafe adds c to the proven-safe set and removes it from every live
// sentence without touching their counts. Idempotent.
func (b *Base) MarkSafe(c Cell) {
	b.safes[c] = struct{}{}
	for _, s := range b.sentences {
		s.MarkSafe(c)
	}
}

// Add inserts a sentence unless an equal one is already held. Returns true
// when the sentence was inserted.
func (b *Base) Add(s *Sentence) bool {
	for _, held := range b.sentences {
		if held.Equal(s) {
			return false
		}
	}
	b.sentences = append(b.sentences, s)
	return true
}

// Sentences returns the live sentence collection in insertion order. The
// slice is shared with the base; callers must not grow or reorder it.
func (b *Base) Sentences() []*Sentence {
	return b.sentences
}

// Prune drops fully resolved sentences (empty cell set). They carry no
// information; dropping them keeps closure passes short.
func (b *Base) Prune() {
	kept := b.sentences[:0]
	for _, s := range b.sentences {
		if !s.Resolved() {
			kept = append(kept, s)
		}
	}
	b.sentences = kept
}

// IsMine reports whether c is a proven mine.
func (b *Base) IsMine(c Cell) bool {
	_, ok := b.mines[c]
	return ok
}

// IsSafe reports whether c is proven safe.
func (b *Base) IsSafe(c Cell) bool {
	_, ok := b.safes[c]
	return ok
}

// Probed reports whether c has already been probed.
func (b *Base) Probed(c Cell) bool {
	_, ok := b.movesMade[c]
	return ok
}

// Mines returns the proven-mine cells in sorted order.
func (b *Base) Mines() []Cell { return sortedCells(b.mines) }

// Safes returns the proven-safe cells in sorted order.
func (b *Base) Safes() []Cell { return sortedCells(b.safes) }

// MovesMade returns the probed cells in sorted order.
func (b *Base) MovesMade() []Cell { return sortedCells(b.movesMade) }

// MineCount returns the number of proven mines.
func (b *Base) MineCount() int { return len(b.mines) }

func sortedCells(set map[Cell]struct{}) []Cell {
	out := make([]Cell, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	SortCells(out)
	return out
}
