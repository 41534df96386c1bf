// Package sweeper is the mine-deduction agent facade: a knowledge base of
// logical sentences, an inference engine that runs each clue to its
// deductive closure, and move selection over the resulting certainty sets.
package sweeper

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/cognicore/sweeper/pkg/sweeper/inference"
	"github.com/cognicore/sweeper/pkg/sweeper/internalerr"
	"github.com/cognicore/sweeper/pkg/sweeper/knowledge"
)

// Agent plays one board: it accumulates clue observations, deduces certain
// safes and mines, and offers the next cell to probe.
type Agent struct {
	height int
	width  int
	base   *knowledge.Base
	engine *inference.Engine
	rng    *rand.Rand
}

// Options configures an Agent.
type Options struct {
	Height int
	Width  int

	// Rand drives random move selection. Defaults to a time-seeded source;
	// inject a fixed seed for reproducible play.
	Rand *rand.Rand
}

// New creates an agent for a height×width board.
func New(opts Options) (*Agent, error) {
	if opts.Height <= 0 || opts.Width <= 0 {
		return nil, fmt.Errorf("agent board %dx%d: %w",
			opts.Height, opts.Width, internalerr.ErrInvalidInput)
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	base := knowledge.NewBase()
	return &Agent{
		height: opts.Height,
		width:  opts.Width,
		base:   base,
		engine: inference.New(base, opts.Height, opts.Width),
		rng:    rng,
	}, nil
}

// AddKnowledge feeds the agent one observation: the probed cell and the
// number of mines among its neighbors. The engine runs the observation to
// its fixed point before returning.
func (a *Agent) AddKnowledge(cell knowledge.Cell, count int) error {
	return a.engine.AddKnowledge(cell, count)
}

// SafeMove returns the lowest-coordinate cell proven safe and not yet
// probed. The second return is false when no such cell is known. Pure
// read: no agent state changes.
func (a *Agent) SafeMove() (knowledge.Cell, bool) {
	for _, c := range a.base.Safes() {
		if !a.base.Probed(c) {
			return c, true
		}
	}
	return knowledge.Cell{}, false
}

// RandomMove returns a uniformly random cell that is neither a proven mine
// nor already probed. The second return is false when no such cell exists,
// which means the board is exhausted.
func (a *Agent) RandomMove() (knowledge.Cell, bool) {
	candidates := make([]knowledge.Cell, 0, a.height*a.width)
	for r := 0; r < a.height; r++ {
		for c := 0; c < a.width; c++ {
			cell := knowledge.Cell{Row: r, Col: c}
			if a.base.Probed(cell) || a.base.IsMine(cell) {
				continue
			}
			candidates = append(candidates, cell)
		}
	}
	if len(candidates) == 0 {
		return knowledge.Cell{}, false
	}
	return candidates[a.rng.Intn(len(candidates))], true
}

// KnownMines returns the cells proven to be mines, sorted.
func (a *Agent) KnownMines() []knowledge.Cell { return a.base.Mines() }

// KnownSafes returns the cells proven safe, sorted.
func (a *Agent) KnownSafes() []knowledge.Cell { return a.base.Safes() }

// MovesMade returns the cells probed so far, sorted.
func (a *Agent) MovesMade() []knowledge.Cell { return a.base.MovesMade() }

// SentenceCount returns the number of live sentences held. Exposed for
// diagnostics and tests.
func (a *Agent) SentenceCount() int {
	return len(a.base.Sentences())
}
