// Package game drives one full game: it asks the agent for moves, probes
// the board, feeds clues back into the agent, and records the transcript.
package game

import (
	cryptorand "crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"

	"github.com/cognicore/sweeper/pkg/sweeper"
	"github.com/cognicore/sweeper/pkg/sweeper/board"
	"github.com/cognicore/sweeper/pkg/sweeper/store"
)

// Runner plays agents against boards. It only ever probes cells the agent
// chose itself, which is the precondition the engine's probed-cells rule
// relies on.
type Runner struct {
	// MaxMoves bounds the number of probes per game. Zero means the board
	// size, which every game finishes under.
	MaxMoves int

	log     *logrus.Logger
	entropy *ulid.MonotonicEntropy
}

// NewRunner creates a runner logging through log. A nil logger gets a
// default logrus logger at the standard level.
func NewRunner(log *logrus.Logger) *Runner {
	if log == nil {
		log = logrus.New()
	}
	return &Runner{
		log:     log,
		entropy: ulid.Monotonic(cryptorand.Reader, 0),
	}
}

// Play runs one game to completion and returns its transcript. The game
// ends when the agent probes a mine (loss), deduces every mine (win check
// via flagging), or runs out of cells to probe.
func (r *Runner) Play(b *board.Board, a *sweeper.Agent) (store.Session, error) {
	sess := store.Session{
		ID:       ulid.MustNew(ulid.Now(), r.entropy).String(),
		PlayedAt: time.Now(),
		Height:   b.Height(),
		Width:    b.Width(),
		Mines:    b.MineCount(),
	}
	log := r.log.WithField("session", sess.ID)

	maxMoves := r.MaxMoves
	if maxMoves <= 0 {
		maxMoves = b.Height() * b.Width()
	}

	lost := false
	for move := 0; move < maxMoves; move++ {
		cell, ok := a.SafeMove()
		guess := false
		if !ok {
			cell, ok = a.RandomMove()
			guess = true
		}
		if !ok {
			log.Debug("no moves left")
			break
		}
		if guess {
			sess.Guesses++
		}

		if b.IsMine(cell) {
			sess.Moves = append(sess.Moves, store.Move{
				Index: move, Row: cell.Row, Col: cell.Col, Guess: guess, Mine: true,
			})
			log.WithFields(logrus.Fields{
				"move": move, "cell": cell.String(), "guess": guess,
			}).Info("probed a mine, game lost")
			lost = true
			break
		}

		clue, err := b.NearbyMines(cell)
		if err != nil {
			return sess, err
		}
		sess.Moves = append(sess.Moves, store.Move{
			Index: move, Row: cell.Row, Col: cell.Col, Clue: clue, Guess: guess,
		})
		if err := a.AddKnowledge(cell, clue); err != nil {
			return sess, err
		}

		log.WithFields(logrus.Fields{
			"move":      move,
			"cell":      cell.String(),
			"clue":      clue,
			"guess":     guess,
			"mines":     len(a.KnownMines()),
			"sentences": a.SentenceCount(),
		}).Debug("probe")

		if len(a.KnownMines()) == b.MineCount() {
			break
		}
	}

	if !lost {
		for _, c := range a.KnownMines() {
			if err := b.Flag(c); err != nil {
				return sess, err
			}
			sess.Flagged++
		}
		sess.Won = b.Won()
	}

	log.WithFields(logrus.Fields{
		"won":     sess.Won,
		"moves":   len(sess.Moves),
		"guesses": sess.Guesses,
		"flagged": sess.Flagged,
	}).Info("game finished")
	return sess, nil
}
