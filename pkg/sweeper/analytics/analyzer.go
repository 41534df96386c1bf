package analytics

import (
	"fmt"
	"sort"

	"github.com/cognicore/sweeper/pkg/sweeper/store"
)

// Analyzer aggregates session-level play stats.
type Analyzer struct {
	sessions int64
	wins     int64
	moves    int64
	guesses  int64
	byShape  map[string]*shapeStats
}

type shapeStats struct {
	sessions int64
	wins     int64
}

// NewAnalyzer creates an empty analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{byShape: make(map[string]*shapeStats)}
}

// Process consumes one finished session.
func (a *Analyzer) Process(sess store.Session) {
	a.sessions++
	if sess.Won {
		a.wins++
	}
	a.moves += int64(len(sess.Moves))
	a.guesses += int64(sess.Guesses)

	key := shapeKey(sess.Height, sess.Width, sess.Mines)
	if a.byShape[key] == nil {
		a.byShape[key] = &shapeStats{}
	}
	a.byShape[key].sessions++
	if sess.Won {
		a.byShape[key].wins++
	}
}

// ShapeSnapshot is the per-board-shape slice of a snapshot.
type ShapeSnapshot struct {
	Shape    string
	Sessions int64
	Wins     int64
	WinRate  float64
}

// Snapshot summarizes everything processed so far.
type Snapshot struct {
	Sessions  int64
	Wins      int64
	WinRate   float64
	AvgMoves  float64
	GuessRate float64
	Shapes    []ShapeSnapshot
}

// Snapshot returns the current aggregate view. Shape entries are sorted by
// key for deterministic output.
func (a *Analyzer) Snapshot() Snapshot {
	snap := Snapshot{
		Sessions: a.sessions,
		Wins:     a.wins,
	}
	if a.sessions > 0 {
		snap.WinRate = float64(a.wins) / float64(a.sessions)
		snap.AvgMoves = float64(a.moves) / float64(a.sessions)
	}
	if a.moves > 0 {
		snap.GuessRate = float64(a.guesses) / float64(a.moves)
	}

	keys := make([]string, 0, len(a.byShape))
	for k := range a.byShape {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		s := a.byShape[k]
		entry := ShapeSnapshot{Shape: k, Sessions: s.sessions, Wins: s.wins}
		if s.sessions > 0 {
			entry.WinRate = float64(s.wins) / float64(s.sessions)
		}
		snap.Shapes = append(snap.Shapes, entry)
	}
	return snap
}

func shapeKey(height, width, mines int) string {
	return fmt.Sprintf("%dx%d/%d", height, width, mines)
}
