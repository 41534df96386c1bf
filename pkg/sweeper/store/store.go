package store

import (
	"context"
	"time"
)

// Store persists finished game sessions and answers aggregate queries.
type Store interface {
	Close() error

	SaveSession(ctx context.Context, s Session) error
	GetSession(ctx context.Context, id string) (Session, bool, error)
	ListSessions(ctx context.Context, limit int) ([]Session, error)
	Stats(ctx context.Context) (Stats, error)
}

// Session is the transcript of one finished game.
type Session struct {
	ID       string
	PlayedAt time.Time
	Height   int
	Width    int
	Mines    int
	Won      bool
	Guesses  int
	Flagged  int
	Moves    []Move
}

// Move is one probe in a session, in play order.
type Move struct {
	Index int
	Row   int
	Col   int
	Clue  int
	Guess bool
	Mine  bool
}

// Stats aggregates over every stored session.
type Stats struct {
	Sessions  int64
	Wins      int64
	WinRate   float64
	AvgMoves  float64
	GuessRate float64
}
