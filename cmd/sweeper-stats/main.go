package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/cognicore/sweeper/pkg/sweeper/analytics"
	"github.com/cognicore/sweeper/pkg/sweeper/store/sqlite"
)

type report struct {
	Sessions  int64          `json:"sessions"`
	Wins      int64          `json:"wins"`
	WinRate   float64        `json:"win_rate"`
	AvgMoves  float64        `json:"avg_moves"`
	GuessRate float64        `json:"guess_rate"`
	Shapes    []shapeEntry   `json:"shapes"`
	Recent    []sessionEntry `json:"recent"`
}

type shapeEntry struct {
	Shape    string  `json:"shape"`
	Sessions int64   `json:"sessions"`
	Wins     int64   `json:"wins"`
	WinRate  float64 `json:"win_rate"`
}

type sessionEntry struct {
	ID      string `json:"id"`
	Shape   string `json:"shape"`
	Won     bool   `json:"won"`
	Moves   int    `json:"moves"`
	Guesses int    `json:"guesses"`
}

func main() {
	var (
		dbPath = flag.String("db", "", "Path to SQLite session store (required)")
		limit  = flag.Int("limit", 100, "Sessions to include in the report")
	)
	flag.Parse()

	if *dbPath == "" {
		log.Fatal("--db required")
	}

	ctx := context.Background()

	st, err := sqlite.OpenSQLite(ctx, *dbPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer st.Close()

	sessions, err := st.ListSessions(ctx, *limit)
	if err != nil {
		log.Fatalf("list sessions: %v", err)
	}

	analyzer := analytics.NewAnalyzer()
	for _, sess := range sessions {
		analyzer.Process(sess)
	}
	snap := analyzer.Snapshot()

	rep := report{
		Sessions:  snap.Sessions,
		Wins:      snap.Wins,
		WinRate:   snap.WinRate,
		AvgMoves:  snap.AvgMoves,
		GuessRate: snap.GuessRate,
	}
	for _, s := range snap.Shapes {
		rep.Shapes = append(rep.Shapes, shapeEntry{
			Shape: s.Shape, Sessions: s.Sessions, Wins: s.Wins, WinRate: s.WinRate,
		})
	}
	for _, sess := range sessions {
		rep.Recent = append(rep.Recent, sessionEntry{
			ID:      sess.ID,
			Shape:   fmt.Sprintf("%dx%d/%d", sess.Height, sess.Width, sess.Mines),
			Won:     sess.Won,
			Moves:   len(sess.Moves),
			Guesses: sess.Guesses,
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		log.Fatalf("encode report: %v", err)
	}
}
