package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cognicore/sweeper/internal/render"
	"github.com/cognicore/sweeper/pkg/sweeper"
	"github.com/cognicore/sweeper/pkg/sweeper/analytics"
	"github.com/cognicore/sweeper/pkg/sweeper/board"
	"github.com/cognicore/sweeper/pkg/sweeper/config"
	"github.com/cognicore/sweeper/pkg/sweeper/game"
	"github.com/cognicore/sweeper/pkg/sweeper/store"
	"github.com/cognicore/sweeper/pkg/sweeper/store/memstore"
	"github.com/cognicore/sweeper/pkg/sweeper/store/sqlite"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to YAML config file")
		preset     = flag.String("preset", "", "Board preset: beginner, intermediate, expert")
		height     = flag.Int("height", 0, "Board height (overrides config/preset)")
		width      = flag.Int("width", 0, "Board width (overrides config/preset)")
		mines      = flag.Int("mines", -1, "Mine count (overrides config/preset)")
		games      = flag.Int("games", 0, "Number of games to play (overrides config)")
		seed       = flag.Int64("seed", 0, "Random seed, 0 = time-based")
		dbPath     = flag.String("db", "", "Optional: SQLite path to store sessions")
		show       = flag.Bool("show", false, "Render each finished board")
		verbose    = flag.Bool("verbose", false, "Log every probe")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = *loaded
	}
	if *preset != "" {
		b, ok := config.Preset(*preset)
		if !ok {
			log.Fatalf("unknown preset %q", *preset)
		}
		cfg.Board = b
	}
	if *height > 0 {
		cfg.Board.Height = *height
	}
	if *width > 0 {
		cfg.Board.Width = *width
	}
	if *mines >= 0 {
		cfg.Board.Mines = *mines
	}
	if *games > 0 {
		cfg.Run.Games = *games
	}
	if *seed != 0 {
		cfg.Run.Seed = *seed
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logrus.New()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	ctx := context.Background()

	storePath := cfg.Store.Path
	if *dbPath != "" {
		storePath = *dbPath
	}

	var st store.Store
	if storePath != "" {
		var err error
		st, err = sqlite.OpenSQLite(ctx, storePath)
		if err != nil {
			log.Fatalf("open store: %v", err)
		}
	} else {
		st = memstore.New()
	}
	defer st.Close()

	runSeed := cfg.Run.Seed
	if runSeed == 0 {
		runSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(runSeed))

	runner := game.NewRunner(logger)
	runner.MaxMoves = cfg.Run.MaxMoves
	analyzer := analytics.NewAnalyzer()

	for i := 0; i < cfg.Run.Games; i++ {
		b, err := board.New(cfg.Board.Height, cfg.Board.Width, cfg.Board.Mines, rng)
		if err != nil {
			log.Fatalf("generate board: %v", err)
		}
		agent, err := sweeper.New(sweeper.Options{
			Height: cfg.Board.Height,
			Width:  cfg.Board.Width,
			Rand:   rng,
		})
		if err != nil {
			log.Fatalf("create agent: %v", err)
		}

		sess, err := runner.Play(b, agent)
		if err != nil {
			log.Fatalf("game %d: %v", i+1, err)
		}
		if *show {
			fmt.Print(render.Session(sess, agent.KnownMines()))
		}
		if err := st.SaveSession(ctx, sess); err != nil {
			log.Fatalf("save session: %v", err)
		}
		analyzer.Process(sess)
	}

	snap := analyzer.Snapshot()
	fmt.Printf("played %d games on %dx%d/%d (seed %d)\n",
		snap.Sessions, cfg.Board.Height, cfg.Board.Width, cfg.Board.Mines, runSeed)
	fmt.Printf("wins: %d (%.1f%%), avg moves: %.1f, guess rate: %.1f%%\n",
		snap.Wins, snap.WinRate*100, snap.AvgMoves, snap.GuessRate*100)
}
