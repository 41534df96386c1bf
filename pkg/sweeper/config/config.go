package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/sweeper/pkg/sweeper/internalerr"
)

// Config is the full run configuration.
type Config struct {
	Board BoardConfig `yaml:"board"`
	Run   RunConfig   `yaml:"run"`
	Store StoreConfig `yaml:"store"`
}

// BoardConfig describes the boards to generate.
type BoardConfig struct {
	Height int `yaml:"height"`
	Width  int `yaml:"width"`
	Mines  int `yaml:"mines"`
}

// RunConfig controls how many games to play and how.
type RunConfig struct {
	Games    int   `yaml:"games"`
	Seed     int64 `yaml:"seed"`
	MaxMoves int   `yaml:"max_moves"`
}

// StoreConfig points at the session database. An empty path means sessions
// are kept in memory only.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// Default returns the configuration used when no file is given: one
// beginner-sized game, time-seeded.
func Default() Config {
	board, _ := Preset("beginner")
	return Config{
		Board: board,
		Run:   RunConfig{Games: 1},
	}
}

// Load reads a YAML configuration file and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for impossible values.
func (c *Config) Validate() error {
	if c.Board.Height <= 0 || c.Board.Width <= 0 {
		return fmt.Errorf("board %dx%d: %w",
			c.Board.Height, c.Board.Width, internalerr.ErrInvalidConfig)
	}
	if c.Board.Mines < 0 || c.Board.Mines > c.Board.Height*c.Board.Width {
		return fmt.Errorf("%d mines on %dx%d board: %w",
			c.Board.Mines, c.Board.Height, c.Board.Width, internalerr.ErrInvalidConfig)
	}
	if c.Run.Games <= 0 {
		return fmt.Errorf("games %d: %w", c.Run.Games, internalerr.ErrInvalidConfig)
	}
	if c.Run.MaxMoves < 0 {
		return fmt.Errorf("max_moves %d: %w", c.Run.MaxMoves, internalerr.ErrInvalidConfig)
	}
	return nil
}

// Preset returns a named standard board layout. The second return is false
// for unknown names.
func Preset(name string) (BoardConfig, bool) {
	switch name {
	case "beginner":
		return BoardConfig{Height: 9, Width: 9, Mines: 10}, true
	case "intermediate":
		return BoardConfig{Height: 16, Width: 16, Mines: 40}, true
	case "expert":
		return BoardConfig{Height: 16, Width: 30, Mines: 99}, true
	}
	return BoardConfig{}, false
}
