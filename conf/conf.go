// Configuration specification
package conf

import (
	"errors"

	"gamesearch/game/tictactoe"
	"gamesearch/meta"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Chess rule sets
const (
	RulesStep  = "step"
	RulesLegal = "legal"
)

// File representation
type conf struct {
	Debug  bool `toml:"debug"`
	Search struct {
		Depth    int `toml:"depth"`
		MaxDepth int `toml:"max_depth"`
	} `toml:"search"`
	TicTacToe struct {
		Player string `toml:"player"`
	} `toml:"tictactoe"`
	Chess struct {
		Depth int    `toml:"depth"`
		Rules string `toml:"rules"`
	} `toml:"chess"`
	Server struct {
		Port uint `toml:"port"`
	} `toml:"server"`
	Experiment struct {
		Games       int    `toml:"games"`
		Concurrency int    `toml:"concurrency"`
		Output      string `toml:"output"`
		Seed        uint64 `toml:"seed"`
		MaxTurns    int    `toml:"max_turns"`
	} `toml:"experiment"`
}

// Public configuration
type Conf struct {
	Debug bool

	// Search configuration
	Depth    int // Default tic-tac-toe depth
	MaxDepth int // Largest depth a server request may ask for

	// Game configuration
	Player     tictactoe.Mark // Maximizing tic-tac-toe mark
	ChessDepth int
	ChessRules string

	// Server configuration
	Port uint16

	// Experiment configuration
	Games       int // Per matchup
	Concurrency int
	Output      string // Root directory of result files
	Seed        uint64
	MaxTurns    int
}

// Configuration object used by default
var defaultConfig = Conf{
	Depth:    meta.DEPTH,
	MaxDepth: meta.MAX_DEPTH,

	Player:     tictactoe.X,
	ChessDepth: meta.CHESS_DEPTH,
	ChessRules: RulesStep,

	Port: meta.PORT,

	Games:       meta.GAMES,
	Concurrency: meta.GO_ROUTINES,
	Output:      "results",
	Seed:        1,
	MaxTurns:    meta.MAX_TURNS,
}
