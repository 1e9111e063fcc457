// Configuration loading and dumping
package conf

import (
	"fmt"
	"io"
	"os"

	"gamesearch/game/tictactoe"

	"github.com/BurntSushi/toml"
)

// Parse a configuration from R; keys missing from R keep their defaults
func load(r io.Reader) (*Conf, error) {
	// Load configuration data
	var data conf
	md, err := toml.NewDecoder(r).Decode(&data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown keys %v", ErrInvalidConfig, undecoded)
	}

	// Create a configuration object
	c := defaultConfig

	// Apply configuration requests
	if md.IsDefined("debug") {
		c.Debug = data.Debug
	}
	if md.IsDefined("search", "depth") {
		c.Depth = data.Search.Depth
	}
	if md.IsDefined("search", "max_depth") {
		c.MaxDepth = data.Search.MaxDepth
	}
	if md.IsDefined("tictactoe", "player") {
		c.Player, err = tictactoe.ParseMark(data.TicTacToe.Player)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	if md.IsDefined("chess", "depth") {
		c.ChessDepth = data.Chess.Depth
	}
	if md.IsDefined("chess", "rules") {
		c.ChessRules = data.Chess.Rules
	}
	if md.IsDefined("server", "port") {
		c.Port = uint16(data.Server.Port)
	}
	if md.IsDefined("experiment", "games") {
		c.Games = data.Experiment.Games
	}
	if md.IsDefined("experiment", "concurrency") {
		c.Concurrency = data.Experiment.Concurrency
	}
	if md.IsDefined("experiment", "output") {
		c.Output = data.Experiment.Output
	}
	if md.IsDefined("experiment", "seed") {
		c.Seed = data.Experiment.Seed
	}
	if md.IsDefined("experiment", "max_turns") {
		c.MaxTurns = data.Experiment.MaxTurns
	}
	if data.Server.Port > 0xFFFF {
		return nil, fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, data.Server.Port)
	}

	return &c, c.Validate()
}

// Open a configuration file and return it
func Open(name string) (*Conf, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return load(file)
}

// Return a copy of the default configuration
func Default() *Conf {
	c := defaultConfig
	return &c
}

// Validate reports the first setting no component can run with
func (c *Conf) Validate() error {
	switch {
	case c.Depth < 0 || c.ChessDepth < 0:
		return fmt.Errorf("%w: depths must not be negative", ErrInvalidConfig)
	case c.MaxDepth < c.Depth:
		return fmt.Errorf("%w: max_depth %d below depth %d", ErrInvalidConfig, c.MaxDepth, c.Depth)
	case c.Player != tictactoe.X && c.Player != tictactoe.O:
		return fmt.Errorf("%w: player must be %q or %q", ErrInvalidConfig, tictactoe.X, tictactoe.O)
	case c.ChessRules != RulesStep && c.ChessRules != RulesLegal:
		return fmt.Errorf("%w: chess rules must be %q or %q", ErrInvalidConfig, RulesStep, RulesLegal)
	case c.Games <= 0 || c.Concurrency <= 0 || c.MaxTurns <= 0:
		return fmt.Errorf("%w: games, concurrency and max_turns must be positive", ErrInvalidConfig)
	}
	return nil
}

// Serialise the configuration into a writer
func (c *Conf) Dump(wr io.Writer) error {
	var data conf

	data.Debug = c.Debug
	data.Search.Depth = c.Depth
	data.Search.MaxDepth = c.MaxDepth
	data.TicTacToe.Player = string(c.Player)
	data.Chess.Depth = c.ChessDepth
	data.Chess.Rules = c.ChessRules
	data.Server.Port = uint(c.Port)
	data.Experiment.Games = c.Games
	data.Experiment.Concurrency = c.Concurrency
	data.Experiment.Output = c.Output
	data.Experiment.Seed = c.Seed
	data.Experiment.MaxTurns = c.MaxTurns

	return toml.NewEncoder(wr).Encode(data)
}
