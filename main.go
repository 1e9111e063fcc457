package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"gamesearch/communication/client"
	"gamesearch/conf"
	"gamesearch/engine"
	"gamesearch/experiments"
	"gamesearch/game"
	"gamesearch/game/chess"
	"gamesearch/game/tictactoe"
	"gamesearch/searcher"
	"gamesearch/searcher/agent"

	notnil "github.com/notnil/chess"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	confFile := flag.String("config", "", "TOML configuration file")
	mode := flag.String("mode", "serve", "One of serve, selfplay, pruning, matchups or dump-config")
	gameName := flag.String("game", agent.GameTicTacToe, "Game played in selfplay mode")
	remote := flag.String("remote", "", "Agent server URL playing the maximizing side of tic-tac-toe selfplay")
	debug := flag.Bool("debug", false, "Log every search and move")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	c := conf.Default()
	if *confFile != "" {
		var err error
		c, err = conf.Open(*confFile)
		if err != nil {
			log.Fatal().Err(err).Str("file", *confFile).Msg("failed to load configuration")
		}
	}
	if *debug || c.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	var err error
	switch *mode {
	case "serve":
		err = serve(c)
	case "selfplay":
		if *remote != "" {
			err = remotePlay(c, *remote)
		} else {
			err = selfplay(c, *gameName)
		}
	case "pruning":
		_, err = experiments.RunPruningExperiment(experimentConfig(c))
	case "matchups":
		_, err = experiments.RunMatchupExperiment(experimentConfig(c))
	case "dump-config":
		err = c.Dump(os.Stdout)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatal().Err(err).Str("mode", *mode).Msg("failed")
	}
}

func experimentConfig(c *conf.Conf) experiments.Config {
	return experiments.Config{
		Output:      c.Output,
		Games:       c.Games,
		Concurrency: c.Concurrency,
		Seed:        c.Seed,
		MaxTurns:    c.MaxTurns,
		Player:      c.Player,
		ChessDepth:  c.ChessDepth,
		ChessRules:  c.ChessRules,
	}
}

func serve(c *conf.Conf) error {
	srv := agent.NewServer(agent.ServerConfig{
		Depth:      c.Depth,
		ChessDepth: c.ChessDepth,
		MaxDepth:   c.MaxDepth,
		Player:     c.Player,
	})
	server := &http.Server{
		Addr:    ":" + strconv.Itoa(int(c.Port)),
		Handler: srv.Handler(),
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	log.Info().Str("addr", server.Addr).Msg("agent server listening")
	var runErr error
	select {
	case <-sigCtx.Done():
		log.Info().Msg("shutdown signal received")
	case err, ok := <-serverErrCh:
		if ok {
			runErr = err
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	return runErr
}

func selfplay(c *conf.Conf, name string) error {
	switch name {
	case agent.GameTicTacToe:
		rules, err := tictactoe.NewRules(c.Player)
		if err != nil {
			return err
		}
		return play[tictactoe.Board, int](rules, tictactoe.NewBoard(), c.Depth, c.MaxTurns)
	case agent.GameChess:
		return play[chess.Board, int](chess.StepRules{}, chess.NewBoard(), c.ChessDepth, c.MaxTurns)
	case agent.GameChessLegal:
		return play[*notnil.Position, int](chess.LegalRules{}, chess.StartingPosition(), c.ChessDepth, c.MaxTurns)
	}
	return fmt.Errorf("unknown game %q", name)
}

// play lets one search agent play both sides and prints the final position.
func play[P any, S game.Score](rules game.Rules[P, S], start P, depth, maxTurns int) error {
	a, err := agent.NewSearchAgent[P, S](searcher.NewAlphaBeta(rules, searcher.WithMetrics()), depth)
	if err != nil {
		return err
	}
	final, gameMetric, _ := engine.NewLocal(rules, a, a, maxTurns).Run(start, true)
	fmt.Printf("%v\n%s after %d moves\n", final, gameMetric.Outcome, gameMetric.TotalMoves)
	return nil
}

// remotePlay checks the server is up and lets it play tic-tac-toe against a
// local search agent.
func remotePlay(c *conf.Conf, url string) error {
	comm := client.NewClientCommunicator(url, 30*time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := comm.Health(ctx); err != nil {
		return err
	}

	rules, err := tictactoe.NewRules(c.Player)
	if err != nil {
		return err
	}
	local, err := agent.NewSearchAgent[tictactoe.Board, int](searcher.NewAlphaBeta[tictactoe.Board, int](rules), c.Depth)
	if err != nil {
		return err
	}
	remote := client.NewRemoteTicTacToe(comm, c.Player, c.Depth, 30*time.Second)

	final, gameMetric, _ := engine.NewLocal[tictactoe.Board, int](rules, remote, local, c.MaxTurns).Run(tictactoe.NewBoard(), true)
	if gameMetric.Outcome == string(engine.Aborted) {
		return errors.New("game aborted: the remote agent failed to move")
	}
	fmt.Printf("%v\n%s after %d moves\n", final, gameMetric.Outcome, gameMetric.TotalMoves)
	return nil
}
