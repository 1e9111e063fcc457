package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"gamesearch/game"
	"gamesearch/game/chess"
	"gamesearch/game/tictactoe"
	"gamesearch/searcher"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	notnil "github.com/notnil/chess"
	"github.com/rs/zerolog/log"
)

// Games served by the /findmove endpoint.
const (
	GameTicTacToe  = "tictactoe"
	GameChess      = "chess"
	GameChessLegal = "chess-legal"
)

var (
	errUnknownGame = errors.New("unknown game")
	errWrongSide   = errors.New("maximizing flag disagrees with the side to move")
)

type ServerConfig struct {
	Depth      int            // Default tic-tac-toe depth
	ChessDepth int            // Default chess depth
	MaxDepth   int            // Largest depth a request may ask for
	Player     tictactoe.Mark // Default maximizing tic-tac-toe mark
}

type FindMoveRequest struct {
	Game       string `json:"game"`
	Board      string `json:"board"`
	Player     string `json:"player,omitempty"`
	Depth      *int   `json:"depth,omitempty"`
	Maximizing bool   `json:"maximizing"`
}

type FindMoveResponse struct {
	Score   float64 `json:"score"`
	Board   string  `json:"board,omitempty"`
	Move    string  `json:"move,omitempty"`
	None    bool    `json:"none"`
	Nodes   int64   `json:"nodes"`
	Cutoffs int64   `json:"cutoffs"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server answers move queries over HTTP. Every request gets its own
// searcher, so requests never share search state.
type Server struct {
	config ServerConfig
	router chi.Router
}

func NewServer(config ServerConfig) *Server {
	if config.Player == 0 {
		config.Player = tictactoe.X
	}
	s := &Server{config: config}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Post("/findmove", s.handleFindMove)

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleFindMove(w http.ResponseWriter, r *http.Request) {
	var req FindMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad request: " + err.Error()})
		return
	}

	depth := s.config.Depth
	if req.Game != GameTicTacToe {
		depth = s.config.ChessDepth
	}
	if req.Depth != nil {
		depth = *req.Depth
	}
	// A depth-0 search only proposes the submitted position itself
	if depth < 1 || (s.config.MaxDepth > 0 && depth > s.config.MaxDepth) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: fmt.Sprintf("invalid depth %d", depth)})
		return
	}

	resp, err := s.findMove(req, depth)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, searcher.ErrInvalidDepth) || errors.Is(err, errWrongSide) {
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) findMove(req FindMoveRequest, depth int) (FindMoveResponse, error) {
	switch req.Game {
	case GameTicTacToe:
		board, err := tictactoe.Parse(req.Board)
		if err != nil {
			return FindMoveResponse{}, err
		}
		player := s.config.Player
		if req.Player != "" {
			if player, err = tictactoe.ParseMark(req.Player); err != nil {
				return FindMoveResponse{}, err
			}
		}
		rules, err := tictactoe.NewRules(player)
		if err != nil {
			return FindMoveResponse{}, err
		}
		return respond[tictactoe.Board, int](rules, board, depth, req.Maximizing, func(next tictactoe.Board) (string, string) {
			cell, ok := tictactoe.Diff(board, next)
			if !ok {
				return next.String(), ""
			}
			return next.String(), strconv.Itoa(cell)
		})

	case GameChess:
		board, err := chess.Parse(req.Board)
		if err != nil {
			return FindMoveResponse{}, err
		}
		return respond[chess.Board, int](chess.StepRules{}, board, depth, req.Maximizing, func(next chess.Board) (string, string) {
			from, to, ok := chess.DiffMove(board, next)
			if !ok {
				return next.String(), ""
			}
			return next.String(), from + to
		})

	case GameChessLegal:
		pos, err := chess.ParseFEN(req.Board)
		if err != nil {
			return FindMoveResponse{}, fmt.Errorf("%w: %w", chess.ErrInvalidBoard, err)
		}
		if req.Maximizing != (pos.Turn() == notnil.White) {
			return FindMoveResponse{}, fmt.Errorf("%w: %v to move with maximizing=%t", errWrongSide, pos.Turn(), req.Maximizing)
		}
		return respond[*notnil.Position, int](chess.LegalRules{}, pos, depth, req.Maximizing, func(next *notnil.Position) (string, string) {
			move, ok := chess.LegalMove(pos, next)
			if !ok {
				return next.String(), ""
			}
			return next.String(), move.String()
		})
	}
	return FindMoveResponse{}, fmt.Errorf("%w: %q", errUnknownGame, req.Game)
}

// respond searches p and describes the proposed position with describe,
// which returns the position and the move leading to it.
func respond[P any, S game.Score](rules game.Rules[P, S], p P, depth int, maximizing bool, describe func(P) (string, string)) (FindMoveResponse, error) {
	result, err := searcher.NewAlphaBeta(rules, searcher.WithMetrics()).Search(p, depth, maximizing)
	if err != nil {
		return FindMoveResponse{}, err
	}

	resp := FindMoveResponse{
		Score:   float64(result.Score),
		None:    true,
		Nodes:   result.Metric.Nodes,
		Cutoffs: result.Metric.Cutoffs,
	}
	if result.HasMove() {
		resp.Board, resp.Move = describe(*result.Best)
		// A finished game proposes itself, which is not a move
		resp.None = resp.Move == ""
	}
	return resp, nil
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			log.Info().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", time.Since(start)).
				Msg("request served")
		}()
		next.ServeHTTP(ww, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
