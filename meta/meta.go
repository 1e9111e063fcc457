// meta/meta.go
package meta

// GO_ROUTINES defines the number of games played concurrently in experiments.
const GO_ROUTINES = 8

// DEPTH is the default search depth, enough to solve tic-tac-toe.
const DEPTH = 9

// CHESS_DEPTH is the default search depth for chess.
const CHESS_DEPTH = 3

// MAX_DEPTH caps the depth a server request may ask for.
const MAX_DEPTH = 9

// MAX_TURNS stops games that never reach a terminal position.
const MAX_TURNS = 300

// GAMES is the default number of games per experiment matchup.
const GAMES = 30

// PORT is the default server port.
const PORT = 8080
