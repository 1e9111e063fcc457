package communication

import (
	"context"
	"errors"

	"gamesearch/searcher/agent"
)

var ErrRequestRejected = errors.New("request rejected by agent server")

// Communicator is an interface that abstracts how move queries reach an
// agent server.
type Communicator interface {
	FindMove(ctx context.Context, req agent.FindMoveRequest) (agent.FindMoveResponse, error)
	Health(ctx context.Context) error
}
