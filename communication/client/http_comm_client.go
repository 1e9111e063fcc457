package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gamesearch/communication"
	"gamesearch/searcher/agent"
)

type ClientCommunicator struct {
	serverURL string
	client    *http.Client
}

// NewClientCommunicator initializes and returns a new ClientCommunicator.
func NewClientCommunicator(serverURL string, timeout time.Duration) *ClientCommunicator {
	return &ClientCommunicator{
		serverURL: strings.TrimRight(serverURL, "/"),
		client:    &http.Client{Timeout: timeout},
	}
}

func (cc *ClientCommunicator) FindMove(ctx context.Context, req agent.FindMoveRequest) (agent.FindMoveResponse, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return agent.FindMoveResponse{}, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, cc.serverURL+"/findmove", bytes.NewReader(data))
	if err != nil {
		return agent.FindMoveResponse{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := cc.client.Do(httpReq)
	if err != nil {
		return agent.FindMoveResponse{}, err
	}
	defer resp.Body.Close()
	if err = checkStatus(resp); err != nil {
		return agent.FindMoveResponse{}, err
	}

	var move agent.FindMoveResponse
	if err = json.NewDecoder(resp.Body).Decode(&move); err != nil {
		return agent.FindMoveResponse{}, fmt.Errorf("failed to decode move: %w", err)
	}
	return move, nil
}

func (cc *ClientCommunicator) Health(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, cc.serverURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := cc.client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("%w: %s: %s", communication.ErrRequestRejected, resp.Status, strings.TrimSpace(string(body)))
}
