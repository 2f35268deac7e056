// Package client is a thin HTTP client for the tallyboard service.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tallyboard/platform/internal/domain"
)

// ScoreEntry mirrors the score record wire shape.
type ScoreEntry = domain.ScoreRecord

// BoardKeys mirrors the create-board response.
type BoardKeys = domain.BoardKeys

// Client talks to a tallyboard server. APIKey is optional; board creation
// needs none, and read/submit/delete need a key of the matching tier.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New creates a client for the server at baseURL with an optional api key.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// CreateBoard registers a new board and returns its keys. This is the only
// time the server ever discloses them.
func (c *Client) CreateBoard(ctx context.Context, name string) (*BoardKeys, error) {
	var keys BoardKeys
	if err := c.do(ctx, http.MethodPost, "/board/create", name, &keys); err != nil {
		return nil, err
	}
	return &keys, nil
}

// FetchScores returns the board's score entries in submission order.
func (c *Client) FetchScores(ctx context.Context, board string) ([]ScoreEntry, error) {
	var entries []ScoreEntry
	if err := c.do(ctx, http.MethodGet, c.boardPath(board), nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// SubmitScore appends one score entry to the board.
func (c *Client) SubmitScore(ctx context.Context, board string, entry ScoreEntry) error {
	return c.do(ctx, http.MethodPost, c.boardPath(board), entry, nil)
}

// DeleteBoard removes the board and all of its scores.
func (c *Client) DeleteBoard(ctx context.Context, board string) error {
	return c.do(ctx, http.MethodDelete, c.boardPath(board), nil, nil)
}

func (c *Client) boardPath(board string) string {
	return "/board/" + url.PathEscape(board)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("api-key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("%s %s: %d %s: %s", method, path, resp.StatusCode, apiErr.Code, apiErr.Message)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
