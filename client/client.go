// Package client is the HTTP implementation of ledger.RecordStore, talking
// to the senseki API server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ngtkana/senseki-db/ledger"
	"github.com/ngtkana/senseki-db/models"
	"github.com/ngtkana/senseki-db/utils"
)

type Client struct {
	baseURL    string // e.g. "http://127.0.0.1:3000/api"
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: utils.HTTPClient,
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// doJSON performs one request. 404s map to ledger.ErrNotFound so the ledger
// can evict instead of rolling back; other non-2xx statuses carry the
// server's error message.
func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s %s: %w", method, path, ledger.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr errorBody
		_ = json.NewDecoder(io.LimitReader(resp.Body, 1024)).Decode(&apiErr)
		if apiErr.Error == "" {
			apiErr.Error = resp.Status
		}
		return fmt.Errorf("%s %s: %s", method, path, apiErr.Error)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) CreateMatch(ctx context.Context, req models.CreateMatchRequest) (*models.MatchResponse, error) {
	var match models.MatchResponse
	if err := c.doJSON(ctx, http.MethodPost, "/matches", req, &match); err != nil {
		return nil, err
	}
	return &match, nil
}

func (c *Client) ListMatches(ctx context.Context, sessionID int) ([]models.MatchResponse, error) {
	var matches []models.MatchResponse
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/sessions/%d/matches", sessionID), nil, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

func (c *Client) UpdateMatch(ctx context.Context, matchID int, req models.UpdateMatchRequest) (*models.MatchResponse, error) {
	var match models.MatchResponse
	if err := c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/matches/%d", matchID), req, &match); err != nil {
		return nil, err
	}
	return &match, nil
}

func (c *Client) DeleteMatch(ctx context.Context, matchID int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/matches/%d", matchID), nil, nil)
}

func (c *Client) ListSessions(ctx context.Context) ([]models.SessionResponse, error) {
	var sessions []models.SessionResponse
	if err := c.doJSON(ctx, http.MethodGet, "/sessions", nil, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (c *Client) CreateSession(ctx context.Context, req models.CreateSessionRequest) (*models.SessionResponse, error) {
	var session models.SessionResponse
	if err := c.doJSON(ctx, http.MethodPost, "/sessions", req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) UpdateSession(ctx context.Context, sessionID int, req models.UpdateSessionRequest) (*models.SessionResponse, error) {
	var session models.SessionResponse
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/sessions/%d", sessionID), req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) DeleteSession(ctx context.Context, sessionID int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/sessions/%d", sessionID), nil, nil)
}

func (c *Client) ListCharacters(ctx context.Context) ([]models.CharacterResponse, error) {
	var characters []models.CharacterResponse
	if err := c.doJSON(ctx, http.MethodGet, "/characters", nil, &characters); err != nil {
		return nil, err
	}
	return characters, nil
}

func (c *Client) CreateGSPRecord(ctx context.Context, req models.CreateGSPRecordRequest) (*models.GSPRecordResponse, error) {
	var record models.GSPRecordResponse
	if err := c.doJSON(ctx, http.MethodPost, "/gsp_records", req, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *Client) ListGSPRecords(ctx context.Context, sessionID int) ([]models.GSPRecordResponse, error) {
	var records []models.GSPRecordResponse
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/sessions/%d/gsp_records", sessionID), nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Interface guard.
var _ ledger.RecordStore = (*Client)(nil)
