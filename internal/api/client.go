package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vovakirdan/funrun/internal/storage"
)

// Client talks to a leaderboard server. It satisfies bridge.Leaderboard.
type Client struct {
	baseURL string
	http    *http.Client
}

// StatusError is returned for non-2xx replies.
type StatusError struct {
	Code    int
	Message string
	Fields  []string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("api: server returned %d: %s", e.Code, e.Message)
	if len(e.Fields) > 0 {
		msg += " (" + strings.Join(e.Fields, "; ") + ")"
	}
	return msg
}

// NewClient creates a client for baseURL. A nil httpClient gets a default
// with a 10 second timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// SubmitScore posts a finished run.
func (c *Client) SubmitScore(ctx context.Context, user string, score int) (storage.Score, error) {
	s := int64(score)
	body, err := json.Marshal(ScoreRequest{User: user, Score: &s})
	if err != nil {
		return storage.Score{}, fmt.Errorf("api: cannot encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/scores", bytes.NewReader(body))
	if err != nil {
		return storage.Score{}, fmt.Errorf("api: cannot build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var saved storage.Score
	if err := c.do(req, http.StatusCreated, &saved); err != nil {
		return storage.Score{}, err
	}
	return saved, nil
}

// ListScores fetches the leaderboard. A limit <= 0 fetches every row.
func (c *Client) ListScores(ctx context.Context, limit int) ([]storage.Score, error) {
	u := c.baseURL + "/api/scores"
	if limit > 0 {
		u += "?" + url.Values{"limit": {strconv.Itoa(limit)}}.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("api: cannot build request: %w", err)
	}

	var scores []storage.Score
	if err := c.do(req, http.StatusOK, &scores); err != nil {
		return nil, err
	}
	return scores, nil
}

func (c *Client) do(req *http.Request, want int, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		var e ErrorResponse
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if json.Unmarshal(data, &e) != nil || e.Error == "" {
			e.Error = strings.TrimSpace(string(data))
		}
		return &StatusError{Code: resp.StatusCode, Message: e.Error, Fields: e.Fields}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: cannot decode response: %w", err)
	}
	return nil
}
