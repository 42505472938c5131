// Package client talks to a running feed server over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"feed-lab/domain"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StatusError is returned when the server answers with an unexpected status.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("feed server answered %d", e.Status)
	}
	return fmt.Sprintf("feed server answered %d: %s", e.Status, e.Body)
}

type FeedClient struct {
	baseURL string
	http    *http.Client
}

func NewFeedClient(baseURL string, timeout time.Duration) *FeedClient {
	return &FeedClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Feed lists every post, oldest first.
func (c *FeedClient) Feed(ctx context.Context) ([]domain.Post, error) {
	body, err := c.do(ctx, http.MethodGet, "/feed", nil, http.StatusOK)
	if err != nil {
		return nil, err
	}
	var posts []domain.Post
	if err = json.Unmarshal(body, &posts); err != nil {
		return nil, fmt.Errorf("decoding feed: %w", err)
	}
	return posts, nil
}

// Get fetches one post. The boolean is false when the server answers 404.
func (c *FeedClient) Get(ctx context.Context, id uuid.UUID) (domain.Post, bool, error) {
	body, err := c.do(ctx, http.MethodGet, "/post/"+id.String(), nil, http.StatusOK)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.Status == http.StatusNotFound {
			return domain.Post{}, false, nil
		}
		return domain.Post{}, false, err
	}
	var post domain.Post
	if err = json.Unmarshal(body, &post); err != nil {
		return domain.Post{}, false, fmt.Errorf("decoding post: %w", err)
	}
	return post, true, nil
}

// Create sends the post and returns the payload echoed by the server.
func (c *FeedClient) Create(ctx context.Context, post domain.Post) ([]byte, error) {
	payload, err := json.Marshal(post)
	if err != nil {
		return nil, err
	}
	return c.CreateRaw(ctx, payload)
}

// CreateRaw sends an arbitrary payload, as-is.
func (c *FeedClient) CreateRaw(ctx context.Context, payload []byte) ([]byte, error) {
	return c.do(ctx, http.MethodPost, "/post", payload, http.StatusCreated)
}

func (c *FeedClient) do(ctx context.Context, method, path string, payload []byte, expected int) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	response, err := c.http.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s %s: %w", method, path, err)
	}
	if response.StatusCode != expected {
		return nil, &StatusError{Status: response.StatusCode, Body: string(body)}
	}
	return body, nil
}
