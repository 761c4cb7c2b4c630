// Package client talks to the task service over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/zenithtodo/zenith/internal/todo"
)

const defaultTimeout = 10 * time.Second

// Error is returned by every Client method. Status is zero when the request
// never produced an HTTP response.
type Error struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "failed to %s", e.Op)
	if e.Status != 0 {
		fmt.Fprintf(&b, ": HTTP error! status: %d", e.Status)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a 404 from the service.
func IsNotFound(err error) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Status == http.StatusNotFound
}

// Health is the liveness response.
type Health struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Client wraps http.Client with the task routes.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the API rooted at baseURL (for example
// http://localhost:3000/api).
func New(baseURL string) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api url %q", baseURL)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}, nil
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.http = h
	return c
}

// List fetches every task, newest first.
func (c *Client) List(ctx context.Context) ([]todo.Task, error) {
	var tasks []todo.Task
	if err := c.do(ctx, "fetch todos", http.MethodGet, "/todos", nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []todo.Task{}
	}
	return tasks, nil
}

// Create adds a task and returns the stored record.
func (c *Client) Create(ctx context.Context, d todo.Draft) (todo.Task, error) {
	var task todo.Task
	err := c.do(ctx, "add todo", http.MethodPost, "/todos", d, &task)
	return task, err
}

// Update applies a partial update and returns the stored record.
func (c *Client) Update(ctx context.Context, id string, p todo.Patch) (todo.Task, error) {
	var task todo.Task
	err := c.do(ctx, "update todo", http.MethodPut, "/todos/"+url.PathEscape(id), p, &task)
	return task, err
}

// Delete removes a task.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, "delete todo", http.MethodDelete, "/todos/"+url.PathEscape(id), nil, nil)
}

// Health calls the liveness route, which lives beside the API root.
func (c *Client) Health(ctx context.Context) (Health, error) {
	var h Health
	root := strings.TrimSuffix(c.baseURL, "/api")
	err := c.doURL(ctx, "check health", http.MethodGet, root+"/health", nil, &h)
	return h, err
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	return c.doURL(ctx, op, method, c.baseURL+path, body, out)
}

func (c *Client) doURL(ctx context.Context, op, method, target string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return &Error{Op: op, Err: err}
		}
		reader = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope struct {
			Message string `json:"message"`
		}
		// Body is best effort; the status alone is enough to classify.
		_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&envelope)
		return &Error{Op: op, Status: resp.StatusCode, Message: envelope.Message}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("malformed response: %w", err)}
	}
	return nil
}
