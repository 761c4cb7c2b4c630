package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/zenithtodo/zenith/internal/server"
	"github.com/zenithtodo/zenith/internal/store"
	"github.com/zenithtodo/zenith/internal/todo"
)

func startService(t *testing.T) *Client {
	t.Helper()
	logger := log.New()
	logger.SetOutput(io.Discard)

	srv, err := server.New(store.NewMemory(), server.Options{DefaultPriority: todo.PriorityLow}, logger)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	c, err := New(ts.URL + "/api")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestNew_RejectsBadURL(t *testing.T) {
	for _, u := range []string{"", "localhost:3000", "://nope"} {
		if _, err := New(u); err == nil {
			t.Errorf("New(%q): expected error", u)
		}
	}
}

func TestClient_CRUD(t *testing.T) {
	ctx := context.Background()
	c := startService(t)

	due := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	created, err := c.Create(ctx, todo.Draft{Text: "Buy milk", Priority: todo.PriorityHigh, DueDate: &due})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.Priority != todo.PriorityHigh {
		t.Errorf("unexpected created task %+v", created)
	}

	tasks, err := c.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != created.ID {
		t.Fatalf("unexpected list %+v", tasks)
	}

	updated, err := c.Update(ctx, created.ID, todo.Patch{Completed: ptr(true), DueDate: &todo.DueChange{}})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.Completed || updated.DueDate != nil {
		t.Errorf("unexpected update %+v", updated)
	}

	if err := c.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	tasks, err = c.List(ctx)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected empty list, got %+v", tasks)
	}
}

func TestClient_NotFound(t *testing.T) {
	ctx := context.Background()
	c := startService(t)

	_, err := c.Update(ctx, uuid.NewString(), todo.CompletedPatch(true))
	if !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	var ce *Error
	if !errors.As(err, &ce) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if ce.Message != "Todo not found" {
		t.Errorf("message = %q", ce.Message)
	}

	if err := c.Delete(ctx, uuid.NewString()); !IsNotFound(err) {
		t.Errorf("expected not found from delete, got %v", err)
	}
}

func TestClient_ValidationError(t *testing.T) {
	c := startService(t)

	_, err := c.Create(context.Background(), todo.Draft{})
	var ce *Error
	if !errors.As(err, &ce) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if ce.Status != http.StatusBadRequest || ce.Op != "add todo" {
		t.Errorf("unexpected error %+v", ce)
	}
	if !strings.Contains(err.Error(), "Please enter a todo") {
		t.Errorf("message missing from %q", err.Error())
	}
}

func TestClient_Health(t *testing.T) {
	c := startService(t)

	h, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if h.Status != "ok" {
		t.Errorf("status = %q", h.Status)
	}
}

func TestClient_TransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c, err := New(url + "/api")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = c.List(context.Background())
	var ce *Error
	if !errors.As(err, &ce) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if ce.Status != 0 || ce.Err == nil {
		t.Errorf("expected transport error without status, got %+v", ce)
	}
	if IsNotFound(err) {
		t.Error("transport failure is not a not-found")
	}
}

func TestClient_MalformedResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"not":"a list"`))
	}))
	defer ts.Close()

	c, _ := New(ts.URL)
	if _, err := c.List(context.Background()); err == nil || !strings.Contains(err.Error(), "malformed response") {
		t.Errorf("expected malformed response error, got %v", err)
	}
}

func ptr[T any](v T) *T {
	return &v
}
