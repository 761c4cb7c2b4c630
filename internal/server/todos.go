package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"

	"github.com/zenithtodo/zenith/internal/store"
	"github.com/zenithtodo/zenith/internal/todo"
)

const maxBodySize = 1 << 20 // 1MB

const (
	msgTextRequired = "Please enter a todo"
	msgNotFound     = "Todo not found"
	msgRemoved      = "Todo removed"
	msgInvalidBody  = "Invalid JSON body"
)

func (s *Server) listTodos(c echo.Context) error {
	tasks, err := s.store.List(c.Request().Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to list todos")
		return c.JSON(http.StatusInternalServerError, messageResponse{Message: err.Error()})
	}
	return c.JSON(http.StatusOK, tasks)
}

func (s *Server) createTodo(c echo.Context) error {
	var draft todo.Draft
	if err := decodeBody(c, &draft); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: msgInvalidBody})
	}
	if err := draft.Validate(); err != nil {
		if errors.Is(err, todo.ErrTextRequired) {
			return c.JSON(http.StatusBadRequest, messageResponse{Message: msgTextRequired})
		}
		return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
	}

	task := todo.NewTask("", draft, s.opts.DefaultPriority, s.now().UTC())
	saved, err := s.store.Insert(c.Request().Context(), task)
	if err != nil {
		s.logger.WithError(err).Error("failed to create todo")
		return c.JSON(http.StatusInternalServerError, messageResponse{Message: err.Error()})
	}
	return c.JSON(http.StatusCreated, saved)
}

func (s *Server) updateTodo(c echo.Context) error {
	id := c.Param("id")

	var patch todo.Patch
	if err := decodeBody(c, &patch); err != nil {
		if errors.Is(err, todo.ErrUnknownField) {
			return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusBadRequest, messageResponse{Message: msgInvalidBody})
	}
	if err := patch.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
	}

	updated, err := s.store.Update(c.Request().Context(), id, patch)
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, messageResponse{Message: msgNotFound})
	}
	if err != nil {
		s.logger.WithError(err).WithField("id", id).Error("failed to update todo")
		return c.JSON(http.StatusInternalServerError, messageResponse{Message: err.Error()})
	}
	return c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteTodo(c echo.Context) error {
	id := c.Param("id")

	err := s.store.Delete(c.Request().Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, messageResponse{Message: msgNotFound})
	}
	if err != nil {
		s.logger.WithError(err).WithField("id", id).Error("failed to delete todo")
		return c.JSON(http.StatusInternalServerError, messageResponse{Message: err.Error()})
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msgRemoved})
}

// decodeBody reads at most maxBodySize bytes of JSON into v. ConfigStd keeps
// encoding/json semantics, including custom UnmarshalJSON methods.
func decodeBody(c echo.Context, v any) error {
	body := io.LimitReader(c.Request().Body, maxBodySize)
	return sonic.ConfigStd.NewDecoder(body).Decode(v)
}
