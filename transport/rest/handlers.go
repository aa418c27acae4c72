package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/columns/internal/apperror"
	"github.com/rocketscienceinc/columns/internal/entity"
	"github.com/rocketscienceinc/columns/internal/render"
	"github.com/rocketscienceinc/columns/internal/usecase"
)

type gameUseCase interface {
	CreateSession(ctx context.Context) (*entity.Session, error)
	DeleteSession(ctx context.Context, id string) error
	Snapshot(ctx context.Context, id string) (*entity.Session, error)
	Spawn(ctx context.Context, id string, column *int) (*entity.Session, error)
	Tick(ctx context.Context, id string) (*entity.Session, error)
	Rotate(ctx context.Context, id string) (*entity.Session, error)
	Move(ctx context.Context, id string, direction usecase.Direction) (*entity.Session, error)
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func (that *Server) createSession(w http.ResponseWriter, r *http.Request) {
	session, err := that.games.CreateSession(r.Context())
	if err != nil {
		that.writeGameError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

func (that *Server) getSession(w http.ResponseWriter, r *http.Request) {
	session, err := that.games.Snapshot(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeGameError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

func (that *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := that.games.DeleteSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeGameError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *Server) getBoard(w http.ResponseWriter, r *http.Request) {
	session, err := that.games.Snapshot(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeGameError(w, err)
		return
	}

	text := render.Text(session.Grid)
	if session.GameOver {
		text += "GAME OVER\n"
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

func (that *Server) spawnFaller(w http.ResponseWriter, r *http.Request) {
	var column *int
	if raw := r.URL.Query().Get("column"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_column", "column must be an integer")
			return
		}
		column = &n
	}

	session, err := that.games.Spawn(r.Context(), chi.URLParam(r, "id"), column)
	if err != nil {
		that.writeGameError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

func (that *Server) tick(w http.ResponseWriter, r *http.Request) {
	that.writeResult(w)(that.games.Tick(r.Context(), chi.URLParam(r, "id")))
}

func (that *Server) rotate(w http.ResponseWriter, r *http.Request) {
	that.writeResult(w)(that.games.Rotate(r.Context(), chi.URLParam(r, "id")))
}

func (that *Server) moveLeft(w http.ResponseWriter, r *http.Request) {
	that.writeResult(w)(that.games.Move(r.Context(), chi.URLParam(r, "id"), usecase.DirectionLeft))
}

func (that *Server) moveRight(w http.ResponseWriter, r *http.Request) {
	that.writeResult(w)(that.games.Move(r.Context(), chi.URLParam(r, "id"), usecase.DirectionRight))
}

func (that *Server) writeResult(w http.ResponseWriter) func(*entity.Session, error) {
	return func(session *entity.Session, err error) {
		if err != nil {
			that.writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, session)
	}
}

func (that *Server) writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session_not_found", err.Error())
	case errors.Is(err, apperror.ErrInvalidColumn):
		writeError(w, http.StatusUnprocessableEntity, "invalid_column", err.Error())
	case errors.Is(err, apperror.ErrInvalidMove):
		writeError(w, http.StatusUnprocessableEntity, "invalid_move", err.Error())
	case errors.Is(err, apperror.ErrFallerActive):
		writeError(w, http.StatusConflict, "faller_active", err.Error())
	case errors.Is(err, apperror.ErrGameOver):
		writeError(w, http.StatusConflict, "game_over", err.Error())
	default:
		that.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "")
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}
