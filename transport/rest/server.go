package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	logger *slog.Logger
	router *chi.Mux

	games gameUseCase
}

func NewServer(logger *slog.Logger, games gameUseCase) *Server {
	that := &Server{
		logger: logger.With("component", "rest"),
		router: chi.NewRouter(),
		games:  games,
	}

	that.router.Use(chimw.RequestID)
	that.router.Use(chimw.RealIP)
	that.router.Use(chimw.Recoverer)
	that.router.Use(chimw.Timeout(10 * time.Second))

	ping := NewPingHandler()
	that.router.Get("/ping", ping.PingHandler)

	that.router.Route("/sessions", func(r chi.Router) {
		r.Post("/", that.createSession)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", that.getSession)
			r.Delete("/", that.deleteSession)
			r.Get("/board", that.getBoard)

			r.Post("/faller", that.spawnFaller)
			r.Post("/tick", that.tick)
			r.Post("/rotate", that.rotate)
			r.Post("/left", that.moveLeft)
			r.Post("/right", that.moveRight)
		})
	})

	that.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", r.URL.Path)
	})

	return that
}

// Router exposes the routes for tests.
func (that *Server) Router() chi.Router {
	return that.router
}

// Start serves HTTP on port until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
