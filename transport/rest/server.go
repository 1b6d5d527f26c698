package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
)

const shutdownTimeout = 5 * time.Second

type gameUseCase interface {
	GetOrCreateGame(ctx context.Context, sessionID string) (*tictactoe.View, error)
	MakeTurn(ctx context.Context, sessionID string, cell int) (*tictactoe.View, bool, error)
	ResetGame(ctx context.Context, sessionID string) (*tictactoe.View, error)
	EndGame(ctx context.Context, sessionID string) error
}

type Server struct {
	logger     *slog.Logger
	game       gameUseCase
	sessionTTL time.Duration
}

func New(logger *slog.Logger, game gameUseCase, sessionTTL time.Duration) *Server {
	return &Server{
		logger:     logger.With("component", "rest"),
		game:       game,
		sessionTTL: sessionTTL,
	}
}

// Handler returns the routes of the HTTP API.
func (that *Server) Handler() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/ping", that.handlePing).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/game", that.handleGetGame).Methods(http.MethodGet)
	api.HandleFunc("/game", that.handleEndGame).Methods(http.MethodDelete)
	api.HandleFunc("/game/turn", that.handleTurn).Methods(http.MethodPost)
	api.HandleFunc("/game/reset", that.handleReset).Methods(http.MethodPost)

	recoveryLog := slog.NewLogLogger(that.logger.Handler(), slog.LevelError)

	return handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLog))(router)
}

// Start - starts the server and blocks until ctx is done and in-flight
// requests have finished.
func (that *Server) Start(ctx context.Context, port string) error {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return that.Serve(ctx, listener)
}

// Serve accepts connections on listener until ctx is done.
func (that *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve: %w", err)
	}

	<-shutdownDone

	return nil
}
