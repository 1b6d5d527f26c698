package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe/internal/session"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
)

const (
	shutdownTimeout = 5 * time.Second
	maxMessageSize  = 4096
)

type gameUseCase interface {
	GetOrCreateGame(ctx context.Context, sessionID string) (*tictactoe.View, error)
	MakeTurn(ctx context.Context, sessionID string, cell int) (*tictactoe.View, bool, error)
	ResetGame(ctx context.Context, sessionID string) (*tictactoe.View, error)
}

type handlerFunc func(ctx context.Context, sessionID string, msg *Message, conn *websocket.Conn) error

type Server struct {
	logger     *slog.Logger
	game       gameUseCase
	sessionTTL time.Duration
	upgrader   websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, game gameUseCase, sessionTTL time.Duration) *Server {
	server := &Server{
		logger:     logger.With("component", "websocket"),
		game:       game,
		sessionTTL: sessionTTL,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionGameState] = server.handleGameState
	server.handlers[actionGameTurn] = server.handleGameTurn
	server.handlers[actionGameReset] = server.handleGameReset

	return server
}

// Handler returns the upgrade endpoint.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return mux
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
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
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

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	if !websocket.IsWebSocketUpgrade(req) {
		http.Error(writer, "websocket upgrade required", http.StatusBadRequest)
		return
	}

	sessionID := session.FromRequest(req)

	// the game is resolved before the upgrade so a new session can get its cookie
	view, err := that.game.GetOrCreateGame(req.Context(), sessionID)
	if err != nil {
		log.Error("failed to get game", "error", err)
		http.Error(writer, "failed to get the game", http.StatusInternalServerError)
		return
	}

	header := http.Header{}
	if view.ID != sessionID {
		header.Add("Set-Cookie", session.NewCookie(view.ID, that.sessionTTL).String())
	}

	conn, err := that.upgrader.Upgrade(writer, req, header)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	conn.SetReadLimit(maxMessageSize)

	log = log.With("gameID", view.ID)
	log.Info("WebSocket connection established")

	if err = sendMessage(conn, actionGameState, ResponsePayload{Game: view}); err != nil {
		log.Error("failed to send game state", "error", err)
		return
	}

	if err = that.handleMessages(ctx, view.ID, conn); err != nil {
		log.Info("WebSocket connection closed", "reason", err)
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, sessionID string, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleMessages", "gameID", sessionID)

	for {
		var message Message
		if err := conn.ReadJSON(&message); err != nil {
			// a bad payload leaves the connection usable, anything else ends it
			if !isMalformed(err) {
				return err
			}

			log.Warn("failed to decode message", "error", err)
			if err = sendError(conn, actionError, "malformed message"); err != nil {
				return err
			}
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			if err := sendError(conn, message.Action, "unknown action"); err != nil {
				return err
			}
			continue
		}

		if err := handler(ctx, sessionID, &message, conn); err != nil {
			return fmt.Errorf("failed to process %s: %w", message.Action, err)
		}
	}
}
