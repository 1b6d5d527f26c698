package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/gorilla/websocket"
)

func (that *Server) handleGameState(ctx context.Context, sessionID string, msg *Message, conn *websocket.Conn) error {
	view, err := that.game.GetOrCreateGame(ctx, sessionID)
	if err != nil {
		that.logger.Error("failed to get game", "gameID", sessionID, "error", err)
		return sendError(conn, msg.Action, "failed to get the game")
	}

	return sendMessage(conn, msg.Action, ResponsePayload{Game: view})
}

func (that *Server) handleGameTurn(ctx context.Context, sessionID string, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleGameTurn", "gameID", sessionID)

	var payload TurnPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil || payload.Cell == nil {
		return sendError(conn, msg.Action, "cell is required")
	}

	view, accepted, err := that.game.MakeTurn(ctx, sessionID, *payload.Cell)
	if err != nil {
		log.Error("failed to make turn", "error", err)
		return sendError(conn, msg.Action, "failed to make turn")
	}

	return sendMessage(conn, msg.Action, ResponsePayload{Game: view, Accepted: &accepted})
}

func (that *Server) handleGameReset(ctx context.Context, sessionID string, msg *Message, conn *websocket.Conn) error {
	view, err := that.game.ResetGame(ctx, sessionID)
	if err != nil {
		that.logger.Error("failed to reset game", "gameID", sessionID, "error", err)
		return sendError(conn, msg.Action, "failed to reset the game")
	}

	return sendMessage(conn, msg.Action, ResponsePayload{Game: view})
}

func isMalformed(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF)
}
