package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
)

const (
	actionGameState = "game:state"
	actionGameTurn  = "game:turn"
	actionGameReset = "game:reset"
	actionError     = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type TurnPayload struct {
	Cell *int `json:"cell"`
}

type ResponsePayload struct {
	Game     *tictactoe.View `json:"game,omitempty"`
	Accepted *bool           `json:"accepted,omitempty"`
	Error    string          `json:"error,omitempty"`
}

func sendMessage(conn *websocket.Conn, action string, payload ResponsePayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	response := Message{
		Action:  action,
		Payload: payloadJSON,
	}

	if err = conn.WriteJSON(response); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func sendError(conn *websocket.Conn, action, message string) error {
	return sendMessage(conn, action, ResponsePayload{Error: message})
}
