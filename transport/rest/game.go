package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rocketscienceinc/tictactoe/internal/session"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
)

var errCellRequired = errors.New("cell is required")

type turnRequest struct {
	Cell *int `json:"cell"`
}

type turnResponse struct {
	Game     *tictactoe.View `json:"game"`
	Accepted bool            `json:"accepted"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleGetGame")

	sessionID := session.FromRequest(r)

	view, err := that.game.GetOrCreateGame(r.Context(), sessionID)
	if err != nil {
		log.Error("failed to get game", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to get the game"})
		return
	}

	that.bindSession(w, sessionID, view.ID)
	that.writeJSON(w, http.StatusOK, view)
}

func (that *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleTurn")

	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if req.Cell == nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: errCellRequired.Error()})
		return
	}

	sessionID := session.FromRequest(r)

	view, accepted, err := that.game.MakeTurn(r.Context(), sessionID, *req.Cell)
	if err != nil {
		log.Error("failed to make turn", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to make turn"})
		return
	}

	that.bindSession(w, sessionID, view.ID)
	that.writeJSON(w, http.StatusOK, turnResponse{Game: view, Accepted: accepted})
}

func (that *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleReset")

	sessionID := session.FromRequest(r)

	view, err := that.game.ResetGame(r.Context(), sessionID)
	if err != nil {
		log.Error("failed to reset game", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to reset the game"})
		return
	}

	that.bindSession(w, sessionID, view.ID)
	that.writeJSON(w, http.StatusOK, view)
}

func (that *Server) handleEndGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleEndGame")

	sessionID := session.FromRequest(r)
	if sessionID == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := that.game.EndGame(r.Context(), sessionID); err != nil {
		log.Error("failed to end game", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to end the game"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// bindSession sets the session cookie when the game lives under a new id.
func (that *Server) bindSession(w http.ResponseWriter, sessionID, gameID string) {
	if sessionID == gameID {
		return
	}

	http.SetCookie(w, session.NewCookie(gameID, that.sessionTTL))
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
