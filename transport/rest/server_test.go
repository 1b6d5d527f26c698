package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/repository"
	"github.com/rocketscienceinc/tictactoe/internal/session"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe/internal/usecase"
)

var errStorage = errors.New("storage is down")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestClient starts the API over in-memory storage and returns a client
// that keeps cookies like a browser would.
func newTestClient(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()

	logger := discardLogger()
	manager := usecase.NewGameManager(logger, repository.NewMemoryGameRepository(time.Hour))
	srv := httptest.NewServer(New(logger, manager, time.Hour).Handler())
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return srv, &http.Client{Jar: jar}
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var body T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	return body
}

func postTurn(t *testing.T, client *http.Client, url string, body string) *http.Response {
	t.Helper()

	resp, err := client.Post(url+"/api/game/turn", "application/json", strings.NewReader(body))
	require.NoError(t, err)

	return resp
}

func TestServer_Ping(t *testing.T) {
	srv, client := newTestClient(t)

	resp, err := client.Get(srv.URL + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", string(body))
}

func TestServer_GetGame(t *testing.T) {
	// Given: a client without a session
	srv, client := newTestClient(t)

	// When: fetching the game
	resp, err := client.Get(srv.URL + "/api/game")
	require.NoError(t, err)

	// Then: a fresh game is returned and the session cookie is set
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cookies := resp.Cookies()
	view := decode[tictactoe.View](t, resp)

	assert.NotEmpty(t, view.ID)
	assert.Equal(t, "Player X's turn", view.Message)
	require.Len(t, cookies, 1)
	assert.Equal(t, session.CookieName, cookies[0].Name)
	assert.Equal(t, view.ID, cookies[0].Value)

	// When: fetching again with the cookie
	resp, err = client.Get(srv.URL + "/api/game")
	require.NoError(t, err)

	// Then: the same game is returned and no new cookie is issued
	assert.Empty(t, resp.Cookies())
	again := decode[tictactoe.View](t, resp)
	assert.Equal(t, view.ID, again.ID)
}

func TestServer_Turn(t *testing.T) {
	t.Run("Plays a full game", func(t *testing.T) {
		// Given: a client with a session
		srv, client := newTestClient(t)

		// When: X 0, O 1, X 4, O 2, X 8
		var last turnResponse
		for _, cell := range []string{"0", "1", "4", "2", "8"} {
			resp := postTurn(t, client, srv.URL, `{"cell": `+cell+`}`)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			last = decode[turnResponse](t, resp)
			require.True(t, last.Accepted)
		}

		// Then: X wins on the main diagonal
		assert.Equal(t, entity.StatusWin, last.Game.Status)
		assert.Equal(t, []int{0, 4, 8}, last.Game.Line)
		assert.Equal(t, "Player X wins!", last.Game.Message)

		// When: O tries to play after the win
		resp := postTurn(t, client, srv.URL, `{"cell": 5}`)

		// Then: the move is rejected without an error status
		require.Equal(t, http.StatusOK, resp.StatusCode)
		rejected := decode[turnResponse](t, resp)
		assert.False(t, rejected.Accepted)
		assert.Empty(t, rejected.Game.Board[5])
	})

	t.Run("Occupied cell is rejected", func(t *testing.T) {
		srv, client := newTestClient(t)

		resp := postTurn(t, client, srv.URL, `{"cell": 0}`)
		require.True(t, decode[turnResponse](t, resp).Accepted)

		resp = postTurn(t, client, srv.URL, `{"cell": 0}`)
		second := decode[turnResponse](t, resp)

		assert.False(t, second.Accepted)
		assert.Equal(t, "X", second.Game.Board[0])
		assert.Equal(t, "O", second.Game.Turn)
	})

	t.Run("Out of range cell is rejected", func(t *testing.T) {
		srv, client := newTestClient(t)

		resp := postTurn(t, client, srv.URL, `{"cell": 42}`)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.False(t, decode[turnResponse](t, resp).Accepted)
	})

	t.Run("Malformed body", func(t *testing.T) {
		srv, client := newTestClient(t)

		resp := postTurn(t, client, srv.URL, `{"cell":`)
		resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Missing cell", func(t *testing.T) {
		srv, client := newTestClient(t)

		resp := postTurn(t, client, srv.URL, `{}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, errCellRequired.Error(), decode[errorResponse](t, resp).Error)
	})
}

func TestServer_Reset(t *testing.T) {
	// Given: a game with a move
	srv, client := newTestClient(t)
	resp := postTurn(t, client, srv.URL, `{"cell": 4}`)
	played := decode[turnResponse](t, resp)

	// When: resetting
	resp, err := client.Post(srv.URL+"/api/game/reset", "application/json", nil)
	require.NoError(t, err)

	// Then: the same session holds a fresh game
	view := decode[tictactoe.View](t, resp)
	assert.Equal(t, played.Game.ID, view.ID)
	assert.Equal(t, [9]string{}, view.Board)
	assert.Equal(t, "X", view.Turn)
}

func TestServer_EndGame(t *testing.T) {
	// Given: a session with a game
	srv, client := newTestClient(t)
	resp, err := client.Get(srv.URL + "/api/game")
	require.NoError(t, err)
	first := decode[tictactoe.View](t, resp)

	// When: ending the game
	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/game", nil)
	require.NoError(t, err)
	resp, err = client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	// Then: 204 is returned and the next fetch starts a fresh game in the same session
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = client.Get(srv.URL + "/api/game")
	require.NoError(t, err)
	second := decode[tictactoe.View](t, resp)
	assert.Equal(t, first.ID, second.ID)
}

type failingGame struct{}

func (failingGame) GetOrCreateGame(context.Context, string) (*tictactoe.View, error) {
	return nil, errStorage
}

func (failingGame) MakeTurn(context.Context, string, int) (*tictactoe.View, bool, error) {
	return nil, false, errStorage
}

func (failingGame) ResetGame(context.Context, string) (*tictactoe.View, error) {
	return nil, errStorage
}

func (failingGame) EndGame(context.Context, string) error {
	return errStorage
}

func TestServer_StorageFailure(t *testing.T) {
	handler := New(discardLogger(), failingGame{}, time.Hour).Handler()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"get", http.MethodGet, "/api/game", ""},
		{"turn", http.MethodPost, "/api/game/turn", `{"cell": 1}`},
		{"reset", http.MethodPost, "/api/game/reset", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given: storage that always fails
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			// When: calling the endpoint
			handler.ServeHTTP(rec, req)

			// Then: 500 is returned
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
		})
	}
}

// blockingGame holds GetOrCreateGame until release is closed.
type blockingGame struct {
	failingGame

	entered chan struct{}
	release chan struct{}
}

func (that *blockingGame) GetOrCreateGame(_ context.Context, sessionID string) (*tictactoe.View, error) {
	close(that.entered)
	<-that.release
	return tictactoe.NewGameController().View(sessionID), nil
}

func TestServer_ServeDrainsRequests(t *testing.T) {
	// Given: a running server with a request in flight
	game := &blockingGame{entered: make(chan struct{}), release: make(chan struct{})}
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	served := make(chan error, 1)
	go func() {
		served <- New(discardLogger(), game, time.Hour).Serve(ctx, listener)
	}()

	status := make(chan int, 1)
	go func() {
		resp, err := http.Get("http://" + listener.Addr().String() + "/api/game")
		if err != nil {
			status <- 0
			return
		}
		resp.Body.Close()
		status <- resp.StatusCode
	}()
	<-game.entered

	// When: the context is canceled
	cancel()

	// Then: Serve waits for the request
	select {
	case <-served:
		t.Fatal("Serve returned before the in-flight request finished")
	case <-time.After(100 * time.Millisecond):
	}

	// When: the request completes
	close(game.release)

	// Then: the client gets its answer and Serve returns cleanly
	assert.Equal(t, http.StatusOK, <-status)
	select {
	case err = <-served:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after shutdown")
	}
}
