package rest

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/columns/internal/columns"
	"github.com/rocketscienceinc/columns/internal/entity"
	"github.com/rocketscienceinc/columns/internal/repository"
	"github.com/rocketscienceinc/columns/internal/usecase"
)

type sessionResponse struct {
	ID       string         `json:"id"`
	State    string         `json:"state"`
	GameOver bool           `json:"game_over"`
	Cleared  int            `json:"cleared"`
	Faller   *entity.Faller `json:"faller"`
	Grid     struct {
		Rows    int `json:"rows"`
		Columns int `json:"columns"`
		Cells   [][]struct {
			Color string `json:"color"`
			State string `json:"state"`
		} `json:"cells"`
	} `json:"grid"`
}

func newTestServer(t *testing.T, rows, cols int) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	games := usecase.NewGameManager(logger, repository.NewLogEventRepository(logger), rows, cols, func() columns.Source {
		return columns.NewSequenceSource([]entity.Color{entity.Red, entity.Green, entity.Blue})
	})

	server := httptest.NewServer(NewServer(logger, games).Router())
	t.Cleanup(server.Close)

	return server
}

func do(t *testing.T, method, url string) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(body)
}

func createSession(t *testing.T, server *httptest.Server) sessionResponse {
	t.Helper()

	resp, body := do(t, http.MethodPost, server.URL+"/sessions")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var session sessionResponse
	require.NoError(t, json.Unmarshal([]byte(body), &session))
	return session
}

func TestPing(t *testing.T) {
	server := newTestServer(t, 4, 3)

	// When: calling /ping
	resp, body := do(t, http.MethodGet, server.URL+"/ping")

	// Then: the server answers pong
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", body)
}

func TestSessions(t *testing.T) {
	t.Run("Create and read a session", func(t *testing.T) {
		server := newTestServer(t, 4, 3)

		// When: creating a session
		created := createSession(t, server)

		// Then: it can be read back
		resp, body := do(t, http.MethodGet, server.URL+"/sessions/"+created.ID)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/json; charset=utf-8", resp.Header.Get("Content-Type"))

		var session sessionResponse
		require.NoError(t, json.Unmarshal([]byte(body), &session))
		assert.Equal(t, created.ID, session.ID)
		assert.Equal(t, "awaiting_faller", session.State)
		assert.Equal(t, 4, session.Grid.Rows)
		assert.Equal(t, 3, session.Grid.Columns)
		require.Len(t, session.Grid.Cells, 4)
		assert.Equal(t, "empty", session.Grid.Cells[0][0].State)
	})

	t.Run("Play a faller until it freezes", func(t *testing.T) {
		server := newTestServer(t, 4, 3)
		created := createSession(t, server)
		base := server.URL + "/sessions/" + created.ID

		// Given: a faller in column 2
		resp, _ := do(t, http.MethodPost, base+"/faller?column=2")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		// When: it enters, rotates and moves left
		for range 3 {
			resp, _ = do(t, http.MethodPost, base+"/tick")
			require.Equal(t, http.StatusOK, resp.StatusCode)
		}
		resp, _ = do(t, http.MethodPost, base+"/rotate")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp, body := do(t, http.MethodPost, base+"/left")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		// Then: the session shows the moved faller
		var session sessionResponse
		require.NoError(t, json.Unmarshal([]byte(body), &session))
		require.NotNil(t, session.Faller)
		assert.Equal(t, 1, session.Faller.Column)
		assert.Equal(t, "falling", session.State)
		assert.Equal(t, "R", session.Grid.Cells[0][1].Color)
		assert.Equal(t, "falling", session.Grid.Cells[0][1].State)

		// When: it lands and freezes
		for range 2 {
			resp, _ = do(t, http.MethodPost, base+"/tick")
			require.Equal(t, http.StatusOK, resp.StatusCode)
		}

		// Then: the text board shows the frozen jewels
		resp, body = do(t, http.MethodGet, base+"/board")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
		assert.Equal(t, strings.Join([]string{
			"|         |",
			"|    R    |",
			"|    B    |",
			"|    G    |",
			" --------- ",
		}, "\n")+"\n", body)
	})

	t.Run("Delete a session", func(t *testing.T) {
		server := newTestServer(t, 4, 3)
		created := createSession(t, server)

		// When: deleting it
		resp, _ := do(t, http.MethodDelete, server.URL+"/sessions/"+created.ID)

		// Then: it is gone
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		resp, _ = do(t, http.MethodGet, server.URL+"/sessions/"+created.ID)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestSessionErrors(t *testing.T) {
	server := newTestServer(t, 1, 1)
	created := createSession(t, server)
	base := server.URL + "/sessions/" + created.ID

	cases := []struct {
		name   string
		method string
		url    string
		status int
		code   string
	}{
		{name: "Unknown session", method: http.MethodPost, url: server.URL + "/sessions/missing/tick", status: http.StatusNotFound, code: "session_not_found"},
		{name: "Column is not a number", method: http.MethodPost, url: base + "/faller?column=x", status: http.StatusBadRequest, code: "bad_column"},
		{name: "Column outside the board", method: http.MethodPost, url: base + "/faller?column=5", status: http.StatusUnprocessableEntity, code: "invalid_column"},
		{name: "Spawn", method: http.MethodPost, url: base + "/faller?column=0", status: http.StatusOK},
		{name: "Second faller", method: http.MethodPost, url: base + "/faller", status: http.StatusConflict, code: "faller_active"},
		{name: "Move past the edge", method: http.MethodPost, url: base + "/right", status: http.StatusUnprocessableEntity, code: "invalid_move"},
		{name: "Land", method: http.MethodPost, url: base + "/tick", status: http.StatusOK},
		{name: "Freeze into game over", method: http.MethodPost, url: base + "/tick", status: http.StatusOK},
		{name: "Tick after game over", method: http.MethodPost, url: base + "/tick", status: http.StatusConflict, code: "game_over"},
		{name: "Unknown route", method: http.MethodGet, url: server.URL + "/nope", status: http.StatusNotFound, code: "not_found"},
	}

	// the cases share one session and run in order
	for _, tc := range cases {
		resp, body := do(t, tc.method, tc.url)
		require.Equal(t, tc.status, resp.StatusCode, tc.name)

		if tc.code == "" {
			continue
		}

		var errResp errorResponse
		require.NoError(t, json.Unmarshal([]byte(body), &errResp), tc.name)
		assert.Equal(t, tc.code, errResp.Error, tc.name)
	}

	resp, body := do(t, http.MethodGet, base+"/board")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasSuffix(body, "GAME OVER\n"))
}
