package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"daily-riddle-service/internal/app"
	"daily-riddle-service/internal/domain"
	"daily-riddle-service/internal/infra/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRiddle = domain.Riddle{
	Question: "What has keys but opens no locks?",
	Options:  []string{"A map", "A piano", "A clock", "A book"},
	Answer:   "A piano",
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	window, err := app.NewWindow("UTC", "21:00", "21:05")
	require.NoError(t, err)
	riddles, err := memory.NewPoolSource([]domain.Riddle{testRiddle})
	require.NoError(t, err)

	clock := func() time.Time { return time.Date(2026, 3, 15, 21, 2, 0, 0, time.UTC) }
	service := app.NewGameServiceWithClock(app.Deps{
		Users:      memory.NewUserStore(),
		Identities: memory.NewIdentityStore(),
		Sessions:   memory.NewSessionStore(),
		Riddles:    riddles,
		Window:     window,
		Policy:     app.PolicyGenerous,
		BoardSize:  10,
	}, clock)

	server := httptest.NewServer(NewHandler(service).Router())
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url, token string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func getJSON(t *testing.T, url, token string, out any) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	if out != nil {
		defer resp.Body.Close()
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func registerUser(t *testing.T, server *httptest.Server, email string) string {
	t.Helper()
	resp := postJSON(t, server.URL+"/auth/register", "", map[string]string{
		"email":    email,
		"password": "hunter2!",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var result app.LoginResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	require.NotEmpty(t, result.Token)
	return result.Token
}

func TestAnswerFlow(t *testing.T) {
	server := newTestServer(t)
	token := registerUser(t, server, "alice@example.com")

	var view app.TodayView
	resp := getJSON(t, server.URL+"/today", token, &view)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, view.Open)
	require.NotNil(t, view.Riddle)
	assert.Equal(t, testRiddle.Question, view.Riddle.Question)
	assert.Len(t, view.Riddle.Options, 4)

	resp = postJSON(t, server.URL+"/answer", token, map[string]string{"chosen": testRiddle.Answer})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var result app.SubmitResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, app.StatusScored, result.Status)
	assert.True(t, result.Correct)
	assert.Equal(t, 15, result.Awarded)

	var board domain.Leaderboard
	resp = getJSON(t, server.URL+"/leaderboard", token, &board)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, board.Rows, 1)
	assert.Equal(t, 1, board.Rows[0].Rank)
	assert.Equal(t, "alice@example.com", board.Rows[0].Email)
	assert.Equal(t, 15, board.Rows[0].Points)
	require.NotNil(t, board.MyRank)
	assert.Equal(t, 1, *board.MyRank)
}

func TestRepeatSubmissionIsBlocked(t *testing.T) {
	server := newTestServer(t)
	token := registerUser(t, server, "alice@example.com")

	resp := postJSON(t, server.URL+"/answer", token, map[string]string{"chosen": testRiddle.Answer})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, server.URL+"/answer", token, map[string]string{"chosen": testRiddle.Answer})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var result app.SubmitResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, app.StatusAlreadyAnswered, result.Status)
	assert.Equal(t, 15, result.Record.Points)
}

func TestAuthErrors(t *testing.T) {
	server := newTestServer(t)

	resp := getJSON(t, server.URL+"/today", "", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = getJSON(t, server.URL+"/today", "bogus-token", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = postJSON(t, server.URL+"/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "pw",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	var payload struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "identity_not_found", payload.Code)
}

func TestLogout(t *testing.T) {
	server := newTestServer(t)
	token := registerUser(t, server, "alice@example.com")

	resp := postJSON(t, server.URL+"/auth/logout", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = getJSON(t, server.URL+"/today", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
