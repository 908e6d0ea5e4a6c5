package http

import (
	"testing"
	"time"

	"daily-riddle-service/internal/domain"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardFeedPushesScoringUpdates(t *testing.T) {
	server := newTestServer(t)

	alice := registerUser(t, server, "alice@example.com")
	resp := postJSON(t, server.URL+"/answer", alice, map[string]string{"chosen": testRiddle.Answer})
	resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)

	u := "ws" + server.URL[len("http"):] + "/ws?token=" + alice
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	defer conn.Close()

	// The primed snapshot carries Alice's scored submission.
	board := readBoard(t, conn)
	require.Len(t, board.Rows, 1)
	assert.Equal(t, 15, board.Rows[0].Points)

	// A second player answering pushes a fresh board.
	bob := registerUser(t, server, "bob@example.com")
	resp = postJSON(t, server.URL+"/answer", bob, map[string]string{"chosen": testRiddle.Answer})
	resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)

	board = readBoard(t, conn)
	require.Len(t, board.Rows, 2)
	assert.Equal(t, "alice@example.com", board.Rows[0].Email)
	assert.Equal(t, 10, board.Rows[1].Points)
}

func readBoard(t *testing.T, conn *websocket.Conn) domain.Leaderboard {
	t.Helper()
	var board domain.Leaderboard
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.ReadJSON(&board))
	return board
}
