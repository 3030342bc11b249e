package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glinski/internal/glinski"
)

func dial(t *testing.T, h *Hub, id string) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.Serve(w, r, id)
	}))
	t.Cleanup(srv.Close)
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.Eventually(t, func() bool { return h.Subscribers(id) == 1 }, time.Second, 5*time.Millisecond)
	return conn
}

func TestHubDeliversToGameSubscribers(t *testing.T) {
	h := NewHub(nil)
	conn := dial(t, h, "g1")

	sq := glinski.SquareOf(glinski.Coord{Q: -2, R: 1})
	to := glinski.SquareOf(glinski.Coord{Q: 0, R: -1})
	h.Publish("other", glinski.Event{Kind: glinski.EventCheck, From: glinski.NoSquare, To: sq, Color: glinski.White})
	h.Publish("g1", glinski.Event{
		Kind:  glinski.EventMoved,
		From:  sq,
		To:    to,
		Piece: glinski.MakePiece(glinski.White, glinski.Pawn),
		Color: glinski.White,
	})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "g1", msg.Game)
	assert.Equal(t, "moved", msg.Kind)
	assert.Equal(t, &glinski.Coord{Q: -2, R: 1}, msg.From)
	assert.Equal(t, &glinski.Coord{Q: 0, R: -1}, msg.To)
	assert.Equal(t, "pawn", msg.Piece)
	assert.Equal(t, "white", msg.Color)
}

func TestHubCloseGame(t *testing.T) {
	h := NewHub(nil)
	conn := dial(t, h, "g1")
	h.CloseGame("g1")
	assert.Zero(t, h.Subscribers("g1"))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func TestNewMessageGameOver(t *testing.T) {
	msg := NewMessage("g", glinski.Event{
		Kind:   glinski.EventGameOver,
		From:   glinski.NoSquare,
		To:     glinski.NoSquare,
		Color:  glinski.NoColor,
		Status: glinski.Stalemate,
	})
	assert.Nil(t, msg.From)
	assert.Nil(t, msg.To)
	assert.Empty(t, msg.Color)
	assert.Equal(t, "stalemate", msg.Status)
}
