package server

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialState(t *testing.T, s *Server) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) ServerMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg ServerMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestStateWebSocket_InitialAndUpdates(t *testing.T) {
	s, _ := newTestServer(t)
	conn := dialState(t, s)

	msg := readMessage(t, conn)
	require.Equal(t, "state", msg.Type)
	require.NotNil(t, msg.State)
	assert.Empty(t, msg.State.Console)

	s.panel.State().Append("hello")

	msg = readMessage(t, conn)
	require.Equal(t, "state", msg.Type)
	assert.Equal(t, "\nhello", msg.State.Console)
}

func TestStateWebSocket_Ping(t *testing.T) {
	s, _ := newTestServer(t)
	conn := dialState(t, s)

	_ = readMessage(t, conn)
	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "ping"}))

	msg := readMessage(t, conn)
	assert.Equal(t, "pong", msg.Type)
}

func TestUpgraderCheckOrigin(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/ws", nil)
	assert.True(t, upgrader.CheckOrigin(req))

	req.Header.Set("Origin", "http://localhost:9090")
	assert.True(t, upgrader.CheckOrigin(req))

	req.Header.Set("Origin", "https://evil.example.com")
	assert.False(t, upgrader.CheckOrigin(req))
}
