package server

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"dockpanel/internal/logger"
	"dockpanel/internal/panel"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")

		// Allow connections without origin header (e.g., CLI tools)
		if origin == "" {
			return true
		}

		allowedOrigins := []string{
			"http://localhost",
			"https://localhost",
			"http://127.0.0.1",
			"https://127.0.0.1",
			"http://[::1]",
			"https://[::1]",
		}

		for _, allowed := range allowedOrigins {
			if strings.HasPrefix(origin, allowed) {
				return true
			}
		}

		// Same-host pages are fine when the panel is bound to a LAN address
		if strings.HasSuffix(origin, "://"+r.Host) {
			return true
		}

		logger.WithFields(logger.Fields{
			"origin": origin,
			"remote": r.RemoteAddr,
		}).Warn("WebSocket connection rejected - invalid origin")

		return false
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// stateSession pushes panel snapshots to one websocket client
type stateSession struct {
	ws     *websocket.Conn
	ctx    context.Context
	cancel context.CancelFunc
	panel  *panel.Panel
	writeM sync.Mutex
}

// handleStateWebSocket godoc
// @Summary Live state feed
// @Description Push the panel snapshot after every state change. Clients may send {"type":"ping"} or {"type":"refresh"}.
// @Tags state,websocket
// @Success 101 {string} string "Switching Protocols"
// @Router /api/ws [get]
func (s *Server) handleStateWebSocket(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.WithError(err).Error("Failed to upgrade WebSocket connection")
		return err
	}
	defer ws.Close()

	ctx, cancel := context.WithCancel(context.Background())
	session := &stateSession{
		ws:     ws,
		ctx:    ctx,
		cancel: cancel,
		panel:  s.panel,
	}

	logger.GetLogger(c).Debug("State feed client connected")
	session.run()
	logger.GetLogger(c).Debug("State feed client disconnected")
	return nil
}

func (ss *stateSession) run() {
	defer ss.cancel()

	updates, unsubscribe := ss.panel.State().Subscribe()
	defer unsubscribe()

	snap := ss.panel.Snapshot()
	if err := ss.write(ServerMessage{Type: "state", State: &snap}); err != nil {
		return
	}

	go ss.readLoop()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ss.ctx.Done():
			return
		case snap, ok := <-updates:
			if !ok {
				return
			}
			if err := ss.write(ServerMessage{Type: "state", State: &snap}); err != nil {
				return
			}
		case <-ticker.C:
			ss.writeM.Lock()
			_ = ss.ws.SetWriteDeadline(time.Now().Add(writeWait))
			err := ss.ws.WriteMessage(websocket.PingMessage, nil)
			ss.writeM.Unlock()
			if err != nil {
				return
			}
		}
	}
}

// readLoop handles client messages until the connection closes
func (ss *stateSession) readLoop() {
	defer ss.cancel()

	_ = ss.ws.SetReadDeadline(time.Now().Add(pongWait))
	ss.ws.SetPongHandler(func(string) error {
		return ss.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg ClientMessage
		if err := ss.ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.WithError(err).Debug("WebSocket read error")
			}
			return
		}

		switch msg.Type {
		case "ping":
			_ = ss.write(ServerMessage{Type: "pong"})
		case "refresh":
			// snapshots arrive through the subscription
			if err := ss.panel.Load(ss.ctx); err != nil {
				_ = ss.write(ServerMessage{Type: "error", Data: err.Error()})
			}
		default:
			logger.WithField("type", msg.Type).Warn("Unknown message type")
		}
	}
}

func (ss *stateSession) write(msg ServerMessage) error {
	ss.writeM.Lock()
	defer ss.writeM.Unlock()
	_ = ss.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return ss.ws.WriteJSON(msg)
}
