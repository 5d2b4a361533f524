package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rook-computer/sketchpad/internal/surface"
)

const (
	eventWriteWait  = 5 * time.Second
	eventPongWait   = 60 * time.Second
	eventPingPeriod = eventPongWait * 9 / 10
)

type stateMessage struct {
	Type string `json:"type"`
	surface.State
}

type errorMessage struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// eventHub serves the WebSocket command channel. Each connection reads one
// command at a time and answers with the resulting state, so a page can stream
// pointer samples without an HTTP round trip per sample.
type eventHub struct {
	deps     APIV1Deps
	upgrader websocket.Upgrader
}

func newEventHub(deps APIV1Deps) *eventHub {
	return &eventHub{
		deps: deps,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The UI may be served by a dev server on another origin.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (h *eventHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already answered the client.
		h.deps.Logger.Errorf("events", "upgrade failed: %v", err)
		return
	}
	id := uuid.NewString()
	clients := h.deps.Status.AddClient(1)
	h.deps.Logger.Infof("events", "client %s connected from %s (%d live)", id, r.RemoteAddr, clients)

	done := make(chan struct{})
	defer func() {
		close(done)
		_ = conn.Close()
		clients := h.deps.Status.AddClient(-1)
		h.deps.Logger.Infof("events", "client %s disconnected (%d live)", id, clients)
	}()

	go func() {
		ticker := time.NewTicker(eventPingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-r.Context().Done():
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
					time.Now().Add(eventWriteWait))
				_ = conn.Close()
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(eventWriteWait)); err != nil {
					return
				}
			}
		}
	}()

	conn.SetReadLimit(maxCommandBytes)
	_ = conn.SetReadDeadline(time.Now().Add(eventPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(eventPongWait))
	})

	if err := h.write(conn, stateMessage{Type: "state", State: h.deps.Drawing.State()}); err != nil {
		return
	}
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.deps.Logger.Errorf("events", "client %s read: %v", id, err)
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(eventPongWait))

		var reply any
		var cmd command
		if err := json.Unmarshal(data, &cmd); err != nil {
			reply = errorMessage{Type: "error", Code: "invalid_json", Message: "invalid json"}
		} else if err := cmd.apply(h.deps.Drawing); err != nil {
			_, code := commandStatus(err)
			reply = errorMessage{Type: "error", Code: code, Message: err.Error()}
		} else {
			reply = stateMessage{Type: "state", State: h.deps.Drawing.State()}
		}
		if err := h.write(conn, reply); err != nil {
			h.deps.Logger.Errorf("events", "client %s write: %v", id, err)
			return
		}
	}
}

func (h *eventHub) write(conn *websocket.Conn, v any) error {
	_ = conn.SetWriteDeadline(time.Now().Add(eventWriteWait))
	return conn.WriteJSON(v)
}
