package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lunaria-app/sanctuary-backend/internal/models"
	"github.com/lunaria-app/sanctuary-backend/internal/services"
)

var readerUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS for WebSocket is handled at the HTTP layer already.
		return true
	},
}

// readerClientMessage is the only traffic the reader sends upstream.
type readerClientMessage struct {
	Type string `json:"type"` // "ping"
}

// ReaderWebSocket pushes sanctuary events (entry saved, taking space, note
// sent) to the connected reader. Authentication uses the existing session
// token (Authorization: Bearer <token>, or ?token= for browser clients).
func ReaderWebSocket(w http.ResponseWriter, r *http.Request) {
	token := extractBearerToken(r)
	if token == "" {
		token = r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "missing session token", http.StatusUnauthorized)
			return
		}
	}

	userID, ok, err := services.ValidateSession(token)
	if err != nil || !ok {
		http.Error(w, "invalid session token", http.StatusUnauthorized)
		return
	}

	role, err := services.GetUserRole(userID.String())
	if err != nil || role != models.RoleReader {
		http.Error(w, "reader access only", http.StatusForbidden)
		return
	}

	conn, err := readerUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	services.RegisterReaderConnection(userID.String(), conn)
	defer services.UnregisterReaderConnection(userID.String())

	conn.SetReadLimit(4 * 1024)
	_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	conn.SetPongHandler(func(appData string) error {
		_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
		return nil
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg readerClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		if msg.Type == "ping" {
			_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
			_ = conn.WriteJSON(map[string]string{"type": "pong"})
		}
	}
}
