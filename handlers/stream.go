package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/VineethSendilraj/COPilot/services"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// StreamUpdate is the message pushed to dashboard clients whenever a
// synchronized collection changes.
type StreamUpdate struct {
	Type      services.Resource `json:"type"`
	Data      interface{}       `json:"data"`
	Timestamp time.Time         `json:"timestamp"`
}

// streamClient wraps a connection with a write lock. The sync engine
// commits from several goroutines and gorilla forbids concurrent writers,
// so every data frame goes through write. Control frames (ping) are safe
// to send concurrently and bypass the lock.
type streamClient struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *streamClient) write(update StreamUpdate) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(update)
}

// StreamHandler fans committed sync updates out to connected dashboard
// clients over WebSocket.
type StreamHandler struct {
	firebaseService *services.FirebaseService
	upgrader        websocket.Upgrader
	connections     map[*websocket.Conn]*streamClient
	connMutex       sync.RWMutex
}

func NewStreamHandler(firebaseService *services.FirebaseService, allowedOrigins []string) *StreamHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return &StreamHandler{
		firebaseService: firebaseService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return allowed[r.Header.Get("Origin")]
			},
		},
		connections: make(map[*websocket.Conn]*streamClient),
	}
}

// HandleWebSocket authenticates the session token, upgrades the connection,
// and keeps it registered until the client goes away. All data flows
// server -> client; client frames only feed the liveness check.
func (h *StreamHandler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	decoded, err := h.firebaseService.Auth.VerifyIDToken(c.Request.Context(), token)
	if err != nil {
		log.Printf("[stream] token verification failed: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[stream] upgrade failed: %v", err)
		return
	}

	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	h.register(conn)
	log.Printf("[stream] dashboard client %s connected", decoded.UID)

	pingTicker := time.NewTicker(30 * time.Second)
	defer pingTicker.Stop()

	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-pingTicker.C:
				if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(10*time.Second)); err != nil {
					conn.Close()
					return
				}
			case <-done:
				return
			}
		}
	}()

	defer func() {
		close(done)
		h.unregister(conn)
		conn.Close()
		log.Printf("[stream] dashboard client %s disconnected", decoded.UID)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[stream] read error: %v", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	}
}

// Broadcast pushes one sync update to every connected client. Matches the
// services.SyncEngine broadcaster signature and is safe to call from
// multiple goroutines; writes to one connection are serialized through its
// client lock. A client whose write fails is closed and dropped
// immediately instead of erroring on every subsequent broadcast.
func (h *StreamHandler) Broadcast(resource services.Resource, payload interface{}) {
	update := StreamUpdate{
		Type:      resource,
		Data:      payload,
		Timestamp: time.Now(),
	}

	h.connMutex.RLock()
	clients := make([]*streamClient, 0, len(h.connections))
	for _, client := range h.connections {
		clients = append(clients, client)
	}
	h.connMutex.RUnlock()

	for _, client := range clients {
		if err := client.write(update); err != nil {
			log.Printf("[stream] broadcast failed, dropping client: %v", err)
			client.conn.Close()
			h.unregister(client.conn)
		}
	}
}

func (h *StreamHandler) register(conn *websocket.Conn) {
	h.connMutex.Lock()
	defer h.connMutex.Unlock()
	h.connections[conn] = &streamClient{conn: conn}
}

func (h *StreamHandler) unregister(conn *websocket.Conn) {
	h.connMutex.Lock()
	defer h.connMutex.Unlock()
	delete(h.connections, conn)
}

func (h *StreamHandler) clientCount() int {
	h.connMutex.RLock()
	defer h.connMutex.RUnlock()
	return len(h.connections)
}
