package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VineethSendilraj/COPilot/models"
	"github.com/VineethSendilraj/COPilot/services"
)

// dialStream upgrades one connection against a test server and registers
// the server side with the handler, returning the client end.
func dialStream(t *testing.T, h *StreamHandler) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		h.register(conn)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	// wait for the server side to land in the registry
	deadline := time.Now().Add(2 * time.Second)
	for h.clientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	require.Equal(t, 1, h.clientCount())

	return client
}

// Concurrent commits from the sync engine's listener and poller goroutines
// must not produce concurrent writes on one connection.
func TestBroadcastConcurrentCommits(t *testing.T) {
	h := NewStreamHandler(nil, nil)
	client := dialStream(t, h)

	received := make(chan struct{})
	go func() {
		defer close(received)
		for {
			if _, _, err := client.ReadMessage(); err != nil {
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				h.Broadcast(services.ResourceIncidents, []*models.Incident{{ID: "i1"}})
				h.Broadcast(services.ResourceAlerts, []*models.Alert{{ID: "a1"}})
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, h.clientCount())

	client.Close()
	<-received
}

func TestBroadcastDeliversUpdate(t *testing.T) {
	h := NewStreamHandler(nil, nil)
	client := dialStream(t, h)

	h.Broadcast(services.ResourceOfficers, []*models.Officer{{ID: "off-1", Name: "Jordan Reyes"}})

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	var update StreamUpdate
	require.NoError(t, client.ReadJSON(&update))
	assert.Equal(t, services.ResourceOfficers, update.Type)
	assert.False(t, update.Timestamp.IsZero())
}

func TestBroadcastDropsDeadClient(t *testing.T) {
	h := NewStreamHandler(nil, nil)
	client := dialStream(t, h)

	// kill the transport underneath the registered connection
	client.Close()
	h.connMutex.RLock()
	for conn := range h.connections {
		conn.Close()
	}
	h.connMutex.RUnlock()

	h.Broadcast(services.ResourceIncidents, []*models.Incident{{ID: "i1"}})

	assert.Equal(t, 0, h.clientCount())
}
