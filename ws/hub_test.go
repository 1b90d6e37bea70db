package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func startFeed(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		Serve(hub, conn)
	}))
	t.Cleanup(server.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("client count = %d, want %d", hub.ClientCount(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestReviewFlaggedReachesClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub()
	go hub.Run(ctx)

	first := startFeed(t, hub)
	second := startFeed(t, hub)
	waitForClients(t, hub, 2)

	hub.ReviewFlagged(map[string]interface{}{"review_id": 7})

	for _, conn := range []*websocket.Conn{first, second} {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var message struct {
			Type string `json:"type"`
			Data struct {
				ReviewID int `json:"review_id"`
			} `json:"data"`
		}
		if err := conn.ReadJSON(&message); err != nil {
			t.Fatalf("read: %v", err)
		}
		if message.Type != MessageTypeReviewFlagged || message.Data.ReviewID != 7 {
			t.Errorf("message = %+v", message)
		}
	}
}

func TestClientLeaves(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub()
	go hub.Run(ctx)

	conn := startFeed(t, hub)
	waitForClients(t, hub, 1)

	_ = conn.Close()
	waitForClients(t, hub, 0)
}

func TestStoppedHubClosesClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	go hub.Run(ctx)

	conn := startFeed(t, hub)
	waitForClients(t, hub, 1)
	cancel()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("read after stop succeeded, want a closed connection")
	}
	if hub.ClientCount() != 0 {
		t.Errorf("client count = %d after stop", hub.ClientCount())
	}

	// joining a stopped hub must not block
	late := startFeed(t, hub)
	_ = late.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := late.ReadMessage(); err == nil {
		t.Error("late client stayed connected")
	}
}

func TestBroadcastNeverBlocks(t *testing.T) {
	hub := NewHub()

	// no Run loop: the queue fills and further messages are dropped
	done := make(chan struct{})
	go func() {
		for i := 0; i < cap(hub.broadcast)+10; i++ {
			hub.Broadcast(Message{Type: "test"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Broadcast blocked")
	}
}
