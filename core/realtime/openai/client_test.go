package openai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/crimeacs/kaufmannGPT/core/realtime"
)

// realtimeTestServer accepts websocket upgrades and counts dials. The first
// connection pushes one event and then drops mid-session; later connections
// stay open and discard whatever the client sends.
func realtimeTestServer(t *testing.T, dials *atomic.Int32) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("Failed to upgrade websocket: %v", err)
			return
		}
		if dials.Add(1) == 1 {
			_ = conn.WriteMessage(websocket.TextMessage,
				[]byte(`{"type":"response.text.delta","delta":"from the dead session"}`))
			_ = conn.Close()
			return
		}
		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
}

func TestConnectRedialsAfterSocketDrop(t *testing.T) {
	var dials atomic.Int32
	server := realtimeTestServer(t, &dials)
	defer server.Close()

	channel := NewChannel("test-key")
	channel.dialURL = "ws" + strings.TrimPrefix(server.URL, "http")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := channel.Connect(ctx); err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}

	// Drain the first session until the drop surfaces as ErrClosed.
	for {
		_, err := channel.NextEvent(ctx)
		if errors.Is(err, realtime.ErrClosed) {
			break
		}
		if err != nil {
			t.Fatalf("Expected ErrClosed after socket drop, got %v", err)
		}
	}

	if err := channel.Connect(ctx); err != nil {
		t.Fatalf("Failed to reconnect after socket drop: %v", err)
	}
	if got := dials.Load(); got != 2 {
		t.Fatalf("Expected reconnect to dial again, got %d dials", got)
	}

	if err := channel.Configure(ctx, "keep the crowd with you"); err != nil {
		t.Errorf("Failed to configure reconnected session: %v", err)
	}
}

func TestReconnectDoesNotLeakEventsFromDeadSession(t *testing.T) {
	var dials atomic.Int32
	server := realtimeTestServer(t, &dials)
	defer server.Close()

	channel := NewChannel("test-key")
	channel.dialURL = "ws" + strings.TrimPrefix(server.URL, "http")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := channel.Connect(ctx); err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}

	// Wait out the first session without reading its buffered event, so it
	// is still queued when the drop lands.
	for {
		channel.mu.Lock()
		connected := channel.connected
		channel.mu.Unlock()
		if !connected {
			break
		}
		select {
		case <-ctx.Done():
			t.Fatal("Timed out waiting for the socket drop")
		case <-time.After(5 * time.Millisecond):
		}
	}

	if err := channel.Connect(ctx); err != nil {
		t.Fatalf("Failed to reconnect after socket drop: %v", err)
	}

	waitCtx, waitCancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer waitCancel()
	if _, err := channel.NextEvent(waitCtx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected a quiet fresh session, got event or error %v", err)
	}
}
