package lcu

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/arcanefeed/riftwatch/internal/eventbus"
)

// wsTestServer upgrades exactly one connection, records every subscribe
// frame it receives, and lets the test push frames to the client at will.
type wsTestServer struct {
	srv        *httptest.Server
	upgrader   websocket.Upgrader
	subscribed chan []any
	connReady  chan *websocket.Conn
}

func newWSTestServer(t *testing.T) *wsTestServer {
	t.Helper()
	w := &wsTestServer{
		subscribed: make(chan []any, 16),
		connReady:  make(chan *websocket.Conn, 1),
	}
	w.srv = httptest.NewTLSServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		conn, err := w.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		w.connReady <- conn
		for {
			var frame []any
			if err := conn.ReadJSON(&frame); err != nil {
				return
			}
			w.subscribed <- frame
		}
	}))
	t.Cleanup(w.srv.Close)
	return w
}

func (w *wsTestServer) port(t *testing.T) int {
	t.Helper()
	var port int
	if _, err := fmt.Sscanf(w.srv.Listener.Addr().String(), "127.0.0.1:%d", &port); err != nil {
		t.Fatalf("parse listener addr: %v", err)
	}
	return port
}

func TestWebSocketSessionSubscribesBaselineTopics(t *testing.T) {
	w := newWSTestServer(t)
	discovery := NewCredentialDiscovery(alwaysPresentLister(fullCmdline))
	transport := NewTransport(discovery)

	cred := &Credential{AppPort: w.port(t), RemotingToken: "TOK"}
	discovery.mu.Lock()
	discovery.cached = cred
	discovery.acquiredAt = time.Now()
	discovery.mu.Unlock()

	bus := eventbus.New()
	handler := NewEventHandler(bus, nil, nil)
	session := NewWebSocketSession(discovery, transport, handler)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		session.Run(ctx)
		close(done)
	}()

	seen := map[string]bool{}
	deadline := time.After(2 * time.Second)
	for len(seen) < len(baselineSubscriptions) {
		select {
		case frame := <-w.subscribed:
			if len(frame) != 3 {
				t.Fatalf("malformed subscribe frame: %v", frame)
			}
			if uri, ok := frame[2].(string); ok {
				seen[uri] = true
			}
		case <-deadline:
			t.Fatalf("timed out waiting for baseline subscriptions, got %d", len(seen))
		}
	}

	cancel()
	<-done
}

func TestWebSocketSessionDeliversEventToBus(t *testing.T) {
	w := newWSTestServer(t)
	discovery := NewCredentialDiscovery(alwaysPresentLister(fullCmdline))
	transport := NewTransport(discovery)

	cred := &Credential{AppPort: w.port(t), RemotingToken: "TOK"}
	discovery.mu.Lock()
	discovery.cached = cred
	discovery.acquiredAt = time.Now()
	discovery.mu.Unlock()

	bus := eventbus.New()
	handler := NewEventHandler(bus, nil, nil)
	session := NewWebSocketSession(discovery, transport, handler)

	ch, unsub := bus.Subscribe()
	defer unsub()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		session.Run(ctx)
		close(done)
	}()
	defer func() {
		cancel()
		<-done
	}()

	var conn *websocket.Conn
	select {
	case conn = <-w.connReady:
	case <-time.After(2 * time.Second):
		t.Fatal("server never saw a connection")
	}

	frame := []any{8, "OnJsonApiEvent", map[string]any{
		"uri":       URIGameflowPhase,
		"eventType": "Create",
		"data":      "ChampSelect",
	}}
	if err := conn.WriteJSON(frame); err != nil {
		t.Fatalf("write event frame: %v", err)
	}

	select {
	case ev := <-ch:
		if ev.Name != eventbus.GameflowPhaseChange {
			t.Fatalf("expected gameflow-phase-change, got %s", ev.Name)
		}
		if ev.Payload != "ChampSelect" {
			t.Fatalf("expected payload ChampSelect, got %v", ev.Payload)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for bus delivery")
	}
}
