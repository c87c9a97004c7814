package lcu

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	idleFallbackInterval   = 10 * time.Second
	reconnectBackoff       = 3 * time.Second
	credentialWaitInterval = 2 * time.Second
	credentialWaitAttempts = 10
	credentialWaitBackoff  = 5 * time.Second
)

// baselineSubscriptions are subscribed on every connection regardless of
// phase; lobby, matchmaking-search, and champ-select are added dynamically
// as the observed phase reaches them (§4.4).
var baselineSubscriptions = []string{
	URIGameflowPhase,
	URIGameflowSession,
}

// WebSocketSession maintains the single long-lived WebSocket connection of
// §4.4: one TLS socket per connected lifetime, an idempotent subscription
// set that expands when the observed phase enters champ select, and an
// HTTP fallback fetch when the socket has gone quiet too long.
//
// Grounded on the original websocket/service.rs's reconnect loop, adapted
// to gorilla/websocket's blocking ReadMessage via a dedicated reader
// goroutine so the main loop can race the next frame against an idle
// timer with select — gorilla/websocket gives no non-blocking read.
type WebSocketSession struct {
	discovery *CredentialDiscovery
	transport *Transport
	handler   *EventHandler
	logger    *log.Logger

	mu            sync.Mutex
	subscriptions map[string]struct{}
	phase         Phase
}

// NewWebSocketSession builds a session. Callers wire OnPhase as the
// EventHandler's phase hook so a live phase transition immediately expands
// the subscription set on the current socket.
func NewWebSocketSession(discovery *CredentialDiscovery, transport *Transport, handler *EventHandler) *WebSocketSession {
	return &WebSocketSession{
		discovery:     discovery,
		transport:     transport,
		handler:       handler,
		logger:        log.New(os.Stderr, "[websocket] ", log.LstdFlags),
		subscriptions: make(map[string]struct{}),
	}
}

// OnPhase records the latest observed phase for the next subscription
// reconciliation.
func (s *WebSocketSession) OnPhase(phase Phase) {
	s.mu.Lock()
	s.phase = phase
	s.mu.Unlock()
}

// Run blocks, maintaining a connection for as long as ctx is live: wait
// for a credential, connect, subscribe, read frames until idle or error,
// back off, reconnect.
func (s *WebSocketSession) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		cred, err := s.waitForCredential(ctx)
		if err != nil {
			return err
		}

		if err := s.runOnce(ctx, cred); err != nil {
			s.logger.Printf("session ended: %v", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(reconnectBackoff):
		}
	}
}

// waitForCredential polls every 2s for up to 10 attempts, then settles
// into a 5s backoff — mirrors the connection monitor's own cadence so the
// two don't fight over discovery calls during a cold start.
func (s *WebSocketSession) waitForCredential(ctx context.Context) (*Credential, error) {
	attempt := 0
	for {
		cred, err := s.discovery.Current(ctx)
		if err == nil {
			return cred, nil
		}

		attempt++
		wait := credentialWaitInterval
		if attempt > credentialWaitAttempts {
			wait = credentialWaitBackoff
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (s *WebSocketSession) runOnce(ctx context.Context, cred *Credential) error {
	conn, err := s.dial(ctx, cred)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close() //nolint:errcheck

	generation := uuid.NewString()
	s.logger.Printf("connected generation=%s", generation)

	sessCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.resetSubscriptions()
	if err := s.applySubscriptions(conn, baselineSubscriptions); err != nil {
		return fmt.Errorf("initial subscribe: %w", err)
	}

	frames := make(chan string)
	readErrs := make(chan error, 1)
	go func() {
		defer close(frames)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				readErrs <- err
				return
			}
			select {
			case frames <- string(data):
			case <-sessCtx.Done():
				return
			}
		}
	}()

	idle := time.NewTimer(idleFallbackInterval)
	defer idle.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-readErrs:
			return err
		case frame, ok := <-frames:
			if !ok {
				return fmt.Errorf("socket closed")
			}
			resetTimer(idle, idleFallbackInterval)
			s.handler.Handle(frame)
			s.reconcileSubscriptions(conn)
		case <-idle.C:
			s.fetchFallback(ctx)
			idle.Reset(idleFallbackInterval)
		}
	}
}

func (s *WebSocketSession) dial(ctx context.Context, cred *Credential) (*websocket.Conn, error) {
	dialer := websocket.Dialer{
		TLSClientConfig:  &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // loopback control endpoint, self-signed by design
		HandshakeTimeout: 10 * time.Second,
	}
	target := url.URL{Scheme: "wss", Host: fmt.Sprintf("127.0.0.1:%d", cred.AppPort)}
	header := http.Header{}
	header.Set("Authorization", "Basic "+basicAuthToken(cred.RemotingToken))

	conn, _, err := dialer.DialContext(ctx, target.String(), header)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

func basicAuthToken(remotingToken string) string {
	return base64.StdEncoding.EncodeToString([]byte("riot:" + remotingToken))
}

// applySubscriptions sends a subscribe frame for every uri not already
// subscribed on this connection; the set is append-only for the
// connection's lifetime.
func (s *WebSocketSession) applySubscriptions(conn *websocket.Conn, uris []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, uri := range uris {
		if _, ok := s.subscriptions[uri]; ok {
			continue
		}
		if err := conn.WriteJSON([]any{5, "OnJsonApiEvent", uri}); err != nil {
			return err
		}
		s.subscriptions[uri] = struct{}{}
	}
	return nil
}

func (s *WebSocketSession) resetSubscriptions() {
	s.mu.Lock()
	s.subscriptions = make(map[string]struct{})
	s.phase = PhaseNone
	s.mu.Unlock()
}

// reconcileSubscriptions adds the topic tied to the observed phase — lobby,
// matchmaking-search, or champ-select — per §4.4's table. Subscriptions
// only grow within a connection; a later phase change does not unsubscribe
// anything, and re-entering an already-reached phase adds nothing new
// (§8 scenario 3).
func (s *WebSocketSession) reconcileSubscriptions(conn *websocket.Conn) {
	s.mu.Lock()
	phase := s.phase
	s.mu.Unlock()

	var uri string
	switch phase {
	case PhaseLobby:
		uri = URILobby
	case PhaseMatchmaking:
		uri = URIMatchmakingSearch
	case PhaseChampSelect:
		uri = URIChampSelectSession
	default:
		return
	}
	if err := s.applySubscriptions(conn, []string{uri}); err != nil {
		s.logger.Printf("subscribe %s: %v", uri, err)
	}
}

// fetchFallback re-fetches every currently subscribed topic over HTTP when
// the socket has gone idle, keeping the cache warm without a live push.
// It only ever feeds observed values through IngestFetched, never a clear.
func (s *WebSocketSession) fetchFallback(ctx context.Context) {
	for _, uri := range s.currentSubscriptions() {
		raw, err := s.transport.CallRaw(ctx, http.MethodGet, uri)
		if err != nil {
			continue
		}
		s.handler.IngestFetched(uri, raw)
	}
}

func (s *WebSocketSession) currentSubscriptions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	uris := make([]string, 0, len(s.subscriptions))
	for uri := range s.subscriptions {
		uris = append(uris, uri)
	}
	return uris
}

func resetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}
