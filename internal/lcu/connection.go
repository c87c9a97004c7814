package lcu

import (
	"context"
	"log"
	"net/http"
	"os"
	"sync"
	"time"
)

// ConnectionMonitor drives the explicit state machine of §4.3: the table
// (not the original Rust intervals) is authoritative for both the
// transition rules and the per-state poll interval.
//
// Grounded on the original connection_manager.rs monitor loop's shape
// (compare state, call a handler on change, sleep the state's interval)
// with this specification's own transition table and intervals.
type ConnectionMonitor struct {
	mu   sync.RWMutex
	info ConnectionInfo

	transport *Transport
	discovery *CredentialDiscovery
	logger    *log.Logger
	onChange  func(ConnectionInfo)
}

// NewConnectionMonitor builds a monitor starting in StateDisconnected.
// onChange, if non-nil, is invoked synchronously whenever the state
// changes (callers typically publish it to the event bus).
func NewConnectionMonitor(transport *Transport, discovery *CredentialDiscovery, onChange func(ConnectionInfo)) *ConnectionMonitor {
	return &ConnectionMonitor{
		info:      ConnectionInfo{State: StateDisconnected},
		transport: transport,
		discovery: discovery,
		logger:    log.New(os.Stderr, "[connection] ", log.LstdFlags),
		onChange:  onChange,
	}
}

// Info returns the current snapshot.
func (m *ConnectionMonitor) Info() ConnectionInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.info
}

// Run blocks, driving the state machine until ctx is cancelled.
func (m *ConnectionMonitor) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		interval := m.tick(ctx)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}

func (m *ConnectionMonitor) tick(ctx context.Context) time.Duration {
	m.mu.RLock()
	current := m.info
	m.mu.RUnlock()

	// §4.3: if Connected and the last success was within 60s, skip the
	// probe entirely and trust the WebSocket session's liveness.
	if current.State == StateConnected && !current.LastSuccessfulAt.IsZero() && time.Since(current.LastSuccessfulAt) < 60*time.Second {
		return m.intervalFor(current)
	}

	next := m.advance(ctx, current)

	m.mu.Lock()
	changed := next.State != m.info.State
	m.info = next
	m.mu.Unlock()

	if changed {
		m.logger.Printf("%s -> %s", current.State, next.State)
		if m.onChange != nil {
			m.onChange(next)
		}
	}

	return m.intervalFor(next)
}

func (m *ConnectionMonitor) advance(ctx context.Context, current ConnectionInfo) ConnectionInfo {
	next := current

	switch current.State {
	case StateDisconnected:
		cred, err := m.discovery.Current(ctx)
		switch {
		case err == nil:
			next.State = StateProcessFound
			next.Credential = cred
			next.ConsecutiveFailures = 0
			next.ErrorMessage = ""
		case m.discovery.ProcessExists(ctx):
			next.State = StateProcessFound
			next.ConsecutiveFailures = 0
			next.ErrorMessage = ""
		default:
			next.ConsecutiveFailures++
			next.ErrorMessage = errMessage(err)
		}

	case StateProcessFound:
		ok, cred, err := m.fullProbe(ctx)
		if ok {
			next.State = StateConnected
			next.Credential = cred
			next.ConsecutiveFailures = 0
			next.ErrorMessage = ""
			next.LastSuccessfulAt = time.Now()
		} else {
			next.ConsecutiveFailures++
			next.ErrorMessage = errMessage(err)
		}

	case StateConnected:
		ok, cred, err := m.fullProbe(ctx)
		if ok {
			next.ConsecutiveFailures = 0
			next.ErrorMessage = ""
			next.LastSuccessfulAt = time.Now()
			next.Credential = cred
			break
		}
		next.ConsecutiveFailures++
		next.ErrorMessage = errMessage(err)
		switch {
		case !m.discovery.ProcessExists(ctx):
			next.State = StateDisconnected
			next.Credential = nil
		case next.ConsecutiveFailures > 5:
			next.State = StateAuthExpired
			m.discovery.Invalidate()
		default:
			next.State = StateUnstable
		}

	case StateUnstable:
		ok, cred, err := m.fullProbe(ctx)
		if ok {
			next.State = StateConnected
			next.Credential = cred
			next.ConsecutiveFailures = 0
			next.ErrorMessage = ""
			next.LastSuccessfulAt = time.Now()
		} else {
			next.ConsecutiveFailures++
			next.ErrorMessage = errMessage(err)
		}

	case StateAuthExpired:
		m.discovery.Invalidate()
		ok, cred, err := m.fullProbe(ctx)
		if ok {
			next.State = StateConnected
			next.Credential = cred
			next.ConsecutiveFailures = 0
			next.ErrorMessage = ""
			next.LastSuccessfulAt = time.Now()
		} else {
			next.ErrorMessage = errMessage(err)
		}
	}

	return next
}

// fullProbe resolves a credential and issues the current-summoner probe
// described in §4.3.
func (m *ConnectionMonitor) fullProbe(ctx context.Context) (bool, *Credential, error) {
	cred, err := m.discovery.Current(ctx)
	if err != nil {
		return false, nil, err
	}
	var summoner map[string]any
	if err := m.transport.Probe(ctx, http.MethodGet, "/lol-summoner/v1/current-summoner", &summoner); err != nil {
		return false, cred, err
	}
	return true, cred, nil
}

func (m *ConnectionMonitor) intervalFor(info ConnectionInfo) time.Duration {
	switch info.State {
	case StateDisconnected:
		if info.ConsecutiveFailures > 20 {
			return 20 * time.Second
		}
		return 5 * time.Second
	case StateProcessFound:
		return 3 * time.Second
	case StateConnected:
		return 10 * time.Second
	case StateUnstable:
		return 5 * time.Second
	case StateAuthExpired:
		return 5 * time.Second
	default:
		return 5 * time.Second
	}
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
