package lcu

import (
	"encoding/json"
	"reflect"
	"sync"
	"time"

	"github.com/tidwall/gjson"

	"github.com/arcanefeed/riftwatch/internal/eventbus"
)

// EventHandler implements §4.5: it decodes upstream JSON-API event frames,
// deduplicates against the last observed value per topic, throttles the
// chatty champ-select topic, and publishes domain events onto the bus.
// Handle is total — malformed or uninteresting frames are silently dropped.
//
// Grounded on the original event_handler.rs's per-topic cache plus the
// teacher's hub fan-out for delivery (via eventbus.Bus).
type EventHandler struct {
	mu     sync.RWMutex
	topics map[string]*topicState

	bus                 *eventbus.Bus
	champSelectThrottle  time.Duration
	onPhase              func(Phase)
	buildTeamAnalysis    func(raw json.RawMessage) (any, error)

	snapshotMu sync.RWMutex
	snapshot   any
}

type topicState struct {
	value    any
	lastEmit time.Time
}

// NewEventHandler builds a handler. onPhase, if non-nil, is invoked with
// every observed phase so the WebSocket session can drive its dynamic
// subscription set (§4.4). buildTeamAnalysis, if non-nil, is invoked on
// every genuinely new champ-select frame to populate the synchronous
// snapshot getter (§4.6); it is injected rather than imported directly to
// avoid a cycle between this package and the session-model-builder package.
func NewEventHandler(bus *eventbus.Bus, onPhase func(Phase), buildTeamAnalysis func(raw json.RawMessage) (any, error)) *EventHandler {
	return &EventHandler{
		topics:              make(map[string]*topicState),
		bus:                 bus,
		champSelectThrottle: 100 * time.Millisecond,
		onPhase:             onPhase,
		buildTeamAnalysis:   buildTeamAnalysis,
	}
}

// SetChampSelectThrottle overrides the champ-select event throttle window,
// letting the CLI's --champ-select-throttle-ms flag tune it.
func (h *EventHandler) SetChampSelectThrottle(d time.Duration) {
	h.mu.Lock()
	h.champSelectThrottle = d
	h.mu.Unlock()
}

// Handle processes one raw WebSocket text frame.
func (h *EventHandler) Handle(frameText string) {
	uri, eventType, raw, ok := parseUpstreamFrame(frameText)
	if !ok || !isInterestingTopic(uri) {
		return
	}

	if eventType == EventDelete {
		h.handleDelete(uri)
		return
	}
	h.handleUpsert(uri, raw)
}

// IngestFetched feeds a value obtained from the HTTP fallback fetch
// through the same dedup/emit path as a WebSocket frame, except it never
// clears a topic — the fallback only ever observes "current state", never
// a Delete.
func (h *EventHandler) IngestFetched(uri string, raw []byte) {
	if !isInterestingTopic(uri) {
		return
	}
	h.handleUpsert(uri, raw)
}

// ChampSelectSnapshot returns the most recently built team-analysis
// snapshot, or nil if none is available — the UI's "bypass rebuild on page
// reload" getter.
func (h *EventHandler) ChampSelectSnapshot() any {
	h.snapshotMu.RLock()
	defer h.snapshotMu.RUnlock()
	return h.snapshot
}

func (h *EventHandler) handleUpsert(uri string, raw []byte) {
	var decoded any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return
		}
	}

	h.mu.Lock()
	st, exists := h.topics[uri]
	if !exists {
		st = &topicState{}
		h.topics[uri] = st
	}
	if exists && reflect.DeepEqual(st.value, decoded) {
		h.mu.Unlock()
		return
	}

	if uri == URIChampSelectSession && !h.allowChampSelectEmit(st) {
		// Throttled: the newest value is kept, but nothing is emitted
		// this round. If nothing further arrives the suppressed update is
		// simply lost — the idle-timer fallback re-fetches full state.
		st.value = decoded
		h.mu.Unlock()
		return
	}
	if uri == URIChampSelectSession {
		st.lastEmit = time.Now()
	}
	st.value = decoded
	h.mu.Unlock()

	h.afterUpsert(uri, decoded, raw)
}

func (h *EventHandler) handleDelete(uri string) {
	h.mu.Lock()
	st, exists := h.topics[uri]
	hadValue := exists && st.value != nil
	if exists {
		st.value = nil
	}
	h.mu.Unlock()

	if !hadValue {
		return
	}

	eventName, _ := eventNameAndPhaseFor(uri, nil)
	if eventName != "" {
		h.bus.Publish(eventbus.Event{Name: eventName, Payload: nil})
	}
	if uri == URIChampSelectSession {
		h.snapshotMu.Lock()
		h.snapshot = nil
		h.snapshotMu.Unlock()
	}
}

func (h *EventHandler) afterUpsert(uri string, decoded any, raw []byte) {
	eventName, phase := eventNameAndPhaseFor(uri, decoded)
	if eventName != "" {
		h.bus.Publish(eventbus.Event{Name: eventName, Payload: decoded})
	}
	if phase != "" && h.onPhase != nil {
		h.onPhase(phase)
	}

	if uri == URIChampSelectSession && h.buildTeamAnalysis != nil {
		if snap, err := h.buildTeamAnalysis(json.RawMessage(raw)); err == nil {
			h.snapshotMu.Lock()
			h.snapshot = snap
			h.snapshotMu.Unlock()
		}
	}
}

func (h *EventHandler) allowChampSelectEmit(st *topicState) bool {
	if st.lastEmit.IsZero() {
		return true
	}
	return time.Since(st.lastEmit) >= h.champSelectThrottle
}

// eventNameAndPhaseFor maps a topic to its downstream event name and, for
// the two gameflow topics, the phase value that should drive the
// subscription state machine. The session topic carries an embedded phase
// and is treated as phase-equivalent to the dedicated phase topic.
func eventNameAndPhaseFor(uri string, decoded any) (string, Phase) {
	switch uri {
	case URIGameflowPhase:
		p, _ := decoded.(string)
		return eventbus.GameflowPhaseChange, Phase(p)
	case URIGameflowSession:
		return eventbus.GameflowPhaseChange, phaseFromSession(decoded)
	case URIChampSelectSession:
		return eventbus.ChampSelectSessionChanged, ""
	case URILobby:
		return eventbus.LobbyChange, ""
	case URIMatchmakingSearch:
		return eventbus.MatchmakingStateChanged, ""
	default:
		return "", ""
	}
}

func phaseFromSession(decoded any) Phase {
	m, ok := decoded.(map[string]any)
	if !ok {
		return ""
	}
	p, _ := m["phase"].(string)
	return Phase(p)
}

func isInterestingTopic(uri string) bool {
	switch uri {
	case URIGameflowPhase, URIGameflowSession, URIChampSelectSession, URILobby, URIMatchmakingSearch:
		return true
	default:
		return false
	}
}

// parseUpstreamFrame decodes a [8, "OnJsonApiEvent", {uri,eventType,data}]
// frame. ok is false for anything malformed, which callers treat as "drop
// silently" per the total-ness contract of Handle.
func parseUpstreamFrame(frameText string) (uri string, eventType EventType, data []byte, ok bool) {
	if !gjson.Valid(frameText) {
		return "", "", nil, false
	}
	arr := gjson.Parse(frameText).Array()
	if len(arr) != 3 {
		return "", "", nil, false
	}
	if arr[0].Int() != 8 || arr[1].String() != "OnJsonApiEvent" {
		return "", "", nil, false
	}

	payload := arr[2]
	uri = payload.Get("uri").String()
	if uri == "" {
		return "", "", nil, false
	}
	eventType = EventType(payload.Get("eventType").String())
	dataResult := payload.Get("data")
	if !dataResult.Exists() {
		return uri, eventType, nil, true
	}
	return uri, eventType, []byte(dataResult.Raw), true
}
