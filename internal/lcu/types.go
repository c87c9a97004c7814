// Package lcu talks to the local game client's control endpoint: it
// discovers credentials, issues authenticated HTTP calls, drives the
// connection state machine, and maintains the WebSocket subscription
// that feeds the event cache.
package lcu

import "time"

// Credential is the port/token pair needed to reach the control endpoint.
// Immutable once constructed; a new discovery always produces a fresh value
// rather than mutating an existing one.
type Credential struct {
	AppPort       int
	RemotingToken string
	AuxPort       int
	AuxToken      string
}

// ConnectionState is one node of the monitor's state machine (see
// ConnectionMonitor in connection.go).
type ConnectionState string

const (
	StateDisconnected ConnectionState = "Disconnected"
	StateProcessFound ConnectionState = "ProcessFound"
	StateConnected    ConnectionState = "Connected"
	StateUnstable     ConnectionState = "Unstable"
	StateAuthExpired  ConnectionState = "AuthExpired"
)

// ConnectionInfo is the monitor's owned snapshot. LastSuccessfulAt is
// omitted from the wire form emitted on connection-state-changed.
type ConnectionInfo struct {
	State               ConnectionState
	Credential          *Credential
	LastSuccessfulAt    time.Time
	ConsecutiveFailures int
	ErrorMessage        string
}

// Connected reports the invariant state==Connected ⇒ credential present.
func (c ConnectionInfo) Connected() bool {
	return c.State == StateConnected && c.Credential != nil
}

// Phase is the upstream's coarse lifecycle tag. Treated as an opaque
// string; only a handful of values are branched on.
type Phase string

const (
	PhaseNone            Phase = "None"
	PhaseLobby           Phase = "Lobby"
	PhaseMatchmaking     Phase = "Matchmaking"
	PhaseReadyCheck      Phase = "ReadyCheck"
	PhaseChampSelect     Phase = "ChampSelect"
	PhaseInProgress      Phase = "InProgress"
	PhaseWaitingForStats Phase = "WaitingForStats"
	PhaseEndOfGame       Phase = "EndOfGame"
	PhaseReconnect       Phase = "Reconnect"
)

// IsLobbyLike reports whether a phase belongs to the "lobby-ish" group:
// Lobby, Matchmaking, None, or an empty phase.
func (p Phase) IsLobbyLike() bool {
	switch p {
	case PhaseLobby, PhaseMatchmaking, PhaseNone, "":
		return true
	default:
		return false
	}
}

// Perspective picks the voice the advice engine writes in for a given
// player relative to the local player.
type Perspective string

const (
	PerspectiveSelfImprovement Perspective = "SelfImprovement"
	PerspectiveTargeting       Perspective = "Targeting"
	PerspectiveCollaboration   Perspective = "Collaboration"
)

// Event URIs consumed by the event handler. These are the only topics the
// handler treats as "interesting" (§4.5).
const (
	URIGameflowPhase    = "/lol-gameflow/v1/gameflow-phase"
	URIGameflowSession   = "/lol-gameflow/v1/session"
	URIChampSelectSession = "/lol-champ-select/v1/session"
	URILobby            = "/lol-lobby/v2/lobby"
	URIMatchmakingSearch = "/lol-matchmaking/v1/search"
)

// EventType is the upstream's tag on a JSON-API event frame.
type EventType string

const (
	EventCreate EventType = "Create"
	EventUpdate EventType = "Update"
	EventDelete EventType = "Delete"
)
