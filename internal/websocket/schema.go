package websocket

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is the only message editor clients send: keepalive pings.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError Event = "error"
	EventStale Event = "editor_stale"
	EventPong  Event = "pong"
)

// StaleResponse tells the client its editor view of a mock is outdated and
// should be refetched.
type StaleResponse struct {
	Event  Event `json:"event"`
	MockID int   `json:"mock_id"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
