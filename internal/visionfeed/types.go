package visionfeed

import "time"

// Frame types emitted by the vision bridge.
const (
	EventBoard   = "board"
	EventCommand = "command"
	EventReset   = "reset"
	EventPing    = "ping"
)

// Event is one JSON frame from the bridge. Board frames carry the full
// 10x9 cell grid plus a monotonic capture sequence; command frames carry
// the overlay's command box text; reset and ping frames carry only
// routing fields.
type Event struct {
	Type       string     `json:"type"`
	Seq        int64      `json:"seq"`
	Room       string     `json:"room"`
	Player     string     `json:"player"`
	Side       string     `json:"side"`
	Text       string     `json:"text"`
	Cells      [][]string `json:"cells"`
	CapturedAt time.Time  `json:"captured_at"`
}

// ReplyRequest is the POST /reply payload delivering analysis text to a room.
type ReplyRequest struct {
	Room string `json:"room"`
	Text string `json:"text"`
}

// HealthStatus is the GET /health response.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type WebSocketState string

const (
	WSStateDisconnected WebSocketState = "disconnected"
	WSStateConnecting   WebSocketState = "connecting"
	WSStateConnected    WebSocketState = "connected"
	WSStateReconnecting WebSocketState = "reconnecting"
	WSStateFailed       WebSocketState = "failed"
)
