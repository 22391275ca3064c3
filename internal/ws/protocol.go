package ws

import (
	"github.com/fuelwatch/backend/internal/session"
)

type MessageType string

const (
	MsgSnapshot MessageType = "snapshot"
	MsgReport   MessageType = "report"
)

type WSMessage struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// SnapshotPayload carries the full session-store view. Sent on connect and
// on a periodic ticker.
type SnapshotPayload struct {
	Sessions []*session.SessionState `json:"sessions"`
}

// ReportPayload mirrors one reporting-sink line to observers.
type ReportPayload struct {
	Line string `json:"line"`
}
