package session

import (
	"gallerymaze/pkg/game/generator"
	"gallerymaze/pkg/game/instantiate"
)

// Message types sent to participants
const (
	TypeWelcome         = "Welcome"
	TypeLayoutGenerated = "LayoutGenerated"
	TypeLayoutFailed    = "LayoutFailed"
)

// Intent types accepted from participants
const (
	IntentRequestLayout = "RequestLayout"
)

// Envelope wraps every message sent to participants
type Envelope struct {
	Sequence uint64 `json:"seq"`
	Type     string `json:"type"`
	Payload  any    `json:"payload"`
}

// Intent is a message sent by a participant
type Intent struct {
	Type string `json:"type"`
}

// Welcome is the first message a participant receives
type Welcome struct {
	Participant string `json:"participant"`
	Ready       bool   `json:"ready"`
}

// LayoutGenerated carries a successful layout and its instantiated rooms
type LayoutGenerated struct {
	Layout *generator.Result           `json:"layout"`
	Rooms  []*instantiate.RoomInstance `json:"rooms"`
}

// LayoutFailed reports that generation did not produce a layout
type LayoutFailed struct {
	Attempts int    `json:"attempts"`
	Error    string `json:"error"`
}
