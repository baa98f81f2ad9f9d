package stream

import (
	"encoding/json"
	"errors"
	"fmt"
)

// FrameKind is the type tag of an inbound frame
type FrameKind string

// frame kinds sent by the push server
const (
	KindNewArticle FrameKind = "new_article"
	KindWelcome    FrameKind = "welcome"
	KindSubscribed FrameKind = "subscribed"
	KindPong       FrameKind = "pong"
	KindStats      FrameKind = "stats"
)

// Frame is a single inbound message. Data shape depends on Kind.
type Frame struct {
	Kind      FrameKind       `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Message   string          `json:"message,omitempty"`
	Timestamp float64         `json:"timestamp"`
	Topics    []string        `json:"topics,omitempty"`
}

// control message types sent by the client
const (
	msgSubscribe = "subscribe"
	msgGetStats  = "get_stats"
	msgPing      = "ping"
)

// controlMessage is an outbound client message
type controlMessage struct {
	Type   string   `json:"type"`
	Topics []string `json:"topics,omitempty"`
}

var (
	errNoKind = errors.New("frame has no type")
	errNoData = errors.New("frame has no data")
)

// ParseFrame decodes a raw frame, a frame without type is rejected
func ParseFrame(raw []byte) (Frame, error) {
	var f Frame
	if err := json.Unmarshal(raw, &f); err != nil {
		return Frame{}, fmt.Errorf("decode frame: %w", err)
	}
	if f.Kind == "" {
		return Frame{}, errNoKind
	}
	return f, nil
}

// hasData reports whether the frame carries a non-null payload
func (f Frame) hasData() bool {
	return len(f.Data) > 0 && string(f.Data) != "null"
}
