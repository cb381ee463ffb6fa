package events

import (
	"encoding/json"
	"time"
)

// EventType identifies the kind of event emitted by the render service.
type EventType string

const (
	FragmentRendered EventType = "ssml.rendered"
	FragmentRejected EventType = "ssml.rejected"
	PresetsReloaded  EventType = "presets.reloaded"
)

// Envelope is the standard event wrapper published to the event bus.
type Envelope struct {
	ID        string            `json:"id"`
	Type      EventType         `json:"type"`
	Source    string            `json:"source"`
	RequestID string            `json:"request_id,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Data      json.RawMessage   `json:"data"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// FragmentRenderedData is the payload for ssml.rendered events.
type FragmentRenderedData struct {
	Tag    string `json:"tag"`
	Preset string `json:"preset,omitempty"`
	Bytes  int    `json:"bytes"`
}

// FragmentRejectedData is the payload for ssml.rejected events.
type FragmentRejectedData struct {
	Tag    string `json:"tag"`
	Preset string `json:"preset,omitempty"`
	Field  string `json:"field,omitempty"`
	Error  string `json:"error"`
}

// PresetsReloadedData is the payload for presets.reloaded events.
type PresetsReloadedData struct {
	Dir     string   `json:"dir"`
	Presets []string `json:"presets"`
	Error   string   `json:"error,omitempty"`
}
