// Package protocol defines the WebSocket message types for the device
// bridge: a remote haptic device streams kinematic samples to the demo
// and receives force commands back.
package protocol

import (
	"encoding/json"
	"fmt"
	"time"
)

// MessageType identifies the type of WebSocket message
type MessageType string

const (
	// Device → Demo messages
	TypeState MessageType = "state" // Kinematic sample
	TypeSpecs MessageType = "specs" // Device specifications

	// Demo → Device messages
	TypeForce MessageType = "force" // Force command

	// Bidirectional
	TypePing MessageType = "ping" // Health check
	TypePong MessageType = "pong" // Health check response
)

// Message is the base wrapper for all WebSocket messages
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp int64           `json:"ts,omitempty"` // Unix milliseconds
	Data      json.RawMessage `json:"data,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(msgType MessageType, data interface{}) (*Message, error) {
	var rawData json.RawMessage
	if data != nil {
		var err error
		rawData, err = json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal message data: %w", err)
		}
	}

	return &Message{
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
		Data:      rawData,
	}, nil
}

// ParseData unmarshals the message data into the provided struct
func (m *Message) ParseData(v interface{}) error {
	if m.Data == nil {
		return nil
	}
	return json.Unmarshal(m.Data, v)
}

// Bytes returns the JSON-encoded message
func (m *Message) Bytes() ([]byte, error) {
	return json.Marshal(m)
}

// ParseMessage parses a JSON message from bytes
func ParseMessage(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}
	return &msg, nil
}

// =============================================================================
// Device → Demo Message Types
// =============================================================================

// StateData is one kinematic sample of the device end-effector.
type StateData struct {
	Pos    [3]float64 `json:"pos"` // x, y, z in device workspace units
	Vel    [3]float64 `json:"vel"` // linear velocity
	Sample uint64     `json:"sample,omitempty"`
}

// SpecsData carries the device's physical limits, sent once on connect.
type SpecsData struct {
	MaxLinearForce     float64 `json:"max_linear_force"`
	MaxLinearStiffness float64 `json:"max_linear_stiffness"`
	MaxLinearDamping   float64 `json:"max_linear_damping"`
	SampleRate         float64 `json:"sample_rate"`
}

// =============================================================================
// Demo → Device Message Types
// =============================================================================

// ForceData is the force command committed at the end of a tick.
type ForceData struct {
	Force [3]float64 `json:"force"` // N
}

// =============================================================================
// Bidirectional Message Types
// =============================================================================

// PingData contains ping information
type PingData struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"ts"`
}

// PongData contains pong response
type PongData struct {
	ID        string `json:"id"`
	PingTS    int64  `json:"ping_ts"`
	PongTS    int64  `json:"pong_ts"`
	LatencyMs int64  `json:"latency_ms"`
}

// NewStateMessage wraps a kinematic sample.
func NewStateMessage(state StateData) (*Message, error) {
	return NewMessage(TypeState, state)
}

// NewSpecsMessage wraps device specifications.
func NewSpecsMessage(specs SpecsData) (*Message, error) {
	return NewMessage(TypeSpecs, specs)
}

// NewForceMessage wraps a force command.
func NewForceMessage(force [3]float64) (*Message, error) {
	return NewMessage(TypeForce, ForceData{Force: force})
}

// GetStateData parses the message as a kinematic sample.
func (m *Message) GetStateData() (*StateData, error) {
	if m.Type != TypeState {
		return nil, fmt.Errorf("message type is %s, not state", m.Type)
	}
	var state StateData
	if err := m.ParseData(&state); err != nil {
		return nil, err
	}
	return &state, nil
}

// GetSpecsData parses the message as device specifications.
func (m *Message) GetSpecsData() (*SpecsData, error) {
	if m.Type != TypeSpecs {
		return nil, fmt.Errorf("message type is %s, not specs", m.Type)
	}
	var specs SpecsData
	if err := m.ParseData(&specs); err != nil {
		return nil, err
	}
	return &specs, nil
}

// GetForceData parses the message as a force command.
func (m *Message) GetForceData() (*ForceData, error) {
	if m.Type != TypeForce {
		return nil, fmt.Errorf("message type is %s, not force", m.Type)
	}
	var force ForceData
	if err := m.ParseData(&force); err != nil {
		return nil, err
	}
	return &force, nil
}
