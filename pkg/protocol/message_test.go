package protocol

import (
	"testing"
)

func TestStateMessage_RoundTrip(t *testing.T) {
	msg, err := NewStateMessage(StateData{
		Pos:    [3]float64{0.1, -0.2, 0.3},
		Vel:    [3]float64{1, 0, -1},
		Sample: 42,
	})
	if err != nil {
		t.Fatalf("NewStateMessage: %v", err)
	}

	raw, err := msg.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}

	parsed, err := ParseMessage(raw)
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	if parsed.Type != TypeState {
		t.Fatalf("Type: got %s, want state", parsed.Type)
	}

	state, err := parsed.GetStateData()
	if err != nil {
		t.Fatalf("GetStateData: %v", err)
	}
	if state.Pos != [3]float64{0.1, -0.2, 0.3} {
		t.Errorf("Pos: got %v", state.Pos)
	}
	if state.Sample != 42 {
		t.Errorf("Sample: got %d, want 42", state.Sample)
	}
}

func TestForceMessage_RoundTrip(t *testing.T) {
	msg, err := NewForceMessage([3]float64{0, 2.5, -1})
	if err != nil {
		t.Fatalf("NewForceMessage: %v", err)
	}

	raw, err := msg.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}

	parsed, err := ParseMessage(raw)
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	force, err := parsed.GetForceData()
	if err != nil {
		t.Fatalf("GetForceData: %v", err)
	}
	if force.Force != [3]float64{0, 2.5, -1} {
		t.Errorf("Force: got %v", force.Force)
	}
}

func TestSpecsMessage_RoundTrip(t *testing.T) {
	msg, err := NewSpecsMessage(SpecsData{
		MaxLinearForce:     7,
		MaxLinearStiffness: 1000,
		MaxLinearDamping:   15,
		SampleRate:         1000,
	})
	if err != nil {
		t.Fatalf("NewSpecsMessage: %v", err)
	}

	raw, _ := msg.Bytes()
	parsed, err := ParseMessage(raw)
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	specs, err := parsed.GetSpecsData()
	if err != nil {
		t.Fatalf("GetSpecsData: %v", err)
	}
	if specs.MaxLinearForce != 7 || specs.SampleRate != 1000 {
		t.Errorf("Specs: got %+v", specs)
	}
}

func TestMessage_TypeMismatch(t *testing.T) {
	msg, _ := NewStateMessage(StateData{})
	if _, err := msg.GetForceData(); err == nil {
		t.Error("GetForceData on a state message should fail")
	}
	if _, err := msg.GetSpecsData(); err == nil {
		t.Error("GetSpecsData on a state message should fail")
	}
}

func TestParseMessage_Invalid(t *testing.T) {
	if _, err := ParseMessage([]byte("not json")); err == nil {
		t.Error("ParseMessage should reject malformed input")
	}
}
