package amqp

import "testing"

func TestEventMessageJSON(t *testing.T) {
	msg := NewEventMessage("ledger.csv_loaded", map[string]any{"transactions": 42})
	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	back, err := EventMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Event != "ledger.csv_loaded" {
		t.Fatalf("event = %q", back.Event)
	}
	if back.Timestamp.IsZero() {
		t.Fatalf("timestamp not carried")
	}
}

func TestEventMessageFromJSONRejectsGarbage(t *testing.T) {
	if _, err := EventMessageFromJSON([]byte("{not json")); err == nil {
		t.Fatalf("expected error")
	}
}
