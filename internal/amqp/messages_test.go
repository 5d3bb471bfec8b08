package amqp

import (
	"testing"
	"time"
)

func TestStatementIngestMessageRoundTrip(t *testing.T) {
	msg := NewStatementIngestMessage("st-123")
	if msg.Timestamp.IsZero() {
		t.Fatal("expected a timestamp on new messages")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	got, err := StatementIngestMessageFromJSON(body)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if got.StatementID != "st-123" {
		t.Errorf("StatementID = %q, want %q", got.StatementID, "st-123")
	}
	if !got.Timestamp.Round(time.Millisecond).Equal(msg.Timestamp.Round(time.Millisecond)) {
		t.Errorf("Timestamp = %v, want %v", got.Timestamp, msg.Timestamp)
	}
}

func TestStatementIngestMessageFromJSONInvalid(t *testing.T) {
	if _, err := StatementIngestMessageFromJSON([]byte("not json")); err == nil {
		t.Fatal("expected error for invalid payload")
	}
}
