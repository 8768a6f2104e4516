package event

import (
	"testing"
	"time"
)

func TestMessageRoundTrip(t *testing.T) {
	msg, err := NewMessage(MessageTypeNotification, Event{
		ID:    "n1",
		Type:  TypeMessage,
		Title: "New message",
	})
	if err != nil {
		t.Fatalf("NewMessage: %v", err)
	}

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	decoded, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if decoded.Type != MessageTypeNotification {
		t.Errorf("Type = %q, want %q", decoded.Type, MessageTypeNotification)
	}
	if err := decoded.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestMessageValidate(t *testing.T) {
	tests := []struct {
		name    string
		msg     Message
		wantErr bool
	}{
		{"valid", Message{Type: MessageTypeCounts, Payload: []byte(`{}`), Timestamp: time.Now()}, false},
		{"missing type", Message{Payload: []byte(`{}`)}, true},
		{"missing payload", Message{Type: MessageTypeCounts}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecodeEvent(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{"valid", `{"id":"n1","type":"message","title":"Hi","message":"body"}`, false},
		{"unknown type kept", `{"id":"n2","type":"weird","title":"Hi"}`, false},
		{"missing title", `{"id":"n3","type":"message"}`, true},
		{"missing type", `{"id":"n4","title":"Hi"}`, true},
		{"not json", `{{{`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeEvent([]byte(tt.payload))
			if (err != nil) != tt.wantErr {
				t.Errorf("DecodeEvent() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecodeCounts(t *testing.T) {
	c, err := DecodeCounts([]byte(`{"total":7,"counts":{"message":4,"grades":3}}`))
	if err != nil {
		t.Fatalf("DecodeCounts: %v", err)
	}
	if c.Total != 7 {
		t.Errorf("Total = %d, want 7", c.Total)
	}
	if c.Of(TypeMessage) != 4 {
		t.Errorf("Of(message) = %d, want 4", c.Of(TypeMessage))
	}
	// Absent type counts as zero, not unknown.
	if c.Of(TypeEnrollment) != 0 {
		t.Errorf("Of(enrollment) = %d, want 0", c.Of(TypeEnrollment))
	}

	if _, err := DecodeCounts([]byte(`{"total":-1}`)); err == nil {
		t.Error("negative total should be rejected")
	}
}

func TestDescribeTotality(t *testing.T) {
	// Every known type plus a synthetic unknown one must resolve to a
	// descriptor with a navigation section.
	for _, typ := range append(Types(), Type("unknown_future_type")) {
		d := Describe(typ)
		if d.Section == "" {
			t.Errorf("Describe(%q) has empty section", typ)
		}
		if d.Icon == "" {
			t.Errorf("Describe(%q) has empty icon", typ)
		}
	}

	if Describe(Type("bogus")).Section != SectionDashboard {
		t.Error("unknown type should fall back to dashboard")
	}
}
