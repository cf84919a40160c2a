package channel

import (
	"reflect"
	"testing"

	"github.com/beachleague/channel/internal/message"
)

func TestDecodePost(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"empty body", "", "No message"},
		{"null", "null", "No message"},
		{"array", `[{"content":"x"}]`, "No message"},
		{"string", `"hi"`, "No message"},
		{"empty object", `{}`, "No message"},
		{"broken json", `{"content":`, "No message"},
		{"missing content", `{"sender":"A","timestamp":"T"}`, "No content"},
		{"blank content", `{"content":"  ","sender":"A","timestamp":"T"}`, "No content"},
		{"missing sender", `{"content":"hi","timestamp":"T"}`, "No sender"},
		{"missing timestamp", `{"content":"hi","sender":"A"}`, "No timestamp"},
		{"missing sender and timestamp", `{"content":"hi"}`, "No sender"},
		{"numeric sender", `{"content":"hi","sender":7,"timestamp":"T"}`, "Invalid sender"},
		{"null timestamp", `{"content":"hi","sender":"A","timestamp":null}`, "Invalid timestamp"},
		{"ok", `{"content":"hi","sender":"A","timestamp":"T"}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePost([]byte(tt.body))
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected %q, got nil", tt.wantErr)
			}
			if !IsValidation(err) {
				t.Fatalf("expected validation error, got %T", err)
			}
			if err.Error() != tt.wantErr {
				t.Fatalf("expected %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestDecodePostExtra(t *testing.T) {
	m, err := DecodePost([]byte(`{"content":"hi","sender":"A","timestamp":"T","extra":{"lang":"de"}}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := message.Message{
		Content:   "hi",
		Sender:    "A",
		Timestamp: "T",
		Extra:     map[string]any{"lang": "de"},
	}
	if !reflect.DeepEqual(m, want) {
		t.Fatalf("expected %+v, got %+v", want, m)
	}

	m, err = DecodePost([]byte(`{"content":"hi","sender":"A","timestamp":"T"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.Extra != nil {
		t.Fatalf("expected nil extra, got %#v", m.Extra)
	}
}

func TestDecodePostAllowsEmptySender(t *testing.T) {
	m, err := DecodePost([]byte(`{"content":"hi","sender":"","timestamp":""}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.Sender != "" {
		t.Fatalf("expected empty sender, got %q", m.Sender)
	}
}
