package channel

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/beachleague/channel/internal/message"
)

// DecodePost parses a POST body into a Message. The body must be a non-empty
// JSON object carrying string content, sender and timestamp; content must not
// be blank. Extra is optional and kept verbatim.
func DecodePost(body []byte) (message.Message, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return message.Message{}, &ValidationError{}
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || len(fields) == 0 {
		return message.Message{}, &ValidationError{}
	}

	var m message.Message
	for _, name := range requiredFields {
		raw, ok := fields[name]
		if !ok {
			return message.Message{}, &ValidationError{Field: name}
		}
		var value string
		if err := json.Unmarshal(raw, &value); err != nil || bytes.Equal(raw, []byte("null")) {
			return message.Message{}, &ValidationError{Field: name, Invalid: true}
		}
		if name == "content" && strings.TrimSpace(value) == "" {
			return message.Message{}, &ValidationError{Field: name}
		}
		assign(&m, name, value)
	}

	if raw, ok := fields["extra"]; ok {
		if err := json.Unmarshal(raw, &m.Extra); err != nil {
			return message.Message{}, &ValidationError{Field: "extra", Invalid: true}
		}
	}
	return m, nil
}
