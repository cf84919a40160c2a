package channel

import "github.com/beachleague/channel/internal/message"

// Info describes the channel as shown to the hub.
type Info struct {
	Name  string
	Topic string
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Name string `json:"name"`
}

// PostResult reports what a post did to the log.
type PostResult struct {
	// Blocked is set when the content filter rejected the message; nothing was stored.
	Blocked bool
	// Reply is the bot answer appended after the message, if any.
	Reply string
}

// Response texts returned to clients.
const (
	TextOK           = "OK"
	TextBlocked      = "Message blocked due to inappropriate content"
	TextUnauthorized = "Invalid authorization"
)

// Required fields of a posted message, in validation order.
var requiredFields = []string{"content", "sender", "timestamp"}

// assign sets the named required field of m.
func assign(m *message.Message, name, value string) {
	switch name {
	case "content":
		m.Content = value
	case "sender":
		m.Sender = value
	case "timestamp":
		m.Timestamp = value
	}
}
