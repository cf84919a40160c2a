// Package message defines the chat message stored in the channel log.
package message

// Fixed senders and timestamps used for synthesized entries.
const (
	SystemSender     = "System"
	BotSender        = "BeachBot"
	WelcomeTimestamp = "0000-00-00T00:00:00Z"
)

// Message is a single entry of the channel log. Timestamp is opaque and is
// never parsed; Extra carries any JSON value the client attached.
type Message struct {
	Content   string `json:"content"`
	Sender    string `json:"sender"`
	Timestamp string `json:"timestamp"`
	Extra     any    `json:"extra"`
}

// Welcome returns the synthetic first entry of the log.
func Welcome(text string) Message {
	return Message{
		Content:   text,
		Sender:    SystemSender,
		Timestamp: WelcomeTimestamp,
	}
}

// Reply returns the bot message answering a message posted at timestamp.
func Reply(text, timestamp string) Message {
	return Message{
		Content:   text,
		Sender:    BotSender,
		Timestamp: timestamp,
	}
}

// IsWelcome reports whether m carries the given welcome text.
func (m Message) IsWelcome(text string) bool {
	return m.Content == text
}
