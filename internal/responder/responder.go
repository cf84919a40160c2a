// Package responder picks the canned BeachBot reply for a chat message.
package responder

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Responder produces at most one reply for a message.
type Responder interface {
	Generate(text string) (string, bool)
}

// Rule binds a predicate over lower-cased text to a reply.
type Rule struct {
	Name  string
	Match func(text string) bool
	Reply string
}

// Engine evaluates rules in order and answers with the first match, or with
// Fallback when none match.
type Engine struct {
	rules    []Rule
	fallback string
}

// FallbackReply is sent when no rule matches.
const FallbackReply = "Alright! 🌴"

// New returns an Engine with the beach volleyball rule table.
func New() *Engine {
	return NewEngine(DefaultRules(), FallbackReply)
}

// NewEngine returns an Engine over the given rules.
func NewEngine(rules []Rule, fallback string) *Engine {
	return &Engine{rules: rules, fallback: fallback}
}

// Generate lower-cases text and returns the reply of the first matching rule.
// An empty fallback means "no reply".
func (e *Engine) Generate(text string) (string, bool) {
	_, reply := e.match(text)
	return reply, reply != ""
}

// Match returns the name of the rule that answers text, or "fallback".
func (e *Engine) Match(text string) string {
	name, _ := e.match(text)
	return name
}

// Rules returns a copy of the rule table in evaluation order.
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

func (e *Engine) match(text string) (string, string) {
	lowered := strings.ToLower(norm.NFC.String(text))
	for _, rule := range e.rules {
		if rule.Match(lowered) {
			return rule.Name, rule.Reply
		}
	}
	return "fallback", e.fallback
}

// Contains matches when text contains any of the keywords.
func Contains(keywords ...string) func(string) bool {
	return func(text string) bool {
		for _, k := range keywords {
			if strings.Contains(text, k) {
				return true
			}
		}
		return false
	}
}

// ContainsAll matches when text contains every keyword.
func ContainsAll(keywords ...string) func(string) bool {
	return func(text string) bool {
		for _, k := range keywords {
			if !strings.Contains(text, k) {
				return false
			}
		}
		return true
	}
}
