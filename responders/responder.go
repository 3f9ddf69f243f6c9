// Package responders defines the Responder interface and the concrete
// response generators the pipeline dispatches to: knowledge-base retrieval,
// telephony hand-off, app deep links, and human escalation.
//
// Core types: Turn, Reply, Responder.
package responders

import (
	"context"

	"github.com/careline/careline/intent"
	"github.com/careline/careline/sanitize"
)

// Guardrail result labels carried on every reply.
const (
	GuardrailPass = "PASS"
	GuardrailFail = "FAIL"
)

// NoResponse is rendered when a responder produces no text at all.
const NoResponse = "(응답이 없습니다)"

// Turn is a single sanitized user message flowing through the pipeline.
type Turn struct {
	UserID    string
	SessionID string
	Text      string
	Stats     sanitize.Stats
}

// Reply is the structured result of one pipeline turn.
type Reply struct {
	Intent    intent.Intent
	Text      string
	FinalText string
	Blocked   bool
	Guardrail string
	Sentiment string
	RefURLs   []string
}

// Output returns the user-facing text: the styled FinalText when set,
// otherwise the raw responder Text, otherwise the no-response marker.
func (r *Reply) Output() string {
	if r.FinalText != "" {
		return r.FinalText
	}
	if r.Text != "" {
		return r.Text
	}
	return NoResponse
}

// Responder generates a reply for turns of a single intent.
type Responder interface {
	Name() string
	Intent() intent.Intent
	Respond(ctx context.Context, turn Turn) (*Reply, error)
}
