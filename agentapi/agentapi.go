// Package agentapi defines the wire contract shared by the HTTP server and
// clients that talk to a remote support agent: the turn request/response
// JSON shapes and the canned fallback produced on transport failure.
package agentapi

// Request is the JSON body of POST /agent/.
type Request struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	Human     string `json:"human"`
}

// Response is the JSON reply for one turn.
type Response struct {
	UserID          string   `json:"user_id,omitempty"`
	SessionID       string   `json:"session_id,omitempty"`
	Text            string   `json:"response"`
	GuardrailResult string   `json:"guardrail_result"`
	Intent          string   `json:"intent"`
	Sentiment       string   `json:"sentiment,omitempty"`
	RefURLs         []string `json:"refUrl,omitempty"`
}

// Degraded-response field values used when a turn cannot be served.
const (
	GuardrailFail = "FAIL"
	IntentError   = "ERROR"

	// FallbackText is shown when the remote agent is unreachable.
	FallbackText = "죄송합니다. 일시적인 오류가 발생했습니다. 잠시 후 다시 시도해주세요."
)

// Fallback synthesizes the degraded response for a failed turn, echoing the
// request identifiers.
func Fallback(req Request) Response {
	return Response{
		UserID:          req.UserID,
		SessionID:       req.SessionID,
		Text:            FallbackText,
		GuardrailResult: GuardrailFail,
		Intent:          IntentError,
	}
}
