// Package intent maps a user turn to one of the four closed support intents
// using ordered keyword groups. Classification is a plain substring match on
// the lowercased input; the first group with any match wins, and inputs
// matching nothing fall back to retrieval.
package intent

import "strings"

// Intent is the closed category a user turn is routed to. Exactly one
// responder handles each intent; the orchestrator switches over this enum
// exhaustively, so adding a case here is a compile-visible change.
type Intent int

const (
	// Rag answers from the knowledge base and is the default.
	Rag Intent = iota
	// Phone simulates handing the turn to a telephony callback queue.
	Phone
	// App simulates an in-app deep link.
	App
	// Human routes toward a live-agent escalation check.
	Human
)

// String returns the lowercase routing name.
func (i Intent) String() string {
	switch i {
	case Phone:
		return "phone"
	case App:
		return "app"
	case Human:
		return "human"
	default:
		return "rag"
	}
}

// APILabel returns the label used on the agent HTTP contract: retrieval
// answers surface as "QNA", simulated actions as their upper-cased name.
func (i Intent) APILabel() string {
	if i == Rag {
		return "QNA"
	}
	return strings.ToUpper(i.String())
}

// Parse converts a routing name back to an Intent.
func Parse(s string) (Intent, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rag":
		return Rag, true
	case "phone":
		return Phone, true
	case "app":
		return App, true
	case "human":
		return Human, true
	default:
		return Rag, false
	}
}

// All returns every intent in routing priority order, default last.
func All() []Intent {
	return []Intent{Phone, App, Human, Rag}
}

type keywordGroup struct {
	intent Intent
	words  []string
}

// groups are checked in a fixed priority order: phone > app > human. The
// first group containing any matching substring wins regardless of match
// position or keyword length.
var groups = []keywordGroup{
	{Phone, []string{"전화", "통화", "상담 전화", "콜", "연락"}},
	{App, []string{"버튼", "앱", "바로가기", "링크", "열기", "이동"}},
	{Human, []string{"상담사", "사람", "직원", "연결", "에스컬레이션"}},
}

// Classify returns the intent for a user input. Case folding is locale-naive,
// which is acceptable for the reference keyword sets.
func Classify(text string) Intent {
	lowered := strings.ToLower(text)
	for _, g := range groups {
		for _, w := range g.words {
			if strings.Contains(lowered, strings.ToLower(w)) {
				return g.intent
			}
		}
	}
	return Rag
}
