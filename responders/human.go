package responders

import (
	"context"
	"fmt"
	"strings"

	"github.com/careline/careline/intent"
)

// SensitiveKeywords mark issues that should be escalated to a human agent
// with priority.
var SensitiveKeywords = []string{"환불", "결제 오류", "계정 잠김", "개인정보", "법적", "분쟁"}

// echoRunes caps how much of the customer message is echoed back in the
// hand-off summary.
const echoRunes = 120

// Escalation screens messages bound for a human agent. Sensitive issues get
// an escalation recommendation plus a handling guide; everything else gets a
// neutral summary.
type Escalation struct {
	keywords []string
}

// NewEscalation builds the human hand-off responder. Passing no keywords
// uses the default sensitive keyword list.
func NewEscalation(keywords ...string) *Escalation {
	if len(keywords) == 0 {
		keywords = SensitiveKeywords
	}
	return &Escalation{keywords: keywords}
}

func (e *Escalation) Name() string          { return "escalation" }
func (e *Escalation) Intent() intent.Intent { return intent.Human }

func (e *Escalation) Respond(_ context.Context, turn Turn) (*Reply, error) {
	flagged := e.Flagged(turn.Text)
	summary := truncateRunes(turn.Text, echoRunes)

	var text string
	if flagged {
		text = fmt.Sprintf(
			"민감/복잡 이슈로 판단되어 상담사 연결이 권장됩니다.\n- 고객 메시지 요약: '%s' ...\n- 처리 가이드: 고객 본인확인, 결제/환불 정책 확인, 필요한 경우 추가 증빙 요청",
			summary,
		)
	} else {
		text = fmt.Sprintf(
			"상담사 검토 대상은 아니지만, 필요 시 연결 가능합니다.\n- 고객 메시지 요약: '%s' ...",
			summary,
		)
	}
	return &Reply{Intent: intent.Human, Text: text, Guardrail: GuardrailPass}, nil
}

// Flagged reports whether the text mentions any sensitive keyword.
func (e *Escalation) Flagged(text string) bool {
	lowered := strings.ToLower(text)
	for _, kw := range e.keywords {
		if strings.Contains(lowered, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func truncateRunes(text string, n int) string {
	runes := []rune(text)
	if len(runes) > n {
		return string(runes[:n])
	}
	return text
}
