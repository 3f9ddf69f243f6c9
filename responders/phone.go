package responders

import (
	"context"
	"fmt"
	"hash/fnv"
	"os"

	"github.com/careline/careline/intent"
)

const (
	// telephonyBaseEnv names the environment variable pointing at the
	// call-center integration API.
	telephonyBaseEnv = "TELEPHONY_API_BASE"

	telephonyBaseUnset = "(설정되지 않음)"
)

// Telephony acknowledges phone consultation requests. A real deployment
// would enqueue the call with a CTI system; here we issue a deterministic
// ticket number derived from the message text.
type Telephony struct {
	apiBase string
}

// NewTelephony builds the phone responder. apiBase may be empty, in which
// case the TELEPHONY_API_BASE environment variable is consulted at
// response time.
func NewTelephony(apiBase string) *Telephony {
	return &Telephony{apiBase: apiBase}
}

func (t *Telephony) Name() string          { return "telephony" }
func (t *Telephony) Intent() intent.Intent { return intent.Phone }

func (t *Telephony) Respond(_ context.Context, turn Turn) (*Reply, error) {
	base := t.apiBase
	if base == "" {
		base = os.Getenv(telephonyBaseEnv)
	}
	if base == "" {
		base = telephonyBaseUnset
	}

	text := fmt.Sprintf(
		"전화 상담 요청을 접수했습니다. 곧 상담사가 연락드립니다.\n- 연동 API: %s\n- 접수번호: %s",
		base, TicketID(turn.Text),
	)
	return &Reply{Intent: intent.Phone, Text: text, Guardrail: GuardrailPass}, nil
}

// TicketID derives a stable four-digit ticket number from the message text.
func TicketID(text string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(text))
	return fmt.Sprintf("TICKET-%04d", h.Sum32()%10_000)
}
