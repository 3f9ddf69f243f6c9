package responders

import (
	"context"
	"fmt"
	"net/url"
	"os"

	"github.com/careline/careline/intent"
)

const (
	// deeplinkBaseEnv names the environment variable holding the app
	// deep-link scheme and host.
	deeplinkBaseEnv = "APP_DEEPLINK_BASE"

	deeplinkBaseDefault = "myapp://action"
)

// AppLink generates an in-app deep link that opens the screen matching the
// user's request.
type AppLink struct {
	base string
}

// NewAppLink builds the deep-link responder. base may be empty, in which
// case the APP_DEEPLINK_BASE environment variable is consulted, falling
// back to the default scheme.
func NewAppLink(base string) *AppLink {
	return &AppLink{base: base}
}

func (a *AppLink) Name() string          { return "applink" }
func (a *AppLink) Intent() intent.Intent { return intent.App }

func (a *AppLink) Respond(_ context.Context, turn Turn) (*Reply, error) {
	base := a.base
	if base == "" {
		base = os.Getenv(deeplinkBaseEnv)
	}
	if base == "" {
		base = deeplinkBaseDefault
	}

	deeplink := fmt.Sprintf("%s/open?q=%s", base, url.QueryEscape(turn.Text))
	text := fmt.Sprintf(
		"앱에서 바로 진행할 수 있는 버튼을 생성했습니다.\n- 딥링크: %s\n앱에서 링크를 열면 관련 작업 화면으로 이동합니다.",
		deeplink,
	)
	return &Reply{
		Intent:    intent.App,
		Text:      text,
		Guardrail: GuardrailPass,
		RefURLs:   []string{deeplink},
	}, nil
}
