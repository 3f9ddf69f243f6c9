// Package styler provides the transform plugin that rewrites the responder
// output into a polite customer-facing tone. Register it with a blank import:
//
//	_ "github.com/careline/careline/internal/plugins/styler"
package styler

import (
	"context"

	"github.com/careline/careline/plugin"
)

// Default tone fragments.
const (
	Greeting = "안녕하세요. 문의 주셔서 감사합니다."
	Closing  = "추가로 도움이 필요하시면 언제든지 말씀해 주세요."
	Apology  = "죄송합니다. 현재 드릴 수 있는 답변이 없습니다."
)

// MetadataApplyStyle is the plugin context metadata key the pipeline sets to
// control whether the styler runs for a given turn.
const MetadataApplyStyle = "apply_style"

func init() {
	plugin.RegisterFactory("styler", func() plugin.Plugin {
		return &Styler{greeting: Greeting, closing: Closing, apology: Apology}
	})
}

// Styler wraps the responder text with a greeting and closing. An empty
// responder text becomes a standalone apology.
type Styler struct {
	greeting string
	closing  string
	apology  string
}

// Name returns the plugin identifier.
func (s *Styler) Name() string { return "styler" }

// Type returns the plugin lifecycle hook type.
func (s *Styler) Type() plugin.PluginType { return plugin.TypeTransform }

// Init configures the plugin from the provided options map.
func (s *Styler) Init(config map[string]interface{}) error {
	if v, ok := config["greeting"].(string); ok && v != "" {
		s.greeting = v
	}
	if v, ok := config["closing"].(string); ok && v != "" {
		s.closing = v
	}
	if v, ok := config["apology"].(string); ok && v != "" {
		s.apology = v
	}
	return nil
}

// Execute sets Reply.FinalText from Reply.Text. When the pipeline marked the
// turn as not styleable, FinalText is left as the raw text.
func (s *Styler) Execute(_ context.Context, pctx *plugin.Context) error {
	if pctx.Reply == nil {
		return nil
	}

	if apply, ok := pctx.Metadata[MetadataApplyStyle].(bool); ok && !apply {
		pctx.Reply.FinalText = pctx.Reply.Text
		return nil
	}

	pctx.Reply.FinalText = s.Apply(pctx.Reply.Text)
	return nil
}

// Apply returns the styled form of text.
func (s *Styler) Apply(text string) string {
	if text == "" {
		return s.apology
	}
	return s.greeting + "\n" + text + "\n\n" + s.closing
}
