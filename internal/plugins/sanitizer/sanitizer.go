// Package sanitizer provides the guardrail plugin that masks PII and
// profanity in incoming turns, and rejects turns whose profanity count
// reaches the block threshold. Register it with a blank import:
//
//	_ "github.com/careline/careline/internal/plugins/sanitizer"
package sanitizer

import (
	"context"

	"github.com/careline/careline/internal/metrics"
	"github.com/careline/careline/plugin"
	"github.com/careline/careline/sanitize"
)

func init() {
	plugin.RegisterFactory("sanitizer", func() plugin.Plugin {
		return &Sanitizer{threshold: sanitize.BlockThreshold}
	})
}

// Sanitizer masks PII and profanity in the turn text before any responder
// sees it. Turns with too much profanity are rejected outright.
type Sanitizer struct {
	threshold int
}

// Name returns the plugin identifier.
func (s *Sanitizer) Name() string { return "sanitizer" }

// Type returns the plugin lifecycle hook type.
func (s *Sanitizer) Type() plugin.PluginType { return plugin.TypeGuardrail }

// Init configures the plugin from the provided options map.
func (s *Sanitizer) Init(config map[string]interface{}) error {
	if v, ok := config["block_threshold"]; ok {
		switch n := v.(type) {
		case int:
			s.threshold = n
		case float64:
			s.threshold = int(n)
		}
	}
	if s.threshold <= 0 {
		s.threshold = sanitize.BlockThreshold
	}
	return nil
}

// Execute masks the turn text in place and records the per-category stats.
func (s *Sanitizer) Execute(_ context.Context, pctx *plugin.Context) error {
	if pctx.Turn == nil {
		return nil
	}

	masked, stats := sanitize.Sanitize(pctx.Turn.Text)
	pctx.Turn.Text = masked
	pctx.Turn.Stats = stats

	for category, count := range stats {
		if category == "profanity" {
			metrics.ProfanityMasked.Add(float64(count))
			continue
		}
		metrics.PIIMasked.WithLabelValues(category).Add(float64(count))
	}

	if stats["profanity"] >= s.threshold {
		metrics.TurnsBlocked.Inc()
		pctx.Reject = true
		pctx.Reason = sanitize.BlockMessage
	}
	return nil
}
