// Package careline implements a customer-support conversation pipeline:
// input sanitization, keyword intent routing, one of four response
// generators (knowledge-base retrieval, telephony hand-off, app deep link,
// human escalation), and a polite-tone style pass.
//
// The Pipeline type is the main entry point: create one with New, register
// responders with RegisterResponder, load plugins from config with
// LoadPlugins, and process turns with Respond.
//
// Behavior is configured via [Config] which can be loaded from a YAML or
// JSON file using [LoadConfig].
package careline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/careline/careline/intent"
	"github.com/careline/careline/internal/logging"
	"github.com/careline/careline/internal/metrics"
	"github.com/careline/careline/plugin"
	"github.com/careline/careline/responders"
	"github.com/careline/careline/sanitize"
)

// EventHookFunc is called asynchronously after a pipeline event (turn
// completed, blocked, or failed).
type EventHookFunc func(ctx context.Context, subject string, data map[string]interface{})

// Event subject constants used when invoking pipeline hooks.
const (
	SubjectTurnCompleted = "pipeline.turn.completed"
	SubjectTurnBlocked   = "pipeline.turn.blocked"
	SubjectTurnFailed    = "pipeline.turn.failed"
)

// StylePolicy decides whether the style pass runs for a given sanitized
// input. The reference behavior is constant-true; the policy is pluggable.
type StylePolicy func(text string) bool

// AlwaysStyle styles every reply.
func AlwaysStyle(string) bool { return true }

// NeverStyle disables the style pass.
func NeverStyle(string) bool { return false }

// Pipeline is the main entry point for processing support turns.
type Pipeline struct {
	mu         sync.RWMutex
	config     Config
	responders *responders.Registry
	plugins    *plugin.Manager
	style      StylePolicy
	hooks      []EventHookFunc
}

// New creates a new Pipeline instance with the given configuration.
func New(cfg Config) (*Pipeline, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	style := AlwaysStyle
	if cfg.Style.Mode == StyleNever {
		style = NeverStyle
	}
	return &Pipeline{
		config:     cfg,
		responders: responders.NewRegistry(),
		plugins:    plugin.NewManager(),
		style:      style,
	}, nil
}

// RegisterResponder registers a responder for its intent.
func (p *Pipeline) RegisterResponder(r responders.Responder) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.responders.Register(r)
}

// RegisterPlugin registers a plugin at the given lifecycle stage.
func (p *Pipeline) RegisterPlugin(stage plugin.Stage, pl plugin.Plugin) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.plugins.Register(stage, pl)
}

// SetStylePolicy replaces the styling decision function.
func (p *Pipeline) SetStylePolicy(policy StylePolicy) {
	if policy == nil {
		policy = AlwaysStyle
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.style = policy
}

// AddHook registers an EventHookFunc that is called asynchronously on each
// completed, blocked, or failed turn. Multiple hooks may be registered; all
// are invoked for every event.
func (p *Pipeline) AddHook(fn EventHookFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hooks = append(p.hooks, fn)
}

// Responders returns the names of all registered responders.
func (p *Pipeline) Responders() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.responders.List()
}

// GetConfig returns a copy of the current configuration.
func (p *Pipeline) GetConfig() Config {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.config
}

// LoadPlugins initializes and registers plugins from the pipeline configuration.
func (p *Pipeline) LoadPlugins() error {
	for _, pc := range p.config.Plugins {
		if !pc.Enabled {
			continue
		}
		factory, ok := plugin.GetFactory(pc.Name)
		if !ok {
			return fmt.Errorf("unknown plugin: %s", pc.Name)
		}
		pl := factory()
		if err := pl.Init(pc.Config); err != nil {
			return fmt.Errorf("plugin %s init failed: %w", pc.Name, err)
		}
		stage := plugin.Stage(pc.Stage)
		if err := p.RegisterPlugin(stage, pl); err != nil {
			return fmt.Errorf("plugin %s register failed: %w", pc.Name, err)
		}
	}
	return nil
}

// Respond processes one user turn: sanitize (before-turn plugins), classify
// intent, dispatch to exactly one responder, then run after-turn plugins
// (styling, logging). A guardrail rejection is not an error; it yields a
// blocked Reply carrying the fixed block message. Responder failures
// propagate to the caller.
func (p *Pipeline) Respond(ctx context.Context, turn responders.Turn) (*responders.Reply, error) {
	start := time.Now()
	if turn.SessionID != "" {
		ctx = logging.WithSessionID(ctx, turn.SessionID)
	}
	log := logging.FromContext(ctx)

	p.mu.RLock()
	plugins := p.plugins
	registry := p.responders
	style := p.style
	p.mu.RUnlock()

	// Before-turn plugins: sanitizer masks PII/profanity in place and may
	// reject the turn outright.
	pctx := plugin.NewContext(&turn)
	if plugins.HasPlugins() {
		if err := plugins.RunBefore(ctx, pctx); err != nil {
			metrics.TurnsTotal.WithLabelValues("", "error").Inc()
			return nil, err
		}
		if pctx.Reject {
			reason := pctx.Reason
			if reason == "" {
				reason = sanitize.BlockMessage
			}
			reply := &responders.Reply{
				Text:      reason,
				FinalText: reason,
				Blocked:   true,
				Guardrail: responders.GuardrailFail,
			}
			metrics.TurnsTotal.WithLabelValues("", "blocked").Inc()
			log.Info("turn blocked", "reason", reason)
			p.publishEvent(ctx, SubjectTurnBlocked, map[string]interface{}{
				"trace_id":   logging.TraceIDFromContext(ctx),
				"session_id": turn.SessionID,
				"reason":     reason,
				"timestamp":  time.Now(),
			})
			return reply, nil
		}
		turn = *pctx.Turn
	}

	// Route to exactly one responder. The enum is closed; anything
	// unresolvable falls back to retrieval.
	in := intent.Classify(turn.Text)
	responder, ok := registry.Get(in)
	if !ok {
		responder, ok = registry.Get(intent.Rag)
		if !ok {
			return nil, fmt.Errorf("no responder registered for intent %s and no retrieval fallback", in)
		}
	}

	reply, err := responder.Respond(ctx, turn)
	latency := time.Since(start)

	if err != nil {
		pctx.Error = err
		plugins.RunOnError(ctx, pctx)

		metrics.TurnsTotal.WithLabelValues(in.String(), "error").Inc()
		log.Error("turn failed",
			"intent", in.String(),
			"responder", responder.Name(),
			"latency_ms", latency.Milliseconds(),
			"error", err.Error(),
		)
		p.publishEvent(ctx, SubjectTurnFailed, map[string]interface{}{
			"trace_id":   logging.TraceIDFromContext(ctx),
			"session_id": turn.SessionID,
			"intent":     in.String(),
			"error":      err.Error(),
			"latency_ms": latency.Milliseconds(),
			"timestamp":  time.Now(),
		})
		return nil, fmt.Errorf("responder %s: %w", responder.Name(), err)
	}

	if reply.Guardrail == "" {
		reply.Guardrail = responders.GuardrailPass
	}

	// After-turn plugins: styler sets FinalText, logger records the turn.
	pctx.Reply = reply
	pctx.Metadata["apply_style"] = style(turn.Text)
	if plugins.HasPlugins() {
		_ = plugins.RunAfter(ctx, pctx)
	}
	if reply.FinalText == "" {
		reply.FinalText = reply.Text
	}

	metrics.TurnDuration.WithLabelValues(in.String()).Observe(latency.Seconds())
	metrics.TurnsTotal.WithLabelValues(in.String(), "success").Inc()

	log.Info("turn completed",
		"intent", in.String(),
		"responder", responder.Name(),
		"latency_ms", latency.Milliseconds(),
		"refs", len(reply.RefURLs),
	)

	p.publishEvent(ctx, SubjectTurnCompleted, map[string]interface{}{
		"trace_id":   logging.TraceIDFromContext(ctx),
		"session_id": turn.SessionID,
		"user_id":    turn.UserID,
		"intent":     in.String(),
		"guardrail":  reply.Guardrail,
		"latency_ms": latency.Milliseconds(),
		"timestamp":  time.Now(),
	})

	return reply, nil
}

// publishEvent calls all registered hooks asynchronously.
func (p *Pipeline) publishEvent(ctx context.Context, subject string, data map[string]interface{}) {
	p.mu.RLock()
	hooks := make([]EventHookFunc, len(p.hooks))
	copy(hooks, p.hooks)
	p.mu.RUnlock()

	for _, h := range hooks {
		fn := h
		go fn(ctx, subject, data)
	}
}
