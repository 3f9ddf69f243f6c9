// Package plugin defines the Plugin interface and the lifecycle stages
// used to hook into the support pipeline.
//
// Plugins are registered by name via RegisterFactory and loaded by the
// pipeline at startup. The plugin.Context carries the turn and reply
// through each stage, and plugins may modify, reject, or skip turns.
//
// Built-in plugins live in the internal/plugins/* packages and are registered
// by importing them with a blank import (e.g. _ "github.com/careline/careline/internal/plugins/sanitizer").
package plugin

import (
	"context"

	"github.com/careline/careline/responders"
)

// Plugin is the interface all plugins must implement.
type Plugin interface {
	Name() string
	Type() PluginType
	Init(config map[string]interface{}) error
	Execute(ctx context.Context, pctx *Context) error
}

// PluginType categorizes plugins.
//nolint:revive // keep for backwards compatibility
type PluginType string

// PluginType constants define the supported lifecycle attachment points.
const (
	TypeGuardrail PluginType = "guardrail"
	TypeLogging   PluginType = "logging"
	TypeMetrics   PluginType = "metrics"
	TypeTransform PluginType = "transform"
)

// Stage defines when a plugin runs in the turn lifecycle.
type Stage string

// Stage constants define the execution phases within the pipeline.
const (
	StageBeforeTurn Stage = "before_turn"
	StageAfterTurn  Stage = "after_turn"
	StageOnError    Stage = "on_error"
)

// Context provides access to turn/reply data for plugins.
type Context struct {
	Turn     *responders.Turn
	Reply    *responders.Reply
	Metadata map[string]interface{}
	Error    error
	Skip     bool
	Reject   bool
	Reason   string
}

// NewContext creates a new plugin context for a turn.
func NewContext(turn *responders.Turn) *Context {
	return &Context{
		Turn:     turn,
		Metadata: make(map[string]interface{}),
	}
}
