// Package logger provides a turn-logger plugin that records each user turn
// and assistant reply to standard output. Register it with a blank import:
//
//	_ "github.com/careline/careline/internal/plugins/logger"
package logger

import (
	"context"
	"log/slog"
	"time"

	"github.com/careline/careline/internal/logging"
	"github.com/careline/careline/plugin"
)

func init() {
	plugin.RegisterFactory("turn-logger", func() plugin.Plugin {
		return &TurnLogger{}
	})
}

// TurnLogger is a logging plugin that emits structured log entries
// for every turn flowing through the pipeline.
type TurnLogger struct {
	logLevel slog.Level
}

// Name returns the plugin identifier.
func (l *TurnLogger) Name() string { return "turn-logger" }

// Type returns the plugin lifecycle hook type.
func (l *TurnLogger) Type() plugin.PluginType { return plugin.TypeLogging }

// Init configures the plugin from the provided options map.
func (l *TurnLogger) Init(config map[string]interface{}) error {
	l.logLevel = slog.LevelInfo
	if level, ok := config["level"].(string); ok {
		switch level {
		case "debug":
			l.logLevel = slog.LevelDebug
		case "warn":
			l.logLevel = slog.LevelWarn
		case "error":
			l.logLevel = slog.LevelError
		}
	}
	return nil
}

// Execute runs the plugin logic for the current turn context.
func (l *TurnLogger) Execute(ctx context.Context, pctx *plugin.Context) error {
	log := logging.FromContext(ctx)
	if pctx.Turn != nil && pctx.Reply == nil && pctx.Error == nil {
		// before_turn stage
		log.Log(ctx, l.logLevel, "pipeline turn",
			"user_id", pctx.Turn.UserID,
			"chars", len([]rune(pctx.Turn.Text)),
			"pii", len(pctx.Turn.Stats),
			"timestamp", time.Now().UTC().Format(time.RFC3339),
		)
	}

	if pctx.Reply != nil {
		// after_turn stage
		log.Log(ctx, l.logLevel, "pipeline reply",
			"intent", pctx.Reply.Intent.String(),
			"guardrail", pctx.Reply.Guardrail,
			"blocked", pctx.Reply.Blocked,
			"refs", len(pctx.Reply.RefURLs),
			"timestamp", time.Now().UTC().Format(time.RFC3339),
		)
	}

	if pctx.Error != nil {
		// on_error stage
		log.Log(ctx, slog.LevelError, "pipeline error",
			"error", pctx.Error.Error(),
			"timestamp", time.Now().UTC().Format(time.RFC3339),
		)
	}
	return nil
}
