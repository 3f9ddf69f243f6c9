package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	careline "github.com/careline/careline"
	"github.com/careline/careline/agentapi"
	"github.com/careline/careline/internal/cache"
	"github.com/careline/careline/kb"
	"github.com/careline/careline/responders"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

const (
	chatPrompt    = "사용자> "
	chatBotPrefix = "봇> "
	chatGoodbye   = "종료합니다."
	chatBlocked   = "요청이 차단되었습니다: 부적절한 표현이 감지되었습니다."
)

var remoteURL string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `chat reads messages from stdin and prints the pipeline's replies.

Type "exit" or "quit" to leave. With --remote the messages go to a running
carelined server instead of an in-process pipeline.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ask, err := newAsker(cmd.Context())
		if err != nil {
			return err
		}
		return runChat(cmd.Context(), os.Stdin, os.Stdout, ask)
	},
}

func init() {
	chatCmd.Flags().StringVar(&remoteURL, "remote", "", "agent server base URL (e.g. http://localhost:8000)")
	rootCmd.AddCommand(chatCmd)
}

// askFunc sends one user message and reports the reply text and whether the
// message was rejected by the guardrail.
type askFunc func(ctx context.Context, text string) (string, bool, error)

func newAsker(ctx context.Context) (askFunc, error) {
	userID := uuid.NewString()
	sessionID := uuid.NewString()

	if remoteURL != "" {
		client := agentapi.NewClient(remoteURL)
		return func(ctx context.Context, text string) (string, bool, error) {
			resp, err := client.Ask(ctx, agentapi.Request{
				UserID:    userID,
				SessionID: sessionID,
				Human:     text,
			})
			if err != nil {
				// Ask degrades to the fixed apology reply; show it
				// rather than an error line.
				return resp.Text, false, nil
			}
			return resp.Text, resp.GuardrailResult == agentapi.GuardrailFail && resp.Intent != agentapi.IntentError, nil
		}, nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	pl, err := buildChatPipeline(cfg)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context, text string) (string, bool, error) {
		reply, err := pl.Respond(ctx, responders.Turn{
			UserID:    userID,
			SessionID: sessionID,
			Text:      text,
		})
		if err != nil {
			return "", false, err
		}
		return reply.Output(), reply.Blocked, nil
	}, nil
}

// buildChatPipeline mirrors the carelined wiring: corpus, responders, plugins.
func buildChatPipeline(cfg careline.Config) (*careline.Pipeline, error) {
	pl, err := careline.New(cfg)
	if err != nil {
		return nil, err
	}

	docs, err := kb.Load(cfg.KB.Dir)
	if err != nil {
		return nil, fmt.Errorf("load knowledge corpus: %w", err)
	}
	index := kb.NewIndex(docs)

	var opts []responders.RetrievalOption
	if cfg.KB.TopK > 0 {
		opts = append(opts, responders.WithTopK(cfg.KB.TopK))
	}
	if cfg.KB.CacheSize > 0 {
		ttl := 5 * time.Minute
		if cfg.KB.CacheTTL != "" {
			ttl, _ = time.ParseDuration(cfg.KB.CacheTTL)
		}
		opts = append(opts, responders.WithCache(cache.NewMemory[*responders.Reply](cfg.KB.CacheSize, ttl)))
	}

	pl.RegisterResponder(responders.NewRetrieval(index, opts...))
	pl.RegisterResponder(responders.NewTelephony(cfg.Links.TelephonyBase))
	pl.RegisterResponder(responders.NewAppLink(cfg.Links.DeeplinkBase))
	pl.RegisterResponder(responders.NewEscalation())

	if err := pl.LoadPlugins(); err != nil {
		return nil, err
	}
	return pl, nil
}

// runChat is the read-print loop. It stops on "exit"/"quit" or EOF.
func runChat(ctx context.Context, in io.Reader, out io.Writer, ask askFunc) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, chatPrompt)
		if !scanner.Scan() {
			fmt.Fprintln(out, chatGoodbye)
			return scanner.Err()
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		switch strings.ToLower(text) {
		case "exit", "quit":
			fmt.Fprintln(out, chatGoodbye)
			return nil
		}

		answer, blocked, err := ask(ctx, text)
		if err != nil {
			fmt.Fprintf(out, "오류가 발생했습니다: %v\n", err)
			continue
		}
		if blocked {
			fmt.Fprintln(out, chatBlocked)
			continue
		}
		fmt.Fprintln(out, chatBotPrefix+answer)
	}
}
