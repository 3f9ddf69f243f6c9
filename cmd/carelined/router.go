package main

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	careline "github.com/careline/careline"
	"github.com/careline/careline/agentapi"
	"github.com/careline/careline/internal/logging"
	"github.com/careline/careline/internal/metrics"
	"github.com/careline/careline/internal/ratelimit"
	"github.com/careline/careline/internal/transcript"
	"github.com/careline/careline/recommend"
	"github.com/careline/careline/responders"
)

// intentBlocked is the wire intent label for turns stopped by the guardrail.
const intentBlocked = "BLOCK"

// newRouter builds the HTTP router.
func newRouter(cfg careline.Config, pl *careline.Pipeline, writer transcript.Writer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware)

	if cfg.Server.RateLimit.Enabled {
		store := ratelimit.NewStore(cfg.Server.RateLimit.PerSecond, cfg.Server.RateLimit.Burst)
		r.Use(rateLimitMiddleware(store))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/recommendations", recommendationsHandler(cfg.Recommend.Path))

	if cfg.Remote.URL != "" {
		r.Post("/agent/", proxyAgentHandler(cfg.Remote))
	} else {
		r.Post("/agent/", agentHandler(pl, writer))
	}

	return r
}

// agentHandler serves one turn from the in-process pipeline.
func agentHandler(pl *careline.Pipeline, writer transcript.Writer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req agentapi.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(req.Human) == "" {
			writeError(w, http.StatusBadRequest, "human text is required")
			return
		}
		if req.SessionID == "" {
			req.SessionID = uuid.NewString()
		}
		if req.UserID == "" {
			req.UserID = uuid.NewString()
		}

		ctx := r.Context()
		reply, err := pl.Respond(ctx, responders.Turn{
			UserID:    req.UserID,
			SessionID: req.SessionID,
			Text:      req.Human,
		})
		if err != nil {
			logging.FromContext(ctx).Error("agent turn failed", "error", err.Error())
			resp := agentapi.Fallback(req)
			resp.Text = "오류가 발생했습니다: " + err.Error()
			writeJSON(w, http.StatusInternalServerError, resp)
			return
		}

		intentLabel := reply.Intent.APILabel()
		if reply.Blocked {
			intentLabel = intentBlocked
		}

		_ = writer.Write(ctx, transcript.Entry{
			SessionID: req.SessionID,
			UserID:    req.UserID,
			Role:      transcript.RoleUser,
			Intent:    intentLabel,
			Guardrail: reply.Guardrail,
			Content:   req.Human,
		})
		_ = writer.Write(ctx, transcript.Entry{
			SessionID: req.SessionID,
			UserID:    req.UserID,
			Role:      transcript.RoleAssistant,
			Intent:    intentLabel,
			Guardrail: reply.Guardrail,
			Content:   reply.Output(),
		})

		writeJSON(w, http.StatusOK, agentapi.Response{
			UserID:          req.UserID,
			SessionID:       req.SessionID,
			Text:            reply.Output(),
			GuardrailResult: reply.Guardrail,
			Intent:          intentLabel,
			Sentiment:       reply.Sentiment,
			RefURLs:         reply.RefURLs,
		})
	}
}

// proxyAgentHandler forwards turns to an upstream agent, degrading to the
// canned fallback when the upstream is unreachable.
func proxyAgentHandler(cfg careline.RemoteConfig) http.HandlerFunc {
	timeout := agentapi.DefaultTimeout
	if cfg.Timeout != "" {
		if d, err := time.ParseDuration(cfg.Timeout); err == nil {
			timeout = d
		}
	}
	client := agentapi.NewClient(cfg.URL, agentapi.WithTimeout(timeout))

	return func(w http.ResponseWriter, r *http.Request) {
		var req agentapi.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		resp, err := client.Ask(r.Context(), req)
		if err != nil {
			metrics.RemoteFallbacks.Inc()
			logging.FromContext(r.Context()).Warn("remote agent call failed", "error", err.Error())
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// recommendationsHandler serves the suggested-question file, or an empty
// list when none is configured.
func recommendationsHandler(path string) http.HandlerFunc {
	recs := []recommend.Recommendation{}
	if path != "" {
		loaded, err := recommend.Load(path)
		if err != nil {
			logging.Logger.Warn("recommendations file unusable", "path", path, "error", err.Error())
		} else {
			recs = loaded
		}
	}

	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"recommendations": recs,
		})
	}
}

// clientKey identifies the caller for rate limiting. RemoteAddr carries an
// ephemeral port, so buckets are keyed on the host part only.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func rateLimitMiddleware(store *ratelimit.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !store.Allow(clientKey(r)) {
				metrics.RateLimitRejections.Inc()
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
