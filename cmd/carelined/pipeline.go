package main

import (
	"fmt"
	"time"

	careline "github.com/careline/careline"
	"github.com/careline/careline/internal/cache"
	"github.com/careline/careline/kb"
	"github.com/careline/careline/responders"
)

// buildPipeline assembles the in-process pipeline from config: corpus load,
// TF-IDF fit, the four responders, and configured plugins.
func buildPipeline(cfg careline.Config) (*careline.Pipeline, error) {
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
