package main

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/viper"

	"github.com/edelweissconnect/cheminsight/internal/cache"
	"github.com/edelweissconnect/cheminsight/internal/httputil"
	"github.com/edelweissconnect/cheminsight/internal/pipeline"
	"github.com/edelweissconnect/cheminsight/internal/pubmed"
	"github.com/edelweissconnect/cheminsight/internal/resolve"
	"github.com/edelweissconnect/cheminsight/internal/synonyms"
	"github.com/edelweissconnect/cheminsight/pkg/types"
)

// loadConfig assembles the stage configuration from viper (config file and
// CHEMINSIGHT_* environment variables) with .secrets/ filling the NCBI
// credentials when the config leaves them empty.
func loadConfig() types.Config {
	v := viper.GetViper()

	v.SetDefault("fetch.timeout", 10*time.Second)
	v.SetDefault("fetch.user_agent", "cheminsight/0.1")
	v.SetDefault("fetch.max_retries", 3)
	v.SetDefault("synonyms.max_per_compound", 5)
	v.SetDefault("synonyms.max_per_target", 5)
	v.SetDefault("synonyms.enable_chembl", false)
	v.SetDefault("pubmed.batch_size", 5)
	v.SetDefault("pubmed.throttle_every", 3)
	v.SetDefault("pubmed.throttle_delay", time.Second)
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.dir", ".cache")

	var cfg types.Config
	cfg.Fetch.Timeout = v.GetDuration("fetch.timeout")
	cfg.Fetch.UserAgent = v.GetString("fetch.user_agent")
	cfg.Fetch.MaxRetries = v.GetInt("fetch.max_retries")
	cfg.Synonyms.MaxPerCompound = v.GetInt("synonyms.max_per_compound")
	cfg.Synonyms.MaxPerTarget = v.GetInt("synonyms.max_per_target")
	cfg.Synonyms.EnableChEMBL = v.GetBool("synonyms.enable_chembl")
	cfg.PubMed.APIKey = secretDefault("ncbi-api-key", v.GetString("pubmed.api_key"))
	cfg.PubMed.Email = secretDefault("ncbi-email", v.GetString("pubmed.email"))
	cfg.PubMed.BatchSize = v.GetInt("pubmed.batch_size")
	cfg.PubMed.ThrottleEvery = v.GetInt("pubmed.throttle_every")
	cfg.PubMed.ThrottleDelay = v.GetDuration("pubmed.throttle_delay")
	cfg.Cache.Enabled = v.GetBool("cache.enabled")
	cfg.Cache.Dir = v.GetString("cache.dir")
	return cfg
}

// newFetchClient builds the shared fetch client.
func newFetchClient(cfg types.Config) *httputil.Client {
	return &httputil.Client{
		HTTP:       &http.Client{Timeout: cfg.Fetch.Timeout},
		MaxRetries: cfg.Fetch.MaxRetries,
		UserAgent:  cfg.Fetch.UserAgent,
	}
}

// newPipeline wires the full search pipeline. w receives streamed warnings.
// The response cache, when enabled, backs only the PubMed client's fetches;
// the returned closer releases it.
func newPipeline(cfg types.Config, w io.Writer) (*pipeline.Pipeline, func() error, error) {
	fetch := newFetchClient(cfg)
	pubmedFetch := fetch
	closer := func() error { return nil }

	if cfg.Cache.Enabled {
		store, err := cache.Open(cfg.Cache.Dir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening response cache: %w", err)
		}
		cached := *fetch
		cached.Cache = store
		pubmedFetch = &cached
		closer = store.Close
	}

	p := &pipeline.Pipeline{
		Resolver: &resolve.Resolver{Client: fetch},
		Synonyms: &synonyms.Aggregator{Client: fetch, EnableChEMBL: cfg.Synonyms.EnableChEMBL},
		PubMed:   &pubmed.Client{Fetch: pubmedFetch, APIKey: cfg.PubMed.APIKey, Email: cfg.PubMed.Email},
		Config:   cfg,
		W:        w,
	}
	return p, closer, nil
}
