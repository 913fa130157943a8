// Package app assembles the data pipeline shared by the HTTP API and the MCP
// server.
package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/blaisecz/health-trends/internal/config"
	"github.com/blaisecz/health-trends/internal/kpi"
	"github.com/blaisecz/health-trends/internal/langfuse"
	"github.com/blaisecz/health-trends/internal/llm"
	"github.com/blaisecz/health-trends/internal/logger"
	"github.com/blaisecz/health-trends/internal/normalize"
	"github.com/blaisecz/health-trends/internal/provider"
	"github.com/blaisecz/health-trends/internal/seed"
	"github.com/blaisecz/health-trends/internal/service"
)

// Pipeline is the provider plus the services computing over it.
type Pipeline struct {
	Provider   provider.Provider
	Normalizer *normalize.Normalizer
	Dashboard  service.DashboardService
	Analytics  service.AnalyticsService
}

// NewProvider selects the health-data provider for cfg.ProviderMode.
func NewProvider(cfg *config.Config) (provider.Provider, error) {
	switch cfg.ProviderMode {
	case config.ProviderLonvital:
		if cfg.LonvitalAPIKey == "" {
			return nil, fmt.Errorf("LONVITAL_API_KEY is required when PROVIDER_MODE=%s", config.ProviderLonvital)
		}
		return provider.NewClient(provider.ClientConfig{
			BaseURL:           cfg.LonvitalAPIURL,
			APIKey:            cfg.LonvitalAPIKey,
			PageSize:          cfg.ProviderPageSize,
			RequestsPerSecond: cfg.ProviderRPS,
			Timeout:           cfg.ProviderFetchTimeout,
		}), nil
	case config.ProviderFixture:
		logger.GetLogger().WithComponent("app").Warn("serving generated fixture data (PROVIDER_MODE=fixture)")
		return seed.NewProvider(), nil
	default:
		return nil, fmt.Errorf("unknown PROVIDER_MODE %q", cfg.ProviderMode)
	}
}

// StepsFallback returns the configured placeholder step averages, or nil
// unless both are set.
func StepsFallback(cfg *config.Config) *kpi.StepsFallback {
	if cfg.StepsFallbackCurrent == nil || cfg.StepsFallbackPrevious == nil {
		return nil
	}
	return &kpi.StepsFallback{
		Current:  *cfg.StepsFallbackCurrent,
		Previous: *cfg.StepsFallbackPrevious,
	}
}

// NewPipeline builds the provider, the normalizer schema and the read-only
// services.
func NewPipeline(cfg *config.Config) (*Pipeline, error) {
	p, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}

	var schema normalize.SchemaTable
	if cfg.SchemaFile != "" {
		schema, err = normalize.LoadSchemaFile(cfg.SchemaFile)
		if err != nil {
			return nil, fmt.Errorf("load schema: %w", err)
		}
		logger.GetLogger().WithComponent("app").
			WithFields(logger.Fields{"file": cfg.SchemaFile}).Info("schema override loaded")
	}

	normalizer := normalize.New(schema)
	engine := kpi.NewEngine(normalizer, StepsFallback(cfg))
	fetcher := provider.NewFetcher(p, cfg.ProviderFetchTimeout)

	return &Pipeline{
		Provider:   p,
		Normalizer: normalizer,
		Dashboard:  service.NewDashboardService(fetcher, normalizer, engine),
		Analytics:  service.NewAnalyticsService(p),
	}, nil
}

// Prompt names in Langfuse prompt management.
const (
	PromptSummaryCurrent = "health-summary-current"
	PromptSummaryGeneral = "health-summary-general"
	PromptChat           = "health-chat"
)

// LoadPrompts pulls the LLM system prompts from Langfuse, falling back to the
// on-disk cache and then to the built-in defaults.
func LoadPrompts(ctx context.Context, cfg *config.Config) llm.Prompts {
	load := func(name string, variables map[string]string) string {
		prompt, err := langfuse.LoadPrompt(ctx, langfuse.PromptLoaderConfig{
			BaseURL:     cfg.LangfuseBaseURL,
			PublicKey:   cfg.LangfusePublicKey,
			SecretKey:   cfg.LangfuseSecretKey,
			PromptName:  name,
			PromptLabel: cfg.LangfusePromptLabel,
			SavePath:    filepath.Join(cfg.PromptCacheDir, name+".txt"),
			Variables:   variables,
		})
		if err != nil {
			logger.GetLogger().WithComponent("app").WithError(err).
				WithFields(logger.Fields{"prompt": name}).Debug("using built-in prompt")
			return ""
		}
		return prompt
	}

	return llm.Prompts{
		Current: load(PromptSummaryCurrent, map[string]string{"period_days": "%d"}),
		General: load(PromptSummaryGeneral, nil),
		Chat:    load(PromptChat, map[string]string{"context": "%s"}),
	}
}

// NewLLM returns the OpenAI client, or a client answering every call with
// llm.ErrOpenAIUnavailable when no API key is configured.
func NewLLM(ctx context.Context, cfg *config.Config) llm.SummaryLLM {
	client := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAISummaryModel, LoadPrompts(ctx, cfg))
	if client == nil {
		logger.GetLogger().WithComponent("app").Warn("OpenAI API key not configured, summaries and chat will be unavailable")
	}
	return client
}
