// Script to test Langfuse connectivity: sends a smoke trace and pulls the
// summary and chat prompts into the local prompt cache.
// Usage: go run scripts/langfuse-test/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/blaisecz/health-trends/internal/app"
	"github.com/blaisecz/health-trends/internal/config"
	"github.com/blaisecz/health-trends/internal/langfuse"
)

func main() {
	cfg := config.Load()

	fmt.Println("=== Langfuse Connection Test ===")
	fmt.Printf("Base URL:     %s\n", cfg.LangfuseBaseURL)
	fmt.Printf("Public Key:   %s\n", maskKey(cfg.LangfusePublicKey))
	fmt.Printf("Secret Key:   %s\n", maskKey(cfg.LangfuseSecretKey))
	fmt.Printf("Environment:  %s\n", cfg.LangfuseEnv)
	fmt.Printf("Prompt label: %s\n", cfg.LangfusePromptLabel)
	fmt.Println()

	client := langfuse.NewClient(langfuse.Config{
		BaseURL:     cfg.LangfuseBaseURL,
		PublicKey:   cfg.LangfusePublicKey,
		SecretKey:   cfg.LangfuseSecretKey,
		Environment: cfg.LangfuseEnv,
	})
	if !client.IsEnabled() {
		log.Fatal("Langfuse client is disabled. Check your env vars.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	traceID, err := client.CreateTrace(ctx, langfuse.TraceInput{
		UserID:    "smoke-test@example.com",
		SessionID: "smoke-test@example.com",
		Name:      "health-summary-smoke",
		Input: map[string]any{
			"type": "current",
			"time": time.Now().Format(time.RFC3339),
		},
		Output: map[string]any{
			"status": "success",
		},
		Tags: []string{"test", "manual"},
	})
	if err != nil {
		log.Fatalf("Failed to create trace: %v", err)
	}
	if err := client.Close(ctx); err != nil {
		log.Fatalf("Failed to deliver trace: %v", err)
	}

	fmt.Println("✓ Test trace sent (check the Langfuse UI; ingestion errors are logged above)")
	fmt.Printf("  Trace ID: %s\n", traceID)
	fmt.Printf("  View at:  %s/trace/%s\n", cfg.LangfuseBaseURL, traceID)
	fmt.Println()

	prompts := app.LoadPrompts(ctx, cfg)
	for name, text := range map[string]string{
		app.PromptSummaryCurrent: prompts.Current,
		app.PromptSummaryGeneral: prompts.General,
		app.PromptChat:           prompts.Chat,
	} {
		if text == "" {
			fmt.Printf("✗ %s: not found, the built-in prompt will be used\n", name)
			continue
		}
		fmt.Printf("✓ %s: %d characters cached in %s\n", name, len(text), cfg.PromptCacheDir)
	}
}

func maskKey(key string) string {
	if len(key) < 8 {
		if key == "" {
			return "(empty)"
		}
		return "***"
	}
	return key[:8] + "..."
}
