package langfuse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/blaisecz/health-trends/internal/logger"
)

// PromptLoaderConfig names a Langfuse prompt and where to cache it.
//
// Variables maps mustache placeholders in the managed prompt to the format
// verbs the LLM client fills in, e.g. {"context": "%s"} turns {{context}}
// into %s. Literal percent signs are escaped so the result is always a safe
// format string.
type PromptLoaderConfig struct {
	BaseURL   string
	PublicKey string
	SecretKey string

	PromptName  string
	PromptLabel string
	SavePath    string
	Variables   map[string]string
}

var errLangfuseDisabled = errors.New("langfuse integration disabled")

// LoadPrompt fetches a prompt from Langfuse and refreshes the cache file. When
// Langfuse is not configured or the fetch fails, the cached copy is used.
// Prompts missing a declared variable are rejected either way.
func LoadPrompt(ctx context.Context, cfg PromptLoaderConfig) (string, error) {
	log := logger.GetLogger().WithComponent("langfuse").WithFields(logger.Fields{"prompt": cfg.PromptName})

	if cfg.PromptName != "" {
		prompt, err := fetchPrompt(ctx, cfg)
		if err == nil {
			prompt, err = bindVariables(prompt, cfg.Variables)
		}
		switch {
		case err == nil:
			if err := writeCache(cfg.SavePath, prompt); err != nil {
				log.WithError(err).Warn("failed to cache prompt locally")
			}
			return prompt, nil
		case !errors.Is(err, errLangfuseDisabled):
			log.WithError(err).Warn("prompt fetch failed, trying cache")
		}
	}

	prompt, err := readCache(cfg.SavePath)
	if err != nil {
		return "", err
	}
	if err := checkVerbs(prompt, cfg.Variables); err != nil {
		return "", fmt.Errorf("cached prompt %s: %w", cfg.SavePath, err)
	}
	return prompt, nil
}

func fetchPrompt(ctx context.Context, cfg PromptLoaderConfig) (string, error) {
	if cfg.BaseURL == "" || cfg.PublicKey == "" || cfg.SecretKey == "" {
		return "", errLangfuseDisabled
	}

	endpoint, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid LANGFUSE_BASE_URL: %w", err)
	}
	endpoint.Path = strings.TrimSuffix(endpoint.Path, "/") + "/api/public/v2/prompts/" + url.PathEscape(cfg.PromptName)
	if cfg.PromptLabel != "" {
		endpoint.RawQuery = url.Values{"label": {cfg.PromptLabel}}.Encode()
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return "", fmt.Errorf("create prompt request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(cfg.PublicKey, cfg.SecretKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call Langfuse prompt API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("Langfuse prompt API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return decodePrompt(resp.Body)
}

// decodePrompt accepts text prompts and chat prompts; chat messages are
// flattened into a single system prompt.
func decodePrompt(r io.Reader) (string, error) {
	var payload struct {
		Type   string          `json:"type"`
		Prompt json.RawMessage `json:"prompt"`
	}
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode Langfuse prompt response: %w", err)
	}

	switch payload.Type {
	case "", "text":
		var text string
		if err := json.Unmarshal(payload.Prompt, &text); err != nil {
			return "", fmt.Errorf("parse text prompt: %w", err)
		}
		return text, nil
	case "chat":
		var messages []chatPromptMessage
		if err := json.Unmarshal(payload.Prompt, &messages); err != nil {
			return "", fmt.Errorf("parse chat prompt: %w", err)
		}
		return flattenChatMessages(messages), nil
	}
	return "", fmt.Errorf("unsupported prompt type %q", payload.Type)
}

type chatPromptMessage struct {
	Type    string `json:"type"`
	Role    string `json:"role"`
	Content string `json:"content"`
	Name    string `json:"name"`
}

func flattenChatMessages(messages []chatPromptMessage) string {
	parts := make([]string, 0, len(messages))
	for _, msg := range messages {
		content := msg.Content
		if msg.Type == "placeholder" {
			content = ""
			if msg.Name != "" {
				content = "{{" + msg.Name + "}}"
			}
		}
		if content == "" {
			continue
		}

		role := msg.Role
		if role == "" {
			role = "message"
		}
		parts = append(parts, strings.ToUpper(role)+": "+content)
	}
	return strings.Join(parts, "\n\n")
}

// bindVariables escapes literal percent signs and swaps every declared
// {{name}} placeholder for its verb.
func bindVariables(prompt string, variables map[string]string) (string, error) {
	bound := strings.ReplaceAll(prompt, "%", "%%")
	for name, verb := range variables {
		placeholder := "{{" + name + "}}"
		if !strings.Contains(bound, placeholder) {
			return "", fmt.Errorf("prompt lacks placeholder %s", placeholder)
		}
		bound = strings.ReplaceAll(bound, placeholder, verb)
	}
	return bound, nil
}

func checkVerbs(prompt string, variables map[string]string) error {
	for name, verb := range variables {
		if !strings.Contains(prompt, verb) {
			return fmt.Errorf("missing %s for {{%s}}", verb, name)
		}
	}
	return nil
}

func readCache(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("no local prompt file configured")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read local prompt file: %w", err)
	}
	return string(data), nil
}

func writeCache(path, prompt string) error {
	if path == "" {
		return nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(prompt), 0o600)
}
