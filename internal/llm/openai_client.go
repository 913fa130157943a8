package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/blaisecz/health-trends/internal/domain"
)

var (
	// ErrOpenAIUnavailable indicates the OpenAI service is not configured or unavailable.
	ErrOpenAIUnavailable = errors.New("OpenAI service unavailable")
	// ErrOpenAIRequest indicates an error during the OpenAI API request.
	ErrOpenAIRequest = errors.New("OpenAI request failed")
	// ErrOpenAIResponse indicates an error parsing the OpenAI response.
	ErrOpenAIResponse = errors.New("failed to parse OpenAI response")
)

const currentSystemPrompt = `Eres un asistente médico especializado que analiza datos de salud de pacientes.

Genera un resumen clínico conciso del período de %d días basado únicamente en los datos proporcionados.

Reglas:
- Enfócate en tendencias, cambios significativos y recomendaciones prácticas.
- Los valores null significan que no hay datos; dilo explícitamente en lugar de inventarlos.
- Un KPI con "estimated": true es una estimación y debe presentarse como tal.
- Responde en español, en texto plano, sin markdown.`

const generalSystemPrompt = `Eres un asistente médico especializado que analiza historiales completos de salud.

Genera un resumen general del historial del paciente, identificando patrones a largo plazo, tendencias generales y recomendaciones para el seguimiento continuo.

Reglas:
- Basa tus conclusiones solo en los datos proporcionados.
- Los valores null significan que no hay datos; dilo explícitamente.
- Responde en español, en texto plano, sin markdown.`

const summaryUserPromptTemplate = `Datos del paciente en JSON.

- "kpis" contiene, por métrica, el promedio del período actual ("current"), del período anterior ("previous") y el cambio porcentual ("change").
- Peso, masa muscular, masa grasa y cintura en kg o cm; sueño en horas; pasos por día.
- "weight", "muscle", "fat", "sleep", "steps" y "waist" resumen cada serie (promedio, mínimo, máximo, tendencia).
- "analytics" resume las analíticas de laboratorio.
- "chartCounts" indica cuántos registros hay en cada serie.

JSON:

%s

Por favor, proporciona un análisis profesional con recomendaciones específicas.`

const chatSystemPrompt = `Eres un asistente médico especializado que ayuda a profesionales de la salud (coaches, doctores, etc.) a analizar y entender los datos de salud de sus pacientes.

Tienes acceso a los siguientes datos del paciente en JSON (los cambios porcentuales comparan con el período anterior):

%s

Instrucciones:
1. Responde de manera profesional y concisa.
2. Basa tus respuestas en los datos disponibles.
3. Si no tienes datos específicos, indícalo claramente.
4. Proporciona insights útiles y recomendaciones cuando sea apropiado.
5. Si la pregunta no está relacionada con salud, redirige amablemente al contexto médico.

Responde siempre en español y limita tus respuestas a 200 palabras máximo.`

// Prompts holds the system prompts used by the client. The current-period
// prompt receives the lookback in days through a %d verb; the chat prompt
// receives the patient context JSON through %s.
type Prompts struct {
	Current string
	General string
	Chat    string
}

// DefaultPrompts are used for any prompt left empty.
var DefaultPrompts = Prompts{
	Current: currentSystemPrompt,
	General: generalSystemPrompt,
	Chat:    chatSystemPrompt,
}

func (p Prompts) withDefaults() Prompts {
	if p.Current == "" {
		p.Current = DefaultPrompts.Current
	}
	if p.General == "" {
		p.General = DefaultPrompts.General
	}
	if p.Chat == "" {
		p.Chat = DefaultPrompts.Chat
	}
	return p
}

// SummaryLLM is the interface for generating health summaries and chat
// replies using an LLM.
type SummaryLLM interface {
	// GenerateSummary takes a context object and returns an LLM-generated summary.
	GenerateSummary(ctx context.Context, summaryCtx *domain.SummaryContext) (string, error)
	// Chat answers message given the patient context and prior turns.
	Chat(ctx context.Context, summaryCtx *domain.SummaryContext, history []domain.ChatMessage, message string) (string, error)
}

// OpenAIClient implements SummaryLLM using the OpenAI API.
type OpenAIClient struct {
	client  openai.Client
	model   string
	prompts Prompts
}

// NewOpenAIClient creates a new OpenAI client for generating summaries.
// Returns nil if apiKey is empty.
func NewOpenAIClient(apiKey, model string, prompts Prompts) *OpenAIClient {
	if apiKey == "" {
		return nil
	}

	if model == "" {
		model = "gpt-4o-mini"
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	return &OpenAIClient{
		client:  client,
		model:   model,
		prompts: prompts.withDefaults(),
	}
}

// SystemPrompt returns the system prompt for a summary context.
func (p Prompts) SystemPrompt(summaryCtx *domain.SummaryContext) string {
	p = p.withDefaults()
	if summaryCtx.Type == domain.SummaryGeneral {
		return p.General
	}
	return fmt.Sprintf(p.Current, summaryCtx.PeriodDays)
}

// UserPrompt renders the summary context as the user message.
func UserPrompt(summaryCtx *domain.SummaryContext) (string, error) {
	contextJSON, err := json.MarshalIndent(summaryCtx, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: failed to serialize context: %v", ErrOpenAIRequest, err)
	}
	return fmt.Sprintf(summaryUserPromptTemplate, string(contextJSON)), nil
}

// ChatMessages builds the message list for a chat turn, keeping only the
// last domain.MaxChatHistory history entries.
func (p Prompts) ChatMessages(summaryCtx *domain.SummaryContext, history []domain.ChatMessage, message string) ([]openai.ChatCompletionMessageParamUnion, error) {
	contextJSON, err := json.MarshalIndent(summaryCtx, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to serialize context: %v", ErrOpenAIRequest, err)
	}

	if len(history) > domain.MaxChatHistory {
		history = history[len(history)-domain.MaxChatHistory:]
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+2)
	messages = append(messages, openai.SystemMessage(fmt.Sprintf(p.withDefaults().Chat, string(contextJSON))))
	for _, m := range history {
		if m.Role == "assistant" {
			messages = append(messages, openai.AssistantMessage(m.Content))
		} else {
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}
	messages = append(messages, openai.UserMessage(message))
	return messages, nil
}

// GenerateSummary calls OpenAI to generate a patient summary.
func (c *OpenAIClient) GenerateSummary(ctx context.Context, summaryCtx *domain.SummaryContext) (string, error) {
	if c == nil {
		return "", ErrOpenAIUnavailable
	}

	userPrompt, err := UserPrompt(summaryCtx)
	if err != nil {
		return "", err
	}

	return c.complete(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(c.prompts.SystemPrompt(summaryCtx)),
		openai.UserMessage(userPrompt),
	}, 500)
}

// Chat calls OpenAI to answer a question about the patient.
func (c *OpenAIClient) Chat(ctx context.Context, summaryCtx *domain.SummaryContext, history []domain.ChatMessage, message string) (string, error) {
	if c == nil {
		return "", ErrOpenAIUnavailable
	}

	messages, err := c.prompts.ChatMessages(summaryCtx, history, message)
	if err != nil {
		return "", err
	}
	return c.complete(ctx, messages, 300)
}

func (c *OpenAIClient) complete(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion, maxTokens int64) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   openai.Int(maxTokens),
		Temperature: openai.Float(0.7),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOpenAIRequest, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrOpenAIResponse)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("%w: empty content", ErrOpenAIResponse)
	}
	return content, nil
}
