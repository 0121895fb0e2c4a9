package advisor

import (
	"context"
	"fmt"

	"the-signal/internal/domain"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// LLMClient abstracts the OpenAI chat completions API for testability.
type LLMClient interface {
	CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

// MarketQuerier provides the current signal and brief for the advisor's context.
type MarketQuerier interface {
	GetSignal(ctx context.Context) domain.SignalResult
	GetBrief(ctx context.Context) domain.Brief
}

type AdvisorService struct {
	tracer     trace.Tracer
	llm        LLMClient
	market     MarketQuerier
	history    *HistoryStore
	model      string
	maxHistory int
}

func NewAdvisorService(
	tracer trace.Tracer,
	llm LLMClient,
	market MarketQuerier,
	model string,
	maxHistory int,
) *AdvisorService {
	if maxHistory <= 0 {
		maxHistory = 20
	}
	return &AdvisorService{
		tracer:     tracer,
		llm:        llm,
		market:     market,
		history:    NewHistoryStore(maxHistory),
		model:      model,
		maxHistory: maxHistory,
	}
}

// Ask answers one user question against the latest signal and brief,
// carrying per-session conversation history.
func (s *AdvisorService) Ask(ctx context.Context, sessionID, userMessage string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "advisor.ask")
	defer span.End()
	span.SetAttributes(attribute.String("session_id", sessionID))

	s.history.Append(sessionID, "user", userMessage)

	marketContext := s.gatherContext(ctx)
	systemPrompt := BuildSystemPrompt(marketContext)
	messages := s.buildMessages(systemPrompt, s.history.Recent(sessionID))

	reply, err := s.callLLM(ctx, messages)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("advisor unavailable: %w", err)
	}

	s.history.Append(sessionID, "assistant", reply)
	return reply, nil
}

func (s *AdvisorService) gatherContext(ctx context.Context) string {
	ctx, span := s.tracer.Start(ctx, "advisor.gather-context")
	defer span.End()

	result := s.market.GetSignal(ctx)
	b := s.market.GetBrief(ctx)
	return FormatMarketContext(result, b)
}

func (s *AdvisorService) buildMessages(
	systemPrompt string,
	history []Message,
) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+1)

	messages = append(messages, openai.SystemMessage(systemPrompt))

	for _, msg := range history {
		switch msg.Role {
		case "user":
			messages = append(messages, openai.UserMessage(msg.Content))
		case "assistant":
			messages = append(messages, openai.AssistantMessage(msg.Content))
		}
	}

	return messages
}

func (s *AdvisorService) callLLM(
	ctx context.Context,
	messages []openai.ChatCompletionMessageParamUnion,
) (string, error) {
	ctx, span := s.tracer.Start(ctx, "advisor.llm-call")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.model", s.model),
		attribute.Int("llm.message_count", len(messages)),
	)

	completion, err := s.llm.CreateChatCompletion(ctx, openai.ChatCompletionNewParams{
		Model:    s.model,
		Messages: messages,
	})
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no choices in LLM response")
	}

	reply := completion.Choices[0].Message.Content
	span.SetAttributes(attribute.Int("llm.reply_length", len(reply)))
	return reply, nil
}

// openaiClient wraps the official SDK's chat completions service.
type openaiClient struct {
	client openai.Client
}

func NewOpenAIClient(apiKey string) LLMClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &openaiClient{client: client}
}

func (c *openaiClient) CreateChatCompletion(
	ctx context.Context,
	params openai.ChatCompletionNewParams,
) (*openai.ChatCompletion, error) {
	return c.client.Chat.Completions.New(ctx, params)
}
