package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"ArticleTagger/internal/config"
	"ArticleTagger/internal/domain"
	"ArticleTagger/internal/ports"
)

// LangChainClient implements ports.ChatClient on top of a langchaingo model.
type LangChainClient struct {
	model llms.Model
}

var _ ports.ChatClient = (*LangChainClient)(nil)

// NewLangChainClient builds an OpenAI-backed langchaingo model.
func NewLangChainClient(cfg config.ChatGPTConfig) (*LangChainClient, error) {
	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create openai model: %w", err)
	}
	return NewLangChainClientWithModel(model), nil
}

// NewLangChainClientWithModel wraps an existing model.
func NewLangChainClientWithModel(model llms.Model) *LangChainClient {
	return &LangChainClient{model: model}
}

// CompleteChat converts the messages to langchaingo content and returns the
// first choice.
func (c *LangChainClient) CompleteChat(ctx context.Context, messages []ports.ChatMessage) (string, error) {
	content := make([]llms.MessageContent, 0, len(messages))
	for _, m := range messages {
		content = append(content, llms.TextParts(messageType(m.Role), m.Content))
	}

	resp, err := c.model.GenerateContent(ctx, content)
	if err != nil {
		return "", &domain.UpstreamError{Service: chatServiceName, Err: err}
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", &domain.UpstreamError{Service: chatServiceName, Err: fmt.Errorf("no choices in response")}
	}

	return resp.Choices[0].Content, nil
}

func messageType(role ports.ChatRole) llms.ChatMessageType {
	switch role {
	case ports.RoleSystem:
		return llms.ChatMessageTypeSystem
	default:
		return llms.ChatMessageTypeHuman
	}
}
