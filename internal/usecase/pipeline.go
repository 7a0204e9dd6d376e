package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ArticleTagger/internal/domain"
	"ArticleTagger/internal/ports"
	"ArticleTagger/internal/sanitizer"
	"ArticleTagger/internal/tagging"
)

// Validation messages returned to callers verbatim.
const (
	MsgArticleIDRequired   = "Article ID is required"
	MsgArticleTextRequired = "Article text is required"
)

// PipelineDeps wires the driven adapters into the article pipeline.
type PipelineDeps struct {
	Provider     ports.ArticleProvider
	ChatClient   ports.ChatClient
	TokenCounter ports.TokenCounter
	Logger       *slog.Logger
}

// Pipeline turns provider articles into plain text and tag sets.
type Pipeline struct {
	provider     ports.ArticleProvider
	chatClient   ports.ChatClient
	tokenCounter ports.TokenCounter
	logger       *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		provider:     deps.Provider,
		chatClient:   deps.ChatClient,
		tokenCounter: deps.TokenCounter,
		logger:       deps.Logger,
	}
}

// FetchArticle loads the article body and reduces it to plain text.
func (p *Pipeline) FetchArticle(ctx context.Context, id string) (domain.Article, error) {
	if id == "" {
		return domain.Article{}, &domain.ValidationError{Message: MsgArticleIDRequired}
	}
	if p.provider == nil {
		return domain.Article{}, &domain.TransportError{Service: "content provider", Err: errors.New("provider is not configured")}
	}

	raw, err := p.provider.FetchArticleBody(ctx, id)
	if err != nil {
		return domain.Article{}, fmt.Errorf("fetch article %s: %w", id, err)
	}

	body := sanitizer.Sanitize(raw)
	p.debug("article sanitized", "id", id, "raw_bytes", len(raw), "text_bytes", len(body))

	return domain.Article{ID: id, Body: body}, nil
}

// GenerateTags asks the chat model for tags describing text.
func (p *Pipeline) GenerateTags(ctx context.Context, text string) (domain.TagSet, error) {
	if text == "" {
		return nil, &domain.ValidationError{Message: MsgArticleTextRequired}
	}
	if p.chatClient == nil {
		return nil, &domain.UpstreamError{Service: "chat completion", Err: errors.New("chat client is not configured")}
	}

	messages := tagging.Messages(text)
	p.countTokens(messages)

	raw, err := p.chatClient.CompleteChat(ctx, messages)
	if err != nil {
		var upstream *domain.UpstreamError
		if !errors.As(err, &upstream) {
			err = &domain.UpstreamError{Service: "chat completion", Err: err}
		}
		return nil, fmt.Errorf("complete chat: %w", err)
	}
	p.debug("completion received", "raw", raw)

	tags, err := tagging.ParseTags(raw)
	if err != nil {
		return nil, err
	}

	p.debug("tags parsed", "count", len(tags))
	return tags, nil
}

func (p *Pipeline) countTokens(messages []ports.ChatMessage) {
	if p.tokenCounter == nil {
		return
	}

	total := 0
	for _, m := range messages {
		n, err := p.tokenCounter.CountTokens(m.Content)
		if err != nil {
			p.debug("token count unavailable", "error", err)
			return
		}
		total += n
	}
	p.debug("prompt tokens", "count", total)
}

func (p *Pipeline) debug(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}
