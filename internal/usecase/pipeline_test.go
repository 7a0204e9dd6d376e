package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ArticleTagger/internal/domain"
	"ArticleTagger/internal/ports"
	"ArticleTagger/internal/tagging"
)

type fakeProvider struct {
	body  string
	err   error
	calls int
	ids   []string
}

func (f *fakeProvider) FetchArticleBody(_ context.Context, id string) (string, error) {
	f.calls++
	f.ids = append(f.ids, id)
	return f.body, f.err
}

type fakeChat struct {
	reply    string
	err      error
	messages []ports.ChatMessage
}

func (f *fakeChat) CompleteChat(_ context.Context, messages []ports.ChatMessage) (string, error) {
	f.messages = messages
	return f.reply, f.err
}

type fakeCounter struct{ calls int }

func (f *fakeCounter) CountTokens(text string) (int, error) {
	f.calls++
	return len(text), nil
}

func TestFetchArticleSanitizes(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{body: "<p>Hello &amp; welcome</p>\n\n<p>again</p>"}
	pipeline := NewPipeline(PipelineDeps{Provider: provider})

	article, err := pipeline.FetchArticle(context.Background(), "42")
	require.NoError(t, err)

	assert.Equal(t, domain.Article{ID: "42", Body: "Hello & welcome again"}, article)
	assert.Equal(t, []string{"42"}, provider.ids)
}

func TestFetchArticleRequiresID(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{}
	_, err := NewPipeline(PipelineDeps{Provider: provider}).FetchArticle(context.Background(), "")

	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, MsgArticleIDRequired, validation.Message)
	assert.Zero(t, provider.calls)
}

func TestFetchArticlePropagatesProviderErrors(t *testing.T) {
	t.Parallel()

	upstream := &domain.UpstreamError{Service: "content provider", StatusCode: 404, StatusText: "Not Found"}
	_, err := NewPipeline(PipelineDeps{Provider: &fakeProvider{err: upstream}}).FetchArticle(context.Background(), "x")

	var got *domain.UpstreamError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, 404, got.StatusCode)
}

func TestGenerateTags(t *testing.T) {
	t.Parallel()

	chat := &fakeChat{reply: "```json\n[{\"tag\":\"ai\",\"tagType\":\"topic\",\"description\":\"x\"}]\n```"}
	counter := &fakeCounter{}
	pipeline := NewPipeline(PipelineDeps{ChatClient: chat, TokenCounter: counter})

	tags, err := pipeline.GenerateTags(context.Background(), "Robots learn to walk.")
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "ai", tags[0].Tag)

	assert.Equal(t, tagging.Messages("Robots learn to walk."), chat.messages)
	assert.Equal(t, 2, counter.calls)
}

func TestGenerateTagsRequiresText(t *testing.T) {
	t.Parallel()

	chat := &fakeChat{}
	_, err := NewPipeline(PipelineDeps{ChatClient: chat}).GenerateTags(context.Background(), "")

	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, MsgArticleTextRequired, validation.Message)
	assert.Nil(t, chat.messages)
}

func TestGenerateTagsCompletionFailure(t *testing.T) {
	t.Parallel()

	chat := &fakeChat{err: errors.New("dial tcp: connection refused")}
	_, err := NewPipeline(PipelineDeps{ChatClient: chat}).GenerateTags(context.Background(), "text")

	var upstream *domain.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestGenerateTagsParseFailure(t *testing.T) {
	t.Parallel()

	chat := &fakeChat{reply: "Sorry, I cannot help with that."}
	_, err := NewPipeline(PipelineDeps{ChatClient: chat}).GenerateTags(context.Background(), "text")

	var parseErr *domain.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "Sorry, I cannot help with that.", parseErr.Raw)
}

func TestGenerateTagsWithoutChatClient(t *testing.T) {
	t.Parallel()

	_, err := NewPipeline(PipelineDeps{}).GenerateTags(context.Background(), "text")

	var upstream *domain.UpstreamError
	require.ErrorAs(t, err, &upstream)
}
