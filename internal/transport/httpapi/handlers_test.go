package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ArticleTagger/internal/domain"
	"ArticleTagger/internal/ports"
	"ArticleTagger/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type providerDouble struct {
	body  string
	err   error
	calls int
}

func (p *providerDouble) FetchArticleBody(context.Context, string) (string, error) {
	p.calls++
	return p.body, p.err
}

type chatDouble struct {
	reply string
	err   error
	calls int
}

func (c *chatDouble) CompleteChat(context.Context, []ports.ChatMessage) (string, error) {
	c.calls++
	return c.reply, c.err
}

type panicService struct{}

func (panicService) FetchArticle(context.Context, string) (domain.Article, error) {
	panic("boom")
}

func (panicService) GenerateTags(context.Context, string) (domain.TagSet, error) {
	panic("boom")
}

func newTestServer(provider ports.ArticleProvider, chat ports.ChatClient) *Server {
	pipeline := usecase.NewPipeline(usecase.PipelineDeps{Provider: provider, ChatClient: chat})
	return NewServer(pipeline, nil)
}

func do(t *testing.T, s *Server, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), rec.Body.String())
	}
	return rec, decoded
}

func TestFetchArticleSuccess(t *testing.T) {
	t.Parallel()

	provider := &providerDouble{body: "<h1>Title</h1>\n<p>Hello &amp; welcome</p>"}
	rec, body := do(t, newTestServer(provider, nil), http.MethodGet, "/api/fetch-article?id=123", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"body": "Title Hello & welcome"}, body)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestFetchArticleMissingID(t *testing.T) {
	t.Parallel()

	for _, target := range []string{"/api/fetch-article", "/api/fetch-article?id="} {
		provider := &providerDouble{}
		rec, body := do(t, newTestServer(provider, nil), http.MethodGet, target, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Equal(t, map[string]any{"error": "Article ID is required"}, body, target)
		assert.Zero(t, provider.calls, target)
	}
}

func TestFetchArticleUpstreamStatus(t *testing.T) {
	t.Parallel()

	provider := &providerDouble{err: &domain.UpstreamError{Service: "content provider", StatusCode: 404, StatusText: "Not Found"}}
	rec, body := do(t, newTestServer(provider, nil), http.MethodGet, "/api/fetch-article?id=nope", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Failed to fetch article: 404 Not Found", body["error"])
	assert.Contains(t, body["error"], "404")
}

func TestFetchArticleTransportFailure(t *testing.T) {
	t.Parallel()

	provider := &providerDouble{err: &domain.TransportError{Service: "content provider", Err: context.DeadlineExceeded}}
	rec, body := do(t, newTestServer(provider, nil), http.MethodGet, "/api/fetch-article?id=1", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, map[string]any{"error": "Failed to fetch article"}, body)
}

func TestGenerateTagsSuccess(t *testing.T) {
	t.Parallel()

	chat := &chatDouble{reply: "```json\n[{\"tag\":\"ai\",\"tagType\":\"topic\",\"description\":\"x\"}]\n```"}
	rec, _ := do(t, newTestServer(nil, chat), http.MethodPost, "/api/generate-tags", `{"text":"Robots everywhere"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"tags":[{"tag":"ai","tagType":"topic","description":"x"}]}`, rec.Body.String())
}

func TestGenerateTagsWrapsSingleObject(t *testing.T) {
	t.Parallel()

	chat := &chatDouble{reply: `{"tag":"ai","tagType":"topic","description":"x"}`}
	rec, _ := do(t, newTestServer(nil, chat), http.MethodPost, "/api/generate-tags", `{"text":"Robots"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"tags":[{"tag":"ai","tagType":"topic","description":"x"}]}`, rec.Body.String())
}

func TestGenerateTagsValidation(t *testing.T) {
	t.Parallel()

	for _, payload := range []string{`{}`, `{"text":""}`, `{"text":42}`, `not json`, `[]`} {
		chat := &chatDouble{}
		rec, body := do(t, newTestServer(nil, chat), http.MethodPost, "/api/generate-tags", payload)

		assert.Equal(t, http.StatusBadRequest, rec.Code, payload)
		assert.Equal(t, map[string]any{"error": "Article text is required"}, body, payload)
		assert.Zero(t, chat.calls, payload)
	}
}

func TestGenerateTagsParseFailure(t *testing.T) {
	t.Parallel()

	chat := &chatDouble{reply: "not json"}
	rec, body := do(t, newTestServer(nil, chat), http.MethodPost, "/api/generate-tags", `{"text":"Robots"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, map[string]any{"error": "Failed to parse AI response", "rawResponse": "not json"}, body)
}

func TestGenerateTagsUpstreamFailure(t *testing.T) {
	t.Parallel()

	chat := &chatDouble{err: &domain.UpstreamError{Service: "chat completion", StatusCode: 401, StatusText: "Unauthorized"}}
	rec, body := do(t, newTestServer(nil, chat), http.MethodPost, "/api/generate-tags", `{"text":"Robots"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, map[string]any{"error": "Failed to generate tags"}, body)
}

func TestRequestIDIsEchoed(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "req-1")
	rec := httptest.NewRecorder()
	newTestServer(nil, nil).Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-1", rec.Header().Get(requestIDHeader))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestPanicsBecomeJSONErrors(t *testing.T) {
	t.Parallel()

	rec, body := do(t, NewServer(panicService{}, nil), http.MethodGet, "/api/fetch-article?id=1", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, map[string]any{"error": "Internal Server Error"}, body)
}
