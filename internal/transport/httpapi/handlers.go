package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"ArticleTagger/internal/domain"
	"ArticleTagger/internal/usecase"
)

// Error messages returned to clients.
const (
	MsgFetchFailed    = "Failed to fetch article"
	MsgGenerateFailed = "Failed to generate tags"
	MsgParseFailed    = "Failed to parse AI response"
)

type errorResponse struct {
	Error       string  `json:"error"`
	RawResponse *string `json:"rawResponse,omitempty"`
}

type fetchArticleResponse struct {
	Body string `json:"body"`
}

type generateTagsRequest struct {
	Text string `json:"text"`
}

type generateTagsResponse struct {
	Tags domain.TagSet `json:"tags"`
}

func (s *Server) fetchArticle(c *gin.Context) {
	id := c.Query("id")

	article, err := s.articles.FetchArticle(c.Request.Context(), id)
	if err != nil {
		status, body := fetchFailure(err)
		s.logFailure(c, "fetch article failed", status, err, "id", id)
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, fetchArticleResponse{Body: article.Body})
}

func (s *Server) generateTags(c *gin.Context) {
	var req generateTagsRequest
	// Malformed or non-JSON bodies count as missing text.
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logFailure(c, "decode generate-tags request", http.StatusBadRequest, err)
		c.JSON(http.StatusBadRequest, errorResponse{Error: usecase.MsgArticleTextRequired})
		return
	}

	tags, err := s.articles.GenerateTags(c.Request.Context(), req.Text)
	if err != nil {
		status, body := generateFailure(err)
		s.logFailure(c, "generate tags failed", status, err, "text_bytes", len(req.Text))
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, generateTagsResponse{Tags: tags})
}

func fetchFailure(err error) (int, errorResponse) {
	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		return http.StatusBadRequest, errorResponse{Error: validation.Message}
	}

	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) && upstream.StatusCode != 0 {
		return upstream.StatusCode, errorResponse{
			Error: fmt.Sprintf("%s: %d %s", MsgFetchFailed, upstream.StatusCode, upstream.StatusText),
		}
	}

	return http.StatusInternalServerError, errorResponse{Error: MsgFetchFailed}
}

func generateFailure(err error) (int, errorResponse) {
	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		return http.StatusBadRequest, errorResponse{Error: validation.Message}
	}

	var parseErr *domain.ParseError
	if errors.As(err, &parseErr) {
		raw := parseErr.Raw
		return http.StatusInternalServerError, errorResponse{Error: MsgParseFailed, RawResponse: &raw}
	}

	return http.StatusInternalServerError, errorResponse{Error: MsgGenerateFailed}
}

func (s *Server) logFailure(c *gin.Context, msg string, status int, err error, args ...any) {
	args = append(args, "status", status, "error", err, "request_id", c.GetString(requestIDKey))
	if status >= http.StatusInternalServerError {
		s.logger.Error(msg, args...)
		return
	}
	s.logger.Warn(msg, args...)
}
