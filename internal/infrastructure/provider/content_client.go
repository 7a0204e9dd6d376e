package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"ArticleTagger/internal/config"
	"ArticleTagger/internal/domain"
	"ArticleTagger/internal/ports"
)

const serviceName = "content provider"

// ContentClient reads article bodies from the content API.
type ContentClient struct {
	http     *resty.Client
	bodyPath string
	selector string
	logger   *slog.Logger
}

var _ ports.ArticleProvider = (*ContentClient)(nil)

// NewContentClient wires a resty client from provider settings. A zero
// timeout leaves outbound calls bounded only by the request context.
func NewContentClient(cfg config.ProviderConfig, log *slog.Logger) *ContentClient {
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", "ArticleTagger/1.0")

	return &ContentClient{
		http:     client,
		bodyPath: cfg.BodyPath,
		selector: strings.TrimSpace(cfg.Selector),
		logger:   log,
	}
}

// FetchArticleBody returns the raw response text for the article. The
// content type is ignored.
func (c *ContentClient) FetchArticleBody(ctx context.Context, id string) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", id).
		Get(c.bodyPath)
	if err != nil {
		return "", &domain.TransportError{Service: serviceName, Err: err}
	}

	if !resp.IsSuccess() {
		return "", &domain.UpstreamError{
			Service:    serviceName,
			StatusCode: resp.StatusCode(),
			StatusText: statusText(resp.StatusCode(), resp.Status()),
		}
	}

	body := string(resp.Body())
	c.debug("article body fetched", "id", id, "bytes", len(body), "status", resp.StatusCode())

	if c.selector == "" {
		return body, nil
	}
	return c.narrow(body)
}

// narrow keeps the inner HTML of the nodes matching the configured
// selector, or the whole body when nothing matches.
func (c *ContentClient) narrow(body string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse article document: %w", err)
	}

	matches := doc.Find(c.selector)
	if matches.Length() == 0 {
		c.debug("selector matched nothing", "selector", c.selector)
		return body, nil
	}

	var parts []string
	var htmlErr error
	matches.Each(func(_ int, sel *goquery.Selection) {
		inner, err := sel.Html()
		if err != nil {
			htmlErr = errors.Join(htmlErr, err)
			return
		}
		parts = append(parts, inner)
	})
	if htmlErr != nil {
		return "", fmt.Errorf("render selection %q: %w", c.selector, htmlErr)
	}

	return strings.Join(parts, "\n"), nil
}

// statusText extracts the reason phrase from a status line such as
// "404 Not Found", falling back to the standard text.
func statusText(code int, status string) string {
	text := strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(code)))
	if text == "" {
		return http.StatusText(code)
	}
	return text
}

func (c *ContentClient) debug(msg string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
