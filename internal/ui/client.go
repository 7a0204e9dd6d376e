package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"ArticleTagger/internal/domain"
)

// ErrInvalidTagsFormat is returned when the server's tags field is not an array.
var ErrInvalidTagsFormat = errors.New("invalid tags format")

// StatusError reports a non-2xx answer from the server.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Error: %d", e.StatusCode)
}

// Client calls the article HTTP API.
type Client struct {
	http *resty.Client
}

var _ API = (*Client)(nil)

// NewClient points a client at the server base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimSuffix(baseURL, "/")).
			SetHeader("Accept", "application/json"),
	}
}

// FetchArticle returns the sanitized body for id.
func (c *Client) FetchArticle(ctx context.Context, id string) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("id", id).
		Get("/api/fetch-article")
	if err != nil {
		return "", err
	}
	if !resp.IsSuccess() {
		return "", &StatusError{StatusCode: resp.StatusCode()}
	}

	var out struct {
		Body string `json:"body"`
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", fmt.Errorf("decode article: %w", err)
	}
	return out.Body, nil
}

// GenerateTags asks the server to tag text.
func (c *Client) GenerateTags(ctx context.Context, text string) (domain.TagSet, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"text": text}).
		Post("/api/generate-tags")
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, &StatusError{StatusCode: resp.StatusCode()}
	}

	var out struct {
		Tags json.RawMessage `json:"tags"`
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}

	raw := bytes.TrimSpace(out.Tags)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, ErrInvalidTagsFormat
	}

	var tags domain.TagSet
	if err := json.Unmarshal(raw, &tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	return tags, nil
}
