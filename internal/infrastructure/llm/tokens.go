package llm

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"ArticleTagger/internal/ports"
)

// TokenCounter counts prompt tokens with the model's BPE encoding.
type TokenCounter struct {
	encoding *tiktoken.Tiktoken
}

var _ ports.TokenCounter = (*TokenCounter)(nil)

// NewTokenCounter loads the encoding for model. The encoding tables are
// fetched on first use and cached by tiktoken-go.
func NewTokenCounter(model string) (*TokenCounter, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, fmt.Errorf("load encoding for %s: %w", model, err)
	}
	return &TokenCounter{encoding: enc}, nil
}

// CountTokens returns the number of tokens in text.
func (t *TokenCounter) CountTokens(text string) (int, error) {
	if t == nil || t.encoding == nil {
		return 0, fmt.Errorf("token counter is not initialised")
	}
	return len(t.encoding.Encode(text, nil, nil)), nil
}
