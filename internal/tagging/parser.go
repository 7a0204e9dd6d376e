package tagging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"ArticleTagger/internal/domain"
)

var codeFence = regexp.MustCompile("```json\n?|```")

// StripCodeFences removes every markdown fence marker and trims the result.
func StripCodeFences(raw string) string {
	return strings.TrimSpace(codeFence.ReplaceAllString(raw, ""))
}

// ParseTags decodes a completion into tags. An array yields its elements in
// order; any other JSON value becomes a one-element set. Element contents are
// not validated.
func ParseTags(raw string) (domain.TagSet, error) {
	cleaned := []byte(StripCodeFences(raw))

	var value json.RawMessage
	if err := json.Unmarshal(cleaned, &value); err != nil {
		return nil, &domain.ParseError{Raw: raw, Err: err}
	}

	if len(value) > 0 && value[0] == '[' {
		var tags domain.TagSet
		if err := json.Unmarshal(value, &tags); err != nil {
			return nil, &domain.ParseError{Raw: raw, Err: err}
		}
		if tags == nil {
			tags = domain.TagSet{}
		}
		return tags, nil
	}

	var tag domain.Tag
	if err := json.Unmarshal(bytes.TrimSpace(value), &tag); err != nil {
		return nil, &domain.ParseError{Raw: raw, Err: fmt.Errorf("decode single tag: %w", err)}
	}
	return domain.TagSet{tag}, nil
}
