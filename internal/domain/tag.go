package domain

import (
	"bytes"
	"encoding/json"
	"errors"
)

var errInvalidTagJSON = errors.New("tag: invalid JSON")

// Tag is a topic label produced by the completion model.
//
// Fields are read leniently: values that are not strings leave the field
// empty, and the element is re-encoded exactly as the model produced it.
type Tag struct {
	Tag         string
	TagType     string
	Description string

	raw json.RawMessage
}

// TagSet keeps the model's ordering; duplicates are not removed.
type TagSet []Tag

type tagFields struct {
	Tag         string `json:"tag"`
	TagType     string `json:"tagType"`
	Description string `json:"description"`
}

// NewTag builds a tag from typed fields.
func NewTag(tag, tagType, description string) Tag {
	return Tag{Tag: tag, TagType: tagType, Description: description}
}

// Raw returns the JSON the tag was decoded from, if any.
func (t Tag) Raw() json.RawMessage {
	return t.raw
}

// MarshalJSON emits the decoded element unchanged when the tag came from JSON.
func (t Tag) MarshalJSON() ([]byte, error) {
	if len(t.raw) > 0 {
		return t.raw, nil
	}
	return json.Marshal(tagFields{Tag: t.Tag, TagType: t.TagType, Description: t.Description})
}

// UnmarshalJSON accepts any JSON value.
func (t *Tag) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if !json.Valid(trimmed) {
		return errInvalidTagJSON
	}

	*t = Tag{raw: append(json.RawMessage(nil), trimmed...)}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil
	}
	t.Tag = stringField(fields["tag"])
	t.TagType = stringField(fields["tagType"])
	t.Description = stringField(fields["description"])
	return nil
}

func stringField(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}
