// Package tagging builds the tag-extraction prompt and validates the model's
// answer.
package tagging

import (
	"fmt"

	"ArticleTagger/internal/ports"
)

// SystemInstruction is sent ahead of every tagging prompt.
const SystemInstruction = "You are a professional content tagger. Always respond with valid JSON array of tag objects."

// MaxTags is the cap requested from the model. It is not enforced on the answer.
const MaxTags = 5

const promptTemplate = `Extract main tags for this article: %s
Standardize the tags according to these rules:
  Use lowercase.
  Use singular nouns.
  Expand abbreviations.
  Group synonyms under the most common term (e.g., 'AI' and 'Artificial Intelligence' should both be 'artificial intelligence')
  Return a maximum of %d tags
  Exclude general tags like 'technology' or 'business'.
  Output should be in JSON format as an array of objects, each containing:
  1. tag - name of the tag
  2. tagType - type of the tag
  3. description - short description about the tag non related to the article`

// BuildPrompt embeds the article text into the tagging instructions.
func BuildPrompt(text string) string {
	return fmt.Sprintf(promptTemplate, text, MaxTags)
}

// Messages returns the system and user messages for one tagging call.
func Messages(text string) []ports.ChatMessage {
	return []ports.ChatMessage{
		{Role: ports.RoleSystem, Content: SystemInstruction},
		{Role: ports.RoleUser, Content: BuildPrompt(text)},
	}
}
