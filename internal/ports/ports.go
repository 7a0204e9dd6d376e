package ports

import "context"

// ArticleProvider returns the raw body of a provider article.
type ArticleProvider interface {
	FetchArticleBody(ctx context.Context, id string) (string, error)
}

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	RoleSystem ChatRole = "system"
	RoleUser   ChatRole = "user"
)

// ChatMessage is one entry of a completion request.
type ChatMessage struct {
	Role    ChatRole
	Content string
}

// ChatClient sends a conversation to an LLM and returns the reply text.
type ChatClient interface {
	CompleteChat(ctx context.Context, messages []ChatMessage) (string, error)
}

// TokenCounter estimates prompt sizes for diagnostics.
type TokenCounter interface {
	CountTokens(text string) (int, error)
}
