// Package ui holds the client-side form controller that drives the fetch
// and tag endpoints one after the other.
package ui

import (
	"context"
	"errors"
	"strings"

	"ArticleTagger/internal/domain"
)

// Messages surfaced to the user.
const (
	MsgEnterArticleID     = "Please enter an article ID"
	MsgNoArticleContent   = "No article content to analyze"
	MsgInvalidTagsFormat  = "Received invalid tags format from server"
	fetchFailurePrefix    = "Failed to fetch article: "
	generateFailurePrefix = "Failed to generate tags: "
)

// API is the server surface the controller calls.
type API interface {
	FetchArticle(ctx context.Context, id string) (string, error)
	GenerateTags(ctx context.Context, text string) (domain.TagSet, error)
}

// State is a controller state.
type State int

const (
	StateIdle State = iota
	StateFetching
	StateFetched
	StateFetchFailed
	StateGeneratingTags
	StateTagsReady
	StateTagsFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateFetched:
		return "fetched"
	case StateFetchFailed:
		return "fetch_failed"
	case StateGeneratingTags:
		return "generating_tags"
	case StateTagsReady:
		return "tags_ready"
	case StateTagsFailed:
		return "tags_failed"
	default:
		return "unknown"
	}
}

// FetchResult is the outcome of a fetch job.
type FetchResult struct {
	Body string
	Err  error
}

// TagResult is the outcome of a tag job.
type TagResult struct {
	Tags domain.TagSet
	Err  error
}

// FetchJob performs the network part of a fetch; run it off the event loop
// and hand the result to CompleteFetch.
type FetchJob func(ctx context.Context) FetchResult

// TagJob performs the network part of tag generation; hand the result to
// CompleteTags.
type TagJob func(ctx context.Context) TagResult

// Controller is the form state machine. It is not safe for concurrent use;
// callers deliver completions on the same loop that starts jobs.
type Controller struct {
	api   API
	state State
	body  string
	tags  domain.TagSet
	err   string
}

// NewController returns an idle controller.
func NewController(api API) *Controller {
	return &Controller{api: api, state: StateIdle}
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Body returns the fetched article text.
func (c *Controller) Body() string {
	return c.body
}

// Tags returns the generated tags.
func (c *Controller) Tags() domain.TagSet {
	return c.tags
}

// Message returns the user-facing error, if any.
func (c *Controller) Message() string {
	return c.err
}

// Busy reports whether a request is in flight.
func (c *Controller) Busy() bool {
	return c.state == StateFetching || c.state == StateGeneratingTags
}

// CanGenerateTags reports whether tag generation may start.
func (c *Controller) CanGenerateTags() bool {
	return c.body != "" && !c.Busy()
}

// SubmitArticle starts a fetch. A blank id only sets the validation message.
// The returned job is nil when nothing was started.
func (c *Controller) SubmitArticle(articleID string) FetchJob {
	if c.Busy() {
		return nil
	}
	if strings.TrimSpace(articleID) == "" {
		c.err = MsgEnterArticleID
		return nil
	}

	c.state = StateFetching
	c.err = ""
	c.body = ""
	c.tags = nil

	api := c.api
	return func(ctx context.Context) FetchResult {
		body, err := api.FetchArticle(ctx, articleID)
		return FetchResult{Body: body, Err: err}
	}
}

// CompleteFetch applies a fetch result. Results arriving outside the
// fetching state are dropped.
func (c *Controller) CompleteFetch(res FetchResult) {
	if c.state != StateFetching {
		return
	}
	if res.Err != nil {
		c.state = StateFetchFailed
		c.err = fetchFailurePrefix + res.Err.Error()
		return
	}
	c.state = StateFetched
	c.body = res.Body
}

// GenerateTags starts tag generation for the fetched body. The returned job
// is nil when nothing was started.
func (c *Controller) GenerateTags() TagJob {
	if c.Busy() {
		return nil
	}
	if c.body == "" {
		c.err = MsgNoArticleContent
		return nil
	}

	c.state = StateGeneratingTags
	c.err = ""

	api, text := c.api, c.body
	return func(ctx context.Context) TagResult {
		tags, err := api.GenerateTags(ctx, text)
		return TagResult{Tags: tags, Err: err}
	}
}

// CompleteTags applies a tag result. Results arriving outside the
// generating state are dropped.
func (c *Controller) CompleteTags(res TagResult) {
	if c.state != StateGeneratingTags {
		return
	}
	switch {
	case errors.Is(res.Err, ErrInvalidTagsFormat):
		c.state = StateTagsFailed
		c.err = MsgInvalidTagsFormat
	case res.Err != nil:
		c.state = StateTagsFailed
		c.err = generateFailurePrefix + res.Err.Error()
	default:
		c.state = StateTagsReady
		c.tags = res.Tags
	}
}

// Fetch runs a full fetch cycle synchronously.
func (c *Controller) Fetch(ctx context.Context, articleID string) {
	if job := c.SubmitArticle(articleID); job != nil {
		c.CompleteFetch(job(ctx))
	}
}

// Tag runs a full tag cycle synchronously.
func (c *Controller) Tag(ctx context.Context) {
	if job := c.GenerateTags(); job != nil {
		c.CompleteTags(job(ctx))
	}
}
