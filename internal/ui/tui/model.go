// Package tui is a terminal front-end for the article form controller.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"ArticleTagger/internal/ui"
)

type fetchDone ui.FetchResult

type tagsDone ui.TagResult

// Model is the bubbletea model wrapping a ui.Controller.
type Model struct {
	ctx        context.Context
	controller *ui.Controller
	input      textinput.Model
	keys       KeyMap
}

// New builds a model that talks to api.
func New(ctx context.Context, api ui.API) Model {
	if ctx == nil {
		ctx = context.Background()
	}

	in := textinput.New()
	in.Placeholder = "Enter Article ID"
	in.Prompt = "Article ID: "
	in.Focus()

	return Model{
		ctx:        ctx,
		controller: ui.NewController(api),
		input:      in,
		keys:       DefaultKeyMap(),
	}
}

// Controller exposes the underlying state machine.
func (m Model) Controller() *ui.Controller {
	return m.controller
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses and request completions.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			return m, m.fetchCmd(m.controller.SubmitArticle(m.input.Value()))
		case key.Matches(msg, m.keys.Tags):
			return m, m.tagsCmd(m.controller.GenerateTags())
		}

	case fetchDone:
		m.controller.CompleteFetch(ui.FetchResult(msg))
		return m, nil

	case tagsDone:
		m.controller.CompleteTags(ui.TagResult(msg))
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) fetchCmd(job ui.FetchJob) tea.Cmd {
	if job == nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		return fetchDone(job(ctx))
	}
}

func (m Model) tagsCmd(job ui.TagJob) tea.Cmd {
	if job == nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		return tagsDone(job(ctx))
	}
}

// View renders the form.
func (m Model) View() string {
	c := m.controller
	var b strings.Builder

	b.WriteString("Article Fetcher\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch c.State() {
	case ui.StateFetching:
		b.WriteString("Loading...\n\n")
	case ui.StateGeneratingTags:
		b.WriteString("Generating Tags...\n\n")
	}

	if msg := c.Message(); msg != "" {
		b.WriteString(msg)
		b.WriteString("\n\n")
	}

	if body := c.Body(); body != "" {
		b.WriteString("Article Content:\n")
		b.WriteString(body)
		b.WriteString("\n\n")
	}

	if tags := c.Tags(); len(tags) > 0 {
		b.WriteString("Generated Tags:\n")
		for _, t := range tags {
			fmt.Fprintf(&b, "  %s (%s): %s\n", t.Tag, t.TagType, t.Description)
		}
		b.WriteString("\n")
	}

	b.WriteString(m.keys.help())
	b.WriteString("\n")
	return b.String()
}
