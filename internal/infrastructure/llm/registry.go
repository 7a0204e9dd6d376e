package llm

import (
	"fmt"
	"sort"
	"strings"

	"ArticleTagger/internal/config"
	"ArticleTagger/internal/ports"
)

// Factory builds a chat client from configuration.
type Factory func(cfg config.ChatGPTConfig) (ports.ChatClient, error)

// Registry keeps a mapping from driver names to client factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

// DefaultRegistry knows the "http" and "langchain" drivers.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	reg.Register("http", func(cfg config.ChatGPTConfig) (ports.ChatClient, error) {
		return NewChatGPTClient(cfg), nil
	})
	reg.Register("langchain", func(cfg config.ChatGPTConfig) (ports.ChatClient, error) {
		return NewLangChainClient(cfg)
	})
	return reg
}

// Register adds or replaces a driver.
func (r *Registry) Register(name string, factory Factory) {
	if r.factories == nil {
		r.factories = map[string]Factory{}
	}
	r.factories[normalize(name)] = factory
}

// Resolve builds the client for the named driver or returns an error if it
// is absent.
func (r *Registry) Resolve(name string, cfg config.ChatGPTConfig) (ports.ChatClient, error) {
	factory, ok := r.factories[normalize(name)]
	if !ok {
		return nil, fmt.Errorf("chat driver %q is not registered (known: %s)", name, strings.Join(r.Names(), ", "))
	}
	client, err := factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("build chat driver %q: %w", name, err)
	}
	return client, nil
}

// Names lists registered drivers in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
