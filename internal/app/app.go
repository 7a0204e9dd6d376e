package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gin-gonic/gin"

	"ArticleTagger/internal/config"
	"ArticleTagger/internal/infrastructure/llm"
	"ArticleTagger/internal/infrastructure/provider"
	"ArticleTagger/internal/logging"
	"ArticleTagger/internal/ports"
	"ArticleTagger/internal/transport/httpapi"
	"ArticleTagger/internal/ui"
	"ArticleTagger/internal/ui/tui"
	"ArticleTagger/internal/usecase"
)

const defaultShutdownTimeout = 10 * time.Second

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	pipeline *usecase.Pipeline
	server   *httpapi.Server
}

// New builds the server side of the application. Without an API key the
// tag endpoint answers with a generation failure.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	source := provider.NewContentClient(cfg.Provider, baseLogger.With("component", "provider"))

	var chatClient ports.ChatClient
	if cfg.ChatGPT.APIKey != "" {
		client, err := llm.DefaultRegistry().Resolve(cfg.ChatGPT.Driver, cfg.ChatGPT)
		if err != nil {
			return nil, err
		}
		chatClient = client
	} else {
		baseLogger.Warn("no OpenAI API key configured; tag generation is disabled")
	}

	var counter ports.TokenCounter
	if cfg.ChatGPT.CountTokens {
		tc, err := llm.NewTokenCounter(cfg.ChatGPT.Model)
		if err != nil {
			baseLogger.Warn("token counting disabled", "error", err)
		} else {
			counter = tc
		}
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Provider:     source,
		ChatClient:   chatClient,
		TokenCounter: counter,
		Logger:       baseLogger.With("component", "pipeline"),
	})

	return &Application{
		cfg:      cfg,
		logger:   baseLogger,
		pipeline: pipeline,
		server:   httpapi.NewServer(pipeline, baseLogger.With("component", "http")),
	}, nil
}

// Handler exposes the HTTP routes.
func (a *Application) Handler() http.Handler {
	return a.server.Handler()
}

// Serve listens until ctx is cancelled, then drains in-flight requests.
func (a *Application) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:    a.cfg.Server.Addr,
		Handler: a.server.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen %s: %w", srv.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	timeout := a.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	a.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// RunTUI starts the terminal client against the configured server.
func RunTUI(ctx context.Context, cfg config.Config) error {
	client := ui.NewClient(cfg.Client.ServerURL)
	program := tea.NewProgram(tui.New(ctx, client), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

func init() {
	gin.SetMode(gin.ReleaseMode)
}
