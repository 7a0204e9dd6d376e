package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	configPathEnv    = "ARTICLE_TAGGER_CONFIG"
	listenAddrEnv    = "LISTEN_ADDR"
	logLevelEnv      = "LOG_LEVEL"
	contentAPIURLEnv = "CONTENT_API_URL"
	openAIAPIKeyEnv  = "OPENAI_API_KEY"
	openAIModelEnv   = "OPENAI_MODEL"
	openAIBaseURLEnv = "OPENAI_BASE_URL"
	llmDriverEnv     = "LLM_DRIVER"
	serverURLEnv     = "TAGGER_SERVER_URL"
)

// DefaultBodyPath is the provider route for an article body.
const DefaultBodyPath = "/content/article/{id}/body"

// Config holds high-level settings required across the application.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
	Provider ProviderConfig `yaml:"provider"`
	ChatGPT  ChatGPTConfig  `yaml:"chatgpt"`
	Client   ClientConfig   `yaml:"client"`
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// LoggingConfig selects slog level and output format (text or json).
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ProviderConfig points at the content API serving article bodies.
// Timeout zero means no client-side timeout.
type ProviderConfig struct {
	BaseURL  string        `yaml:"baseUrl"`
	BodyPath string        `yaml:"bodyPath"`
	Selector string        `yaml:"selector"`
	Timeout  time.Duration `yaml:"timeout"`
}

// ChatGPTConfig defines how to contact the chat completion API.
type ChatGPTConfig struct {
	Driver      string        `yaml:"driver"`
	Endpoint    string        `yaml:"endpoint"`
	BaseURL     string        `yaml:"baseUrl"`
	Model       string        `yaml:"model"`
	APIKey      string        `yaml:"apiKey"`
	Timeout     time.Duration `yaml:"timeout"`
	CountTokens bool          `yaml:"countTokens"`
}

// ClientConfig is used by the terminal client to reach the HTTP API.
type ClientConfig struct {
	ServerURL string `yaml:"serverUrl"`
}

// Load reads a .env file and YAML configuration (if present) and applies
// environment overrides. An empty path falls back to ARTICLE_TAGGER_CONFIG.
func Load(path string) Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: cannot load .env: %v", err)
	}

	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(listenAddrEnv); v != "" {
		c.Server.Addr = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(contentAPIURLEnv); v != "" {
		c.Provider.BaseURL = v
	}

	if v := os.Getenv(openAIAPIKeyEnv); v != "" {
		c.ChatGPT.APIKey = v
	}

	if v := os.Getenv(openAIModelEnv); v != "" {
		c.ChatGPT.Model = v
	}

	if v := os.Getenv(openAIBaseURLEnv); v != "" {
		c.ChatGPT.BaseURL = v
	}

	if v := os.Getenv(llmDriverEnv); v != "" {
		c.ChatGPT.Driver = v
	}

	if v := os.Getenv(serverURLEnv); v != "" {
		c.Client.ServerURL = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Server.Addr != "" {
		base.Server.Addr = override.Server.Addr
	}
	if override.Server.ShutdownTimeout != 0 {
		base.Server.ShutdownTimeout = override.Server.ShutdownTimeout
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	if override.Provider.BaseURL != "" {
		base.Provider.BaseURL = override.Provider.BaseURL
	}
	if override.Provider.BodyPath != "" {
		base.Provider.BodyPath = override.Provider.BodyPath
	}
	if override.Provider.Selector != "" {
		base.Provider.Selector = override.Provider.Selector
	}
	if override.Provider.Timeout != 0 {
		base.Provider.Timeout = override.Provider.Timeout
	}

	if override.ChatGPT.Driver != "" {
		base.ChatGPT.Driver = override.ChatGPT.Driver
	}
	if override.ChatGPT.Endpoint != "" {
		base.ChatGPT.Endpoint = override.ChatGPT.Endpoint
	}
	if override.ChatGPT.BaseURL != "" {
		base.ChatGPT.BaseURL = override.ChatGPT.BaseURL
	}
	if override.ChatGPT.Model != "" {
		base.ChatGPT.Model = override.ChatGPT.Model
	}
	if override.ChatGPT.APIKey != "" {
		base.ChatGPT.APIKey = override.ChatGPT.APIKey
	}
	if override.ChatGPT.Timeout != 0 {
		base.ChatGPT.Timeout = override.ChatGPT.Timeout
	}
	if override.ChatGPT.CountTokens {
		base.ChatGPT.CountTokens = true
	}

	if override.Client.ServerURL != "" {
		base.Client.ServerURL = override.Client.ServerURL
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Server:  ServerConfig{Addr: ":3000", ShutdownTimeout: 10 * time.Second},
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Provider: ProviderConfig{
			BaseURL:  "https://magazine-api.taboola.com",
			BodyPath: DefaultBodyPath,
		},
		ChatGPT: ChatGPTConfig{
			Driver:   "http",
			Endpoint: "https://api.openai.com/v1/chat/completions",
			BaseURL:  "https://api.openai.com/v1",
			Model:    "gpt-3.5-turbo",
		},
		Client: ClientConfig{ServerURL: "http://localhost:3000"},
	}
}
