package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Server contains the registry server configuration.
type Server struct {
	Addr     string `mapstructure:"addr"`
	LogLevel string `mapstructure:"log_level"`
}

// Chat contains the chat client configuration. Endpoint, model identifier,
// timeout, and turn limit are explicit values handed to constructors, never
// ambient state.
type Chat struct {
	ServerURL      string        `mapstructure:"server_url"`
	OllamaURL      string        `mapstructure:"ollama_url"`
	Model          string        `mapstructure:"model"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxTurns       int           `mapstructure:"max_turns"`
	LogLevel       string        `mapstructure:"log_level"`
}

// DefaultServer returns the default server configuration.
func DefaultServer() Server {
	return Server{
		Addr:     ":8001",
		LogLevel: "info",
	}
}

// DefaultChat returns the default chat client configuration.
func DefaultChat() Chat {
	return Chat{
		ServerURL:      "http://localhost:8001",
		OllamaURL:      "http://localhost:11434",
		Model:          "llama3.2",
		RequestTimeout: 30 * time.Second,
		MaxTurns:       8,
		LogLevel:       "info",
	}
}

// LoadServer loads the server configuration from MCP_* environment
// variables, falling back to defaults.
func LoadServer() (Server, error) {
	v := newViper()

	defaults := DefaultServer()
	v.SetDefault("addr", defaults.Addr)
	v.SetDefault("log_level", defaults.LogLevel)

	var cfg Server
	if err := v.Unmarshal(&cfg); err != nil {
		return Server{}, fmt.Errorf("could not load server config: %w", err)
	}
	return cfg, nil
}

// LoadChat loads the chat client configuration from MCP_* environment
// variables, falling back to defaults.
func LoadChat() (Chat, error) {
	v := newViper()

	defaults := DefaultChat()
	v.SetDefault("server_url", defaults.ServerURL)
	v.SetDefault("ollama_url", defaults.OllamaURL)
	v.SetDefault("model", defaults.Model)
	v.SetDefault("request_timeout", defaults.RequestTimeout)
	v.SetDefault("max_turns", defaults.MaxTurns)
	v.SetDefault("log_level", defaults.LogLevel)

	var cfg Chat
	if err := v.Unmarshal(&cfg); err != nil {
		return Chat{}, fmt.Errorf("could not load chat config: %w", err)
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("MCP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}
