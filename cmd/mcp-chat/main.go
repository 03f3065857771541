package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"mcp-agent-go/internal/chat"
	"mcp-agent-go/internal/config"
	"mcp-agent-go/internal/mcpclient"
	"mcp-agent-go/internal/ollama"
)

func main() {
	// Configure logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		With().
		Timestamp().
		Logger()

	// Configuration
	cfg, err := config.LoadChat()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Fatal().Err(err).Str("log_level", cfg.LogLevel).Msg("Invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	flag.Parse()
	prompt := strings.Join(flag.Args(), " ")
	if prompt == "" {
		prompt = "What time is it right now?"
	}

	invoker := mcpclient.New(cfg.ServerURL, cfg.RequestTimeout, logger)
	gateway := ollama.New(cfg.OllamaURL, cfg.Model, cfg.RequestTimeout, logger)
	orchestrator := chat.NewOrchestrator(gateway, invoker, chat.Config{MaxTurns: cfg.MaxTurns}, logger)

	logger.Info().
		Str("model", cfg.Model).
		Str("server_url", cfg.ServerURL).
		Str("prompt", prompt).
		Msg("Starting conversation")

	result, err := orchestrator.Run(context.Background(), prompt)
	if err != nil {
		var chatErr *chat.Error
		if errors.As(err, &chatErr) {
			logger.Fatal().Str("code", chatErr.Code).Err(err).Msg("Conversation failed")
		}
		logger.Fatal().Err(err).Msg("Conversation failed")
	}

	logger.Info().
		Int("turns", result.Turns).
		Int("message_count", len(result.Messages)).
		Msg("Conversation complete")

	fmt.Println(result.Content)
}
