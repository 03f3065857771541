package main

import (
	"net/http"
	"os"

	"github.com/rs/zerolog"

	"mcp-agent-go/internal/config"
	"mcp-agent-go/internal/server"
)

func main() {
	// Configure logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		With().
		Timestamp().
		Logger()

	// Configuration
	cfg, err := config.LoadServer()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Fatal().Err(err).Str("log_level", cfg.LogLevel).Msg("Invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	// Create server
	handler, err := server.New(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create server")
	}

	// Start server
	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	logger.Info().Str("addr", cfg.Addr).Msg("Starting MCP registry server")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("Server failed")
	}
}
