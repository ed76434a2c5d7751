package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/kataras/figma-importer/pkg/config"
	"github.com/kataras/figma-importer/pkg/logging"
	mcpserver "github.com/kataras/figma-importer/pkg/mcp"

	"github.com/spf13/cobra"
)

var logLevel string

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server on stdin/stdout",
		Long: `Start an MCP server exposing the convert_json and detect_dialect tools
over stdio. Logs go to stderr.`,
		RunE: runServe,
	}

	addConversionFlags(cmd)
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default: config file or info)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := newSlogLogger(cfg)
	if err != nil {
		return err
	}

	opts := importerOptions(cfg, logging.NewAdapter(logger))
	srv := mcpserver.NewServer(opts, logger)

	logger.Info("MCP server starting", "version", version, "default_font", cfg.Conversion.FontFamily())
	return srv.ServeStdio()
}

// newSlogLogger builds the structured logger of the long-running commands.
func newSlogLogger(cfg *config.Config) (*slog.Logger, error) {
	level := cfg.Logging.Level
	if logLevel != "" {
		level = logging.Level(logLevel)
		if !level.Valid() {
			return nil, fmt.Errorf("unknown log level %q", logLevel)
		}
	}
	if quiet {
		level = logging.LevelError
	}

	return logging.New(logging.Config{
		Level:  level,
		Format: cfg.Logging.Format,
		Output: os.Stderr,
	}), nil
}
