package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	figmaimporter "github.com/kataras/figma-importer"
	"github.com/kataras/figma-importer/pkg/logging"
	"github.com/kataras/figma-importer/pkg/options"
	"github.com/kataras/figma-importer/pkg/watcher"

	"github.com/spf13/cobra"
)

var debounce time.Duration

var outputPatterns = []string{"*.figma.json", "*.md"}

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <file or glob...>",
		Short: "Convert payload files and convert them again whenever they change",
		Args:  cobra.MinimumNArgs(1),
		Long: `Convert the files matching the given files or glob patterns, then watch
them and convert each file again after it changes. With --output the results
are written into that directory, one file per source. Stops on interrupt.`,
		RunE: runWatch,
	}

	addConversionFlags(cmd)
	addOutputFlags(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", 0, "Quiet period after a change before converting (default: config file or 200ms)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default: config file or info)")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := validateFormat(outputFormat); err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("debounce") {
		cfg.Watch.Debounce = debounce
	}

	logger, err := newSlogLogger(cfg)
	if err != nil {
		return err
	}

	handler := func(path string, result *figmaimporter.Result, err error) {
		if err != nil {
			logger.Error("Conversion failed", "file", path, "error", figmaimporter.UserMessage(err))
			return
		}

		if err := writeWatchResult(result, cfg.Conversion); err != nil {
			logger.Error("Write failed", "file", path, "error", err)
			return
		}
		logger.Info("Converted", "file", path, "dialect", result.Dialect.String(), "nodes", result.Stats.Total())
	}

	w, err := watcher.New(args, handler, watcher.Options{
		Debounce:       cfg.Watch.Debounce,
		Convert:        importerOptions(cfg, logging.NewAdapter(logger)),
		IgnorePatterns: outputPatterns, // outputs may land next to their sources
	}, logger)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Stop()

	<-ctx.Done()
	return nil
}

// writeWatchResult writes a conversion to stdout, or into the output
// directory named after its source.
func writeWatchResult(result *figmaimporter.Result, conv options.Conversion) error {
	data, err := render(result, conv)
	if err != nil {
		return err
	}

	if outputPath == "" {
		_, err = os.Stdout.Write(data)
		return err
	}

	if err := os.MkdirAll(outputPath, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return os.WriteFile(filepath.Join(outputPath, outputName(result.Source)), data, 0644)
}
