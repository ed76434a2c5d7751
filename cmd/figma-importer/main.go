package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	figmaimporter "github.com/kataras/figma-importer"
	"github.com/kataras/figma-importer/pkg/config"
	"github.com/kataras/figma-importer/pkg/fonts"
	"github.com/kataras/figma-importer/pkg/options"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const version = figmaimporter.Version

var (
	configFile         string
	outputPath         string
	outputFormat       string
	quiet              bool
	preserveColors     bool
	preserveTextStyles bool
	useAutoLayout      bool
	fontFamily         string
	fontFamilies       []string
	allowAnyFont       bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "figma-importer",
		Short:         "Convert JSON payloads into design scene trees",
		Long:          "A tool to convert markup-derived or design-tool-style JSON into a tree of frames, rectangles and text nodes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (default: nearest .figma-importer.yml)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only print errors")

	rootCmd.AddCommand(
		newConvertCmd(),
		newFetchCmd(),
		newServeCmd(),
		newWatchCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version number",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Printf("figma-importer version %s\n", version)
			},
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %s\n", figmaimporter.UserMessage(err))
		os.Exit(1)
	}
}

// addConversionFlags registers the flags overriding the conversion section
// of the config file.
func addConversionFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&preserveColors, "preserve-colors", true, "Apply background and text colors")
	cmd.Flags().BoolVar(&preserveTextStyles, "preserve-text-styles", true, "Apply font family, size, weight and line height")
	cmd.Flags().BoolVar(&useAutoLayout, "auto-layout", true, "Request auto layout (reported only)")
	cmd.Flags().StringVar(&fontFamily, "font-family", "", "Default font family (default Inter)")
	cmd.Flags().StringSliceVar(&fontFamilies, "font", nil, "Additional available font families")
	cmd.Flags().BoolVar(&allowAnyFont, "allow-any-font", false, "Treat every font family as available")
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file, or directory for multiple inputs (default: stdout)")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format: json, markdown")
}

// loadConfig reads the config file and applies the flags the user set on
// top of it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, path, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if path != "" && !quiet {
		color.New(color.FgCyan).Fprintf(os.Stderr, "Using config %s\n", path)
	}

	flags := cmd.Flags()
	if flags.Changed("preserve-colors") {
		cfg.Conversion.PreserveColors = options.Bool(preserveColors)
	}
	if flags.Changed("preserve-text-styles") {
		cfg.Conversion.PreserveTextStyles = options.Bool(preserveTextStyles)
	}
	if flags.Changed("auto-layout") {
		cfg.Conversion.UseAutoLayout = options.Bool(useAutoLayout)
	}
	if flags.Changed("font-family") {
		cfg.Conversion.DefaultFontFamily = fontFamily
	}
	if flags.Changed("font") {
		cfg.Fonts.Families = append(cfg.Fonts.Families, fontFamilies...)
	}
	if flags.Changed("allow-any-font") {
		cfg.Fonts.AllowAny = allowAnyFont
	}

	return cfg, nil
}

// importerOptions builds the conversion options of a command run.
func importerOptions(cfg *config.Config, logger figmaimporter.Logger) figmaimporter.Options {
	return figmaimporter.Options{
		Conversion: cfg.Conversion,
		Fonts:      fonts.NewRegistry(cfg.Registry()),
		Logger:     logger,
	}
}

func newCLILogger() figmaimporter.Logger {
	if quiet {
		return nil
	}
	return &cliLogger{}
}

// cliLogger implements figmaimporter.Logger with colored terminal output on
// stderr, leaving stdout to the converted output.
type cliLogger struct{}

func (l *cliLogger) Infof(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(os.Stderr, format+"\n", args...)
}

func (l *cliLogger) Warnf(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(os.Stderr, "⚠ "+format+"\n", args...)
}

func (l *cliLogger) Errorf(format string, args ...any) {
	color.New(color.FgRed).Fprintf(os.Stderr, "✗ "+format+"\n", args...)
}
