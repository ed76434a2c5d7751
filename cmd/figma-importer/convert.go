package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	figmaimporter "github.com/kataras/figma-importer"
	"github.com/kataras/figma-importer/pkg/formatter"
	"github.com/kataras/figma-importer/pkg/options"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [file or glob...]",
		Short: "Convert JSON payload files, or stdin, into scene trees",
		Long: `Convert JSON payloads in either dialect. Arguments are files or glob
patterns ("designs/**/*.json"). Without arguments, or with "-", the payload
is read from stdin.`,
		RunE: runConvert,
	}

	addConversionFlags(cmd)
	addOutputFlags(cmd)

	return cmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	if err := validateFormat(outputFormat); err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := importerOptions(cfg, newCLILogger())
	ctx := cmd.Context()

	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		payload, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}

		result, err := figmaimporter.Convert(ctx, payload, opts)
		if err != nil {
			return err
		}
		return writeResults([]*figmaimporter.Result{result}, cfg.Conversion)
	}

	results, err := figmaimporter.ConvertFiles(ctx, args, opts)
	if writeErr := writeResults(results, cfg.Conversion); writeErr != nil {
		return writeErr
	}
	return err
}

func validateFormat(format string) error {
	switch format {
	case "json", "markdown":
		return nil
	default:
		return fmt.Errorf("unknown format %q, expected json or markdown", format)
	}
}

// render encodes a result in the selected output format.
func render(result *figmaimporter.Result, conv options.Conversion) ([]byte, error) {
	if outputFormat == "markdown" {
		return []byte(formatter.ToMarkdown(result.Root, formatter.Summary{
			Source:  result.Source,
			Dialect: result.Dialect.String(),
			Stats:   result.Stats,
			Options: &conv,
		})), nil
	}

	data, err := json.MarshalIndent(result.Root, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode scene tree: %w", err)
	}
	return append(data, '\n'), nil
}

// writeResults writes a single result to the output file or stdout. Several
// results go into the output directory, one file per source, or to stdout
// one after another.
func writeResults(results []*figmaimporter.Result, conv options.Conversion) error {
	if len(results) == 0 {
		return nil
	}

	green := color.New(color.FgGreen)

	if outputPath != "" && len(results) > 1 {
		if err := os.MkdirAll(outputPath, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	for _, result := range results {
		data, err := render(result, conv)
		if err != nil {
			return err
		}

		target := outputPath
		if target != "" && len(results) > 1 {
			target = filepath.Join(outputPath, outputName(result.Source))
		}

		if target == "" {
			if _, err := os.Stdout.Write(data); err != nil {
				return err
			}
			continue
		}

		if err := os.WriteFile(target, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", target, err)
		}
		if !quiet {
			green.Fprintf(os.Stderr, "💾 %s → %s (%d nodes)\n", sourceLabel(result), target, result.Stats.Total())
		}
	}

	return nil
}

// outputName derives the output file name of a source: "page.json"
// becomes "page.figma.json" or "page.md".
func outputName(source string) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	if base == "" || base == "." {
		base = "stdin"
	}
	if outputFormat == "markdown" {
		return base + ".md"
	}
	return base + ".figma.json"
}

func sourceLabel(result *figmaimporter.Result) string {
	if result.Source == "" {
		return "stdin"
	}
	return result.Source
}
