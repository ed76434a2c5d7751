package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	figmaimporter "github.com/kataras/figma-importer"
	"github.com/kataras/figma-importer/pkg/dialect"
	"github.com/kataras/figma-importer/pkg/formatter"
	"github.com/kataras/figma-importer/pkg/options"
	"github.com/kataras/figma-importer/pkg/scene"
)

// convertResponse is the JSON result of convert_json.
type convertResponse struct {
	Dialect string      `json:"dialect"`
	Summary string      `json:"summary"`
	Stats   scene.Stats `json:"stats"`
	Root    *scene.Node `json:"root"`
}

func (s *Server) handleConvertJSON(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	payload, _ := args["json"].(string)
	if strings.TrimSpace(payload) == "" {
		return mcp.NewToolResultError("no JSON data provided"), nil
	}

	format := "json"
	if v, ok := args["format"].(string); ok && v != "" {
		format = v
	}
	if format != "json" && format != "markdown" {
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q, expected json or markdown", format)), nil
	}

	opts := s.opts
	applyConversionArgs(&opts, args)

	result, err := figmaimporter.Convert(ctx, []byte(payload), opts)
	if err != nil {
		return mcp.NewToolResultError(figmaimporter.UserMessage(err)), nil
	}

	if format == "markdown" {
		return mcp.NewToolResultText(formatter.ToMarkdown(result.Root, formatter.Summary{
			Dialect: result.Dialect.String(),
			Stats:   result.Stats,
			Options: &opts.Conversion,
		})), nil
	}

	return mcp.NewToolResultJSON(convertResponse{
		Dialect: result.Dialect.String(),
		Summary: summarize(result),
		Stats:   result.Stats,
		Root:    result.Root,
	})
}

func (s *Server) handleDetectDialect(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	payload, _ := request.GetArguments()["json"].(string)
	if strings.TrimSpace(payload) == "" {
		return mcp.NewToolResultError("no JSON data provided"), nil
	}

	return mcp.NewToolResultJSON(map[string]string{
		"dialect": dialect.Detect([]byte(payload)).String(),
	})
}

// applyConversionArgs overrides the conversion flags present in args.
func applyConversionArgs(opts *figmaimporter.Options, args map[string]any) {
	optional := map[string]**bool{
		"preserve_colors":      &opts.Conversion.PreserveColors,
		"preserve_text_styles": &opts.Conversion.PreserveTextStyles,
		"use_auto_layout":      &opts.Conversion.UseAutoLayout,
	}
	for name, dst := range optional {
		if v, ok := args[name].(bool); ok {
			*dst = options.Bool(v)
		}
	}

	flags := map[string]*bool{
		"flatten_divs":       &opts.Conversion.FlattenDivs,
		"extract_components": &opts.Conversion.ExtractComponents,
	}
	for name, dst := range flags {
		if v, ok := args[name].(bool); ok {
			*dst = v
		}
	}

	if v, ok := args["default_font_family"].(string); ok && v != "" {
		opts.Conversion.DefaultFontFamily = v
	}
}

// summarize describes a conversion in one line, e.g.
// "markup: 4 nodes (FRAME 3, TEXT 1), 1 font load".
func summarize(r *figmaimporter.Result) string {
	kinds := make([]string, 0, len(r.Stats.Nodes))
	for kind, n := range r.Stats.Nodes {
		kinds = append(kinds, fmt.Sprintf("%s %d", kind, n))
	}
	sort.Strings(kinds)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s (%s), %s",
		r.Dialect, plural(r.Stats.Total(), "node"), strings.Join(kinds, ", "), plural(r.Stats.FontLoads, "font load"))
	if r.Stats.DroppedAttachments > 0 {
		fmt.Fprintf(&sb, ", %s not attached", plural(r.Stats.DroppedAttachments, "node"))
	}
	return sb.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
