package mcp

import "github.com/mark3labs/mcp-go/mcp"

func convertJSONTool() mcp.Tool {
	return mcp.NewTool(
		"convert_json",
		mcp.WithDescription("Convert a markup-derived or design-tool-style JSON payload into a design scene tree"),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("json",
			mcp.Required(),
			mcp.Description("The JSON payload, a single object in either dialect"),
		),
		mcp.WithString("format",
			mcp.Description("Result format: json (scene tree and summary, default) or markdown (import report)"),
			mcp.Enum("json", "markdown"),
		),
		mcp.WithBoolean("preserve_colors",
			mcp.Description("Apply background and text colors (default true)"),
		),
		mcp.WithBoolean("preserve_text_styles",
			mcp.Description("Apply font family, size, weight and line height (default true)"),
		),
		mcp.WithBoolean("use_auto_layout",
			mcp.Description("Reserved layout flag, reported only"),
		),
		mcp.WithBoolean("flatten_divs",
			mcp.Description("Reserved layout flag, reported only"),
		),
		mcp.WithBoolean("extract_components",
			mcp.Description("Reserved layout flag, reported only"),
		),
		mcp.WithString("default_font_family",
			mcp.Description("Font family used when a text node names none (default Inter)"),
		),
	)
}

func detectDialectTool() mcp.Tool {
	return mcp.NewTool(
		"detect_dialect",
		mcp.WithDescription("Report whether a JSON payload is markup-derived or design-tool-style"),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("json",
			mcp.Required(),
			mcp.Description("The JSON payload"),
		),
	)
}
