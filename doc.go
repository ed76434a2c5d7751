// Package figmaimporter converts JSON descriptions of visual layouts into
// scene trees: typed frames, rectangles and text nodes with normalized
// geometry, fills and typography, ready for a design document.
//
// Two input dialects are understood and told apart automatically:
//
//   - markup-derived JSON, a DOM-like tree of tags with ids, classes,
//     computed styles and absolute sizes;
//   - design-tool-style JSON, nodes typed FRAME, RECTANGLE, TEXT and so on
//     with explicit geometry and paints, or a {"frames": [...]} document.
//
// The CLI lives in cmd/figma-importer; this root package exposes the same
// pipeline as a Go API.
//
// # Import
//
// The module path contains a hyphen but Go package names cannot, so the
// package is named figmaimporter:
//
//	import "github.com/kataras/figma-importer" // package figmaimporter
//
// # Quick start
//
//	result, err := figmaimporter.Convert(ctx, payload, figmaimporter.DefaultOptions())
//	if err != nil {
//	    log.Fatal(figmaimporter.UserMessage(err))
//	}
//	fmt.Println(formatter.ToMarkdown(result.Root, formatter.Summary{Stats: result.Stats}))
//
// # Errors
//
// Malformed attributes never fail a conversion: bad dimensions and colors
// fall back to defaults, unknown node types become frames and children of
// nodes that cannot hold children are dropped. Only a missing or non-object
// payload ([ErrInvalidInput]) and an unavailable font
// ([ErrResourceUnavailable]) fail, and a failed conversion returns no tree.
//
// # Logging
//
// Pass a [Logger] implementation in [Options.Logger] to receive progress
// messages. A nil Logger silences all output.
//
// # Figma files
//
// [Fetch] downloads a file through the Figma REST API, or only the nodes
// named in the URL or in [FetchOptions.NodeIDs], and converts its top-level
// frames.
//
// # Hosts
//
// The figma-importer command converts files and stdin (convert), Figma files
// (fetch) and watched files (watch, see package watcher). The serve command
// runs an MCP server over stdio exposing a convert_json tool (package mcp).
package figmaimporter
