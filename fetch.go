package figmaimporter

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/kataras/figma-importer/pkg/design"
	"github.com/kataras/figma-importer/pkg/figma"
)

// FetchOptions selects the Figma file to import.
type FetchOptions struct {
	AccessToken string
	FileURL     string   // Figma file URL
	NodeIDs     []string // empty = node IDs from the URL, or the entire file
	BaseURL     string   // empty = the public Figma API
}

// Fetch downloads a Figma file, or specific nodes of it, through the REST
// API, adapts its top-level nodes into a design document and converts it.
func Fetch(ctx context.Context, fo FetchOptions, opts Options) (*Result, error) {
	if fo.AccessToken == "" {
		return nil, invalidInput("missing Figma access token", nil)
	}

	opts.logInfo("Extracting file key from URL...")
	fileKey, err := figma.ExtractFileKey(fo.FileURL)
	if err != nil {
		return nil, invalidInput("extract file key", err)
	}
	opts.logInfo("File key: %s", fileKey)

	// Extract node IDs from URL unless given explicitly.
	targetNodeIDs := fo.NodeIDs
	if len(targetNodeIDs) > 0 {
		opts.logInfo("Using %d explicit node ID(s)", len(targetNodeIDs))
	} else {
		targetNodeIDs, err = figma.ExtractNodeIDs(fo.FileURL)
		if err != nil {
			return nil, invalidInput("extract node IDs from URL", err)
		}
		if len(targetNodeIDs) > 0 {
			opts.logInfo("Found %d node(s) in URL", len(targetNodeIDs))
		}
	}

	var clientOpts []figma.Option
	if fo.BaseURL != "" {
		clientOpts = append(clientOpts, figma.WithBaseURL(fo.BaseURL))
	}
	client := figma.NewClient(fo.AccessToken, clientOpts...)

	var (
		doc      *design.Document
		fileName string
	)

	if len(targetNodeIDs) > 0 {
		opts.logInfo("Fetching %d node(s) from Figma...", len(targetNodeIDs))
		nodesResp, err := client.GetFileNodes(ctx, fileKey, targetNodeIDs)
		if err != nil {
			return nil, resourceUnavailable("fetch nodes", err)
		}
		fileName = nodesResp.Name

		doc, err = figma.DocumentFromNodes(nodesResp, targetNodeIDs)
		if err != nil {
			return nil, invalidInput("adapt nodes", err)
		}
	} else {
		opts.logInfo("Fetching file data from Figma...")
		fileResp, err := client.GetFile(ctx, fileKey)
		if err != nil {
			return nil, resourceUnavailable("fetch file", err)
		}
		fileName = fileResp.Name

		doc = figma.DocumentFromFile(fileResp)
	}
	opts.logInfo("File: %s, %d top-level node(s)", fileName, len(doc.Frames))

	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, internal("encode design document", err)
	}

	result, err := Convert(ctx, payload, opts)
	if err != nil {
		return nil, err
	}

	result.Source = fileName
	return result, nil
}

// ParseNodeIDs parses a comma-separated string of node IDs and returns a slice.
func ParseNodeIDs(nodeIDsStr string) []string {
	parts := strings.Split(nodeIDsStr, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

