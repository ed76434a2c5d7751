package figmaimporter

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// ConvertFile converts the JSON payload stored at path.
func ConvertFile(ctx context.Context, path string, opts Options) (*Result, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, invalidInput(fmt.Sprintf("read %s", path), err)
	}

	opts.logInfo("Converting %s...", path)
	result, err := Convert(ctx, payload, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	result.Source = path
	return result, nil
}

// ConvertFiles converts every file matching the given glob patterns ("**"
// matches any number of directories), in lexical order. It stops at the
// first failure and returns the results converted so far.
func ConvertFiles(ctx context.Context, patterns []string, opts Options) ([]*Result, error) {
	files, err := ExpandPatterns(patterns)
	if err != nil {
		return nil, err
	}

	opts.logInfo("Found %d file(s)", len(files))

	results := make([]*Result, 0, len(files))
	for _, file := range files {
		result, err := ConvertFile(ctx, file, opts)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}

	return results, nil
}

// ExpandPatterns resolves glob patterns to a sorted, deduplicated list of
// files. A pattern without glob characters names a file directly. A
// pattern that matches nothing is an error.
func ExpandPatterns(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, invalidInput("no input files given", nil)
	}

	seen := make(map[string]bool)
	var files []string

	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, invalidInput(fmt.Sprintf("invalid pattern: %s", pattern), nil)
		}

		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, invalidInput(fmt.Sprintf("expand pattern %s", pattern), err)
		}
		if len(matches) == 0 {
			return nil, invalidInput(fmt.Sprintf("no files match %s", pattern), nil)
		}

		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}
