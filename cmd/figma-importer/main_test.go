package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	figmaimporter "github.com/kataras/figma-importer"
	"github.com/kataras/figma-importer/pkg/options"
)

func TestOutputName(t *testing.T) {
	defer func(f string) { outputFormat = f }(outputFormat)

	outputFormat = "json"
	assert.Equal(t, "page.figma.json", outputName("designs/page.json"))
	assert.Equal(t, "stdin.figma.json", outputName(""))

	outputFormat = "markdown"
	assert.Equal(t, "page.md", outputName("page.json"))
}

func TestValidateFormat(t *testing.T) {
	assert.NoError(t, validateFormat("json"))
	assert.NoError(t, validateFormat("markdown"))
	assert.Error(t, validateFormat("yaml"))
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".figma-importer.yml")
	require.NoError(t, os.WriteFile(path, []byte("conversion:\n  preserve_colors: false\n  default_font_family: Lato\n"), 0o644))

	defer func(c string, q bool) { configFile, quiet = c, q }(configFile, quiet)
	configFile, quiet = path, true

	cmd := newConvertCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--font-family", "Roboto", "--allow-any-font"}))

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)

	assert.False(t, cfg.Conversion.Colors(), "file value kept when the flag is not set")
	assert.True(t, cfg.Conversion.TextStyles())
	assert.Equal(t, "Roboto", cfg.Conversion.DefaultFontFamily)
	assert.True(t, cfg.Fonts.AllowAny)
}

func TestWriteResults(t *testing.T) {
	defer func(o, f string) { outputPath, outputFormat = o, f }(outputPath, outputFormat)
	defer func(q bool) { quiet = q }(quiet)
	quiet = true

	result, err := figmaimporter.Convert(t.Context(), []byte(`{"type": "div"}`), figmaimporter.DefaultOptions())
	require.NoError(t, err)
	result.Source = "page.json"

	dir := t.TempDir()
	outputPath, outputFormat = dir, "markdown"
	require.NoError(t, writeResults([]*figmaimporter.Result{result, result}, options.Default()))

	data, err := os.ReadFile(filepath.Join(dir, "page.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Import Report - page.json")

	single := filepath.Join(dir, "single.json")
	outputPath, outputFormat = single, "json"
	require.NoError(t, writeResults([]*figmaimporter.Result{result}, options.Default()))

	data, err = os.ReadFile(single)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "HTML to Figma"`)
}
