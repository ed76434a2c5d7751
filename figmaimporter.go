package figmaimporter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/kataras/figma-importer/pkg/design"
	"github.com/kataras/figma-importer/pkg/dialect"
	"github.com/kataras/figma-importer/pkg/fonts"
	"github.com/kataras/figma-importer/pkg/markup"
	"github.com/kataras/figma-importer/pkg/options"
	"github.com/kataras/figma-importer/pkg/scene"
)

// Version is the release of the importer.
const Version = "0.1.0"

// Options configures a conversion. The zero value converts with the default
// flags, fonts and measurer.
type Options struct {
	Conversion options.Conversion
	Fonts      fonts.Loader   // nil = a Registry with the default families
	Measurer   fonts.Measurer // nil = fonts.DefaultMeasurer
	Logger     Logger         // nil = no logging
}

// DefaultOptions returns Options with the default conversion flags.
func DefaultOptions() Options {
	return Options{Conversion: options.Default()}
}

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Result contains the conversion output.
type Result struct {
	Root    *scene.Node
	Dialect dialect.Dialect
	Stats   scene.Stats
	// Source names where the payload came from: a file path or a Figma
	// file name. Empty for in-memory payloads.
	Source string
}

func (o *Options) logInfo(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Infof(f, a...)
	}
}

func (o *Options) logWarn(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Warnf(f, a...)
	}
}

func (o *Options) logError(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Errorf(f, a...)
	}
}

func (o *Options) fonts() fonts.Loader {
	if o.Fonts != nil {
		return o.Fonts
	}
	return fonts.NewRegistry(fonts.RegistryConfig{})
}

// Convert builds a scene tree from a JSON payload in either dialect.
//
// An empty, null or non-object payload fails with ErrInvalidInput. A font
// that cannot be loaded fails with ErrResourceUnavailable. On failure no
// tree is returned.
func Convert(ctx context.Context, payload []byte, opts Options) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			opts.logError("conversion panic: %v\n%s", r, debug.Stack())
			result, err = nil, internal("conversion panicked", fmt.Errorf("%v", r))
		}
	}()

	payload = bytes.TrimSpace(payload)
	switch {
	case len(payload) == 0 || bytes.Equal(payload, []byte("null")):
		return nil, invalidInput("no JSON data provided", nil)
	case !json.Valid(payload):
		return nil, invalidInput("payload is not valid JSON", nil)
	case payload[0] != '{':
		return nil, invalidInput("payload must be a JSON object", nil)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}

	d := dialect.Detect(payload)
	opts.logInfo("Detected %s payload", d)

	var (
		root  *scene.Node
		stats scene.Stats
	)

	switch d {
	case dialect.Design:
		root, stats, err = convertDesign(ctx, payload, &opts)
	default:
		root, stats, err = convertMarkup(ctx, payload, &opts)
	}
	if err != nil {
		return nil, classify(err)
	}

	opts.logInfo("Created %d node(s), %d font load(s)", stats.Total(), stats.FontLoads)
	if stats.DroppedAttachments > 0 {
		opts.logWarn("%d node(s) not attached: parent cannot hold children", stats.DroppedAttachments)
	}

	return &Result{
		Root:    root,
		Dialect: d,
		Stats:   stats,
	}, nil
}

func convertMarkup(ctx context.Context, payload []byte, opts *Options) (*scene.Node, scene.Stats, error) {
	var root markup.Node
	if err := json.Unmarshal(payload, &root); err != nil {
		return nil, scene.Stats{}, invalidInput("decode markup payload", err)
	}

	b := &markup.Builder{
		Options:  opts.Conversion,
		Fonts:    opts.fonts(),
		Measurer: opts.Measurer,
	}
	return b.Build(ctx, &root)
}

func convertDesign(ctx context.Context, payload []byte, opts *Options) (*scene.Node, scene.Stats, error) {
	p, err := design.Decode(payload)
	if err != nil {
		return nil, scene.Stats{}, invalidInput("decode design payload", err)
	}

	b := &design.Builder{
		Options:  opts.Conversion,
		Fonts:    opts.fonts(),
		Measurer: opts.Measurer,
	}
	return b.Build(ctx, p)
}

// classify maps builder failures onto the error taxonomy. Context errors
// are returned wrapped but unclassified.
func classify(err error) error {
	var e *Error
	switch {
	case errors.As(err, &e):
		return err
	case errors.Is(err, fonts.ErrUnavailable):
		return resourceUnavailable("font unavailable", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("convert: %w", err)
	default:
		return internal("conversion failed", err)
	}
}
