// Package fonts provides the typography resources text nodes depend on: a
// Loader that must succeed before characters can be set, a Measurer for the
// intrinsic size of text content, and the weight-to-style rule.
package fonts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/kataras/figma-importer/pkg/scene"
)

// ErrUnavailable is returned by a Loader that cannot provide a font.
var ErrUnavailable = errors.New("font unavailable")

// Loader makes a font available before text using it is styled. Load blocks
// until the font is ready or fails.
type Loader interface {
	Load(ctx context.Context, font scene.FontName) error
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, font scene.FontName) error

// Load calls f(ctx, font).
func (f LoaderFunc) Load(ctx context.Context, font scene.FontName) error {
	return f(ctx, font)
}

// StyleForWeight maps a numeric font weight to a style name:
// 700 and above is Bold, 500 and above is Medium, anything else Regular.
func StyleForWeight(weight float64) string {
	switch {
	case weight >= 700:
		return "Bold"
	case weight >= 500:
		return "Medium"
	default:
		return "Regular"
	}
}

// WeightFromCSS reads a CSS font-weight value ("bold", "600").
// Unknown values return 400.
func WeightFromCSS(s string) float64 {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bold", "bolder":
		return 700
	case "normal", "lighter", "":
		return 400
	}

	var w float64
	if _, err := fmt.Sscanf(s, "%g", &w); err != nil {
		return 400
	}
	return w
}

// DefaultFamilies are the font families a Registry knows without configuration.
var DefaultFamilies = []string{
	"Inter",
	"Roboto",
	"Arial",
	"Helvetica",
	"Open Sans",
	"Lato",
	"Montserrat",
	"Poppins",
	"Source Sans Pro",
	"Georgia",
	"Times New Roman",
	"Courier New",
}

// RegistryConfig configures a Registry.
type RegistryConfig struct {
	// Families available in addition to DefaultFamilies.
	Families []string
	// AllowAny accepts every family, known or not.
	AllowAny bool
	// CacheSize bounds the number of loaded fonts remembered, default 256.
	CacheSize int
}

// Registry is a Loader backed by a fixed set of available families. Loaded
// fonts are remembered in an LRU cache, so a font is resolved once per
// registry rather than once per text node.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu       sync.Mutex
	families map[string]bool
	allowAny bool
	loaded   *lru.Cache[scene.FontName, struct{}]
	loads    int
}

// NewRegistry returns a Registry for the given configuration.
func NewRegistry(cfg RegistryConfig) *Registry {
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 256
	}

	cache, err := lru.New[scene.FontName, struct{}](cfg.CacheSize)
	if err != nil {
		// Only returned for a non-positive size, ruled out above.
		panic(fmt.Sprintf("fonts: create cache: %v", err))
	}

	families := make(map[string]bool, len(DefaultFamilies)+len(cfg.Families))
	for _, f := range DefaultFamilies {
		families[strings.ToLower(f)] = true
	}
	for _, f := range cfg.Families {
		families[strings.ToLower(strings.TrimSpace(f))] = true
	}

	return &Registry{
		families: families,
		allowAny: cfg.AllowAny,
		loaded:   cache,
	}
}

// Load implements Loader.
func (r *Registry) Load(ctx context.Context, font scene.FontName) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("load font %s: %w", font, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loaded.Contains(font) {
		return nil
	}

	if font.Family == "" || (!r.allowAny && !r.families[strings.ToLower(font.Family)]) {
		return fmt.Errorf("%w: %q", ErrUnavailable, font.String())
	}

	r.loaded.Add(font, struct{}{})
	r.loads++
	return nil
}

// Loads returns how many distinct font resolutions the registry performed.
func (r *Registry) Loads() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loads
}
