// Package options defines the conversion flags shared by both builders.
package options

import "encoding/json"

// DefaultFontFamily is used for text when no family is configured.
const DefaultFontFamily = "Inter"

// Conversion holds the flags controlling how attributes are applied. The
// zero value is usable: an unset PreserveColors, PreserveTextStyles or
// UseAutoLayout means true, read them through Colors, TextStyles and
// AutoLayout.
//
// UseAutoLayout, FlattenDivs and ExtractComponents are carried through and
// reported but do not change the produced tree yet.
type Conversion struct {
	PreserveColors     *bool  `json:"preserveColors,omitempty" yaml:"preserve_colors"`
	PreserveTextStyles *bool  `json:"preserveTextStyles,omitempty" yaml:"preserve_text_styles"`
	UseAutoLayout      *bool  `json:"useAutoLayout,omitempty" yaml:"use_auto_layout"`
	FlattenDivs        bool   `json:"flattenDivs" yaml:"flatten_divs"`
	ExtractComponents  bool   `json:"extractComponents" yaml:"extract_components"`
	DefaultFontFamily  string `json:"defaultFontFamily,omitempty" yaml:"default_font_family"`
}

// Default returns the options used when none are given.
func Default() Conversion {
	return Conversion{
		PreserveColors:     Bool(true),
		PreserveTextStyles: Bool(true),
		UseAutoLayout:      Bool(true),
		DefaultFontFamily:  DefaultFontFamily,
	}
}

// Bool returns a pointer to v, for the optional flags.
func Bool(v bool) *bool {
	return &v
}

func enabled(v *bool) bool {
	return v == nil || *v
}

// Colors reports whether background and text colors are applied.
func (c Conversion) Colors() bool { return enabled(c.PreserveColors) }

// TextStyles reports whether font family, size, weight and line height are
// applied.
func (c Conversion) TextStyles() bool { return enabled(c.PreserveTextStyles) }

// AutoLayout reports whether auto layout is requested.
func (c Conversion) AutoLayout() bool { return enabled(c.UseAutoLayout) }

// FontFamily returns the configured default family or DefaultFontFamily.
func (c Conversion) FontFamily() string {
	if c.DefaultFontFamily == "" {
		return DefaultFontFamily
	}
	return c.DefaultFontFamily
}

// UnmarshalJSON decodes on top of Default so that fields missing from the
// document keep their default value.
func (c *Conversion) UnmarshalJSON(data []byte) error {
	type plain Conversion
	decoded := plain(Default())
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*c = Conversion(decoded)
	return nil
}

// UnmarshalYAML decodes on top of Default, see UnmarshalJSON.
func (c *Conversion) UnmarshalYAML(unmarshal func(any) error) error {
	type plain Conversion
	decoded := plain(Default())
	if err := unmarshal(&decoded); err != nil {
		return err
	}
	*c = Conversion(decoded)
	return nil
}
