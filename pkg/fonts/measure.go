package fonts

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/kataras/figma-importer/pkg/scene"
)

// Measurer computes the intrinsic size of text content. A maxWidth above
// zero makes the content wrap at that width.
type Measurer interface {
	Measure(text string, t scene.Text, maxWidth float64) (width, height float64)
}

// Approximate measures text from average glyph proportions instead of real
// font metrics. It is deterministic, which keeps produced trees stable.
type Approximate struct {
	// CharWidth is the average glyph advance as a fraction of the font size.
	CharWidth float64
	// LineFactor is the line height as a fraction of the font size, used
	// when the text has no pixel line height.
	LineFactor float64
}

// DefaultMeasurer is the Measurer used when none is configured.
var DefaultMeasurer Measurer = Approximate{CharWidth: 0.55, LineFactor: 1.2}

// Measure implements Measurer.
func (a Approximate) Measure(text string, t scene.Text, maxWidth float64) (float64, float64) {
	size := t.FontSize
	if size <= 0 {
		size = 12
	}

	advance := size * a.CharWidth
	if t.FontName.Style == "Bold" {
		advance *= 1.05
	}

	lineHeight := size * a.LineFactor
	if t.LineHeight.Unit == scene.UnitPixels && t.LineHeight.Value > 0 {
		lineHeight = t.LineHeight.Value
	}

	var width float64
	lines := 0
	for _, paragraph := range strings.Split(text, "\n") {
		w := float64(utf8.RuneCountInString(paragraph)) * advance
		if maxWidth > 0 && w > maxWidth {
			lines += int(math.Ceil(w / maxWidth))
			w = maxWidth
		} else {
			lines++
		}
		width = math.Max(width, w)
	}

	return width, float64(lines) * lineHeight
}
