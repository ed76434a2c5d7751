// Package formatter renders produced scene trees as human-readable reports.
package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"
	md "github.com/nao1215/markdown"

	"github.com/kataras/figma-importer/pkg/options"
	"github.com/kataras/figma-importer/pkg/scene"
)

// Summary describes the conversion a tree came from.
type Summary struct {
	Source  string // file path or Figma file name, may be empty
	Dialect string
	Stats   scene.Stats
	Options *options.Conversion // nil = not reported
}

// ToMarkdown renders a report of the tree rooted at root: a summary, the
// color and typography palette, the layer outline and the placeholders
// standing in for images and form inputs.
func ToMarkdown(root *scene.Node, s Summary) string {
	var sb strings.Builder

	title := s.Source
	if title == "" && root != nil {
		title = root.Name
	}
	sb.WriteString(fmt.Sprintf("# Import Report - %s\n\n", title))

	writeSummary(&sb, s)

	if root == nil {
		return sb.String()
	}

	writeColors(&sb, root)
	writeTypography(&sb, root)

	sb.WriteString("## Layers\n\n")
	root.Walk(func(n *scene.Node, depth int) bool {
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString("- ")
		sb.WriteString(describe(n))
		sb.WriteString("\n")
		return true
	})
	sb.WriteString("\n")

	writePlaceholders(&sb, root)

	return sb.String()
}

func writeSummary(sb *strings.Builder, s Summary) {
	sb.WriteString("## Summary\n\n")
	if s.Dialect != "" {
		sb.WriteString(fmt.Sprintf("- **Dialect**: %s\n", s.Dialect))
	}
	sb.WriteString(fmt.Sprintf("- **Nodes**: %d\n", s.Stats.Total()))

	kinds := make([]string, 0, len(s.Stats.Nodes))
	for kind := range s.Stats.Nodes {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		sb.WriteString(fmt.Sprintf("  - %s: %d\n", kind, s.Stats.Nodes[scene.Kind(kind)]))
	}

	if s.Stats.DroppedAttachments > 0 {
		sb.WriteString(fmt.Sprintf("- **Dropped attachments**: %d\n", s.Stats.DroppedAttachments))
	}
	sb.WriteString(fmt.Sprintf("- **Font loads**: %d\n", s.Stats.FontLoads))

	if o := s.Options; o != nil {
		sb.WriteString("\n| Option | Value |\n")
		sb.WriteString("|--------|-------|\n")
		sb.WriteString(fmt.Sprintf("| preserveColors | %t |\n", o.Colors()))
		sb.WriteString(fmt.Sprintf("| preserveTextStyles | %t |\n", o.TextStyles()))
		sb.WriteString(fmt.Sprintf("| useAutoLayout | %t |\n", o.AutoLayout()))
		sb.WriteString(fmt.Sprintf("| flattenDivs | %t |\n", o.FlattenDivs))
		sb.WriteString(fmt.Sprintf("| extractComponents | %t |\n", o.ExtractComponents))
		sb.WriteString(fmt.Sprintf("| defaultFontFamily | %s |\n", o.FontFamily()))
	}
	sb.WriteString("\n")
}

// writeColors lists every distinct solid fill color once, named after the
// first layer using it.
func writeColors(sb *strings.Builder, root *scene.Node) {
	seen := make(map[string]bool)
	var lines []string

	root.Walk(func(n *scene.Node, _ int) bool {
		for _, fill := range n.Fills {
			if fill.Color == nil || fill.ImageRef != "" {
				continue
			}
			hex := fill.Color.Hex()
			if seen[hex] {
				continue
			}
			seen[hex] = true

			name := toKebabCase(n.Name)
			if name == "" {
				name = strings.ToLower(string(n.Kind))
			}
			lines = append(lines, fmt.Sprintf("--color-%s: %s;", name, hex))
		}
		return true
	})

	if len(lines) == 0 {
		return
	}

	sb.WriteString("## Colors\n\n")
	sb.WriteString("```css\n")
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString("```\n\n")
}

func writeTypography(sb *strings.Builder, root *scene.Node) {
	seen := make(map[string]bool)
	var fonts []string

	root.Walk(func(n *scene.Node, _ int) bool {
		if n.Text == nil || n.Text.Characters == "" {
			return true
		}
		font := fmt.Sprintf("%s %gpx", n.Text.FontName, n.Text.FontSize)
		if !seen[font] {
			seen[font] = true
			fonts = append(fonts, font)
		}
		return true
	})

	if len(fonts) == 0 {
		return
	}

	sort.Strings(fonts)

	sb.WriteString("## Typography\n\n")
	for _, font := range fonts {
		sb.WriteString(fmt.Sprintf("- %s\n", font))
	}
	sb.WriteString("\n")
}

func describe(n *scene.Node) string {
	s := fmt.Sprintf("**%s** %s (%gx%g", n.Kind, n.Name, n.Width, n.Height)
	if n.X != 0 || n.Y != 0 {
		s += fmt.Sprintf(" at %g,%g", n.X, n.Y)
	}
	s += ")"

	if n.Text != nil && n.Text.Characters != "" {
		s += fmt.Sprintf(" %q", truncate(n.Text.Characters, 40))
	}
	return s
}

// writePlaceholders lists image placeholders (markup images and IMAGE
// paints) and form inputs.
func writePlaceholders(sb *strings.Builder, root *scene.Node) {
	var images, inputs [][]string

	root.Walk(func(n *scene.Node, _ int) bool {
		size := fmt.Sprintf("%gx%g", n.Width, n.Height)

		for _, fill := range n.Fills {
			if fill.ImageRef != "" {
				images = append(images, []string{n.Name, size, md.Code(fill.ImageRef)})
			}
		}
		if n.Kind == scene.KindRectangle && (n.Name == "img" || strings.HasPrefix(n.Name, "img (")) {
			images = append(images, []string{n.Name, size, "-"})
		}

		if strings.HasPrefix(n.Name, "input[") {
			placeholder := n.PluginData[scene.DataPlaceholder]
			if placeholder == "" {
				placeholder = "-"
			}
			inputs = append(inputs, []string{n.Name, size, placeholder})
		}
		return true
	})

	doc := md.NewMarkdown(sb)
	if len(images) > 0 {
		doc.H2("Image Placeholders").LF().
			CustomTable(md.TableSet{
				Header: []string{"Layer", "Size", "Reference"},
				Rows:   images,
			}, md.TableOptions{AutoWrapText: false}).LF()
	}
	if len(inputs) > 0 {
		doc.H2("Inputs").LF().
			CustomTable(md.TableSet{
				Header: []string{"Layer", "Size", "Placeholder"},
				Rows:   inputs,
			}, md.TableOptions{AutoWrapText: false}).LF()
	}
	// Writes to a strings.Builder do not fail.
	_ = doc.Build()
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}

// toKebabCase converts a layer name to a CSS variable suffix: kebab-case,
// with anything other than lowercase letters, digits and hyphens removed.
func toKebabCase(s string) string {
	s = strcase.ToKebab(s)

	var result strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			result.WriteRune(r)
		}
	}

	return strings.Trim(result.String(), "-")
}
