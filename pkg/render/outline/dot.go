package outline

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/bloom/pkg/screen"
	"github.com/matzehuels/bloom/pkg/style"
)

// Options configures outline rendering.
type Options struct {
	// SelectedID is drawn with the selection outline. Empty means none.
	SelectedID string

	// Detailed adds the resolved style of each component to its label.
	Detailed bool

	// Direction is the Graphviz rankdir: "TB" (default) or "LR".
	Direction string
}

// SelectionColor is the outline color of the selected component.
const SelectionColor = "#4f46e5"

var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ToDOT converts a screen to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
func ToDOT(s *screen.Screen, opts Options) string {
	dir := opts.Direction
	if dir != "LR" {
		dir = "TB"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", dir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\", fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [arrowhead=none, color=\"#9ca3af\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("\n")

	name := s.Name
	if name == "" {
		name = s.ID
	}
	fmt.Fprintf(&buf, "  root [label=%q, shape=folder, fillcolor=\"#f8f9fa\"];\n", name)

	w := &dotWriter{buf: &buf, opts: opts}
	w.write(s.Components, "root")

	buf.WriteString("}\n")
	return buf.String()
}

type dotWriter struct {
	buf  *bytes.Buffer
	opts Options
	next int
}

func (w *dotWriter) write(forest []screen.Component, parent string) {
	for i := range forest {
		c := &forest[i]
		id := "n" + strconv.Itoa(w.next)
		w.next++

		fmt.Fprintf(w.buf, "  %s [%s];\n", id, strings.Join(w.attrs(c), ", "))
		fmt.Fprintf(w.buf, "  %s -> %s;\n", parent, id)
		w.write(c.Children, id)
	}
}

func (w *dotWriter) attrs(c *screen.Component) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(c, w.opts.Detailed))}
	if bg := c.Styles.BackgroundColor; hexColorRe.MatchString(bg) {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", bg))
		if isDark(bg) {
			attrs = append(attrs, "fontcolor=white")
		}
	}
	if w.opts.SelectedID != "" && c.ID == w.opts.SelectedID {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "penwidth=2", fmt.Sprintf("color=%q", SelectionColor))
	}
	return attrs
}

func fmtLabel(c *screen.Component, detailed bool) string {
	label := fmt.Sprintf("%s: %s", c.Type, c.DisplayLabel())
	if !detailed {
		return label
	}

	m := style.ResolveWith(c.Styles, style.Hints{}).Map()
	parts := []string{label, "#" + c.ID}
	for _, k := range screen.SortedKeys(m) {
		parts = append(parts, fmt.Sprintf("%s: %s", k, m[k]))
	}
	return strings.Join(parts, "\n")
}

// isDark reports whether a hex color needs light text on top of it.
func isDark(hex string) bool {
	h := strings.TrimPrefix(hex, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return false
	}
	r, g, b := float64(v>>16&0xff), float64(v>>8&0xff), float64(v&0xff)
	return 0.299*r+0.587*g+0.114*b < 128
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one
// whose viewBox starts at the origin, so the diagram scales in a browser.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(header))
}
