// internal/layout/dump.go
package layout

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DumpLayout writes a human-readable snapshot of a laid-out tree, one box
// per line, children indented two spaces per depth:
//
//	BODY Block at (8, 8) size 784x36
//	  DIV Block at (8, 8) size 784x18
//	    TEXT TextRun at (8, 11.6) size 46.08x12.8
//
// Verbose mode appends the margin, border and padding edges of each box in
// top/right/bottom/left order.
func DumpLayout(w io.Writer, tree *LayoutBox, verbose bool) error {
	return dumpLayoutBox(w, tree, 0, verbose)
}

func dumpLayoutBox(w io.Writer, b *LayoutBox, depth int, verbose bool) error {
	d := b.Dimensions
	line := fmt.Sprintf("%s%s at (%s, %s) size %sx%s",
		strings.Repeat("  ", depth),
		b.dumpLabel(),
		fmtPx(d.Content.StartX), fmtPx(d.Content.StartY),
		fmtPx(d.Content.Width), fmtPx(d.Content.Height))
	if verbose {
		line += fmt.Sprintf(" | margin %s border %s padding %s",
			fmtEdges(d.Margin), fmtEdges(d.Border), fmtEdges(d.Padding))
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}
	for _, child := range b.Children {
		if err := dumpLayoutBox(w, child, depth+1, verbose); err != nil {
			return err
		}
	}
	return nil
}

func (b *LayoutBox) dumpLabel() string {
	switch {
	case b.IsAnonymous():
		return "AnonymousBox"
	case b.node.IsText():
		return b.node.NodeName() + " TextRun"
	default:
		return b.node.NodeName() + " " + b.BoxType.String()
	}
}

// fmtPx renders a pixel value with up to two decimal places and no
// trailing zeros, so 784 prints as "784" and 11.60 as "11.6".
func fmtPx(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}

func fmtEdges(e EdgeSizes) string {
	return fmt.Sprintf("[%s %s %s %s]", fmtPx(e.Top), fmtPx(e.Right), fmtPx(e.Bottom), fmtPx(e.Left))
}

type dumpNode struct {
	Box      string     `json:"box"`
	X        float64    `json:"x"`
	Y        float64    `json:"y"`
	Width    float64    `json:"width"`
	Height   float64    `json:"height"`
	Margin   *EdgeSizes `json:"margin,omitempty"`
	Border   *EdgeSizes `json:"border,omitempty"`
	Padding  *EdgeSizes `json:"padding,omitempty"`
	Children []dumpNode `json:"children,omitempty"`
}

// DumpLayoutJSON writes the same snapshot as DumpLayout as an indented JSON
// document, for machine consumption. Verbose mode includes the edge sizes.
func DumpLayoutJSON(w io.Writer, tree *LayoutBox, verbose bool) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(buildDumpNode(tree, verbose))
}

func buildDumpNode(b *LayoutBox, verbose bool) dumpNode {
	d := b.Dimensions
	node := dumpNode{
		Box:    b.dumpLabel(),
		X:      d.Content.StartX,
		Y:      d.Content.StartY,
		Width:  d.Content.Width,
		Height: d.Content.Height,
	}
	if verbose {
		m, bo, p := d.Margin, d.Border, d.Padding
		node.Margin, node.Border, node.Padding = &m, &bo, &p
	}
	for _, child := range b.Children {
		node.Children = append(node.Children, buildDumpNode(child, verbose))
	}
	return node
}
