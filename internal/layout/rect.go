// internal/layout/rect.go
package layout

// Rect is a rectangle in CSS pixel units.
type Rect struct {
	// StartX and StartY are the exact point where the rectangle begins.
	StartX float64
	StartY float64
	Width  float64
	Height float64
}

// ExpandedByEdges returns a rect grown outward by the given edges, moving
// one box level outward (content to padding, padding to border, border to
// margin).
func (r Rect) ExpandedByEdges(e EdgeSizes) Rect {
	return Rect{
		StartX: r.StartX - e.Left,
		StartY: r.StartY - e.Top,
		Width:  r.Width + e.Left + e.Right,
		Height: r.Height + e.Top + e.Bottom,
	}
}

// ExpandedByRect keeps this rect's origin and grows its width and height by
// the other rect's. Used to fold a child's size into a parent accumulator.
func (r Rect) ExpandedByRect(other Rect) Rect {
	return Rect{
		StartX: r.StartX,
		StartY: r.StartY,
		Width:  r.Width + other.Width,
		Height: r.Height + other.Height,
	}
}

// ScaledBy multiplies every field by k. Applied once at the end of a layout
// pass to map CSS pixels to device pixels.
func (r Rect) ScaledBy(k float64) Rect {
	return Rect{
		StartX: r.StartX * k,
		StartY: r.StartY * k,
		Width:  r.Width * k,
		Height: r.Height * k,
	}
}

// EdgeSizes is a collection of edge widths, e.g. borders, margins, padding.
type EdgeSizes struct {
	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

// ExpandedByEdges returns the component-wise sum of two edge sets.
func (e EdgeSizes) ExpandedByEdges(other EdgeSizes) EdgeSizes {
	return EdgeSizes{
		Left:   e.Left + other.Left,
		Right:  e.Right + other.Right,
		Top:    e.Top + other.Top,
		Bottom: e.Bottom + other.Bottom,
	}
}

// ScaledBy multiplies every edge by k.
func (e EdgeSizes) ScaledBy(k float64) EdgeSizes {
	return EdgeSizes{
		Left:   e.Left * k,
		Right:  e.Right * k,
		Top:    e.Top * k,
		Bottom: e.Bottom * k,
	}
}

// Dimensions is the full geometry of a layout box: the content rectangle
// plus the padding, border, and margin edges around it.
type Dimensions struct {
	// Content is positioned relative to the document origin.
	Content Rect
	Padding EdgeSizes
	Border  EdgeSizes
	Margin  EdgeSizes
}

// PaddingBox is the area covered by the content plus its padding.
func (d Dimensions) PaddingBox() Rect {
	return d.Content.ExpandedByEdges(d.Padding)
}

// BorderBox is the area covered by the content, padding, and borders.
func (d Dimensions) BorderBox() Rect {
	return d.PaddingBox().ExpandedByEdges(d.Border)
}

// MarginBox is the total area the box occupies, margins included.
func (d Dimensions) MarginBox() Rect {
	return d.BorderBox().ExpandedByEdges(d.Margin)
}

// ScaledBy multiplies all geometry by k.
func (d Dimensions) ScaledBy(k float64) Dimensions {
	return Dimensions{
		Content: d.Content.ScaledBy(k),
		Padding: d.Padding.ScaledBy(k),
		Border:  d.Border.ScaledBy(k),
		Margin:  d.Margin.ScaledBy(k),
	}
}
