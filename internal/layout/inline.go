// internal/layout/inline.go
package layout

import (
	"github.com/jbro885/kosmonaut/internal/style"
)

// InlineLevelContent is a participant of an inline formatting context:
// either an inline-level box or a run of text. Participants flow
// horizontally into line boxes rather than stacking vertically.
type InlineLevelContent interface {
	// Layout resolves the participant's geometry against a containing
	// block pinned at the current line cursor. Text runs reject direct
	// layout: the formatting context measures text itself.
	Layout(containingBlock Dimensions)
	// Dimensions exposes the participant's geometry to the line builder.
	Dimensions() *Dimensions
	// Node returns the closest non-anonymous styled node, the source of
	// font and alignment properties during line construction.
	Node() *style.StyledNode
	// DumpLayoutFormat is the label the layout dump prints for this
	// participant.
	DumpLayoutFormat() string

	translate(dx, dy float64)
}

// InlineLevelBox is an inline-level participant that is a true box and can
// therefore contain further content.
type InlineLevelBox interface {
	InlineLevelContent
	AddChild(child *LayoutBox)
	Children() []*LayoutBox
}

// BaseBox carries what every inline-level variant shares: the geometry and
// the styled node backing it. The geometry is a pointer into the layout
// box it views, so position writes made during line construction are
// visible through the tree.
type BaseBox struct {
	dims *Dimensions
	node *style.StyledNode
}

func newBaseBox(box *LayoutBox) BaseBox {
	return BaseBox{dims: &box.Dimensions, node: box.node}
}

func (bb BaseBox) Dimensions() *Dimensions { return bb.dims }
func (bb BaseBox) Node() *style.StyledNode { return bb.node }

// AnonymousInlineBox is the box generated around inline content that sits
// directly inside a block container. It has no element of its own; its
// styled node is the closest non-anonymous ancestor's.
type AnonymousInlineBox struct {
	BaseBox
	box *LayoutBox
}

// NewAnonymousInlineBox views an anonymous layout box as an inline
// formatting context participant.
func NewAnonymousInlineBox(box *LayoutBox) *AnonymousInlineBox {
	return &AnonymousInlineBox{BaseBox: newBaseBox(box), box: box}
}

func (a *AnonymousInlineBox) Layout(containingBlock Dimensions) { a.box.Layout(containingBlock) }
func (a *AnonymousInlineBox) AddChild(child *LayoutBox)         { a.box.AddChild(child) }
func (a *AnonymousInlineBox) Children() []*LayoutBox            { return a.box.Children }
func (a *AnonymousInlineBox) DumpLayoutFormat() string          { return "AnonymousInlineBox" }
func (a *AnonymousInlineBox) translate(dx, dy float64)          { a.box.Translate(dx, dy) }

// InlineBox is the box an inline-level element generates, a span for
// example.
type InlineBox struct {
	BaseBox
	box *LayoutBox
}

// NewInlineBox views an element-backed inline layout box as an inline
// formatting context participant.
func NewInlineBox(box *LayoutBox) *InlineBox {
	return &InlineBox{BaseBox: newBaseBox(box), box: box}
}

func (ib *InlineBox) Layout(containingBlock Dimensions) { ib.box.Layout(containingBlock) }
func (ib *InlineBox) AddChild(child *LayoutBox)         { ib.box.AddChild(child) }
func (ib *InlineBox) Children() []*LayoutBox            { return ib.box.Children }
func (ib *InlineBox) DumpLayoutFormat() string          { return ib.node.NodeName() + " InlineBox" }
func (ib *InlineBox) translate(dx, dy float64)          { ib.box.Translate(dx, dy) }

// TextRun is a contiguous run of character content. It is not a box: it has
// no children and cannot be laid out on its own.
type TextRun struct {
	BaseBox
	contents string
}

// NewTextRun views a text-backed layout box as an inline formatting context
// participant.
func NewTextRun(box *LayoutBox) *TextRun {
	return &TextRun{BaseBox: newBaseBox(box), contents: box.node.Text()}
}

// Contents returns the collapsed character data of the run.
func (tr *TextRun) Contents() string { return tr.contents }

// Layout panics: a text run is measured and placed by the line builder of
// its formatting context, never laid out directly.
func (tr *TextRun) Layout(Dimensions) {
	panic("layout: Layout called on a text run; text is measured by its formatting context")
}

func (tr *TextRun) DumpLayoutFormat() string { return tr.node.NodeName() + " TextRun" }
func (tr *TextRun) translate(dx, dy float64) {
	tr.dims.Content.StartX += dx
	tr.dims.Content.StartY += dy
}

// inlineContents views this box's children as inline formatting context
// participants.
func (b *LayoutBox) inlineContents() []InlineLevelContent {
	contents := make([]InlineLevelContent, 0, len(b.Children))
	for _, child := range b.Children {
		switch {
		case child.node != nil && child.node.IsText():
			contents = append(contents, NewTextRun(child))
		case child.IsAnonymous():
			contents = append(contents, NewAnonymousInlineBox(child))
		default:
			contents = append(contents, NewInlineBox(child))
		}
	}
	return contents
}

// LineBox is one horizontal line of an inline formatting context. Its rect
// spans the fragments placed on it; the baseline is the absolute y
// coordinate fragments align their text to.
type LineBox struct {
	Rect
	Fragments []InlineLevelContent
	Baseline  float64
}

// layoutInline lays out an inline-level or anonymous box: resolve the
// horizontal edges and available width, place the box, flow the children
// into line boxes, then take the content height from the stacked lines.
func (b *LayoutBox) layoutInline(containingBlock Dimensions) {
	b.calculateInlineWidth(containingBlock)
	b.calculateBlockPosition(containingBlock)
	b.layoutInlineChildren()
	b.calculateBlockHeight(containingBlock)
}

// calculateInlineWidth resolves horizontal edges and the available content
// width for line building. Anonymous boxes have no element, so every edge
// is zero and they span the containing block. Element-backed inline boxes
// resolve edges from style; auto width provisionally spans the remaining
// space and shrinks to the widest line after the lines are built.
func (b *LayoutBox) calculateInlineWidth(containingBlock Dimensions) {
	containingWidth := containingBlock.Content.Width
	d := &b.Dimensions

	if b.BoxType == Anonymous {
		d.Padding.Left, d.Padding.Right = 0, 0
		d.Border.Left, d.Border.Right = 0, 0
		d.Margin.Left, d.Margin.Right = 0, 0
		d.Content.Width = max(0, containingWidth)
		return
	}

	sn := b.node
	d.Padding.Left = sn.EdgePx("padding-left", containingWidth)
	d.Padding.Right = sn.EdgePx("padding-right", containingWidth)
	d.Border.Left = sn.EdgePx("border-left-width", containingWidth)
	d.Border.Right = sn.EdgePx("border-right-width", containingWidth)
	// Auto horizontal margins compute to zero on inline-level boxes.
	d.Margin.Left = sn.LengthOrAuto("margin-left", "0").ToPx(containingWidth)
	d.Margin.Right = sn.LengthOrAuto("margin-right", "0").ToPx(containingWidth)

	width := sn.LengthOrAuto("width", "auto")
	if width.IsAuto() {
		edges := d.Padding.Left + d.Padding.Right + d.Border.Left + d.Border.Right +
			d.Margin.Left + d.Margin.Right
		d.Content.Width = max(0, containingWidth-edges)
		return
	}
	d.Content.Width = max(0, width.ToPx(containingWidth))
}

// layoutInlineChildren builds the line boxes and derives the box's content
// dimensions from them: the height is the sum of the line heights, and an
// auto-width element box shrinks to fit its widest line.
func (b *LayoutBox) layoutInlineChildren() {
	lines := b.buildLineBoxes()

	var total, widest float64
	for _, line := range lines {
		total += line.Height
		widest = max(widest, line.Width)
	}
	b.Dimensions.Content.Height = total

	if b.BoxType == Inline && b.node.LengthOrAuto("width", "auto").IsAuto() {
		b.Dimensions.Content.Width = widest
	}
}

// buildLineBoxes flows this box's children into line boxes, greedily
// filling each line and breaking to a new one when a fragment would
// overflow the available width. A fragment wider than the whole line is
// placed alone and overflows; fragments never split mid-run.
func (b *LayoutBox) buildLineBoxes() []*LineBox {
	avail := b.Dimensions.Content.Width
	originX := b.Dimensions.Content.StartX
	cursorY := b.Dimensions.Content.StartY

	var lines []*LineBox
	line := &LineBox{Rect: Rect{StartX: originX, StartY: cursorY}}

	for _, content := range b.inlineContents() {
		b.placeFragment(content, line)
		fragWidth := content.Dimensions().MarginBox().Width

		if len(line.Fragments) > 0 && line.Width+fragWidth > avail {
			b.finishLine(line)
			lines = append(lines, line)
			cursorY += line.Height
			line = &LineBox{Rect: Rect{StartX: originX, StartY: cursorY}}
			// The fragment's geometry was resolved against the old
			// cursor; redo it on the fresh line. A shrink-to-fit box can
			// resolve wider with the full line available, so its width
			// must be re-read too.
			b.placeFragment(content, line)
			fragWidth = content.Dimensions().MarginBox().Width
		}

		line.Fragments = append(line.Fragments, content)
		line.Width += fragWidth
	}

	if len(line.Fragments) > 0 {
		b.finishLine(line)
		lines = append(lines, line)
	}

	b.alignLines(lines)
	return lines
}

// placeFragment resolves a fragment's geometry at the line's current
// cursor. Boxes are laid out against a containing block pinned there; text
// runs are measured and positioned directly.
func (b *LayoutBox) placeFragment(content InlineLevelContent, line *LineBox) {
	cursorX := line.StartX + line.Width

	if tr, ok := content.(*TextRun); ok {
		w, h := style.MeasureText(tr.Node())
		d := tr.Dimensions()
		d.Content.Width = w
		d.Content.Height = h
		d.Content.StartX = cursorX
		d.Content.StartY = line.StartY
		return
	}

	cb := Dimensions{Content: Rect{
		StartX: cursorX,
		StartY: line.StartY,
		Width:  max(0, b.Dimensions.Content.Width-line.Width),
	}}
	content.Layout(cb)
}

// finishLine resolves the line's height and baseline from its fragments.
// The line grows to the tallest fragment, where a fragment's contribution
// is the larger of its border-box height and its node's line-height; the
// baseline sits at the deepest font ascent.
func (b *LayoutBox) finishLine(line *LineBox) {
	var maxHeight, maxAscent float64
	for _, frag := range line.Fragments {
		sn := frag.Node()
		boxHeight := frag.Dimensions().BorderBox().Height
		maxHeight = max(maxHeight, boxHeight, sn.LineHeight())
		maxAscent = max(maxAscent, sn.FontAscent())
	}
	line.Height = maxHeight
	line.Baseline = line.StartY + maxAscent
}

// alignLines applies vertical-align to every fragment once line geometry is
// final. Fragments were provisionally placed at the line top; alignment
// shifts each one, subtree included, to its resting position.
func (b *LayoutBox) alignLines(lines []*LineBox) {
	for _, line := range lines {
		for _, frag := range line.Fragments {
			mb := frag.Dimensions().MarginBox()

			var dy float64
			switch frag.Node().Lookup("vertical-align", "baseline") {
			case "top":
				dy = line.StartY - mb.StartY
			case "bottom":
				dy = (line.StartY + line.Height) - (mb.StartY + mb.Height)
			case "middle":
				dy = (line.StartY + line.Height/2) - (mb.StartY + mb.Height/2)
			default:
				// Baseline: the fragment's own baseline is approximated
				// by its font ascent, for boxes as well as text, so
				// same-font content lines up exactly.
				dy = (line.Baseline - frag.Node().FontAscent()) - frag.Dimensions().Content.StartY
			}
			if dy != 0 {
				frag.translate(0, dy)
			}
		}
	}
}
