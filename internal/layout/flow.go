// internal/layout/flow.go
package layout

import "github.com/jbro885/kosmonaut/internal/style"

// Layout calculates used values for this box and any child boxes against
// the given containing block. A block's width depends on its containing
// block, while its height depends on its children, so width and position
// resolve top-down and height resolves bottom-up.
//
// A layout pass exclusively owns the tree it mutates: children are laid out
// strictly in document order because each child's vertical position and the
// parent's running height depend on every prior sibling.
func (b *LayoutBox) Layout(containingBlock Dimensions) {
	switch b.BoxType {
	case Block:
		b.layoutBlock(containingBlock)
	case Inline, Anonymous:
		b.layoutInline(containingBlock)
	}
}

func (b *LayoutBox) layoutBlock(containingBlock Dimensions) {
	// Child width can depend on parent width, so the box's own width must be
	// known before its children are laid out.
	b.calculateBlockWidth(containingBlock)
	b.calculateBlockPosition(containingBlock)
	b.layoutBlockChildren()
	// Parent height can depend on child height, so it resolves last.
	b.calculateBlockHeight(containingBlock)
}

// calculateBlockWidth resolves the width of a block-level non-replaced
// element in normal flow, per CSS2.1 §10.3.3. Sets the horizontal
// margin/padding/border dimensions and the content width.
//
// The 'direction' property is unsupported: over-constraint and negative
// underflow always adjust margin-right, the left-to-right rule.
func (b *LayoutBox) calculateBlockWidth(containingBlock Dimensions) {
	containingWidth := containingBlock.Content.Width
	sn := b.node

	width := sn.LengthOrAuto("width", "auto")
	marginLeft := sn.LengthOrAuto("margin-left", "0")
	marginRight := sn.LengthOrAuto("margin-right", "0")

	borderLeft := sn.EdgePx("border-left-width", containingWidth)
	borderRight := sn.EdgePx("border-right-width", containingWidth)
	paddingLeft := sn.EdgePx("padding-left", containingWidth)
	paddingRight := sn.EdgePx("padding-right", containingWidth)

	// Auto values contribute zero to the total.
	totalSize := width.ToPx(containingWidth) +
		marginLeft.ToPx(containingWidth) +
		marginRight.ToPx(containingWidth) +
		borderLeft + borderRight + paddingLeft + paddingRight

	// If width is not auto and the total is larger than the containing
	// block, auto margins are treated as zero for the rules below.
	if !width.IsAuto() && totalSize > containingWidth {
		if marginLeft.IsAuto() {
			marginLeft = style.Px(0)
		}
		if marginRight.IsAuto() {
			marginRight = style.Px(0)
		}
	}

	// Negative underflow means the box over-constrains its containing block.
	underflow := containingWidth - totalSize

	switch {
	case !width.IsAuto() && !marginLeft.IsAuto() && !marginRight.IsAuto():
		// Over-constrained: the specified margin-right gives way.
		marginRight = style.Px(marginRight.ToPx(containingWidth) + underflow)
	case !width.IsAuto() && marginLeft.IsAuto() && !marginRight.IsAuto():
		marginLeft = style.Px(underflow)
	case !width.IsAuto() && !marginLeft.IsAuto() && marginRight.IsAuto():
		marginRight = style.Px(underflow)
	case !width.IsAuto() && marginLeft.IsAuto() && marginRight.IsAuto():
		// Both margins auto: split the underflow evenly, centering the box.
		marginLeft = style.Px(underflow / 2)
		marginRight = style.Px(underflow / 2)
	default:
		// Width is auto: any other auto value becomes zero and the width
		// takes the remaining space.
		if marginLeft.IsAuto() {
			marginLeft = style.Px(0)
		}
		if marginRight.IsAuto() {
			marginRight = style.Px(0)
		}
		if underflow >= 0 {
			width = style.Px(underflow)
		} else {
			// Width cannot be negative; margin-right absorbs the deficit.
			width = style.Px(0)
			marginRight = style.Px(marginRight.ToPx(containingWidth) + underflow)
		}
	}

	d := &b.Dimensions
	d.Content.Width = max(0, width.ToPx(containingWidth))

	d.Padding.Left = paddingLeft
	d.Padding.Right = paddingRight

	d.Border.Left = borderLeft
	d.Border.Right = borderRight

	d.Margin.Left = marginLeft.ToPx(containingWidth)
	d.Margin.Right = marginRight.ToPx(containingWidth)
}

// calculateBlockPosition resolves the vertical edges and places the box
// within its containing block. Vertical margins do not auto-resolve; auto is
// treated as zero. Percentages on vertical edges resolve against the
// containing width, as §10.3.3 specifies for all margin and padding
// percentages.
func (b *LayoutBox) calculateBlockPosition(containingBlock Dimensions) {
	containingWidth := containingBlock.Content.Width
	sn := b.node
	d := &b.Dimensions

	// An anonymous box has no element; its styled node belongs to the
	// enclosing container and must not contribute edges a second time.
	if b.BoxType == Anonymous {
		d.Margin.Top, d.Margin.Bottom = 0, 0
		d.Border.Top, d.Border.Bottom = 0, 0
		d.Padding.Top, d.Padding.Bottom = 0, 0
		d.Content.StartX = containingBlock.Content.StartX
		d.Content.StartY = containingBlock.Content.StartY + containingBlock.Content.Height
		return
	}

	d.Margin.Top = sn.LengthOrAuto("margin-top", "0").ToPx(containingWidth)
	d.Margin.Bottom = sn.LengthOrAuto("margin-bottom", "0").ToPx(containingWidth)

	d.Border.Top = sn.EdgePx("border-top-width", containingWidth)
	d.Border.Bottom = sn.EdgePx("border-bottom-width", containingWidth)

	d.Padding.Top = sn.EdgePx("padding-top", containingWidth)
	d.Padding.Bottom = sn.EdgePx("padding-bottom", containingWidth)

	d.Content.StartX = containingBlock.Content.StartX + d.Margin.Left + d.Border.Left + d.Padding.Left

	// The containing block's content height is the running height of the
	// siblings already laid out, so this places the box directly below all
	// previous boxes in the container. This is the block-stacking rule.
	d.Content.StartY = containingBlock.Content.StartY + containingBlock.Content.Height +
		d.Margin.Top + d.Border.Top + d.Padding.Top
}

// layoutBlockChildren lays out each child in document order against this
// box's current dimensions, accumulating the running content height as it
// goes. Children observe the running total as of their turn, not a frozen
// snapshot.
func (b *LayoutBox) layoutBlockChildren() {
	d := &b.Dimensions
	// Reset the accumulator so a relayout does not stack on the previous
	// pass's height.
	d.Content.Height = 0
	for _, child := range b.Children {
		child.Layout(*d)
		d.Content = d.Content.ExpandedByRect(Rect{Height: child.Dimensions.MarginBox().Height})
	}
}

// calculateBlockHeight overwrites the accumulated content height when the
// node specifies a definite height; the containing block's content height is
// the percentage base. An auto height keeps the sum of the children's
// margin-box heights.
func (b *LayoutBox) calculateBlockHeight(containingBlock Dimensions) {
	if b.BoxType == Anonymous {
		return
	}
	height := b.node.LengthOrAuto("height", "auto")
	if height.IsAuto() {
		return
	}
	b.Dimensions.Content.Height = max(0, height.ToPx(containingBlock.Content.Height))
}

// Translate shifts this box and its whole subtree.
func (b *LayoutBox) Translate(dx, dy float64) {
	b.Dimensions.Content.StartX += dx
	b.Dimensions.Content.StartY += dy
	for _, child := range b.Children {
		child.Translate(dx, dy)
	}
}

// ScaleBy multiplies all geometry in the subtree by k, mapping CSS pixels to
// device pixels.
func (b *LayoutBox) ScaleBy(k float64) {
	b.Dimensions = b.Dimensions.ScaledBy(k)
	for _, child := range b.Children {
		child.ScaleBy(k)
	}
}
