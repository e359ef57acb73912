// internal/layout/layout.go

// Package layout implements the CSS box model over a styled document tree:
// box-tree construction with anonymous-box insertion, block and inline
// normal flow, and diagnostic layout dumps. Geometry is float64 CSS pixels;
// the y axis grows downward.
package layout

import (
	"go.uber.org/zap"

	"github.com/jbro885/kosmonaut/internal/style"
)

// GlobalLayout performs one full layout pass over the tree for a window of
// the given CSS-pixel size, then maps the result to device pixels with the
// scale factor. The pass overwrites all geometry, so the tree can be laid
// out again after a style or viewport change.
func GlobalLayout(tree *LayoutBox, windowWidth, windowHeight, scaleFactor float64) {
	containing := Dimensions{Content: Rect{
		StartX: 0,
		StartY: 0,
		Width:  windowWidth,
	}}
	// The content height of a containing block doubles as the running
	// height of the children already laid out, so the root containing
	// block starts at zero height or the first box would land below the
	// viewport. The window height itself only matters to consumers that
	// clip or scroll. See DESIGN.md.
	tree.Layout(containing)
	if scaleFactor != 1.0 {
		tree.ScaleBy(scaleFactor)
	}
}

// Engine couples a viewport to tree construction and layout. It exists so
// command surfaces hold one value instead of threading window geometry
// through every call.
type Engine struct {
	width  float64
	height float64
	scale  float64
	logger *zap.Logger
}

// NewEngine returns an engine for a window of the given CSS-pixel size and
// device scale factor. A scale of zero or less is treated as 1.
func NewEngine(width, height, scale float64) *Engine {
	if scale <= 0 {
		scale = 1
	}
	return &Engine{width: width, height: height, scale: scale, logger: zap.L()}
}

// LayoutTree builds the layout tree for a styled document and runs a full
// layout pass over it. Returns nil when the root is display:none or the
// styled tree is empty.
func (e *Engine) LayoutTree(styleRoot *style.StyledNode) *LayoutBox {
	if styleRoot == nil {
		return nil
	}
	tree := buildLayoutTree(styleRoot, e.logger)
	if tree == nil {
		e.logger.Debug("style root generated no box; nothing to lay out")
		return nil
	}
	GlobalLayout(tree, e.width, e.height, e.scale)
	return tree
}
