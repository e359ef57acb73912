// internal/layout/box.go
package layout

import (
	"go.uber.org/zap"

	"github.com/jbro885/kosmonaut/internal/style"
)

// BoxType determines which layout algorithm applies to a box.
type BoxType int

const (
	Block BoxType = iota
	Inline
	Anonymous
)

func (t BoxType) String() string {
	switch t {
	case Block:
		return "Block"
	case Inline:
		return "Inline"
	case Anonymous:
		return "AnonymousBox"
	default:
		return "UnknownBox"
	}
}

// LayoutBox is a node of the layout tree. Dimensions start zeroed and are
// filled by exactly one layout pass; the tree is rebuilt wholesale for the
// next pass rather than mutated incrementally.
type LayoutBox struct {
	BoxType    BoxType
	Dimensions Dimensions
	Children   []*LayoutBox

	// node is the closest non-anonymous styled node. Anonymous boxes have no
	// document node of their own, so they borrow their nearest real
	// ancestor's node to read computed values during layout. The style tree
	// owns the node; the layout tree only borrows it read-only for one pass.
	node *style.StyledNode
}

// NewLayoutBox creates a layout box. For anonymous boxes, node should be the
// styled node of the closest non-anonymous ancestor.
func NewLayoutBox(boxType BoxType, node *style.StyledNode) *LayoutBox {
	return &LayoutBox{BoxType: boxType, node: node}
}

// Node returns the styled node this box reads computed values from.
func (b *LayoutBox) Node() *style.StyledNode {
	return b.node
}

// IsBlockLevel reports whether the box stacks vertically in its parent's
// block formatting context.
func (b *LayoutBox) IsBlockLevel() bool {
	return b.BoxType == Block
}

// IsAnonymous reports whether the box was synthesized with no document node.
func (b *LayoutBox) IsAnonymous() bool {
	return b.BoxType == Anonymous
}

// AddChild appends a block-level child as a direct structural child.
func (b *LayoutBox) AddChild(child *LayoutBox) {
	newInserter(b, zap.L()).addChild(child)
}

// AddChildInline routes an inline-level child into this box. Block
// containers wrap maximal runs of inline-level siblings in a single
// anonymous container; a trailing anonymous container created for the
// previous sibling is reused rather than duplicated.
func (b *LayoutBox) AddChildInline(child *LayoutBox) {
	newInserter(b, zap.L()).addChildInline(child)
}

// inserter is the builder cursor for one parent box. It remembers the
// trailing anonymous container so consecutive inline-level siblings merge
// into one wrapper, and forgets it as soon as a block-level child
// intervenes. Keeping the insertion point explicit makes the wrapping rule
// testable on its own.
type inserter struct {
	parent       *LayoutBox
	trailingAnon *LayoutBox
	logger       *zap.Logger
}

func newInserter(parent *LayoutBox, logger *zap.Logger) *inserter {
	ins := &inserter{parent: parent, logger: logger}
	if n := len(parent.Children); n > 0 {
		if last := parent.Children[n-1]; last.IsAnonymous() {
			ins.trailingAnon = last
		}
	}
	return ins
}

// addChild appends a block-level child. When the parent is itself an
// inline-level box the child is promoted to a direct structural child
// instead of fragmenting the inline box around it; see DESIGN.md for the
// policy decision.
func (ins *inserter) addChild(child *LayoutBox) {
	if ins.parent.BoxType == Inline {
		ins.logger.Warn("block-level box inside inline content; promoting to direct child",
			zap.String("parent", ins.parent.node.NodeName()),
			zap.String("child", child.node.NodeName()))
	}
	ins.parent.Children = append(ins.parent.Children, child)
	ins.trailingAnon = nil
}

// addChildInline appends an inline-level child. Inline and anonymous
// parents hold inline children directly; block parents get an anonymous
// container, created lazily and shared by the whole run.
func (ins *inserter) addChildInline(child *LayoutBox) {
	switch ins.parent.BoxType {
	case Inline, Anonymous:
		ins.parent.Children = append(ins.parent.Children, child)
	case Block:
		if ins.trailingAnon == nil {
			ins.trailingAnon = NewLayoutBox(Anonymous, ins.parent.node)
			ins.parent.Children = append(ins.parent.Children, ins.trailingAnon)
		}
		ins.trailingAnon.Children = append(ins.trailingAnon.Children, child)
	default:
		panic("layout: box type cannot hold inline children")
	}
}

// BuildLayoutTree walks a styled document tree and produces the layout
// tree, deciding box types and inserting anonymous wrappers. It returns nil
// for a display:none node; that node's entire subtree is excluded.
func BuildLayoutTree(sn *style.StyledNode) *LayoutBox {
	return buildLayoutTree(sn, zap.L())
}

func buildLayoutTree(sn *style.StyledNode, logger *zap.Logger) *LayoutBox {
	var boxType BoxType
	switch sn.Display() {
	case style.DisplayNone:
		return nil
	case style.DisplayBlock:
		boxType = Block
	default:
		boxType = Inline
	}

	// Whitespace-only text between elements generates no box.
	if sn.IsText() && sn.Text() == "" {
		return nil
	}

	box := NewLayoutBox(boxType, sn)
	ins := newInserter(box, logger)
	for _, child := range sn.Children {
		childBox := buildLayoutTree(child, logger)
		if childBox == nil {
			continue
		}
		if childBox.IsBlockLevel() {
			ins.addChild(childBox)
		} else {
			ins.addChildInline(childBox)
		}
	}
	return box
}
