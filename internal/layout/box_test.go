// internal/layout/box_test.go
package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLayoutTree_BoxTypes(t *testing.T) {
	root := BuildLayoutTree(styledTree(t,
		`<html><body><div id="block"><span id="inline">x</span></div></body></html>`, ""))
	require.NotNil(t, root)

	assert.Equal(t, Block, root.BoxType, "html is block-level")
	div := mustFindByID(t, root, "block")
	assert.Equal(t, Block, div.BoxType)
	span := mustFindByID(t, root, "inline")
	assert.Equal(t, Inline, span.BoxType)
}

func TestBuildLayoutTree_DisplayNoneRoot(t *testing.T) {
	root := BuildLayoutTree(styledTree(t,
		`<html><body></body></html>`, `html { display: none; }`))
	assert.Nil(t, root, "display:none root generates no box")
}

func TestBuildLayoutTree_DisplayNoneSubtreeExcluded(t *testing.T) {
	root := BuildLayoutTree(styledTree(t,
		`<html><body><div id="hidden"><p id="within"></p></div><div id="kept"></div></body></html>`,
		`#hidden { display: none; }`))
	require.NotNil(t, root)

	assert.Nil(t, findByID(root, "hidden"))
	assert.Nil(t, findByID(root, "within"), "descendants of display:none are excluded")
	assert.NotNil(t, findByID(root, "kept"))
}

func TestBuildLayoutTree_AnonymousWrapsInlineRun(t *testing.T) {
	// Block, then a run of two inlines, then another block. The run shares
	// one anonymous container.
	root := BuildLayoutTree(styledTree(t,
		`<html><body><p id="first"></p><span>a</span><span>b</span><p id="last"></p></body></html>`, ""))
	require.NotNil(t, root)

	body := findAll(root, "BODY")
	require.Len(t, body, 1)
	require.Len(t, body[0].Children, 3, "block, anonymous, block")

	assert.Equal(t, Block, body[0].Children[0].BoxType)
	anon := body[0].Children[1]
	assert.Equal(t, Anonymous, anon.BoxType)
	assert.True(t, anon.IsAnonymous())
	require.Len(t, anon.Children, 2)
	assert.Equal(t, Inline, anon.Children[0].BoxType)
	assert.Equal(t, Block, body[0].Children[2].BoxType)
}

func TestBuildLayoutTree_SeparateInlineRunsGetSeparateWrappers(t *testing.T) {
	root := BuildLayoutTree(styledTree(t,
		`<html><body><span>a</span><p></p><span>b</span></body></html>`, ""))
	require.NotNil(t, root)

	body := findAll(root, "BODY")
	require.Len(t, body, 1)
	require.Len(t, body[0].Children, 3)
	assert.Equal(t, Anonymous, body[0].Children[0].BoxType)
	assert.Equal(t, Block, body[0].Children[1].BoxType)
	assert.Equal(t, Anonymous, body[0].Children[2].BoxType, "a block child ends the run; the next inline starts a new wrapper")
}

func TestBuildLayoutTree_InlineParentHoldsInlineChildrenDirectly(t *testing.T) {
	root := BuildLayoutTree(styledTree(t,
		`<html><body><span id="outer"><b id="inner">x</b></span></body></html>`, ""))
	require.NotNil(t, root)

	outer := mustFindByID(t, root, "outer")
	require.Len(t, outer.Children, 1)
	assert.Equal(t, Inline, outer.Children[0].BoxType, "no anonymous wrapper inside an inline parent")
}

func TestBuildLayoutTree_WhitespaceOnlyTextDropped(t *testing.T) {
	root := BuildLayoutTree(styledTree(t,
		"<html><body><div id=\"a\"></div>\n   \t\n<div id=\"b\"></div></body></html>", ""))
	require.NotNil(t, root)

	body := findAll(root, "BODY")
	require.Len(t, body, 1)
	assert.Len(t, body[0].Children, 2, "inter-element whitespace generates no box")
}

func TestBoxTypeString(t *testing.T) {
	assert.Equal(t, "Block", Block.String())
	assert.Equal(t, "Inline", Inline.String())
	assert.Equal(t, "AnonymousBox", Anonymous.String())
}

func TestAddChildInline_PanicsOnUnknownBoxType(t *testing.T) {
	bad := &LayoutBox{BoxType: BoxType(42)}
	assert.Panics(t, func() { bad.AddChildInline(&LayoutBox{BoxType: Inline}) })
}
