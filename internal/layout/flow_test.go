// internal/layout/flow_test.go
package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resetCSS = `html, body { margin: 0; padding: 0; }`

func TestBlockWidth_AutoFillsContainingBlock(t *testing.T) {
	root := layoutTree(t,
		`<html><body><div id="box"></div></body></html>`,
		resetCSS, 800, 600, 1.0)

	box := mustFindByID(t, root, "box")
	assert.Equal(t, 800.0, box.Dimensions.Content.Width)
	assert.Equal(t, 0.0, box.Dimensions.Content.StartX)
	assert.Equal(t, 0.0, box.Dimensions.Content.StartY)
}

func TestBlockWidth_FixedWidthAbsorbsUnderflowIntoMarginRight(t *testing.T) {
	root := layoutTree(t,
		`<html><body><div id="box"></div></body></html>`,
		resetCSS+` #box { width: 100px; }`, 800, 600, 1.0)

	box := mustFindByID(t, root, "box")
	assert.Equal(t, 100.0, box.Dimensions.Content.Width)
	assert.Equal(t, 0.0, box.Dimensions.Margin.Left)
	assert.Equal(t, 700.0, box.Dimensions.Margin.Right, "specified margin-right of 0 grows by the underflow")
}

func TestBlockWidth_OverConstrained(t *testing.T) {
	// width + margins = 140 in a 120px containing block. Margin-right
	// gives way: 20 + (120 - 140) = 0.
	root := layoutTree(t,
		`<html><body><div id="box"></div></body></html>`,
		resetCSS+` #box { width: 100px; margin-left: 20px; margin-right: 20px; }`,
		120, 600, 1.0)

	box := mustFindByID(t, root, "box")
	assert.Equal(t, 100.0, box.Dimensions.Content.Width)
	assert.Equal(t, 20.0, box.Dimensions.Margin.Left)
	assert.Equal(t, 0.0, box.Dimensions.Margin.Right)
	assert.Equal(t, 20.0, box.Dimensions.Content.StartX)
}

func TestBlockWidth_AutoMarginsCenter(t *testing.T) {
	root := layoutTree(t,
		`<html><body><div id="box"></div></body></html>`,
		resetCSS+` #box { width: 100px; margin-left: auto; margin-right: auto; }`,
		200, 600, 1.0)

	box := mustFindByID(t, root, "box")
	assert.Equal(t, 50.0, box.Dimensions.Margin.Left)
	assert.Equal(t, 50.0, box.Dimensions.Margin.Right)
	assert.Equal(t, 50.0, box.Dimensions.Content.StartX)
}

func TestBlockWidth_SingleAutoMarginTakesUnderflow(t *testing.T) {
	root := layoutTree(t,
		`<html><body><div id="box"></div></body></html>`,
		resetCSS+` #box { width: 100px; margin-left: auto; margin-right: 10px; }`,
		200, 600, 1.0)

	box := mustFindByID(t, root, "box")
	assert.Equal(t, 90.0, box.Dimensions.Margin.Left)
	assert.Equal(t, 10.0, box.Dimensions.Margin.Right)
}

func TestBlockWidth_AutoWidthNegativeUnderflow(t *testing.T) {
	// Fixed margins alone exceed the containing block: the auto width
	// clamps to zero and margin-right absorbs the deficit.
	root := layoutTree(t,
		`<html><body><div id="box"></div></body></html>`,
		resetCSS+` #box { margin-left: 30px; margin-right: 30px; }`,
		40, 600, 1.0)

	box := mustFindByID(t, root, "box")
	assert.Equal(t, 0.0, box.Dimensions.Content.Width)
	assert.Equal(t, 30.0, box.Dimensions.Margin.Left)
	assert.Equal(t, 10.0, box.Dimensions.Margin.Right)
}

func TestBlockWidth_Percentage(t *testing.T) {
	root := layoutTree(t,
		`<html><body><div id="box"></div></body></html>`,
		resetCSS+` #box { width: 50%; }`, 800, 600, 1.0)

	box := mustFindByID(t, root, "box")
	assert.Equal(t, 400.0, box.Dimensions.Content.Width)
}

func TestBlockPosition_VerticalStacking(t *testing.T) {
	root := layoutTree(t,
		`<html><body><div id="a"></div><div id="b"></div><div id="c"></div></body></html>`,
		resetCSS+` #a { height: 10px; } #b { height: 20px; } #c { height: 5px; }`,
		800, 600, 1.0)

	a := mustFindByID(t, root, "a")
	b := mustFindByID(t, root, "b")
	c := mustFindByID(t, root, "c")

	assert.Equal(t, 0.0, a.Dimensions.Content.StartY)
	assert.Equal(t, 10.0, b.Dimensions.Content.StartY)
	assert.Equal(t, 30.0, c.Dimensions.Content.StartY)

	body := findAll(root, "BODY")[0]
	assert.Equal(t, 35.0, body.Dimensions.Content.Height, "auto height sums the children's margin boxes")
}

func TestBlockPosition_MarginsBordersPaddingOffset(t *testing.T) {
	root := layoutTree(t,
		`<html><body><div id="box"></div></body></html>`,
		resetCSS+` #box { margin: 10px; border-width: 3px; padding: 5px; height: 7px; }`,
		800, 600, 1.0)

	box := mustFindByID(t, root, "box")
	assert.Equal(t, 18.0, box.Dimensions.Content.StartX, "margin + border + padding")
	assert.Equal(t, 18.0, box.Dimensions.Content.StartY)
	assert.Equal(t, 800.0-2*18, box.Dimensions.Content.Width)

	body := findAll(root, "BODY")[0]
	assert.Equal(t, 7.0+2*18, body.Dimensions.Content.Height)
}

func TestBlockHeight_ExplicitOverridesChildren(t *testing.T) {
	root := layoutTree(t,
		`<html><body><div id="box"><div id="tall"></div></div></body></html>`,
		resetCSS+` #box { height: 50px; } #tall { height: 200px; }`,
		800, 600, 1.0)

	box := mustFindByID(t, root, "box")
	assert.Equal(t, 50.0, box.Dimensions.Content.Height, "definite height wins over content height")
	tall := mustFindByID(t, root, "tall")
	assert.Equal(t, 200.0, tall.Dimensions.Content.Height, "the child itself is not clipped")
}

func TestBlockHeight_NegativeClampsToZero(t *testing.T) {
	root := layoutTree(t,
		`<html><body><div id="box"></div></body></html>`,
		resetCSS+` #box { height: -10px; }`, 800, 600, 1.0)

	box := mustFindByID(t, root, "box")
	assert.Equal(t, 0.0, box.Dimensions.Content.Height)
}

func TestNegativeMarginsShiftBox(t *testing.T) {
	root := layoutTree(t,
		`<html><body><div id="box"></div></body></html>`,
		resetCSS+` #box { width: 100px; margin-left: -10px; }`, 800, 600, 1.0)

	box := mustFindByID(t, root, "box")
	assert.Equal(t, -10.0, box.Dimensions.Content.StartX, "negative margins are honored")
}

func TestNegativePaddingClampsToZero(t *testing.T) {
	root := layoutTree(t,
		`<html><body><div id="box"></div></body></html>`,
		resetCSS+` #box { padding-left: -5px; }`, 800, 600, 1.0)

	box := mustFindByID(t, root, "box")
	assert.Equal(t, 0.0, box.Dimensions.Padding.Left)
}

func TestUserAgentBodyMargin(t *testing.T) {
	root := layoutTree(t,
		`<html><body><div id="box"></div></body></html>`, "", 800, 600, 1.0)

	body := findAll(root, "BODY")[0]
	assert.Equal(t, 8.0, body.Dimensions.Content.StartX)
	assert.Equal(t, 8.0, body.Dimensions.Content.StartY)
	assert.Equal(t, 784.0, body.Dimensions.Content.Width)

	box := mustFindByID(t, root, "box")
	assert.Equal(t, 784.0, box.Dimensions.Content.Width)
}

func TestGlobalLayout_ScaleFactor(t *testing.T) {
	root := layoutTree(t,
		`<html><body><div id="box"></div></body></html>`,
		resetCSS+` #box { width: 100px; height: 50px; margin-left: 10px; }`,
		800, 600, 2.0)

	box := mustFindByID(t, root, "box")
	assert.Equal(t, 200.0, box.Dimensions.Content.Width)
	assert.Equal(t, 100.0, box.Dimensions.Content.Height)
	assert.Equal(t, 20.0, box.Dimensions.Content.StartX)
	assert.Equal(t, 20.0, box.Dimensions.Margin.Left)

	assert.Equal(t, 1600.0, root.Dimensions.Content.Width, "the whole tree scales, root included")
}

func TestGlobalLayout_Relayout(t *testing.T) {
	styleRoot := styledTree(t,
		`<html><body><div id="box"></div></body></html>`, resetCSS)
	tree := BuildLayoutTree(styleRoot)
	require.NotNil(t, tree)

	GlobalLayout(tree, 800, 600, 1.0)
	box := mustFindByID(t, tree, "box")
	assert.Equal(t, 800.0, box.Dimensions.Content.Width)

	// A second pass against a narrower window fully overwrites geometry.
	GlobalLayout(tree, 400, 600, 1.0)
	assert.Equal(t, 400.0, box.Dimensions.Content.Width)
	assert.Equal(t, 0.0, box.Dimensions.Content.StartY)
}
