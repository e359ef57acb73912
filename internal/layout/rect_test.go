// internal/layout/rect_test.go
package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectExpandedByEdges(t *testing.T) {
	r := Rect{StartX: 10, StartY: 20, Width: 100, Height: 50}
	e := EdgeSizes{Left: 1, Right: 2, Top: 3, Bottom: 4}

	got := r.ExpandedByEdges(e)

	assert.Equal(t, Rect{StartX: 9, StartY: 17, Width: 103, Height: 57}, got)
	// The receiver is untouched.
	assert.Equal(t, Rect{StartX: 10, StartY: 20, Width: 100, Height: 50}, r)
}

func TestRectExpandedByRect(t *testing.T) {
	r := Rect{StartX: 10, StartY: 20, Width: 100, Height: 50}

	got := r.ExpandedByRect(Rect{StartX: 99, StartY: 99, Width: 30, Height: 40})

	// The origin is kept; only the size grows.
	assert.Equal(t, Rect{StartX: 10, StartY: 20, Width: 130, Height: 90}, got)
	assert.Equal(t, Rect{StartX: 10, StartY: 20, Width: 100, Height: 50}, r)
}

func TestRectScaledBy(t *testing.T) {
	r := Rect{StartX: 2, StartY: 4, Width: 8, Height: 16}
	assert.Equal(t, Rect{StartX: 4, StartY: 8, Width: 16, Height: 32}, r.ScaledBy(2))
	assert.Equal(t, r, r.ScaledBy(1))
}

func TestDimensionsBoxNesting(t *testing.T) {
	d := Dimensions{
		Content: Rect{StartX: 50, StartY: 50, Width: 200, Height: 100},
		Padding: EdgeSizes{Left: 5, Right: 5, Top: 5, Bottom: 5},
		Border:  EdgeSizes{Left: 2, Right: 2, Top: 2, Bottom: 2},
		Margin:  EdgeSizes{Left: 10, Right: 10, Top: 10, Bottom: 10},
	}

	padding := d.PaddingBox()
	border := d.BorderBox()
	margin := d.MarginBox()

	assert.Equal(t, Rect{StartX: 45, StartY: 45, Width: 210, Height: 110}, padding)
	assert.Equal(t, Rect{StartX: 43, StartY: 43, Width: 214, Height: 114}, border)
	assert.Equal(t, Rect{StartX: 33, StartY: 33, Width: 234, Height: 134}, margin)

	// Each box contains the previous one.
	assert.LessOrEqual(t, border.StartX, padding.StartX)
	assert.GreaterOrEqual(t, border.Width, padding.Width)
	assert.LessOrEqual(t, margin.StartX, border.StartX)
	assert.GreaterOrEqual(t, margin.Width, border.Width)
}

func TestDimensionsScaledBy(t *testing.T) {
	d := Dimensions{
		Content: Rect{StartX: 1, StartY: 2, Width: 3, Height: 4},
		Margin:  EdgeSizes{Left: 5, Right: 6, Top: 7, Bottom: 8},
	}
	got := d.ScaledBy(2)

	assert.Equal(t, Rect{StartX: 2, StartY: 4, Width: 6, Height: 8}, got.Content)
	assert.Equal(t, EdgeSizes{Left: 10, Right: 12, Top: 14, Bottom: 16}, got.Margin)
}
