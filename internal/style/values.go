// internal/style/values.go
package style

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

const (
	// BaseFontSize is the default root font size in CSS pixels.
	BaseFontSize = 16.0
	// DefaultLineHeight is the multiplier used for 'line-height: normal'.
	DefaultLineHeight = 1.2
)

// Length is a computed length-or-percentage-or-auto value. Percentages stay
// unresolved until layout supplies the containing dimension.
type Length struct {
	Auto    bool
	Percent bool
	// Value is the length in CSS pixels, or the percentage numerator when
	// Percent is set.
	Value float64
}

// Auto is the 'auto' computed value.
var Auto = Length{Auto: true}

// Px returns an absolute pixel length.
func Px(v float64) Length {
	return Length{Value: v}
}

// IsAuto reports whether the value must be resolved algorithmically.
func (l Length) IsAuto() bool { return l.Auto }

// ToPx resolves the value against a containing dimension. Auto resolves to
// zero; callers that need the auto case tables must check IsAuto first.
func (l Length) ToPx(containing float64) float64 {
	switch {
	case l.Auto:
		return 0
	case l.Percent:
		return containing * (l.Value / 100.0)
	default:
		return l.Value
	}
}

// ParseLength parses a CSS length value into a Length. Relative font units
// are resolved immediately against fontSize (em) and the root size (rem);
// percentages are carried symbolically. Unparseable values fall back to zero,
// never to an error.
func ParseLength(value string, fontSize float64) Length {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return Px(0)
	}
	if value == "auto" {
		return Auto
	}

	numeric := func(s, suffix string) (float64, bool) {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, suffix), 64)
		return v, err == nil
	}

	if strings.HasSuffix(value, "%") {
		if v, ok := numeric(value, "%"); ok {
			return Length{Percent: true, Value: v}
		}
	}
	if strings.HasSuffix(value, "px") {
		if v, ok := numeric(value, "px"); ok {
			return Px(v)
		}
	}
	if strings.HasSuffix(value, "rem") {
		if v, ok := numeric(value, "rem"); ok {
			return Px(v * BaseFontSize)
		}
	}
	if strings.HasSuffix(value, "em") {
		if v, ok := numeric(value, "em"); ok {
			return Px(v * fontSize)
		}
	}
	// Unitless values are treated as pixels.
	if v, err := strconv.ParseFloat(value, 64); err == nil {
		return Px(v)
	}
	return Px(0)
}

// LengthOrAuto returns the computed value of a length property, using
// fallback when the property is absent from the computed styles.
func (sn *StyledNode) LengthOrAuto(property, fallback string) Length {
	return ParseLength(sn.Lookup(property, fallback), sn.FontSize())
}

// EdgePx returns the computed value of an edge property (border or padding
// component) resolved against the containing width. Auto is treated as zero
// and negative values are clamped to zero; margins, which may legally be
// negative, go through LengthOrAuto instead.
func (sn *StyledNode) EdgePx(property string, containingWidth float64) float64 {
	px := sn.LengthOrAuto(property, "0").ToPx(containingWidth)
	if px < 0 {
		return 0
	}
	return px
}

// FontSize returns the resolved font size in pixels for this node.
func (sn *StyledNode) FontSize() float64 {
	if sn == nil {
		return BaseFontSize
	}
	size := ParseAbsoluteLength(sn.Lookup("font-size", fmt.Sprintf("%gpx", BaseFontSize)))
	if size <= 0 {
		return BaseFontSize
	}
	return size
}

// FontAscent approximates the distance from the baseline to the top of the
// glyphs. Real metrics belong to a shaping backend; this mirrors the common
// 0.8em approximation.
func (sn *StyledNode) FontAscent() float64 {
	return sn.FontSize() * 0.8
}

// LineHeight returns the used line height in pixels for this node.
func (sn *StyledNode) LineHeight() float64 {
	fontSize := sn.FontSize()
	value := strings.TrimSpace(sn.Lookup("line-height", "normal"))
	if value == "normal" {
		return fontSize * DefaultLineHeight
	}
	// A bare number is a multiplier of the font size.
	if v, err := strconv.ParseFloat(value, 64); err == nil && !strings.ContainsAny(value, "px%emr") {
		return fontSize * v
	}
	return ParseLength(value, fontSize).ToPx(fontSize)
}

// MeasureText estimates the advance width and height of a text node's
// contents. Glyph shaping is out of scope; the width is a monospace-style
// estimate proportional to the font size.
func MeasureText(sn *StyledNode) (width, height float64) {
	if sn == nil || sn.Node == nil || sn.Node.Type != html.TextNode {
		return 0, 0
	}
	text := CollapseWhitespace(sn.Node.Data)
	fontSize := sn.FontSize()
	return float64(utf8.RuneCountInString(text)) * fontSize * 0.6, fontSize
}

// CollapseWhitespace folds runs of whitespace into single spaces and trims
// the ends, the default white-space handling for normal flow.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ParseAbsoluteLength parses a length that cannot be relative or auto.
func ParseAbsoluteLength(value string) float64 {
	return ParseLength(value, BaseFontSize).ToPx(0)
}
