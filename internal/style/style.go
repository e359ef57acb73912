// internal/style/style.go
package style

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/jbro885/kosmonaut/internal/css"
)

// DefaultUserAgentCSS is the built-in user agent stylesheet. It is kept
// minimal: block defaults for the usual containers, display:none for
// non-rendered document machinery, and the traditional body margin.
const DefaultUserAgentCSS = `
html, div, p, h1, h2, h3, h4, h5, h6, ul, ol, li,
form, header, footer, section, article, nav, main, blockquote, pre {
	display: block;
	margin: 0;
	padding: 0;
}

body { display: block; margin: 8px; padding: 0; }

head, script, style, title, meta, link { display: none; }

h1 { font-size: 32px; margin: 21px 0; }
h2 { font-size: 24px; margin: 19px 0; }
p { margin: 16px 0; }
ul, ol { padding-left: 40px; }

span, a, b, i, em, strong, code, small, label { display: inline; }
`

// Engine runs the cascade: user agent sheet, author sheets, then inline
// style attributes, ordered by origin, specificity, and source order.
type Engine struct {
	userAgentSheets []css.StyleSheet
	authorSheets    []css.StyleSheet
	viewportWidth   float64
	viewportHeight  float64
}

// NewEngine creates a styling engine preloaded with the user agent sheet.
func NewEngine() *Engine {
	uaSheet := css.NewParser(DefaultUserAgentCSS).Parse()
	return &Engine{userAgentSheets: []css.StyleSheet{uaSheet}}
}

// AddAuthorSheet adds a stylesheet provided by the document author.
func (se *Engine) AddAuthorSheet(sheet css.StyleSheet) {
	se.authorSheets = append(se.authorSheets, sheet)
}

// SetViewport records the viewport dimensions for viewport-relative units.
func (se *Engine) SetViewport(width, height float64) {
	se.viewportWidth = width
	se.viewportHeight = height
}

// StyledNode is a document node paired with its computed styles. The layout
// tree borrows these nodes read-only for the duration of a layout pass; the
// style tree owns them.
type StyledNode struct {
	Node           *html.Node
	ComputedStyles map[css.Property]css.Value
	Children       []*StyledNode
}

// Lookup returns a computed style value, or fallback when the property is
// absent. Absent values never fail; they resolve to the fallback.
func (sn *StyledNode) Lookup(property, fallback string) string {
	if val, ok := sn.ComputedStyles[css.Property(property)]; ok {
		return string(val)
	}
	return fallback
}

// IsText reports whether this node is a document text node.
func (sn *StyledNode) IsText() bool {
	return sn.Node != nil && sn.Node.Type == html.TextNode
}

// Text returns the whitespace-collapsed contents of a text node.
func (sn *StyledNode) Text() string {
	if !sn.IsText() {
		return ""
	}
	return CollapseWhitespace(sn.Node.Data)
}

// NodeName returns the uppercased document name of this node, e.g. "DIV" or
// "TEXT", matching the labels used by the layout dump format.
func (sn *StyledNode) NodeName() string {
	if sn == nil || sn.Node == nil {
		return ""
	}
	switch sn.Node.Type {
	case html.ElementNode:
		return strings.ToUpper(sn.Node.Data)
	case html.TextNode:
		return "TEXT"
	case html.DocumentNode:
		return "DOCUMENT"
	case html.CommentNode:
		return "COMMENT"
	case html.DoctypeNode:
		return "DOCTYPE"
	default:
		return ""
	}
}

// DisplayType is the outer display of a node. The layout engine only
// distinguishes block, inline, and none.
type DisplayType int

const (
	DisplayInline DisplayType = iota
	DisplayBlock
	DisplayNone
)

// Display returns the computed display of this node. Text nodes are always
// inline; unknown display values fall back to the element default.
func (sn *StyledNode) Display() DisplayType {
	if sn.IsText() {
		return DisplayInline
	}
	switch sn.Lookup("display", "") {
	case "block":
		return DisplayBlock
	case "inline":
		return DisplayInline
	case "none":
		return DisplayNone
	}
	return defaultDisplay(sn.Node)
}

func defaultDisplay(node *html.Node) DisplayType {
	if node == nil || node.Type != html.ElementNode {
		return DisplayInline
	}
	switch strings.ToLower(node.Data) {
	case "html", "body", "div", "p", "h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li", "form", "header", "footer", "section", "article",
		"nav", "main", "blockquote", "pre":
		return DisplayBlock
	case "head", "script", "style", "title", "meta", "link":
		return DisplayNone
	default:
		return DisplayInline
	}
}

// BuildTree computes styles for node and its subtree. Comment nodes are
// dropped; everything else gets a StyledNode even when its display is none,
// so the layout tree builder owns the display:none exclusion.
func (se *Engine) BuildTree(node *html.Node, parent *StyledNode) *StyledNode {
	if node.Type == html.CommentNode || node.Type == html.DoctypeNode {
		return nil
	}

	computed := make(map[css.Property]css.Value)
	if node.Type == html.ElementNode {
		computed = se.calculateStyles(node)
	}

	styled := &StyledNode{Node: node, ComputedStyles: computed}

	if parent != nil {
		se.inheritStyles(styled, parent)
	} else if _, ok := styled.ComputedStyles["font-size"]; !ok {
		styled.ComputedStyles["font-size"] = "16px"
	}
	se.resolveFontSize(styled, parent)

	for c := node.FirstChild; c != nil; c = c.NextSibling {
		if child := se.BuildTree(c, styled); child != nil {
			styled.Children = append(styled.Children, child)
		}
	}
	return styled
}

var inheritedProperties = map[css.Property]bool{
	"color":       true,
	"font-family": true,
	"font-size":   true,
	"font-weight": true,
	"line-height": true,
	"text-align":  true,
}

func (se *Engine) inheritStyles(child, parent *StyledNode) {
	for prop, val := range child.ComputedStyles {
		if val == "inherit" {
			if parentVal, ok := parent.ComputedStyles[prop]; ok {
				child.ComputedStyles[prop] = parentVal
			}
		}
	}
	for prop := range inheritedProperties {
		if _, ok := child.ComputedStyles[prop]; !ok {
			if val, ok := parent.ComputedStyles[prop]; ok {
				child.ComputedStyles[prop] = val
			}
		}
	}
}

// resolveFontSize rewrites relative font sizes (em, rem, %) into absolute
// pixels so every later length resolution sees a fixed base.
func (se *Engine) resolveFontSize(sn *StyledNode, parent *StyledNode) {
	raw, ok := sn.ComputedStyles["font-size"]
	if !ok {
		return
	}
	parentSize := BaseFontSize
	if parent != nil {
		parentSize = parent.FontSize()
	}
	value := strings.TrimSpace(string(raw))
	var resolved float64
	if strings.HasSuffix(value, "%") {
		resolved = ParseLength(value, parentSize).ToPx(parentSize)
	} else {
		resolved = ParseLength(value, parentSize).ToPx(0)
	}
	if resolved <= 0 {
		resolved = parentSize
	}
	sn.ComputedStyles["font-size"] = css.Value(formatPx(resolved))
}

func formatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

type styleOrigin int

const (
	originUserAgent styleOrigin = iota
	originAuthor
	originInline
)

type contextualDeclaration struct {
	declaration css.Declaration
	specificity [3]int
	origin      styleOrigin
	order       int
}

// cascadePriority orders declarations by origin and importance per the
// cascade: UA < author < inline, with important declarations above all
// normal ones and important UA rules strongest of all.
func cascadePriority(d contextualDeclaration) int {
	if d.declaration.Important {
		switch d.origin {
		case originUserAgent:
			return 6
		case originAuthor:
			return 5
		default:
			return 4
		}
	}
	switch d.origin {
	case originInline:
		return 3
	case originAuthor:
		return 2
	default:
		return 1
	}
}

func (se *Engine) calculateStyles(node *html.Node) map[css.Property]css.Value {
	var declarations []contextualDeclaration
	order := 0

	collect := func(sheets []css.StyleSheet, origin styleOrigin) {
		for _, sheet := range sheets {
			for _, rule := range sheet.Rules {
				for _, group := range rule.SelectorGroups {
					matched, ok := se.matches(node, group)
					if !ok {
						continue
					}
					a, b, c := matched.Specificity()
					for _, decl := range rule.Declarations {
						declarations = append(declarations, contextualDeclaration{
							declaration: decl,
							specificity: [3]int{a, b, c},
							origin:      origin,
							order:       order,
						})
						order++
					}
					break
				}
			}
		}
	}

	collect(se.userAgentSheets, originUserAgent)
	collect(se.authorSheets, originAuthor)

	for _, attr := range node.Attr {
		if attr.Key != "style" {
			continue
		}
		for _, decl := range parseInlineStyle(attr.Val) {
			declarations = append(declarations, contextualDeclaration{
				declaration: decl,
				specificity: [3]int{1, 0, 0},
				origin:      originInline,
				order:       order,
			})
			order++
		}
	}

	sort.Slice(declarations, func(i, j int) bool {
		d1, d2 := declarations[i], declarations[j]
		if p1, p2 := cascadePriority(d1), cascadePriority(d2); p1 != p2 {
			return p1 < p2
		}
		for k := 0; k < 3; k++ {
			if d1.specificity[k] != d2.specificity[k] {
				return d1.specificity[k] < d2.specificity[k]
			}
		}
		return d1.order < d2.order
	})

	styles := make(map[css.Property]css.Value)
	for _, d := range declarations {
		styles[d.declaration.Property] = d.declaration.Value
	}
	expandShorthands(styles)
	return styles
}

// expandShorthands rewrites margin/padding/border-width shorthands into
// their four component properties before layout ever looks at them.
func expandShorthands(styles map[css.Property]css.Value) {
	expandBox(styles, "margin", "margin-top", "margin-right", "margin-bottom", "margin-left")
	expandBox(styles, "padding", "padding-top", "padding-right", "padding-bottom", "padding-left")
	expandBox(styles, "border-width", "border-top-width", "border-right-width", "border-bottom-width", "border-left-width")
}

func expandBox(styles map[css.Property]css.Value, shorthand, top, right, bottom, left css.Property) {
	raw, ok := styles[shorthand]
	if !ok {
		return
	}
	parts := strings.Fields(string(raw))
	var t, r, b, l string
	switch len(parts) {
	case 1:
		t, r, b, l = parts[0], parts[0], parts[0], parts[0]
	case 2:
		t, r, b, l = parts[0], parts[1], parts[0], parts[1]
	case 3:
		t, r, b, l = parts[0], parts[1], parts[2], parts[1]
	case 4:
		t, r, b, l = parts[0], parts[1], parts[2], parts[3]
	default:
		return
	}
	setIfAbsent(styles, top, t)
	setIfAbsent(styles, right, r)
	setIfAbsent(styles, bottom, b)
	setIfAbsent(styles, left, l)
}

func setIfAbsent(styles map[css.Property]css.Value, prop css.Property, value string) {
	if _, ok := styles[prop]; !ok {
		styles[prop] = css.Value(value)
	}
}

func parseInlineStyle(styleAttr string) []css.Declaration {
	var decls []css.Declaration
	for _, piece := range strings.Split(styleAttr, ";") {
		parts := strings.SplitN(piece, ":", 2)
		if len(parts) != 2 {
			continue
		}
		prop := strings.ToLower(strings.TrimSpace(parts[0]))
		val := strings.TrimSpace(parts[1])
		if prop == "" || val == "" {
			continue
		}
		important := false
		if strings.HasSuffix(strings.ToLower(val), "!important") {
			important = true
			val = strings.TrimSpace(val[:len(val)-len("!important")])
		}
		decls = append(decls, css.Declaration{
			Property:  css.Property(prop),
			Value:     css.Value(val),
			Important: important,
		})
	}
	return decls
}

// matches reports whether any complex selector in the group matches node,
// returning the one that did for specificity scoring.
func (se *Engine) matches(node *html.Node, group css.SelectorGroup) (*css.ComplexSelector, bool) {
	for i := range group {
		sel := group[i]
		if len(sel.Selectors) == 0 {
			continue
		}
		if se.matchComplex(node, sel, len(sel.Selectors)-1) {
			return &sel, true
		}
	}
	return nil, false
}

// matchComplex matches right-to-left: the rightmost simple selector must
// match node itself, then ancestors satisfy the remaining sequence.
func (se *Engine) matchComplex(node *html.Node, sel css.ComplexSelector, index int) bool {
	if node == nil || node.Type != html.ElementNode {
		return false
	}
	if !matchSimple(node, sel.Selectors[index].SimpleSelector) {
		return false
	}
	if index == 0 {
		return true
	}

	switch sel.Selectors[index].Combinator {
	case css.CombinatorChild:
		return se.matchComplex(elementParent(node), sel, index-1)
	case css.CombinatorDescendant:
		for p := elementParent(node); p != nil; p = elementParent(p) {
			if se.matchComplex(p, sel, index-1) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func elementParent(node *html.Node) *html.Node {
	for p := node.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			return p
		}
	}
	return nil
}

func matchSimple(node *html.Node, sel css.SimpleSelector) bool {
	if sel.TagName != "" && sel.TagName != "*" && !strings.EqualFold(sel.TagName, node.Data) {
		return false
	}
	if sel.ID != "" && attrValue(node, "id") != sel.ID {
		return false
	}
	if len(sel.Classes) > 0 {
		classes := strings.Fields(attrValue(node, "class"))
		for _, want := range sel.Classes {
			found := false
			for _, have := range classes {
				if have == want {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}

func attrValue(node *html.Node, key string) string {
	for _, attr := range node.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
