// internal/browser/document.go

// Package browser loads HTML documents and drives them through the style
// and layout pipelines.
package browser

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/antchfx/htmlquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/jbro885/kosmonaut/internal/css"
	"github.com/jbro885/kosmonaut/internal/style"
)

// Document is a parsed HTML document together with the author stylesheets
// it references, in document order.
type Document struct {
	// Path is the filesystem location the document was loaded from, or
	// empty for in-memory documents. Linked stylesheets resolve relative
	// to its directory.
	Path string
	Root *html.Node

	AuthorSheets []css.StyleSheet
}

// LoadDocument reads and parses an HTML file and gathers its author
// stylesheets: the contents of <style> elements and any same-origin
// <link rel="stylesheet"> files. A linked stylesheet that cannot be read
// is logged and skipped; the document still loads.
func LoadDocument(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()
	return ParseDocument(f, path)
}

// ParseDocument parses HTML from a reader. basePath anchors relative
// stylesheet links and may be empty, in which case links are skipped.
func ParseDocument(r io.Reader, basePath string) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	doc := &Document{Path: basePath, Root: root}
	doc.collectAuthorSheets()
	return doc, nil
}

// AddStylesheet parses raw CSS and appends it as an author sheet, after any
// sheets the document itself references.
func (d *Document) AddStylesheet(source string) {
	d.AuthorSheets = append(d.AuthorSheets, css.NewParser(source).Parse())
}

// collectAuthorSheets walks <style> and <link rel="stylesheet"> in document
// order. Order matters: the cascade breaks specificity ties by source
// order across sheets.
func (d *Document) collectAuthorSheets() {
	logger := zap.L()
	nodes := htmlquery.Find(d.Root, "//style | //link[@rel='stylesheet']")
	for _, node := range nodes {
		if node.Data == "style" {
			d.AuthorSheets = append(d.AuthorSheets, css.NewParser(htmlquery.InnerText(node)).Parse())
			continue
		}

		href := htmlquery.SelectAttr(node, "href")
		if href == "" {
			continue
		}
		if strings.Contains(href, "://") {
			logger.Warn("remote stylesheets are not fetched; skipping", zap.String("href", href))
			continue
		}
		if d.Path == "" {
			logger.Warn("linked stylesheet has no base path to resolve against", zap.String("href", href))
			continue
		}

		sheetPath := filepath.Join(filepath.Dir(d.Path), filepath.FromSlash(href))
		source, err := os.ReadFile(sheetPath)
		if err != nil {
			logger.Warn("failed to read linked stylesheet; skipping",
				zap.String("href", href), zap.Error(err))
			continue
		}
		d.AuthorSheets = append(d.AuthorSheets, css.NewParser(string(source)).Parse())
	}
}

// Title returns the text of the document's <title> element, or "".
func (d *Document) Title() string {
	if node := htmlquery.FindOne(d.Root, "//title"); node != nil {
		return style.CollapseWhitespace(htmlquery.InnerText(node))
	}
	return ""
}

// RootElement returns the document's <html> element, or nil for a document
// with no element content.
func (d *Document) RootElement() *html.Node {
	for n := d.Root.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode {
			return n
		}
	}
	return nil
}

// StyleTree computes the styled tree for the document against the given
// viewport: user agent defaults first, then the document's author sheets.
// The style cascade starts at the root element, not the document node.
func (d *Document) StyleTree(viewportWidth, viewportHeight float64) *style.StyledNode {
	root := d.RootElement()
	if root == nil {
		return nil
	}
	engine := style.NewEngine()
	engine.SetViewport(viewportWidth, viewportHeight)
	for _, sheet := range d.AuthorSheets {
		engine.AddAuthorSheet(sheet)
	}
	return engine.BuildTree(root, nil)
}
