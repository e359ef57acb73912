// -- cmd/render.go --
package cmd

import (
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jbro885/kosmonaut/internal/browser"
	"github.com/jbro885/kosmonaut/internal/config"
	"github.com/jbro885/kosmonaut/internal/layout"
	"github.com/jbro885/kosmonaut/internal/observability"
)

// windowConfig returns the window geometry after config, env and flag
// resolution.
func windowConfig() (config.WindowConfig, error) {
	var cfg config.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return config.WindowConfig{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg.Window, nil
}

// layoutDocument runs the whole pipeline for an HTML file: load, style,
// build the box tree and lay it out against the window. Extra stylesheets
// apply after the document's own, so they win specificity ties.
func layoutDocument(path string, window config.WindowConfig, extraCSS []string) (*browser.Document, *layout.LayoutBox, error) {
	doc, err := browser.LoadDocument(path)
	if err != nil {
		return nil, nil, err
	}
	for _, source := range extraCSS {
		doc.AddStylesheet(source)
	}

	styleRoot := doc.StyleTree(window.Width, window.Height)
	engine := layout.NewEngine(window.Width, window.Height, window.ScaleFactor)
	tree := engine.LayoutTree(styleRoot)
	if tree == nil {
		return doc, nil, fmt.Errorf("document %q produced no layout boxes", path)
	}
	return doc, tree, nil
}

// runRender is the root command's behavior: lay the page out and report
// what a paint pass would receive. Rasterization is not implemented.
func runRender(path string) error {
	logger := observability.GetLogger()

	window, err := windowConfig()
	if err != nil {
		return err
	}

	doc, tree, err := layoutDocument(path, window, nil)
	if err != nil {
		return err
	}

	root := tree.Dimensions.MarginBox()
	logger.Info("Layout complete",
		zap.String("document", path),
		zap.String("title", doc.Title()),
		zap.Int("boxes", countBoxes(tree)),
		zap.Float64("content_width", root.Width),
		zap.Float64("content_height", root.Height))

	fmt.Printf("Laid out %q: %d boxes, %gx%g device px\n", path, countBoxes(tree), root.Width, root.Height)
	return nil
}

func countBoxes(b *layout.LayoutBox) int {
	n := 1
	for _, child := range b.Children {
		n += countBoxes(child)
	}
	return n
}
