package docxconv

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/tsawler/docxconv/config"
	"github.com/tsawler/docxconv/docx"
	"github.com/tsawler/docxconv/htmlrender"
	"github.com/tsawler/docxconv/model"
	"github.com/tsawler/docxconv/textrender"
)

// Converter provides a fluent interface for converting a document.
// Each configuration method returns a new Converter, so a partially
// configured Converter can be shared and reused.
type Converter struct {
	source func(opts ...docx.Option) (*model.Document, error)
	cfg    config.Config
	logger *slog.Logger
}

// clone returns a copy of c. Config holds no reference types, so a plain
// copy is enough to keep chains independent.
func (c *Converter) clone() *Converter {
	next := *c
	return &next
}

// ============================================================================
// Configuration Methods (return new Converter instance)
// ============================================================================

// Config replaces every option with cfg.
func (c *Converter) Config(cfg config.Config) *Converter {
	next := c.clone()
	next.cfg = cfg
	return next
}

// SemanticTags renders headings as <h1>-<h6>, emphasis as <strong>, <em>
// and friends, and header rows with <th>.
func (c *Converter) SemanticTags() *Converter {
	next := c.clone()
	next.cfg.SemanticTags = true
	return next
}

// FragmentOnly omits the document shell and emits only the body content.
func (c *Converter) FragmentOnly() *Converter {
	next := c.clone()
	next.cfg.FragmentOnly = true
	return next
}

// StyleMode selects inline styles, CSS classes or no CSS at all.
//
// Example:
//
//	docxconv.Open("report.docx").StyleMode(config.StyleClasses).HTML()
func (c *Converter) StyleMode(m config.StyleMode) *Converter {
	next := c.clone()
	next.cfg.StyleMode = m
	return next
}

// PrintStyles adds @media print rules to the stylesheet.
func (c *Converter) PrintStyles() *Converter {
	next := c.clone()
	next.cfg.IncludePrintStyles = true
	return next
}

// Title sets the HTML <title>, overriding the document's core properties.
func (c *Converter) Title(s string) *Converter {
	next := c.clone()
	next.cfg.Title = s
	return next
}

// Language sets the BCP 47 language of the <html> element.
func (c *Converter) Language(s string) *Converter {
	next := c.clone()
	next.cfg.Language = s
	return next
}

// Markdown decorates text output with markdown emphasis and headings.
func (c *Converter) Markdown() *Converter {
	next := c.clone()
	next.cfg.TextFormatting = config.FormatMarkdown
	return next
}

// TableMode selects how text output draws tables.
func (c *Converter) TableMode(m config.TableMode) *Converter {
	next := c.clone()
	next.cfg.TableMode = m
	return next
}

// ParagraphSeparator sets the string placed between blocks in text output.
func (c *Converter) ParagraphSeparator(s string) *Converter {
	next := c.clone()
	next.cfg.ParagraphSeparator = s
	return next
}

// Logger sets the logger that receives recoverable anomalies such as
// unsupported properties or missing images.
func (c *Converter) Logger(l *slog.Logger) *Converter {
	next := c.clone()
	next.logger = l
	return next
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Document parses the package and returns its model.
func (c *Converter) Document() (*model.Document, error) {
	if c.source == nil {
		return nil, errors.New("docxconv: no document source")
	}
	doc, err := c.source(docx.WithLogger(c.logger))
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	return doc, nil
}

// HTML converts the document to HTML.
func (c *Converter) HTML() (string, error) {
	doc, err := c.Document()
	if err != nil {
		return "", err
	}
	return htmlrender.Render(doc, c.cfg, htmlrender.WithLogger(c.logger))
}

// Text converts the document to text.
func (c *Converter) Text() (string, error) {
	doc, err := c.Document()
	if err != nil {
		return "", err
	}
	return textrender.Render(doc, c.cfg, textrender.WithLogger(c.logger))
}
