// Package style computes effective formatting by walking the style cascade.
//
// Every property is resolved independently: the first level of the cascade
// that declares it wins. For a run the levels are direct formatting, the
// character style chain, the paragraph style chain, the document defaults
// and finally built-in defaults. The resolved structs are plain values with
// every field populated.
//
// A Resolver is cheap to create and owns its caches, so each render pass
// should use its own.
package style

import (
	"log/slog"

	"github.com/tsawler/docxconv/border"
	"github.com/tsawler/docxconv/model"
)

// Built-in defaults used when neither the styles nor the document defaults
// declare a value.
const (
	DefaultFontFamily = "Calibri"
	DefaultFontSize   = 22 // half-points
)

// Resolver resolves paragraph, run, table and cell formatting of one
// document.
type Resolver struct {
	doc    *model.Document
	styles *model.Styles
	log    *slog.Logger

	chains map[string][]*model.StyleDefinition

	// merged style layers by style id
	paraLayers  map[string]model.ParagraphProperties
	runLayers   map[string]model.RunProperties
	tableLayers map[string]tableLayer
	layouts     map[*model.Table][][]border.Position
}

type tableLayer struct {
	table model.TableProperties
	cell  model.CellProperties
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger for cyclic style chain warnings.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.log = l
		}
	}
}

// New creates a resolver for doc. A nil document resolves everything to
// built-in defaults.
func New(doc *model.Document, opts ...Option) *Resolver {
	r := &Resolver{
		doc:         doc,
		log:         slog.New(slog.DiscardHandler),
		chains:      make(map[string][]*model.StyleDefinition),
		paraLayers:  make(map[string]model.ParagraphProperties),
		runLayers:   make(map[string]model.RunProperties),
		tableLayers: make(map[string]tableLayer),
		layouts:     make(map[*model.Table][][]border.Position),
	}
	if doc != nil {
		r.styles = doc.Styles
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Chain returns the style with the given id followed by its basedOn
// ancestors, nearest first. Unknown ids end the chain. A cycle ends the chain
// at the first repeated id and is logged as a warning.
func (r *Resolver) Chain(styleID string) []*model.StyleDefinition {
	if styleID == "" {
		return nil
	}
	if chain, ok := r.chains[styleID]; ok {
		return chain
	}

	var chain []*model.StyleDefinition
	visited := make(map[string]bool)
	for id := styleID; id != ""; {
		if visited[id] {
			r.log.Warn("cyclic basedOn chain",
				slog.String("kind", model.KindCyclicStyleChain),
				slog.String("style", styleID),
				slog.String("repeated", id))
			break
		}
		visited[id] = true
		def, ok := r.styles.Get(id)
		if !ok {
			break
		}
		chain = append(chain, def)
		id = def.BasedOn
	}
	r.chains[styleID] = chain
	return chain
}

// paragraphStyleID returns the style a paragraph uses: its own pStyle or the
// document's default paragraph style.
func (r *Resolver) paragraphStyleID(p *model.Paragraph) string {
	if p != nil && p.Properties.StyleID != "" {
		if _, ok := r.styles.Get(p.Properties.StyleID); ok {
			return p.Properties.StyleID
		}
	}
	if def, ok := r.styles.Default(model.StyleParagraph); ok {
		return def.ID
	}
	return ""
}

func (r *Resolver) paragraphLayer(styleID string) model.ParagraphProperties {
	if layer, ok := r.paraLayers[styleID]; ok {
		return layer
	}
	var layer model.ParagraphProperties
	for _, def := range r.Chain(styleID) {
		fillParagraph(&layer, def.Paragraph)
	}
	r.paraLayers[styleID] = layer
	return layer
}

func (r *Resolver) runLayer(styleID string) model.RunProperties {
	if layer, ok := r.runLayers[styleID]; ok {
		return layer
	}
	var layer model.RunProperties
	for _, def := range r.Chain(styleID) {
		fillRun(&layer, def.Run)
	}
	r.runLayers[styleID] = layer
	return layer
}

func (r *Resolver) tableLayer(styleID string) tableLayer {
	if layer, ok := r.tableLayers[styleID]; ok {
		return layer
	}
	var layer tableLayer
	for _, def := range r.Chain(styleID) {
		fillTable(&layer.table, def.Table)
		fillCell(&layer.cell, def.Cell)
	}
	r.tableLayers[styleID] = layer
	return layer
}

func (r *Resolver) defaults() (model.ParagraphProperties, model.RunProperties) {
	if r.styles == nil {
		return model.ParagraphProperties{}, model.RunProperties{}
	}
	return r.styles.DefaultParagraph, r.styles.DefaultRun
}
