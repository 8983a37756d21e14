package docx

import (
	"github.com/antchfx/xmlquery"

	"github.com/tsawler/docxconv/model"
)

// parseStyles fills the style table from styles.xml.
func (b *builder) parseStyles(root *xmlquery.Node, styles *model.Styles) {
	if n := xmlquery.QuerySelector(root, exprRPrDefault); n != nil {
		styles.DefaultRun = b.runProperties(n)
	}
	if n := xmlquery.QuerySelector(root, exprPPrDefault); n != nil {
		styles.DefaultParagraph = b.paragraphProperties(n)
	}

	for _, n := range xmlquery.QuerySelectorAll(root, exprStyles) {
		if def := b.styleDefinition(n); def != nil {
			styles.Add(def)
		}
	}
}

func (b *builder) styleDefinition(n *xmlquery.Node) *model.StyleDefinition {
	id, _ := attr(n, "styleId")
	if id == "" {
		return nil
	}
	def := &model.StyleDefinition{ID: id, Kind: model.StyleParagraph}

	typ, _ := attr(n, "type")
	switch model.StyleKind(typ) {
	case model.StyleParagraph, model.StyleCharacter, model.StyleTable, model.StyleNumbering:
		def.Kind = model.StyleKind(typ)
	case "":
	default:
		b.unsupportedValue("style type", typ)
	}
	if d, ok := attr(n, "default"); ok {
		def.Default = d == "1" || d == "true" || d == "on"
	}

	for _, c := range elements(n) {
		if !inW(c) {
			continue
		}
		switch c.Data {
		case "name":
			def.Name = val(c)
		case "basedOn":
			def.BasedOn = val(c)
		case "pPr":
			def.Paragraph = b.paragraphProperties(c)
		case "rPr":
			def.Run = b.runProperties(c)
		case "tblPr":
			def.Table = b.tableProperties(c)
		case "tcPr":
			def.Cell = b.cellProperties(c)
		}
	}
	return def
}
