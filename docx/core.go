package docx

import (
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/tsawler/docxconv/model"
)

// parseCore reads Dublin Core metadata from docProps/core.xml.
func (b *builder) parseCore(root *xmlquery.Node) model.Metadata {
	var meta model.Metadata
	props := xmlquery.QuerySelector(root, exprCore)
	if props == nil {
		return meta
	}
	for _, c := range elements(props) {
		text := strings.TrimSpace(c.InnerText())
		switch {
		case c.NamespaceURI == nsDC && c.Data == "title":
			meta.Title = text
		case c.NamespaceURI == nsDC && c.Data == "subject":
			meta.Subject = text
		case c.NamespaceURI == nsDC && c.Data == "creator":
			meta.Creator = text
		case c.NamespaceURI == nsCP && c.Data == "keywords":
			meta.Keywords = splitKeywords(text)
		case c.NamespaceURI == nsDCTerms && c.Data == "created":
			meta.Created = text
		case c.NamespaceURI == nsDCTerms && c.Data == "modified":
			meta.Modified = text
		}
	}
	return meta
}

// splitKeywords splits on commas or semicolons and drops empty entries.
func splitKeywords(s string) []string {
	if s == "" {
		return nil
	}
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' })
	out := fields[:0]
	for _, kw := range fields {
		if kw = strings.TrimSpace(kw); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}
