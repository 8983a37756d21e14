package ooxml

import (
	"github.com/antchfx/xmlquery"

	"github.com/tsawler/docxconv/model"
)

// Parts is the set of parsed part trees a document is built from.
// Document is required; the others may be nil.
type Parts struct {
	Document      *xmlquery.Node
	Styles        *xmlquery.Node
	Numbering     *xmlquery.Node
	Relationships *xmlquery.Node
	Core          *xmlquery.Node

	// Assets resolves image relationship ids. May be nil.
	Assets model.AssetSource
}
