package model

// Document represents a complete DOCX document.
type Document struct {
	Metadata  Metadata
	Styles    *Styles
	Numbering *NumberingCatalog
	Body      Body
	Section   Section

	// Links maps hyperlink relationship ids to their targets.
	Links map[string]string

	// Assets looks up binary parts (images) by relationship id.
	// It may be nil when the document has no media.
	Assets AssetSource
}

// Metadata contains document-level information from docProps/core.xml.
type Metadata struct {
	Title    string
	Subject  string
	Creator  string
	Keywords []string
	Created  string
	Modified string
}

// Section holds page geometry from the final w:sectPr, in twips.
// Zero values mean "not declared".
type Section struct {
	PageWidth    int
	PageHeight   int
	MarginTop    int
	MarginRight  int
	MarginBottom int
	MarginLeft   int
}

// NewDocument creates an empty document with empty style and numbering
// tables.
func NewDocument() *Document {
	return &Document{
		Styles:    NewStyles(),
		Numbering: NewNumberingCatalog(),
		Links:     make(map[string]string),
	}
}

// Asset is a binary part referenced from the document.
type Asset struct {
	Target      string // part name inside the package
	ContentType string // e.g. image/png
	Data        []byte
}

// AssetSource resolves relationship ids to binary assets.
type AssetSource interface {
	Asset(relID string) (Asset, bool)
}

// AssetMap is an in-memory AssetSource.
type AssetMap map[string]Asset

// Asset implements AssetSource.
func (m AssetMap) Asset(relID string) (Asset, bool) {
	a, ok := m[relID]
	return a, ok
}

// Block is a body-level node: either *Paragraph or *Table.
type Block interface {
	block()
}

// Inline is a paragraph-level node: either *Run or *Drawing.
type Inline interface {
	inline()
}

func (*Paragraph) block() {}
func (*Table) block()     {}
func (*Run) inline()      {}
func (*Drawing) inline()  {}

// Body is the ordered sequence of top-level blocks.
type Body struct {
	Blocks []Block
}

// Append adds blocks to the end of the body.
func (b *Body) Append(blocks ...Block) {
	b.Blocks = append(b.Blocks, blocks...)
}

// Len returns the number of top-level blocks.
func (b *Body) Len() int {
	return len(b.Blocks)
}

// Paragraphs returns the top-level paragraphs in order, skipping tables.
func (b *Body) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, blk := range b.Blocks {
		if p, ok := blk.(*Paragraph); ok {
			out = append(out, p)
		}
	}
	return out
}

// Tables returns the top-level tables in order.
func (b *Body) Tables() []*Table {
	var out []*Table
	for _, blk := range b.Blocks {
		if t, ok := blk.(*Table); ok {
			out = append(out, t)
		}
	}
	return out
}
