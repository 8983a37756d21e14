// Package docx builds a typed document model from the XML parts of a DOCX
// (Office Open XML) package.
//
// The builder is a structural translation: it records what the XML declares
// and leaves cascading (styles, numbering counters, borders) to the
// resolution packages. Unknown elements and attribute values are skipped and
// reported at debug level with kind UnsupportedProperty.
//
//	doc, err := docx.Open("report.docx")
//	if errors.Is(err, docx.ErrMalformedPackage) {
//	    // not a usable DOCX file
//	}
package docx

import (
	"io"
	"log/slog"

	"github.com/tsawler/docxconv/model"
	"github.com/tsawler/docxconv/ooxml"
)

// Parts is the set of parsed part trees a document is built from.
type Parts = ooxml.Parts

// PackageError reports a missing or unreadable required part.
type PackageError = ooxml.PackageError

// ErrMalformedPackage matches every error caused by a broken package.
var ErrMalformedPackage = ooxml.ErrMalformedPackage

// ErrNotWordDocument is wrapped when the input is recognizably some other
// format, such as a PDF or a spreadsheet package.
var ErrNotWordDocument = ooxml.ErrNotWordDocument

// Option configures Build and Open.
type Option func(*builder)

// WithLogger sets the logger that receives recovered anomalies.
// A nil logger discards them.
func WithLogger(l *slog.Logger) Option {
	return func(b *builder) {
		if l != nil {
			b.log = l
		}
	}
}

// Open reads a DOCX file and builds its document model. Referenced images
// are loaded into memory, so the returned document does not keep the file
// open.
func Open(filename string, opts ...Option) (*model.Document, error) {
	pkg, err := ooxml.Open(filename)
	if err != nil {
		return nil, err
	}
	defer pkg.Close()
	return buildPackage(pkg, opts)
}

// OpenReader is Open for an in-memory or otherwise random-access package.
func OpenReader(ra io.ReaderAt, size int64, opts ...Option) (*model.Document, error) {
	pkg, err := ooxml.OpenReader(ra, size)
	if err != nil {
		return nil, err
	}
	return buildPackage(pkg, opts)
}

func buildPackage(pkg *ooxml.Package, opts []Option) (*model.Document, error) {
	parts, err := pkg.Parts()
	if err != nil {
		return nil, err
	}
	doc, err := Build(parts, opts...)
	if err != nil {
		return nil, err
	}

	// Eagerly copy the media the body references.
	assets := make(model.AssetMap)
	for _, id := range drawingRelIDs(doc) {
		if a, ok := pkg.Asset(id); ok {
			assets[id] = a
		}
	}
	doc.Assets = assets
	return doc, nil
}

// Build turns parsed parts into a document model. Only parts.Document is
// required; a nil document or a document without w:body yields a
// PackageError.
func Build(parts Parts, opts ...Option) (*model.Document, error) {
	b := newBuilder(opts...)
	return b.build(parts)
}

// drawingRelIDs collects the image relationship ids used anywhere in the
// document, in first-use order.
func drawingRelIDs(doc *model.Document) []string {
	var ids []string
	seen := make(map[string]bool)
	var walk func(blocks []model.Block)
	walk = func(blocks []model.Block) {
		for _, blk := range blocks {
			switch v := blk.(type) {
			case *model.Paragraph:
				for _, d := range v.Drawings() {
					if d.RelID != "" && !seen[d.RelID] {
						seen[d.RelID] = true
						ids = append(ids, d.RelID)
					}
				}
			case *model.Table:
				for _, row := range v.Rows {
					for _, cell := range row.Cells {
						walk(cell.Content)
					}
				}
			}
		}
	}
	walk(doc.Body.Blocks)
	return ids
}
