// Package docxconv converts Word (.docx) documents to semantic HTML or
// plain text.
//
// Basic usage:
//
//	html, err := docxconv.ToHTML("report.docx", config.Default())
//	if err != nil {
//	    // handle error
//	}
//
// With the fluent API:
//
//	text, err := docxconv.Open("report.docx").
//	    Markdown().
//	    TableMode(config.TableASCII).
//	    Text()
//
// The docx, style, numbering, border, htmlrender and textrender packages
// are available for finer control.
package docxconv

import (
	"io"

	"github.com/tsawler/docxconv/config"
	"github.com/tsawler/docxconv/docx"
	"github.com/tsawler/docxconv/model"
)

// ToHTML converts the document at path to HTML.
func ToHTML(path string, cfg config.Config) (string, error) {
	return Open(path).Config(cfg).HTML()
}

// ToText converts the document at path to text.
func ToText(path string, cfg config.Config) (string, error) {
	return Open(path).Config(cfg).Text()
}

// Open returns a Converter for the document at filename. The file is read
// by each terminal operation.
//
// Example:
//
//	html, err := docxconv.Open("report.docx").SemanticTags().HTML()
func Open(filename string) *Converter {
	return &Converter{
		source: func(opts ...docx.Option) (*model.Document, error) {
			return docx.Open(filename, opts...)
		},
		cfg: config.Default(),
	}
}

// FromReader returns a Converter reading the package from ra. The caller
// keeps ownership of ra.
func FromReader(ra io.ReaderAt, size int64) *Converter {
	return &Converter{
		source: func(opts ...docx.Option) (*model.Document, error) {
			return docx.OpenReader(ra, size, opts...)
		},
		cfg: config.Default(),
	}
}

// FromDocument returns a Converter for an already built document.
func FromDocument(doc *model.Document) *Converter {
	return &Converter{
		source: func(...docx.Option) (*model.Document, error) { return doc, nil },
		cfg:    config.Default(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	html := docxconv.Must(docxconv.Open("report.docx").HTML())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
