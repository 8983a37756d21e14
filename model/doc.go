// Package model provides the document object model for converted DOCX
// content.
//
// The model is a structural translation of a WordprocessingML package: it
// records what the document declares, never what it resolves to. Effective
// formatting is computed by the style, numbering and border packages, and the
// renderers consume both.
//
// # Document Structure
//
// A [Document] owns the style table, the numbering catalog and the [Body]:
//
//	doc := model.NewDocument()
//	doc.Body.Append(para)
//
// Body content is an ordered list of [Block] values. A block is either a
// [*Paragraph] or a [*Table]. Paragraph content is an ordered list of
// [Inline] values, each a [*Run] or a [*Drawing]. Table cells hold blocks
// again, so tables nest. Ownership is strictly tree shaped.
//
// # Optional Properties
//
// Properties that a document may or may not declare are pointers. A nil
// pointer means "not declared here", which lets a resolver fall through to
// the next level of the cascade:
//
//	if p.Properties.Alignment != nil {
//	    // direct formatting wins
//	}
//
// # Units
//
// Lengths are stored in the units the XML uses: twips for indents and
// spacing, half-points for font sizes, eighths of a point for borders and
// EMUs for drawing extents. See package units for conversions.
//
// A Document is immutable once built and safe to share between goroutines.
package model
