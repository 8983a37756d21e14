package model

import "strings"

// Alignment is paragraph justification (w:jc).
type Alignment string

// Alignment values. OOXML also uses "start"/"end"; the builder maps them to
// left/right.
const (
	AlignLeft       Alignment = "left"
	AlignCenter     Alignment = "center"
	AlignRight      Alignment = "right"
	AlignJustify    Alignment = "both"
	AlignDistribute Alignment = "distribute"
)

// LineRule says how Spacing.Line is interpreted.
type LineRule string

// Line spacing rules.
const (
	LineAuto    LineRule = "auto"    // Line is in 240ths of a line
	LineExact   LineRule = "exact"   // Line is in twips
	LineAtLeast LineRule = "atLeast" // Line is in twips
)

// Paragraph is a w:p element.
type Paragraph struct {
	Properties ParagraphProperties
	Content    []Inline
}

// ParagraphProperties holds direct paragraph formatting (w:pPr). All lengths
// are in twips.
type ParagraphProperties struct {
	StyleID         string
	Alignment       *Alignment
	Indent          Indent
	Spacing         Spacing
	Numbering       *NumberingRef
	OutlineLevel    *int
	PageBreakBefore *bool
	KeepNext        *bool

	// MarkRun holds the paragraph mark run properties (w:pPr/w:rPr).
	MarkRun RunProperties
}

// Indent is w:ind. Hanging and FirstLine are mutually exclusive in Word;
// when both are present Hanging wins.
type Indent struct {
	Left      *int
	Right     *int
	Hanging   *int
	FirstLine *int
}

// IsZero reports whether no indent is declared.
func (i Indent) IsZero() bool {
	return i.Left == nil && i.Right == nil && i.Hanging == nil && i.FirstLine == nil
}

// Spacing is w:spacing.
type Spacing struct {
	Before   *int
	After    *int
	Line     *int
	LineRule *LineRule
}

// NumberingRef is w:numPr: a reference to a numbering instance and level.
type NumberingRef struct {
	NumID string
	Level int
}

// Runs returns the paragraph's runs in order, skipping drawings.
func (p *Paragraph) Runs() []*Run {
	var out []*Run
	for _, in := range p.Content {
		if r, ok := in.(*Run); ok {
			out = append(out, r)
		}
	}
	return out
}

// Drawings returns the paragraph's drawings in order.
func (p *Paragraph) Drawings() []*Drawing {
	var out []*Drawing
	for _, in := range p.Content {
		if d, ok := in.(*Drawing); ok {
			out = append(out, d)
		}
	}
	return out
}

// Text returns the concatenated text of all runs without any formatting or
// numbering.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs() {
		sb.WriteString(r.Text)
	}
	return sb.String()
}
