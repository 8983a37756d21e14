package style

import (
	"strconv"
	"strings"

	"github.com/tsawler/docxconv/model"
)

// ParagraphStyle is the effective formatting of a paragraph. Lengths are in
// twips.
type ParagraphStyle struct {
	StyleID   string // the paragraph style in effect, "" if none
	StyleName string

	Alignment   model.Alignment
	IndentLeft  int
	IndentRight int
	Hanging     int
	FirstLine   int

	// DirectIndent is true when the paragraph itself declares w:ind.
	// Numbering indentation applies only when it is false.
	DirectIndent bool

	SpaceBefore int
	SpaceAfter  int
	Line        int // 0 means single spacing
	LineRule    model.LineRule

	// Numbering is the list reference, from the paragraph or its style.
	// NumID is "" when the paragraph is not a list item.
	Numbering model.NumberingRef

	// HeadingLevel is 1..9 for headings, 0 otherwise.
	HeadingLevel int

	PageBreakBefore bool
	KeepNext        bool
}

// IsListItem reports whether the paragraph references a numbering instance.
// numId 0 removes numbering.
func (ps ParagraphStyle) IsListItem() bool {
	return ps.Numbering.NumID != "" && ps.Numbering.NumID != "0"
}

// ResolveParagraph returns the effective formatting of p: direct formatting,
// then the paragraph style chain, then the document defaults.
func (r *Resolver) ResolveParagraph(p *model.Paragraph) ParagraphStyle {
	var props model.ParagraphProperties
	if p != nil {
		props = p.Properties
	}
	styleID := r.paragraphStyleID(p)
	fillParagraph(&props, r.paragraphLayer(styleID))
	defPara, _ := r.defaults()
	fillParagraph(&props, defPara)

	ps := ParagraphStyle{
		StyleID:   styleID,
		Alignment: model.AlignLeft,
		LineRule:  model.LineAuto,
	}
	if def, ok := r.styles.Get(styleID); ok {
		ps.StyleName = def.Name
	}
	if p != nil {
		ps.DirectIndent = !p.Properties.Indent.IsZero()
	}
	if props.Alignment != nil {
		ps.Alignment = *props.Alignment
	}
	ps.IndentLeft = deref(props.Indent.Left)
	ps.IndentRight = deref(props.Indent.Right)
	ps.Hanging = deref(props.Indent.Hanging)
	ps.FirstLine = deref(props.Indent.FirstLine)
	if ps.Hanging > 0 {
		ps.FirstLine = 0
	}
	ps.SpaceBefore = deref(props.Spacing.Before)
	ps.SpaceAfter = deref(props.Spacing.After)
	ps.Line = deref(props.Spacing.Line)
	if props.Spacing.LineRule != nil {
		ps.LineRule = *props.Spacing.LineRule
	}
	if props.Numbering != nil {
		ps.Numbering = *props.Numbering
	}
	ps.PageBreakBefore = deref(props.PageBreakBefore)
	ps.KeepNext = deref(props.KeepNext)
	ps.HeadingLevel = r.headingLevel(styleID, props.OutlineLevel)
	if ps.HeadingLevel == 0 && p != nil {
		// An undefined built-in style id still names a heading.
		ps.HeadingLevel = builtinHeadings[strings.ToLower(p.Properties.StyleID)]
	}
	return ps
}

// builtinHeadings maps Word's built-in heading style ids to levels.
var builtinHeadings = map[string]int{
	"heading1": 1, "heading2": 2, "heading3": 3,
	"heading4": 4, "heading5": 5, "heading6": 6,
	"heading7": 7, "heading8": 8, "heading9": 9,
	"title": 1, "subtitle": 2,
}

// headingLevel detects headings from, in order, built-in heading style ids
// anywhere in the chain, a "heading N" style name, and the outline level.
// Outline level 9 means body text.
func (r *Resolver) headingLevel(styleID string, outline *int) int {
	for _, def := range r.Chain(styleID) {
		if level, ok := builtinHeadings[strings.ToLower(def.ID)]; ok {
			return level
		}
		if level := headingFromName(def.Name); level > 0 {
			return level
		}
	}
	if outline != nil && *outline >= 0 && *outline <= 8 {
		return *outline + 1
	}
	return 0
}

func headingFromName(name string) int {
	name = strings.ToLower(strings.TrimSpace(name))
	if !strings.HasPrefix(name, "heading ") {
		return 0
	}
	level, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(name, "heading ")))
	if err != nil || level < 1 || level > 9 {
		return 0
	}
	return level
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
