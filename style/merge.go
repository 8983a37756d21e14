package style

import (
	"github.com/tsawler/docxconv/border"
	"github.com/tsawler/docxconv/model"
)

// The fill functions copy every property src declares and dst does not.
// Applied nearest level first, they implement first-definer-wins.

func fillParagraph(dst *model.ParagraphProperties, src model.ParagraphProperties) {
	if dst.StyleID == "" {
		dst.StyleID = src.StyleID
	}
	setIfNil(&dst.Alignment, src.Alignment)
	setIfNil(&dst.Indent.Left, src.Indent.Left)
	setIfNil(&dst.Indent.Right, src.Indent.Right)
	// Hanging and first-line indents exclude each other, so they cascade as
	// one property.
	if dst.Indent.Hanging == nil && dst.Indent.FirstLine == nil {
		dst.Indent.Hanging = src.Indent.Hanging
		dst.Indent.FirstLine = src.Indent.FirstLine
	}
	setIfNil(&dst.Spacing.Before, src.Spacing.Before)
	setIfNil(&dst.Spacing.After, src.Spacing.After)
	if dst.Spacing.Line == nil {
		dst.Spacing.Line = src.Spacing.Line
		dst.Spacing.LineRule = src.Spacing.LineRule
	}
	setIfNil(&dst.Numbering, src.Numbering)
	setIfNil(&dst.OutlineLevel, src.OutlineLevel)
	setIfNil(&dst.PageBreakBefore, src.PageBreakBefore)
	setIfNil(&dst.KeepNext, src.KeepNext)
	fillRun(&dst.MarkRun, src.MarkRun)
}

func fillRun(dst *model.RunProperties, src model.RunProperties) {
	if dst.StyleID == "" {
		dst.StyleID = src.StyleID
	}
	setIfNil(&dst.Bold, src.Bold)
	setIfNil(&dst.Italic, src.Italic)
	setIfNil(&dst.Underline, src.Underline)
	setIfNil(&dst.Strike, src.Strike)
	setIfNil(&dst.DoubleStrike, src.DoubleStrike)
	setIfNil(&dst.SmallCaps, src.SmallCaps)
	setIfNil(&dst.AllCaps, src.AllCaps)
	setIfNil(&dst.Hidden, src.Hidden)
	setIfNil(&dst.Color, src.Color)
	setIfNil(&dst.Highlight, src.Highlight)
	setIfNil(&dst.FontSize, src.FontSize)
	setIfNil(&dst.FontFamily, src.FontFamily)
	setIfNil(&dst.VertAlign, src.VertAlign)
}

func fillTable(dst *model.TableProperties, src model.TableProperties) {
	if dst.StyleID == "" {
		dst.StyleID = src.StyleID
	}
	dst.Borders = border.Merge(dst.Borders, src.Borders)
	setIfNil(&dst.Width, src.Width)
	setIfNil(&dst.Layout, src.Layout)
	setIfNil(&dst.Alignment, src.Alignment)
	setIfNil(&dst.Shading, src.Shading)
}

func fillCell(dst *model.CellProperties, src model.CellProperties) {
	dst.Borders = border.Merge(dst.Borders, src.Borders)
	setIfNil(&dst.Shading, src.Shading)
	setIfNil(&dst.Width, src.Width)
	setIfNil(&dst.VAlign, src.VAlign)
}

func setIfNil[T any](dst **T, src *T) {
	if *dst == nil {
		*dst = src
	}
}
