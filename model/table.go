package model

// WidthType is the unit of a w:tblW/w:tcW value.
type WidthType string

// Width types.
const (
	WidthAuto    WidthType = "auto"
	WidthPercent WidthType = "pct" // fiftieths of a percent
	WidthTwips   WidthType = "dxa"
	WidthNil     WidthType = "nil"
)

// Width is a table or cell width.
type Width struct {
	Type  WidthType
	Value int
}

// Percent returns the width as a percentage when Type is pct.
func (w Width) Percent() float64 {
	return float64(w.Value) / 50
}

// TableLayout is w:tblLayout.
type TableLayout string

// Table layouts.
const (
	LayoutAuto  TableLayout = "autofit"
	LayoutFixed TableLayout = "fixed"
)

// Table is a w:tbl element.
type Table struct {
	Properties TableProperties
	Grid       []int // column widths in twips
	Rows       []*TableRow
}

// TableProperties holds direct table formatting (w:tblPr).
type TableProperties struct {
	StyleID   string
	Borders   BorderSet
	Width     *Width
	Layout    *TableLayout
	Alignment *Alignment
	Shading   *string
}

// TableRow is a w:tr element.
type TableRow struct {
	Properties RowProperties
	Cells      []*TableCell
}

// RowProperties holds w:trPr.
type RowProperties struct {
	Height   int // twips, 0 = auto
	IsHeader bool
}

// MergeState is the vertical merge state of a cell.
type MergeState int

const (
	MergeNone     MergeState = iota // not vertically merged
	MergeRestart                    // starts a vertical span
	MergeContinue                   // continues the span above; content is ignored
)

// TableCell is a w:tc element.
type TableCell struct {
	Properties CellProperties
	Content    []Block

	// RowSpan is the number of rows a MergeRestart cell covers, computed by
	// the builder. It is 1 for every other cell.
	RowSpan int
}

// CellProperties holds direct cell formatting (w:tcPr).
type CellProperties struct {
	Borders  BorderSet // InsideH/InsideV unused
	Shading  *string   // fill color hex
	Width    *Width
	VAlign   *string // top, center, bottom
	GridSpan int     // >= 1
	Merge    MergeState
}

// ColSpan returns the cell's grid span, at least 1.
func (c *TableCell) ColSpan() int {
	if c == nil || c.Properties.GridSpan < 1 {
		return 1
	}
	return c.Properties.GridSpan
}

// IsContinuation reports whether the cell continues a vertical merge.
func (c *TableCell) IsContinuation() bool {
	return c != nil && c.Properties.Merge == MergeContinue
}

// Paragraphs returns the cell's direct paragraphs, skipping nested tables.
func (c *TableCell) Paragraphs() []*Paragraph {
	if c == nil {
		return nil
	}
	var out []*Paragraph
	for _, blk := range c.Content {
		if p, ok := blk.(*Paragraph); ok {
			out = append(out, p)
		}
	}
	return out
}

// ColumnCount returns the number of grid columns: the grid length, or the
// widest row's span total when the grid is empty.
func (t *Table) ColumnCount() int {
	if t == nil {
		return 0
	}
	if len(t.Grid) > 0 {
		return len(t.Grid)
	}
	max := 0
	for _, row := range t.Rows {
		if row == nil {
			continue
		}
		n := 0
		for _, c := range row.Cells {
			n += c.ColSpan()
		}
		if n > max {
			max = n
		}
	}
	return max
}
