package border

import "github.com/tsawler/docxconv/model"

// Position locates a cell on the table grid.
type Position struct {
	Row int // row index
	Col int // first grid column

	FirstRow bool
	LastRow  bool // true when a vertical span reaches the last row
	FirstCol bool
	LastCol  bool // true when a horizontal span reaches the last column
}

// Layout computes the grid position of every cell, indexed like
// tbl.Rows[r].Cells[c]. Rowspans come from the builder's RowSpan and
// colspans from the grid span.
func Layout(tbl *model.Table) [][]Position {
	if tbl == nil {
		return nil
	}
	cols := tbl.ColumnCount()
	rows := len(tbl.Rows)
	out := make([][]Position, rows)
	for r, row := range tbl.Rows {
		if row == nil {
			continue
		}
		out[r] = make([]Position, len(row.Cells))
		col := 0
		for c, cell := range row.Cells {
			span := cell.ColSpan()
			rowSpan := 1
			if cell != nil && cell.RowSpan > 1 {
				rowSpan = cell.RowSpan
			}
			out[r][c] = Position{
				Row:      r,
				Col:      col,
				FirstRow: r == 0,
				LastRow:  r+rowSpan >= rows,
				FirstCol: col == 0,
				LastCol:  col+span >= cols,
			}
			col += span
		}
	}
	return out
}

// ForCell resolves the effective edges of a cell. Each edge is independent:
// a declared cell edge wins (including a declared none); otherwise a
// boundary edge takes the table's outer edge and an interior edge takes the
// table's inside-h or inside-v line. InsideH and InsideV of the result are
// always nil.
func ForCell(tableLevel model.BorderSet, cell *model.TableCell, pos Position) model.BorderSet {
	var own model.BorderSet
	if cell != nil {
		own = cell.Properties.Borders
	}
	edge := func(declared, outer, inner *model.Border, boundary bool) *model.Border {
		if declared != nil {
			return declared
		}
		if boundary {
			return outer
		}
		return inner
	}
	return model.BorderSet{
		Top:    edge(own.Top, tableLevel.Top, tableLevel.InsideH, pos.FirstRow),
		Bottom: edge(own.Bottom, tableLevel.Bottom, tableLevel.InsideH, pos.LastRow),
		Left:   edge(own.Left, tableLevel.Left, tableLevel.InsideV, pos.FirstCol),
		Right:  edge(own.Right, tableLevel.Right, tableLevel.InsideV, pos.LastCol),
	}
}
