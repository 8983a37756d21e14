package docx

import (
	"github.com/antchfx/xmlquery"

	"github.com/tsawler/docxconv/model"
)

// table converts a w:tbl element, including nested tables in its cells.
func (b *builder) table(n *xmlquery.Node) *model.Table {
	t := &model.Table{}
	if tblPr := child(n, "tblPr"); tblPr != nil {
		t.Properties = b.tableProperties(tblPr)
	}
	for _, col := range children(child(n, "tblGrid"), "gridCol") {
		w, _ := intAttr(col, "w")
		t.Grid = append(t.Grid, w)
	}

	for _, c := range elements(n) {
		switch {
		case isW(c, "tr"):
			t.Rows = append(t.Rows, b.row(c))
		case isW(c, "sdt"), isW(c, "ins"), isW(c, "customXml"):
			// rows wrapped in content controls or revisions
			for _, tr := range wrappedRows(c) {
				t.Rows = append(t.Rows, b.row(tr))
			}
		}
	}

	computeRowSpans(t)
	return t
}

func wrappedRows(n *xmlquery.Node) []*xmlquery.Node {
	if isW(n, "sdt") {
		n = child(n, "sdtContent")
	}
	return children(n, "tr")
}

func (b *builder) row(n *xmlquery.Node) *model.TableRow {
	row := &model.TableRow{}
	if trPr := child(n, "trPr"); trPr != nil {
		if h := child(trPr, "trHeight"); h != nil {
			row.Properties.Height, _ = intAttr(h, "val")
		}
		if h := child(trPr, "tblHeader"); h != nil {
			row.Properties.IsHeader, _ = onOff(h)
		}
	}

	var cells []*xmlquery.Node
	for _, c := range elements(n) {
		switch {
		case isW(c, "tc"):
			cells = append(cells, c)
		case isW(c, "sdt"):
			cells = append(cells, children(child(c, "sdtContent"), "tc")...)
		}
	}

	for _, tc := range cells {
		tcPr := child(tc, "tcPr")
		// Legacy horizontal merge: fold continuation cells into the span of
		// the cell on their left.
		if hm := child(tcPr, "hMerge"); hm != nil && val(hm) != "restart" && len(row.Cells) > 0 {
			row.Cells[len(row.Cells)-1].Properties.GridSpan++
			continue
		}
		cell := &model.TableCell{
			Properties: model.CellProperties{GridSpan: 1},
			RowSpan:    1,
		}
		if tcPr != nil {
			cell.Properties = b.cellProperties(tcPr)
		}
		cell.Content = b.blocks(tc)
		row.Cells = append(row.Cells, cell)
	}
	return row
}

// computeRowSpans sets RowSpan on every MergeRestart cell by counting the
// MergeContinue cells below it at the same grid column. A continuation with
// nothing to continue is promoted to a restart.
func computeRowSpans(t *model.Table) {
	// cell at each (row, grid column) where a cell starts
	starts := make([]map[int]*model.TableCell, len(t.Rows))
	for r, row := range t.Rows {
		starts[r] = make(map[int]*model.TableCell, len(row.Cells))
		col := 0
		for _, cell := range row.Cells {
			starts[r][col] = cell
			col += cell.ColSpan()
		}
	}

	for r, row := range t.Rows {
		col := 0
		for _, cell := range row.Cells {
			cell.RowSpan = 1
			if cell.Properties.Merge == model.MergeContinue {
				above := (*model.TableCell)(nil)
				if r > 0 {
					above = starts[r-1][col]
				}
				if above == nil || above.Properties.Merge == model.MergeNone {
					cell.Properties.Merge = model.MergeRestart
				}
			}
			col += cell.ColSpan()
		}
	}

	for r, row := range t.Rows {
		col := 0
		for _, cell := range row.Cells {
			if cell.Properties.Merge == model.MergeRestart {
				for below := r + 1; below < len(t.Rows); below++ {
					next := starts[below][col]
					if next == nil || next.Properties.Merge != model.MergeContinue {
						break
					}
					cell.RowSpan++
				}
			}
			col += cell.ColSpan()
		}
	}
}
