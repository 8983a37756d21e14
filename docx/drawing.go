package docx

import (
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/tsawler/docxconv/model"
)

// drawings converts the wp:inline and wp:anchor children of a w:drawing.
// Shapes without a picture blip produce nothing.
func (b *builder) drawings(n *xmlquery.Node) []model.Inline {
	var out []model.Inline
	for _, c := range elements(n) {
		if c.NamespaceURI != nsWP {
			continue
		}
		var d *model.Drawing
		switch c.Data {
		case "inline":
			d = b.drawing(c)
		case "anchor":
			d = b.drawing(c)
			if d != nil {
				b.anchor(c, d)
			}
		default:
			b.unsupported("drawing", c.Data)
		}
		if d != nil {
			out = append(out, d)
		}
	}
	return out
}

func (b *builder) drawing(n *xmlquery.Node) *model.Drawing {
	blip := xmlquery.QuerySelector(n, exprBlip)
	if blip == nil {
		return nil
	}
	d := &model.Drawing{Placement: model.PlacementInline, RelID: relAttr(blip, "embed")}
	if ext := xmlquery.QuerySelector(n, exprExtent); ext != nil {
		d.Width = int64Attr(ext, "cx")
		d.Height = int64Attr(ext, "cy")
	}
	if pr := xmlquery.QuerySelector(n, exprDocPr); pr != nil {
		d.Name, _ = attr(pr, "name")
		d.AltText, _ = attr(pr, "descr")
		if d.AltText == "" {
			d.AltText, _ = attr(pr, "title")
		}
	}
	return d
}

// anchor fills the floating placement of a wp:anchor.
func (b *builder) anchor(n *xmlquery.Node, d *model.Drawing) {
	d.Placement = model.PlacementAnchored
	if v, ok := attr(n, "behindDoc"); ok {
		d.BehindText = v == "1" || strings.EqualFold(v, "true")
	}
	if align := xmlquery.QuerySelector(n, exprAlignH); align != nil {
		d.HAlign = strings.TrimSpace(align.InnerText())
	}
	for _, c := range elements(n) {
		if c.NamespaceURI != nsWP || len(c.Data) <= 4 || !strings.HasPrefix(c.Data, "wrap") {
			continue
		}
		switch w := model.WrapType(strings.ToLower(c.Data[4:5]) + c.Data[5:]); w {
		case model.WrapNone, model.WrapSquare, model.WrapTight, model.WrapThrough, model.WrapTopAndBottom:
			d.Wrap = w
		default:
			b.unsupportedValue("wrap", c.Data)
		}
	}
}

func int64Attr(n *xmlquery.Node, local string) int64 {
	s, _ := attr(n, local)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
