package docx

import (
	"strconv"

	"github.com/antchfx/xmlquery"

	"github.com/tsawler/docxconv/model"
)

// parseNumbering fills the numbering catalog from numbering.xml.
func (b *builder) parseNumbering(root *xmlquery.Node, cat *model.NumberingCatalog) {
	for _, n := range xmlquery.QuerySelectorAll(root, exprAbstractNum) {
		id, _ := attr(n, "abstractNumId")
		if id == "" {
			continue
		}
		abs := &model.AbstractNumbering{ID: id, Levels: make(map[int]*model.NumberingLevel)}
		for _, c := range elements(n) {
			switch {
			case isW(c, "lvl"):
				if lvl := b.level(c); lvl != nil {
					abs.Levels[lvl.Level] = lvl
				}
			case isW(c, "numStyleLink"):
				abs.NumStyleLink = val(c)
			case isW(c, "styleLink"):
				abs.StyleLink = val(c)
			}
		}
		cat.Abstract[id] = abs
	}

	for _, n := range xmlquery.QuerySelectorAll(root, exprNum) {
		id, _ := attr(n, "numId")
		if id == "" {
			continue
		}
		inst := &model.NumberingInstance{ID: id, LevelOverride: make(map[int]model.LevelOverride)}
		if a := child(n, "abstractNumId"); a != nil {
			inst.AbstractID = val(a)
		}
		for _, o := range children(n, "lvlOverride") {
			ilvl, err := strconv.Atoi(attrOr(o, "ilvl", ""))
			if err != nil || ilvl < 0 || ilvl > model.MaxLevel {
				continue
			}
			var ov model.LevelOverride
			if so := child(o, "startOverride"); so != nil {
				if v, err := strconv.Atoi(val(so)); err == nil {
					ov.StartOverride = model.Ptr(v)
				}
			}
			if l := child(o, "lvl"); l != nil {
				ov.Level = b.level(l)
				if ov.Level != nil {
					ov.Level.Level = ilvl
				}
			}
			inst.LevelOverride[ilvl] = ov
		}
		cat.Instances[id] = inst
	}
}

// level parses w:lvl. Start defaults to 1 when absent, the format to decimal
// and the suffix to tab.
func (b *builder) level(n *xmlquery.Node) *model.NumberingLevel {
	ilvl, err := strconv.Atoi(attrOr(n, "ilvl", "0"))
	if err != nil || ilvl < 0 || ilvl > model.MaxLevel {
		return nil
	}
	lvl := &model.NumberingLevel{
		Level:  ilvl,
		Format: model.FormatDecimal,
		Start:  1,
		Suffix: model.SuffixTab,
	}
	for _, c := range elements(n) {
		if !inW(c) {
			continue
		}
		switch c.Data {
		case "start":
			if v, err := strconv.Atoi(val(c)); err == nil {
				lvl.Start = v
			}
		case "numFmt":
			if v := val(c); v != "" {
				lvl.Format = model.NumberFormat(v)
			}
		case "lvlText":
			lvl.Text = val(c)
		case "suff":
			switch s := model.LevelSuffix(val(c)); s {
			case model.SuffixTab, model.SuffixSpace, model.SuffixNothing:
				lvl.Suffix = s
			default:
				b.unsupportedValue("suff", string(s))
			}
		case "lvlJc":
			lvl.Justification = val(c)
		case "pStyle":
			lvl.StyleID = val(c)
		case "pPr":
			if ind := child(c, "ind"); ind != nil {
				in := indent(ind)
				if in.Left != nil {
					lvl.Left = *in.Left
				}
				if in.Hanging != nil {
					lvl.Hanging = *in.Hanging
				}
				if in.FirstLine != nil {
					lvl.FirstLine = *in.FirstLine
				}
			}
		case "rPr":
			lvl.Run = b.runProperties(c)
		}
	}
	return lvl
}

func attrOr(n *xmlquery.Node, local, def string) string {
	if v, ok := attr(n, local); ok {
		return v
	}
	return def
}
