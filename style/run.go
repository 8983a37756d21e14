package style

import "github.com/tsawler/docxconv/model"

// RunStyle is the effective formatting of a run.
type RunStyle struct {
	Bold         bool
	Italic       bool
	Underline    model.Underline // UnderlineNone when not underlined
	Strike       bool
	DoubleStrike bool
	SmallCaps    bool
	AllCaps      bool
	Hidden       bool
	Color        string // RGB hex, "" for automatic
	Highlight    string // highlight name or hex, "" for none
	FontSize     int    // half-points
	FontFamily   string
	VertAlign    model.VerticalAlign
}

// IsUnderlined reports whether the run has a visible underline.
func (rs RunStyle) IsUnderlined() bool {
	return rs.Underline != "" && rs.Underline != model.UnderlineNone
}

// ResolveRun returns the effective formatting of run inside paragraph p.
// Levels, first definer wins: the run's direct formatting, its character
// style chain, the paragraph style chain, the document defaults and the
// built-in defaults. p may be nil.
func (r *Resolver) ResolveRun(run *model.Run, p *model.Paragraph) RunStyle {
	var props model.RunProperties
	if run != nil {
		props = run.Properties
	}
	return r.ResolveRunProperties(props, p)
}

// ResolveRunProperties is ResolveRun for bare properties, such as a
// numbering level's marker formatting.
func (r *Resolver) ResolveRunProperties(props model.RunProperties, p *model.Paragraph) RunStyle {
	if props.StyleID != "" {
		fillRun(&props, r.runLayer(props.StyleID))
	}
	fillRun(&props, r.runLayer(r.paragraphStyleID(p)))
	_, defRun := r.defaults()
	fillRun(&props, defRun)

	rs := RunStyle{
		Underline:  model.UnderlineNone,
		Color:      deref(props.Color),
		Highlight:  deref(props.Highlight),
		FontSize:   DefaultFontSize,
		FontFamily: DefaultFontFamily,
		VertAlign:  model.VertBaseline,
	}
	rs.Bold = deref(props.Bold)
	rs.Italic = deref(props.Italic)
	rs.Strike = deref(props.Strike)
	rs.DoubleStrike = deref(props.DoubleStrike)
	rs.SmallCaps = deref(props.SmallCaps)
	rs.AllCaps = deref(props.AllCaps)
	rs.Hidden = deref(props.Hidden)
	if props.Underline != nil {
		rs.Underline = *props.Underline
	}
	if props.FontSize != nil && *props.FontSize > 0 {
		rs.FontSize = *props.FontSize
	}
	if props.FontFamily != nil && *props.FontFamily != "" {
		rs.FontFamily = *props.FontFamily
	}
	if props.VertAlign != nil {
		rs.VertAlign = *props.VertAlign
	}
	return rs
}

// DefaultRun returns the formatting of an unstyled run in a paragraph with
// the default paragraph style. Renderers compare against it to emit only
// formatting that differs.
func (r *Resolver) DefaultRun() RunStyle {
	return r.ResolveRunProperties(model.RunProperties{}, nil)
}
