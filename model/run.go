package model

// Underline is the underline kind of a run (w:u/@w:val).
type Underline string

// Underline kinds. Word has more variants; the builder folds them onto these.
const (
	UnderlineNone   Underline = "none"
	UnderlineSingle Underline = "single"
	UnderlineDouble Underline = "double"
	UnderlineThick  Underline = "thick"
	UnderlineWavy   Underline = "wavy"
	UnderlineDotted Underline = "dotted"
	UnderlineDashed Underline = "dashed"
)

// VerticalAlign is w:vertAlign.
type VerticalAlign string

// Vertical alignment values.
const (
	VertBaseline    VerticalAlign = "baseline"
	VertSuperscript VerticalAlign = "superscript"
	VertSubscript   VerticalAlign = "subscript"
)

// Run is a w:r element. Tabs are stored as '\t' and breaks as '\n' in Text.
type Run struct {
	Properties RunProperties
	Text       string

	// Hyperlink is the link target when the run sits inside w:hyperlink:
	// an absolute URL or "#bookmark".
	Hyperlink string
}

// RunProperties holds direct character formatting (w:rPr).
type RunProperties struct {
	StyleID      string
	Bold         *bool
	Italic       *bool
	Underline    *Underline
	Strike       *bool
	DoubleStrike *bool
	SmallCaps    *bool
	AllCaps      *bool
	Hidden       *bool
	Color        *string // RGB hex without '#', never "auto"
	Highlight    *string // highlight name ("yellow") or shading hex
	FontSize     *int    // half-points
	FontFamily   *string
	VertAlign    *VerticalAlign
}

// IsZero reports whether no run property is declared.
func (rp RunProperties) IsZero() bool {
	return rp.StyleID == "" && rp.Bold == nil && rp.Italic == nil &&
		rp.Underline == nil && rp.Strike == nil && rp.DoubleStrike == nil &&
		rp.SmallCaps == nil && rp.AllCaps == nil && rp.Hidden == nil &&
		rp.Color == nil && rp.Highlight == nil && rp.FontSize == nil &&
		rp.FontFamily == nil && rp.VertAlign == nil
}

// Placement is how a drawing sits in the text flow.
type Placement int

const (
	PlacementInline   Placement = iota // wp:inline
	PlacementAnchored                  // wp:anchor
)

// WrapType is the text wrapping of an anchored drawing.
type WrapType string

// Wrap types.
const (
	WrapNone         WrapType = "none"
	WrapSquare       WrapType = "square"
	WrapTight        WrapType = "tight"
	WrapThrough      WrapType = "through"
	WrapTopAndBottom WrapType = "topAndBottom"
)

// Drawing is a w:drawing element holding a picture.
type Drawing struct {
	Placement Placement

	// Anchored placement only.
	HAlign     string // left, center, right, inside, outside or ""
	Wrap       WrapType
	BehindText bool

	Width  int64 // EMU
	Height int64 // EMU

	Name    string
	AltText string
	RelID   string // r:embed of the blip
}
