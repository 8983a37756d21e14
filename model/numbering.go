package model

// NumberFormat is w:numFmt.
type NumberFormat string

// Number formats understood by the numbering engine. Unknown formats are
// rendered as decimal.
const (
	FormatDecimal     NumberFormat = "decimal"
	FormatDecimalZero NumberFormat = "decimalZero"
	FormatUpperRoman  NumberFormat = "upperRoman"
	FormatLowerRoman  NumberFormat = "lowerRoman"
	FormatUpperLetter NumberFormat = "upperLetter"
	FormatLowerLetter NumberFormat = "lowerLetter"
	FormatBullet      NumberFormat = "bullet"
	FormatNone        NumberFormat = "none"
)

// LevelSuffix is w:suff: what follows the marker.
type LevelSuffix string

// Level suffixes.
const (
	SuffixTab     LevelSuffix = "tab"
	SuffixSpace   LevelSuffix = "space"
	SuffixNothing LevelSuffix = "nothing"
)

// MaxLevel is the deepest numbering level (levels are 0..8).
const MaxLevel = 8

// NumberingLevel is a w:lvl element.
type NumberingLevel struct {
	Level         int
	Format        NumberFormat
	Start         int
	Text          string // e.g. "%1." or a bullet glyph
	Suffix        LevelSuffix
	Justification string
	StyleID       string // w:pStyle

	// Indent in twips.
	Left      int
	Hanging   int
	FirstLine int

	Run RunProperties
}

// AbstractNumbering is a w:abstractNum element.
type AbstractNumbering struct {
	ID     string
	Levels map[int]*NumberingLevel

	// NumStyleLink names a numbering style whose w:numPr points at the
	// instance that really defines the levels.
	NumStyleLink string
	StyleLink    string
}

// LevelOverride is a w:lvlOverride inside a w:num.
type LevelOverride struct {
	StartOverride *int
	Level         *NumberingLevel // replacement level, optional
}

// NumberingInstance is a w:num element.
type NumberingInstance struct {
	ID            string
	AbstractID    string
	LevelOverride map[int]LevelOverride
}

// NumberingCatalog is parsed numbering.xml.
type NumberingCatalog struct {
	Abstract  map[string]*AbstractNumbering
	Instances map[string]*NumberingInstance
}

// NewNumberingCatalog creates an empty catalog.
func NewNumberingCatalog() *NumberingCatalog {
	return &NumberingCatalog{
		Abstract:  make(map[string]*AbstractNumbering),
		Instances: make(map[string]*NumberingInstance),
	}
}

// Instance returns the numbering instance with the given numId.
func (c *NumberingCatalog) Instance(numID string) (*NumberingInstance, bool) {
	if c == nil {
		return nil, false
	}
	n, ok := c.Instances[numID]
	return n, ok
}

// AbstractFor returns the abstract definition behind a numbering instance.
func (c *NumberingCatalog) AbstractFor(numID string) (*AbstractNumbering, bool) {
	n, ok := c.Instance(numID)
	if !ok {
		return nil, false
	}
	a, ok := c.Abstract[n.AbstractID]
	return a, ok
}
