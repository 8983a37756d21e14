// Package numbering computes list markers.
//
// Word numbering is stateful: the marker of a list paragraph depends on every
// list paragraph before it. A Context holds that state for one render pass
// and must be fed paragraphs in document order.
package numbering

import (
	"log/slog"
	"strings"

	"github.com/tsawler/docxconv/model"
	"github.com/tsawler/docxconv/units"
)

// Result is the marker and indentation of one list paragraph.
type Result struct {
	Marker string // formatted marker, e.g. "1.", "iv)" or "•"
	Suffix string // "\t", " " or ""

	IndentPt         float64 // left indent
	TextIndentPt     float64 // negative for a hanging indent
	HasHangingIndent bool

	Bullet bool
	Level  int
	NumID  string

	// Run is the marker's own formatting from the level definition.
	Run model.RunProperties
}

type counterKey struct {
	numID string
	level int
}

// Context tracks list counters across a render pass.
type Context struct {
	catalog  *model.NumberingCatalog
	styles   *model.Styles
	log      *slog.Logger
	counters map[counterKey]int
}

// Option configures a Context.
type Option func(*Context)

// WithLogger sets the logger for unknown numbering references.
func WithLogger(l *slog.Logger) Option {
	return func(c *Context) {
		if l != nil {
			c.log = l
		}
	}
}

// WithStyles lets the context follow numStyleLink definitions through
// numbering styles.
func WithStyles(s *model.Styles) Option {
	return func(c *Context) { c.styles = s }
}

// NewContext creates a context with no counters set.
func NewContext(catalog *model.NumberingCatalog, opts ...Option) *Context {
	c := &Context{
		catalog:  catalog,
		log:      slog.New(slog.DiscardHandler),
		counters: make(map[counterKey]int),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolve advances the counter of ref and returns the formatted marker. It
// returns false when ref is nil, removes numbering (numId 0) or points at
// a numbering instance or level that does not exist.
//
// The first use of a level yields its start value; later uses increment it.
// Every deeper level of the same numId is cleared, so its next use starts
// over.
func (c *Context) Resolve(ref *model.NumberingRef) (Result, bool) {
	if ref == nil || ref.NumID == "" || ref.NumID == "0" {
		return Result{}, false
	}
	ilvl := min(max(ref.Level, 0), model.MaxLevel)

	lvl, start, ok := c.level(ref.NumID, ilvl)
	if !ok {
		c.log.Debug("unknown numbering reference",
			slog.String("kind", model.KindUnknownNumberingReference),
			slog.String("numId", ref.NumID),
			slog.Int("ilvl", ilvl))
		return Result{}, false
	}

	key := counterKey{ref.NumID, ilvl}
	if n, set := c.counters[key]; set {
		c.counters[key] = n + 1
	} else {
		c.counters[key] = start
	}
	for deeper := ilvl + 1; deeper <= model.MaxLevel; deeper++ {
		delete(c.counters, counterKey{ref.NumID, deeper})
	}

	res := Result{
		Suffix:   suffix(lvl.Suffix),
		IndentPt: units.TwipsToPoints(lvl.Left),
		Level:    ilvl,
		NumID:    ref.NumID,
		Run:      lvl.Run,
	}
	switch {
	case lvl.Hanging > 0:
		res.TextIndentPt = -units.TwipsToPoints(lvl.Hanging)
		res.HasHangingIndent = true
	case lvl.FirstLine > 0:
		res.TextIndentPt = units.TwipsToPoints(lvl.FirstLine)
	}

	if lvl.Format == model.FormatBullet {
		res.Bullet = true
		res.Marker = bulletGlyph(lvl.Text)
		return res, true
	}
	res.Marker = c.expand(ref.NumID, lvl.Text)
	return res, true
}

// expand substitutes %1..%9 in a level text with the counters of levels
// 0..8, each in its own level's format.
func (c *Context) expand(numID, text string) string {
	if !strings.Contains(text, "%") {
		return text
	}
	var sb strings.Builder
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if ch != '%' || i+1 >= len(text) || text[i+1] < '1' || text[i+1] > '9' {
			sb.WriteByte(ch)
			continue
		}
		k := int(text[i+1] - '1')
		i++
		lvl, start, ok := c.level(numID, k)
		if !ok {
			continue
		}
		n, set := c.counters[counterKey{numID, k}]
		if !set {
			n = start
		}
		sb.WriteString(Format(lvl.Format, n))
	}
	return sb.String()
}

// level finds the effective level definition and start value of a numId,
// applying instance overrides and following numStyleLink indirections.
func (c *Context) level(numID string, ilvl int) (*model.NumberingLevel, int, bool) {
	inst, ok := c.catalog.Instance(numID)
	if !ok {
		return nil, 0, false
	}
	ov, hasOverride := inst.LevelOverride[ilvl]

	var lvl *model.NumberingLevel
	if hasOverride && ov.Level != nil {
		lvl = ov.Level
	} else if abs := c.abstract(inst); abs != nil {
		lvl = abs.Levels[ilvl]
	}
	if lvl == nil {
		return nil, 0, false
	}
	start := lvl.Start
	if hasOverride && ov.StartOverride != nil {
		start = *ov.StartOverride
	}
	return lvl, start, true
}

// abstract returns the definition behind an instance. An abstract whose
// levels live behind a numStyleLink is replaced by the abstract of the
// numbering style's own instance.
func (c *Context) abstract(inst *model.NumberingInstance) *model.AbstractNumbering {
	abs := c.catalog.Abstract[inst.AbstractID]
	seen := make(map[string]bool)
	for abs != nil && abs.NumStyleLink != "" && len(abs.Levels) == 0 {
		if seen[abs.ID] {
			return abs
		}
		seen[abs.ID] = true
		def, ok := c.styles.Get(abs.NumStyleLink)
		if !ok || def.Paragraph.Numbering == nil {
			return abs
		}
		next, ok := c.catalog.AbstractFor(def.Paragraph.Numbering.NumID)
		if !ok {
			return abs
		}
		abs = next
	}
	return abs
}

func suffix(s model.LevelSuffix) string {
	switch s {
	case model.SuffixSpace:
		return " "
	case model.SuffixNothing:
		return ""
	}
	return "\t"
}
