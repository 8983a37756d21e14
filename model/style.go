package model

// StyleKind is the w:type of a style definition.
type StyleKind string

// Style kinds.
const (
	StyleParagraph StyleKind = "paragraph"
	StyleCharacter StyleKind = "character"
	StyleTable     StyleKind = "table"
	StyleNumbering StyleKind = "numbering"
)

// StyleDefinition is a w:style element.
type StyleDefinition struct {
	ID      string
	Name    string
	Kind    StyleKind
	BasedOn string
	Default bool

	Paragraph ParagraphProperties
	Run       RunProperties
	Table     TableProperties
	Cell      CellProperties
}

// Styles is the style table from styles.xml.
type Styles struct {
	byID  map[string]*StyleDefinition
	order []string

	// Document defaults (w:docDefaults).
	DefaultParagraph ParagraphProperties
	DefaultRun       RunProperties
}

// NewStyles creates an empty style table.
func NewStyles() *Styles {
	return &Styles{byID: make(map[string]*StyleDefinition)}
}

// Add registers a style definition. A later definition with the same id
// replaces the earlier one but keeps its position.
func (s *Styles) Add(def *StyleDefinition) {
	if def == nil || def.ID == "" {
		return
	}
	if _, exists := s.byID[def.ID]; !exists {
		s.order = append(s.order, def.ID)
	}
	s.byID[def.ID] = def
}

// Get returns the style with the given id.
func (s *Styles) Get(id string) (*StyleDefinition, bool) {
	if s == nil || id == "" {
		return nil, false
	}
	def, ok := s.byID[id]
	return def, ok
}

// Len returns the number of styles.
func (s *Styles) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// All returns the style definitions in declaration order.
func (s *Styles) All() []*StyleDefinition {
	if s == nil {
		return nil
	}
	out := make([]*StyleDefinition, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Default returns the default style of the given kind (w:default="1").
func (s *Styles) Default(kind StyleKind) (*StyleDefinition, bool) {
	if s == nil {
		return nil, false
	}
	for _, id := range s.order {
		def := s.byID[id]
		if def.Default && def.Kind == kind {
			return def, true
		}
	}
	return nil, false
}
