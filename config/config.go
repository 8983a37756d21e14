// Package config holds the conversion options shared by the HTML and text
// renderers, the public entry points and the CLI.
package config

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// StyleMode controls how the HTML renderer emits CSS.
type StyleMode string

// Style modes.
const (
	StyleNone    StyleMode = "none"
	StyleInline  StyleMode = "inline"
	StyleClasses StyleMode = "classes"
)

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *StyleMode) UnmarshalText(text []byte) error {
	switch v := StyleMode(text); v {
	case StyleNone, StyleInline, StyleClasses:
		*m = v
		return nil
	}
	return fmt.Errorf("%w: style_mode %q (use none, inline or classes)", ErrInvalid, text)
}

// TableMode controls how the text renderer draws tables.
type TableMode string

// Table modes.
const (
	TableASCII TableMode = "ascii"
	TableTabs  TableMode = "tabs"
	TablePlain TableMode = "plain"
	TableAuto  TableMode = "auto"
)

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *TableMode) UnmarshalText(text []byte) error {
	switch v := TableMode(text); v {
	case TableASCII, TableTabs, TablePlain, TableAuto:
		*m = v
		return nil
	}
	return fmt.Errorf("%w: table_mode %q (use ascii, tabs, plain or auto)", ErrInvalid, text)
}

// TextFormatting selects plain or markdown-decorated text output.
type TextFormatting string

// Text formatting modes.
const (
	FormatPlain    TextFormatting = "plain"
	FormatMarkdown TextFormatting = "markdown"
)

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *TextFormatting) UnmarshalText(text []byte) error {
	switch v := TextFormatting(text); v {
	case FormatPlain, FormatMarkdown:
		*f = v
		return nil
	}
	return fmt.Errorf("%w: text_formatting %q (use plain or markdown)", ErrInvalid, text)
}

// ErrInvalid is wrapped by every configuration validation error.
var ErrInvalid = errors.New("config: invalid value")

// Config is the full set of conversion options.
type Config struct {
	// HTML output.
	SemanticTags       bool      `yaml:"use_semantic_tags"`
	FragmentOnly       bool      `yaml:"fragment_only"`
	StyleMode          StyleMode `yaml:"style_mode"`
	Responsive         bool      `yaml:"responsive"`
	IncludePrintStyles bool      `yaml:"include_print_styles"`
	Title              string    `yaml:"title"`
	Language           string    `yaml:"language"` // BCP 47

	// Text output.
	TextFormatting     TextFormatting `yaml:"text_formatting"`
	TableMode          TableMode      `yaml:"table_mode"`
	ParagraphSeparator string         `yaml:"paragraph_separator"`
}

// Default returns the default options.
func Default() Config {
	return Config{
		StyleMode:          StyleInline,
		Responsive:         true,
		Language:           "en",
		TextFormatting:     FormatPlain,
		TableMode:          TableAuto,
		ParagraphSeparator: "\n\n",
	}
}

// Load reads a YAML file over the defaults and validates the result.
// Options missing from the file keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// WithDefaults fills empty enum and language fields with their defaults,
// so a zero Config is usable.
func (c Config) WithDefaults() Config {
	d := Default()
	if c.StyleMode == "" {
		c.StyleMode = d.StyleMode
	}
	if c.TextFormatting == "" {
		c.TextFormatting = d.TextFormatting
	}
	if c.TableMode == "" {
		c.TableMode = d.TableMode
	}
	if c.Language == "" {
		c.Language = d.Language
	}
	return c
}

// Validate reports the first invalid option.
func (c Config) Validate() error {
	var sm StyleMode
	if err := sm.UnmarshalText([]byte(c.StyleMode)); err != nil {
		return err
	}
	var tm TableMode
	if err := tm.UnmarshalText([]byte(c.TableMode)); err != nil {
		return err
	}
	var tf TextFormatting
	if err := tf.UnmarshalText([]byte(c.TextFormatting)); err != nil {
		return err
	}
	if _, err := language.Parse(c.Language); err != nil {
		return fmt.Errorf("%w: language %q: %v", ErrInvalid, c.Language, err)
	}
	return nil
}

// LanguageTag returns the canonical BCP 47 form of Language, or "en" when
// it does not parse.
func (c Config) LanguageTag() string {
	tag, err := language.Parse(c.Language)
	if err != nil {
		return language.English.String()
	}
	return tag.String()
}
