// Package ooxml opens Office Open XML packages and exposes their parts as
// parsed XML node trees.
//
// A package is a ZIP archive. Each XML part is parsed on demand with
// github.com/antchfx/xmlquery; binary parts (media) are read as bytes and
// typed by sniffing their content.
//
//	pkg, err := ooxml.Open("report.docx")
//	if err != nil {
//	    // errors.Is(err, ooxml.ErrMalformedPackage) for broken input
//	}
//	defer pkg.Close()
//	parts, err := pkg.Parts()
package ooxml

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/tsawler/docxconv/format"
	"github.com/tsawler/docxconv/model"
)

// Package-level errors.
var (
	ErrMalformedPackage = errors.New("ooxml: malformed package")
	ErrPartNotFound     = errors.New("ooxml: part not found")
	ErrNotWordDocument  = errors.New("ooxml: not a Word document")
)

// Well-known part names and relationship types.
const (
	ContentTypesPart = "[Content_Types].xml"
	RootRelsPart     = "_rels/.rels"
	DefaultMainPart  = "word/document.xml"
	CorePart         = "docProps/core.xml"

	relTypeOfficeDocument = "/officeDocument"
	relTypeStyles         = "/styles"
	relTypeNumbering      = "/numbering"
	relTypeImage          = "/image"
	relTypeHyperlink      = "/hyperlink"
)

// PackageError reports a missing or unreadable required part. It matches
// ErrMalformedPackage with errors.Is.
type PackageError struct {
	Part string
	Err  error
}

func (e *PackageError) Error() string {
	if e.Part == "" {
		return fmt.Sprintf("malformed package: %v", e.Err)
	}
	return fmt.Sprintf("malformed package: %s: %v", e.Part, e.Err)
}

func (e *PackageError) Unwrap() error { return e.Err }

// Is reports whether target is ErrMalformedPackage.
func (e *PackageError) Is(target error) bool {
	return target == ErrMalformedPackage
}

// Malformed wraps err as a PackageError for part.
func Malformed(part string, err error) error {
	return &PackageError{Part: part, Err: err}
}

// Relationship is one entry of a .rels part.
type Relationship struct {
	ID         string
	Type       string
	Target     string
	TargetMode string // "External" or empty
}

// IsExternal reports whether the target lives outside the package.
func (r Relationship) IsExternal() bool {
	return strings.EqualFold(r.TargetMode, "External")
}

// Package is an opened OOXML package.
type Package struct {
	file     *os.File
	files    map[string]*zip.File
	mainPart string
	rels     []Relationship
	relsNode *xmlquery.Node
}

// Open opens a package from a file path.
func Open(filename string) (*Package, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening package: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("opening package: %w", err)
	}

	p, err := OpenReader(f, info.Size())
	if err != nil {
		f.Close()
		return nil, err
	}
	p.file = f
	return p, nil
}

// OpenReader opens a package from an io.ReaderAt.
func OpenReader(ra io.ReaderAt, size int64) (*Package, error) {
	magic := make([]byte, 512)
	n, _ := ra.ReadAt(magic, 0)
	if magic = magic[:n]; !IsZip(magic) {
		if f := format.DetectFromMagic(magic); f != format.Unknown {
			return nil, Malformed("", fmt.Errorf("%w: input is %s", ErrNotWordDocument, f))
		}
		return nil, Malformed("", errors.New("not a ZIP archive"))
	}

	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, Malformed("", fmt.Errorf("reading ZIP archive: %w", err))
	}

	p := &Package{files: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		p.files[f.Name] = f
	}

	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Close releases the underlying file, if the package owns one.
// It is safe to call Close more than once.
func (p *Package) Close() error {
	if p.file != nil {
		err := p.file.Close()
		p.file = nil
		return err
	}
	return nil
}

// validate checks for the content types part and locates the main part.
func (p *Package) validate() error {
	if !p.Has(ContentTypesPart) {
		return Malformed(ContentTypesPart, ErrPartNotFound)
	}

	p.mainPart = DefaultMainPart
	if root, err := p.readRels(RootRelsPart); err == nil {
		for _, rel := range root {
			if strings.HasSuffix(rel.Type, relTypeOfficeDocument) {
				p.mainPart = strings.TrimPrefix(path.Clean("/"+rel.Target), "/")
				break
			}
		}
	}

	if f := format.FromPartNames([]string{p.mainPart}); f != format.DOCX && f != format.Unknown {
		return Malformed(p.mainPart, fmt.Errorf("%w: package is %s", ErrNotWordDocument, f))
	}
	if !p.Has(p.mainPart) {
		return Malformed(p.mainPart, ErrPartNotFound)
	}

	rels, err := p.readRels(relsPartFor(p.mainPart))
	if err == nil {
		p.rels = rels
	}
	return nil
}

// Has reports whether the package contains a part.
func (p *Package) Has(name string) bool {
	_, ok := p.files[name]
	return ok
}

// MainPart returns the name of the main document part.
func (p *Package) MainPart() string {
	return p.mainPart
}

// Names returns all part names.
func (p *Package) Names() []string {
	names := make([]string, 0, len(p.files))
	for name := range p.files {
		names = append(names, name)
	}
	return names
}

// ReadPart returns the raw bytes of a part.
func (p *Package) ReadPart(name string) ([]byte, error) {
	f, ok := p.files[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPartNotFound, name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Part parses an XML part into a node tree.
func (p *Package) Part(name string) (*xmlquery.Node, error) {
	data, err := p.ReadPart(name)
	if err != nil {
		return nil, err
	}
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	return doc, nil
}

// Relationships returns the main part's relationships.
func (p *Package) Relationships() []Relationship {
	return p.rels
}

// Relationship returns the main part relationship with the given id.
func (p *Package) Relationship(id string) (Relationship, bool) {
	for _, rel := range p.rels {
		if rel.ID == id {
			return rel, true
		}
	}
	return Relationship{}, false
}

// ResolveTarget turns a relationship target into a part name, relative to
// the main part's directory.
func (p *Package) ResolveTarget(target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Clean(path.Join(path.Dir(p.mainPart), target))
}

// Parts parses the parts the document model is built from. Only the main
// document part is required; a missing or unparseable document yields a
// PackageError.
func (p *Package) Parts() (Parts, error) {
	var parts Parts

	doc, err := p.Part(p.mainPart)
	if err != nil {
		return parts, Malformed(p.mainPart, err)
	}
	parts.Document = doc
	parts.Relationships = p.relsNode
	parts.Styles = p.optionalPart(relTypeStyles, "styles.xml")
	parts.Numbering = p.optionalPart(relTypeNumbering, "numbering.xml")
	if p.Has(CorePart) {
		if core, err := p.Part(CorePart); err == nil {
			parts.Core = core
		}
	}
	parts.Assets = p
	return parts, nil
}

// optionalPart finds a part by relationship type, falling back to a
// conventional file name next to the main part. Parse failures are treated
// as absence.
func (p *Package) optionalPart(relType, fallback string) *xmlquery.Node {
	name := path.Join(path.Dir(p.mainPart), fallback)
	for _, rel := range p.rels {
		if strings.HasSuffix(rel.Type, relType) && !rel.IsExternal() {
			name = p.ResolveTarget(rel.Target)
			break
		}
	}
	if !p.Has(name) {
		return nil
	}
	node, err := p.Part(name)
	if err != nil {
		return nil
	}
	return node
}

// Asset implements model.AssetSource for image relationships.
func (p *Package) Asset(relID string) (model.Asset, bool) {
	rel, ok := p.Relationship(relID)
	if !ok || rel.IsExternal() {
		return model.Asset{}, false
	}
	name := p.ResolveTarget(rel.Target)
	data, err := p.ReadPart(name)
	if err != nil {
		return model.Asset{}, false
	}
	return model.Asset{
		Target:      name,
		ContentType: DetectContentType(data, name),
		Data:        data,
	}, true
}

// readRels parses a .rels part.
func (p *Package) readRels(name string) ([]Relationship, error) {
	node, err := p.Part(name)
	if err != nil {
		return nil, err
	}
	if name != RootRelsPart {
		p.relsNode = node
	}
	return ParseRelationships(node), nil
}

// relsPartFor returns the relationships part name of a part,
// e.g. word/document.xml -> word/_rels/document.xml.rels.
func relsPartFor(part string) string {
	return path.Join(path.Dir(part), "_rels", path.Base(part)+".rels")
}

// ParseRelationships reads Relationship elements from a parsed .rels part.
func ParseRelationships(root *xmlquery.Node) []Relationship {
	var rels []Relationship
	var walk func(n *xmlquery.Node)
	walk = func(n *xmlquery.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != xmlquery.ElementNode {
				continue
			}
			if c.Data == "Relationship" {
				rels = append(rels, Relationship{
					ID:         attr(c, "Id"),
					Type:       attr(c, "Type"),
					Target:     attr(c, "Target"),
					TargetMode: attr(c, "TargetMode"),
				})
				continue
			}
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return rels
}

// IsImageRelationship reports whether a relationship type is an image.
func IsImageRelationship(relType string) bool {
	return strings.HasSuffix(relType, relTypeImage)
}

// IsHyperlinkRelationship reports whether a relationship type is a hyperlink.
func IsHyperlinkRelationship(relType string) bool {
	return strings.HasSuffix(relType, relTypeHyperlink)
}

func attr(n *xmlquery.Node, local string) string {
	for _, a := range n.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
