package docx

import (
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// Namespace URIs.
const (
	nsW       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsWStrict = "http://purl.oclc.org/ooxml/wordprocessingml/main"
	nsR       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsRStrict = "http://purl.oclc.org/ooxml/officeDocument/relationships"
	nsWP      = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	nsA       = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPic     = "http://schemas.openxmlformats.org/drawingml/2006/picture"
	nsRel     = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsCP      = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsDC      = "http://purl.org/dc/elements/1.1/"
	nsDCTerms = "http://purl.org/dc/terms/"
	nsMC      = "http://schemas.openxmlformats.org/markup-compatibility/2006"
)

var namespaces = map[string]string{
	"w":       nsW,
	"r":       nsR,
	"wp":      nsWP,
	"a":       nsA,
	"pic":     nsPic,
	"rel":     nsRel,
	"cp":      nsCP,
	"dc":      nsDC,
	"dcterms": nsDCTerms,
	"mc":      nsMC,
}

// Compiled selectors. They are read-only after init and shared by every
// build.
var (
	exprBody        = mustCompile("/w:document/w:body")
	exprSectPr      = mustCompile("w:sectPr")
	exprStyles      = mustCompile("/w:styles/w:style")
	exprRPrDefault  = mustCompile("/w:styles/w:docDefaults/w:rPrDefault/w:rPr")
	exprPPrDefault  = mustCompile("/w:styles/w:docDefaults/w:pPrDefault/w:pPr")
	exprAbstractNum = mustCompile("/w:numbering/w:abstractNum")
	exprNum         = mustCompile("/w:numbering/w:num")
	exprRelations   = mustCompile("/rel:Relationships/rel:Relationship")
	exprCore        = mustCompile("/cp:coreProperties")
	exprExtent      = mustCompile("wp:extent")
	exprDocPr       = mustCompile("wp:docPr")
	exprBlip        = mustCompile(".//a:blip")
	exprAlignH      = mustCompile("wp:positionH/wp:align")
)

func mustCompile(expr string) *xpath.Expr {
	e, err := xpath.CompileWithNS(expr, namespaces)
	if err != nil {
		panic("docx: invalid selector " + expr + ": " + err.Error())
	}
	return e
}

// inW reports whether n is a WordprocessingML element.
func inW(n *xmlquery.Node) bool {
	return n != nil && n.Type == xmlquery.ElementNode &&
		(n.NamespaceURI == nsW || n.NamespaceURI == nsWStrict)
}

// isW reports whether n is a WordprocessingML element with the given local
// name.
func isW(n *xmlquery.Node, local string) bool {
	return inW(n) && n.Data == local
}

// elements returns the element children of n in document order.
func elements(n *xmlquery.Node) []*xmlquery.Node {
	if n == nil {
		return nil
	}
	var out []*xmlquery.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// child returns the first w:local child of n.
func child(n *xmlquery.Node, local string) *xmlquery.Node {
	if n == nil {
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isW(c, local) {
			return c
		}
	}
	return nil
}

// children returns every w:local child of n.
func children(n *xmlquery.Node, local string) []*xmlquery.Node {
	if n == nil {
		return nil
	}
	var out []*xmlquery.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isW(c, local) {
			out = append(out, c)
		}
	}
	return out
}

// attr returns the value of the attribute with the given local name,
// regardless of its prefix.
func attr(n *xmlquery.Node, local string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// relAttr returns a relationship-namespace attribute such as r:id or
// r:embed.
func relAttr(n *xmlquery.Node, local string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Name.Local != local {
			continue
		}
		switch {
		case a.NamespaceURI == nsR, a.NamespaceURI == nsRStrict,
			a.Name.Space == nsR, a.Name.Space == "r":
			return a.Value
		}
	}
	return ""
}

// val returns the w:val attribute of n.
func val(n *xmlquery.Node) string {
	v, _ := attr(n, "val")
	return v
}

// intAttr parses an integer attribute. Measurements may carry a unit
// suffix in Strict documents ("720tw", "12pt"); twips and points are
// recognized, other suffixes are dropped.
func intAttr(n *xmlquery.Node, local string) (int, bool) {
	s, ok := attr(n, local)
	if !ok {
		return 0, false
	}
	return parseMeasure(s)
}

func parseMeasure(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, true
	}
	if strings.HasSuffix(s, "pt") {
		if f, err := strconv.ParseFloat(strings.TrimSuffix(s, "pt"), 64); err == nil {
			return int(f * 20), true
		}
	}
	end := len(s)
	for end > 0 && (s[end-1] < '0' || s[end-1] > '9') {
		end--
	}
	if f, err := strconv.ParseFloat(s[:end], 64); err == nil {
		return int(f), true
	}
	return 0, false
}

// onOff parses an ST_OnOff element. A missing w:val means on.
func onOff(n *xmlquery.Node) (bool, bool) {
	v, ok := attr(n, "val")
	if !ok {
		return true, true
	}
	switch strings.ToLower(v) {
	case "1", "true", "on":
		return true, true
	case "0", "false", "off", "none":
		return false, true
	}
	return false, false
}

// innerText concatenates the text content of n.
func innerText(n *xmlquery.Node) string {
	if n == nil {
		return ""
	}
	return n.InnerText()
}
