package htmlrender

import (
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/tsawler/docxconv/config"
	"github.com/tsawler/docxconv/model"
)

func parse(t *testing.T, s string) *html.Node {
	t.Helper()
	root, err := html.Parse(strings.NewReader(s))
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	return root
}

func renderDoc(t *testing.T, doc *model.Document, cfg config.Config, opts ...Option) (string, *html.Node) {
	t.Helper()
	out, err := Render(doc, cfg, opts...)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return out, parse(t, out)
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// findAll returns every element with the given tag name in document order.
func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	if n.Type == html.ElementNode && n.Data == tag {
		out = append(out, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, findAll(c, tag)...)
	}
	return out
}

func getAttr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	v, _ := getAttr(n, "class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

// textContent concatenates all text below n, skipping <style>.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		if n.Type == html.ElementNode && n.Data == "style" {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func para(runs ...*model.Run) *model.Paragraph {
	p := &model.Paragraph{}
	for _, r := range runs {
		p.Content = append(p.Content, r)
	}
	return p
}

func run(text string) *model.Run {
	return &model.Run{Text: text}
}

func bold(text string) *model.Run {
	return &model.Run{Text: text, Properties: model.RunProperties{Bold: model.Ptr(true)}}
}

func docOf(blocks ...model.Block) *model.Document {
	doc := model.NewDocument()
	doc.Body.Append(blocks...)
	return doc
}

func fragment() config.Config {
	cfg := config.Default()
	cfg.FragmentOnly = true
	return cfg
}
