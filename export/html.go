package export

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/pdftext/model"
	"github.com/tsawler/pdftext/text"
)

const defaultTitle = "Extracted text"

// HTML writes a standalone HTML document: one <section> per page, with
// paragraphs split on blank lines and line breaks kept as <br>. Paragraphs
// written mostly in right-to-left scripts get dir="rtl". Pages that failed
// to extract are rendered with class "error".
func HTML(w io.Writer, doc *model.Document) error {
	title := defaultTitle
	if doc.Metadata != nil && doc.Metadata.Title != "" {
		title = doc.Metadata.Title
	}

	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	htmlEl := element(atom.Html)
	root.AppendChild(htmlEl)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, html.Attribute{Key: "charset", Val: "utf-8"}))
	head.AppendChild(textElement(atom.Title, title))
	if doc.Metadata != nil {
		addMeta(head, "author", doc.Metadata.Author)
		addMeta(head, "description", doc.Metadata.Subject)
		addMeta(head, "keywords", doc.Metadata.Keywords)
		addMeta(head, "generator", doc.Metadata.Producer)
	}
	htmlEl.AppendChild(head)

	body := element(atom.Body)
	body.AppendChild(textElement(atom.H1, title))
	for _, p := range doc.Pages {
		body.AppendChild(pageSection(p))
	}
	htmlEl.AppendChild(body)

	return html.Render(w, root)
}

func pageSection(p model.Page) *html.Node {
	section := element(atom.Section,
		html.Attribute{Key: "id", Val: fmt.Sprintf("page-%d", p.Number)},
		html.Attribute{Key: "class", Val: "page"},
	)
	section.AppendChild(textElement(atom.H2, fmt.Sprintf("Page %d", p.Number)))

	if p.Failed {
		section.AppendChild(textElement(atom.P, p.Text, html.Attribute{Key: "class", Val: "error"}))
		return section
	}

	for _, para := range paragraphs(p.Text) {
		section.AppendChild(paragraph(para))
	}
	return section
}

// paragraphs splits page text on blank lines.
func paragraphs(s string) []string {
	var out []string
	for _, part := range strings.Split(s, "\n\n") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func paragraph(s string) *html.Node {
	var attrs []html.Attribute
	if text.DetectDirection(s) == text.RTL {
		attrs = append(attrs, html.Attribute{Key: "dir", Val: "rtl"})
	}
	p := element(atom.P, attrs...)

	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			p.AppendChild(element(atom.Br))
		}
		p.AppendChild(&html.Node{Type: html.TextNode, Data: line})
	}
	return p
}

func addMeta(head *html.Node, name, content string) {
	if content == "" {
		return
	}
	head.AppendChild(element(atom.Meta,
		html.Attribute{Key: "name", Val: name},
		html.Attribute{Key: "content", Val: content},
	))
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func textElement(a atom.Atom, s string, attrs ...html.Attribute) *html.Node {
	n := element(a, attrs...)
	n.AppendChild(&html.Node{Type: html.TextNode, Data: s})
	return n
}
