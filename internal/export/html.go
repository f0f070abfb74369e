// Package export writes a finished search session as a standalone HTML
// page. The document is assembled as an x/net/html node tree, so every
// piece of backend text reaches the output escaped.
package export

import (
	"fmt"
	"io"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/zhubert/kavosh/internal/api"
	"github.com/zhubert/kavosh/internal/errors"
	"github.com/zhubert/kavosh/internal/markdown"
	"github.com/zhubert/kavosh/internal/search"
	"github.com/zhubert/kavosh/internal/theme"
)

const stylesheet = `
body { font-family: Vazirmatn, Tahoma, sans-serif; margin: 0; line-height: 1.8; }
html.light body { background: #f8fafc; color: #1f2937; }
html.dark body { background: #111827; color: #e5e7eb; }
main { max-width: 48rem; margin: 2rem auto; padding: 0 1rem; }
.query { opacity: .7; }
.error { border: 1px solid #f87171; padding: 1rem; border-radius: 1rem; }
pre { direction: ltr; text-align: left; overflow-x: auto; padding: .75rem; border-radius: .5rem; background: rgba(127,127,127,.12); }
a { color: #2563eb; }
html.dark a { color: #60a5fa; }
`

// Labels used in the exported page.
const (
	labelQuestion = "پرسش"
	labelAnswer   = "پاسخ"
	labelSources  = "منابع"
	labelError    = "خطا"
)

func el(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func appendAll(parent *html.Node, children ...*html.Node) *html.Node {
	for _, c := range children {
		parent.AppendChild(c)
	}
	return parent
}

// RenderHTML writes session as a complete HTML document styled for mode.
// Only finished sessions can be exported.
func RenderHTML(w io.Writer, s search.Session, mode theme.Mode) error {
	const op = errors.Op("export.RenderHTML")

	if s.Status != search.StatusSucceeded && s.Status != search.StatusFailed {
		return errors.E(op, errors.KindInvalid, fmt.Sprintf("session is %s, nothing to export", s.Status))
	}

	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	htmlEl := el(atom.Html, "lang", "fa", "dir", "rtl", "class", string(mode))
	head := appendAll(el(atom.Head),
		el(atom.Meta, "charset", "utf-8"),
		appendAll(el(atom.Title), text(s.Query)),
		appendAll(el(atom.Style), text(stylesheet)),
	)

	page := el(atom.Main)
	page.AppendChild(appendAll(el(atom.Header),
		appendAll(el(atom.H1), text(labelQuestion)),
		appendAll(el(atom.P, "class", "query"), text(s.Query)),
	))

	if s.Status == search.StatusFailed {
		page.AppendChild(appendAll(el(atom.Div, "class", "error", "role", "alert"),
			appendAll(el(atom.Strong), text(labelError)),
			appendAll(el(atom.P), text(s.ErrorMessage)),
		))
	} else {
		article := appendAll(el(atom.Article, "class", "answer"),
			appendAll(el(atom.H2), text(labelAnswer)))
		for _, b := range markdown.Parse(s.Answer) {
			article.AppendChild(renderBlock(b))
		}
		page.AppendChild(article)

		if len(s.Sources) > 0 {
			page.AppendChild(renderSources(s.Sources))
		}
		if len(s.Passages) > 0 {
			page.AppendChild(renderPassages(s.Passages))
		}
	}

	appendAll(htmlEl, head, appendAll(el(atom.Body), page))
	root.AppendChild(htmlEl)

	if err := html.Render(w, root); err != nil {
		return errors.E(op, errors.KindIO, err)
	}
	return nil
}

func renderSources(sources []string) *html.Node {
	list := el(atom.Ol)
	for _, src := range sources {
		li := el(atom.Li)
		if markdown.IsWebURL(src) {
			li.AppendChild(appendAll(
				el(atom.A, "href", src, "target", "_blank", "rel", "noopener noreferrer"),
				text(src),
			))
		} else {
			li.AppendChild(text(src))
		}
		list.AppendChild(li)
	}
	return appendAll(el(atom.Section, "class", "sources"),
		appendAll(el(atom.H2), text(labelSources)),
		list,
	)
}

func renderPassages(passages []api.Passage) *html.Node {
	list := el(atom.Ul)
	for _, p := range passages {
		li := el(atom.Li)
		li.AppendChild(appendAll(el(atom.Code), text(strconv.FormatFloat(p.Score, 'f', 2, 64))))
		li.AppendChild(text(" " + markdown.Sanitize(p.Text)))
		list.AppendChild(li)
	}
	return appendAll(el(atom.Details, "class", "passages"),
		appendAll(el(atom.Summary), text(fmt.Sprintf("%d passages", len(passages)))),
		list,
	)
}

func renderBlock(b markdown.Block) *html.Node {
	switch b.Kind {
	case markdown.BlockHeading:
		// h1 is the page title, so answer headings start at h3
		levels := []atom.Atom{atom.H3, atom.H4, atom.H5, atom.H6}
		return renderInlines(el(levels[b.Level-1]), b.Inlines)
	case markdown.BlockList:
		list := el(atom.Ul)
		if b.Ordered {
			list = el(atom.Ol)
			if b.Start != 1 {
				list.Attr = append(list.Attr, html.Attribute{Key: "start", Val: strconv.Itoa(b.Start)})
			}
		}
		for _, item := range b.Items {
			li := renderInlines(el(atom.Li), item.Inlines)
			for _, child := range item.Children {
				li.AppendChild(renderBlock(child))
			}
			list.AppendChild(li)
		}
		return list
	case markdown.BlockQuote:
		q := el(atom.Blockquote)
		for _, child := range b.Children {
			q.AppendChild(renderBlock(child))
		}
		return q
	case markdown.BlockCode:
		code := el(atom.Code)
		if b.Lang != "" {
			code.Attr = append(code.Attr, html.Attribute{Key: "class", Val: "language-" + b.Lang})
		}
		code.AppendChild(text(b.Code))
		return appendAll(el(atom.Pre, "dir", "ltr"), code)
	case markdown.BlockRule:
		return el(atom.Hr)
	default:
		return renderInlines(el(atom.P), b.Inlines)
	}
}

func renderInlines(parent *html.Node, inlines []markdown.Inline) *html.Node {
	for _, in := range inlines {
		switch in.Kind {
		case markdown.InlineStrong:
			parent.AppendChild(renderInlines(el(atom.Strong), in.Children))
		case markdown.InlineEmphasis:
			parent.AppendChild(renderInlines(el(atom.Em), in.Children))
		case markdown.InlineCode:
			parent.AppendChild(appendAll(el(atom.Code), text(in.Text)))
		case markdown.InlineLink:
			a := el(atom.A, "href", in.URL, "target", "_blank", "rel", "noopener noreferrer")
			parent.AppendChild(renderInlines(a, in.Children))
		default:
			parent.AppendChild(text(in.Text))
		}
	}
	return parent
}
