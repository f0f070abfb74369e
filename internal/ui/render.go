package ui

import (
	"bytes"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/kavosh/internal/markdown"
)

// highlightCode applies syntax highlighting to code using chroma
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(CurrentTheme().CodeStyle)
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}

	return strings.TrimRight(buf.String(), "\n")
}

// wrapText wraps text to the specified width, handling ANSI escape codes.
// Words longer than the width are broken.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return ansi.Wrap(text, width, "")
}

// hyperlink wraps already-styled text in an OSC 8 hyperlink to url
func hyperlink(url, text string) string {
	return ansi.SetHyperlink(url) + text + ansi.ResetHyperlink()
}

// RenderMarkdown renders answer text for the terminal. The text goes
// through the safe parser, so only whitelisted constructs are styled and
// escape sequences from the source never reach the terminal.
func RenderMarkdown(src string, width int) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}
	return renderBlocks(markdown.Parse(src), width)
}

func renderBlocks(blocks []markdown.Block, width int) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, renderBlock(b, width))
	}
	return strings.Join(parts, "\n\n")
}

func headingStyle(level int) lipgloss.Style {
	switch level {
	case 1:
		return MarkdownH1Style
	case 2:
		return MarkdownH2Style
	case 3:
		return MarkdownH3Style
	default:
		return MarkdownH4Style
	}
}

func renderBlock(b markdown.Block, width int) string {
	switch b.Kind {
	case markdown.BlockHeading:
		return wrapText(renderInlines(b.Inlines, headingStyle(b.Level)), width)

	case markdown.BlockRule:
		return MarkdownHRStyle.Render(strings.Repeat("─", min(width, 32)))

	case markdown.BlockQuote:
		inner := renderBlocks(b.Children, max(width-2, 1))
		return MarkdownBlockquoteStyle.Render(inner)

	case markdown.BlockCode:
		return MarkdownCodeBlockStyle.Render(highlightCode(b.Code, b.Lang))

	case markdown.BlockList:
		return renderList(b, width)

	default:
		return wrapText(renderInlines(b.Inlines, MarkdownTextStyle), width)
	}
}

func renderList(b markdown.Block, width int) string {
	var lines []string
	for i, item := range b.Items {
		marker := "•"
		if b.Ordered {
			marker = fmt.Sprintf("%d.", b.Start+i)
		}
		indent := strings.Repeat(" ", ansi.StringWidth(marker)+3)
		inner := max(width-len(indent), 1)

		body := wrapText(renderInlines(item.Inlines, MarkdownTextStyle), inner)
		if len(item.Children) > 0 {
			body += "\n" + renderBlocks(item.Children, inner)
		}

		// Indent continuation lines under the item text
		bodyLines := strings.Split(body, "\n")
		for j := 1; j < len(bodyLines); j++ {
			if bodyLines[j] != "" {
				bodyLines[j] = indent + bodyLines[j]
			}
		}
		lines = append(lines, "  "+MarkdownListBulletStyle.Render(marker)+" "+strings.Join(bodyLines, "\n"))
	}
	return strings.Join(lines, "\n")
}

func renderInlines(inlines []markdown.Inline, style lipgloss.Style) string {
	var sb strings.Builder
	for _, in := range inlines {
		switch in.Kind {
		case markdown.InlineStrong:
			sb.WriteString(renderInlines(in.Children, style.Bold(true)))
		case markdown.InlineEmphasis:
			sb.WriteString(renderInlines(in.Children, style.Italic(true)))
		case markdown.InlineCode:
			sb.WriteString(MarkdownInlineCodeStyle.Render(in.Text))
		case markdown.InlineLink:
			sb.WriteString(hyperlink(in.URL, renderInlines(in.Children, MarkdownLinkStyle)))
		default:
			sb.WriteString(style.Render(in.Text))
		}
	}
	return sb.String()
}
