package markdown

import (
	"strconv"
	"strings"
)

// maxDepth bounds nesting of quotes, lists and inline spans.
const maxDepth = 8

// Parse sanitizes src and parses it into blocks.
func Parse(src string) []Block {
	return parseBlocks(strings.Split(Sanitize(src), "\n"), 0)
}

func parseBlocks(lines []string, depth int) []Block {
	var blocks []Block
	var para []string

	flush := func() {
		if len(para) == 0 {
			return
		}
		blocks = append(blocks, Block{
			Kind:    BlockParagraph,
			Inlines: parseInlines(strings.Join(para, " "), 0),
		})
		para = nil
	}

	for i := 0; i < len(lines); {
		line := lines[i]

		if isBlank(line) {
			flush()
			i++
			continue
		}

		if f, lang, ok := openFence(line); ok {
			flush()
			code, next := collectFence(lines, i+1, f)
			blocks = append(blocks, Block{Kind: BlockCode, Lang: lang, Code: code})
			i = next
			continue
		}

		if level, text, ok := heading(line); ok {
			flush()
			blocks = append(blocks, Block{Kind: BlockHeading, Level: level, Inlines: parseInlines(text, 0)})
			i++
			continue
		}

		if isRule(line) {
			flush()
			blocks = append(blocks, Block{Kind: BlockRule})
			i++
			continue
		}

		if depth < maxDepth && isQuote(line) {
			flush()
			var inner []string
			for i < len(lines) && isQuote(lines[i]) {
				inner = append(inner, stripQuote(lines[i]))
				i++
			}
			blocks = append(blocks, Block{Kind: BlockQuote, Children: parseBlocks(inner, depth+1)})
			continue
		}

		if m, ok := listMarker(line); ok && depth < maxDepth {
			flush()
			list, next := parseList(lines, i, m, depth)
			blocks = append(blocks, list)
			i = next
			continue
		}

		para = append(para, strings.TrimSpace(line))
		i++
	}
	flush()

	return blocks
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// indentOf returns the width of leading whitespace, counting a tab as four
// columns.
func indentOf(line string) int {
	n := 0
	for _, r := range line {
		switch r {
		case ' ':
			n++
		case '\t':
			n += 4
		default:
			return n
		}
	}
	return n
}

// dedent removes up to n columns of leading whitespace.
func dedent(line string, n int) string {
	col := 0
	for i, r := range line {
		if col >= n {
			return line[i:]
		}
		switch r {
		case ' ':
			col++
		case '\t':
			col += 4
		default:
			return line[i:]
		}
	}
	return ""
}

type fence struct {
	char   byte
	length int
	indent int
}

func openFence(line string) (fence, string, bool) {
	indent := indentOf(line)
	if indent > 3 {
		return fence{}, "", false
	}
	rest := strings.TrimLeft(line, " \t")
	if len(rest) < 3 || (rest[0] != '`' && rest[0] != '~') {
		return fence{}, "", false
	}
	c := rest[0]
	n := 0
	for n < len(rest) && rest[n] == c {
		n++
	}
	if n < 3 {
		return fence{}, "", false
	}
	info := strings.TrimSpace(rest[n:])
	if c == '`' && strings.ContainsRune(info, '`') {
		return fence{}, "", false
	}
	lang := info
	if sp := strings.IndexAny(lang, " \t"); sp >= 0 {
		lang = lang[:sp]
	}
	return fence{char: c, length: n, indent: indent}, lang, true
}

func closesFence(line string, f fence) bool {
	if indentOf(line) > 3 {
		return false
	}
	rest := strings.TrimSpace(line)
	if len(rest) < f.length {
		return false
	}
	for i := 0; i < len(rest); i++ {
		if rest[i] != f.char {
			return false
		}
	}
	return true
}

// collectFence gathers code lines starting at i until the closing fence.
// An unclosed fence runs to the end of the input.
func collectFence(lines []string, i int, f fence) (string, int) {
	var code []string
	for ; i < len(lines); i++ {
		if closesFence(lines[i], f) {
			return strings.Join(code, "\n"), i + 1
		}
		code = append(code, dedent(lines[i], f.indent))
	}
	return strings.Join(code, "\n"), i
}

// heading parses an ATX heading. Levels 5 and 6 are shown as level 4.
func heading(line string) (int, string, bool) {
	if indentOf(line) > 3 {
		return 0, "", false
	}
	rest := strings.TrimLeft(line, " \t")
	level := 0
	for level < len(rest) && rest[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return 0, "", false
	}
	text := rest[level:]
	if text != "" && text[0] != ' ' && text[0] != '\t' {
		return 0, "", false
	}
	text = strings.TrimSpace(text)

	// Optional closing sequence: "## Title ##"
	if trimmed := strings.TrimRight(text, "#"); trimmed != text {
		if trimmed == "" {
			text = ""
		} else if strings.HasSuffix(trimmed, " ") || strings.HasSuffix(trimmed, "\t") {
			text = strings.TrimSpace(trimmed)
		}
	}

	if level > 4 {
		level = 4
	}
	return level, text, true
}

func isRule(line string) bool {
	if indentOf(line) > 3 {
		return false
	}
	var c rune
	count := 0
	for _, r := range line {
		switch {
		case r == ' ' || r == '\t':
			continue
		case r == '-' || r == '*' || r == '_':
			if c == 0 {
				c = r
			} else if r != c {
				return false
			}
			count++
		default:
			return false
		}
	}
	return count >= 3
}

func isQuote(line string) bool {
	return indentOf(line) <= 3 && strings.HasPrefix(strings.TrimLeft(line, " \t"), ">")
}

func stripQuote(line string) string {
	rest := strings.TrimLeft(line, " \t")
	rest = strings.TrimPrefix(rest, ">")
	if strings.HasPrefix(rest, " ") {
		rest = rest[1:]
	}
	return rest
}

type marker struct {
	ordered bool
	bullet  byte
	start   int
	indent  int
	// content is the column where the item text begins
	content int
	text    string
}

func listMarker(line string) (marker, bool) {
	indent := indentOf(line)
	rest := strings.TrimLeft(line, " \t")
	if rest == "" {
		return marker{}, false
	}

	m := marker{indent: indent}
	var width int
	switch c := rest[0]; {
	case c == '-' || c == '*' || c == '+':
		m.bullet = c
		width = 1
	case c >= '0' && c <= '9':
		n := 0
		for n < len(rest) && n < 9 && rest[n] >= '0' && rest[n] <= '9' {
			n++
		}
		if n >= len(rest) || (rest[n] != '.' && rest[n] != ')') {
			return marker{}, false
		}
		start, err := strconv.Atoi(rest[:n])
		if err != nil {
			return marker{}, false
		}
		m.ordered = true
		m.bullet = rest[n]
		m.start = start
		width = n + 1
	default:
		return marker{}, false
	}

	after := rest[width:]
	if after == "" || (after[0] != ' ' && after[0] != '\t') {
		return marker{}, false
	}
	text := strings.TrimLeft(after, " \t")
	spaces := len(after) - len(text)
	if spaces > 4 {
		spaces = 1
	}
	m.content = indent + width + spaces
	m.text = text
	return m, true
}

func sameList(a, b marker) bool {
	return a.ordered == b.ordered && a.bullet == b.bullet
}

// parseList consumes a list starting at lines[i]. Lines indented past the
// marker belong to the current item; a sibling marker at the same indent
// starts the next item.
func parseList(lines []string, i int, first marker, depth int) (Block, int) {
	list := Block{Kind: BlockList, Ordered: first.ordered, Start: first.start}

	var body []string
	flushItem := func() {
		if body == nil {
			return
		}
		list.Items = append(list.Items, buildItem(body, depth))
		body = nil
	}

	m := first
	body = []string{m.text}
	i++

	for i < len(lines) {
		line := lines[i]

		if isBlank(line) {
			// The list continues only if the next content line is part of it
			j := i + 1
			for j < len(lines) && isBlank(lines[j]) {
				j++
			}
			if j >= len(lines) {
				break
			}
			next := lines[j]
			if nm, ok := listMarker(next); ok && nm.indent <= first.indent && sameList(nm, first) {
				i = j
				continue
			}
			if indentOf(next) > first.indent {
				body = append(body, "")
				i = j
				continue
			}
			break
		}

		if nm, ok := listMarker(line); ok && nm.indent <= first.indent {
			if !sameList(nm, first) {
				break
			}
			flushItem()
			m = nm
			body = []string{m.text}
			i++
			continue
		}

		if indentOf(line) > first.indent {
			body = append(body, dedent(line, m.content))
			i++
			continue
		}

		// Lazy continuation of the item's paragraph
		if _, _, fenced := openFence(line); fenced || isRule(line) || isQuote(line) {
			break
		}
		if _, _, ok := heading(line); ok {
			break
		}
		if len(body) > 0 && body[len(body)-1] == "" {
			break
		}
		body = append(body, strings.TrimSpace(line))
		i++
	}
	flushItem()

	return list, i
}

func buildItem(body []string, depth int) Item {
	blocks := parseBlocks(body, depth+1)
	if len(blocks) > 0 && blocks[0].Kind == BlockParagraph {
		return Item{Inlines: blocks[0].Inlines, Children: blocks[1:]}
	}
	return Item{Children: blocks}
}
