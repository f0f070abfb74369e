package markdown

import (
	"sort"
	"strings"
	"unicode"
)

// inlineParser holds one line's runes and the lookup tables built lazily
// over them, so every delimiter search is a table lookup instead of a
// scan to the end of the text.
type inlineParser struct {
	rs    []rune
	depth int

	brackets map[int]int          // '[' position to its matching ']'
	closers  map[delimKey][]closer // valid closers per delimiter, by position
	noCode   map[int]bool         // backtick run lengths with no closer left
}

type delimKey struct {
	c rune
	w int
}

// closer is a delimiter run starting at start that can close at at
type closer struct {
	start int
	at    int
}

func parseInlines(s string, depth int) []Inline {
	p := &inlineParser{rs: []rune(s), depth: depth}
	return p.parse()
}

func (p *inlineParser) parse() []Inline {
	var out []Inline
	var text strings.Builder

	flushText := func() {
		if text.Len() > 0 {
			out = append(out, Inline{Kind: InlineText, Text: text.String()})
			text.Reset()
		}
	}
	emit := func(in Inline) {
		flushText()
		out = append(out, in)
	}

	rs, depth := p.rs, p.depth
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case r == '\\' && i+1 < len(rs) && isASCIIPunct(rs[i+1]):
			text.WriteRune(rs[i+1])
			i += 2
			continue

		case r == '`':
			if code, next, ok := p.codeSpan(i); ok {
				emit(Inline{Kind: InlineCode, Text: code})
				i = next
				continue
			}
			n := runLen(rs, i)
			text.WriteString(string(rs[i : i+n]))
			i += n
			continue

		case r == '[' && depth < maxDepth:
			if label, url, next, ok := p.link(i); ok {
				emit(Inline{Kind: InlineLink, URL: url, Children: parseInlines(label, depth+1)})
				i = next
				continue
			}

		case (r == '*' || r == '_') && depth < maxDepth:
			if kind, inner, next, ok := p.emphasis(i); ok {
				emit(Inline{Kind: kind, Children: parseInlines(inner, depth+1)})
				i = next
				continue
			}
			// An unmatched run is literal as a whole
			n := runLen(rs, i)
			text.WriteString(string(rs[i : i+n]))
			i += n
			continue
		}

		text.WriteRune(r)
		i++
	}
	flushText()

	return out
}

func runLen(rs []rune, i int) int {
	n := 0
	for i+n < len(rs) && rs[i+n] == rs[i] {
		n++
	}
	return n
}

func isASCIIPunct(r rune) bool {
	return r < 0x80 && unicode.IsPunct(r) || strings.ContainsRune("$+<=>^`|~", r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// codeSpan matches a backtick run with a closing run of the same length.
// A failed search means no later run of that length closes either.
func (p *inlineParser) codeSpan(i int) (string, int, bool) {
	rs := p.rs
	n := runLen(rs, i)
	if p.noCode[n] {
		return "", 0, false
	}
	for j := i + n; j < len(rs); {
		if rs[j] != '`' {
			j++
			continue
		}
		m := runLen(rs, j)
		if m == n {
			code := string(rs[i+n : j])
			if len(code) >= 2 && code[0] == ' ' && code[len(code)-1] == ' ' && strings.TrimSpace(code) != "" {
				code = code[1 : len(code)-1]
			}
			return code, j + m, true
		}
		j += m
	}
	if p.noCode == nil {
		p.noCode = make(map[int]bool)
	}
	p.noCode[n] = true
	return "", 0, false
}

// matchBrackets pairs every '[' with the ']' that closes it, skipping
// escaped brackets.
func (p *inlineParser) matchBrackets() {
	rs := p.rs
	p.brackets = make(map[int]int)
	var open []int
	for j := 0; j < len(rs); j++ {
		switch rs[j] {
		case '\\':
			if j+1 < len(rs) && isASCIIPunct(rs[j+1]) {
				j++
			}
		case '[':
			open = append(open, j)
		case ']':
			if len(open) > 0 {
				p.brackets[open[len(open)-1]] = j
				open = open[:len(open)-1]
			}
		}
	}
}

// link matches [label](url) where url is an absolute http(s) URL. Any other
// destination leaves the whole construct as literal text.
func (p *inlineParser) link(i int) (string, string, int, bool) {
	if p.brackets == nil {
		p.matchBrackets()
	}
	rs := p.rs
	end, ok := p.brackets[i]
	if !ok || end+1 >= len(rs) || rs[end+1] != '(' {
		return "", "", 0, false
	}
	label := string(rs[i+1 : end])
	if strings.TrimSpace(label) == "" {
		return "", "", 0, false
	}

	parens := 0
	for j := end + 2; j < len(rs); j++ {
		switch rs[j] {
		case ' ', '\t', '\n':
			return "", "", 0, false
		case '(':
			parens++
		case ')':
			if parens == 0 {
				url := string(rs[end+2 : j])
				if !IsWebURL(url) {
					return "", "", 0, false
				}
				return label, url, j + 1, true
			}
			parens--
		}
	}
	return "", "", 0, false
}

// emphasis matches **strong**, __strong__, *em* or _em_ starting at i.
// Underscore delimiters must sit on word boundaries so identifiers such as
// snake_case stay intact.
func (p *inlineParser) emphasis(i int) (InlineKind, string, int, bool) {
	rs := p.rs
	c := rs[i]
	n := runLen(rs, i)

	if c == '_' && i > 0 && isWordRune(rs[i-1]) {
		return 0, "", 0, false
	}

	if n >= 2 {
		if inner, next, ok := p.closeDelim(i+2, c, 2); ok {
			return InlineStrong, inner, next, true
		}
		return 0, "", 0, false
	}
	if inner, next, ok := p.closeDelim(i+1, c, 1); ok {
		return InlineEmphasis, inner, next, true
	}
	return 0, "", 0, false
}

// closeDelim finds the closing delimiter of width w for content starting at
// from. The content must be non-empty and not padded with whitespace.
func (p *inlineParser) closeDelim(from int, c rune, w int) (string, int, bool) {
	rs := p.rs
	if from >= len(rs) || unicode.IsSpace(rs[from]) {
		return "", 0, false
	}

	j := from + 1
	// The rest of the opening run is seen on its own
	if j < len(rs) && rs[j] == c && rs[j-1] == c {
		run := runLen(rs, j)
		if w == 2 && run >= 2 {
			if at := j + run - 2; p.canClose(at, c, w) {
				return string(rs[from:at]), at + w, true
			}
		}
		j += run
	}

	list := p.closersFor(c, w)
	k := sort.Search(len(list), func(k int) bool { return list[k].start >= j })
	if k == len(list) {
		return "", 0, false
	}
	at := list[k].at
	return string(rs[from:at]), at + w, true
}

// canClose reports whether a delimiter of width w at at may close: it must
// not follow whitespace, and an underscore must not be followed by a word.
func (p *inlineParser) canClose(at int, c rune, w int) bool {
	rs := p.rs
	if at == 0 || unicode.IsSpace(rs[at-1]) {
		return false
	}
	return !(c == '_' && at+w < len(rs) && isWordRune(rs[at+w]))
}

// closersFor lists, in order, every complete run of c that can close a
// delimiter of width w. A single delimiter closes only a run of one; a
// double closes at the end of a longer run so "***x***" nests.
func (p *inlineParser) closersFor(c rune, w int) []closer {
	key := delimKey{c, w}
	if list, ok := p.closers[key]; ok {
		return list
	}
	rs := p.rs
	var list []closer
	for s := 0; s < len(rs); {
		if rs[s] != c {
			s++
			continue
		}
		run := runLen(rs, s)
		var at int
		switch {
		case w == 1 && run == 1:
			at = s
		case w == 2 && run >= 2:
			at = s + run - 2
		default:
			s += run
			continue
		}
		if p.canClose(at, c, w) {
			list = append(list, closer{start: s, at: at})
		}
		s += run
	}
	if p.closers == nil {
		p.closers = make(map[delimKey][]closer)
	}
	p.closers[key] = list
	return list
}
