// Package markdown parses the answer text returned by the backend into a
// small, closed document tree. Only a whitelist of constructs is
// recognized; anything else, including raw HTML and terminal escape
// sequences, survives only as literal text. Renderers walk the tree and
// never see the raw source.
package markdown

// BlockKind identifies a block-level node.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockList
	BlockQuote
	BlockCode
	BlockRule
)

// Block is a block-level node. Which fields are meaningful depends on Kind.
type Block struct {
	Kind BlockKind

	// Heading level (1-4)
	Level int

	// Paragraph and heading content
	Inlines []Inline

	// Lists
	Ordered bool
	Start   int
	Items   []Item

	// Block quote content
	Children []Block

	// Fenced code
	Lang string
	Code string
}

// Item is one list item: its first paragraph plus any nested blocks.
type Item struct {
	Inlines  []Inline
	Children []Block
}

// InlineKind identifies an inline node.
type InlineKind int

const (
	InlineText InlineKind = iota
	InlineStrong
	InlineEmphasis
	InlineCode
	InlineLink
)

// Inline is a span of text. Text and Code carry Text; Strong, Emphasis and
// Link carry Children; Link also carries an http(s) URL.
type Inline struct {
	Kind     InlineKind
	Text     string
	URL      string
	Children []Inline
}

// PlainText flattens inlines to their visible text.
func PlainText(inlines []Inline) string {
	var out []byte
	for _, in := range inlines {
		switch in.Kind {
		case InlineText, InlineCode:
			out = append(out, in.Text...)
		default:
			out = append(out, PlainText(in.Children)...)
		}
	}
	return string(out)
}
