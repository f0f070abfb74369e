package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestRenderMarkdown(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		want    []string
		notWant []string
	}{
		{
			name:    "emphasis",
			src:     "a **bold** and *italic* word",
			want:    []string{"a bold and italic word"},
			notWant: []string{"**", "*italic*"},
		},
		{
			name:    "heading",
			src:     "## عنوان",
			want:    []string{"عنوان"},
			notWant: []string{"##"},
		},
		{
			name: "unordered list",
			src:  "- یک\n- دو",
			want: []string{"• یک", "• دو"},
		},
		{
			name: "ordered list keeps start",
			src:  "3. c\n4. d",
			want: []string{"3. c", "4. d"},
		},
		{
			name:    "inline code",
			src:     "run `go test`",
			want:    []string{"go test"},
			notWant: []string{"`"},
		},
		{
			name:    "link text",
			src:     "[docs](https://example.com)",
			want:    []string{"docs"},
			notWant: []string{"](", "[docs"},
		},
		{
			name: "code block",
			src:  "```go\nfmt.Println(1)\n```",
			want: []string{"fmt.Println(1)"},
		},
		{
			name: "rule",
			src:  "a\n\n---\n\nb",
			want: []string{"───"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ansi.Strip(RenderMarkdown(tt.src, 60))
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("RenderMarkdown(%q) = %q, want it to contain %q", tt.src, got, w)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(got, nw) {
					t.Errorf("RenderMarkdown(%q) = %q, should not contain %q", tt.src, got, nw)
				}
			}
		})
	}
}

func TestRenderMarkdown_LinkIsHyperlink(t *testing.T) {
	got := RenderMarkdown("[docs](https://example.com)", 60)
	if !strings.Contains(got, ansi.SetHyperlink("https://example.com")) {
		t.Error("links should be emitted as OSC 8 hyperlinks")
	}
}

func TestRenderMarkdown_Wraps(t *testing.T) {
	src := strings.Repeat("کلمه ", 40)
	got := ansi.Strip(RenderMarkdown(src, 30))
	for _, line := range strings.Split(got, "\n") {
		if w := ansi.StringWidth(line); w > 30 {
			t.Errorf("line width %d exceeds 30: %q", w, line)
		}
	}
}

func TestRenderMarkdown_StripsEscapes(t *testing.T) {
	got := RenderMarkdown("hello \x1b[2Jworld", 60)
	if strings.Contains(got, "\x1b[2J") {
		t.Error("escape sequences in the answer must not reach the terminal")
	}
}

func TestWrapText(t *testing.T) {
	if got := wrapText("abc", 0); got != "abc" {
		t.Errorf("wrapText with zero width = %q", got)
	}
	got := wrapText("aaaa bbbb", 4)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 || strings.TrimSpace(lines[0]) != "aaaa" || strings.TrimSpace(lines[1]) != "bbbb" {
		t.Errorf("wrapText() = %q", got)
	}
}
