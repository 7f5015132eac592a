package htmltext

import (
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"
)

func TestWrapWidthBounds(t *testing.T) {
	src := strings.Join([]string{
		"<h2>Heading with several words in it</h2>",
		"<p>Paragraph with a <a href=\"https://example.com\">link</a> and <code>inline code</code> plus more words to wrap.</p>",
		"<ul><li>item one with a long line that should wrap cleanly at small widths</li>",
		"<li>two<ol><li>nested ordered item with more words and wrapping</li></ol></li></ul>",
		"<pre>fmt.Println(\"hello there from a longer code line that is never wrapped\")</pre>",
	}, "\n")

	for width := 30; width <= 100; width += 5 {
		out := renderHTML(t, src, WithWidth(width))
		for i, line := range strings.Split(out, "\n") {
			if strings.HasPrefix(line, "fmt.Println(") {
				continue
			}
			if ansi.PrintableRuneWidth(line) > width {
				t.Fatalf("width %d: line %d exceeds width: %q", width, i+1, line)
			}
		}
	}
}

func TestPreformattedIgnoresWidth(t *testing.T) {
	line := strings.Repeat("y", 50)
	out := renderHTML(t, "<pre>"+line+"</pre>", WithWidth(20))
	if out != line+"\n\n" {
		t.Fatalf("verbatim line was altered: %q", out)
	}
}
