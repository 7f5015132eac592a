package htmltext

import (
	"os"
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"
	"golang.org/x/net/html"
)

func TestIntegrationRenderGuideKeepsAllText(t *testing.T) {
	src, err := os.ReadFile("testdata/guide.html")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	out := strings.Join(strings.Fields(renderHTML(t, string(src))), " ")
	for _, word := range visibleWords(string(src)) {
		if !strings.Contains(out, word) {
			t.Fatalf("missing word %q in output:\n%s", word, out)
		}
	}
	for _, hidden := range []string{"font-family", "console.log", "<title>"} {
		if strings.Contains(out, hidden) {
			t.Fatalf("ignored content %q leaked into output", hidden)
		}
	}
}

func TestIntegrationRenderWrapped(t *testing.T) {
	src, err := os.ReadFile("testdata/guide.html")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	out := renderHTML(t, string(src), WithWidth(40))
	for i, line := range strings.Split(out, "\n") {
		if ansi.PrintableRuneWidth(line) > 40 {
			t.Fatalf("line %d exceeds width: %q", i+1, line)
		}
	}
	if !strings.Contains(out, "       • simple\n") {
		t.Fatalf("nested list marker lost: %q", out)
	}
	if !strings.Contains(out, "   1. https://example.com/filters\n") {
		t.Fatalf("missing reference entry: %q", out)
	}
}

// visibleWords lists the words of every text token outside head, script
// and style.
func visibleWords(src string) []string {
	z := html.NewTokenizer(strings.NewReader(src))
	hidden := 0
	var words []string
	for {
		switch z.Next() {
		case html.ErrorToken:
			return words
		case html.StartTagToken:
			if isHiddenTag(z.Token().Data) {
				hidden++
			}
		case html.EndTagToken:
			if isHiddenTag(z.Token().Data) && hidden > 0 {
				hidden--
			}
		case html.TextToken:
			if hidden == 0 {
				words = append(words, strings.Fields(string(z.Text()))...)
			}
		}
	}
}

func isHiddenTag(name string) bool {
	return name == "head" || name == "script" || name == "style"
}
