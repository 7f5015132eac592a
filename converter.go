package htmltext

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"
)

const (
	paragraphGap = "\n\n"
	lineBreak    = "\n"
)

// Converter turns tokenizer events into wrapped plain text. It implements
// Handler. Committed blocks are kept in memory until WriteTo or Bytes.
type Converter struct {
	cfg renderConfig
	log zerolog.Logger

	state     formatState
	block     strings.Builder
	needSpace bool
	out       []string

	footnotes []string
	href      string
	finished  bool
}

var _ Handler = (*Converter)(nil)

// NewConverter returns a Converter for one document.
func NewConverter(opts ...RenderOption) *Converter {
	cfg := newRenderConfig(opts)
	return &Converter{cfg: cfg, log: cfg.log()}
}

// StartTag applies the open transitions of the named tag.
func (c *Converter) StartTag(name string, attrs []Attr) {
	rule, ok := ruleFor(strings.ToLower(name))
	if !ok {
		return
	}
	if rule.lineBreak {
		c.commit(lineBreak)
	}
	if rule.quote != "" {
		c.state.pushQuote(rule.quote)
	}
	if rule.verbatim {
		c.commit(paragraphGap)
		c.state.verbatim = true
	}
	if rule.list != listNone {
		c.commit(lineBreak)
		c.state.pushList(rule.list == listOrdered)
	}
	if rule.item {
		c.state.nextItem()
	}
	if rule.heading > 0 {
		c.state.indent = [2]int{rule.heading - 1, 0}
	}
	if rule.paragraph {
		c.state.indent[1] = 1
	}
	if rule.link {
		c.href = ""
		if href, ok := attrValue(attrs, "href"); ok && strings.Contains(href, "://") {
			c.href = href
		}
	}
	if rule.span {
		class, _ := attrValue(attrs, "class")
		tracked := strings.Contains(class, menuseqClass)
		if tracked {
			c.log.Info().Str("class", class).Msg(menuseqClass)
			c.state.pushQuote(`"`)
		}
		c.state.spans = append(c.state.spans, tracked)
	}
	if rule.ignore {
		c.state.ignore++
	}
}

// EndTag applies the close transitions of the named tag.
func (c *Converter) EndTag(name string) {
	name = strings.ToLower(name)
	rule, ok := ruleFor(name)
	if !ok {
		return
	}
	if rule.block {
		if rule.tight {
			c.commit(lineBreak)
		} else {
			c.commit(paragraphGap)
		}
	}
	if rule.quote != "" {
		c.closeQuote(name)
	}
	if rule.span {
		if n := len(c.state.spans); n > 0 {
			tracked := c.state.spans[n-1]
			c.state.spans = c.state.spans[:n-1]
			if tracked {
				c.closeQuote(name)
			}
		}
	}
	if rule.list != listNone {
		if c.state.popList() && len(c.state.lists) == 0 {
			c.endList()
		}
	}
	if rule.verbatim {
		c.state.verbatim = false
	}
	if rule.link && c.href != "" {
		c.footnotes = append(c.footnotes, c.href)
		c.block.WriteString("[" + strconv.Itoa(len(c.footnotes)) + "]")
		c.href = ""
	}
	if rule.ignore && c.state.ignore > 0 {
		c.state.ignore--
	}
}

// Text appends character data to the current block.
func (c *Converter) Text(data string) {
	if c.state.ignore > 0 {
		return
	}
	if c.state.verbatim {
		c.block.WriteString(data)
		return
	}
	if c.href != "" && data == c.href {
		// Link text is the target itself, no footnote.
		c.href = ""
	}
	words := strings.Fields(data)
	if len(words) == 0 {
		if data != "" {
			c.needSpace = true
		}
		return
	}
	first, _ := utf8.DecodeRuneInString(data)
	if unicode.IsSpace(first) {
		c.needSpace = true
	}
	if c.needSpace && c.block.Len() > 0 {
		c.block.WriteByte(' ')
	}
	c.block.WriteString(c.state.openQuotes())
	c.block.WriteString(strings.Join(words, " "))
	last, _ := utf8.DecodeLastRuneInString(data)
	c.needSpace = unicode.IsSpace(last)
}

// CharRef resolves a numeric character reference and feeds it as text.
func (c *Converter) CharRef(ref string) {
	c.Text(string(c.resolveCharRef(ref)))
}

// EntityRef resolves a named character reference and feeds it as text.
func (c *Converter) EntityRef(name string) {
	raw := "&" + name + ";"
	s := html.UnescapeString(raw)
	if s == raw {
		c.log.Warn().Str("entity", name).Msg("unknown entity reference")
		s = string(utf8.RuneError)
	}
	c.Text(s)
}

func (c *Converter) resolveCharRef(ref string) rune {
	var (
		n   int64
		err error
	)
	if strings.HasPrefix(ref, "x") || strings.HasPrefix(ref, "X") {
		n, err = strconv.ParseInt(ref[1:], 16, 32)
	} else {
		n, err = strconv.ParseInt(ref, 10, 32)
	}
	r := rune(n)
	if err != nil || n <= 0 || !utf8.ValidRune(r) {
		c.log.Warn().Str("ref", ref).Msg("invalid character reference")
		return utf8.RuneError
	}
	return r
}

// Finish commits the trailing block and appends the References section.
// Calling Finish again has no effect.
func (c *Converter) Finish() {
	if c.finished {
		return
	}
	c.finished = true
	c.commit(paragraphGap)
	if len(c.footnotes) == 0 {
		return
	}
	c.state.reset()
	c.href = ""
	c.state.indent = [2]int{1, 0}
	c.block.WriteString("References")
	c.commit(paragraphGap)
	c.state.indent = [2]int{1, 1}
	for i, target := range c.footnotes {
		fmt.Fprintf(&c.block, "%2d. %s", i+1, target)
		c.commit(paragraphGap)
	}
}

// Footnotes returns the recorded link targets in encounter order.
func (c *Converter) Footnotes() []string {
	return append([]string(nil), c.footnotes...)
}

// Bytes finishes the document and returns the rendered text.
func (c *Converter) Bytes() []byte {
	c.Finish()
	var b strings.Builder
	for _, blk := range c.out {
		b.WriteString(blk)
	}
	return []byte(b.String())
}

// WriteTo finishes the document and writes the rendered text to w.
func (c *Converter) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(c.Bytes())
	return int64(n), err
}

func (c *Converter) commit(sep string) {
	if c.block.Len() > 0 {
		text := c.block.String()
		c.block.Reset()
		if !c.state.verbatim {
			text = strings.Join(c.wrapper().wrap(text), "\n")
		}
		c.out = append(c.out, text+sep)
	}
	c.needSpace = false
}

func (c *Converter) wrapper() wrapper {
	indent := strings.Repeat(" ", c.state.indentWidth())
	w := wrapper{
		width:            c.cfg.width,
		initialIndent:    indent,
		subsequentIndent: indent,
	}
	if prefix := c.state.itemPrefix(); prefix != "" {
		w.initialIndent += prefix
		w.subsequentIndent += c.state.listIndent() + listContinuation
	}
	return w
}

func (c *Converter) closeQuote(name string) {
	q, ok := c.state.popQuote()
	if !ok {
		c.log.Debug().Str("tag", name).Msg("close without open quote")
		return
	}
	if q.opened {
		c.block.WriteString(q.marker)
	}
}

// endList separates the outermost list from what follows by a blank line.
func (c *Converter) endList() {
	if len(c.out) == 0 {
		return
	}
	last := c.out[len(c.out)-1]
	if strings.HasSuffix(last, lineBreak) && !strings.HasSuffix(last, paragraphGap) {
		c.out = append(c.out, lineBreak)
	}
}
