package htmltext

import (
	"strconv"
	"strings"
)

const (
	bulletPrefix     = "  • "
	listIndentStep   = "   "
	listContinuation = "    "
)

type listFrame struct {
	ordered bool
	next    int
	prefix  string
}

type quoteFrame struct {
	marker string
	opened bool
	silent bool
}

// formatState holds the nested context of the document position.
type formatState struct {
	lists    []listFrame
	quotes   []quoteFrame
	spans    []bool
	indent   [2]int
	verbatim bool
	ignore   int
}

func (st *formatState) reset() {
	st.lists = st.lists[:0]
	st.quotes = st.quotes[:0]
	st.spans = st.spans[:0]
	st.indent = [2]int{}
	st.verbatim = false
	st.ignore = 0
}

// listIndent is 3 × (depth − 1) spaces.
func (st *formatState) listIndent() string {
	if len(st.lists) < 2 {
		return ""
	}
	return strings.Repeat(listIndentStep, len(st.lists)-1)
}

func (st *formatState) pushList(ordered bool) {
	f := listFrame{ordered: ordered}
	if ordered {
		f.next = 1
	}
	st.lists = append(st.lists, f)
	if !ordered {
		st.lists[len(st.lists)-1].prefix = st.listIndent() + bulletPrefix
	}
}

func (st *formatState) popList() bool {
	if len(st.lists) == 0 {
		return false
	}
	st.lists = st.lists[:len(st.lists)-1]
	return true
}

// nextItem advances the innermost ordered list to its next number.
func (st *formatState) nextItem() {
	if len(st.lists) == 0 {
		return
	}
	top := &st.lists[len(st.lists)-1]
	if !top.ordered {
		return
	}
	top.prefix = st.listIndent() + " " + strconv.Itoa(top.next) + ". "
	top.next++
}

func (st *formatState) itemPrefix() string {
	if len(st.lists) == 0 {
		return ""
	}
	return st.lists[len(st.lists)-1].prefix
}

func (st *formatState) pushQuote(marker string) {
	st.quotes = append(st.quotes, quoteFrame{marker: marker, silent: st.verbatim})
}

func (st *formatState) popQuote() (quoteFrame, bool) {
	if len(st.quotes) == 0 {
		return quoteFrame{}, false
	}
	f := st.quotes[len(st.quotes)-1]
	st.quotes = st.quotes[:len(st.quotes)-1]
	return f, true
}

// openQuotes returns the opening markers not yet emitted, outermost first,
// and marks them as emitted.
func (st *formatState) openQuotes() string {
	var b strings.Builder
	for i := range st.quotes {
		q := &st.quotes[i]
		if q.opened || q.silent {
			continue
		}
		b.WriteString(q.marker)
		q.opened = true
	}
	return b.String()
}

func (st *formatState) indentWidth() int {
	return st.indent[0] + st.indent[1]
}
