package htmltext

type listKind uint8

const (
	listNone listKind = iota
	listOrdered
	listUnordered
)

// tagRule describes the state transitions attached to one tag name.
// Start and end handlers apply the fields in a fixed order, so a rule only
// declares what happens, never when.
type tagRule struct {
	lineBreak bool   // commit with a single newline on open
	block     bool   // commit on close
	tight     bool   // close commits with a single newline instead of a gap
	quote     string // marker pushed on open, popped on close
	verbatim  bool
	list      listKind
	item      bool
	heading   int // 1..6
	paragraph bool
	link      bool
	span      bool
	ignore    bool
}

const menuseqClass = "menuseq"

var tagRules = map[string]tagRule{
	"br":     {lineBreak: true},
	"li":     {lineBreak: true, block: true, tight: true, item: true},
	"p":      {block: true, paragraph: true},
	"pre":    {block: true, verbatim: true},
	"ol":     {block: true, list: listOrdered},
	"ul":     {block: true, list: listUnordered},
	"h1":     {block: true, heading: 1},
	"h2":     {block: true, heading: 2},
	"h3":     {block: true, heading: 3},
	"h4":     {block: true, heading: 4},
	"h5":     {block: true, heading: 5},
	"h6":     {block: true, heading: 6},
	"code":   {quote: "`"},
	"a":      {link: true},
	"span":   {span: true},
	"head":   {ignore: true},
	"style":  {ignore: true},
	"script": {ignore: true},
}

func ruleFor(name string) (tagRule, bool) {
	r, ok := tagRules[name]
	return r, ok
}
