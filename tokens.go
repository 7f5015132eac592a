package htmltext

// Attr is a tag attribute as delivered by the tokenizer.
type Attr struct {
	Key string
	Val string
}

// Handler receives tokenizer events in document order.
type Handler interface {
	StartTag(name string, attrs []Attr)
	EndTag(name string)
	Text(data string)
	// CharRef receives a numeric reference without "&#" and ";", e.g. "65" or "x41".
	CharRef(ref string)
	// EntityRef receives a named reference without "&" and ";", e.g. "amp".
	EntityRef(name string)
}

func attrValue(attrs []Attr, key string) (string, bool) {
	for _, a := range attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
