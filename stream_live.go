package htmltext

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// RenderRequest configures Render.
type RenderRequest struct {
	Reader  io.Reader
	Writer  io.Writer
	Options []RenderOption
}

// ParseRequest configures Parse.
type ParseRequest struct {
	Reader  io.Reader
	Handler Handler
	Options []RenderOption
}

// Render converts HTML from Reader and writes the text to Writer. Output is
// written once, after the whole input was consumed; nothing is written when
// an error occurs.
func Render(req RenderRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("render: reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("render: writer is nil")
	}
	conv := NewConverter(req.Options...)
	if err := Parse(ParseRequest{
		Reader:  req.Reader,
		Handler: conv,
		Options: req.Options,
	}); err != nil {
		return err
	}
	if _, err := conv.WriteTo(req.Writer); err != nil {
		return fmt.Errorf("render: write: %w", err)
	}
	return nil
}

// ConvertString converts an HTML string to text.
func ConvertString(src string, opts ...RenderOption) (string, error) {
	var out bytes.Buffer
	if err := Render(RenderRequest{
		Reader:  strings.NewReader(src),
		Writer:  &out,
		Options: opts,
	}); err != nil {
		return "", err
	}
	return out.String(), nil
}

// Parse tokenizes HTML from Reader and feeds the events to Handler. The
// input must be UTF-8; a leading byte order mark is dropped.
func Parse(req ParseRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("parse: reader is nil")
	}
	if req.Handler == nil {
		return fmt.Errorf("parse: handler is nil")
	}
	cfg := newRenderConfig(req.Options)
	src := transform.NewReader(&validatingReader{r: req.Reader}, unicode.UTF8BOM.NewDecoder())
	z := html.NewTokenizer(src)
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			err := z.Err()
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("parse: %w", err)
		case html.TextToken:
			if cfg.refEvents {
				emitReferences(req.Handler, string(z.Raw()))
			} else {
				req.Handler.Text(string(z.Text()))
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)
			var attrs []Attr
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				attrs = append(attrs, Attr{Key: string(key), Val: string(val)})
			}
			req.Handler.StartTag(tag, attrs)
			if tt == html.SelfClosingTagToken {
				req.Handler.EndTag(tag)
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			req.Handler.EndTag(string(name))
		}
	}
}

var referencePattern = regexp.MustCompile(`&(?:#([0-9]+|[xX][0-9a-fA-F]+);?|([A-Za-z][A-Za-z0-9]*);)`)

// emitReferences splits raw text into Text, CharRef and EntityRef events.
func emitReferences(h Handler, raw string) {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	pos := 0
	for _, m := range referencePattern.FindAllStringSubmatchIndex(raw, -1) {
		if m[0] > pos {
			h.Text(raw[pos:m[0]])
		}
		if m[2] >= 0 {
			h.CharRef(raw[m[2]:m[3]])
		} else {
			h.EntityRef(raw[m[4]:m[5]])
		}
		pos = m[1]
	}
	if pos < len(raw) {
		h.Text(raw[pos:])
	}
}

// validatingReader fails the read with ErrInvalidUTF8 or ErrBinaryInput as
// soon as the bytes seen so far prove the input is not UTF-8 text.
type validatingReader struct {
	r    io.Reader
	v    validator
	tail []byte
}

func (vr *validatingReader) Read(p []byte) (int, error) {
	n, err := vr.r.Read(p)
	if n > 0 {
		buf := append(vr.tail, p[:n]...)
		rest, verr := vr.v.addBytes(buf)
		if verr != nil {
			return 0, verr
		}
		vr.tail = append(vr.tail[:0], rest...)
	}
	if err == io.EOF && len(vr.tail) > 0 {
		vr.tail = vr.tail[:0]
		return n, ErrInvalidUTF8
	}
	return n, err
}
