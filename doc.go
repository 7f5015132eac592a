// Package htmltext renders HTML to word-wrapped plain text.
//
// The converter is event driven: a tokenizer (golang.org/x/net/html) feeds
// start tags, end tags, text and character references into a Converter one
// event at a time. The Converter tracks list, quote, heading and verbatim
// context, builds one block of text at a time and wraps it on commit.
// External hyperlink targets are collected as footnotes and rendered in a
// trailing References section.
//
// Core properties:
//   - One pass over the input, no document tree
//   - Word wrap at 72 display columns by default, never at hyphens
//   - Preformatted text is reproduced byte for byte
//   - Malformed markup degrades silently instead of failing
//
// Example:
//
//	err := htmltext.Render(htmltext.RenderRequest{
//		Reader: strings.NewReader(`<p>See <a href="https://example.com">the site</a>.</p>`),
//		Writer: os.Stdout,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// A Converter processes exactly one document and is not safe for concurrent
// use.
package htmltext
