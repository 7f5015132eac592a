package htmltext

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func renderHTML(t *testing.T, src string, opts ...RenderOption) string {
	t.Helper()
	opts = append([]RenderOption{WithLogger(zerolog.Nop())}, opts...)
	var out bytes.Buffer
	if err := Render(RenderRequest{Reader: strings.NewReader(src), Writer: &out, Options: opts}); err != nil {
		t.Fatalf("render: %v", err)
	}
	return out.String()
}

func assertOutput(t *testing.T, src, want string, opts ...RenderOption) {
	t.Helper()
	got := renderHTML(t, src, opts...)
	if got != want {
		t.Fatalf("unexpected output for %q\nwant: %q\n got: %q", src, want, got)
	}
}
