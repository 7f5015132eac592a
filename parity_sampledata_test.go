package htmltext

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestRenderGoldenFiles(t *testing.T) {
	root := "testdata"
	paths, err := filepath.Glob(filepath.Join(root, "*.html"))
	if err != nil {
		t.Fatalf("glob testdata: %v", err)
	}
	if len(paths) == 0 {
		t.Fatalf("no html files found under %s", root)
	}
	for _, path := range paths {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			src, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read %s: %v", path, err)
			}
			widths, err := goldenWidthsForFile(path)
			if err != nil {
				t.Fatalf("golden widths %s: %v", path, err)
			}
			for _, width := range widths {
				goldenPath := goldenPathFor(path, width)
				want, err := os.ReadFile(goldenPath)
				if err != nil {
					t.Fatalf("read golden %s: %v", goldenPath, err)
				}
				var out bytes.Buffer
				err = Render(RenderRequest{
					Reader:  bytes.NewReader(src),
					Writer:  &out,
					Options: []RenderOption{WithWidth(width), WithLogger(zerolog.Nop())},
				})
				if err != nil {
					t.Fatalf("render %s width %d: %v", path, width, err)
				}
				got := out.String()
				if string(want) != got {
					diff := firstDiffContext(string(want), got, 3)
					t.Fatalf("golden mismatch %s width %d\n%s", path, width, diff)
				}
			}
		})
	}
}

func goldenWidthsForFile(htmlPath string) ([]int, error) {
	name := strings.TrimSuffix(htmlPath, ".html")
	matches, err := filepath.Glob(name + ".w*.golden")
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no golden files found for %s", htmlPath)
	}
	widths := make([]int, 0, len(matches))
	for _, match := range matches {
		base := filepath.Base(match)
		start := strings.LastIndex(base, ".w")
		end := strings.LastIndex(base, ".golden")
		if start == -1 || end <= start+2 {
			continue
		}
		width, err := strconv.Atoi(base[start+2 : end])
		if err != nil {
			return nil, fmt.Errorf("parse width from %s: %w", base, err)
		}
		widths = append(widths, width)
	}
	sort.Ints(widths)
	if len(widths) == 0 {
		return nil, fmt.Errorf("no golden widths parsed for %s", htmlPath)
	}
	return widths, nil
}

func goldenPathFor(htmlPath string, width int) string {
	return fmt.Sprintf("%s.w%d.golden", strings.TrimSuffix(htmlPath, ".html"), width)
}

func firstDiffContext(want string, got string, ctx int) string {
	wantLines := strings.Split(want, "\n")
	gotLines := strings.Split(got, "\n")
	n := max(len(wantLines), len(gotLines))
	lineAt := func(lines []string, i int) string {
		if i < len(lines) {
			return lines[i]
		}
		return ""
	}
	diffAt := -1
	for i := 0; i < n; i++ {
		if lineAt(wantLines, i) != lineAt(gotLines, i) {
			diffAt = i
			break
		}
	}
	if diffAt == -1 {
		return "---want---\n" + want + "\n---got---\n" + got
	}
	start := max(diffAt-ctx, 0)
	end := min(diffAt+ctx, n-1)
	var b strings.Builder
	fmt.Fprintf(&b, "first difference at line %d\n", diffAt+1)
	b.WriteString("---want---\n")
	for i := start; i <= end; i++ {
		fmt.Fprintf(&b, "%5d | %q\n", i+1, lineAt(wantLines, i))
	}
	b.WriteString("---got---\n")
	for i := start; i <= end; i++ {
		fmt.Fprintf(&b, "%5d | %q\n", i+1, lineAt(gotLines, i))
	}
	return b.String()
}
