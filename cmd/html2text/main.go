package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/htmltext"
	"pkt.systems/htmltext/internal/logging"
	"pkt.systems/version"
)

const stdinMarker = "-"

func init() {
	version.SetDefaultModule("pkt.systems/htmltext")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var (
		widthFlag   int
		outPath     string
		verbosity   int
		refEvents   bool
		showVersion bool
	)

	flags := pflag.NewFlagSet("html2text", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.IntVarP(&widthFlag, "width", "w", htmltext.DefaultWidth, "Wrap width (0 uses terminal width if available)")
	flags.StringVarP(&outPath, "output", "o", "", "Output file instead of stdout")
	flags.CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (repeatable)")
	flags.BoolVar(&refEvents, "reference-events", false, "Resolve character references as separate events")
	flags.BoolVar(&showVersion, "version", false, "Print version and exit")
	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintf(stderr, "Usage: html2text [flags] [FILE|-]\n")
		fmt.Fprintln(stderr, "\nIf no input or - is given, HTML is read from stdin.")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(argv); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 2
	}
	if showVersion {
		fmt.Fprintln(stdout, version.Module(), version.Current())
		return 0
	}

	logging.SetupLogger(verbosity, stderr)

	args := flags.Args()
	if len(args) > 1 {
		fmt.Fprintf(stderr, "expected at most one input, got %d\n", len(args))
		flags.Usage()
		return 2
	}
	path := ""
	if len(args) == 1 {
		path = args[0]
	}

	reader, closer, err := openInput(path, stdin)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("open input")
		return 1
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	if isTerminal(reader) {
		log.Info().Msg("reading HTML from terminal, end input with Ctrl-D")
	}

	width := resolveWidth(widthFlag)
	var out strings.Builder
	if err := htmltext.Render(htmltext.RenderRequest{
		Reader: reader,
		Writer: &out,
		Options: []htmltext.RenderOption{
			htmltext.WithWidth(width),
			htmltext.WithReferenceEvents(refEvents),
			htmltext.WithLogger(logging.GetLogger("htmltext")),
		},
	}); err != nil {
		log.Error().Err(err).Msg("render")
		return 1
	}

	writer, closeOut, err := resolveOutput(outPath, stdout)
	if err != nil {
		log.Error().Err(err).Str("path", outPath).Msg("open output")
		return 1
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}
	if _, err := io.WriteString(writer, out.String()); err != nil {
		log.Error().Err(err).Msg("write output")
		return 1
	}
	return 0
}

func openInput(path string, stdin io.Reader) (io.Reader, io.Closer, error) {
	path = strings.TrimSpace(path)
	if path == "" || path == stdinMarker {
		return stdin, nil, nil
	}
	f, err := os.Open(normalizePath(path))
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func resolveOutput(path string, stdout io.Writer) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return stdout, nil, nil
	}
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func resolveWidth(width int) int {
	if width > 0 {
		return width
	}
	return terminalWidth(htmltext.DefaultWidth)
}

func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
