package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/pflag"
	"github.com/xorza/tgmd"
	"golang.org/x/term"
	"pkt.systems/version"
)

const defaultThemeName = "default"

func init() {
	version.SetDefaultModule("github.com/xorza/tgmd")
}

func main() {
	var (
		maxLength       int
		themeName       string
		listThemes      bool
		outPath         string
		separator       string
		keepFrontmatter bool
		wrapWidth       int
		showVersion     bool
	)

	flags := pflag.NewFlagSet("tgmd", pflag.ExitOnError)
	flags.IntVarP(&maxLength, "max-length", "m", tgmd.DefaultMaxLength, "Max bytes per output chunk")
	flags.StringVarP(&themeName, "theme", "t", defaultThemeName, "Theme name")
	flags.BoolVar(&listThemes, "list-themes", false, "List available themes")
	flags.StringVarP(&outPath, "output", "o", "", "Output file instead of stdout")
	flags.StringVarP(&separator, "separator", "s", "", "Chunk separator override")
	flags.BoolVar(&keepFrontmatter, "keep-frontmatter", false, "Keep a leading frontmatter block")
	flags.IntVarP(&wrapWidth, "wrap", "w", 0, "Soft-wrap output at width (terminal preview)")
	flags.BoolVarP(&showVersion, "version", "V", false, "Print version and exit")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, version.Module(), version.Current())
		fmt.Fprintf(os.Stderr, "Usage: tgmd [flags] [inputs...]\n")
		fmt.Fprintln(os.Stderr, "\nIf no input is provided, Markdown is read from stdin.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	if showVersion {
		fmt.Fprintln(os.Stdout, version.Module(), version.Current())
		return
	}

	if listThemes {
		printThemes()
		return
	}

	theme, ok := tgmd.ThemeByName(themeName)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown theme %q\n\n", themeName)
		printThemes()
		os.Exit(2)
	}

	input, err := readInputs(flags.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		os.Exit(1)
	}

	chunks, err := tgmd.Convert(input,
		tgmd.WithMaxLength(maxLength),
		tgmd.WithTheme(theme),
		tgmd.WithFrontmatterFilter(!keepFrontmatter),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "convert: %v\n", err)
		os.Exit(1)
	}

	writer, closeOut, err := resolveOutput(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open output: %v\n", err)
		os.Exit(1)
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}

	sep := resolveSeparator(separator, writer)
	for i, chunk := range chunks {
		if i > 0 {
			fmt.Fprint(writer, sep)
		}
		if wrapWidth > 0 {
			chunk = wordwrap.String(chunk, wrapWidth)
		}
		fmt.Fprintln(writer, chunk)
	}
}

func printThemes() {
	for _, name := range tgmd.AvailableThemes() {
		fmt.Fprintln(os.Stdout, name)
	}
}

// resolveSeparator picks the text printed between chunks. On a terminal the
// chunks are divided by a ruled line so the boundaries stand out; piped
// output gets a plain blank line, or whatever --separator supplied.
func resolveSeparator(override string, w io.Writer) string {
	if override != "" {
		return "\n" + override + "\n"
	}
	if isTerminal(w) {
		return "\n" + ruledSeparator(w) + "\n\n"
	}
	return "\n"
}

func ruledSeparator(w io.Writer) string {
	width := 40
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			width = tw
		}
	}
	return strings.Repeat("─", width)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// readInputs concatenates all inputs with a blank line between them. Each
// argument is a local path or an http(s) URL; no arguments means stdin.
func readInputs(args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	parts := make([]string, 0, len(args))
	for _, raw := range args {
		data, err := readInput(raw)
		if err != nil {
			return "", err
		}
		parts = append(parts, strings.TrimRight(data, "\n"))
	}
	return strings.Join(parts, "\n\n"), nil
}

func readInput(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty input argument")
	}
	if u, err := url.Parse(raw); err == nil {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return readURL(raw)
		}
	}
	data, err := os.ReadFile(normalizePath(raw))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func readURL(raw string) (string, error) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, raw, nil)
	if err != nil {
		return "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("http %s: %s", raw, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func resolveOutput(path string) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return os.Stdout, nil, nil
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
