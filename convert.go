package tgmd

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultMaxLength is the default chunk byte budget, matching the Telegram
// Bot API message length limit.
const DefaultMaxLength = 4096

var (
	// ErrUnbalancedTags is returned when formatting scopes do not nest
	// properly over the input.
	ErrUnbalancedTags = errors.New("unbalanced tags")
	// ErrNestedLink is returned when a link or image occurs inside
	// another link.
	ErrNestedLink = errors.New("nested link")
)

// ConvertOption configures Convert.
type ConvertOption func(*convertConfig)

type convertConfig struct {
	maxLength         int
	theme             Theme
	filterFrontmatter bool
}

// WithMaxLength sets the chunk byte budget. Values below one are ignored.
func WithMaxLength(n int) ConvertOption {
	return func(cfg *convertConfig) {
		if n > 0 {
			cfg.maxLength = n
		}
	}
}

// WithTheme sets the glyph theme.
func WithTheme(t Theme) ConvertOption {
	return func(cfg *convertConfig) {
		if t != nil {
			cfg.theme = t
		}
	}
}

// WithFrontmatterFilter enables stripping a leading frontmatter block before
// conversion.
func WithFrontmatterFilter(enabled bool) ConvertOption {
	return func(cfg *convertConfig) {
		cfg.filterFrontmatter = enabled
	}
}

type converter struct {
	maxLen          int
	glyphs          Glyphs
	buf             *chunkBuffer
	stack           scopeStack
	prefix          []byte
	pendingNewlines int
	quoteLevel      int
	extraIndent     int
	link            *link
}

// Convert renders markdown as Telegram MarkdownV2, split into chunks of at
// most the configured byte length. Every chunk is independently balanced:
// formatting open at a chunk boundary is closed there and reopened at the
// start of the next chunk.
func Convert(markdown string, opts ...ConvertOption) ([]string, error) {
	cfg := convertConfig{
		maxLength: DefaultMaxLength,
		theme:     DefaultTheme(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := ValidateInput([]byte(markdown)); err != nil {
		return nil, err
	}
	if cfg.filterFrontmatter {
		markdown = StripFrontmatter(markdown)
	}
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return nil, nil
	}
	c := &converter{
		maxLen: cfg.maxLength,
		glyphs: cfg.theme.Glyphs(),
		buf:    newChunkBuffer(),
	}
	if err := c.run([]byte(markdown)); err != nil {
		return nil, err
	}
	if len(c.stack) != 0 {
		return nil, fmt.Errorf("%w: %d scopes still open at end of input", ErrUnbalancedTags, len(c.stack))
	}
	return c.buf.finish(), nil
}
