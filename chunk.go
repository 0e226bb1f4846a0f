package tgmd

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// chunkBuffer accumulates output chunks. The last chunk is always the one
// being written to.
type chunkBuffer struct {
	chunks [][]byte
}

func newChunkBuffer() *chunkBuffer {
	return &chunkBuffer{chunks: make([][]byte, 1)}
}

func (b *chunkBuffer) currentLen() int {
	return len(b.chunks[len(b.chunks)-1])
}

func (b *chunkBuffer) append(s string) {
	b.chunks[len(b.chunks)-1] = append(b.chunks[len(b.chunks)-1], s...)
}

func (b *chunkBuffer) trimCurrentTrailing() {
	i := len(b.chunks) - 1
	b.chunks[i] = bytes.TrimRight(b.chunks[i], " \t")
}

func (b *chunkBuffer) startNew() {
	b.chunks = append(b.chunks, nil)
}

// finish trims trailing whitespace from every chunk and drops the empty ones.
func (b *chunkBuffer) finish() []string {
	out := make([]string, 0, len(b.chunks))
	for _, c := range b.chunks {
		c = bytes.TrimRight(c, " \t\r\n")
		if len(c) == 0 {
			continue
		}
		out = append(out, string(c))
	}
	return out
}

// emit writes escaped text into the current chunk, breaking into new chunks
// whenever the byte budget would be exceeded. Every committed piece carries
// the pending newlines and any not-yet-applied open markers in front of it,
// so the accounting for each piece is newlines + prefix + text + the close
// markers that a later split would owe.
func (c *converter) emit(text string) {
	if text == "" {
		c.flushPending()
		return
	}
	remaining := text
	retried := false
	for len(remaining) > 0 {
		lastLen := c.buf.currentLen()
		nl := c.pendingPrefix(lastLen)
		prefixLen := len(c.prefix)
		closersLen := c.stack.closersLen()
		overhead := lastLen + len(nl) + prefixLen + closersLen

		lead := leadingWhitespaceLen(remaining)
		tok := atomicTokenLen(remaining[lead:])
		atomic := tok > 0
		if atomic {
			tok += lead
		}

		if overhead >= c.maxLen && !retried {
			c.splitChunk()
			retried = true
			continue
		}
		available := c.maxLen - overhead
		if available < 0 {
			available = 0
		}
		if atomic && tok > available && !retried {
			c.splitChunk()
			retried = true
			continue
		}
		// A word that does not fit here moves whole to the next chunk;
		// only the retry pass may hard-cut it.
		if !atomic && !retried && firstWordLen(remaining) > available {
			c.splitChunk()
			retried = true
			continue
		}

		var cut int
		var ws rune
		if atomic {
			cut = tok
			if cut > available {
				// The token cannot fit even in a fresh chunk.
				// Hard-cut it to keep making progress.
				cut = hardCut(remaining, available)
			}
		} else {
			cut, ws = findSplit(remaining, available)
		}
		next := cut
		if ws == '\n' && (cut+1 <= available || c.closersEndInNewline()) {
			cut++
			next = cut
		} else if ws != 0 {
			next = cut + utf8.RuneLen(ws)
		}

		c.buf.append(nl)
		c.buf.append(string(c.prefix))
		c.buf.append(remaining[:cut])
		c.pendingNewlines = 0
		c.markPrefixApplied()
		retried = false

		remaining = remaining[next:]
		if len(remaining) > 0 {
			c.splitChunk()
		}
	}
}

// pendingPrefix renders the queued structural newlines. Inside a blockquote
// every line starts with one '>' per nesting level; at the top of an empty
// chunk the newlines themselves are dropped but a quote prefix is still owed.
func (c *converter) pendingPrefix(lastLen int) string {
	if lastLen > 0 {
		if c.pendingNewlines == 0 {
			return ""
		}
		line := "\n" + strings.Repeat(">", c.quoteLevel)
		return strings.Repeat(line, c.pendingNewlines)
	}
	if c.quoteLevel > 0 {
		return strings.Repeat(">", c.quoteLevel)
	}
	return ""
}

// flushPending commits queued newlines and unapplied markers without any
// following text. Used when a scope opens and closes around empty content.
func (c *converter) flushPending() {
	lastLen := c.buf.currentLen()
	nl := c.pendingPrefix(lastLen)
	if nl == "" && len(c.prefix) == 0 {
		c.pendingNewlines = 0
		return
	}
	if lastLen+len(nl)+len(c.prefix)+c.stack.closersLen() > c.maxLen {
		c.splitChunk()
		nl = c.pendingPrefix(c.buf.currentLen())
	}
	c.buf.append(nl)
	c.buf.append(string(c.prefix))
	c.pendingNewlines = 0
	c.markPrefixApplied()
}

func (c *converter) markPrefixApplied() {
	if len(c.prefix) == 0 {
		return
	}
	for i := range c.stack {
		c.stack[i].applied = true
	}
	c.prefix = c.prefix[:0]
}

// splitChunk closes the current chunk so it stands alone balanced, then
// starts a fresh one with every open scope waiting to be reopened.
func (c *converter) splitChunk() {
	c.buf.trimCurrentTrailing()
	for i := len(c.stack) - 1; i >= 0; i-- {
		if c.stack[i].applied {
			c.buf.append(closeMarker(c.stack[i]))
		}
	}
	c.buf.startNew()
	c.prefix = c.prefix[:0]
	for i := range c.stack {
		c.stack[i].applied = false
		c.prefix = append(c.prefix, c.stack[i].openMarker...)
	}
}

// closersEndInNewline reports whether the close marker ending a split chunk
// would itself end in a newline. When it does, a split newline costs nothing
// extra because the per-chunk trailing trim recovers it.
func (c *converter) closersEndInNewline() bool {
	for i := range c.stack {
		if m := closeMarker(c.stack[i]); m != "" {
			return strings.HasSuffix(m, "\n")
		}
	}
	return false
}
