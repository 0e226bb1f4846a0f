package tgmd

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// findSplit picks a cut position for text given a byte limit. It returns the
// number of bytes before the cut and the whitespace rune at the cut, if any.
// Preference order: the whole text when it fits, the last whitespace within
// the limit, and finally a hard cut backed off to a rune boundary. A hard cut
// always makes progress by taking at least one whole rune.
func findSplit(text string, limit int) (int, rune) {
	if len(text) <= limit {
		return len(text), 0
	}
	cut := 0
	var ws rune
	for i, r := range text {
		if i > limit {
			break
		}
		if i > 0 && unicode.IsSpace(r) {
			cut, ws = i, r
		}
	}
	if cut > 0 {
		return cut, ws
	}
	return hardCut(text, limit), 0
}

// hardCut backs a byte position off to a boundary that keeps runes and
// escape sequences intact, taking at least one whole unit.
func hardCut(text string, cut int) int {
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	n := 0
	for cut-n > 0 && text[cut-n-1] == '\\' {
		n++
	}
	if n%2 == 1 {
		cut--
	}
	if cut == 0 {
		if text[0] == '\\' && len(text) > 1 {
			_, w := utf8.DecodeRuneInString(text[1:])
			return 1 + w
		}
		_, w := utf8.DecodeRuneInString(text)
		return w
	}
	return cut
}

// atomicTokenLen reports the byte length of an unsplittable token at the
// start of text, or 0 when the head of text may be split freely. Inline
// links and bare URLs must land whole inside a single chunk.
func atomicTokenLen(text string) int {
	if n := linkTokenLen(text); n > 0 {
		return n
	}
	return urlTokenLen(text)
}

// linkTokenLen matches an already-rendered [title](url) token, honoring
// backslash escapes inside both parts.
func linkTokenLen(text string) int {
	if len(text) == 0 || text[0] != '[' {
		return 0
	}
	mid := 0
	i := 1
	for i < len(text) {
		switch text[i] {
		case '\\':
			i += 2
			continue
		case ']':
			if mid == 0 && i+1 < len(text) && text[i+1] == '(' {
				mid = i + 1
				i += 2
				continue
			}
		case ')':
			if mid > 0 {
				return i + 1
			}
		}
		i++
	}
	return 0
}

// urlTokenLen matches a bare URL at the start of text.
func urlTokenLen(text string) int {
	if strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://") {
		return firstWordLen(text)
	}
	return 0
}

// firstWordLen is the byte length up to and including the first word,
// counting any leading whitespace.
func firstWordLen(text string) int {
	i := leadingWhitespaceLen(text)
	for i < len(text) {
		r, n := utf8.DecodeRuneInString(text[i:])
		if unicode.IsSpace(r) {
			break
		}
		i += n
	}
	return i
}

func leadingWhitespaceLen(text string) int {
	i := 0
	for i < len(text) {
		r, n := utf8.DecodeRuneInString(text[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += n
	}
	return i
}
