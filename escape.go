package tgmd

import "strings"

// markdownV2Specials is the set of characters MarkdownV2 requires escaped in
// regular text, including inside code spans and code blocks.
const markdownV2Specials = "\\*_[]()~`>#+-=|{}.!"

// EscapeText escapes every MarkdownV2 special character in s with a single
// backslash. Characters outside the special set pass through unchanged.
func EscapeText(s string) string {
	if !strings.ContainsAny(s, markdownV2Specials) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + len(s)/4)
	for i := 0; i < len(s); i++ {
		// The special set is pure ASCII, so a byte scan is safe.
		if strings.IndexByte(markdownV2Specials, s[i]) >= 0 {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// EscapeURL escapes the characters that break a MarkdownV2 link target.
// Only parentheses need escaping inside (...).
func EscapeURL(s string) string {
	if !strings.ContainsAny(s, "()") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		if s[i] == '(' || s[i] == ')' {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
