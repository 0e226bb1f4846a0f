package tgmd

import (
	"bytes"
	"fmt"
	"strconv"
)

type scopeKind uint8

const (
	scopeStrong scopeKind = iota
	scopeEmphasis
	scopeStrikethrough
	scopeInlineCode
	scopeCodeBlock
	scopeHeading
	scopeList
	scopeListItem
)

func (k scopeKind) String() string {
	switch k {
	case scopeStrong:
		return "strong"
	case scopeEmphasis:
		return "emphasis"
	case scopeStrikethrough:
		return "strikethrough"
	case scopeInlineCode:
		return "inline code"
	case scopeCodeBlock:
		return "code block"
	case scopeHeading:
		return "heading"
	case scopeList:
		return "list"
	case scopeListItem:
		return "list item"
	}
	return "unknown"
}

// scope is one open formatting context. openMarker is recomputed on push;
// applied tracks whether the marker has been committed to the current chunk,
// which decides if closing must emit a close marker or may just retract the
// pending prefix.
type scope struct {
	kind       scopeKind
	level      int    // heading level
	lang       string // code block info string, already escaped
	ordered    bool   // list
	index      uint32 // next ordinal for an ordered list
	start      uint32 // first ordinal, kept to detect single-item lists
	openMarker string
	applied    bool
}

type scopeStack []scope

// closersLen is the byte length of all close markers the stack can owe a
// chunk boundary. Committing text applies every open scope, so the whole
// stack counts, not just the scopes applied so far.
func (s scopeStack) closersLen() int {
	n := 0
	for i := range s {
		n += len(closeMarker(s[i]))
	}
	return n
}

// listDepth counts open list scopes.
func (s scopeStack) listDepth() int {
	n := 0
	for i := range s {
		if s[i].kind == scopeList {
			n++
		}
	}
	return n
}

func closeMarker(s scope) string {
	switch s.kind {
	case scopeStrong:
		return "*"
	case scopeEmphasis:
		return "_"
	case scopeStrikethrough:
		return "~"
	case scopeInlineCode:
		return "`"
	case scopeCodeBlock:
		return "```\n"
	case scopeHeading:
		if s.level <= 4 {
			return "*"
		}
		return "_"
	}
	return ""
}

func (c *converter) buildOpenMarker(s *scope) string {
	switch s.kind {
	case scopeStrong:
		return "*"
	case scopeEmphasis:
		return "_"
	case scopeStrikethrough:
		return "~"
	case scopeInlineCode:
		return "`"
	case scopeCodeBlock:
		return "```" + s.lang + "\n"
	case scopeHeading:
		base := "*"
		if s.level > 4 {
			base = "_"
		}
		var emoji string
		if s.level >= 1 && s.level <= 6 {
			emoji = c.glyphs.Heading[s.level-1]
		}
		if emoji == "" {
			return base
		}
		return base + emoji + " "
	case scopeListItem:
		depth := c.stack.listDepth() - 1 + c.extraIndent
		if depth < 0 {
			depth = 0
		}
		indent := bytes.Repeat([]byte("  "), depth)
		for i := len(c.stack) - 1; i >= 0; i-- {
			if c.stack[i].kind != scopeList {
				continue
			}
			if c.stack[i].ordered {
				n := c.stack[i].index
				c.stack[i].index++
				return string(indent) + strconv.FormatUint(uint64(n), 10) + "\\. "
			}
			return string(indent) + c.glyphs.Bullet + " "
		}
		return string(indent) + c.glyphs.Bullet + " "
	}
	return ""
}

func (c *converter) pushScope(s scope) {
	s.openMarker = c.buildOpenMarker(&s)
	c.prefix = append(c.prefix, s.openMarker...)
	c.stack = append(c.stack, s)
}

func (c *converter) popScope(kind scopeKind) (scope, error) {
	if len(c.stack) == 0 {
		return scope{}, fmt.Errorf("%w: close of %s with no open scope", ErrUnbalancedTags, kind)
	}
	top := c.stack[len(c.stack)-1]
	if top.kind != kind {
		return scope{}, fmt.Errorf("%w: close of %s while %s is open", ErrUnbalancedTags, kind, top.kind)
	}
	c.stack = c.stack[:len(c.stack)-1]
	if top.applied {
		c.buf.append(closeMarker(top))
	} else if bytes.HasSuffix(c.prefix, []byte(top.openMarker)) {
		c.prefix = c.prefix[:len(c.prefix)-len(top.openMarker)]
	}
	return top, nil
}
