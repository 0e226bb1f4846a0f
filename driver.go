package tgmd

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

var mdParser = goldmark.New(goldmark.WithExtensions(
	extension.Strikethrough,
	extension.TaskList,
))

// link accumulates the escaped title of an inline link while its children are
// walked; the token is emitted whole on close so it never splits mid-link.
type link struct {
	url   string
	title strings.Builder
}

func (c *converter) run(source []byte) error {
	doc := mdParser.Parser().Parse(text.NewReader(source))
	return ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			return c.enter(n, source)
		}
		return ast.WalkContinue, c.leave(n)
	})
}

func (c *converter) enter(n ast.Node, source []byte) (ast.WalkStatus, error) {
	switch n := n.(type) {
	case *ast.Paragraph:
		c.newLine()
		if c.stack.listDepth() == 0 {
			c.extraIndent = 0
		}
	case *ast.TextBlock:
		// Tight list item body; no structural newline of its own.
	case *ast.Heading:
		c.newLine()
		if c.stack.listDepth() == 0 {
			c.extraIndent = 0
		}
		c.pushScope(scope{kind: scopeHeading, level: n.Level})
	case *ast.Blockquote:
		c.quoteLevel++
		c.newLine()
	case *ast.FencedCodeBlock:
		c.newLine()
		var lang string
		if l := n.Language(source); l != nil {
			lang = EscapeText(string(l))
		}
		c.pushScope(scope{kind: scopeCodeBlock, lang: lang})
		c.emit(EscapeText(segmentsValue(n.Lines(), source)))
	case *ast.CodeBlock:
		c.newLine()
		c.pushScope(scope{kind: scopeCodeBlock})
		c.emit(EscapeText(segmentsValue(n.Lines(), source)))
	case *ast.List:
		c.newLine()
		if n.IsOrdered() && c.stack.listDepth() == 0 {
			c.extraIndent = 0
		}
		start := uint32(1)
		if n.IsOrdered() && n.Start > 0 {
			start = uint32(n.Start)
		}
		c.pushScope(scope{kind: scopeList, ordered: n.IsOrdered(), index: start, start: start})
	case *ast.ListItem:
		c.pushScope(scope{kind: scopeListItem})
	case *ast.ThematicBreak:
		c.newLine()
		c.emit(c.glyphs.Rule)
		c.newLine()
	case *ast.Emphasis:
		if n.Level >= 2 {
			c.pushScope(scope{kind: scopeStrong})
		} else {
			c.pushScope(scope{kind: scopeEmphasis})
		}
	case *east.Strikethrough:
		c.pushScope(scope{kind: scopeStrikethrough})
	case *ast.CodeSpan:
		c.inlineCode(codeSpanValue(n, source))
		return ast.WalkSkipChildren, nil
	case *ast.Link:
		if c.link != nil {
			return ast.WalkStop, fmt.Errorf("%w: link inside link", ErrNestedLink)
		}
		c.link = &link{url: string(n.Destination)}
	case *ast.Image:
		if c.link != nil {
			return ast.WalkStop, fmt.Errorf("%w: image inside link", ErrNestedLink)
		}
		title := EscapeText(nodeText(n, source))
		if title == "" {
			title = EscapeText(c.glyphs.ImageLabel)
		}
		c.emitLink(title, string(n.Destination))
		return ast.WalkSkipChildren, nil
	case *ast.AutoLink:
		c.emitLink(EscapeText(string(n.Label(source))), string(n.URL(source)))
		return ast.WalkSkipChildren, nil
	case *east.TaskCheckBox:
		// The checkbox swallows "[x] " including the space, so the
		// glyph carries its own separator.
		if n.IsChecked {
			c.text(c.glyphs.Checked + " ")
		} else {
			c.text(c.glyphs.Unchecked + " ")
		}
	case *ast.Text:
		value := string(n.Segment.Value(source))
		if n.HardLineBreak() {
			value = strings.TrimRight(value, " ")
		}
		c.text(EscapeText(value))
		if n.SoftLineBreak() || n.HardLineBreak() {
			c.newLine()
		}
	case *ast.String:
		c.text(EscapeText(string(n.Value)))
	case *ast.RawHTML:
		c.text(EscapeText(segmentsValue(n.Segments, source)))
	case *ast.HTMLBlock:
		c.newLine()
		c.emit(EscapeText(segmentsValue(n.Lines(), source)))
		if n.HasClosure() {
			c.emit(EscapeText(string(n.ClosureLine.Value(source))))
		}
	}
	return ast.WalkContinue, nil
}

func (c *converter) leave(n ast.Node) error {
	switch n := n.(type) {
	case *ast.Paragraph:
		c.newLine()
	case *ast.Heading:
		if _, err := c.popScope(scopeHeading); err != nil {
			return err
		}
		c.newLine()
	case *ast.Blockquote:
		c.quoteLevel--
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		if _, err := c.popScope(scopeCodeBlock); err != nil {
			return err
		}
	case *ast.List:
		s, err := c.popScope(scopeList)
		if err != nil {
			return err
		}
		// A single-item ordered list at the top level reads as a step
		// header; indent whatever follows under it.
		if s.ordered && s.index == s.start+1 && c.stack.listDepth() == 0 {
			c.extraIndent++
		}
	case *ast.ListItem:
		if _, err := c.popScope(scopeListItem); err != nil {
			return err
		}
		c.newLine()
	case *ast.Emphasis:
		kind := scopeEmphasis
		if n.Level >= 2 {
			kind = scopeStrong
		}
		if _, err := c.popScope(kind); err != nil {
			return err
		}
	case *east.Strikethrough:
		if _, err := c.popScope(scopeStrikethrough); err != nil {
			return err
		}
	case *ast.Link:
		l := c.link
		c.link = nil
		if l != nil {
			c.emitLink(l.title.String(), l.url)
		}
	}
	return nil
}

// text routes escaped inline text either into an open link title or straight
// to the chunk buffer.
func (c *converter) text(escaped string) {
	if c.link != nil {
		c.link.title.WriteString(escaped)
		return
	}
	c.emit(escaped)
}

func (c *converter) inlineCode(code string) {
	escaped := EscapeText(code)
	if c.link != nil {
		c.link.title.WriteString("`" + escaped + "`")
		return
	}
	c.pushScope(scope{kind: scopeInlineCode})
	c.emit(escaped)
	c.popScope(scopeInlineCode)
}

func (c *converter) emitLink(escapedTitle, url string) {
	c.emit("[" + escapedTitle + "](" + EscapeURL(url) + ")")
}

// newLine queues a structural newline. At most two stack up, so any run of
// blank lines collapses to one blank line in the output.
func (c *converter) newLine() {
	if c.pendingNewlines < 2 {
		c.pendingNewlines++
	}
}

func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch child := child.(type) {
		case *ast.Text:
			b.Write(child.Segment.Value(source))
		case *ast.String:
			b.Write(child.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

func segmentsValue(segs *text.Segments, source []byte) string {
	var b strings.Builder
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		b.Write(seg.Value(source))
	}
	return b.String()
}

func codeSpanValue(n *ast.CodeSpan, source []byte) string {
	var b strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			b.Write(t.Segment.Value(source))
		}
	}
	return b.String()
}
