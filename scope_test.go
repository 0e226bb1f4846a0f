package tgmd

import (
	"errors"
	"testing"
)

func newTestConverter(maxLen int) *converter {
	return &converter{
		maxLen: maxLen,
		glyphs: DefaultTheme().Glyphs(),
		buf:    newChunkBuffer(),
	}
}

func TestPopScopeMismatch(t *testing.T) {
	c := newTestConverter(64)
	c.pushScope(scope{kind: scopeStrong})
	if _, err := c.popScope(scopeEmphasis); !errors.Is(err, ErrUnbalancedTags) {
		t.Fatalf("popScope mismatch error = %v, want ErrUnbalancedTags", err)
	}
}

func TestPopScopeEmpty(t *testing.T) {
	c := newTestConverter(64)
	if _, err := c.popScope(scopeStrong); !errors.Is(err, ErrUnbalancedTags) {
		t.Fatalf("popScope on empty stack error = %v, want ErrUnbalancedTags", err)
	}
}

func TestPopScopeUnappliedRetractsPrefix(t *testing.T) {
	c := newTestConverter(64)
	c.pushScope(scope{kind: scopeStrong})
	if got := string(c.prefix); got != "*" {
		t.Fatalf("prefix after push = %q, want %q", got, "*")
	}
	if _, err := c.popScope(scopeStrong); err != nil {
		t.Fatalf("popScope: %v", err)
	}
	if len(c.prefix) != 0 {
		t.Fatalf("prefix after unapplied pop = %q, want empty", c.prefix)
	}
	if got := c.buf.finish(); len(got) != 0 {
		t.Fatalf("chunks after unapplied pop = %q, want none", got)
	}
}

func TestPopScopeAppliedEmitsCloser(t *testing.T) {
	c := newTestConverter(64)
	c.pushScope(scope{kind: scopeStrong})
	c.emit("bold")
	if _, err := c.popScope(scopeStrong); err != nil {
		t.Fatalf("popScope: %v", err)
	}
	got := c.buf.finish()
	if len(got) != 1 || got[0] != "*bold*" {
		t.Fatalf("chunks = %q, want [%q]", got, "*bold*")
	}
}

func TestClosersLen(t *testing.T) {
	s := scopeStack{
		{kind: scopeCodeBlock}, // ```\n
		{kind: scopeStrong},    // *
		{kind: scopeList},      // no closer
	}
	if got := s.closersLen(); got != 5 {
		t.Fatalf("closersLen = %d, want 5", got)
	}
}

func TestListDepth(t *testing.T) {
	s := scopeStack{
		{kind: scopeList},
		{kind: scopeListItem},
		{kind: scopeList},
		{kind: scopeListItem},
	}
	if got := s.listDepth(); got != 2 {
		t.Fatalf("listDepth = %d, want 2", got)
	}
}

func TestOrderedItemMarkerIncrements(t *testing.T) {
	c := newTestConverter(64)
	c.pushScope(scope{kind: scopeList, ordered: true, index: 3, start: 3})
	c.pushScope(scope{kind: scopeListItem})
	c.emit("first")
	if _, err := c.popScope(scopeListItem); err != nil {
		t.Fatalf("popScope: %v", err)
	}
	c.newLine()
	c.pushScope(scope{kind: scopeListItem})
	c.emit("second")
	if _, err := c.popScope(scopeListItem); err != nil {
		t.Fatalf("popScope: %v", err)
	}
	if _, err := c.popScope(scopeList); err != nil {
		t.Fatalf("popScope: %v", err)
	}
	got := c.buf.finish()
	want := "3\\. first\n4\\. second"
	if len(got) != 1 || got[0] != want {
		t.Fatalf("chunks = %q, want [%q]", got, want)
	}
}
