package tgmd

import (
	"errors"
	"strings"
	"testing"
)

func TestConvert(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "soft line break",
			in:   "hi\nhello",
			want: "hi\nhello",
		},
		{
			name: "paragraph break",
			in:   "hi\n\nhello",
			want: "hi\n\nhello",
		},
		{
			name: "bold in list item",
			in:   "- **Split** it into",
			want: "⦁ *Split* it into",
		},
		{
			name: "paragraph then list",
			in:   "test\n\n- **Split** it into",
			want: "test\n\n⦁ *Split* it into",
		},
		{
			name: "escaped parentheses",
			in:   "Optionally (hierarchical);",
			want: "Optionally \\(hierarchical\\);",
		},
		{
			name: "bold and italic",
			in:   "into a **multi-step compressor** and *never* feeding",
			want: "into a *multi\\-step compressor* and _never_ feeding",
		},
		{
			name: "strikethrough",
			in:   "this is ~~gone~~ now",
			want: "this is ~gone~ now",
		},
		{
			name: "heading with dotted number",
			in:   "## 1. What",
			want: "*⭐ 1\\. What*",
		},
		{
			name: "heading then list",
			in:   "## Heading\n- item",
			want: "*⭐ Heading*\n\n⦁ item",
		},
		{
			name: "deep heading uses italic",
			in:   "##### Fine print",
			want: "_🔹 Fine print_",
		},
		{
			name: "inline code keeps escapes",
			in:   "Assume:\n\n- `MODEL_CONTEXT_TOKENS` = max",
			want: "Assume:\n\n⦁ `MODEL\\_CONTEXT\\_TOKENS` \\= max",
		},
		{
			name: "fenced code block",
			in:   "```text\ntoken_count(text)\n```",
			want: "```text\ntoken\\_count\\(text\\)\n```",
		},
		{
			name: "blockquote with blank quote line",
			in:   "> You\n> \n> Hi",
			want: ">You\n>\n>Hi",
		},
		{
			name: "blockquote list",
			in:   "> - Greetings\n> - Repetitive",
			want: ">⦁ Greetings\n>⦁ Repetitive",
		},
		{
			name: "blockquote bold",
			in:   "> **GOAL:** ",
			want: ">*GOAL:*",
		},
		{
			name: "blockquote with lists and bold",
			in: "> - Any decisions made\n> - Any explicit\n> \n" +
				"> **EXCLUDE OR MINIMIZE:**\n> \n" +
				"> - Greetings\n> - Repetitive",
			want: ">⦁ Any decisions made\n>⦁ Any explicit\n>\n" +
				">*EXCLUDE OR MINIMIZE:*\n>\n" +
				">⦁ Greetings\n>⦁ Repetitive",
		},
		{
			name: "nested blockquote",
			in:   "> > Nested",
			want: ">>Nested",
		},
		{
			name: "ordered list",
			in:   "1. First\n2. Second",
			want: "1\\. First\n2\\. Second",
		},
		{
			name: "link with parentheses in url",
			in:   "[see docs](https://example.com/path(a)/page)",
			want: "[see docs](https://example.com/path\\(a\\)/page)",
		},
		{
			name: "autolink",
			in:   "<https://example.com/a_b>",
			want: "[https://example\\.com/a\\_b](https://example.com/a_b)",
		},
		{
			name: "image placeholder title",
			in:   "![](https://example.com/pic.png)",
			want: "[Image](https://example.com/pic.png)",
		},
		{
			name: "image alt text",
			in:   "![a chart](https://example.com/pic.png)",
			want: "[a chart](https://example.com/pic.png)",
		},
		{
			name: "thematic break",
			in:   "some test\n\n---\n\nsome more test",
			want: "some test\n\n———\n\nsome more test",
		},
		{
			name: "setext heading",
			in:   "some test\n---\nsome more test",
			want: "*⭐ some test*\n\nsome more test",
		},
		{
			name: "task list",
			in:   "- [x] done\n- [ ] todo",
			want: "⦁ ☑️ done\n⦁ ☐ todo",
		},
		{
			name: "nested list",
			in:   "- outer\n  - inner",
			want: "⦁ outer\n  ⦁ inner",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Convert(tc.in)
			if err != nil {
				t.Fatalf("Convert(%q): %v", tc.in, err)
			}
			if len(got) != 1 {
				t.Fatalf("Convert(%q) = %d chunks %q, want 1", tc.in, len(got), got)
			}
			if got[0] != tc.want {
				t.Fatalf("Convert(%q) =\n%q\nwant\n%q", tc.in, got[0], tc.want)
			}
		})
	}
}

func TestConvertEmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\n\n"} {
		got, err := Convert(in)
		if err != nil {
			t.Fatalf("Convert(%q): %v", in, err)
		}
		if len(got) != 0 {
			t.Fatalf("Convert(%q) = %q, want no chunks", in, got)
		}
	}
}

func TestConvertInvalidUTF8(t *testing.T) {
	_, err := Convert("hi \xff\xfe there")
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("Convert on invalid utf-8 = %v, want ErrInvalidUTF8", err)
	}
}

func TestConvertBinaryInput(t *testing.T) {
	_, err := Convert("hi \x00 there")
	if !errors.Is(err, ErrBinaryInput) {
		t.Fatalf("Convert on NUL input = %v, want ErrBinaryInput", err)
	}
}

func TestConvertWithTheme(t *testing.T) {
	theme, ok := ThemeByName("plain")
	if !ok {
		t.Fatalf("plain theme missing")
	}
	got, err := Convert("# Title\n\n- item", WithTheme(theme))
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	want := "*Title*\n\n• item"
	if len(got) != 1 || got[0] != want {
		t.Fatalf("chunks = %q, want [%q]", got, want)
	}
}

func TestConvertWithFrontmatterFilter(t *testing.T) {
	in := "---\ntitle: Test\n---\nbody text"
	got, err := Convert(in, WithFrontmatterFilter(true))
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if len(got) != 1 || got[0] != "body text" {
		t.Fatalf("chunks = %q, want [%q]", got, "body text")
	}
}

func TestConvertSingleItemOrderedListIndentsFollowing(t *testing.T) {
	in := "1. Step one\n\n   - detail\n\nMore prose."
	got, err := Convert(in)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	joined := strings.Join(got, "\n---\n")
	if !strings.Contains(joined, "1\\. Step one") {
		t.Fatalf("output missing ordered marker: %q", joined)
	}
	if !strings.Contains(joined, "More prose\\.") {
		t.Fatalf("output missing trailing prose: %q", joined)
	}
}

func BenchmarkConvert(b *testing.B) {
	doc := strings.Repeat("# Section\n\nSome **bold** and *italic* prose with `code` and a [link](https://example.com).\n\n- one\n- two\n\n```go\nfunc main() {}\n```\n\n", 20)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Convert(doc); err != nil {
			b.Fatal(err)
		}
	}
}
