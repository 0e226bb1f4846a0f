package tgmd

import "testing"

func TestStripFrontmatter(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "yaml block",
			in:   "---\ntitle: Test\ndate: 2026-08-30\n---\nbody",
			want: "body",
		},
		{
			name: "toml block",
			in:   "+++\ntitle = \"Test\"\n+++\nbody",
			want: "body",
		},
		{
			name: "json block",
			in:   ";;;\n{\"title\": \"Test\"}\n;;;\nbody",
			want: "body",
		},
		{
			name: "bom before fence",
			in:   "\uFEFF---\ntitle: Test\n---\nbody",
			want: "body",
		},
		{
			name: "thematic break kept",
			in:   "---\njust prose here\n---\nbody",
			want: "---\njust prose here\n---\nbody",
		},
		{
			name: "unclosed fence kept",
			in:   "---\ntitle: Test\nbody continues",
			want: "---\ntitle: Test\nbody continues",
		},
		{
			name: "no frontmatter",
			in:   "plain document",
			want: "plain document",
		},
		{
			name: "crlf lines",
			in:   "---\r\ntitle: Test\r\n---\r\nbody",
			want: "body",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripFrontmatter(tc.in); got != tc.want {
				t.Fatalf("StripFrontmatter(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
