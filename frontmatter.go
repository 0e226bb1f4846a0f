package tgmd

import "strings"

// StripFrontmatter removes a leading frontmatter block delimited by ---, +++
// or ;;; fences. The block is only removed when a closing fence exists and
// the content between the fences looks like metadata, so documents that open
// with a thematic break pass through untouched.
func StripFrontmatter(src string) string {
	body := trimBOM(src)
	first, rest, ok := cutLine(body)
	if !ok {
		return src
	}
	delim := strings.TrimSpace(first)
	if !frontmatterDelimiter(delim) {
		return src
	}
	metadataSeen := false
	for rest != "" {
		line, remainder, _ := cutLine(rest)
		if strings.TrimSpace(line) == delim {
			if !metadataSeen {
				return src
			}
			return remainder
		}
		if frontmatterMetadataLikely(line) {
			metadataSeen = true
		}
		rest = remainder
	}
	return src
}

func cutLine(s string) (line, rest string, ok bool) {
	i := strings.IndexByte(s, '\n')
	if i < 0 {
		return s, "", false
	}
	return strings.TrimSuffix(s[:i], "\r"), s[i+1:], true
}

func frontmatterDelimiter(line string) bool {
	switch line {
	case "---", "+++", ";;;":
		return true
	}
	return false
}

// frontmatterMetadataLikely reports whether a line looks like structured
// metadata rather than prose.
func frontmatterMetadataLikely(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return true
	}
	return strings.ContainsAny(trimmed, ":=")
}

func trimBOM(s string) string {
	return strings.TrimPrefix(s, "\uFEFF")
}
