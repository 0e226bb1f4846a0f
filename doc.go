// Package tgmd renders Markdown to Telegram MarkdownV2.
//
// The converter consumes a goldmark parse of the source document and re-emits
// it in MarkdownV2 syntax, split into chunks that each fit the Telegram
// message limit. Every chunk is independently well formed: formatting still
// open at a chunk boundary is closed before the break and transparently
// reopened in the next chunk, so multi-chunk output renders as continuous
// formatting to the reader.
//
// Core properties:
//   - Chunks never exceed the byte budget (4096 by default)
//   - Open markers are closed and reopened across chunk boundaries
//   - Splits land on whitespace; links and bare URLs move whole to the
//     next chunk
//   - Theme-driven glyphs for headings, bullets and rules
//
// Example:
//
//	chunks, err := tgmd.Convert("# Hello\n\nMarkdown in, MarkdownV2 out.\n")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, chunk := range chunks {
//		send(chunk)
//	}
package tgmd
