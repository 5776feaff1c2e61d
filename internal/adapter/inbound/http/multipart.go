package http

import (
	"fmt"
	"strings"
)

// Streamed responses use multipart/mixed with the single-character boundary
// "-". Each part carries one JSON chunk; the closing delimiter marks a clean
// end of stream. Clients that splice parts as they arrive depend on every
// part arriving as one contiguous write.
const (
	// MultipartContentType is the Content-Type header value for streamed
	// responses. The boundary is quoted because "-" is not a token character.
	MultipartContentType = `multipart/mixed; boundary="-"`

	partDelimiter  = "\r\n---\r\n"
	finalDelimiter = "\r\n-----\r\n"
)

// formatPart frames one chunk as a complete multipart part, delimiter
// included. Content-Length is the byte length of the chunk's UTF-8
// encoding, not its character count.
func formatPart(chunk string) string {
	var b strings.Builder
	b.Grow(len(partDelimiter) + len(chunk) + 64)
	b.WriteString(partDelimiter)
	b.WriteString("Content-Type: application/json\r\n")
	fmt.Fprintf(&b, "Content-Length: %d\r\n\r\n", len(chunk))
	b.WriteString(chunk)
	return b.String()
}
