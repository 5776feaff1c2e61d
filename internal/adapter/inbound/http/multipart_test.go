package http

import "testing"

func TestFormatPart(t *testing.T) {
	got := formatPart(`{"a":1}`)
	want := "\r\n---\r\nContent-Type: application/json\r\nContent-Length: 7\r\n\r\n{\"a\":1}"
	if got != want {
		t.Errorf("formatPart() = %q, want %q", got, want)
	}
}

func TestFormatPart_ByteLengthNotRuneCount(t *testing.T) {
	// 4 runes, 5 bytes.
	got := formatPart("café")
	want := "\r\n---\r\nContent-Type: application/json\r\nContent-Length: 5\r\n\r\ncafé"
	if got != want {
		t.Errorf("formatPart() = %q, want %q", got, want)
	}
}

func TestFormatPart_EmptyChunk(t *testing.T) {
	got := formatPart("")
	want := "\r\n---\r\nContent-Type: application/json\r\nContent-Length: 0\r\n\r\n"
	if got != want {
		t.Errorf("formatPart() = %q, want %q", got, want)
	}
}

func TestMultipartContentType(t *testing.T) {
	if MultipartContentType != `multipart/mixed; boundary="-"` {
		t.Errorf("MultipartContentType = %q", MultipartContentType)
	}
}
