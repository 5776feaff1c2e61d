package query

import (
	"context"
	"errors"
	"io"
	"testing"
)

// drain pulls all chunks from a stream until io.EOF.
func drain(t *testing.T, s ResultStream) []string {
	t.Helper()
	var chunks []string
	for {
		chunk, err := s.Next(context.Background())
		if errors.Is(err, io.EOF) {
			return chunks
		}
		if err != nil {
			t.Fatalf("Next() error: %v", err)
		}
		chunks = append(chunks, chunk)
	}
}

func TestStreamOf_Order(t *testing.T) {
	s := StreamOf(`{"a":1}`, `{"b":2}`, `{"c":3}`)

	chunks := drain(t, s)
	want := []string{`{"a":1}`, `{"b":2}`, `{"c":3}`}
	if len(chunks) != len(want) {
		t.Fatalf("got %d chunks, want %d", len(chunks), len(want))
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Errorf("chunk[%d] = %q, want %q", i, chunks[i], want[i])
		}
	}
}

func TestStreamOf_Empty(t *testing.T) {
	s := StreamOf()

	if _, err := s.Next(context.Background()); !errors.Is(err, io.EOF) {
		t.Errorf("Next() on empty stream = %v, want io.EOF", err)
	}
}

func TestStreamOf_EOFIsSticky(t *testing.T) {
	s := StreamOf(`{"a":1}`)
	drain(t, s)

	// A second read past the end still reports EOF, not a chunk.
	if _, err := s.Next(context.Background()); !errors.Is(err, io.EOF) {
		t.Errorf("Next() past end = %v, want io.EOF", err)
	}
}

func TestStreamOf_ContextCancelled(t *testing.T) {
	s := StreamOf(`{"a":1}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Next(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Next() with cancelled context = %v, want context.Canceled", err)
	}
}

func TestStreamFromChannel(t *testing.T) {
	ch := make(chan string, 2)
	ch <- `{"a":1}`
	ch <- `{"b":2}`
	close(ch)

	s := StreamFromChannel(ch)
	chunks := drain(t, s)
	if len(chunks) != 2 || chunks[0] != `{"a":1}` || chunks[1] != `{"b":2}` {
		t.Errorf("chunks = %v, want [{\"a\":1} {\"b\":2}]", chunks)
	}
}

func TestStreamFromChannel_CancelWhileBlocked(t *testing.T) {
	ch := make(chan string)
	s := StreamFromChannel(ch)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Next(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Next() = %v, want context.Canceled", err)
	}
}

func TestStreamFunc(t *testing.T) {
	calls := 0
	s := StreamFunc(func(ctx context.Context) (string, error) {
		calls++
		if calls > 2 {
			return "", io.EOF
		}
		return `{}`, nil
	})

	chunks := drain(t, s)
	if len(chunks) != 2 {
		t.Errorf("got %d chunks, want 2", len(chunks))
	}
}
