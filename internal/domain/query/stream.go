package query

import (
	"context"
	"io"
)

// ResultStream is a lazy, finite, single-pass sequence of serialized result
// chunks. Consumers pull one chunk at a time: each call to Next blocks until
// the next chunk is available, the stream ends, or ctx is done. A clean end
// of stream is signalled with io.EOF. Streams are not restartable.
type ResultStream interface {
	Next(ctx context.Context) (string, error)
}

// StreamFunc adapts a function to the ResultStream interface.
type StreamFunc func(ctx context.Context) (string, error)

// Next calls f.
func (f StreamFunc) Next(ctx context.Context) (string, error) {
	return f(ctx)
}

// StreamOf returns a ResultStream that yields the given chunks in order.
// Useful for engines that have the full sequence in hand, and for tests.
func StreamOf(chunks ...string) ResultStream {
	return &sliceStream{chunks: chunks}
}

type sliceStream struct {
	chunks []string
	next   int
}

func (s *sliceStream) Next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.next >= len(s.chunks) {
		return "", io.EOF
	}
	chunk := s.chunks[s.next]
	s.next++
	return chunk, nil
}

// StreamFromChannel returns a ResultStream fed by ch. The stream ends when
// ch is closed. Producers own the channel lifecycle; the stream never
// closes it.
func StreamFromChannel(ch <-chan string) ResultStream {
	return StreamFunc(func(ctx context.Context) (string, error) {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case chunk, ok := <-ch:
			if !ok {
				return "", io.EOF
			}
			return chunk, nil
		}
	})
}
