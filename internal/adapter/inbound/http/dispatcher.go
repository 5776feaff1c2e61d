package http

import (
	"errors"
	"io"
	"net/http"
	"sort"

	"github.com/gqlgate/gqlgate/internal/domain/query"
)

// dispatch writes the response for one outcome. Exactly one of the three
// write paths runs. A non-nil return means nothing was written and the
// error must go to the next error-handling stage.
func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request, outcome *query.Outcome) error {
	if single, ok := outcome.Single(); ok {
		h.countExecution("single")
		h.writeSingle(w, single)
		return nil
	}
	if stream, ok := outcome.Stream(); ok {
		h.countExecution("stream")
		h.writeStream(w, r, stream)
		return nil
	}
	if failure, ok := outcome.Failure(); ok {
		h.countExecution("failure")
		writeFailure(w, failure)
		return nil
	}
	return errors.New("engine returned an empty outcome")
}

// replayHeaders copies outcome headers onto the response. Keys are applied
// in sorted order so replay is deterministic; Go maps carry no order of
// their own.
func replayHeaders(w http.ResponseWriter, headers map[string]string) {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		w.Header().Set(k, headers[k])
	}
}

// writeSingle sends a complete result in one response.
func (h *Handler) writeSingle(w http.ResponseWriter, res *query.SingleResult) {
	replayHeaders(w, res.Init.Headers)
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}
	status := res.Init.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	// Write failures past this point mean the client went away.
	_, _ = io.WriteString(w, res.Body)
}

// writeStream sends a multipart/mixed response, one part per chunk, flushing
// after every part so chunks reach the client as they are produced. The
// outcome's Content-Type is always overridden with the multipart type.
func (h *Handler) writeStream(w http.ResponseWriter, r *http.Request, res *query.StreamResult) {
	replayHeaders(w, res.Init.Headers)
	w.Header().Set("Content-Type", MultipartContentType)
	status := res.Init.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)

	flusher, _ := w.(http.Flusher)
	ctx := r.Context()
	for {
		chunk, err := res.Stream.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Cancelled or failed mid-stream. The response is already
			// committed, so end without a closing delimiter.
			LoggerFromContext(ctx).Debug("result stream ended early", "error", err)
			return
		}
		// One write per part. Chunks are never coalesced or reordered.
		if _, err := io.WriteString(w, formatPart(chunk)); err != nil {
			LoggerFromContext(ctx).Debug("client gone mid-stream", "error", err)
			return
		}
		h.countChunk()
		if flusher != nil {
			flusher.Flush()
		}
	}
	_, _ = io.WriteString(w, finalDelimiter)
	if flusher != nil {
		flusher.Flush()
	}
}

// writeFailure sends a recognized error as a plain-text response. A zero
// status code maps to 500.
func writeFailure(w http.ResponseWriter, failure *query.RequestError) {
	replayHeaders(w, failure.Headers)
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	status := failure.StatusCode
	if status == 0 {
		status = http.StatusInternalServerError
	}
	w.WriteHeader(status)
	_, _ = io.WriteString(w, failure.Message)
}

func (h *Handler) countExecution(kind string) {
	if h.metrics != nil {
		h.metrics.ExecutionsTotal.WithLabelValues(kind).Inc()
	}
}

func (h *Handler) countChunk() {
	if h.metrics != nil {
		h.metrics.StreamChunksTotal.Inc()
	}
}
