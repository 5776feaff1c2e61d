package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gqlgate/gqlgate/internal/domain/query"
	"github.com/gqlgate/gqlgate/internal/service"
)

// maxRequestBodySize caps POST bodies at 1 MiB. GraphQL documents beyond
// that are almost certainly abuse.
const maxRequestBodySize = 1 << 20

// Construction faults. A Handler without exactly one options resolver is a
// programming error and must fail at wiring time, not per request.
var (
	ErrNoOptions      = errors.New("an options resolver is required")
	ErrTooManyOptions = errors.New("expected exactly one options resolver")
)

// Handler serves the query endpoint. It normalizes the inbound HTTP request
// into an execution request, runs it through the execution service, and
// dispatches the outcome.
type Handler struct {
	svc      *service.ExecutionService
	resolver query.OptionsResolver
	metrics  *Metrics
}

// NewHandler creates a query Handler. Exactly one options resolver must be
// given; zero or several is a construction fault.
func NewHandler(svc *service.ExecutionService, resolvers ...query.OptionsResolver) (*Handler, error) {
	if svc == nil {
		return nil, errors.New("an execution service is required")
	}
	switch {
	case len(resolvers) == 0:
		return nil, ErrNoOptions
	case len(resolvers) > 1:
		return nil, fmt.Errorf("%w, got %d", ErrTooManyOptions, len(resolvers))
	case resolvers[0] == nil:
		return nil, ErrNoOptions
	}
	return &Handler{svc: svc, resolver: resolvers[0]}, nil
}

// Handle serves one query request. When it returns a non-nil error, nothing
// has been written to the response and the error belongs to the next
// error-handling stage. Recognized failures never escape: they are written
// here and nil is returned.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) error {
	payload, err := extractPayload(w, r)
	if err != nil {
		return h.fail(w, err)
	}

	opts, err := h.resolver.Resolve(w, r)
	if err != nil {
		return h.fail(w, err)
	}
	if opts == nil {
		return errors.New("options resolver returned nil options")
	}

	req := &query.Request{
		Method:  r.Method,
		Payload: payload,
		Options: opts,
		Info: query.RequestInfo{
			Path:       r.URL.Path,
			RemoteAddr: clientIP(r),
			Header:     r.Header,
		},
	}

	outcome, err := h.svc.Execute(r.Context(), req)
	if err != nil {
		return h.fail(w, err)
	}
	return h.dispatch(w, r, outcome)
}

// fail writes recognized errors and passes everything else through.
func (h *Handler) fail(w http.ResponseWriter, err error) error {
	var reqErr *query.RequestError
	if errors.As(err, &reqErr) {
		h.countExecution("failure")
		writeFailure(w, reqErr)
		return nil
	}
	return err
}

// extractPayload normalizes the request payload. POST bodies are JSON
// objects; any other method reads the query string, so GET requests work
// straight from a browser address bar.
func extractPayload(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	if r.Method != http.MethodPost {
		values := r.URL.Query()
		payload := make(map[string]any, len(values))
		for k, vs := range values {
			if len(vs) == 1 {
				payload[k] = vs[0]
			} else {
				payload[k] = vs
			}
		}
		return payload, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, query.NewRequestError(http.StatusRequestEntityTooLarge, "request body too large")
		}
		return nil, query.NewRequestError(http.StatusBadRequest, "failed to read request body")
	}
	if len(body) == 0 {
		return nil, query.NewRequestError(http.StatusBadRequest, "empty request body")
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, query.NewRequestError(http.StatusBadRequest, "request body is not a JSON object")
	}
	return payload, nil
}
