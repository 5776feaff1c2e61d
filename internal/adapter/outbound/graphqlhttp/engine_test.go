package graphqlhttp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gqlgate/gqlgate/internal/domain/query"
)

func execute(t *testing.T, upstream http.HandlerFunc, req *query.Request) (*query.Outcome, error) {
	t.Helper()
	server := httptest.NewServer(upstream)
	t.Cleanup(server.Close)
	return New(server.URL).Execute(context.Background(), req)
}

func basicRequest() *query.Request {
	return &query.Request{
		Method:  http.MethodPost,
		Payload: map[string]any{"query": "{ me }"},
		Options: &query.Options{},
	}
}

func TestExecute_SingleResult(t *testing.T) {
	outcome, err := execute(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":{"me":null}}`)
	}, basicRequest())
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	single, ok := outcome.Single()
	if !ok {
		t.Fatalf("outcome kind = %q, want single", outcome.Kind())
	}
	if single.Body != `{"data":{"me":null}}` {
		t.Errorf("Body = %q", single.Body)
	}
	if single.Init.Headers["Content-Type"] != "application/json" {
		t.Errorf("Content-Type header = %q", single.Init.Headers["Content-Type"])
	}
}

func TestExecute_ForwardsPayloadAndHeaders(t *testing.T) {
	var gotBody map[string]any
	var gotAuth, gotAccept string

	req := basicRequest()
	req.Payload = map[string]any{"query": "{ me }", "operationName": "Me"}
	req.Options = &query.Options{Headers: map[string]string{"Authorization": "Bearer tok"}}

	_, err := execute(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		fmt.Fprint(w, `{}`)
	}, req)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if gotAuth != "Bearer tok" {
		t.Errorf("Authorization = %q, want the options header", gotAuth)
	}
	if gotAccept != "multipart/mixed, application/json" {
		t.Errorf("Accept = %q", gotAccept)
	}
	if gotBody["query"] != "{ me }" || gotBody["operationName"] != "Me" {
		t.Errorf("upstream body = %v", gotBody)
	}
}

func TestExecute_UpstreamErrorIsRecognized(t *testing.T) {
	_, err := execute(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Syntax Error: Unexpected <EOF>", http.StatusBadRequest)
	}, basicRequest())
	if err == nil {
		t.Fatal("Execute() error = nil, want RequestError")
	}

	var reqErr *query.RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("error %v does not unwrap to *query.RequestError", err)
	}
	if reqErr.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d, want 400", reqErr.StatusCode)
	}
	if reqErr.Message != "Syntax Error: Unexpected <EOF>" {
		t.Errorf("Message = %q", reqErr.Message)
	}
}

func TestExecute_TransportFailureIsRaw(t *testing.T) {
	engine := New("http://127.0.0.1:1") // nothing listens here
	_, err := engine.Execute(context.Background(), basicRequest())
	if err == nil {
		t.Fatal("Execute() error = nil, want transport error")
	}

	var reqErr *query.RequestError
	if errors.As(err, &reqErr) {
		t.Errorf("transport failure %v should not be a recognized RequestError", err)
	}
}

func TestExecute_MultipartBecomesStream(t *testing.T) {
	const boundary = "graphql"
	outcome, err := execute(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "multipart/mixed; boundary="+boundary)
		fmt.Fprintf(w, "--%s\r\nContent-Type: application/json\r\n\r\n%s\r\n", boundary, `{"a":1}`)
		fmt.Fprintf(w, "--%s\r\nContent-Type: application/json\r\n\r\n%s\r\n", boundary, `{"b":2}`)
		fmt.Fprintf(w, "--%s--\r\n", boundary)
	}, basicRequest())
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	stream, ok := outcome.Stream()
	if !ok {
		t.Fatalf("outcome kind = %q, want stream", outcome.Kind())
	}

	var chunks []string
	for {
		chunk, err := stream.Stream.Next(context.Background())
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Next() error: %v", err)
		}
		chunks = append(chunks, chunk)
	}

	if len(chunks) != 2 || chunks[0] != `{"a":1}` || chunks[1] != `{"b":2}` {
		t.Errorf("chunks = %v", chunks)
	}
}

func TestExecute_MultipartMissingBoundary(t *testing.T) {
	_, err := execute(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "multipart/mixed")
		fmt.Fprint(w, "body")
	}, basicRequest())
	if err == nil {
		t.Error("Execute() error = nil, want missing-boundary error")
	}
}

func TestExecute_NilOptions(t *testing.T) {
	req := basicRequest()
	req.Options = nil

	outcome, err := execute(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}, req)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if _, ok := outcome.Single(); !ok {
		t.Errorf("outcome kind = %q, want single", outcome.Kind())
	}
}
