package awsmock

import (
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// ErrEmptyScript is returned when a Transport has nothing to replay.
var ErrEmptyScript = errors.New("awsmock: no responses scripted")

// Script hands out responses in order and repeats the last one once exhausted.
type Script struct {
	mu        sync.Mutex
	responses []Response
	calls     int
}

// NewScript returns a script replaying responses in order.
func NewScript(responses ...Response) *Script {
	return &Script{responses: responses}
}

// Next returns the response for the next call.
func (s *Script) Next() (Response, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.responses) == 0 {
		s.calls++
		return Response{}, false
	}
	idx := s.calls
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	s.calls++
	return s.responses[idx], true
}

// Calls reports how many responses were requested.
func (s *Script) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Transport is an http.RoundTripper that answers every request from a Script.
type Transport struct {
	Script *Script

	mu       sync.Mutex
	requests []*http.Request
}

// NewTransport returns a Transport replaying responses in order.
func NewTransport(responses ...Response) *Transport {
	return &Transport{Script: NewScript(responses...)}
}

// RoundTrip implements http.RoundTripper. The request body is always closed.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Body != nil {
		_ = req.Body.Close()
	}

	t.mu.Lock()
	t.requests = append(t.requests, req)
	t.mu.Unlock()

	if t.Script == nil {
		return nil, ErrEmptyScript
	}
	resp, ok := t.Script.Next()
	if !ok {
		return nil, ErrEmptyScript
	}
	return resp.HTTPResponse(req), nil
}

// Client returns an http.Client using t.
func (t *Transport) Client() *http.Client {
	return &http.Client{Transport: t}
}

// Requests returns the requests seen so far.
func (t *Transport) Requests() []*http.Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*http.Request, len(t.requests))
	copy(out, t.requests)
	return out
}

// NewHandler serves script on POST /, the way the EC2 query API is called.
func NewHandler(script *Script) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Post("/", func(w http.ResponseWriter, req *http.Request) {
		resp, ok := script.Next()
		if !ok {
			http.Error(w, ErrEmptyScript.Error(), http.StatusInternalServerError)
			return
		}
		writeResponse(w, resp)
	})
	return r
}

func writeResponse(w http.ResponseWriter, resp Response) {
	for key, values := range resp.Header {
		// net/http manages framing headers itself.
		if key == "Transfer-Encoding" || key == "Content-Length" {
			continue
		}
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write([]byte(resp.Body))
}
