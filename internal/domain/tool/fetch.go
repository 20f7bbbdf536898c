package tool

import (
	"context"
	"io"
	"net/http"
	"unicode/utf8"
)

// FetchService performs GET requests and returns response bodies as text.
// The client carries no timeout: cancellation belongs to the request context,
// and the body is returned regardless of HTTP status (matching the behavior
// callers already depend on).
type FetchService struct {
	client *http.Client
}

// NewFetchService returns a FetchService on its own timeout-free client.
func NewFetchService() *FetchService {
	return NewFetchServiceWithClient(&http.Client{})
}

// NewFetchServiceWithClient returns a FetchService using client.
// Tests inject an httptest-backed client here.
func NewFetchServiceWithClient(client *http.Client) *FetchService {
	return &FetchService{client: client}
}

// Get fetches url and returns the response body as text.
// Any network or request-building failure is an upstream failure naming the
// URL; a body that is not valid UTF-8 is an upstream failure as well.
func (s *FetchService) Get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", Errorf(KindInvalidInput, "invalid url %q: %w", url, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", Errorf(KindUpstream, "failed to get url %q: %w", url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", Errorf(KindUpstream, "failed reading response body from %q: %w", url, err)
	}
	if !utf8.Valid(raw) {
		return "", Errorf(KindUpstream, "the response from %q is not text", url)
	}
	return string(raw), nil
}
