package httpds

import (
	"context"
	"io"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Source is a datasource that downloads one URL.
type Source struct {
	client *Client
	url    string
}

// NewSource binds url to client. A nil client uses NewClient(Config{}).
func NewSource(client *Client, url string) *Source {
	if client == nil {
		client = NewClient(Config{})
	}
	return &Source{client: client, url: url}
}

// Describe returns the URL.
func (s *Source) Describe() string { return s.url }

// Open returns the response body of a successful GET. Any status outside
// 2xx is an error.
func (s *Source) Open(ctx context.Context) (io.ReadCloser, error) {
	resp, err := s.client.Get(ctx, s.url)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_ = resp.Body.Close()
		return nil, errors.Newf("httpds: GET %s: %s", s.url, resp.Status)
	}
	return resp.Body, nil
}
