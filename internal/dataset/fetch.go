// Package dataset loads the AllEvents seminar history CSV from its
// GitHub-hosted source (or a local file) and parses it into event records
// for the store.
package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Source describes where the CSV comes from. File wins over URL when both
// are set, which makes offline imports and tests straightforward.
type Source struct {
	URL     string
	File    string
	Timeout time.Duration
}

// Open returns a reader over the raw CSV bytes. The caller must close it.
func (s *Source) Open(ctx context.Context) (io.ReadCloser, error) {
	if s.File != "" {
		f, err := os.Open(s.File)
		if err != nil {
			return nil, fmt.Errorf("failed to open dataset file: %w", err)
		}
		return f, nil
	}

	timeout := s.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build dataset request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("dataset fetch returned status %d", resp.StatusCode)
	}

	return resp.Body, nil
}

// Load opens the source and parses it in one step.
func (s *Source) Load(ctx context.Context) (*ParseResult, error) {
	r, err := s.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return Parse(r)
}
