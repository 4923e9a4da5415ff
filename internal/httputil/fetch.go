// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP helper used for remote catalog reads.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// MaxBodyBytes caps the size of a fetched document.
const MaxBodyBytes = 32 << 20

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
}

// Request describes a single GET.
type Request struct {
	URL       string
	UserAgent string

	// Token, when set, is sent as a bearer Authorization header.
	Token string
}

// GetText performs one GET and returns the response body as text. There is
// no retry: a transport error or non-2xx status is returned to the caller
// as-is. The body is drained and closed before returning.
func GetText(ctx context.Context, client *http.Client, r Request) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	if r.UserAgent != "" {
		req.Header.Set("User-Agent", r.UserAgent)
	}
	if r.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.Token)
	}
	req.Header.Set("Accept", "application/yaml, text/plain, */*")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return "", &StatusError{URL: r.URL, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}
	if len(data) > MaxBodyBytes {
		return "", fmt.Errorf("response from %s exceeds %d bytes", r.URL, MaxBodyBytes)
	}
	return string(data), nil
}
