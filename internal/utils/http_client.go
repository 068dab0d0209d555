package utils

import (
	"github.com/go-resty/resty/v2"
)

const (
	// userAgent identifies requests made by the accounts client.
	userAgent = "go-user-accounts-client"

	// TraceIDHeader carries the request trace id in both directions.
	TraceIDHeader = "X-Trace-ID"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent client that sends JSON Accept and
// User-Agent headers on every request, plus a fresh X-Trace-ID unless the
// request already has one.
func NewHTTPClient() *HTTPClient {
	traceIDs := NewUUIDGenerator()
	client := resty.New().
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", userAgent).
		OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
			if r.Header.Get(TraceIDHeader) == "" {
				r.SetHeader(TraceIDHeader, traceIDs.Generate())
			}
			return nil
		})
	return &HTTPClient{Client: client}
}
