package collector

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// DefaultPageURL is the page the rates are published on.
const DefaultPageURL = "http://www.bcv.org.ve/"

// DirectTimeout matches the patience the source page usually needs.
const DirectTimeout = 30 * time.Second

// DirectRoute fetches the source page itself. The limiter keeps repeated
// backend requests from hammering the source.
type DirectRoute struct {
	PageURL string
	Timeout time.Duration
	Client  *http.Client
	Limiter *rate.Limiter
}

// NewDirectRoute creates a direct route allowing perMinute fetches per minute.
func NewDirectRoute(pageURL, proxyURL string, timeout time.Duration, perMinute int) *DirectRoute {
	if timeout <= 0 {
		timeout = DirectTimeout
	}
	var lim *rate.Limiter
	if perMinute > 0 {
		lim = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
	}
	return &DirectRoute{
		PageURL: pageURL,
		Timeout: timeout,
		Client:  newHTTPClient(proxyURL),
		Limiter: lim,
	}
}

func (r *DirectRoute) Name() string { return "direct" }

// Attempt returns the page even on a non-200 answer; the extractor turns such
// payloads into zero rates. Only transport failures are errors.
func (r *DirectRoute) Attempt(ctx context.Context) (*Payload, error) {
	if r.Limiter != nil {
		if err := r.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%s: rate limiter: %w", r.Name(), err)
		}
	}
	status, body, err := get(ctx, r.Client, r.Name(), r.PageURL, r.Timeout, http.Header{"User-Agent": []string{BrowserUserAgent}})
	var se *StatusError
	if err != nil && !errors.As(err, &se) {
		return nil, err
	}
	return &Payload{Route: r.Name(), Kind: PayloadMarkup, Status: status, Body: body}, nil
}
