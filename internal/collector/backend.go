package collector

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// BackendRoute reads the normalized document from our own /api/rates endpoint.
type BackendRoute struct {
	URL     string
	Timeout time.Duration
	Client  *http.Client
}

// NewBackendRoute creates a route for the backend at baseURL.
func NewBackendRoute(baseURL, proxyURL string, timeout time.Duration) *BackendRoute {
	return &BackendRoute{
		URL:     strings.TrimRight(baseURL, "/") + "/api/rates",
		Timeout: timeout,
		Client:  newHTTPClient(proxyURL),
	}
}

func (r *BackendRoute) Name() string { return "backend" }

func (r *BackendRoute) Attempt(ctx context.Context) (*Payload, error) {
	header := http.Header{"Accept": []string{"application/json"}}
	status, body, err := get(ctx, r.Client, r.Name(), r.URL, r.Timeout, header)
	if err != nil {
		return nil, err
	}
	return &Payload{Route: r.Name(), Kind: PayloadRecord, Status: status, Body: body}, nil
}

// IsLocal reports whether rawURL points at a loopback or unqualified host,
// the situation in which the backend counts as same-origin.
func IsLocal(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false
	}
	host := u.Hostname()
	if host == "localhost" || !strings.Contains(host, ".") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
