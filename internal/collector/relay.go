package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Default relay templates; %s receives the escaped page URL.
const (
	RelayAllOrigins = "https://api.allorigins.win/raw?url=%s"
	RelayCorsProxy  = "https://corsproxy.io/?%s"
)

// RelayRoute fetches the source page through a third-party relay.
type RelayRoute struct {
	Label    string
	Template string
	PageURL  string
	Timeout  time.Duration
	Client   *http.Client
}

// NewRelayRoute creates a relay route. template must contain a single %s.
func NewRelayRoute(label, template, pageURL, proxyURL string, timeout time.Duration) *RelayRoute {
	return &RelayRoute{
		Label:    label,
		Template: template,
		PageURL:  pageURL,
		Timeout:  timeout,
		Client:   newHTTPClient(proxyURL),
	}
}

func (r *RelayRoute) Name() string { return "relay:" + r.Label }

// Target returns the URL the relay is asked for.
func (r *RelayRoute) Target() string {
	if !strings.Contains(r.Template, "%s") {
		return r.Template + url.QueryEscape(r.PageURL)
	}
	return fmt.Sprintf(r.Template, url.QueryEscape(r.PageURL))
}

func (r *RelayRoute) Attempt(ctx context.Context) (*Payload, error) {
	status, body, err := get(ctx, r.Client, r.Name(), r.Target(), r.Timeout, http.Header{"User-Agent": []string{BrowserUserAgent}})
	if err != nil {
		return nil, err
	}
	return &Payload{Route: r.Name(), Kind: PayloadMarkup, Status: status, Body: body}, nil
}
