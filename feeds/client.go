package feeds

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sethgrid/pester"
)

// ClientOptions configure the HTTP client used for all requests.
type ClientOptions struct {
	// Proxies maps a URL scheme, like "http" or "https", to a proxy URL. No
	// proxy is used for schemes not in the map.
	Proxies map[string]string
	// MaxRetries is the number of attempts per request, one means no retry.
	MaxRetries int
	Timeout    time.Duration
}

// ProxyFunc returns a proxy function for http.Transport, or nil if there
// are no proxies.
func ProxyFunc(proxies map[string]string) (func(*http.Request) (*url.URL, error), error) {
	if len(proxies) == 0 {
		return nil, nil
	}
	parsed := make(map[string]*url.URL, len(proxies))
	for scheme, v := range proxies {
		u, err := url.Parse(v)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy for %s: %w", scheme, err)
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("invalid proxy for %s: %s", scheme, v)
		}
		parsed[scheme] = u
	}
	return func(req *http.Request) (*url.URL, error) {
		return parsed[req.URL.Scheme], nil
	}, nil
}

// newTransport returns a copy of the default transport, keeping its dial and
// handshake timeouts, with the given proxy function.
func newTransport(proxy func(*http.Request) (*url.URL, error)) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.Proxy = proxy
	return t
}

// NewClient returns a pester client, which retries with exponential backoff
// if MaxRetries is larger than one.
func NewClient(opts ClientOptions) (*pester.Client, error) {
	proxy, err := ProxyFunc(opts.Proxies)
	if err != nil {
		return nil, err
	}
	hc := &http.Client{
		Transport: newTransport(proxy),
		Timeout:   opts.Timeout,
	}
	client := pester.NewExtendedClient(hc)
	client.Backoff = pester.ExponentialBackoff
	client.MaxRetries = opts.MaxRetries
	if client.MaxRetries < 1 {
		client.MaxRetries = 1
	}
	client.RetryOnHTTP429 = true
	return client, nil
}
