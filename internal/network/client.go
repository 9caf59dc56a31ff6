package network

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ProxyProvider provides proxy configuration for outbound calls.
type ProxyProvider interface {
	GetProxyURL(ctx context.Context) string
}

// StaticProxy is a ProxyProvider with a fixed proxy URL. The empty value means
// no explicit proxy; the standard environment variables still apply.
type StaticProxy string

func (p StaticProxy) GetProxyURL(ctx context.Context) string {
	return strings.TrimSpace(string(p))
}

// ClientFactory creates HTTP clients with proxy configuration.
type ClientFactory struct {
	proxyProvider  ProxyProvider
	testHTTPClient *http.Client // For testing only
}

// NewClientFactory creates a new client factory.
func NewClientFactory(proxyProvider ProxyProvider) *ClientFactory {
	if proxyProvider == nil {
		proxyProvider = StaticProxy("")
	}
	return &ClientFactory{proxyProvider: proxyProvider}
}

// NewClientFactoryForTest creates a client factory that uses the given http.Client for testing.
func NewClientFactoryForTest(client *http.Client) *ClientFactory {
	return &ClientFactory{
		proxyProvider:  StaticProxy(""),
		testHTTPClient: client,
	}
}

// NewHTTPClient creates an http.Client. A zero timeout keeps the net/http
// default of no client-side deadline.
func (f *ClientFactory) NewHTTPClient(ctx context.Context, timeout time.Duration) *http.Client {
	if f.testHTTPClient != nil {
		return f.testHTTPClient
	}

	client := &http.Client{Timeout: timeout}
	if f.GetProxyURL(ctx) != "" {
		client.Transport = f.NewHTTPTransport(ctx)
	}
	return client
}

// NewHTTPTransport clones the default transport and applies the proxy, if any.
// Only http and https proxies are honored.
func (f *ClientFactory) NewHTTPTransport(ctx context.Context) *http.Transport {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	proxyURL := f.GetProxyURL(ctx)
	if proxyURL == "" {
		return transport
	}
	parsed, err := url.Parse(proxyURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		transport.Proxy = nil
		return transport
	}
	transport.Proxy = http.ProxyURL(parsed)
	return transport
}

// GetProxyURL returns the current proxy URL.
func (f *ClientFactory) GetProxyURL(ctx context.Context) string {
	return f.proxyProvider.GetProxyURL(ctx)
}

// ExtractHost returns the host[:port] of rawURL, or "" when it has none.
func ExtractHost(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Host
}
