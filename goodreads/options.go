package goodreads

import (
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the Goodreads API host.
	DefaultBaseURL = "https://www.goodreads.com"
	// DefaultTimeout bounds a single HTTP exchange.
	DefaultTimeout = 30 * time.Second
	// DefaultCallbackURL asks the provider for out-of-band authorization.
	DefaultCallbackURL = "oob"

	defaultUserAgent = "goodreads-go"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	baseURL     string
	timeout     time.Duration
	httpClient  *http.Client
	userAgent   string
	callbackURL string
	dispatcher  Dispatcher
}

func defaultOptions() clientOptions {
	return clientOptions{
		baseURL:     DefaultBaseURL,
		timeout:     DefaultTimeout,
		userAgent:   defaultUserAgent,
		callbackURL: DefaultCallbackURL,
	}
}

// WithBaseURL points the client at another host, e.g. a test server.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		if baseURL != "" {
			o.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithHTTPClient sets the transport used for both key-based and signed requests.
// The client's own Timeout wins over WithTimeout.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		if userAgent != "" {
			o.userAgent = userAgent
		}
	}
}

// WithCallbackURL sets the oauth_callback sent when requesting temporary credentials.
func WithCallbackURL(callbackURL string) Option {
	return func(o *clientOptions) {
		if callbackURL != "" {
			o.callbackURL = callbackURL
		}
	}
}

// WithDispatcher replaces the key-based request dispatcher.
func WithDispatcher(d Dispatcher) Option {
	return func(o *clientOptions) {
		o.dispatcher = d
	}
}
