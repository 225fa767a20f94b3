package goodreads

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Dispatcher turns a logical API call into an HTTP exchange and a parsed Response.
type Dispatcher interface {
	Do(ctx context.Context, endpoint string, params Params, format Format) (Response, error)
}

// keyDispatcher issues unsigned requests authorised by the developer key.
type keyDispatcher struct {
	baseURL    string
	key        string
	userAgent  string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Do merges the developer key into params and performs a GET.
func (d *keyDispatcher) Do(ctx context.Context, endpoint string, params Params, format Format) (Response, error) {
	return getParsed(ctx, d.httpClient, d.logger, request{
		baseURL:   d.baseURL,
		endpoint:  endpoint,
		params:    params.with("key", d.key),
		format:    format,
		userAgent: d.userAgent,
	})
}

// request describes one GET against the API.
type request struct {
	baseURL   string
	endpoint  string
	params    Params
	format    Format
	userAgent string
}

func (r request) url() (string, error) {
	params := r.params
	if r.format != FormatJSON {
		if _, ok := params["format"]; !ok {
			params = params.with("format", string(FormatXML))
		}
	}

	values, err := params.Values()
	if err != nil {
		return "", fmt.Errorf("failed to encode params: %w", err)
	}

	u := r.baseURL + "/" + strings.TrimLeft(r.endpoint, "/")
	if len(values) > 0 {
		u += "?" + values.Encode()
	}
	return u, nil
}

// getParsed performs the GET with httpClient, maps failure statuses to *APIError
// and parses the body according to the request format.
func getParsed(ctx context.Context, httpClient *http.Client, logger zerolog.Logger, r request) (Response, error) {
	requestURL, err := r.url()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}
	if r.format == FormatJSON {
		req.Header.Set("Accept", "application/json")
	} else {
		req.Header.Set("Accept", "application/xml")
	}

	start := time.Now()
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	logger.Debug().
		Str("endpoint", r.endpoint).
		Strs("params", r.params.Keys()).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Goodreads API request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Endpoint:   r.endpoint,
			Message:    errorMessage(body),
			Body:       string(body),
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return nil, apiErr
	}

	parsed, err := parseBody(body, r.format)
	if err != nil {
		logger.Trace().Str("endpoint", r.endpoint).Bytes("body", body).Msg("Unparseable response body")
		return nil, fmt.Errorf("failed to parse %s response: %w", r.endpoint, err)
	}
	return parsed, nil
}
