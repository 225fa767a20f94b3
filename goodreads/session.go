package goodreads

import (
	"context"
	"net/http"
	"sync"

	"github.com/dghubble/oauth1"
	"github.com/rs/zerolog"
)

// SessionState is the position of a Session in the OAuth handshake.
type SessionState int

const (
	// StateUnauthenticated is a fresh session
	StateUnauthenticated SessionState = iota
	// StatePending holds temporary credentials and waits for the user to authorize them
	StatePending
	// StateAuthenticated holds an access token and can sign requests
	StateAuthenticated
)

// String returns the string representation of a SessionState
func (s SessionState) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StatePending:
		return "pending_authorization"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Session owns the OAuth 1.0a handshake and the signed transport that results from it.
// It is safe for concurrent use; once authenticated it is read-mostly.
type Session struct {
	config     *oauth1.Config
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     zerolog.Logger

	mu            sync.RWMutex
	state         SessionState
	requestToken  string
	requestSecret string
	accessToken   string
	accessSecret  string
	signed        *http.Client
}

// NewSession creates an unauthenticated session against baseURL.
func NewSession(creds Credentials, baseURL string, httpClient *http.Client, logger zerolog.Logger) *Session {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Session{
		config: &oauth1.Config{
			ConsumerKey:    creds.Key,
			ConsumerSecret: creds.Secret,
			CallbackURL:    DefaultCallbackURL,
			Endpoint: oauth1.Endpoint{
				RequestTokenURL: baseURL + "/oauth/request_token",
				AuthorizeURL:    baseURL + "/oauth/authorize",
				AccessTokenURL:  baseURL + "/oauth/access_token",
			},
		},
		baseURL:    baseURL,
		userAgent:  defaultUserAgent,
		httpClient: httpClient,
		logger:     logger,
	}
}

// State reports the current handshake state.
func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Init obtains temporary credentials and returns the URL the user must visit to
// authorize them. Calling Init again while pending restarts the handshake.
func (s *Session) Init(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if s.State() == StateAuthenticated {
		return "", ErrInvalidState
	}

	// mu is not held across network exchanges
	requestToken, requestSecret, err := s.config.RequestToken()
	if err != nil {
		return "", &OAuthError{Step: "request_token", Err: err}
	}

	authURL, err := s.config.AuthorizationURL(requestToken)
	if err != nil {
		return "", &OAuthError{Step: "authorize", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateAuthenticated {
		return "", ErrInvalidState
	}

	s.requestToken = requestToken
	s.requestSecret = requestSecret
	s.state = StatePending

	s.logger.Debug().Str("state", s.state.String()).Msg("Obtained OAuth request token")
	return authURL.String(), nil
}

// Finalize exchanges the authorized temporary credentials for an access token.
// It fails with an *OAuthError when the user did not actually authorize them.
func (s *Session) Finalize(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	state, requestToken, requestSecret := s.state, s.requestToken, s.requestSecret
	s.mu.RUnlock()

	if state != StatePending {
		return ErrInvalidState
	}

	// Goodreads implements OAuth 1.0 without a verifier.
	accessToken, accessSecret, err := s.config.AccessToken(requestToken, requestSecret, "")
	if err != nil {
		return &OAuthError{Step: "access_token", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// a concurrent Init or Finalize moved the handshake on
	if s.state != StatePending || s.requestToken != requestToken {
		return ErrInvalidState
	}

	s.authenticate(accessToken, accessSecret)
	s.requestToken, s.requestSecret = "", ""

	s.logger.Debug().Str("state", s.state.String()).Msg("Exchanged OAuth request token for access token")
	return nil
}

// Resume restores an authenticated session from a previously obtained access token
// without contacting the provider.
func (s *Session) Resume(token, secret string) error {
	if token == "" || secret == "" {
		return &ArgumentError{Op: "resume", Reason: "access token and secret are both required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateUnauthenticated {
		return ErrInvalidState
	}

	s.authenticate(token, secret)
	s.logger.Debug().Str("state", s.state.String()).Msg("Resumed OAuth session")
	return nil
}

// authenticate must be called with mu held.
func (s *Session) authenticate(token, secret string) {
	s.accessToken = token
	s.accessSecret = secret
	ctx := context.WithValue(context.Background(), oauth1.HTTPClient, s.httpClient)
	s.signed = s.config.Client(ctx, oauth1.NewToken(token, secret))
	s.signed.Timeout = s.httpClient.Timeout
	s.state = StateAuthenticated
}

// AccessToken returns the access token pair, empty until authenticated.
func (s *Session) AccessToken() (token, secret string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken, s.accessSecret
}

// Get issues an OAuth-signed GET and parses the XML body.
func (s *Session) Get(ctx context.Context, endpoint string, params Params) (Response, error) {
	return s.Do(ctx, endpoint, params, FormatXML)
}

// Do lets a Session stand in as the Dispatcher of signed calls.
func (s *Session) Do(ctx context.Context, endpoint string, params Params, format Format) (Response, error) {
	s.mu.RLock()
	signed := s.signed
	authenticated := s.state == StateAuthenticated
	s.mu.RUnlock()

	if !authenticated {
		return nil, ErrUnauthenticated
	}

	return getParsed(ctx, signed, s.logger, request{
		baseURL:   s.baseURL,
		endpoint:  endpoint,
		params:    params,
		format:    format,
		userAgent: s.userAgent,
	})
}
