package goodreads

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Authorizer sends the user to the authorization URL and blocks until they have
// confirmed. Returning an error aborts the handshake.
type Authorizer interface {
	Authorize(ctx context.Context, authURL string) error
}

// AuthorizerFunc adapts a function to the Authorizer interface
type AuthorizerFunc func(ctx context.Context, authURL string) error

// Authorize calls f(ctx, authURL)
func (f AuthorizerFunc) Authorize(ctx context.Context, authURL string) error {
	return f(ctx, authURL)
}

// Client is the entry point to the Goodreads API
type Client struct {
	creds       Credentials
	baseURL     string
	userAgent   string
	callbackURL string
	httpClient  *http.Client
	dispatcher  Dispatcher
	logger      zerolog.Logger

	mu      sync.RWMutex
	session *Session
}

// NewClient creates a new Goodreads client. No request is made until an operation is called.
func NewClient(creds Credentials, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if creds.Key == "" {
		return nil, fmt.Errorf("%w: API key is required", ErrInvalidConfig)
	}
	if creds.Secret == "" {
		return nil, fmt.Errorf("%w: API secret is required", ErrInvalidConfig)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}

	c := &Client{
		creds:       creds,
		baseURL:     o.baseURL,
		userAgent:   o.userAgent,
		callbackURL: o.callbackURL,
		httpClient:  httpClient,
		logger:      logger,
	}

	c.dispatcher = o.dispatcher
	if c.dispatcher == nil {
		c.dispatcher = &keyDispatcher{
			baseURL:    o.baseURL,
			key:        creds.Key,
			userAgent:  o.userAgent,
			httpClient: httpClient,
			logger:     logger,
		}
	}

	return c, nil
}

func (c *Client) newSession() *Session {
	s := NewSession(c.creds, c.baseURL, c.httpClient, c.logger)
	s.config.CallbackURL = c.callbackURL
	s.userAgent = c.userAgent
	return s
}

// Authenticate establishes the OAuth session. With both token and tokenSecret set it
// resumes a previously authorized session without any network traffic. Otherwise it
// runs the handshake: temporary credentials are requested, the authorizer is given
// the authorization URL and must block until the user has confirmed, and the
// credentials are then exchanged for an access token. An existing session is only
// replaced once the new one is authenticated.
func (c *Client) Authenticate(ctx context.Context, token, tokenSecret string, authorizer Authorizer) error {
	session := c.newSession()

	if token != "" && tokenSecret != "" {
		if err := session.Resume(token, tokenSecret); err != nil {
			return err
		}
	} else {
		if authorizer == nil {
			return &ArgumentError{Op: "authenticate", Reason: "an authorizer is required when no access token is supplied"}
		}

		authURL, err := session.Init(ctx)
		if err != nil {
			return err
		}

		c.logger.Info().Str("url", authURL).Msg("Waiting for the user to authorize access")
		if err := authorizer.Authorize(ctx, authURL); err != nil {
			return fmt.Errorf("authorization not confirmed: %w", err)
		}

		if err := session.Finalize(ctx); err != nil {
			return err
		}
	}

	c.mu.Lock()
	c.session = session
	c.mu.Unlock()

	c.logger.Debug().Msg("Goodreads session authenticated")
	return nil
}

// Session returns the authenticated session, or nil.
func (c *Client) Session() *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// Authenticated reports whether an OAuth session is in place
func (c *Client) Authenticated() bool {
	s := c.Session()
	return s != nil && s.State() == StateAuthenticated
}

// Request performs a key-authorised call and returns the parsed XML body
func (c *Client) Request(ctx context.Context, endpoint string, params Params) (Response, error) {
	return c.RequestFormat(ctx, endpoint, params, FormatXML)
}

// RequestFormat performs a key-authorised call, parsing the body as format
func (c *Client) RequestFormat(ctx context.Context, endpoint string, params Params, format Format) (Response, error) {
	return c.dispatcher.Do(ctx, endpoint, params, format)
}

// RequestOAuth performs an OAuth-signed call on behalf of the authorized user
func (c *Client) RequestOAuth(ctx context.Context, endpoint string, params Params) (Response, error) {
	return c.RequestOAuthFormat(ctx, endpoint, params, FormatXML)
}

// RequestOAuthFormat performs an OAuth-signed call, parsing the body as format
func (c *Client) RequestOAuthFormat(ctx context.Context, endpoint string, params Params, format Format) (Response, error) {
	session := c.Session()
	if session == nil {
		return nil, ErrUnauthenticated
	}
	return session.Do(ctx, endpoint, params, format)
}

// AuthUser returns the member who authorized the session
func (c *Client) AuthUser(ctx context.Context) (*User, error) {
	resp, err := c.RequestOAuth(ctx, "api/auth_user", nil)
	if err != nil {
		return nil, err
	}

	userID := resp.Attr("id", "user")
	if userID == "" {
		return nil, fmt.Errorf("%w: api/auth_user has no user id", ErrInvalidResponse)
	}
	return c.User(ctx, userID, "")
}

// User fetches a member by ID or by username. Exactly one must be given.
func (c *Client) User(ctx context.Context, userID, username string) (*User, error) {
	if (userID == "") == (username == "") {
		return nil, &ArgumentError{Op: "user", Reason: "exactly one of user ID or username is required"}
	}

	resp, err := c.Request(ctx, "user/show", Params{"id": userID, "username": username})
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return c.newUser(resp, "user")
}

// Book fetches a book by Goodreads ID or by ISBN. Exactly one must be given.
func (c *Client) Book(ctx context.Context, bookID, isbn string) (*Book, error) {
	var (
		resp Response
		err  error
	)
	switch {
	case bookID != "" && isbn != "", bookID == "" && isbn == "":
		return nil, &ArgumentError{Op: "book", Reason: "exactly one of book ID or ISBN is required"}
	case bookID != "":
		resp, err = c.Request(ctx, "book/show", Params{"id": bookID})
	default:
		resp, err = c.Request(ctx, "book/isbn", Params{"isbn": isbn})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return c.newBook(resp, "book")
}

// Author fetches an author profile including a listing of their books
func (c *Client) Author(ctx context.Context, authorID string) (*Author, error) {
	if authorID == "" {
		return nil, &ArgumentError{Op: "author", Reason: "author ID is required"}
	}

	resp, err := c.Request(ctx, "author/show", Params{"id": authorID})
	if err != nil {
		return nil, fmt.Errorf("failed to get author: %w", err)
	}
	return c.newAuthor(resp, "author")
}

// Comments lists one page of the comment thread attached to a resource. Unknown
// comment types are rejected before any request is made; page values below 1 mean
// the first page.
func (c *Client) Comments(ctx context.Context, commentType CommentType, resourceID string, page int) ([]Comment, error) {
	if !commentType.Valid() {
		return nil, &ArgumentError{Op: "comments", Reason: fmt.Sprintf("unknown comment type %q", commentType)}
	}
	if resourceID == "" {
		return nil, &ArgumentError{Op: "comments", Reason: "resource ID is required"}
	}
	if page < 1 {
		page = 1
	}

	endpoint := fmt.Sprintf("%s/%s/comments", commentType, resourceID)
	resp, err := c.Request(ctx, endpoint, Params{"format": string(FormatXML), "page": page})
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}

	var thread struct {
		Comments []Comment `mapstructure:"comments"`
	}
	if err := decodeFragment(map[string]any(resp), &thread); err != nil {
		return nil, err
	}
	for i := range thread.Comments {
		thread.Comments[i].User.client = c
	}

	c.logger.Debug().
		Str("type", commentType.String()).
		Str("resource", resourceID).
		Int("page", page).
		Int("count", len(thread.Comments)).
		Msg("Retrieved comments from Goodreads")

	if thread.Comments == nil {
		thread.Comments = []Comment{}
	}
	return thread.Comments, nil
}

// ReviewCounts fetches rating statistics for up to several ISBNs at once
func (c *Client) ReviewCounts(ctx context.Context, isbns ...string) ([]ReviewCounts, error) {
	var present []string
	for _, isbn := range isbns {
		if isbn = strings.TrimSpace(isbn); isbn != "" {
			present = append(present, isbn)
		}
	}
	if len(present) == 0 {
		return nil, &ArgumentError{Op: "review counts", Reason: "at least one ISBN is required"}
	}

	resp, err := c.RequestFormat(ctx, "book/review_counts.json", Params{"isbns": present}, FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to get review counts: %w", err)
	}

	var counts struct {
		Books []ReviewCounts `mapstructure:"books"`
	}
	if err := decodeFragment(map[string]any(resp), &counts); err != nil {
		return nil, err
	}
	return counts.Books, nil
}
