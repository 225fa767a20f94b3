// Package goodreadstest provides an in-process fake of the Goodreads API for tests.
//
// The fake serves fixed fixtures for the key-authorised endpoints and implements the
// three OAuth endpoints. Every call must carry the developer key, or the OAuth token
// with a valid HMAC-SHA1 signature. Requests are recorded so tests can assert on
// what was sent.
package goodreadstest

import (
	"crypto/hmac"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/dghubble/oauth1"
	"github.com/go-chi/chi/v5"
)

// Call is one request received by the fake
type Call struct {
	Method        string
	Path          string
	Query         url.Values
	Authorization string
}

// Server is a fake Goodreads API running on an httptest.Server
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	calls      []Call
	authorized bool
	overrides  map[string]override
}

type override struct {
	status int
	body   string
}

// NewServer starts a fake API and closes it when the test ends
func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{overrides: make(map[string]override)}

	r := chi.NewRouter()
	r.Use(s.record, s.override)

	r.HandleFunc("/oauth/request_token", s.handleRequestToken)
	r.Get("/oauth/authorize", s.handleAuthorize)
	r.HandleFunc("/oauth/access_token", s.handleAccessToken)

	r.Group(func(r chi.Router) {
		r.Use(s.requireKey)
		r.Get("/user/show", s.handleUser)
		r.Get("/book/show", s.handleBook)
		r.Get("/book/isbn", s.handleBookISBN)
		r.Get("/book/review_counts.json", s.handleReviewCounts)
		r.Get("/author/show", s.handleAuthor)
		r.Get("/shelf/list", s.handleShelves)
		r.Get("/{commentType}/{resourceID}/comments", s.handleComments)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.requireToken)
		r.Get("/api/auth_user", s.handleAuthUser)
		r.Get("/review/list", s.handleReviews)
	})

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// Fail makes path answer with status and body instead of its fixture
func (s *Server) Fail(path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[path] = override{status: status, body: body}
}

// Authorize marks the outstanding request token as approved, as if the member had
// clicked "allow" on the authorization page.
func (s *Server) Authorize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authorized = true
}

// Calls returns every request received so far
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// CallCount returns how many requests hit a path starting with prefix
func (s *Server) CallCount(prefix string) int {
	var n int
	for _, c := range s.Calls() {
		if strings.HasPrefix(c.Path, prefix) {
			n++
		}
	}
	return n
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls = append(s.calls, Call{
			Method:        r.Method,
			Path:          r.URL.Path,
			Query:         r.URL.Query(),
			Authorization: r.Header.Get("Authorization"),
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) override(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		o, ok := s.overrides[r.URL.Path]
		s.mu.Unlock()
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		w.WriteHeader(o.status)
		fmt.Fprint(w, o.body)
	})
}

func (s *Server) requireKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != Key {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, "Invalid API key.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "OAuth ") ||
			oauthParam(auth, "oauth_consumer_key") != Key ||
			oauthParam(auth, "oauth_token") != AccessToken ||
			!validSignature(r, AccessSecret) {
			writeXMLError(w, http.StatusUnauthorized, "Invalid OAuth Request")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleRequestToken(w http.ResponseWriter, r *http.Request) {
	if oauthParam(r.Header.Get("Authorization"), "oauth_consumer_key") != Key {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, "oauth_problem=consumer_key_unknown")
		return
	}

	s.mu.Lock()
	s.authorized = false
	s.mu.Unlock()

	writeForm(w, url.Values{
		"oauth_token":              {RequestToken},
		"oauth_token_secret":       {RequestSecret},
		"oauth_callback_confirmed": {"true"},
	})
}

// handleAuthorize stands in for the page the member visits; loading it approves
// the request token.
func (s *Server) handleAuthorize(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("oauth_token") != RequestToken {
		http.Error(w, "unknown request token", http.StatusBadRequest)
		return
	}
	s.Authorize()
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, "<html><body>Access granted.</body></html>")
}

func (s *Server) handleAccessToken(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	authorized := s.authorized
	s.mu.Unlock()

	if !authorized ||
		oauthParam(r.Header.Get("Authorization"), "oauth_token") != RequestToken ||
		!validSignature(r, RequestSecret) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, "oauth_problem=permission_denied")
		return
	}

	writeForm(w, url.Values{
		"oauth_token":        {AccessToken},
		"oauth_token_secret": {AccessSecret},
	})
}

func (s *Server) handleAuthUser(w http.ResponseWriter, r *http.Request) {
	writeXML(w, authUserXML)
}

func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("id") != UserID && q.Get("username") != Username {
		writeXMLError(w, http.StatusNotFound, "user not found")
		return
	}
	writeXML(w, userXML)
}

func (s *Server) handleBook(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("id") != BookID {
		writeXMLError(w, http.StatusNotFound, "Book not found")
		return
	}
	writeXML(w, bookXML)
}

func (s *Server) handleBookISBN(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("isbn") != BookISBN {
		writeXMLError(w, http.StatusNotFound, "Book not found")
		return
	}
	writeXML(w, bookXML)
}

func (s *Server) handleReviewCounts(w http.ResponseWriter, r *http.Request) {
	isbns := strings.Split(r.URL.Query().Get("isbns"), ",")
	for _, isbn := range isbns {
		if isbn == BookISBN {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, reviewCountsJSON)
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	fmt.Fprint(w, `{"error":"No books match those ISBNs."}`)
}

func (s *Server) handleAuthor(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("id") != AuthorID {
		writeXMLError(w, http.StatusNotFound, "author not found")
		return
	}
	writeXML(w, authorXML)
}

func (s *Server) handleShelves(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("user_id") != UserID {
		writeXMLError(w, http.StatusNotFound, "user not found")
		return
	}
	writeXML(w, shelvesXML)
}

func (s *Server) handleReviews(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("id") != UserID {
		writeXMLError(w, http.StatusNotFound, "user not found")
		return
	}
	writeXML(w, reviewsXML)
}

// handleComments serves any comment type; validating the type is the client's job.
func (s *Server) handleComments(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("page") != "" && r.URL.Query().Get("page") != "1" {
		writeXML(w, emptyCommentsXML)
		return
	}
	writeXML(w, commentsXML)
}

func writeXML(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	fmt.Fprint(w, body)
}

func writeXMLError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<error>%s</error>", msg)
}

func writeForm(w http.ResponseWriter, values url.Values) {
	w.Header().Set("Content-Type", "application/x-www-form-urlencoded")
	fmt.Fprint(w, values.Encode())
}

// validSignature recomputes the HMAC-SHA1 signature of r from the consumer secret
// and tokenSecret and compares it with the one the client sent.
func validSignature(r *http.Request, tokenSecret string) bool {
	header := r.Header.Get("Authorization")
	sent := oauthParam(header, "oauth_signature")
	if sent == "" || oauthParam(header, "oauth_signature_method") != "HMAC-SHA1" {
		return false
	}

	params := make(map[string]string)
	for key, values := range r.URL.Query() {
		params[key] = values[0]
	}
	for _, part := range strings.Split(strings.TrimPrefix(header, "OAuth "), ",") {
		k, _, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok || k == "oauth_signature" || k == "realm" {
			continue
		}
		params[k] = oauthParam(header, k)
	}

	pairs := make([]string, 0, len(params))
	for k, v := range params {
		pairs = append(pairs, oauth1.PercentEncode(k)+"="+oauth1.PercentEncode(v))
	}
	sort.Strings(pairs)

	baseURL := "http://" + strings.ToLower(r.Host) + strings.Split(r.RequestURI, "?")[0]
	base := strings.Join([]string{
		r.Method,
		oauth1.PercentEncode(baseURL),
		oauth1.PercentEncode(strings.Join(pairs, "&")),
	}, "&")

	signer := &oauth1.HMACSigner{ConsumerSecret: Secret}
	want, err := signer.Sign(tokenSecret, base)
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(want), []byte(sent))
}

// oauthParam extracts one parameter from an "OAuth k="v", ..." Authorization header.
func oauthParam(header, name string) string {
	header = strings.TrimPrefix(header, "OAuth ")
	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok || k != name {
			continue
		}
		v = strings.Trim(v, `"`)
		if unescaped, err := url.QueryUnescape(v); err == nil {
			return unescaped
		}
		return v
	}
	return ""
}
