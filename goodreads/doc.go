// Package goodreads provides a client for the Goodreads API.
//
// The client turns logical operations into HTTP calls, authorises them with the
// developer key or with an OAuth 1.0a session, and maps the XML or JSON answer onto
// typed entities: users, books, authors and comments.
//
// # Architecture
//
//   - Client: the facade holding the developer credentials and, once authenticated, a Session
//   - Dispatcher: issues key-authorised requests and parses responses into a Response
//   - Session: the OAuth handshake (Init, Finalize, Resume) and signed requests (Get)
//   - Entities: User, Book, Author, Comment and friends, decoded from response fragments
//
// # Usage
//
//	logger := zerolog.New(os.Stdout)
//	client, err := goodreads.NewClient(
//		goodreads.Credentials{Key: key, Secret: secret},
//		logger,
//		goodreads.WithTimeout(30*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	book, err := client.Book(ctx, "", "0441172717")
//
// # Authentication
//
// Calls under the developer key need nothing else. Calls made on behalf of a member
// (AuthUser, User.Reviews, RequestOAuth) need a session. Resume one from a stored
// access token:
//
//	err := client.Authenticate(ctx, token, secret, nil)
//
// or run the handshake, handing the authorization URL to an Authorizer that blocks
// until the member has confirmed in their browser:
//
//	err := client.Authenticate(ctx, "", "", goodreads.AuthorizerFunc(
//		func(ctx context.Context, authURL string) error {
//			fmt.Println("Visit", authURL, "then press enter")
//			_, err := bufio.NewReader(os.Stdin).ReadString('\n')
//			return err
//		}))
//
// # Error Handling
//
//   - ArgumentError: a required identifier is missing; no request was made
//   - ErrUnauthenticated: the operation needs a session
//   - APIError: non-success response, Message carries the API's own error text
//   - OAuthError: the provider rejected a handshake step
//
// Nothing is retried; errors reach the caller as soon as they happen.
package goodreads
