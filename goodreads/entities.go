package goodreads

import (
	"context"
	"fmt"
)

func fragmentOf(resp Response, key string) (map[string]any, error) {
	fragment, ok := asMap(resp[key])
	if !ok {
		return nil, fmt.Errorf("%w: missing %s element", ErrInvalidResponse, key)
	}
	return fragment, nil
}

func (c *Client) newUser(resp Response, key string) (*User, error) {
	fragment, err := fragmentOf(resp, key)
	if err != nil {
		return nil, err
	}
	var u User
	if err := decodeFragment(fragment, &u); err != nil {
		return nil, err
	}
	u.client = c
	return &u, nil
}

func (c *Client) newBook(resp Response, key string) (*Book, error) {
	fragment, err := fragmentOf(resp, key)
	if err != nil {
		return nil, err
	}
	var b Book
	if err := decodeFragment(fragment, &b); err != nil {
		return nil, err
	}
	b.attach(c, false)
	return &b, nil
}

func (c *Client) newAuthor(resp Response, key string) (*Author, error) {
	fragment, err := fragmentOf(resp, key)
	if err != nil {
		return nil, err
	}
	var a Author
	if err := decodeFragment(fragment, &a); err != nil {
		return nil, err
	}
	a.attach(c, false)
	return &a, nil
}

// attach wires the client into b and the listings nested in it. It runs once,
// while the entity is being built.
func (b *Book) attach(c *Client, partial bool) {
	b.client = c
	b.partial = partial
	for i := range b.Authors {
		b.Authors[i].attach(c, true)
	}
	for i := range b.SimilarBooks {
		b.SimilarBooks[i].attach(c, true)
	}
}

func (a *Author) attach(c *Client, partial bool) {
	a.client = c
	a.partial = partial
	for i := range a.Books {
		a.Books[i].attach(c, true)
	}
}

// Full fetches the complete record of the book through book/show.
func (b *Book) Full(ctx context.Context) (*Book, error) {
	if b.client == nil {
		return nil, ErrDetached
	}
	return b.client.Book(ctx, b.ID, "")
}

// Full fetches the complete author profile through author/show.
func (a *Author) Full(ctx context.Context) (*Author, error) {
	if a.client == nil {
		return nil, ErrDetached
	}
	return a.client.Author(ctx, a.ID)
}

// Profile fetches the complete member record, e.g. for the author of a comment.
func (u *User) Profile(ctx context.Context) (*User, error) {
	if u.client == nil {
		return nil, ErrDetached
	}
	return u.client.User(ctx, u.ID, "")
}

// ShelfList fetches one page of the member's shelves through shelf/list.
func (u *User) ShelfList(ctx context.Context, page int) ([]UserShelf, error) {
	if u.client == nil {
		return nil, ErrDetached
	}
	if page < 1 {
		page = 1
	}

	resp, err := u.client.Request(ctx, "shelf/list", Params{"user_id": u.ID, "page": page})
	if err != nil {
		return nil, fmt.Errorf("failed to get shelves: %w", err)
	}

	var list struct {
		Shelves []UserShelf `mapstructure:"shelves"`
	}
	if err := decodeFragment(map[string]any(resp), &list); err != nil {
		return nil, err
	}
	return list.Shelves, nil
}

// Reviews fetches one page of the member's reviews on shelf (all shelves when
// empty). The list is private to the member, so it needs an authenticated session.
func (u *User) Reviews(ctx context.Context, shelf string, page int) ([]Review, error) {
	if u.client == nil {
		return nil, ErrDetached
	}
	if page < 1 {
		page = 1
	}

	resp, err := u.client.RequestOAuth(ctx, "review/list", Params{
		"v":     2,
		"id":    u.ID,
		"shelf": shelf,
		"page":  page,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}

	var list struct {
		Reviews []Review `mapstructure:"reviews"`
	}
	if err := decodeFragment(map[string]any(resp), &list); err != nil {
		return nil, err
	}
	for i := range list.Reviews {
		list.Reviews[i].Book.attach(u.client, true)
	}
	return list.Reviews, nil
}
