package goodreads

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/goodreads/goodreadstest"
)

func TestEntityFollowUps(t *testing.T) {
	srv := goodreadstest.NewServer(t)
	client := newTestClient(t, srv)
	ctx := context.Background()

	author, err := client.Author(ctx, goodreadstest.AuthorID)
	require.NoError(t, err)
	require.NotEmpty(t, author.Books)

	book, err := author.Books[0].Full(ctx)
	require.NoError(t, err)
	assert.False(t, book.Partial())
	assert.Equal(t, "Ace Books", book.Publisher)

	full, err := book.Authors[0].Full(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10412, full.FansCount)

	comments, err := client.Comments(ctx, CommentReview, goodreadstest.ReviewID, 1)
	require.NoError(t, err)
	profile, err := comments[0].User.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Lisbon, Portugal", profile.Location)

	assert.Equal(t, 2, srv.CallCount("/author/show"))
	assert.Equal(t, 1, srv.CallCount("/book/show"))
}

func TestDetachedEntities(t *testing.T) {
	ctx := context.Background()

	_, err := (&Book{ID: "1"}).Full(ctx)
	assert.ErrorIs(t, err, ErrDetached)

	_, err = (&Author{ID: "1"}).Full(ctx)
	assert.ErrorIs(t, err, ErrDetached)

	_, err = (&User{ID: "1"}).Profile(ctx)
	assert.ErrorIs(t, err, ErrDetached)

	_, err = (&User{ID: "1"}).ShelfList(ctx, 1)
	assert.ErrorIs(t, err, ErrDetached)

	_, err = (&User{ID: "1"}).Reviews(ctx, "", 1)
	assert.ErrorIs(t, err, ErrDetached)
}

func TestUserShelfList(t *testing.T) {
	srv := goodreadstest.NewServer(t)
	client := newTestClient(t, srv)
	ctx := context.Background()

	user, err := client.User(ctx, goodreadstest.UserID, "")
	require.NoError(t, err)

	shelves, err := user.ShelfList(ctx, 0)
	require.NoError(t, err)
	require.Len(t, shelves, 2)
	assert.Equal(t, "to-read", shelves[1].Name)
	assert.Equal(t, 143, shelves[1].BookCount)

	calls := srv.Calls()
	last := calls[len(calls)-1]
	assert.Equal(t, "/shelf/list", last.Path)
	assert.Equal(t, goodreadstest.UserID, last.Query.Get("user_id"))
	assert.Equal(t, "1", last.Query.Get("page"))
}

func TestUserReviews(t *testing.T) {
	srv := goodreadstest.NewServer(t)
	client := newTestClient(t, srv)
	ctx := context.Background()

	user, err := client.User(ctx, goodreadstest.UserID, "")
	require.NoError(t, err)

	_, err = user.Reviews(ctx, "read", 1)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	require.NoError(t, client.Authenticate(ctx, goodreadstest.AccessToken, goodreadstest.AccessSecret, nil))

	reviews, err := user.Reviews(ctx, "read", 1)
	require.NoError(t, err)
	require.Len(t, reviews, 1)

	review := reviews[0]
	assert.Equal(t, goodreadstest.ReviewID, review.ID)
	assert.Equal(t, 5, review.Rating)
	assert.Equal(t, 2, review.ReadCount)
	assert.False(t, review.SpoilerFlag)
	assert.Equal(t, "Still the best.", review.Body)
	assert.Equal(t, []Shelf{{ID: "11", Name: "read", Exclusive: true}}, review.Shelves)

	assert.Equal(t, goodreadstest.BookTitle, review.Book.Title)
	assert.True(t, review.Book.Partial())
	assert.Equal(t, []string{goodreadstest.AuthorName}, review.Book.AuthorNames())

	calls := srv.Calls()
	last := calls[len(calls)-1]
	assert.Equal(t, "/review/list", last.Path)
	assert.Equal(t, "2", last.Query.Get("v"))
	assert.Equal(t, "read", last.Query.Get("shelf"))
	assert.Contains(t, last.Authorization, `oauth_token="`+goodreadstest.AccessToken+`"`)
}
