package goodreads

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFragmentScalars(t *testing.T) {
	fragment := map[string]any{
		"id":             map[string]any{"-type": "integer", "#text": "11"},
		"name":           "to-read",
		"book_count":     "143",
		"exclusive_flag": map[string]any{"-type": "boolean", "#text": "true"},
		"sort":           map[string]any{"-nil": "true"},
		"description":    "",
	}

	var shelf UserShelf
	require.NoError(t, decodeFragment(fragment, &shelf))

	assert.Equal(t, UserShelf{
		ID:            "11",
		Name:          "to-read",
		BookCount:     143,
		ExclusiveFlag: true,
	}, shelf)
}

func TestDecodeFragmentMissingFieldsDefault(t *testing.T) {
	var b Book
	require.NoError(t, decodeFragment(map[string]any{"id": "9"}, &b))

	assert.Equal(t, "9", b.ID)
	assert.Empty(t, b.Title)
	assert.Zero(t, b.NumPages)
	assert.Zero(t, b.AverageRating)
	assert.Empty(t, b.Authors)
}

func TestDecodeFragmentEmptyElements(t *testing.T) {
	fragment := map[string]any{
		"id":              "9",
		"work":            "",
		"authors":         "",
		"popular_shelves": "\n    ",
		"num_pages":       "",
	}

	var b Book
	require.NoError(t, decodeFragment(fragment, &b))
	assert.Equal(t, Work{}, b.Work)
	assert.Empty(t, b.Authors)
	assert.Empty(t, b.PopularShelves)
	assert.Zero(t, b.NumPages)
}

func TestDecodeFragmentLists(t *testing.T) {
	tests := []struct {
		name    string
		authors any
		want    []string
	}{
		{
			name: "container with repeated children",
			authors: map[string]any{"author": []any{
				map[string]any{"id": "1", "name": "Ursula K. Le Guin"},
				map[string]any{"id": "2", "name": "Frank Herbert"},
			}},
			want: []string{"Ursula K. Le Guin", "Frank Herbert"},
		},
		{
			name:    "container with a single child",
			authors: map[string]any{"author": map[string]any{"id": "2", "name": "Frank Herbert"}},
			want:    []string{"Frank Herbert"},
		},
		{
			name:    "container with attributes only",
			authors: map[string]any{"-type": "array"},
			want:    []string{},
		},
		{
			name:    "unwrapped entity",
			authors: map[string]any{"id": "2", "name": "Frank Herbert"},
			want:    []string{"Frank Herbert"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Book
			require.NoError(t, decodeFragment(map[string]any{"authors": tt.authors}, &b))
			assert.Equal(t, tt.want, b.AuthorNames())
		})
	}
}

func TestDecodeFragmentAttributeShelves(t *testing.T) {
	fragment := map[string]any{
		"shelves": map[string]any{
			"shelf": map[string]any{"-name": "read", "-exclusive": "true", "-id": "11"},
		},
	}

	var r Review
	require.NoError(t, decodeFragment(fragment, &r))
	require.Len(t, r.Shelves, 1)
	assert.Equal(t, Shelf{ID: "11", Name: "read", Exclusive: true}, r.Shelves[0])
}

func TestDecodeFragmentInvalid(t *testing.T) {
	var b Book
	err := decodeFragment(map[string]any{"num_pages": "many"}, &b)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestBookHelpers(t *testing.T) {
	b := Book{
		PublicationYear:  1969,
		PublicationMonth: 3,
		Description:      "A <b>winter</b> planet.<br/>\n  No genders.",
		Authors:          []Author{{Name: "Ursula K. Le Guin"}},
	}

	date, ok := b.PublicationDate()
	require.True(t, ok)
	assert.Equal(t, time.Date(1969, time.March, 1, 0, 0, 0, 0, time.UTC), date)

	assert.Equal(t, "A winter planet. No genders.", b.PlainDescription())
	assert.Equal(t, []string{"Ursula K. Le Guin"}, b.AuthorNames())

	_, ok = (&Book{}).PublicationDate()
	assert.False(t, ok)
	assert.Empty(t, (&Book{}).PlainDescription())
}

func TestCommentTimes(t *testing.T) {
	c := Comment{CreatedAt: "Tue Jan 08 10:15:00 -0800 2013", UpdatedAt: "yesterday"}

	created := c.Created()
	assert.Equal(t, 2013, created.Year())
	assert.Equal(t, time.January, created.Month())
	assert.Equal(t, 8, created.Day())
	assert.Equal(t, 18, created.UTC().Hour())

	assert.True(t, c.Updated().IsZero())
	assert.True(t, (&Comment{}).Created().IsZero())
}

func TestUserDisplayName(t *testing.T) {
	assert.Equal(t, "Eve", (&User{ID: "1", Name: "Eve", UserName: "eve"}).GetDisplayName())
	assert.Equal(t, "eve", (&User{ID: "1", UserName: "eve"}).GetDisplayName())
	assert.Equal(t, "1", (&User{ID: "1"}).GetDisplayName())
}
