package filter

import (
	"slices"
	"strings"

	"github.com/s0up4200/goodreads/goodreads"
)

// BookEnv exposes a book to filter expressions.
//
// Variables: Title, ISBN, ISBN13, Year, Pages, Rating, RatingsCount, Publisher,
// Language, IsEbook, Authors, Shelves, Description, Published and Book.
// Helpers: hasAuthor(name), onShelf(name).
func BookEnv(b *goodreads.Book) map[string]any {
	published, _ := b.PublicationDate()
	shelves := make([]string, 0, len(b.PopularShelves))
	for _, s := range b.PopularShelves {
		shelves = append(shelves, s.Name)
	}
	authors := b.AuthorNames()

	return map[string]any{
		"Book":         b,
		"Title":        b.Title,
		"ISBN":         b.ISBN,
		"ISBN13":       b.ISBN13,
		"Year":         b.PublicationYear,
		"Pages":        b.NumPages,
		"Rating":       b.AverageRating,
		"RatingsCount": b.RatingsCount,
		"Publisher":    b.Publisher,
		"Language":     b.LanguageCode,
		"IsEbook":      b.IsEbook,
		"Authors":      authors,
		"Shelves":      shelves,
		"Description":  b.PlainDescription(),
		"Published":    published,
		"hasAuthor":    createContainsFoldFunc(authors),
		"onShelf":      createContainsFoldFunc(shelves),
	}
}

// CommentEnv exposes a comment to filter expressions.
//
// Variables: Body, User, UserID, Created, Updated and Comment.
// Helpers: byUser(name).
func CommentEnv(c *goodreads.Comment) map[string]any {
	return map[string]any{
		"Comment": c,
		"Body":    c.Body,
		"User":    c.User.GetDisplayName(),
		"UserID":  c.User.ID,
		"Created": c.Created(),
		"Updated": c.Updated(),
		"byUser":  createByUserFunc(c.User),
	}
}

// Books returns the books matching f, keeping their order
func Books(f Filter, books []goodreads.Book) ([]goodreads.Book, error) {
	return apply(f, books, func(b *goodreads.Book) (string, map[string]any) {
		return b.Title, BookEnv(b)
	})
}

// Comments returns the comments matching f, keeping their order
func Comments(f Filter, comments []goodreads.Comment) ([]goodreads.Comment, error) {
	return apply(f, comments, func(c *goodreads.Comment) (string, map[string]any) {
		return c.ID, CommentEnv(c)
	})
}

func apply[T any](f Filter, items []T, envOf func(*T) (string, map[string]any)) ([]T, error) {
	matches := make([]T, 0, len(items))
	for i := range items {
		subject, env := envOf(&items[i])
		ok, err := f.Match(env)
		if err != nil {
			return nil, &EvaluationError{Expression: expressionOf(f), Subject: subject, Err: err}
		}
		if ok {
			matches = append(matches, items[i])
		}
	}
	return matches, nil
}

func expressionOf(f Filter) string {
	if cf, ok := f.(CompiledFilter); ok {
		return cf.Expression()
	}
	return ""
}

func createContainsFoldFunc(values []string) func(string) bool {
	lower := make([]string, len(values))
	for i, v := range values {
		lower[i] = strings.ToLower(v)
	}
	return func(value string) bool {
		return slices.Contains(lower, strings.ToLower(value))
	}
}

func createByUserFunc(u goodreads.User) func(string) bool {
	return func(who string) bool {
		return who == u.ID || strings.EqualFold(who, u.UserName) || strings.EqualFold(who, u.Name)
	}
}
