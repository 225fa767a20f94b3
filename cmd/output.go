package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/s0up4200/goodreads/goodreads"
)

const (
	separatorWidth = 80
	dateFormat     = "2006-01-02"
)

func separator(out io.Writer) {
	fmt.Fprintln(out, strings.Repeat("-", separatorWidth))
}

func printBook(out io.Writer, b *goodreads.Book, details bool) {
	fmt.Fprintf(out, "• %s", b.Title)
	if authors := b.AuthorNames(); len(authors) > 0 {
		fmt.Fprintf(out, " by %s", strings.Join(authors, ", "))
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "  ID: %s", b.ID)
	if b.ISBN != "" {
		fmt.Fprintf(out, "  ISBN: %s", b.ISBN)
	}
	if b.ISBN13 != "" {
		fmt.Fprintf(out, "  ISBN13: %s", b.ISBN13)
	}
	fmt.Fprintln(out)

	if date, ok := b.PublicationDate(); ok {
		fmt.Fprintf(out, "  Published: %s", date.Format(dateFormat))
		if b.Publisher != "" {
			fmt.Fprintf(out, " (%s)", b.Publisher)
		}
		fmt.Fprintln(out)
	}
	if b.NumPages > 0 {
		fmt.Fprintf(out, "  Pages: %d\n", b.NumPages)
	}
	fmt.Fprintf(out, "  Rating: %.2f (%d ratings)\n", b.AverageRating, b.RatingsCount)

	if !details {
		return
	}
	if len(b.PopularShelves) > 0 {
		names := make([]string, 0, len(b.PopularShelves))
		for _, s := range b.PopularShelves {
			names = append(names, s.Name)
		}
		fmt.Fprintf(out, "  Shelves: %s\n", strings.Join(names, ", "))
	}
	if desc := b.PlainDescription(); desc != "" {
		fmt.Fprintf(out, "  %s\n", desc)
	}
}

func printBookList(out io.Writer, books []goodreads.Book) {
	if len(books) == 0 {
		fmt.Fprintln(out, "No books found matching the filter criteria.")
		return
	}

	fmt.Fprintf(out, "\nFound %d books:\n", len(books))
	separator(out)
	for _, b := range books {
		fmt.Fprintf(out, "• %s (ID: %s)", b.Title, b.ID)
		if b.AverageRating > 0 {
			fmt.Fprintf(out, " %.2f", b.AverageRating)
		}
		fmt.Fprintln(out)
	}
}

func printAuthor(out io.Writer, a *goodreads.Author) {
	fmt.Fprintf(out, "• %s (ID: %s)\n", a.Name, a.ID)
	if a.Hometown != "" {
		fmt.Fprintf(out, "  Hometown: %s\n", a.Hometown)
	}
	if a.BornAt != "" {
		fmt.Fprintf(out, "  Born: %s", a.BornAt)
		if a.DiedAt != "" {
			fmt.Fprintf(out, "  Died: %s", a.DiedAt)
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "  Works: %d  Fans: %d\n", a.WorksCount, a.FansCount)
	if about := a.PlainAbout(); about != "" {
		fmt.Fprintf(out, "  %s\n", about)
	}
}

func printUser(out io.Writer, u *goodreads.User) {
	fmt.Fprintf(out, "• %s (ID: %s)\n", u.GetDisplayName(), u.ID)
	if u.UserName != "" && u.UserName != u.Name {
		fmt.Fprintf(out, "  Username: %s\n", u.UserName)
	}
	if u.Location != "" {
		fmt.Fprintf(out, "  Location: %s\n", u.Location)
	}
	if u.Joined != "" {
		fmt.Fprintf(out, "  Joined: %s\n", u.Joined)
	}
	fmt.Fprintf(out, "  Friends: %d  Reviews: %d\n", u.FriendsCount, u.ReviewsCount)
	if u.Link != "" {
		fmt.Fprintf(out, "  %s\n", u.Link)
	}
}

func printShelves(out io.Writer, shelves []goodreads.UserShelf) {
	fmt.Fprintf(out, "\nShelves (%d):\n", len(shelves))
	separator(out)
	for _, s := range shelves {
		fmt.Fprintf(out, "• %s: %d books", s.Name, s.BookCount)
		if s.ExclusiveFlag {
			fmt.Fprint(out, " [EXCLUSIVE]")
		}
		fmt.Fprintln(out)
	}
}

func printReviews(out io.Writer, reviews []goodreads.Review) {
	if len(reviews) == 0 {
		fmt.Fprintln(out, "No reviews on this shelf.")
		return
	}

	fmt.Fprintf(out, "\nFound %d reviews:\n", len(reviews))
	separator(out)
	for _, r := range reviews {
		fmt.Fprintf(out, "• %s", r.Book.Title)
		if r.Rating > 0 {
			fmt.Fprintf(out, " %s", strings.Repeat("★", r.Rating))
		}
		fmt.Fprintln(out)
		if r.Body != "" {
			fmt.Fprintf(out, "  %s\n", strings.TrimSpace(r.Body))
		}
	}
}

func printComments(out io.Writer, comments []goodreads.Comment) {
	if len(comments) == 0 {
		fmt.Fprintln(out, "No comments found.")
		return
	}

	fmt.Fprintf(out, "\nFound %d comments:\n", len(comments))
	separator(out)
	for _, c := range comments {
		fmt.Fprintf(out, "• %s", c.User.GetDisplayName())
		if created := c.Created(); !created.IsZero() {
			fmt.Fprintf(out, " (%s)", created.Format(dateFormat))
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  %s\n", strings.TrimSpace(c.Body))
	}
}

func printReviewCounts(out io.Writer, counts []goodreads.ReviewCounts) {
	fmt.Fprintf(out, "\nReview counts:\n")
	separator(out)
	for _, c := range counts {
		fmt.Fprintf(out, "• %s: %d ratings, %d reviews, average %.2f\n",
			c.ISBN, c.RatingsCount, c.TextReviewsCount, c.AverageRating)
	}
}
