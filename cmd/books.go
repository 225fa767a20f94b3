package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/goodreads/filter"
	"github.com/s0up4200/goodreads/goodreads"
)

// maxConcurrentLookups bounds parallel book lookups
const maxConcurrentLookups = 4

var (
	bookISBNs   []string
	showCounts  bool
	bookFilter  string
	showBooks   bool
	showDetails bool
)

// bookCmd represents the book command
var bookCmd = &cobra.Command{
	Use:   "book [id...]",
	Short: "Show books by Goodreads ID or ISBN",
	Long: `Show one or more books. Books are looked up in parallel and printed in the
order given, IDs first, then ISBNs.

Examples:
  goodreads book 234225
  goodreads book --isbn 0441172717 --isbn 0812550706 --counts
  goodreads book 234225 53732 --filter 'Rating > 4.2'`,
	PreRunE: initializeApp,
	RunE:    runBook,
}

// authorCmd represents the author command
var authorCmd = &cobra.Command{
	Use:     "author <id>",
	Short:   "Show an author profile",
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runAuthor,
}

func init() {
	rootCmd.AddCommand(bookCmd)
	rootCmd.AddCommand(authorCmd)

	bookCmd.Flags().StringSliceVar(&bookISBNs, "isbn", nil, "look up by ISBN (repeatable)")
	bookCmd.Flags().BoolVar(&showCounts, "counts", false, "also show review counts per ISBN")
	bookCmd.Flags().StringVarP(&bookFilter, "filter", "f", "", "filter expression or preset name")
	bookCmd.Flags().BoolVar(&showDetails, "details", false, "show description and shelves")

	authorCmd.Flags().BoolVar(&showBooks, "books", false, "list the author's books")
	authorCmd.Flags().StringVarP(&bookFilter, "filter", "f", "", "filter the listed books")
}

func runBook(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && len(bookISBNs) == 0 {
		return fmt.Errorf("give at least one book ID or --isbn")
	}

	f, err := resolveFilter(bookFilter)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	books, err := fetchBooks(ctx, client, args, bookISBNs)
	if err != nil {
		return err
	}

	if f != nil {
		if books, err = filter.Books(f, books); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if len(books) == 0 {
		fmt.Fprintln(out, "No books found matching the filter criteria.")
		return nil
	}
	for i := range books {
		printBook(out, &books[i], showDetails)
	}

	if showCounts {
		return printCounts(ctx, out, books)
	}
	return nil
}

// fetchBooks looks books up concurrently. Failed lookups are logged and skipped;
// the first error is returned only when nothing could be fetched.
func fetchBooks(ctx context.Context, c *goodreads.Client, ids, isbns []string) ([]goodreads.Book, error) {
	type lookup struct{ id, isbn string }
	lookups := make([]lookup, 0, len(ids)+len(isbns))
	for _, id := range ids {
		lookups = append(lookups, lookup{id: id})
	}
	for _, isbn := range isbns {
		lookups = append(lookups, lookup{isbn: isbn})
	}

	results := make([]*goodreads.Book, len(lookups))
	errs := make([]error, len(lookups))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)

	for i, l := range lookups {
		g.Go(func() error {
			book, err := c.Book(ctx, l.id, l.isbn)
			if err != nil {
				logger.Warn().
					Err(err).
					Str("id", l.id).
					Str("isbn", l.isbn).
					Msg("Failed to get book")
				errs[i] = err
				return nil
			}
			results[i] = book
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	books := make([]goodreads.Book, 0, len(results))
	var firstErr error
	for i, b := range results {
		if b != nil {
			books = append(books, *b)
		} else if firstErr == nil {
			firstErr = errs[i]
		}
	}
	if len(books) == 0 && firstErr != nil {
		return nil, firstErr
	}
	return books, nil
}

func printCounts(ctx context.Context, out io.Writer, books []goodreads.Book) error {
	isbns := make([]string, 0, len(books))
	for _, b := range books {
		if b.ISBN != "" {
			isbns = append(isbns, b.ISBN)
		}
	}
	if len(isbns) == 0 {
		return nil
	}

	counts, err := client.ReviewCounts(ctx, isbns...)
	if err != nil {
		return err
	}
	printReviewCounts(out, counts)
	return nil
}

func runAuthor(cmd *cobra.Command, args []string) error {
	f, err := resolveFilter(bookFilter)
	if err != nil {
		return err
	}

	author, err := client.Author(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printAuthor(out, author)

	if !showBooks && f == nil {
		return nil
	}

	books := author.Books
	if f != nil {
		if books, err = filter.Books(f, books); err != nil {
			return err
		}
	}
	printBookList(out, books)
	return nil
}
