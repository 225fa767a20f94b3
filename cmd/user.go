package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/goodreads/goodreads"
)

var (
	username    string
	showShelves bool
	reviewShelf string
	listPage    int
)

// userCmd represents the user command
var userCmd = &cobra.Command{
	Use:   "user [id]",
	Short: "Show a member profile",
	Long: `Show a member by ID or --username. Without either, the member who authorized
this client is shown.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: initializeApp,
	RunE:    runUser,
}

func init() {
	rootCmd.AddCommand(userCmd)

	userCmd.Flags().StringVarP(&username, "username", "u", "", "look up by username")
	userCmd.Flags().BoolVar(&showShelves, "shelves", false, "list the member's shelves")
	userCmd.Flags().StringVar(&reviewShelf, "reviews", "", "list reviews on this shelf (needs auth; use 'all' for every shelf)")
	userCmd.Flags().IntVar(&listPage, "page", 1, "page of shelves or reviews")
}

func runUser(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var (
		user *goodreads.User
		err  error
	)
	switch {
	case len(args) == 1 || username != "":
		var id string
		if len(args) == 1 {
			id = args[0]
		}
		user, err = client.User(ctx, id, username)
	default:
		user, err = client.AuthUser(ctx)
		if errors.Is(err, goodreads.ErrUnauthenticated) {
			return fmt.Errorf("give a user ID or --username, or run \"goodreads auth\" first")
		}
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printUser(out, user)

	if showShelves {
		shelves, err := user.ShelfList(ctx, listPage)
		if err != nil {
			return err
		}
		printShelves(out, shelves)
	}

	if reviewShelf != "" {
		shelf := reviewShelf
		if shelf == "all" {
			shelf = ""
		}
		reviews, err := user.Reviews(ctx, shelf, listPage)
		if errors.Is(err, goodreads.ErrUnauthenticated) {
			return fmt.Errorf("listing reviews needs authorization, run \"goodreads auth\" first")
		}
		if err != nil {
			return err
		}
		printReviews(out, reviews)
	}

	return nil
}
