package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/goodreads/filter"
	"github.com/s0up4200/goodreads/goodreads"
)

var (
	commentPage   int
	commentFilter string
	listTypes     bool
)

// commentsCmd represents the comments command
var commentsCmd = &cobra.Command{
	Use:   "comments <type> <resource-id>",
	Short: "Show the comment thread attached to a resource",
	Long: `Show one page of comments on a review, list, topic or any other commentable
resource. Run with --types to see every supported type.

Examples:
  goodreads comments review 9001
  goodreads comments list 1 --page 2 --filter 'byUser("ereader")'`,
	Args: func(cmd *cobra.Command, args []string) error {
		if listTypes {
			return nil
		}
		return cobra.ExactArgs(2)(cmd, args)
	},
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if listTypes {
			return nil
		}
		return initializeApp(cmd, args)
	},
	RunE: runComments,
}

func init() {
	rootCmd.AddCommand(commentsCmd)

	commentsCmd.Flags().IntVar(&commentPage, "page", 1, "page of the thread")
	commentsCmd.Flags().StringVarP(&commentFilter, "filter", "f", "", "filter expression or preset name")
	commentsCmd.Flags().BoolVar(&listTypes, "types", false, "list the supported comment types")
}

func runComments(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if listTypes {
		for _, ct := range goodreads.CommentTypes() {
			fmt.Fprintln(out, ct)
		}
		return nil
	}

	commentType := goodreads.CommentType(strings.ToLower(args[0]))
	if !commentType.Valid() {
		return fmt.Errorf("unknown comment type %q (see --types)", args[0])
	}

	f, err := resolveFilter(commentFilter)
	if err != nil {
		return err
	}

	comments, err := client.Comments(cmd.Context(), commentType, args[1], commentPage)
	if err != nil {
		return err
	}

	if f != nil {
		if comments, err = filter.Comments(f, comments); err != nil {
			return err
		}
	}

	printComments(out, comments)
	return nil
}
