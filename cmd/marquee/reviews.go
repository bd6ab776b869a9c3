package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/marquee/internal/api"
	"github.com/vmunix/marquee/internal/app"
)

var reviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "Read and write movie reviews",
}

var reviewsMovieCmd = &cobra.Command{
	Use:   "movie <movie-id>",
	Short: "List reviews of a movie",
	Args:  cobra.ExactArgs(1),
	RunE:  runReviewsMovie,
}

var reviewsMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List your reviews",
	Args:  cobra.NoArgs,
	RunE:  runReviewsMine,
}

var reviewsCreateCmd = &cobra.Command{
	Use:   "create <movie-id> <text>",
	Short: "Review a movie",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runReviewsCreate,
}

var reviewsUpdateCmd = &cobra.Command{
	Use:   "update <review-id>",
	Short: "Edit one of your reviews",
	Args:  cobra.ExactArgs(1),
	RunE:  runReviewsUpdate,
}

var reviewsDeleteCmd = &cobra.Command{
	Use:     "delete <review-id>",
	Aliases: []string{"rm"},
	Short:   "Delete one of your reviews",
	Args:    cobra.ExactArgs(1),
	RunE:    runReviewsDelete,
}

func init() {
	rootCmd.AddCommand(reviewsCmd)
	reviewsCmd.AddCommand(reviewsMovieCmd, reviewsMineCmd, reviewsCreateCmd, reviewsUpdateCmd, reviewsDeleteCmd)

	reviewsCreateCmd.Flags().Float64("rating", 0, "Rating 0-10")
	_ = reviewsCreateCmd.MarkFlagRequired("rating")

	reviewsUpdateCmd.Flags().Float64("rating", 0, "New rating 0-10")
	reviewsUpdateCmd.Flags().String("text", "", "New review text")
}

func printReviews(w io.Writer, reviews []api.Review) {
	for i, r := range reviews {
		if i > 0 {
			fmt.Fprintln(w)
		}
		author := r.Username
		if author == "" {
			author = r.UserID
		}
		fmt.Fprintf(w, "[%s] %s rated %.1f on %s\n", r.ID, author, r.Rating, formatDate(r.CreatedAt))
		fmt.Fprintf(w, "  %s\n", strings.ReplaceAll(r.Content, "\n", "\n  "))
	}
}

func runReviewsMovie(cmd *cobra.Command, args []string) error {
	id, err := parseMovieID(args[0])
	if err != nil {
		return err
	}
	return withSession(cmd, func(s *app.Session) error {
		reviews, err := check(s.Reviews.LoadForMovie(cmd.Context(), id))
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(w, reviews)
		}
		if len(reviews) == 0 {
			fmt.Fprintln(w, "No reviews yet")
			return nil
		}
		avg, n := s.Reviews.AverageRating(id)
		fmt.Fprintf(w, "Average %.1f from %d reviews\n\n", avg, n)
		printReviews(w, reviews)
		return nil
	})
}

func runReviewsMine(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(s *app.Session) error {
		reviews, err := check(s.Reviews.LoadMine(cmd.Context()))
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(w, reviews)
		}
		if len(reviews) == 0 {
			fmt.Fprintln(w, "You have not reviewed any movies")
			return nil
		}
		printReviews(w, reviews)
		return nil
	})
}

func runReviewsCreate(cmd *cobra.Command, args []string) error {
	id, err := parseMovieID(args[0])
	if err != nil {
		return err
	}
	rating, _ := cmd.Flags().GetFloat64("rating")
	in := api.ReviewInput{MovieID: id, Rating: rating, Content: strings.Join(args[1:], " ")}

	return withSession(cmd, func(s *app.Session) error {
		ctx := cmd.Context()
		if _, err := check(s.Reviews.LoadMine(ctx)); err != nil {
			return err
		}
		r, err := check(s.Reviews.Create(ctx, in))
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), r)
		}
		return nil
	})
}

// findReview returns the review with id from reviews.
func findReview(reviews []api.Review, id string) (api.Review, bool) {
	for _, r := range reviews {
		if r.ID == id {
			return r, true
		}
	}
	return api.Review{}, false
}

func runReviewsUpdate(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if !flags.Changed("rating") && !flags.Changed("text") {
		return fmt.Errorf("nothing to update: pass --rating or --text")
	}

	return withSession(cmd, func(s *app.Session) error {
		ctx := cmd.Context()
		mine, err := check(s.Reviews.LoadMine(ctx))
		if err != nil {
			return err
		}
		existing, ok := findReview(mine, args[0])
		if !ok {
			return fmt.Errorf("review %q not found among your reviews", args[0])
		}
		in := api.ReviewInput{MovieID: existing.MovieID, Rating: existing.Rating, Content: existing.Content}
		if flags.Changed("rating") {
			in.Rating, _ = flags.GetFloat64("rating")
		}
		if flags.Changed("text") {
			in.Content, _ = flags.GetString("text")
		}

		r, err := check(s.Reviews.Update(ctx, existing.ID, in))
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), r)
		}
		return nil
	})
}

func runReviewsDelete(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(s *app.Session) error {
		ctx := cmd.Context()
		if _, err := check(s.Reviews.LoadMine(ctx)); err != nil {
			return err
		}
		_, err := check(s.Reviews.Delete(ctx, args[0]))
		return err
	})
}
