package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vmunix/marquee/internal/api"
	"github.com/vmunix/marquee/internal/app"
)

var favoritesCmd = &cobra.Command{
	Use:     "favorites",
	Aliases: []string{"fav"},
	Short:   "Manage favorite movies",
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorites, newest first",
	Args:  cobra.NoArgs,
	RunE:  runFavoritesList,
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <movie-id>",
	Short: "Add a movie to favorites",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoritesAdd,
}

var favoritesRemoveCmd = &cobra.Command{
	Use:     "remove <movie-id>",
	Aliases: []string{"rm"},
	Short:   "Remove a movie from favorites",
	Args:    cobra.ExactArgs(1),
	RunE:    runFavoritesRemove,
}

var watchedCmd = &cobra.Command{
	Use:   "watched",
	Short: "Manage watched movies",
}

var watchedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List watched movies, most recent first",
	Args:  cobra.NoArgs,
	RunE:  runWatchedList,
}

var watchedAddCmd = &cobra.Command{
	Use:   "add <movie-id>",
	Short: "Mark a movie as watched",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatchedAdd,
}

var watchedRemoveCmd = &cobra.Command{
	Use:     "remove <movie-id>",
	Aliases: []string{"rm"},
	Short:   "Remove a movie from watched",
	Args:    cobra.ExactArgs(1),
	RunE:    runWatchedRemove,
}

var watchedRateCmd = &cobra.Command{
	Use:   "rate <movie-id> [rating]",
	Short: "Rate a watched movie 0-10, or clear the rating",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runWatchedRate,
}

func init() {
	rootCmd.AddCommand(favoritesCmd, watchedCmd)
	favoritesCmd.AddCommand(favoritesListCmd, favoritesAddCmd, favoritesRemoveCmd)
	watchedCmd.AddCommand(watchedListCmd, watchedAddCmd, watchedRemoveCmd, watchedRateCmd)

	favoritesListCmd.Flags().String("filter", "", "Fuzzy title filter")
	watchedListCmd.Flags().String("filter", "", "Fuzzy title filter")
	watchedAddCmd.Flags().Float64("rating", -1, "Rating 0-10")
}

// movieRef resolves a TMDB id into the metadata the backend stores with library entries.
func movieRef(ctx context.Context, s *app.Session, id int64) (api.MovieRef, error) {
	m, err := check(s.Movies.LoadDetails(ctx, id))
	if err != nil {
		return api.MovieRef{}, err
	}
	return api.MovieRef{
		MovieID:     m.ID,
		Title:       m.Title,
		PosterPath:  m.PosterPath,
		ReleaseDate: m.ReleaseDate,
	}, nil
}

func parseRating(s string) (*float64, error) {
	r, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid rating %q", s)
	}
	return &r, nil
}

func runFavoritesList(cmd *cobra.Command, args []string) error {
	filter, _ := cmd.Flags().GetString("filter")

	return withSession(cmd, func(s *app.Session) error {
		if _, err := check(s.Library.LoadFavorites(cmd.Context())); err != nil {
			return err
		}
		favs := s.Library.FilterFavorites(filter)
		w := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(w, favs)
		}
		if len(favs) == 0 {
			fmt.Fprintln(w, "No favorites")
			return nil
		}
		printFavorites(w, favs)
		return nil
	})
}

func printFavorites(w io.Writer, favs []api.Favorite) {
	fmt.Fprintf(w, " %8s │ %-40s │ %4s │ %s\n", "ID", "TITLE", "YEAR", "ADDED")
	fmt.Fprintln(w, "──────────┼──────────────────────────────────────────┼──────┼────────────")
	for _, f := range favs {
		fmt.Fprintf(w, " %8d │ %-40s │ %4s │ %s\n", f.MovieID, truncate(f.Title, 40), formatYear(f.ReleaseDate), formatDate(f.CreatedAt))
	}
}

func runFavoritesAdd(cmd *cobra.Command, args []string) error {
	id, err := parseMovieID(args[0])
	if err != nil {
		return err
	}
	return withSession(cmd, func(s *app.Session) error {
		ctx := cmd.Context()
		if _, err := check(s.Library.LoadFavorites(ctx)); err != nil {
			return err
		}
		ref, err := movieRef(ctx, s, id)
		if err != nil {
			return err
		}
		fav, err := check(s.Library.AddFavorite(ctx, ref))
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), fav)
		}
		return nil
	})
}

func runFavoritesRemove(cmd *cobra.Command, args []string) error {
	id, err := parseMovieID(args[0])
	if err != nil {
		return err
	}
	return withSession(cmd, func(s *app.Session) error {
		ctx := cmd.Context()
		if _, err := check(s.Library.LoadFavorites(ctx)); err != nil {
			return err
		}
		_, err := check(s.Library.RemoveFavorite(ctx, id))
		return err
	})
}

func runWatchedList(cmd *cobra.Command, args []string) error {
	filter, _ := cmd.Flags().GetString("filter")

	return withSession(cmd, func(s *app.Session) error {
		if _, err := check(s.Library.LoadWatched(cmd.Context())); err != nil {
			return err
		}
		watched := s.Library.FilterWatched(filter)
		w := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(w, watched)
		}
		if len(watched) == 0 {
			fmt.Fprintln(w, "No watched movies")
			return nil
		}
		printWatched(w, watched)
		return nil
	})
}

func printWatched(w io.Writer, watched []api.WatchedMovie) {
	fmt.Fprintf(w, " %8s │ %-40s │ %4s │ %6s │ %s\n", "ID", "TITLE", "YEAR", "RATING", "WATCHED")
	fmt.Fprintln(w, "──────────┼──────────────────────────────────────────┼──────┼────────┼────────────")
	for _, m := range watched {
		fmt.Fprintf(w, " %8d │ %-40s │ %4s │ %6s │ %s\n", m.MovieID, truncate(m.Title, 40), formatYear(m.ReleaseDate), formatRating(m.Rating), formatDate(m.WatchedAt))
	}
}

func runWatchedAdd(cmd *cobra.Command, args []string) error {
	id, err := parseMovieID(args[0])
	if err != nil {
		return err
	}
	var rating *float64
	if cmd.Flags().Changed("rating") {
		r, _ := cmd.Flags().GetFloat64("rating")
		rating = &r
	}

	return withSession(cmd, func(s *app.Session) error {
		ctx := cmd.Context()
		if _, err := check(s.Library.LoadWatched(ctx)); err != nil {
			return err
		}
		ref, err := movieRef(ctx, s, id)
		if err != nil {
			return err
		}
		m, err := check(s.Library.AddWatched(ctx, ref, rating))
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), m)
		}
		return nil
	})
}

func runWatchedRemove(cmd *cobra.Command, args []string) error {
	id, err := parseMovieID(args[0])
	if err != nil {
		return err
	}
	return withSession(cmd, func(s *app.Session) error {
		ctx := cmd.Context()
		if _, err := check(s.Library.LoadWatched(ctx)); err != nil {
			return err
		}
		_, err := check(s.Library.RemoveWatched(ctx, id))
		return err
	})
}

func runWatchedRate(cmd *cobra.Command, args []string) error {
	id, err := parseMovieID(args[0])
	if err != nil {
		return err
	}
	var rating *float64
	if len(args) == 2 {
		if rating, err = parseRating(args[1]); err != nil {
			return err
		}
	}

	return withSession(cmd, func(s *app.Session) error {
		ctx := cmd.Context()
		if _, err := check(s.Library.LoadWatched(ctx)); err != nil {
			return err
		}
		m, err := check(s.Library.RateWatched(ctx, id, rating))
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), m)
		}
		return nil
	})
}
