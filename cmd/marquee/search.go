package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/marquee/internal/app"
	"github.com/vmunix/marquee/internal/store"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search movies by title",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

var suggestCmd = &cobra.Command{
	Use:   "suggest <prefix>",
	Short: "Suggest titles for a partial query",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSuggest,
}

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find movies by genre, year range and rating",
	Example: `  marquee discover --genre "Science Fiction" --year-from 1990 --year-to 1999 --sort rating
  marquee discover --query matrix --min-rating 7`,
	Args: cobra.NoArgs,
	RunE: runDiscover,
}

func init() {
	rootCmd.AddCommand(searchCmd, suggestCmd, discoverCmd)

	searchCmd.Flags().Int("page", 1, "Page number")

	discoverCmd.Flags().String("query", "", "Title query")
	discoverCmd.Flags().StringSlice("genre", nil, "Genre name or id (repeatable)")
	discoverCmd.Flags().Int("year-from", 0, "Earliest release year")
	discoverCmd.Flags().Int("year-to", 0, "Latest release year")
	discoverCmd.Flags().Float64("min-rating", 0, "Minimum TMDB vote average (0-10)")
	discoverCmd.Flags().String("sort", store.SortPopularity, "Sort by popularity, rating, release_date or title")
	discoverCmd.Flags().Int("page", 1, "Page number")
}

func runSearch(cmd *cobra.Command, args []string) error {
	page, _ := cmd.Flags().GetInt("page")
	query := strings.Join(args, " ")

	return withSession(cmd, func(s *app.Session) error {
		p, err := check(s.Search.Search(cmd.Context(), query, page))
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(w, p)
		}
		if len(p.Results) == 0 {
			fmt.Fprintf(w, "No movies found for %q\n", query)
			return nil
		}
		printMovieTable(w, p.Results)
		printPageFooter(w, p)
		return nil
	})
}

func runSuggest(cmd *cobra.Command, args []string) error {
	prefix := strings.Join(args, " ")

	return withSession(cmd, func(s *app.Session) error {
		movies, err := check(s.Search.Suggestions(cmd.Context(), prefix))
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(w, movies)
		}
		for _, m := range movies {
			fmt.Fprintf(w, "%s (%s)\n", m.Title, formatYear(m.ReleaseDate))
		}
		return nil
	})
}

func runDiscover(cmd *cobra.Command, args []string) error {
	var q store.AdvancedQuery
	q.Query, _ = cmd.Flags().GetString("query")
	q.YearFrom, _ = cmd.Flags().GetInt("year-from")
	q.YearTo, _ = cmd.Flags().GetInt("year-to")
	q.MinRating, _ = cmd.Flags().GetFloat64("min-rating")
	q.SortBy, _ = cmd.Flags().GetString("sort")
	q.Page, _ = cmd.Flags().GetInt("page")
	genres, _ := cmd.Flags().GetStringSlice("genre")

	switch q.SortBy {
	case store.SortPopularity, store.SortRating, store.SortReleaseDate, store.SortTitle:
	default:
		return fmt.Errorf("unknown sort %q", q.SortBy)
	}

	return withSession(cmd, func(s *app.Session) error {
		ctx := cmd.Context()
		if len(genres) > 0 {
			if _, err := check(s.Genres.Load(ctx)); err != nil {
				return err
			}
			ids, err := resolveGenres(s.Genres, genres)
			if err != nil {
				return err
			}
			q.GenreIDs = ids
		}

		p, err := check(s.Search.Advanced(ctx, q))
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(w, p)
		}
		if len(p.Results) == 0 {
			fmt.Fprintln(w, "No movies match these filters")
			return nil
		}
		printMovieTable(w, p.Results)
		printPageFooter(w, p)
		return nil
	})
}

type genreIndex interface {
	IDByName(name string) (int, bool)
	Name(id int) string
}

// resolveGenres maps genre names or numeric ids to ids.
func resolveGenres(g genreIndex, values []string) ([]int, error) {
	ids := make([]int, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if id, err := strconv.Atoi(v); err == nil {
			if g.Name(id) == "" {
				return nil, fmt.Errorf("unknown genre id %d", id)
			}
			ids = append(ids, id)
			continue
		}
		id, ok := g.IDByName(v)
		if !ok {
			return nil, fmt.Errorf("unknown genre %q (see 'marquee genres')", v)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
