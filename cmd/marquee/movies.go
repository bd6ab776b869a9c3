package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/marquee/internal/app"
	"github.com/vmunix/marquee/internal/tmdb"
)

var browseCmd = &cobra.Command{
	Use:   "browse <category>",
	Short: "List popular, top_rated, upcoming or now_playing movies",
	Args:  cobra.ExactArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, len(tmdb.Categories))
		for i, c := range tmdb.Categories {
			names[i] = string(c)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: runBrowse,
}

var movieCmd = &cobra.Command{
	Use:   "movie <id>",
	Short: "Show movie details, your library status and reviews",
	Args:  cobra.ExactArgs(1),
	RunE:  runMovie,
}

var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List movie genres",
	Args:  cobra.NoArgs,
	RunE:  runGenres,
}

func init() {
	rootCmd.AddCommand(browseCmd, movieCmd, genresCmd)
	browseCmd.Flags().Int("page", 1, "Page number")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	page, _ := cmd.Flags().GetInt("page")
	cat := tmdb.Category(strings.ToLower(args[0]))

	return withSession(cmd, func(s *app.Session) error {
		p, err := check(s.Movies.LoadCategory(cmd.Context(), cat, page))
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(w, p)
		}
		printMovieTable(w, p.Results)
		printPageFooter(w, p)
		return nil
	})
}

type movieView struct {
	Movie       tmdb.Movie `json:"movie"`
	Favorite    bool       `json:"favorite"`
	Watched     bool       `json:"watched"`
	Watchlists  []string   `json:"watchlists,omitempty"`
	ReviewCount int        `json:"reviewCount"`
	UserRating  float64    `json:"userRating,omitempty"`
}

func runMovie(cmd *cobra.Command, args []string) error {
	id, err := parseMovieID(args[0])
	if err != nil {
		return err
	}

	return withSession(cmd, func(s *app.Session) error {
		ctx := cmd.Context()
		m, err := check(s.Movies.LoadDetails(ctx, id))
		if err != nil {
			return err
		}
		view := movieView{Movie: m}

		if s.Reviews.LoadForMovie(ctx, id).Success {
			view.UserRating, view.ReviewCount = s.Reviews.AverageRating(id)
		}
		if s.Credentials.IsAuthenticated() {
			s.Library.Load(ctx)
			s.Watchlists.Load(ctx)
			view.Favorite = s.Library.IsFavorite(id)
			view.Watched = s.Library.IsWatched(id)
			for _, wl := range s.Watchlists.Containing(id) {
				view.Watchlists = append(view.Watchlists, wl.Name)
			}
		}

		w := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(w, view)
		}
		fmt.Fprintf(w, "%s (%s)\n", m.Title, formatYear(m.ReleaseDate))
		if m.Tagline != "" {
			fmt.Fprintf(w, "  %s\n", m.Tagline)
		}
		fmt.Fprintln(w)
		names := make([]string, len(m.Genres))
		for i, g := range m.Genres {
			names[i] = g.Name
		}
		fmt.Fprintf(w, "  Genres:   %s\n", joinOr(names, "-"))
		if m.Runtime > 0 {
			fmt.Fprintf(w, "  Runtime:  %d min\n", m.Runtime)
		}
		fmt.Fprintf(w, "  TMDB:     %.1f (%d votes)\n", m.VoteAverage, m.VoteCount)
		if view.ReviewCount > 0 {
			fmt.Fprintf(w, "  Reviews:  %.1f from %d reviews\n", view.UserRating, view.ReviewCount)
		}
		if poster := s.TMDB.ImageURL("w500", m.PosterPath); poster != "" {
			fmt.Fprintf(w, "  Poster:   %s\n", poster)
		}
		if s.Credentials.IsAuthenticated() {
			fmt.Fprintf(w, "  Favorite: %s   Watched: %s\n", yesNo(view.Favorite), yesNo(view.Watched))
			fmt.Fprintf(w, "  Lists:    %s\n", joinOr(view.Watchlists, "-"))
		}
		if m.Overview != "" {
			fmt.Fprintf(w, "\n%s\n", m.Overview)
		}
		return nil
	})
}

func runGenres(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(s *app.Session) error {
		if _, err := check(s.Genres.Load(cmd.Context())); err != nil {
			return err
		}
		all := s.Genres.All()
		w := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(w, all)
		}
		for _, g := range all {
			fmt.Fprintf(w, " %6d  %s\n", g.ID, g.Name)
		}
		return nil
	})
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
