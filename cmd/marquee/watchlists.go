package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/marquee/internal/api"
	"github.com/vmunix/marquee/internal/app"
)

var watchlistsCmd = &cobra.Command{
	Use:     "watchlists",
	Aliases: []string{"wl"},
	Short:   "Manage watchlists",
}

var watchlistsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List watchlists",
	Args:  cobra.NoArgs,
	RunE:  runWatchlistsList,
}

var watchlistsShowCmd = &cobra.Command{
	Use:   "show <watchlist>",
	Short: "Show the movies in a watchlist (by id or name)",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatchlistsShow,
}

var watchlistsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a watchlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatchlistsCreate,
}

var watchlistsUpdateCmd = &cobra.Command{
	Use:   "update <watchlist>",
	Short: "Rename or edit a watchlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatchlistsUpdate,
}

var watchlistsDeleteCmd = &cobra.Command{
	Use:     "delete <watchlist>",
	Aliases: []string{"rm"},
	Short:   "Delete a watchlist",
	Args:    cobra.ExactArgs(1),
	RunE:    runWatchlistsDelete,
}

var watchlistsAddCmd = &cobra.Command{
	Use:   "add <watchlist> <movie-id>",
	Short: "Add a movie to a watchlist",
	Args:  cobra.ExactArgs(2),
	RunE:  runWatchlistsAdd,
}

var watchlistsRemoveCmd = &cobra.Command{
	Use:   "remove <watchlist> <movie-id>",
	Short: "Remove a movie from a watchlist",
	Args:  cobra.ExactArgs(2),
	RunE:  runWatchlistsRemove,
}

func init() {
	rootCmd.AddCommand(watchlistsCmd)
	watchlistsCmd.AddCommand(watchlistsListCmd, watchlistsShowCmd, watchlistsCreateCmd,
		watchlistsUpdateCmd, watchlistsDeleteCmd, watchlistsAddCmd, watchlistsRemoveCmd)

	watchlistsCreateCmd.Flags().String("description", "", "Description")
	watchlistsCreateCmd.Flags().Bool("public", false, "Make the watchlist public")

	watchlistsUpdateCmd.Flags().String("name", "", "New name")
	watchlistsUpdateCmd.Flags().String("description", "", "New description")
	watchlistsUpdateCmd.Flags().Bool("public", false, "Make the watchlist public")
}

// findWatchlist matches arg against watchlist ids first, then names (case-insensitive).
func findWatchlist(lists []api.Watchlist, arg string) (api.Watchlist, error) {
	for _, wl := range lists {
		if wl.ID == arg {
			return wl, nil
		}
	}
	for _, wl := range lists {
		if strings.EqualFold(wl.Name, arg) {
			return wl, nil
		}
	}
	return api.Watchlist{}, fmt.Errorf("watchlist %q not found", arg)
}

// loadWatchlist loads the user's watchlists and resolves arg.
func loadWatchlist(cmd *cobra.Command, s *app.Session, arg string) (api.Watchlist, error) {
	lists, err := check(s.Watchlists.Load(cmd.Context()))
	if err != nil {
		return api.Watchlist{}, err
	}
	return findWatchlist(lists, arg)
}

func runWatchlistsList(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(s *app.Session) error {
		lists, err := check(s.Watchlists.Load(cmd.Context()))
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(w, lists)
		}
		if len(lists) == 0 {
			fmt.Fprintln(w, "No watchlists")
			return nil
		}
		printWatchlists(w, lists)
		return nil
	})
}

func printWatchlists(w io.Writer, lists []api.Watchlist) {
	fmt.Fprintf(w, " %-24s │ %-30s │ %6s │ %s\n", "ID", "NAME", "MOVIES", "VISIBILITY")
	fmt.Fprintln(w, "──────────────────────────┼────────────────────────────────┼────────┼───────────")
	for _, wl := range lists {
		vis := "private"
		if wl.IsPublic {
			vis = "public"
		}
		fmt.Fprintf(w, " %-24s │ %-30s │ %6d │ %s\n", truncate(wl.ID, 24), truncate(wl.Name, 30), wl.MovieCount, vis)
	}
}

func runWatchlistsShow(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(s *app.Session) error {
		wl, err := loadWatchlist(cmd, s, args[0])
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(w, wl)
		}
		fmt.Fprintf(w, "%s (%d movies)\n", wl.Name, wl.MovieCount)
		if wl.Description != "" {
			fmt.Fprintf(w, "  %s\n", wl.Description)
		}
		fmt.Fprintln(w)
		for _, m := range wl.Movies {
			fmt.Fprintf(w, " %8d  %-40s  added %s\n", m.MovieID, truncate(m.Title, 40), formatDate(m.AddedAt))
		}
		return nil
	})
}

func runWatchlistsCreate(cmd *cobra.Command, args []string) error {
	in := api.WatchlistInput{Name: args[0]}
	in.Description, _ = cmd.Flags().GetString("description")
	in.IsPublic, _ = cmd.Flags().GetBool("public")

	return withSession(cmd, func(s *app.Session) error {
		ctx := cmd.Context()
		if _, err := check(s.Watchlists.Load(ctx)); err != nil {
			return err
		}
		wl, err := check(s.Watchlists.Create(ctx, in))
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), wl)
		}
		return nil
	})
}

func runWatchlistsUpdate(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if !flags.Changed("name") && !flags.Changed("description") && !flags.Changed("public") {
		return fmt.Errorf("nothing to update: pass at least one of --name, --description, --public")
	}

	return withSession(cmd, func(s *app.Session) error {
		wl, err := loadWatchlist(cmd, s, args[0])
		if err != nil {
			return err
		}
		in := api.WatchlistInput{Name: wl.Name, Description: wl.Description, IsPublic: wl.IsPublic}
		if flags.Changed("name") {
			in.Name, _ = flags.GetString("name")
		}
		if flags.Changed("description") {
			in.Description, _ = flags.GetString("description")
		}
		if flags.Changed("public") {
			in.IsPublic, _ = flags.GetBool("public")
		}

		updated, err := check(s.Watchlists.Update(cmd.Context(), wl.ID, in))
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), updated)
		}
		return nil
	})
}

func runWatchlistsDelete(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(s *app.Session) error {
		wl, err := loadWatchlist(cmd, s, args[0])
		if err != nil {
			return err
		}
		_, err = check(s.Watchlists.Delete(cmd.Context(), wl.ID))
		return err
	})
}

func runWatchlistsAdd(cmd *cobra.Command, args []string) error {
	id, err := parseMovieID(args[1])
	if err != nil {
		return err
	}
	return withSession(cmd, func(s *app.Session) error {
		wl, err := loadWatchlist(cmd, s, args[0])
		if err != nil {
			return err
		}
		ref, err := movieRef(cmd.Context(), s, id)
		if err != nil {
			return err
		}
		updated, err := check(s.Watchlists.AddMovie(cmd.Context(), wl.ID, ref))
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), updated)
		}
		return nil
	})
}

func runWatchlistsRemove(cmd *cobra.Command, args []string) error {
	id, err := parseMovieID(args[1])
	if err != nil {
		return err
	}
	return withSession(cmd, func(s *app.Session) error {
		wl, err := loadWatchlist(cmd, s, args[0])
		if err != nil {
			return err
		}
		_, err = check(s.Watchlists.RemoveMovie(cmd.Context(), wl.ID, id))
		return err
	})
}
