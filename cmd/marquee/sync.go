package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmunix/marquee/internal/app"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Load genres and, when signed in, your whole library",
	Args:  cobra.NoArgs,
	RunE:  runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

type syncSummary struct {
	Genres     int    `json:"genres"`
	SignedIn   bool   `json:"signedIn"`
	User       string `json:"user,omitempty"`
	Favorites  int    `json:"favorites"`
	Watched    int    `json:"watched"`
	Watchlists int    `json:"watchlists"`
	Reviews    int    `json:"reviews"`
}

func runSync(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(s *app.Session) error {
		if err := s.Bootstrap(cmd.Context()); err != nil {
			return errReported
		}
		sum := syncSummary{
			Genres:     len(s.Genres.All()),
			SignedIn:   s.Profile.IsAuthenticated(),
			Favorites:  len(s.Library.Favorites()),
			Watched:    len(s.Library.Watched()),
			Watchlists: len(s.Watchlists.Watchlists()),
			Reviews:    len(s.Reviews.Mine()),
		}
		if u, ok := s.Profile.User(); ok {
			sum.User = u.Username
		}

		w := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(w, sum)
		}
		fmt.Fprintf(w, "Genres:     %d\n", sum.Genres)
		if !sum.SignedIn {
			fmt.Fprintln(w, "Not signed in (run 'marquee login')")
			return nil
		}
		fmt.Fprintf(w, "User:       %s\n", sum.User)
		fmt.Fprintf(w, "Favorites:  %d\n", sum.Favorites)
		fmt.Fprintf(w, "Watched:    %d\n", sum.Watched)
		fmt.Fprintf(w, "Watchlists: %d\n", sum.Watchlists)
		fmt.Fprintf(w, "Reviews:    %d\n", sum.Reviews)
		return nil
	})
}
