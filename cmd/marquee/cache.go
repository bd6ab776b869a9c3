package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmunix/marquee/internal/app"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the persistent TMDB cache",
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove expired cache entries",
	Args:  cobra.NoArgs,
	RunE:  runCachePrune,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cache entry",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cachePruneCmd, cacheClearCmd)
}

func runCachePrune(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(s *app.Session) error {
		if s.DiskCache == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Disk cache disabled (set cache.path)")
			return nil
		}
		n, err := s.PruneCache(cmd.Context())
		if err != nil {
			return fmt.Errorf("prune cache: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d expired entries\n", n)
		return nil
	})
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(s *app.Session) error {
		if s.DiskCache == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Disk cache disabled (set cache.path)")
			return nil
		}
		if err := s.DiskCache.Clear(cmd.Context()); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared")
		return nil
	})
}
