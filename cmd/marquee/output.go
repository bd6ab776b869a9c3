package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/vmunix/marquee/internal/apicall"
	"github.com/vmunix/marquee/internal/tmdb"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// check unwraps a store result. The failure was already shown as a
// notification, so only errReported is returned.
func check[T any](r apicall.Result[T]) (T, error) {
	if !r.Success {
		return r.Data, errReported
	}
	return r.Data, nil
}

func parseMovieID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid movie id %q", arg)
	}
	return id, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

func formatYear(date string) string {
	if len(date) < 4 {
		return "----"
	}
	return date[:4]
}

func formatRating(r *float64) string {
	if r == nil {
		return "-"
	}
	return strconv.FormatFloat(*r, 'f', -1, 64)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02")
}

func printMovieTable(w io.Writer, movies []tmdb.MovieSummary) {
	fmt.Fprintf(w, " %8s │ %-40s │ %4s │ %4s\n", "ID", "TITLE", "YEAR", "VOTE")
	fmt.Fprintln(w, "──────────┼──────────────────────────────────────────┼──────┼──────")
	for _, m := range movies {
		fmt.Fprintf(w, " %8d │ %-40s │ %4s │ %4.1f\n", m.ID, truncate(m.Title, 40), formatYear(m.ReleaseDate), m.VoteAverage)
	}
}

func printPageFooter(w io.Writer, p tmdb.Page) {
	if p.TotalPages > 1 {
		fmt.Fprintf(w, "\nPage %d of %d (%d results)\n", p.Page, p.TotalPages, p.TotalResults)
	}
}

func joinOr(parts []string, empty string) string {
	if len(parts) == 0 {
		return empty
	}
	return strings.Join(parts, ", ")
}
