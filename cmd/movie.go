package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/s0up4200/movieclient/dialog"
	"github.com/s0up4200/movieclient/filter"
	"github.com/s0up4200/movieclient/movieapi"
)

var (
	// Movie fields
	movieTitle       string
	movieDescription string
	movieYear        int

	// List flags
	listID     int
	filterExpr string
	preset     string
)

// movieCmd groups the catalog commands
var movieCmd = &cobra.Command{
	Use:   "movie",
	Short: "Manage movies in the catalog",
	Long:  `Create, list, update and delete movies. All movie commands require a logged in session.`,
}

var movieCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a movie to the catalog",
	Args:  cobra.NoArgs,
	RunE:  runMovieCreate,
}

var movieListCmd = &cobra.Command{
	Use:   "list",
	Short: "List movies, optionally narrowed by a filter expression",
	Long: `List the catalog, or a single movie with --id.

Results can be narrowed locally with an expression or a preset from config:

  movieclient movie list --filter 'ReleaseYear >= 1990 and containsFold(Title, "heat")'
  movieclient movie list --preset nineties`,
	Args: cobra.NoArgs,
	RunE: runMovieList,
}

var movieUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace a movie's title, description and release year",
	Args:  cobra.ExactArgs(1),
	RunE:  runMovieUpdate,
}

var movieDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a movie from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE:  runMovieDelete,
}

func init() {
	rootCmd.AddCommand(movieCmd)
	movieCmd.AddCommand(movieCreateCmd, movieListCmd, movieUpdateCmd, movieDeleteCmd)

	for _, c := range []*cobra.Command{movieCreateCmd, movieUpdateCmd} {
		c.Flags().StringVarP(&movieTitle, "title", "t", "", "movie title")
		c.Flags().StringVar(&movieDescription, "description", "", "movie description")
		c.Flags().IntVarP(&movieYear, "year", "y", 0, "release year")
	}
	movieCreateCmd.MarkFlagRequired("title")

	movieListCmd.Flags().IntVar(&listID, "id", movieapi.NoMovieID, "list a single movie by id")
	movieListCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	movieListCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
}

// dispatch runs outcome through the client and prints its result
func dispatch(cmd *cobra.Command, outcome dialog.Outcome) error {
	result, err := dialog.NewDispatcher(client, logger).Dispatch(commandContext(cmd), outcome)
	if err != nil {
		return err
	}

	if result.Message != "" {
		fmt.Println("✓ " + result.Message)
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func parseMovieID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: movie id must be a number, got %q", movieapi.ErrValidation, arg)
	}
	return id, nil
}

func movieFromFlags(id int) movieapi.Movie {
	return movieapi.Movie{
		ID:          id,
		Title:       movieTitle,
		Description: movieDescription,
		ReleaseYear: movieYear,
	}
}

func runMovieCreate(cmd *cobra.Command, args []string) error {
	return dispatch(cmd, dialog.MovieOutcome{
		Action: dialog.MovieCreate,
		Movie:  movieFromFlags(0),
	})
}

func runMovieUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseMovieID(args[0])
	if err != nil {
		return err
	}

	return dispatch(cmd, dialog.MovieOutcome{
		Action: dialog.MovieUpdate,
		Movie:  movieFromFlags(id),
	})
}

func runMovieDelete(cmd *cobra.Command, args []string) error {
	id, err := parseMovieID(args[0])
	if err != nil {
		return err
	}

	return dispatch(cmd, dialog.MovieOutcome{
		Action: dialog.MovieDelete,
		Movie:  movieapi.Movie{ID: id},
	})
}

func runMovieList(cmd *cobra.Command, args []string) error {
	// Resolve the filter first so a bad expression costs no request
	f, err := filters.Resolve(filterExpr, preset)
	if err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}

	outcome := dialog.ListOutcome{All: true}
	if cmd.Flags().Changed("id") {
		outcome = dialog.ListOutcome{ID: listID}
	}

	result, err := dialog.NewDispatcher(client, logger).Dispatch(commandContext(cmd), outcome)
	if err != nil {
		return err
	}

	movies, err := filter.Apply(f, result.Movies)
	if err != nil {
		return err
	}

	if f != nil {
		logger.Info().
			Str("filter", f.Expression()).
			Int("matched", len(movies)).
			Int("total", len(result.Movies)).
			Msg("Applied filter")
	}

	printMovies(os.Stdout, movies)
	return nil
}

// printMovies renders movies as a table
func printMovies(w io.Writer, movies []movieapi.Movie) {
	if len(movies) == 0 {
		fmt.Fprintln(w, "No movies found.")
		return
	}

	movieText := "movies"
	if len(movies) == 1 {
		movieText = "movie"
	}
	fmt.Fprintf(w, "\nFound %s %s:\n\n", humanize.Comma(int64(len(movies))), movieText)

	fmt.Fprintln(w, strings.Repeat("━", 85))
	fmt.Fprintf(w, "%-6s %-40s %-6s %s\n", "ID", "TITLE", "YEAR", "DESCRIPTION")
	fmt.Fprintln(w, strings.Repeat("━", 85))

	for _, movie := range movies {
		year := "-"
		if movie.ReleaseYear > 0 {
			year = strconv.Itoa(movie.ReleaseYear)
		}
		fmt.Fprintf(w, "%-6d %-40s %-6s %s\n", movie.ID, truncate(movie.Title, 40), year, truncate(movie.Description, 30))
	}

	fmt.Fprintln(w, strings.Repeat("━", 85))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
