package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/movieclient/dialog"
	"github.com/s0up4200/movieclient/movieapi"
)

// shellCmd represents the interactive shell
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Run an interactive menu",
	Long: `Start an interactive session. The menu offers login and registration while
no token is stored, and the movie actions once you are logged in.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	if isatty.IsTerminal(os.Stdin.Fd()) {
		fmt.Printf("movieclient %s. Choose quit or press Ctrl-D to leave.\n", version)
	}

	prompter := dialog.NewPrompter(os.Stdin, os.Stdout)
	return shellLoop(commandContext(cmd), prompter, client, os.Stdout, logger)
}

// shellLoop shows the menu for the current session state until the user
// quits or input ends. Errors are reported and the loop goes on, except for
// terminal ones, which are returned.
func shellLoop(ctx context.Context, prompter *dialog.Prompter, api movieapi.API, out io.Writer, logger zerolog.Logger) error {
	dispatcher := dialog.NewDispatcher(api, logger)

	for {
		action, err := prompter.Menu(api.State())
		if err != nil {
			return err
		}
		if action == dialog.ActionQuit {
			return nil
		}

		outcome, err := prompter.Form(action)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err == nil {
			var result dialog.Result
			result, err = dispatcher.Dispatch(ctx, outcome)
			if err == nil {
				if result.Listed {
					printMovies(out, result.Movies)
				}
				if result.Message != "" {
					fmt.Fprintln(out, "✓ "+result.Message)
				}
				continue
			}
		}

		if dialog.IsTerminal(err) {
			return err
		}
		fmt.Fprintln(out, "✗ "+dialog.Describe(err))
	}
}
