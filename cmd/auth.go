package cmd

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/s0up4200/movieclient/dialog"
	"github.com/s0up4200/movieclient/movieapi"
	"github.com/s0up4200/movieclient/session"
)

var registerRole string

// registerCmd represents the register command
var registerCmd = &cobra.Command{
	Use:   "register [username] [password]",
	Short: "Create an account on the server",
	Long: `Create an account on the movie server. Registering does not log you in.
Missing username or password are asked for interactively.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runRegister,
}

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login [username] [password]",
	Short: "Log in and store the session token",
	Long: `Log in to the movie server. The returned token is saved in the session
document and sent with every movie command until you log out.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runLogin,
}

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session and forget the token",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the server address and session state",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

// urlCmd represents the url command
var urlCmd = &cobra.Command{
	Use:   "url <base-url>",
	Short: "Set the movie server address",
	Args:  cobra.ExactArgs(1),
	RunE:  runURL,
}

func init() {
	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd, statusCmd, urlCmd)

	registerCmd.Flags().StringVar(&registerRole, "role", "user", "account role (user/admin)")
}

// credentialArgs completes username and password through prompter when they
// were not given on the command line
func credentialArgs(args []string, prompter *dialog.Prompter) (string, string, error) {
	switch len(args) {
	case 2:
		return args[0], args[1], nil
	case 1:
		password, err := prompter.Field("Password")
		if err != nil {
			return "", "", err
		}
		return args[0], password, nil
	}

	outcome, err := prompter.Form(dialog.ActionLogin)
	if err != nil {
		return "", "", err
	}
	creds := outcome.(dialog.LoginOutcome)
	return creds.Username, creds.Password, nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	role, err := movieapi.ParseRole(registerRole)
	if err != nil {
		return err
	}

	username, password, err := credentialArgs(args, dialog.NewPrompter(os.Stdin, os.Stdout))
	if err != nil {
		return err
	}

	return dispatch(cmd, dialog.RegisterOutcome{
		Username: username,
		Password: password,
		Role:     role,
	})
}

func runLogin(cmd *cobra.Command, args []string) error {
	username, password, err := credentialArgs(args, dialog.NewPrompter(os.Stdin, os.Stdout))
	if err != nil {
		return err
	}

	return dispatch(cmd, dialog.LoginOutcome{
		Username: username,
		Password: password,
	})
}

func runLogout(cmd *cobra.Command, args []string) error {
	return dispatch(cmd, dialog.LogoutOutcome{})
}

func runURL(cmd *cobra.Command, args []string) error {
	return dispatch(cmd, dialog.BaseURLOutcome{URL: args[0]})
}

func runStatus(cmd *cobra.Command, args []string) error {
	current := client.Session()

	baseURL := current.BaseURL
	if baseURL == "" {
		baseURL = "(not set)"
	}

	fmt.Printf("Server:   %s\n", baseURL)
	fmt.Printf("State:    %s\n", current.State())
	if current.Creds.Username != "" {
		fmt.Printf("User:     %s\n", current.Creds.Username)
	}
	fmt.Printf("Session:  %s", store.Location())

	if fileStore, ok := store.(*session.FileStore); ok {
		if info, err := os.Stat(fileStore.Path()); err == nil {
			fmt.Printf(" (saved %s, %s)", humanize.Time(info.ModTime()), humanize.Bytes(uint64(info.Size())))
		}
	}
	fmt.Println()

	timeout := cfg.API.Timeout
	if timeout <= 0 {
		timeout = movieapi.DefaultTimeout
	}
	fmt.Printf("Timeout:  %s\n", timeout)
	return nil
}
