package cmd

import (
	"fmt"
	"runtime"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

var checkOnly bool

// updateCmd represents the self-update command
var updateCmd = &cobra.Command{
	Use:               "update",
	Short:             "Update movieclient to the latest release",
	Args:              cobra.NoArgs,
	PersistentPreRunE: initializeConfig,
	RunE:              runUpdate,
}

// versionCmd prints build information
var versionCmd = &cobra.Command{
	Use:               "version",
	Short:             "Print version information",
	Args:              cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("movieclient %s\n", version)
		fmt.Printf("Built:  %s\n", buildTime)
		fmt.Printf("Go:     %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(updateCmd, versionCmd)

	updateCmd.Flags().BoolVar(&checkOnly, "check", false, "only check whether a newer release exists")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	current, err := semver.ParseTolerant(version)
	if err != nil {
		return fmt.Errorf("cannot update a development build (version %q)", version)
	}

	logger.Debug().Str("repository", cfg.Update.Repository).Msg("Checking for updates")

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(cfg.Update.Repository))
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s/%s in %s", runtime.GOOS, runtime.GOARCH, cfg.Update.Repository)
	}

	latestVersion, err := semver.ParseTolerant(latest.Version())
	if err != nil {
		return fmt.Errorf("invalid release version %q: %w", latest.Version(), err)
	}

	if latestVersion.LTE(current) {
		fmt.Printf("✓ movieclient %s is up to date\n", current)
		return nil
	}

	if checkOnly {
		fmt.Printf("A new release is available: %s (current %s)\n", latestVersion, current)
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("could not locate executable path: %w", err)
	}

	fmt.Printf("→ Updating %s to %s... ", current, latestVersion)
	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		fmt.Println("✗ Failed")
		return fmt.Errorf("failed to update binary: %w", err)
	}
	fmt.Println("✓ Done")

	logger.Info().Str("version", latestVersion.String()).Msg("Updated movieclient")
	return nil
}
