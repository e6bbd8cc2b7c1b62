package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/movieclient/config"
	"github.com/s0up4200/movieclient/dialog"
	"github.com/s0up4200/movieclient/filter"
	"github.com/s0up4200/movieclient/movieapi"
	"github.com/s0up4200/movieclient/session"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	store   session.Store
	client  *movieapi.Client
	filters *filter.Manager

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "movieclient",
	Short: "A session-aware client for the movie catalog server",
	Long: `movieclient talks to a movie catalog REST server. It keeps the server
address and your login in a local session document, so you log in once and
the token is reused until you log out or the server rejects it.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// SetVersion records build information reported by the version and update commands.
func SetVersion(v, built string) {
	version = v
	buildTime = built
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Debug().Err(err).Msg("Command failed")
		fmt.Fprintln(os.Stderr, "Error:", dialog.Describe(err))
		if dialog.IsTerminal(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./movieclient.yaml)")
}

// initializeConfig loads settings and sets up logging
func initializeConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)
	return nil
}

// initializeApp initializes the configuration, the session and the client
func initializeApp(cmd *cobra.Command, args []string) error {
	if err := initializeConfig(cmd, args); err != nil {
		return err
	}

	store = newStore(cfg.Session)
	warnExposure(store)

	var sessionCfg session.Config
	if cfg.Session.StrictLoad {
		var err error
		sessionCfg, err = session.LoadStrict(store)
		if err != nil {
			return fmt.Errorf("failed to load session from %s: %w", store.Location(), err)
		}
	} else {
		sessionCfg = session.LoadOrDefault(store, logger)
	}

	logger.Debug().
		Str("location", store.Location()).
		Stringer("state", sessionCfg.State()).
		Msg("Session loaded")

	client = movieapi.NewClient(store, sessionCfg, logger,
		movieapi.WithTimeout(cfg.API.Timeout),
		movieapi.WithUserAgent(cfg.API.UserAgent),
		movieapi.WithAuthScheme(cfg.API.AuthScheme),
	)

	filters = filter.NewManager()
	if err := filters.RegisterFilters(cfg.Filter.Presets); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}

	return nil
}

// newStore selects the session backend
func newStore(cfg config.SessionConfig) session.Store {
	if cfg.Backend == config.BackendKeyring {
		return session.NewKeyringStore(cfg.KeyringService, cfg.KeyringUser)
	}
	return session.NewFileStore(cfg.Path)
}

// warnExposure logs when the session file can be read by other users
func warnExposure(s session.Store) {
	fileStore, ok := s.(*session.FileStore)
	if !ok {
		return
	}

	warnings, err := fileStore.Exposure()
	if err != nil {
		logger.Debug().Err(err).Msg("Could not inspect session file")
	}
	for _, w := range warnings {
		logger.Warn().Str("location", fileStore.Location()).Msg("Session file exposed: " + w)
	}
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format, colored only when stderr is a terminal
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
