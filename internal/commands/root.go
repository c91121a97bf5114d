package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/studylog/internal/config"
	"github.com/balkashynov/studylog/internal/db"
	"github.com/balkashynov/studylog/internal/driver"
	"github.com/balkashynov/studylog/internal/logging"
	"github.com/balkashynov/studylog/internal/tracker"
	"github.com/balkashynov/studylog/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "studylog",
	Short: "Track study and game sessions",
	Long: `studylog records when you start and stop studying and gaming, and scores
each session as study hours minus twice the game hours.

History lives in memory only and is gone once you quit.

Examples:
  studylog                  # Interactive prompt
  studylog --no-ui          # Plain line-by-line prompt
  studylog --timezone UTC   # Record times in another zone`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTracker,
}

// runTracker builds the tracker and hands it to the chosen driver
func runTracker(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logFile, err := logging.OpenFile(cfg.LogPath)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := logging.New(logging.Options{Writer: logFile, Level: cfg.LogLevel})

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	history, closeHistory, err := openHistory(cfg.Store, loc)
	if err != nil {
		return err
	}
	defer closeHistory()

	t := tracker.New(tracker.Options{
		Location: loc,
		Clock:    time.Now,
		History:  history,
		Window:   cfg.HistoryWindow,
		Logger:   logger,
	})
	logger.Info("tracker started", "timezone", cfg.Timezone, "store", cfg.Store, "window", cfg.HistoryWindow)

	d := driver.NewDispatcher(t, logger)

	noUI, _ := cmd.Flags().GetBool("no-ui")
	if noUI {
		return driver.RunLoop(d, cmd.InOrStdin(), cmd.OutOrStdout())
	}
	return tui.Run(d, cmd.OutOrStdout())
}

// loadConfig resolves config and applies explicit flags on top
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	if cmd.Flags().Changed("timezone") {
		cfg.Timezone, _ = cmd.Flags().GetString("timezone")
	}
	if cmd.Flags().Changed("store") {
		cfg.Store, _ = cmd.Flags().GetString("store")
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("window") {
		cfg.HistoryWindow, _ = cmd.Flags().GetInt("window")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openHistory returns the history backend for store and a func releasing it
func openHistory(store string, loc *time.Location) (tracker.History, func(), error) {
	switch store {
	case config.StoreSQLite:
		conn, err := db.Open(db.MemoryDSN)
		if err != nil {
			return nil, nil, err
		}
		return db.NewHistoryStore(conn, loc), func() { _ = db.Close(conn) }, nil
	case config.StoreMemory:
		return tracker.NewMemoryHistory(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q", store)
	}
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().Bool("no-ui", false, "Use the plain line-by-line prompt")
	rootCmd.PersistentFlags().String("config", "", "Path to config.toml (default $XDG_CONFIG_HOME/studylog/config.toml)")
	rootCmd.Flags().String("timezone", config.DefaultTimezone, "IANA timezone used for every timestamp")
	rootCmd.Flags().String("store", config.DefaultStore, "History backend: memory or sqlite (in-memory, not persisted)")
	rootCmd.Flags().String("log-level", config.DefaultLogLevel, "Log level: debug, info, warn, error")
	rootCmd.Flags().Int("window", config.DefaultHistoryWindow, "How many recent sessions history lists")

	// Add subcommands here
	rootCmd.SetHelpCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
