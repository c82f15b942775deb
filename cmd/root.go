package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/time-checker/internal/apperr"
	"github.com/Tiliavir/time-checker/internal/config"
	"github.com/Tiliavir/time-checker/internal/logging"
	"github.com/Tiliavir/time-checker/internal/storage"
	"github.com/Tiliavir/time-checker/internal/tracker"
)

var (
	configPath   string
	dataFilePath string
	verbose      bool
)

// Set up by loadApp before any subcommand runs.
var (
	appConfig  *config.Config
	appStore   *storage.Store
	appTracker *tracker.Tracker
)

var rootCmd = &cobra.Command{
	Use:   "time-checker",
	Short: "time-checker – a minimal work-time tracker",
	Long: `time-checker records when you start and stop working on a task and
reports how long you spent on each task today.
All data is stored in a single JSON file, ~/.time-checker/data.json by default.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadApp,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode extends apperr.ExitCode: configuration failures share the
// storage status 2.
func exitCode(err error) int {
	if errors.Is(err, config.ErrConfig) {
		return 2
	}
	return apperr.ExitCode(err)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default ~/.time-checker/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataFilePath, "data-file", "", "Path to the data file, overrides the config")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(configCmd)
}

func loadApp(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dataFilePath != "" {
		cfg.DataFile = dataFilePath
	}

	logger := logging.New(cmd.ErrOrStderr(), cfg.Log, verbose)
	logger.Debug("configuration loaded", "data_file", cfg.DataFile)

	appConfig = cfg
	appStore = storage.New(cfg.DataFile, storage.WithLogger(logger))
	appTracker = tracker.New(appStore, tracker.WithLogger(logger))
	return nil
}
