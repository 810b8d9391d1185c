package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Norgate-AV/comdlg/internal/config"
	"github.com/Norgate-AV/comdlg/internal/logger"
	"github.com/Norgate-AV/comdlg/internal/version"
)

var (
	verbose    bool
	showLogs   bool
	elevate    bool
	configPath string
	logDir     string

	cfg *config.Config
	log logger.LoggerInterface = logger.NewNoOpLogger()
)

// errRelaunched stops the non-elevated instance once the elevated one is running
var errRelaunched = errors.New("relaunched as administrator")

// flagKeys binds command-line flags over config keys
var flagKeys = map[string]string{
	"log-dir":    "logger.dir",
	"click-mode": "viewer.click_mode",
	"hotspot-x":  "viewer.hotspot_offset_x",
	"hotspot-y":  "viewer.hotspot_offset_y",
}

var RootCmd = &cobra.Command{
	Use:               "comdlg",
	Short:             "comdlg - Drive Windows Open and Save As dialogs",
	Long:              "comdlg fills in and completes Windows common file dialogs raised by other applications,\nincluding the Save As dialog of an embedded document viewer's download button.",
	Version:           version.GetVersion(),
	Args:              cobra.NoArgs,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runRoot,
}

func init() {
	RootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&showLogs, "logs", "l", false, "print the log file and exit")
	RootCmd.PersistentFlags().BoolVar(&elevate, "elevate", false, "relaunch as administrator when not elevated")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./comdlg.yaml or %APPDATA%\\comdlg\\comdlg.yaml)")
	RootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "directory for comdlg.log (default %LOCALAPPDATA%\\comdlg)")

	RootCmd.AddCommand(openCmd, saveCmd, viewerCmd, treeCmd, windowsCmd)
}

// Execute runs the root command with a context cancelled by Ctrl+C and
// returns the process exit code
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := RootCmd.ExecuteContext(ctx)
	teardown()

	if err == nil || errors.Is(err, errRelaunched) {
		return 0
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	return 1
}

// setup loads configuration and opens the logger for every command
func setup(cmd *cobra.Command, _ []string) error {
	v := viper.New()
	config.SetDefaults(v)

	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	if err := config.Load(v, configPath); err != nil {
		return err
	}

	c, err := config.NewConfigFromViper(v)
	if err != nil {
		return err
	}

	opts := c.LoggerOptions(verbose)
	opts.Console = cmd.OutOrStdout()

	l, err := logger.NewLogger(opts)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg, log = c, l

	log.Debug("Configuration loaded",
		slog.String("command", cmd.CommandPath()),
		slog.String("config", v.ConfigFileUsed()),
		slog.String("log", l.GetLogPath()),
	)

	return nil
}

// teardown flushes and closes the logger opened by setup
func teardown() {
	log.Close()
	log = logger.NewNoOpLogger()
	cfg = nil
}

func runRoot(cmd *cobra.Command, _ []string) error {
	if showLogs {
		return logger.PrintLogFile(cmd.OutOrStdout(), cfg.LoggerOptions(verbose))
	}

	return cmd.Help()
}
