// Command ocreval measures the character accuracy of OCR output.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ughe/ocreval/config"
)

type app struct {
	configPath string
	logLevel   string
	settings   config.Settings
	log        *log.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:           "ocreval",
		Short:         "Character accuracy of OCR output",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultConfigPath(), "config file")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "debug, info, warn or error")

	rootCmd.AddCommand(newAccuracyCmd(a))
	rootCmd.AddCommand(newAccsumCmd(a))
	rootCmd.AddCommand(newAccciCmd(a))
	rootCmd.AddCommand(newAccdistCmd(a))
	rootCmd.AddCommand(newGroupaccCmd(a))
	rootCmd.AddCommand(newBatchCmd(a))
	rootCmd.AddCommand(newEditdistCmd(a))
	rootCmd.AddCommand(newHistoryCmd(a))
	rootCmd.AddCommand(newExploreCmd(a))
	rootCmd.AddCommand(newServeCmd(a))
	return rootCmd
}

// setup loads the config file and builds the logger. Logs go to stderr so
// that reports on stdout stay exact.
func (a *app) setup(cmd *cobra.Command) error {
	s, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("log-level") {
		s.LogLevel = a.logLevel
	}
	level, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		return err
	}
	a.settings = s
	a.log = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	return nil
}
