package cmd

import (
	"fmt"
	"os"

	"dataset-reconciler/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// envDir is the directory holding the optional .env file.
var envDir string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "dataset-reconciler",
	Short: "Dataset Reconciler",
	Long: `Dataset Reconciler compares two versions of a table by a composite key and reports
which rows were added, removed or changed, field by field.
Tables can be CSV, XLSX or JSON files, S3 objects or database tables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding at debug level gives readable ISO8601 timestamps for CLI users.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&envDir, "env-dir", ".", "Directory containing the .env file")
}
