package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"dataset-reconciler/core/config"
	"dataset-reconciler/core/logger"
	"dataset-reconciler/core/source"
	"dataset-reconciler/core/storage"

	"github.com/spf13/cobra"
)

var datasetsBucket string

// datasetsCmd lists comparable objects in object storage.
var datasetsCmd = &cobra.Command{
	Use:   "datasets [PREFIX]",
	Short: "List datasets in object storage",
	Long:  `Lists the CSV, XLSX and JSON objects under PREFIX that can be passed to compare as s3:// references.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(envDir)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		l, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer l.Sync()

		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
		resolver := source.NewResolver(source.Config{}, client, nil, 0, l)
		defer resolver.Close()

		bucket := datasetsBucket
		if bucket == "" {
			bucket = cfg.Storage.Bucket
		}
		prefix := ""
		if len(args) == 1 {
			prefix = args[0]
		}

		entries, err := resolver.List(context.Background(), bucket, prefix)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "REF\tSIZE\tMODIFIED")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%d\t%s\n", e.Ref, e.Size, e.LastModified.Format("2006-01-02 15:04:05"))
		}
		return tw.Flush()
	},
}

func init() {
	datasetsCmd.Flags().StringVar(&datasetsBucket, "bucket", "", "Bucket to list (default STORAGE_BUCKET)")
	RootCmd.AddCommand(datasetsCmd)
}
