package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"dataset-reconciler/core/config"
	"dataset-reconciler/core/logger"
	"dataset-reconciler/core/profile"
	"dataset-reconciler/core/reconcile"
	"dataset-reconciler/core/source"
	"dataset-reconciler/core/storage"
	"dataset-reconciler/core/utils"
	"dataset-reconciler/feature/compare"
	"dataset-reconciler/feature/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// errDifferences is returned with --fail-on-diff when the tables differ.
var errDifferences = errors.New("datasets differ")

var (
	// Flags for the compare command
	compareKeys       []string
	compareAlignment  string
	comparePositional bool
	compareColumns    []string
	compareIgnore     []string
	compareTrimSpace  bool
	compareProfile    string
	compareReport     string
	compareFormat     string
	compareShow       int
	compareFailOnDiff bool
)

// compareCmd compares two datasets and prints the summary.
var compareCmd = &cobra.Command{
	Use:   "compare OLD NEW",
	Short: "Compare two datasets by a composite key",
	Long: `Compare two versions of a dataset by a composite key.

OLD and NEW are file paths (.csv, .xlsx, .json), s3://bucket/object references or
db:table references. Every distinct key is reported as unchanged, changed, only in
old or only in new.

Examples:
  # Match columns by name, key on two columns
  compare old.csv new.csv -k part_no -k plant

  # Headers differ between exports: map the first columns positionally
  compare old.xlsx new.xlsx --positional --columns sku,name,qty -k sku

  # Use the built-in BOM profile and write a highlighted workbook
  compare old.xlsx new.xlsx --profile bom-fixed -k 机型 -k 型号 --report diff.xlsx

  # Compare a database table against an S3 export and upload the report
  compare db:bom_lines s3://datasets/bom/latest.csv -k id --report s3://reports/bom.xlsx`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringArrayVarP(&compareKeys, "key", "k", nil, "Key column; repeat for a composite key (a single value is split on commas)")
	compareCmd.Flags().StringVar(&compareAlignment, "alignment", "", "Column alignment: by_name or positional (default from PROFILES_DEFAULT_ALIGNMENT)")
	compareCmd.Flags().BoolVar(&comparePositional, "positional", false, "Shorthand for --alignment positional")
	compareCmd.Flags().StringArrayVar(&compareColumns, "columns", nil, "Canonical column names for positional alignment (comma list, or repeat the flag)")
	compareCmd.Flags().StringArrayVar(&compareIgnore, "ignore", nil, "Columns excluded from field comparison (comma list, or repeat the flag)")
	compareCmd.Flags().BoolVar(&compareTrimSpace, "trim-space", false, "Trim surrounding whitespace before comparing")
	compareCmd.Flags().StringVarP(&compareProfile, "profile", "p", "", "Profile name or YAML file")
	compareCmd.Flags().StringVarP(&compareReport, "report", "o", "", "Write a report to a file or s3:// location (.xlsx, .json, .txt)")
	compareCmd.Flags().StringVar(&compareFormat, "format", report.FormatText, "Output format on stdout: text or json")
	compareCmd.Flags().IntVar(&compareShow, "show", 20, "Differing records to preview (-1 for all)")
	compareCmd.Flags().BoolVar(&compareFailOnDiff, "fail-on-diff", false, "Exit with status 1 when the datasets differ")

	RootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(envDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	opts, err := compareOptions()
	if err != nil {
		return err
	}

	svc, closeFn, err := newCLICompareService(cfg, l, args[0], args[1], compareReport)
	if err != nil {
		return err
	}
	defer closeFn()

	out, err := svc.CompareSources(ctx, args[0], args[1], opts)
	if err != nil {
		return withSuggestion(err)
	}

	var stdout report.Writer = report.TextWriter{Limit: compareShow}
	if compareFormat != report.FormatText {
		if stdout, err = report.ForFormat(compareFormat); err != nil {
			return err
		}
		if _, ok := stdout.(*report.XLSXWriter); ok {
			return fmt.Errorf("xlsx output needs --report FILE")
		}
	}
	if err := stdout.Write(cmd.OutOrStdout(), out.Result, out.Meta); err != nil {
		return fmt.Errorf("failed to print result: %w", err)
	}

	if compareReport != "" {
		if err := writeReport(ctx, svc, compareReport, out); err != nil {
			return err
		}
		l.Info("Report written", zap.String("target", compareReport), zap.String("id", out.Meta.ID))
	}

	if compareFailOnDiff && out.Result.HasDifferences() {
		return errDifferences
	}
	return nil
}

// compareOptions turns the flags into compare options.
func compareOptions() (compare.Options, error) {
	alignment := compareAlignment
	if comparePositional {
		if alignment != "" && alignment != string(reconcile.AlignPositional) {
			return compare.Options{}, fmt.Errorf("--positional conflicts with --alignment %s", alignment)
		}
		alignment = string(reconcile.AlignPositional)
	}
	return compare.Options{
		Keys:      utils.FieldList(compareKeys),
		Alignment: alignment,
		Columns:   utils.FieldList(compareColumns),
		Ignore:    utils.FieldList(compareIgnore),
		TrimSpace: compareTrimSpace,
		Profile:   compareProfile,
	}, nil
}

// newCLICompareService wires a compare service for local use: files are allowed, profiles
// may be YAML paths and nothing is cached between runs.
func newCLICompareService(cfg *config.Config, l *zap.Logger, refs ...string) (*compare.Service, func(), error) {
	client, db, err := openBackends(cfg, l, refs...)
	if err != nil {
		return nil, nil, err
	}

	srcCfg := cfg.Source
	srcCfg.AllowLocal = true
	srcCfg.CacheTTLSeconds = 0
	resolver := source.NewResolver(srcCfg, client, db, cfg.Database.MaxRows, l)

	profiles, err := profile.LoadDir(cfg.Profiles.Dir)
	if err != nil {
		resolver.Close()
		return nil, nil, fmt.Errorf("failed to load profiles: %w", err)
	}

	svc := compare.NewService(resolver, profiles, compare.Config{
		DefaultAlignment:  cfg.DefaultAlignment(),
		Bucket:            cfg.Storage.Bucket,
		AllowProfileFiles: true,
	}, l)
	return svc, resolver.Close, nil
}

// writeReport renders the outcome in the format implied by target's extension and writes
// it to a local file or uploads it to an s3:// location.
func writeReport(ctx context.Context, svc *compare.Service, target string, out *compare.Outcome) error {
	w, err := report.WriterFor(target)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := w.Write(&buf, out.Result, out.Meta); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if storage.IsURI(target) {
		return svc.Publish(ctx, target, buf.Bytes(), w.ContentType())
	}
	if err := os.WriteFile(target, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// withSuggestion appends the hint carried by engine errors.
func withSuggestion(err error) error {
	var s interface{ Suggestion() string }
	if errors.As(err, &s) {
		return fmt.Errorf("%w (hint: %s)", err, s.Suggestion())
	}
	return err
}
