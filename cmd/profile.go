package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"dataset-reconciler/core/config"
	"dataset-reconciler/core/profile"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
)

// profileCmd is the parent command for comparison profiles.
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage comparison profiles",
	Long: `Profiles are YAML files naming a reusable comparison setup: alignment mode,
canonical column names, default keys and ignored columns. Built-in profiles are always
available; more are read from PROFILES_DIR.`,
}

// profileListCmd prints the available profiles.
var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(envDir)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		registry, err := profile.LoadDir(cfg.Profiles.Dir)
		if err != nil {
			return fmt.Errorf("failed to load profiles: %w", err)
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tALIGNMENT\tCOLUMNS\tKEYS\tSOURCE")
		for _, p := range registry.List() {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				p.Name, p.Alignment, joinOrDash(p.Columns), joinOrDash(p.Keys), p.Source)
		}
		return tw.Flush()
	},
}

// profileValidateCmd checks profile files without running a comparison.
var profileValidateCmd = &cobra.Command{
	Use:   "validate FILE...",
	Short: "Validate profile files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var errs *multierror.Error
		for _, path := range args {
			p, err := profile.LoadFile(path)
			if err != nil {
				errs = multierror.Append(errs, err)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%s)\n", path, p.Name)
		}
		return errs.ErrorOrNil()
	},
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ",")
}

func init() {
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileValidateCmd)
	RootCmd.AddCommand(profileCmd)
}
