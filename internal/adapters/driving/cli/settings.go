package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change variant prefixes, merge tuning and external tool paths.

Settings are stored in config.toml in the configuration directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a single setting by key.

Keys:
  prefix.site, prefix.document, prefix.slide
  merge.threshold, merge.max_passes
  tools.marp, tools.pandoc, tools.mkdocs, tools.drawio, tools.reference_doc
  launch.rate, launch.burst
  history.enabled`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Prefixes]")
	cmd.Printf("  Site:     %s\n", settings.Prefixes.Site)
	cmd.Printf("  Document: %s\n", settings.Prefixes.Document)
	cmd.Printf("  Slide:    %s\n", settings.Prefixes.Slide)
	cmd.Println()

	cmd.Println("[Merge]")
	cmd.Printf("  Threshold:  %g\n", settings.Merge.Threshold)
	if settings.Merge.MaxPasses > 0 {
		cmd.Printf("  Max passes: %d\n", settings.Merge.MaxPasses)
	} else {
		cmd.Println("  Max passes: (line count + 1)")
	}
	cmd.Println()

	cmd.Println("[Tools]")
	cmd.Printf("  Marp:   %s\n", settings.Tools.Marp)
	cmd.Printf("  Pandoc: %s\n", settings.Tools.Pandoc)
	cmd.Printf("  MkDocs: %s\n", settings.Tools.MkDocs)
	cmd.Printf("  Drawio: %s\n", settings.Tools.Drawio)
	if settings.Tools.ReferenceDoc != "" {
		cmd.Printf("  Reference doc: %s\n", settings.Tools.ReferenceDoc)
	} else {
		cmd.Println("  Reference doc: (pandoc default)")
	}
	cmd.Println()

	cmd.Println("[Launch]")
	if settings.Launch.Rate > 0 {
		cmd.Printf("  Rate:  %g per second (burst %d)\n", settings.Launch.Rate, settings.Launch.Burst)
	} else {
		cmd.Println("  Rate:  unlimited")
	}
	cmd.Println()

	cmd.Println("[History]")
	status := "enabled"
	if !settings.History.Enabled {
		status = "disabled"
	}
	cmd.Printf("  Recording: %s\n", status)

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return err
	}
	cmd.Printf("%s = %s\n", key, value)
	return nil
}
