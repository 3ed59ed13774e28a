// Package cli provides the slidemerge command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/slidemerge/internal/core/domain"
	"github.com/custodia-labs/slidemerge/internal/core/ports/driving"
	"github.com/custodia-labs/slidemerge/internal/logger"
)

// version is set at build time with -ldflags "-X .../cli.version=...".
var version = "dev"

// Services holds the driving ports the commands call.
type Services struct {
	Merge    driving.MergeService
	Inspect  driving.InspectService
	Build    driving.BuildService
	Clean    driving.CleanService
	Deploy   driving.DeployService
	Diagram  driving.DiagramService
	Watch    driving.WatchService
	History  driving.HistoryService
	Settings driving.SettingsService
}

// Options are the global flags a Factory receives.
type Options struct {
	ConfigDir string
	NoHistory bool
	Verbose   bool
}

// Factory builds the services once global flags are parsed.
// The returned close function releases storage.
type Factory func(opts Options) (*Services, func() error, error)

var (
	mergeService    driving.MergeService
	inspectService  driving.InspectService
	buildService    driving.BuildService
	cleanService    driving.CleanService
	deployService   driving.DeployService
	diagramService  driving.DiagramService
	watchService    driving.WatchService
	historyService  driving.HistoryService
	settingsService driving.SettingsService
)

var (
	options      Options
	factory      Factory
	closeStorage func() error
)

var rootCmd = &cobra.Command{
	Use:   "slidemerge",
	Short: "Merge Marp slide decks into site, document and slide variants",
	Long: `slidemerge turns Marp slide-deck Markdown into three variants:
a site page for MkDocs, a document for Pandoc and a cleaned slide deck.

Repeated slide headers, surplus page separators and slide-only directives
are removed from the site and document variants. Image links are rewritten
to Pandoc attribute syntax in every variant.`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&options.Verbose, "verbose", "v", false, "print progress and debug output")
	rootCmd.PersistentFlags().StringVar(&options.ConfigDir, "config-dir", "", "configuration directory (default ~/.slidemerge)")
	rootCmd.PersistentFlags().BoolVar(&options.NoHistory, "no-history", false, "do not record merges in the history database")
}

// SetServices injects the driving ports used by the commands.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	mergeService = s.Merge
	inspectService = s.Inspect
	buildService = s.Build
	cleanService = s.Clean
	deployService = s.Deploy
	diagramService = s.Diagram
	watchService = s.Watch
	historyService = s.History
	settingsService = s.Settings
}

// Execute runs the root command with ctx. f is called after flag parsing to build the services.
func Execute(ctx context.Context, f Factory) error {
	factory = f
	return rootCmd.ExecuteContext(ctx)
}

func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(options.Verbose)
	if factory == nil {
		return nil
	}

	services, closeFn, err := factory(options)
	if err != nil {
		return err
	}
	SetServices(services)
	closeStorage = closeFn
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if closeStorage == nil {
		return nil
	}
	err := closeStorage()
	closeStorage = nil
	return err
}

// errNotConfigured builds the error returned when a command's service is missing.
func errNotConfigured(name string) error {
	return errors.New(name + " service not configured")
}

// PrintError reports err on w and returns the process exit status.
func PrintError(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	st := newStyles(w)
	fmt.Fprintf(w, "%s %v\n", st.Error.Render("Error:"), err)

	var toolErr *domain.ToolError
	if errors.As(err, &toolErr) && toolErr.ExitCode < 0 {
		fmt.Fprintf(w, "Is %s installed? Set its path with: slidemerge settings set tools.<name> <path>\n", toolErr.Command)
	}
	return 1
}
