package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/slidemerge/internal/core/domain"
	"github.com/custodia-labs/slidemerge/internal/outline"
)

var inspectJSON bool

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Show what a merge would do",
	Long: `Classifies and deduplicates a deck in memory and reports line counts,
excluded lines, detector passes, the prologue and the heading outline
of the site variant. No files are written.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

var navCmd = &cobra.Command{
	Use:   "nav [folder]",
	Short: "Print an MkDocs nav section for merged site pages",
	Long: `Lists every site_ page under the folder as an MkDocs nav entry,
titled by its prologue title or first heading.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNav,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "output the report as JSON")
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(navCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	if inspectService == nil {
		return errNotConfigured("inspect")
	}

	report, err := inspectService.Inspect(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if inspectJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	outputInspection(cmd, newStyles(cmd.OutOrStdout()), report)
	return nil
}

func outputInspection(cmd *cobra.Command, st *styles, report *domain.Inspection) {
	cmd.Println(st.Title.Render("Deck: " + report.Path))
	if report.Ignored {
		cmd.Println(st.Muted.Render("  (ignored page: merge skips this file)"))
	}
	cmd.Println()

	cmd.Printf("  Lines:   %d\n", report.Lines)
	kinds := make([]domain.LineKind, 0, len(report.Counts))
	for k := range report.Counts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	for _, k := range kinds {
		cmd.Printf("    %-10s %d\n", k, report.Counts[k])
	}
	cmd.Printf("  Passes:  %d\n", report.Passes)
	if report.Prologue != nil && report.Prologue.Title != "" {
		cmd.Printf("  Title:   %s\n", report.Prologue.Title)
	}

	if len(report.Excluded) > 0 {
		cmd.Println()
		cmd.Printf("Excluded lines (%d):\n", len(report.Excluded))
		for _, ex := range report.Excluded {
			cmd.Printf("  %4d  %-9s %s\n", ex.Index+1, ex.Kind, st.Muted.Render(ex.Text))
		}
	}

	if len(report.Outline) > 0 {
		cmd.Println()
		cmd.Println("Outline:")
		cmd.Print(outline.Render(report.Outline))
	}

	for _, w := range report.Warnings {
		cmd.Printf("%s %s\n", st.Warning.Render("warning"), w)
	}
}

func runNav(cmd *cobra.Command, args []string) error {
	if inspectService == nil {
		return errNotConfigured("inspect")
	}

	entries, err := inspectService.Nav(cmd.Context(), pathArg(args))
	if err != nil {
		return err
	}

	data, err := marshalNav(entries)
	if err != nil {
		return err
	}
	cmd.Print(string(data))
	return nil
}

// marshalNav renders entries as an MkDocs nav section.
func marshalNav(entries []domain.NavEntry) ([]byte, error) {
	nav := make([]map[string]string, 0, len(entries))
	for _, e := range entries {
		nav = append(nav, map[string]string{e.Title: e.Path})
	}
	data, err := yaml.Marshal(map[string]any{"nav": nav})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal nav: %w", err)
	}
	return data, nil
}
