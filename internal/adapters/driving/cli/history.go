package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/slidemerge/internal/core/domain"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded merges",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Show a recorded merge",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every recorded merge",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of runs")
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errNotConfigured("history")
	}

	runs, err := historyService.List(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		cmd.Println("No merges recorded.")
		return nil
	}

	st := newStyles(cmd.OutOrStdout())
	for i := range runs {
		status := st.Success.Render("ok     ")
		switch {
		case !runs[i].Succeeded():
			status = st.Error.Render("failed ")
		case runs[i].Skipped:
			status = st.Muted.Render("skipped")
		}
		cmd.Printf("%s  %s  %s  %s\n",
			runs[i].StartedAt.Format("2006-01-02 15:04:05"), status, st.Muted.Render(shortID(runs[i].ID)), runs[i].Input)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errNotConfigured("history")
	}

	run, err := historyService.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	cmd.Printf("Run: %s\n\n", run.ID)
	cmd.Printf("  Input:    %s\n", run.Input)
	cmd.Printf("  Started:  %s\n", run.StartedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("  Duration: %s\n", run.Duration)
	cmd.Printf("  Excluded: %d lines in %d passes\n", run.Excluded, run.Passes)
	if run.Skipped {
		cmd.Println("  Skipped:  yes")
	}
	for _, v := range domain.Variants() {
		if path, ok := run.Outputs[v]; ok {
			cmd.Printf("  %-9s %s\n", v+":", path)
		}
	}
	if run.Error != "" {
		cmd.Printf("  Error:    %s\n", run.Error)
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errNotConfigured("history")
	}
	if err := historyService.Clear(cmd.Context()); err != nil {
		return err
	}
	cmd.Println("History cleared.")
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
