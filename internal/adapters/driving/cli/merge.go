package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/slidemerge/internal/core/domain"
)

var (
	mergeFile    string
	mergeOutput  string
	mergeFolder  string
	mergeBuild   bool
	mergeRebuild bool
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge slide decks into their variants",
	Long: `Merges a single deck (--file) or every deck under a folder (--folder)
into site_, document_ and slide_ variants next to the input.

Generated variants and index, license and tags pages are skipped.
Use --build to render the results afterwards, or --rebuild to remove
old artifacts first.`,
	Args: cobra.NoArgs,
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().StringVarP(&mergeFile, "file", "f", "", "deck to merge")
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "", "site variant path (with --file)")
	mergeCmd.Flags().StringVarP(&mergeFolder, "folder", "d", "", "folder to merge recursively")
	mergeCmd.Flags().BoolVar(&mergeBuild, "build", false, "render the merged decks")
	mergeCmd.Flags().BoolVar(&mergeRebuild, "rebuild", false, "clean, merge and render")
	mergeCmd.MarkFlagsMutuallyExclusive("file", "folder")
	mergeCmd.MarkFlagsOneRequired("file", "folder")
	mergeCmd.MarkFlagsMutuallyExclusive("build", "rebuild")
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, _ []string) error {
	if mergeService == nil {
		return errNotConfigured("merge")
	}
	if mergeOutput != "" && mergeFile == "" {
		return fmt.Errorf("%w: --output requires --file", domain.ErrInvalidInput)
	}

	ctx := cmd.Context()
	target := mergeFile
	if target == "" {
		target = mergeFolder
	}

	if mergeRebuild {
		if cleanService == nil {
			return errNotConfigured("clean")
		}
		if _, err := cleanService.Clean(ctx, target, false); err != nil {
			return err
		}
	}

	st := newStyles(cmd.OutOrStdout())
	if mergeFile != "" {
		result, err := mergeService.MergeFile(ctx, mergeFile, mergeOutput)
		if err != nil {
			return err
		}
		printMergeResult(cmd, st, result)
	} else {
		batch, err := mergeService.MergeFolder(ctx, mergeFolder)
		if err != nil {
			return err
		}
		if err := printBatch(cmd, st, batch); err != nil {
			return err
		}
	}

	if mergeBuild || mergeRebuild {
		return runBuildPath(cmd, st, target)
	}
	return nil
}

func printMergeResult(cmd *cobra.Command, st *styles, result *domain.MergeResult) {
	if result.Skipped {
		cmd.Printf("%s %s\n", st.Muted.Render("skipped"), result.Input)
		return
	}

	cmd.Printf("%s %s (%d lines excluded, %d passes)\n",
		st.Success.Render("merged"), result.Input, len(result.Excluded), result.Passes)
	for _, v := range domain.Variants() {
		if path, ok := result.Outputs[v]; ok {
			cmd.Printf("  %-9s %s\n", v, path)
		}
	}
	for _, w := range result.Warnings {
		cmd.Printf("  %s %v\n", st.Warning.Render("warning"), w)
	}
}

func printBatch(cmd *cobra.Command, st *styles, batch *domain.BatchResult) error {
	for _, result := range batch.Results {
		printMergeResult(cmd, st, result)
	}
	for _, f := range batch.Failures {
		cmd.Printf("%s %v\n", st.Error.Render("failed"), f.Err)
	}

	cmd.Println()
	cmd.Printf("%s %d merged, %d skipped, %d failed\n",
		st.Title.Render("Summary:"), batch.Merged(), batch.Skipped(), len(batch.Failures))

	if !batch.OK() {
		return fmt.Errorf("%d of %d files failed in %s", len(batch.Failures),
			len(batch.Failures)+len(batch.Results), batch.Folder)
	}
	return nil
}
