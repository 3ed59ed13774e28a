package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/slidemerge/internal/core/domain"
)

var (
	cleanMerged  bool
	deployNoWait bool
)

var buildCmd = &cobra.Command{
	Use:   "build [path]",
	Short: "Render decks and variants with marp and pandoc",
	Long: `Renders a deck, or every deck under a folder.

Source decks are rendered with marp to PDF, HTML and PPTX.
document_ variants are rendered with pandoc to PDF and DOCX,
slide_ variants to PPTX. site_ variants are left to MkDocs.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

var cleanCmd = &cobra.Command{
	Use:   "clean [path]",
	Short: "Remove rendered artifacts",
	Long: `Removes the PDF, HTML, DOCX and PPTX files rendered from each deck.
Use --merged to remove the site_, document_ and slide_ variants as well.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClean,
}

var deployCmd = &cobra.Command{
	Use:   "deploy [folder]",
	Short: "Publish the MkDocs site to GitHub Pages",
	Long:  `Runs "mkdocs gh-deploy --force" in the folder.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDeploy,
}

var drawioCmd = &cobra.Command{
	Use:   "drawio [folder]",
	Short: "Export draw.io diagrams to SVG, PNG and JPEG",
	Long: `Exports every page of every .drawio file under the folder into an
assets directory next to the diagram, named <diagram>-<page>.<ext>.

The drawio executable is taken from the tools.drawio setting or the
DRAWIO_PATH environment variable.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDrawio,
}

var watchCmd = &cobra.Command{
	Use:   "watch [folder]",
	Short: "Re-merge decks when they change",
	Long:  `Watches the folder tree and merges every deck that is created or saved. Stop with Ctrl+C.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatch,
}

func init() {
	cleanCmd.Flags().BoolVar(&cleanMerged, "merged", false, "also remove merged variants")
	deployCmd.Flags().BoolVar(&deployNoWait, "no-wait", false, "return without waiting for mkdocs")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(deployCmd)
	rootCmd.AddCommand(drawioCmd)
	rootCmd.AddCommand(watchCmd)
}

// pathArg returns the first argument or the working directory.
func pathArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

func runBuild(cmd *cobra.Command, args []string) error {
	return runBuildPath(cmd, newStyles(cmd.OutOrStdout()), pathArg(args))
}

func runBuildPath(cmd *cobra.Command, st *styles, path string) error {
	if buildService == nil {
		return errNotConfigured("build")
	}

	launched, err := buildService.Build(cmd.Context(), path)
	for _, c := range launched {
		cmd.Printf("%s %s\n", st.Muted.Render("ran"), c)
	}
	if err != nil {
		return err
	}
	cmd.Printf("%s %d commands\n", st.Success.Render("built"), len(launched))
	return nil
}

func runClean(cmd *cobra.Command, args []string) error {
	if cleanService == nil {
		return errNotConfigured("clean")
	}

	result, err := cleanService.Clean(cmd.Context(), pathArg(args), cleanMerged)
	if err != nil {
		return err
	}

	st := newStyles(cmd.OutOrStdout())
	for _, path := range result.Removed {
		cmd.Printf("%s %s\n", st.Muted.Render("removed"), path)
	}
	for _, f := range result.Failures {
		cmd.Printf("%s %v\n", st.Error.Render("failed"), f.Err)
	}
	if !result.OK() {
		return fmt.Errorf("%w: %d files could not be removed", domain.ErrOutputUnwritable, len(result.Failures))
	}
	cmd.Printf("%s %d files removed\n", st.Success.Render("cleaned"), len(result.Removed))
	return nil
}

func runDeploy(cmd *cobra.Command, args []string) error {
	if deployService == nil {
		return errNotConfigured("deploy")
	}

	out, err := deployService.Deploy(cmd.Context(), pathArg(args), !deployNoWait)
	if out != "" {
		cmd.Print(out)
	}
	if err != nil {
		return err
	}
	if deployNoWait {
		cmd.Println("Deployment started.")
	} else {
		cmd.Println("Deployment finished.")
	}
	return nil
}

func runDrawio(cmd *cobra.Command, args []string) error {
	if diagramService == nil {
		return errNotConfigured("diagram")
	}

	written, err := diagramService.Export(cmd.Context(), pathArg(args))
	st := newStyles(cmd.OutOrStdout())
	for _, path := range written {
		cmd.Printf("%s %s\n", st.Muted.Render("exported"), path)
	}
	if err != nil {
		return err
	}
	cmd.Printf("%s %d images\n", st.Success.Render("exported"), len(written))
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchService == nil {
		return errNotConfigured("watch")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	folder := pathArg(args)
	st := newStyles(cmd.OutOrStdout())
	cmd.Printf("Watching %s for changes. Press Ctrl+C to stop.\n", folder)

	return watchService.Watch(ctx, folder, func(result *domain.MergeResult, err error) {
		if err != nil {
			cmd.Printf("%s %v\n", st.Error.Render("failed"), err)
			return
		}
		printMergeResult(cmd, st, result)
	})
}
