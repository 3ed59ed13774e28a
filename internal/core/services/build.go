package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/slidemerge/internal/core/domain"
	"github.com/custodia-labs/slidemerge/internal/core/ports/driven"
	"github.com/custodia-labs/slidemerge/internal/core/ports/driving"
	"github.com/custodia-labs/slidemerge/internal/logger"
)

// Ensure BuildService implements the interface.
var _ driving.BuildService = (*BuildService)(nil)

// Rendered artifact suffixes.
const (
	suffixDoc   = "_doc"
	suffixWord  = "_word"
	suffixSlide = "_slide"
)

// BuildService renders decks and their variants with marp and pandoc.
type BuildService struct {
	runner   driven.CommandRunner
	tools    domain.ToolSettings
	prefixes domain.PrefixSettings
	limiter  *rate.Limiter
}

// NewBuildService creates a build service.
func NewBuildService(runner driven.CommandRunner, settings domain.Settings) *BuildService {
	return &BuildService{
		runner:   runner,
		tools:    settings.Tools,
		prefixes: settings.Prefixes,
		limiter:  newLaunchLimiter(settings.Launch),
	}
}

// newLaunchLimiter throttles external process launches. A non-positive rate disables throttling.
func newLaunchLimiter(l domain.LaunchSettings) *rate.Limiter {
	if l.Rate <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := l.Burst
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(l.Rate), burst)
}

// Build renders path, or every Markdown file under it.
// Every file is attempted; failures are joined in the returned error.
func (s *BuildService) Build(ctx context.Context, path string) ([]domain.Command, error) {
	var (
		launched []domain.Command
		errs     []error
	)

	err := walkMarkdown(path, func(file string) error {
		if IsIgnoredPage(file) {
			return nil
		}
		abs, err := filepath.Abs(file)
		if err != nil {
			abs = file
		}

		for _, cmd := range s.Commands(abs) {
			if err := s.limiter.Wait(ctx); err != nil {
				return err
			}
			logger.Info("build: %s", cmd)
			if _, err := s.runner.Run(ctx, cmd); err != nil {
				errs = append(errs, domain.NewStageError(file, domain.StageBuild, err))
				break
			}
			launched = append(launched, cmd)
		}
		return nil
	})
	if err != nil {
		return launched, fmt.Errorf("build %s: %w", path, err)
	}
	return launched, errors.Join(errs...)
}

// Commands returns the render commands for one file, chosen by its variant.
// Site variants are built by the site generator and yield no commands.
func (s *BuildService) Commands(file string) []domain.Command {
	dir := filepath.Dir(file)
	out := func(suffix, ext string) string {
		return DerivePath(file, "", suffix, ext)
	}

	switch variantOf(file, s.prefixes) {
	case "":
		return []domain.Command{
			{Args: []string{s.tools.Marp, file, "--html", "--pdf", "-o", out(suffixSlide, "pdf"), "--allow-local-files"}, Dir: dir},
			{Args: []string{s.tools.Marp, file, "--html", "-o", out(suffixSlide, "html"), "--allow-local-files"}, Dir: dir},
			{Args: []string{s.tools.Marp, file, "--pptx", "-o", out(suffixSlide, "pptx"), "--allow-local-files"}, Dir: dir, Wait: true},
		}
	case domain.VariantSlide:
		args := []string{s.tools.Pandoc}
		if s.tools.ReferenceDoc != "" {
			args = append(args, "--reference-doc="+s.tools.ReferenceDoc)
		}
		args = append(args, "-o", out(suffixWord, "pptx"), "-f", "markdown", "-t", "pptx", file)
		return []domain.Command{{Args: args, Dir: dir, Wait: true}}
	case domain.VariantDocument:
		return []domain.Command{
			{Args: []string{
				s.tools.Pandoc, file, "--pdf-engine=xelatex", "-f", "markdown-implicit_figures",
				"-V", "colorlinks", "-V", "urlcolor=NavyBlue", "-V", "toccolor=Red",
				"--toc", "-N", "-o", out(suffixDoc, "pdf"),
			}, Dir: dir},
			{Args: []string{s.tools.Pandoc, "-o", out(suffixWord, "docx"), "-f", "markdown", "-t", "docx", file}, Dir: dir, Wait: true},
		}
	default:
		return nil
	}
}
