package services

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/slidemerge/internal/core/domain"
	"github.com/custodia-labs/slidemerge/internal/core/ports/driving"
	"github.com/custodia-labs/slidemerge/internal/logger"
)

// Ensure CleanService implements the interface.
var _ driving.CleanService = (*CleanService)(nil)

// artifact is a rendered file derived from a Markdown file.
type artifact struct {
	suffix string
	ext    string
}

// renderedArtifacts lists every file the build service can produce.
var renderedArtifacts = []artifact{
	{suffixDoc, "pdf"},
	{suffixWord, "docx"},
	{suffixSlide, "pdf"},
	{suffixSlide, "html"},
	{suffixSlide, "pptx"},
	{suffixWord, "pptx"},
}

// CleanService removes rendered artifacts and, optionally, merged variants.
type CleanService struct {
	prefixes domain.PrefixSettings
}

// NewCleanService creates a clean service.
func NewCleanService(settings domain.Settings) *CleanService {
	return &CleanService{prefixes: settings.Prefixes}
}

// Clean removes the artifacts of path, or of every Markdown file under it.
// Missing artifacts are not failures.
func (s *CleanService) Clean(ctx context.Context, path string, merged bool) (*domain.CleanResult, error) {
	result := &domain.CleanResult{}

	err := walkMarkdown(path, func(file string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, target := range s.Targets(file, merged) {
			s.remove(result, target)
		}
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("clean %s: %w", path, err)
	}
	return result, nil
}

// Targets returns the files Clean removes for one Markdown file.
func (s *CleanService) Targets(file string, merged bool) []string {
	targets := make([]string, 0, len(renderedArtifacts)+3)
	for _, a := range renderedArtifacts {
		targets = append(targets, DerivePath(file, "", a.suffix, a.ext))
	}
	if merged && variantOf(file, s.prefixes) == "" {
		for _, v := range domain.Variants() {
			targets = append(targets, DerivePath(file, s.prefixes.For(v), "", ""))
		}
	}
	return targets
}

func (s *CleanService) remove(result *domain.CleanResult, path string) {
	err := os.Remove(path)
	switch {
	case err == nil:
		logger.Info("clean: removed %s", path)
		result.Removed = append(result.Removed, path)
	case os.IsNotExist(err):
	default:
		logger.Error("clean: %v", err)
		result.Failures = append(result.Failures, domain.FileFailure{
			Path: path,
			Err:  domain.NewStageError(path, domain.StageClean, fmt.Errorf("%w: %w", domain.ErrOutputUnwritable, err)),
		})
	}
}
