package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/slidemerge/internal/core/domain"
	"github.com/custodia-labs/slidemerge/internal/core/ports/driven"
	"github.com/custodia-labs/slidemerge/internal/core/ports/driving"
	"github.com/custodia-labs/slidemerge/internal/logger"
	"github.com/custodia-labs/slidemerge/internal/merger"
)

// Ensure MergeService implements the interface.
var _ driving.MergeService = (*MergeService)(nil)

// MergeService reads decks, runs the merge engine and writes the three variants.
type MergeService struct {
	engine   *merger.Engine
	prefixes domain.PrefixSettings
	runs     driven.RunStore
	eol      string
	now      func() time.Time
}

// NewMergeService creates a merge service.
// runs may be nil, in which case merges are not recorded.
func NewMergeService(settings domain.Settings, runs driven.RunStore) *MergeService {
	return &MergeService{
		engine:   merger.New(settings.Merge),
		prefixes: settings.Prefixes,
		runs:     runs,
		eol:      merger.LineTerminator(),
		now:      time.Now,
	}
}

// IsSource reports whether path is a deck to merge.
func (s *MergeService) IsSource(path string) bool {
	return isMarkdown(path) && variantOf(path, s.prefixes) == "" && !IsIgnoredPage(path)
}

// OutputPath returns the derived output path of a variant.
func (s *MergeService) OutputPath(input string, v domain.Variant) string {
	return DerivePath(input, s.prefixes.For(v), "", "")
}

// MergeFile merges a single file.
func (s *MergeService) MergeFile(ctx context.Context, input, output string) (*domain.MergeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := s.now()
	result, err := s.mergeFile(input, output)
	if result != nil {
		result.Duration = s.now().Sub(start)
	}
	s.record(ctx, input, start, result, err)
	return result, err
}

func (s *MergeService) mergeFile(input, output string) (*domain.MergeResult, error) {
	if IsIgnoredPage(input) {
		logger.Debug("merge: skipping ignored page %s", input)
		return &domain.MergeResult{Input: input, Skipped: true}, nil
	}

	info, err := os.Stat(input)
	if err != nil {
		return nil, inputError(input, err)
	}
	if info.IsDir() {
		return nil, domain.NewStageError(input, domain.StageRead,
			fmt.Errorf("%w: is a directory", domain.ErrInputUnreadable))
	}

	content, err := os.ReadFile(input)
	if err != nil {
		return nil, inputError(input, err)
	}

	logger.Section("Merge " + input)
	out := s.engine.Merge(input, merger.SplitLines(string(content)))
	logger.Debug("merge: %d lines, %d excluded after %d passes",
		out.Document.Len(), out.Detection.Excluded.Len(), out.Detection.Passes)

	for _, w := range out.Warnings {
		logger.Warn("%v", w)
	}

	result := &domain.MergeResult{
		Input:    input,
		Outputs:  make(map[domain.Variant]string, 3),
		Excluded: out.Detection.Excluded.Indices(),
		Passes:   out.Detection.Passes,
		Warnings: out.Warnings,
		Prologue: out.Prologue,
	}

	for _, v := range domain.Variants() {
		path := s.OutputPath(input, v)
		if v == domain.VariantSite && output != "" {
			path = output
		}

		if err := os.WriteFile(path, []byte(out.Variants.Join(v, s.eol)), 0644); err != nil {
			return result, domain.NewStageError(input, domain.StageWrite,
				fmt.Errorf("%w: %w", domain.ErrOutputUnwritable, err))
		}
		result.Outputs[v] = path
		logger.Debug("merge: wrote %s variant to %s", v, path)
	}

	return result, nil
}

// MergeFolder merges every Markdown file under folder that is not a generated variant.
func (s *MergeService) MergeFolder(ctx context.Context, folder string) (*domain.BatchResult, error) {
	info, err := os.Stat(folder)
	if err != nil {
		return nil, inputError(folder, err)
	}
	if !info.IsDir() {
		return nil, domain.NewStageError(folder, domain.StageRead,
			fmt.Errorf("%w: not a directory", domain.ErrInvalidInput))
	}

	defer logger.Since("merge folder "+folder, time.Now())

	batch := &domain.BatchResult{Folder: folder}
	fail := func(path string, err error) {
		logger.Error("%v", err)
		batch.Failures = append(batch.Failures, domain.FileFailure{Path: path, Err: err})
	}
	err = walkMarkdownReporting(folder, func(path string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if variantOf(path, s.prefixes) != "" {
			return nil
		}

		result, err := s.MergeFile(ctx, path, "")
		if err != nil {
			fail(path, err)
			return nil
		}
		batch.Results = append(batch.Results, result)
		return nil
	}, func(path string, err error) {
		fail(path, inputError(path, err))
	})
	if err != nil {
		return batch, fmt.Errorf("merge folder %s: %w", folder, err)
	}

	logger.Info("merge: %d merged, %d skipped, %d failed in %s",
		batch.Merged(), batch.Skipped(), len(batch.Failures), folder)
	return batch, nil
}

// record stores the run in the history store. Failures are logged, never returned.
func (s *MergeService) record(ctx context.Context, input string, start time.Time, result *domain.MergeResult, mergeErr error) {
	if s.runs == nil {
		return
	}

	run := &domain.MergeRun{
		ID:        uuid.New().String(),
		Input:     input,
		StartedAt: start,
		Duration:  s.now().Sub(start),
	}
	if result != nil {
		run.Outputs = result.Outputs
		run.Excluded = len(result.Excluded)
		run.Passes = result.Passes
		run.Skipped = result.Skipped
	}
	if mergeErr != nil {
		run.Error = mergeErr.Error()
	}

	if err := s.runs.Save(ctx, run); err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("history: %v", err)
	}
}
