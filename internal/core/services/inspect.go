package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/slidemerge/internal/core/domain"
	"github.com/custodia-labs/slidemerge/internal/core/ports/driving"
	"github.com/custodia-labs/slidemerge/internal/merger"
	"github.com/custodia-labs/slidemerge/internal/outline"
)

// Ensure InspectService implements the interface.
var _ driving.InspectService = (*InspectService)(nil)

// InspectService runs the merge engine in memory for reports and navigation.
type InspectService struct {
	engine   *merger.Engine
	prefixes domain.PrefixSettings
}

// NewInspectService creates an inspect service.
func NewInspectService(settings domain.Settings) *InspectService {
	return &InspectService{
		engine:   merger.New(settings.Merge),
		prefixes: settings.Prefixes,
	}
}

// Inspect classifies and deduplicates a file without writing outputs.
func (s *InspectService) Inspect(ctx context.Context, path string) (*domain.Inspection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, inputError(path, err)
	}

	out := s.engine.Merge(path, merger.SplitLines(string(content)))

	report := &domain.Inspection{
		Path:     path,
		Ignored:  IsIgnoredPage(path),
		Lines:    out.Document.Len(),
		Counts:   make(map[domain.LineKind]int),
		Passes:   out.Detection.Passes,
		Prologue: out.Prologue,
		Outline:  outline.Extract([]byte(strings.Join(out.SiteBody(), "\n"))),
	}

	for _, line := range out.Document.Lines {
		report.Counts[line.Kind]++
	}
	for _, idx := range out.Detection.Excluded.Indices() {
		line := out.Document.Lines[idx]
		report.Excluded = append(report.Excluded, domain.ExcludedLine{
			Index: idx,
			Kind:  line.Kind,
			Text:  line.Text,
		})
	}
	for _, w := range out.Warnings {
		report.Warnings = append(report.Warnings, w.Error())
	}

	return report, nil
}

// Nav lists the Site variant files under folder, titled by prologue title,
// then first heading, then file name.
func (s *InspectService) Nav(ctx context.Context, folder string) ([]domain.NavEntry, error) {
	var entries []domain.NavEntry

	err := walkMarkdown(folder, func(path string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if variantOf(path, s.prefixes) != domain.VariantSite {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return inputError(path, err)
		}

		rel, err := filepath.Rel(folder, path)
		if err != nil {
			rel = path
		}
		entries = append(entries, domain.NavEntry{
			Title: s.pageTitle(path, content),
			Path:  filepath.ToSlash(rel),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("build nav for %s: %w", folder, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
	return entries, nil
}

func (s *InspectService) pageTitle(path string, content []byte) string {
	doc := merger.Classify(path, merger.SplitLines(string(content)))
	if p, err := merger.ReadPrologue(doc); err == nil && p != nil && p.Title != "" {
		return p.Title
	}

	var body []string
	for _, line := range doc.Lines[merger.PrologueEnd(doc):] {
		body = append(body, line.Text)
	}
	if title := outline.Title([]byte(strings.Join(body, "\n"))); title != "" {
		return title
	}

	name := strings.TrimPrefix(filepath.Base(path), s.prefixes.Site)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
