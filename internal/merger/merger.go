package merger

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/custodia-labs/slidemerge/internal/core/domain"
)

// Engine runs the classify, detect and build stages over one document.
type Engine struct {
	detector *Detector
}

// Output is the result of merging one document in memory.
type Output struct {
	Document  *domain.Document
	Detection *Detection
	Variants  Variants
	Prologue  *domain.Prologue
	Warnings  []error
}

// New creates an engine from merge settings.
func New(settings domain.MergeSettings) *Engine {
	return &Engine{detector: NewDetector(settings.Threshold, settings.MaxPasses)}
}

// Merge classifies the lines, detects exclusions and builds the variants.
func (e *Engine) Merge(path string, lines []string) *Output {
	doc := Classify(path, lines)
	detection := e.detector.Detect(doc)
	variants, warnings := BuildVariants(doc, detection.Excluded)

	prologue, err := ReadPrologue(doc)
	if err != nil {
		warnings = append(warnings, domain.NewStageError(path, domain.StageClassify, err))
	}

	return &Output{
		Document:  doc,
		Detection: detection,
		Variants:  variants,
		Prologue:  prologue,
		Warnings:  warnings,
	}
}

// SiteBody returns the Site variant lines that follow the configuration prologue.
func (o *Output) SiteBody() []string {
	end := PrologueEnd(o.Document)
	skip := 0
	for i := 0; i < end; i++ {
		if !o.Detection.Excluded.Contains(i) {
			skip++
		}
	}
	return o.Variants[domain.VariantSite][skip:]
}

// SplitLines splits file content into lines. CRLF is normalised and a
// trailing line terminator does not produce an empty final line.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// LineTerminator returns the platform line terminator.
func LineTerminator() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

func lineError(index int, err error) error {
	return fmt.Errorf("line %d: %w", index+1, err)
}
