package services

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/slidemerge/internal/core/domain"
)

const markdownExt = ".md"

// ignoredPageMarkers name generated index, license and tag pages.
var ignoredPageMarkers = []string{"index.", "license.", "tags."}

// IsIgnoredPage reports whether path names an already generated index, license or tags page.
func IsIgnoredPage(path string) bool {
	name := filepath.Base(path)
	if !isMarkdown(name) {
		return false
	}
	for _, marker := range ignoredPageMarkers {
		if strings.Contains(name, marker) {
			return true
		}
	}
	return false
}

// DerivePath builds <dir>/<prefix><base><postfix>.<ext>.
// An empty ext keeps the extension of path.
func DerivePath(path, prefix, postfix, ext string) string {
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	oldExt := filepath.Ext(name)
	base := strings.TrimSuffix(name, oldExt)

	if ext == "" {
		ext = strings.TrimPrefix(oldExt, ".")
	}
	if ext != "" {
		ext = "." + ext
	}
	return filepath.Join(dir, prefix+base+postfix+ext)
}

// variantOf returns the variant a file name was generated as, or "" for a source deck.
func variantOf(path string, prefixes domain.PrefixSettings) domain.Variant {
	name := filepath.Base(path)
	for _, v := range domain.Variants() {
		if p := prefixes.For(v); p != "" && strings.HasPrefix(name, p) {
			return v
		}
	}
	return ""
}

func isMarkdown(path string) bool {
	return strings.EqualFold(filepath.Ext(path), markdownExt)
}

func isHidden(name string) bool {
	return len(name) > 1 && strings.HasPrefix(name, ".")
}

// walkDir walks a directory tree. Replaced in tests to inject read errors.
var walkDir = filepath.WalkDir

// walkMarkdown calls fn for every Markdown file under root, skipping hidden entries.
// A root that is a file is passed to fn directly.
func walkMarkdown(root string, fn func(path string) error) error {
	return walkTree(root, isMarkdown, fn, nil)
}

// walkMarkdownReporting is walkMarkdown that passes entries below root which
// cannot be read to skip and keeps walking. An unreadable directory is skipped whole.
func walkMarkdownReporting(root string, fn func(path string) error, skip func(path string, err error)) error {
	return walkTree(root, isMarkdown, fn, skip)
}

// walkFiles calls fn for every file under root accepted by match, skipping hidden entries.
func walkFiles(root string, match func(path string) bool, fn func(path string) error) error {
	return walkTree(root, match, fn, nil)
}

func walkTree(root string, match func(path string) bool, fn func(path string) error, skip func(path string, err error)) error {
	info, err := os.Stat(root)
	if err != nil {
		return inputError(root, err)
	}
	if !info.IsDir() {
		return fn(root)
	}

	return walkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if skip == nil || path == root {
				return err
			}
			skip(path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path != root && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !match(path) {
			return nil
		}
		return fn(path)
	})
}

// inputError maps a stat or read failure to the input error taxonomy.
func inputError(path string, err error) error {
	sentinel := domain.ErrInputUnreadable
	if os.IsNotExist(err) {
		sentinel = domain.ErrInputNotFound
	}
	return domain.NewStageError(path, domain.StageRead, fmt.Errorf("%w: %w", sentinel, err))
}
