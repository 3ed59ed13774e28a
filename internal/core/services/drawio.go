package services

import (
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/custodia-labs/slidemerge/internal/core/domain"
	"github.com/custodia-labs/slidemerge/internal/core/ports/driven"
	"github.com/custodia-labs/slidemerge/internal/core/ports/driving"
	"github.com/custodia-labs/slidemerge/internal/logger"
)

// Ensure DiagramService implements the interface.
var _ driving.DiagramService = (*DiagramService)(nil)

const (
	drawioExt = ".drawio"
	assetsDir = "assets"
)

// diagramFormats are exported for every page, in order.
var diagramFormats = []string{"svg", "png", "jpeg"}

// mxFile is the uncompressed draw.io document. Only page names are read.
type mxFile struct {
	Diagrams []struct {
		Name string `xml:"name,attr"`
	} `xml:"diagram"`
}

// DiagramService exports every page of draw.io files to images.
type DiagramService struct {
	runner driven.CommandRunner
	drawio string
}

// NewDiagramService creates a diagram export service.
func NewDiagramService(runner driven.CommandRunner, settings domain.Settings) *DiagramService {
	return &DiagramService{runner: runner, drawio: settings.Tools.Drawio}
}

// Export renders every .drawio file under folder into <dir>/assets.
// The first failure stops the export.
func (s *DiagramService) Export(ctx context.Context, folder string) ([]string, error) {
	var written []string

	err := walkFiles(folder, isDrawio, func(file string) error {
		logger.Info("drawio: exporting %s", file)
		images, err := s.exportFile(ctx, file)
		written = append(written, images...)
		if err != nil {
			logger.Error("drawio: export of %s failed, stopping", file)
			return domain.NewStageError(file, domain.StageExport, err)
		}
		return nil
	})
	return written, err
}

func (s *DiagramService) exportFile(ctx context.Context, file string) ([]string, error) {
	pages, err := s.pageNames(ctx, file)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, nil
	}

	dir := filepath.Join(filepath.Dir(file), assetsDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrOutputUnwritable, err)
	}
	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))

	var written []string
	for index, page := range pages {
		for _, format := range diagramFormats {
			out := filepath.Join(dir, base+"-"+pageFileName(page)+"."+format)
			cmd := domain.Command{
				Args: []string{
					s.drawio, "--export", "--page-index", strconv.Itoa(index),
					"--format", format, "--output", out, file,
				},
				Dir:  filepath.Dir(file),
				Wait: true,
			}
			logger.Debug("drawio: page %d/%d %q as %s", index+1, len(pages), page, format)
			if _, err := s.runner.Run(ctx, cmd); err != nil {
				return written, err
			}
			written = append(written, out)
		}
	}
	return written, nil
}

// pageNames exports file as uncompressed XML and reads its page names.
// The intermediate XML file is removed.
func (s *DiagramService) pageNames(ctx context.Context, file string) ([]string, error) {
	cmd := domain.Command{
		Args: []string{s.drawio, "--export", "--format", "xml", "--uncompressed", file},
		Dir:  filepath.Dir(file),
		Wait: true,
	}
	if _, err := s.runner.Run(ctx, cmd); err != nil {
		return nil, err
	}

	xmlPath := DerivePath(file, "", "", "xml")
	defer os.Remove(xmlPath)

	data, err := os.ReadFile(xmlPath)
	if err != nil {
		return nil, fmt.Errorf("%w: read exported xml: %w", domain.ErrInputUnreadable, err)
	}
	return ParseDiagramPages(data)
}

// ParseDiagramPages returns the page names of an uncompressed draw.io document.
func ParseDiagramPages(data []byte) ([]string, error) {
	var doc mxFile
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse diagram: %w", domain.ErrInvalidDocument, err)
	}
	names := make([]string, 0, len(doc.Diagrams))
	for _, d := range doc.Diagrams {
		names = append(names, d.Name)
	}
	return names, nil
}

// pageFileName keeps page names from escaping the assets directory.
func pageFileName(page string) string {
	return strings.NewReplacer("/", "_", `\`, "_").Replace(page)
}

func isDrawio(path string) bool {
	return strings.EqualFold(filepath.Ext(path), drawioExt)
}
