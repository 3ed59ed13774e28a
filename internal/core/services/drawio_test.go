package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/slidemerge/internal/core/domain"
)

const twoPageDiagram = `<mxfile host="drawio">
  <diagram id="-J4FnIjizJcJbLS0x7CH" name="processing_time">
    <mxGraphModel><root><mxCell id="0"/></root></mxGraphModel>
  </diagram>
  <diagram id="Xy2" name="overview">
    <mxGraphModel><root><mxCell id="0"/></root></mxGraphModel>
  </diagram>
</mxfile>`

// xmlExporter simulates drawio writing the uncompressed export next to the input.
func xmlExporter(t *testing.T, content string) func(cmd domain.Command) {
	return func(cmd domain.Command) {
		if len(cmd.Args) > 3 && cmd.Args[3] == "xml" {
			input := cmd.Args[len(cmd.Args)-1]
			require.NoError(t, os.WriteFile(DerivePath(input, "", "", "xml"), []byte(content), 0644))
		}
	}
}

func TestParseDiagramPages(t *testing.T) {
	pages, err := ParseDiagramPages([]byte(twoPageDiagram))

	require.NoError(t, err)
	assert.Equal(t, []string{"processing_time", "overview"}, pages)
}

func TestParseDiagramPages_Invalid(t *testing.T) {
	_, err := ParseDiagramPages([]byte("<mxfile><diagram"))

	assert.ErrorIs(t, err, domain.ErrInvalidDocument)
}

func TestDiagramService_Export(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "figures/network.drawio", "<mxfile compressed/>")
	writeFile(t, dir, "notes.md", "# not a diagram\n")
	runner := &mockRunner{}
	runner.onRun = xmlExporter(t, twoPageDiagram)

	settings := domain.DefaultSettings()
	settings.Tools.Drawio = "/opt/drawio"
	service := NewDiagramService(runner, settings)

	written, err := service.Export(context.Background(), dir)

	require.NoError(t, err)
	assets := filepath.Join(dir, "figures", "assets")
	assert.Equal(t, []string{
		filepath.Join(assets, "network-processing_time.svg"),
		filepath.Join(assets, "network-processing_time.png"),
		filepath.Join(assets, "network-processing_time.jpeg"),
		filepath.Join(assets, "network-overview.svg"),
		filepath.Join(assets, "network-overview.png"),
		filepath.Join(assets, "network-overview.jpeg"),
	}, written)
	assert.DirExists(t, assets)
	assert.NoFileExists(t, filepath.Join(dir, "figures", "network.xml"))

	cmds := runner.Commands()
	require.Len(t, cmds, 7)
	assert.Equal(t, []string{"/opt/drawio", "--export", "--format", "xml", "--uncompressed", input}, cmds[0].Args)
	assert.Equal(t, []string{
		"/opt/drawio", "--export", "--page-index", "1", "--format", "png",
		"--output", filepath.Join(assets, "network-overview.png"), input,
	}, cmds[5].Args)
	for _, cmd := range cmds {
		assert.True(t, cmd.Wait)
	}
}

func TestDiagramService_Export_NoPages(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "empty.drawio", "")
	runner := &mockRunner{}
	runner.onRun = xmlExporter(t, "<mxfile></mxfile>")
	service := NewDiagramService(runner, domain.DefaultSettings())

	written, err := service.Export(context.Background(), dir)

	require.NoError(t, err)
	assert.Empty(t, written)
	assert.Len(t, runner.Commands(), 1)
	assert.NoDirExists(t, filepath.Join(dir, "assets"))
}

func TestDiagramService_Export_StopsAtFirstFailure(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "a.drawio", "")
	writeFile(t, dir, "b.drawio", "")
	runner := &mockRunner{
		fail: func(cmd domain.Command) error {
			if len(cmd.Args) > 3 && cmd.Args[3] == "xml" {
				return &domain.ToolError{Command: cmd.Name(), ExitCode: -1}
			}
			return nil
		},
	}
	service := NewDiagramService(runner, domain.DefaultSettings())

	written, err := service.Export(context.Background(), dir)

	require.Error(t, err)
	assert.Empty(t, written)
	assert.ErrorIs(t, err, domain.ErrExternalTool)
	assert.Contains(t, err.Error(), first)
	assert.Contains(t, err.Error(), string(domain.StageExport))
	assert.Empty(t, runner.Commands())
}

func TestDiagramService_Export_MissingXML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.drawio", "")
	service := NewDiagramService(&mockRunner{}, domain.DefaultSettings())

	_, err := service.Export(context.Background(), dir)

	assert.ErrorIs(t, err, domain.ErrInputUnreadable)
}

func TestPageFileName(t *testing.T) {
	assert.Equal(t, "overview", pageFileName("overview"))
	assert.Equal(t, "a_b_c", pageFileName(`a/b\c`))
}
