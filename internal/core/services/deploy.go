package services

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/slidemerge/internal/core/domain"
	"github.com/custodia-labs/slidemerge/internal/core/ports/driven"
	"github.com/custodia-labs/slidemerge/internal/core/ports/driving"
	"github.com/custodia-labs/slidemerge/internal/logger"
)

// Ensure DeployService implements the interface.
var _ driving.DeployService = (*DeployService)(nil)

// DeployService publishes the MkDocs site to GitHub Pages.
type DeployService struct {
	runner driven.CommandRunner
	mkdocs string
}

// NewDeployService creates a deploy service.
func NewDeployService(runner driven.CommandRunner, settings domain.Settings) *DeployService {
	return &DeployService{runner: runner, mkdocs: settings.Tools.MkDocs}
}

// Deploy runs `mkdocs gh-deploy --force` in folder.
func (s *DeployService) Deploy(ctx context.Context, folder string, wait bool) (string, error) {
	info, err := os.Stat(folder)
	if err != nil {
		return "", inputError(folder, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, folder)
	}

	cmd := domain.Command{
		Args: []string{s.mkdocs, "gh-deploy", "--force"},
		Dir:  folder,
		Wait: wait,
	}
	logger.Info("deploy: %s in %s", cmd, folder)

	out, err := s.runner.Run(ctx, cmd)
	if err != nil {
		return out, domain.NewStageError(folder, domain.StageDeploy, err)
	}
	return out, nil
}
