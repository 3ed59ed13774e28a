// Package exec runs external binaries for the build, deploy and export services.
package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	osexec "os/exec"
	"strings"

	"github.com/custodia-labs/slidemerge/internal/core/domain"
	"github.com/custodia-labs/slidemerge/internal/core/ports/driven"
	"github.com/custodia-labs/slidemerge/internal/logger"
)

// Ensure Runner implements the interface.
var _ driven.CommandRunner = (*Runner)(nil)

// stderrTail is the number of stderr bytes kept on failure.
const stderrTail = 2048

// Runner is an os/exec backed driven.CommandRunner.
type Runner struct {
	// reaped receives the exit error of every detached process. Nil in production.
	reaped chan<- error
}

// NewRunner creates a command runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes cmd. See driven.CommandRunner.
func (r *Runner) Run(ctx context.Context, cmd domain.Command) (string, error) {
	if len(cmd.Args) == 0 {
		return "", fmt.Errorf("empty command: %w", domain.ErrInvalidInput)
	}

	logger.Debug("exec: %s (dir=%q wait=%v)", cmd, cmd.Dir, cmd.Wait)

	if !cmd.Wait {
		return "", r.start(cmd)
	}

	c := osexec.CommandContext(ctx, cmd.Args[0], cmd.Args[1:]...)
	c.Dir = cmd.Dir

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	if err := c.Run(); err != nil {
		return stdout.String(), toolError(cmd, err, stderr.String())
	}
	return stdout.String(), nil
}

// start launches a detached process and reaps it on its own goroutine.
// The process outlives the caller's context.
func (r *Runner) start(cmd domain.Command) error {
	c := osexec.Command(cmd.Args[0], cmd.Args[1:]...)
	c.Dir = cmd.Dir

	var stderr bytes.Buffer
	c.Stderr = &stderr

	if err := c.Start(); err != nil {
		return toolError(cmd, err, "")
	}

	go func() {
		err := c.Wait()
		if err != nil {
			err = toolError(cmd, err, stderr.String())
			logger.Warn("%v", err)
		} else {
			logger.Debug("exec: %s finished", cmd.Name())
		}
		if r.reaped != nil {
			r.reaped <- err
		}
	}()
	return nil
}

func toolError(cmd domain.Command, err error, stderr string) error {
	toolErr := &domain.ToolError{Command: cmd.Name(), ExitCode: -1, Stderr: tail(stderr)}

	var exitErr *osexec.ExitError
	if errors.As(err, &exitErr) {
		toolErr.ExitCode = exitErr.ExitCode()
		return toolErr
	}
	return fmt.Errorf("%w: %v", toolErr, err)
}

func tail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > stderrTail {
		s = s[len(s)-stderrTail:]
	}
	return s
}
