package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent merge pipeline failures.
// Adapters wrap them with context; callers match with errors.Is.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInputNotFound indicates the input file or folder does not exist.
	ErrInputNotFound = errors.New("input not found")

	// ErrInputUnreadable indicates the input exists but could not be read.
	ErrInputUnreadable = errors.New("input unreadable")

	// ErrOutputUnwritable indicates an output file could not be written or removed.
	ErrOutputUnwritable = errors.New("output unwritable")

	// ErrInvalidDocument indicates malformed document structure, such as a
	// broken image link. It is reported as a warning and never aborts a merge.
	ErrInvalidDocument = errors.New("invalid document structure")

	// ErrExternalTool indicates an external binary failed to start or
	// exited with a non-zero status.
	ErrExternalTool = errors.New("external tool failure")
)

// Stage identifies the pipeline step a failure happened in.
type Stage string

// Pipeline stages.
const (
	StageRead     Stage = "read"
	StageClassify Stage = "classification"
	StageDetect   Stage = "detection"
	StageWrite    Stage = "write"
	StageBuild    Stage = "build"
	StageClean    Stage = "clean"
	StageDeploy   Stage = "deploy"
	StageExport   Stage = "export"
)

// StageError ties a failure to the file and stage it happened in.
type StageError struct {
	Path  string
	Stage Stage
	Err   error
}

// NewStageError wraps err with path and stage context.
func NewStageError(path string, stage Stage, err error) *StageError {
	return &StageError{Path: path, Stage: stage, Err: err}
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Path, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// ToolError describes a failed external command.
type ToolError struct {
	// Command is the executable that failed.
	Command string

	// ExitCode is the process exit status, or -1 if it never started.
	ExitCode int

	// Stderr holds the tail of the process error output.
	Stderr string
}

func (e *ToolError) Error() string {
	if e.ExitCode < 0 {
		return fmt.Sprintf("%s: failed to start", e.Command)
	}
	if e.Stderr != "" {
		return fmt.Sprintf("%s: exit code %d: %s", e.Command, e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("%s: exit code %d", e.Command, e.ExitCode)
}

// Is lets errors.Is match any ToolError against ErrExternalTool.
func (e *ToolError) Is(target error) bool {
	return target == ErrExternalTool
}
