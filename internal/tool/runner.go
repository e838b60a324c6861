package tool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/chetahvarsha/stablecoin-sc/configs"
	"github.com/chetahvarsha/stablecoin-sc/internal/logger"
)

type (
	// Runner invokes the external blockchain CLI and returns its standard output.
	Runner interface {
		Run(ctx context.Context, args ...string) ([]byte, error)
	}

	RunCloser interface {
		Runner
		Close() error
	}

	// ExitError is returned when the tool ran but exited with a non-zero status.
	ExitError struct {
		Args   []string
		Code   int
		Output string
	}

	// ExecRunner runs the tool as a host process.
	ExecRunner struct {
		binary string
		dir    string
		logger *slog.Logger
	}
)

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s failed with exit code %d", commandName(e.Args), e.Code)
	if out := strings.TrimSpace(e.Output); out != "" {
		return msg + ": " + out
	}
	return msg
}

func commandName(args []string) string {
	var parts []string
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") {
			continue
		}
		parts = append(parts, arg)
		if len(parts) == 2 {
			break
		}
	}
	return strings.Join(parts, " ")
}

// New creates the runner selected by cfg.Runtime. Extra directories are
// made reachable from inside the container when the docker runtime is used.
func New(cfg configs.Tool, workDir string, extraDirs ...string) (RunCloser, error) {
	switch cfg.Runtime {
	case configs.RuntimeExec, "":
		return NewExecRunner(cfg.Binary, workDir), nil
	case configs.RuntimeDocker:
		return NewDockerRunner(cfg, workDir, extraDirs...)
	default:
		return nil, fmt.Errorf("unsupported tool runtime %q", cfg.Runtime)
	}
}

// NewExecRunner creates a runner for binary executed in dir.
func NewExecRunner(binary, dir string) *ExecRunner {
	return &ExecRunner{
		binary: binary,
		dir:    dir,
		logger: logger.Named("tool_exec"),
	}
}

func (r *ExecRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	r.logger.With("binary", r.binary, "args", args).Debug("running tool")

	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Dir = r.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stdout.Bytes(), &ExitError{
				Args:   args,
				Code:   exitErr.ExitCode(),
				Output: stderr.String() + stdout.String(),
			}
		}
		return nil, fmt.Errorf("failed to run %s: %w", r.binary, err)
	}

	return stdout.Bytes(), nil
}

func (r *ExecRunner) Close() error {
	return nil
}
