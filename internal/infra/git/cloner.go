package git

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/chetahvarsha/stablecoin-sc/internal/logger"
)

// Repository represents a git repository to clone
type Repository struct {
	Name string
	URL  string
	Ref  string // branch, tag, or commit
}

// Cloner fetches contract sources
type Cloner struct {
	binary string
	logger *slog.Logger
}

func NewCloner() *Cloner {
	return &Cloner{
		binary: "git",
		logger: logger.Named("git_cloner"),
	}
}

// Clone shallow-clones repo into destDir/<name> and returns the checkout path.
// An existing checkout is reused as is.
func (c *Cloner) Clone(ctx context.Context, destDir string, repo Repository) (string, error) {
	if repo.Name == "" || repo.URL == "" {
		return "", errors.New("repository name and url are required")
	}

	repoPath := filepath.Join(destDir, repo.Name)

	if _, err := os.Stat(filepath.Join(repoPath, ".git")); err == nil {
		c.logger.Info("repository already cloned, skipping", "name", repo.Name, "path", repoPath)
		return repoPath, nil
	}

	c.logger.Info("cloning repository", "name", repo.Name, "url", repo.URL, "ref", repo.Ref)

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	args := []string{"clone", "--depth", "1"}
	if repo.Ref != "" {
		args = append(args, "--branch", repo.Ref)
	}
	args = append(args, repo.URL, repoPath)

	cmd := exec.CommandContext(ctx, c.binary, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git clone failed: %w", err)
	}

	c.logger.Info("repository cloned successfully", "name", repo.Name)
	return repoPath, nil
}
