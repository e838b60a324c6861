package tool

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/chetahvarsha/stablecoin-sc/configs"
	"github.com/chetahvarsha/stablecoin-sc/internal/logger"
	"github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/build"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/moby/go-archive"
)

const (
	containerWorkDir = "/workspace"
	containerHomeDir = "/tool-home"
	toolHomeDirName  = ".tool-home"
)

type (
	// Mount maps a host directory into the tool container.
	Mount struct {
		Host      string
		Container string
		ReadOnly  bool
	}

	// DockerRunner runs the tool inside a short-lived container.
	DockerRunner struct {
		cli        *client.Client
		binary     string
		image      string
		dockerfile string
		mounts     []Mount
		logger     *slog.Logger
	}
)

// NewDockerRunner creates a runner that executes cfg.Binary in cfg.Image. workDir
// becomes the container working directory; extraDirs are mounted read-only.
func NewDockerRunner(cfg configs.Tool, workDir string, extraDirs ...string) (*DockerRunner, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate Docker client: %w", err)
	}

	mounts, err := buildMounts(workDir, extraDirs)
	if err != nil {
		_ = cli.Close()
		return nil, err
	}

	return &DockerRunner{
		cli:        cli,
		binary:     cfg.Binary,
		image:      cfg.Image,
		dockerfile: cfg.Dockerfile,
		mounts:     mounts,
		logger:     logger.Named("tool_docker"),
	}, nil
}

func buildMounts(workDir string, extraDirs []string) ([]Mount, error) {
	absWorkDir, err := filepath.Abs(workDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve working directory: %w", err)
	}

	mounts := []Mount{
		{Host: absWorkDir, Container: containerWorkDir},
		// the tool keeps its data store under HOME, which must outlive the container
		{Host: filepath.Join(absWorkDir, toolHomeDirName), Container: containerHomeDir},
	}

	seen := map[string]bool{absWorkDir: true}
	for i, dir := range extraDirs {
		if dir == "" {
			continue
		}
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve directory %s: %w", dir, err)
		}
		if seen[absDir] {
			continue
		}
		seen[absDir] = true
		mounts = append(mounts, Mount{
			Host:      absDir,
			Container: fmt.Sprintf("/mnt/extra-%d", i),
			ReadOnly:  true,
		})
	}

	return mounts, nil
}

// translate rewrites host paths inside a flag or positional argument to
// their location inside the container.
func translate(arg string, mounts []Mount) string {
	prefix, value := "", arg
	if strings.HasPrefix(arg, "--") {
		if i := strings.IndexByte(arg, '='); i >= 0 {
			prefix, value = arg[:i+1], arg[i+1:]
		}
	}
	if !filepath.IsAbs(value) {
		return arg
	}

	// longest host path wins so nested mounts resolve correctly
	best := -1
	for i, m := range mounts {
		if value != m.Host && !strings.HasPrefix(value, m.Host+string(filepath.Separator)) {
			continue
		}
		if best < 0 || len(m.Host) > len(mounts[best].Host) {
			best = i
		}
	}
	if best < 0 {
		return arg
	}

	rel, err := filepath.Rel(mounts[best].Host, value)
	if err != nil {
		return arg
	}
	return prefix + path.Join(mounts[best].Container, filepath.ToSlash(rel))
}

func (r *DockerRunner) Close() error {
	return r.cli.Close()
}

func (r *DockerRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	if err := r.ensureImage(ctx); err != nil {
		return nil, err
	}

	containerArgs := make([]string, len(args))
	for i, arg := range args {
		containerArgs[i] = translate(arg, r.mounts)
	}

	r.logger.With("image", r.image, "args", containerArgs).Debug("running tool container")

	config := &container.Config{
		Image:      r.image,
		Entrypoint: []string{r.binary},
		Cmd:        containerArgs,
		Env:        []string{"HOME=" + containerHomeDir},
		WorkingDir: containerWorkDir,
	}

	binds := make([]string, 0, len(r.mounts))
	for _, m := range r.mounts {
		bind := fmt.Sprintf("%s:%s", m.Host, m.Container)
		if m.ReadOnly {
			bind += ":ro"
		}
		binds = append(binds, bind)
	}
	hostConfig := &container.HostConfig{
		Binds:       binds,
		NetworkMode: "host",
	}

	resp, err := r.cli.ContainerCreate(ctx, config, hostConfig, nil, nil, "")
	if err != nil {
		return nil, fmt.Errorf("failed to create container: %w", err)
	}
	containerID := resp.ID

	defer func() {
		_ = r.cli.ContainerRemove(context.WithoutCancel(ctx), containerID, container.RemoveOptions{Force: true})
	}()

	// Attach before starting so no output is lost.
	attachResp, err := r.cli.ContainerAttach(ctx, containerID, container.AttachOptions{
		Stream: true,
		Stdout: true,
		Stderr: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to attach to container: %w", err)
	}
	defer attachResp.Close()

	var stdout, stderr bytes.Buffer
	copied := make(chan struct{})
	go func() {
		defer close(copied)
		_, _ = stdcopy.StdCopy(&stdout, &stderr, attachResp.Reader)
	}()

	if err := r.cli.ContainerStart(ctx, containerID, container.StartOptions{}); err != nil {
		return nil, fmt.Errorf("failed to start container: %w", err)
	}

	statusCh, errCh := r.cli.ContainerWait(ctx, containerID, container.WaitConditionNotRunning)
	select {
	case err := <-errCh:
		if err != nil {
			return nil, fmt.Errorf("error waiting for container: %w", err)
		}
	case status := <-statusCh:
		<-copied
		if status.StatusCode != 0 {
			return stdout.Bytes(), &ExitError{
				Args:   args,
				Code:   int(status.StatusCode),
				Output: stderr.String() + stdout.String(),
			}
		}
	}

	return stdout.Bytes(), nil
}

func (r *DockerRunner) ensureImage(ctx context.Context) error {
	exists, err := r.imageExists(ctx)
	if err != nil {
		return fmt.Errorf("failed to inspect image %s: %w", r.image, err)
	}
	if exists {
		return nil
	}

	if r.dockerfile != "" {
		return r.buildImage(ctx)
	}
	return r.pullImage(ctx)
}

func (r *DockerRunner) imageExists(ctx context.Context) (bool, error) {
	_, err := r.cli.ImageInspect(ctx, r.image)
	if err != nil {
		if errdefs.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func (r *DockerRunner) pullImage(ctx context.Context) error {
	r.logger.With("image", r.image).Info("pulling tool image")

	resp, err := r.cli.ImagePull(ctx, r.image, image.PullOptions{})
	if err != nil {
		return fmt.Errorf("failed to pull image: %w", err)
	}
	defer resp.Close()

	if err := r.drainProgress(resp, "pull"); err != nil {
		return err
	}

	r.logger.With("image", r.image).Info("tool image pulled successfully")
	return nil
}

func (r *DockerRunner) buildImage(ctx context.Context) error {
	contextPath := filepath.Dir(r.dockerfile)
	r.logger.With("image", r.image, "dockerfile", r.dockerfile).Info("building tool image")

	buildContext, err := archive.TarWithOptions(contextPath, &archive.TarOptions{})
	if err != nil {
		return fmt.Errorf("failed to create build context: %w", err)
	}
	defer buildContext.Close()

	resp, err := r.cli.ImageBuild(ctx, buildContext, build.ImageBuildOptions{
		Tags:       []string{r.image},
		Dockerfile: filepath.Base(r.dockerfile),
		Remove:     true,
	})
	if err != nil {
		return fmt.Errorf("failed to build image: %w", err)
	}
	defer resp.Body.Close()

	if err := r.drainProgress(resp.Body, "build"); err != nil {
		return err
	}

	r.logger.With("image", r.image).Info("tool image built successfully")
	return nil
}

// drainProgress consumes a Docker JSON progress stream and reports the last error message in it.
func (r *DockerRunner) drainProgress(body io.Reader, operation string) error {
	scanner := bufio.NewScanner(body)
	var streamErr error
	for scanner.Scan() {
		line := scanner.Text()
		r.logger.Debug(line)

		var msg struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal([]byte(line), &msg); err == nil && msg.Error != "" {
			streamErr = fmt.Errorf("%s failed: %s", operation, msg.Error)
			r.logger.Error("docker "+operation+" error", "error", msg.Error)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading %s output: %w", operation, err)
	}

	return streamErr
}
