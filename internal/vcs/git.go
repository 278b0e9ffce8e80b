package vcs

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
)

// Metadata captures repository identity and dirty state.
type Metadata struct {
	Name   string
	VCS    string
	Commit string
	Branch string
	Dirty  bool
	// Modified lists the inspected paths that have uncommitted changes,
	// relative to the repository root.
	Modified []string
}

// gitRunner executes git commands for repository metadata.
type gitRunner interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// execGitRunner invokes git via the system binary.
type execGitRunner struct{}

// Run executes a git command and returns trimmed stdout.
func (execGitRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = "no stderr"
		}
		return "", fmt.Errorf("git %s: %w (%s)", strings.Join(args, " "), err, msg)
	}
	return strings.TrimRight(stdout.String(), "\r\n"), nil
}

// Client runs git against a project directory.
type Client struct {
	runner gitRunner
}

// NewClient constructs a git client with an optional runner override.
func NewClient(runner gitRunner) Client {
	if runner == nil {
		runner = execGitRunner{}
	}
	return Client{runner: runner}
}

var defaultClient = NewClient(nil)

// Inspect reads the git state of the repository containing dir.
func Inspect(ctx context.Context, dir string, paths ...string) (Metadata, error) {
	return defaultClient.Inspect(ctx, dir, paths...)
}

// Inspect reads the git state of the repository containing dir and reports
// which of paths carry uncommitted changes.
func (c Client) Inspect(ctx context.Context, dir string, paths ...string) (Metadata, error) {
	if strings.TrimSpace(dir) == "" {
		return Metadata{}, fmt.Errorf("project directory is empty")
	}
	root, err := c.runner.Run(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return Metadata{}, fmt.Errorf("discover git root: %w", err)
	}
	root = strings.TrimSpace(root)
	commit, err := c.runner.Run(ctx, root, "rev-parse", "HEAD")
	if err != nil {
		return Metadata{}, fmt.Errorf("resolve HEAD: %w", err)
	}
	branch, err := c.runner.Run(ctx, root, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return Metadata{}, fmt.Errorf("resolve branch: %w", err)
	}
	status, err := c.runner.Run(ctx, root, "status", "--porcelain")
	if err != nil {
		return Metadata{}, fmt.Errorf("check dirty state: %w", err)
	}
	changed := changedPaths(status)
	return Metadata{
		Name:     filepath.Base(root),
		VCS:      "git",
		Commit:   strings.TrimSpace(commit),
		Branch:   strings.TrimSpace(branch),
		Dirty:    len(changed) > 0,
		Modified: modified(root, paths, changed),
	}, nil
}

// changedPaths parses `git status --porcelain` lines into repo-relative
// paths. Renames report the new path.
func changedPaths(status string) []string {
	var out []string
	for _, line := range strings.Split(status, "\n") {
		if len(line) < 4 {
			continue
		}
		path := line[3:]
		if _, after, ok := strings.Cut(path, " -> "); ok {
			path = after
		}
		out = append(out, strings.Trim(path, `"`))
	}
	return out
}

func modified(root string, paths, changed []string) []string {
	var out []string
	for _, path := range paths {
		rel := path
		if filepath.IsAbs(path) {
			r, err := filepath.Rel(root, path)
			if err != nil || strings.HasPrefix(r, "..") {
				continue
			}
			rel = r
		}
		rel = filepath.ToSlash(rel)
		if slices.Contains(changed, rel) && !slices.Contains(out, rel) {
			out = append(out, rel)
		}
	}
	return out
}
