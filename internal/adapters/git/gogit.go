// Package git provides adapters for interacting with local Git repositories.
// This package implements the domain.ChangeTracker interface using go-git/v5 for
// repository discovery and status codes, and the git binary for status, diffs,
// staging and commits.
package git

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"

	"github.com/MyCarrier-DevOps/smart-commit/internal/domain"
)

// Logger defines the logging interface for the git adapter.
// This interface enables dependency injection and testability.
type Logger interface {
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
}

// GoGitRepository implements domain.ChangeTracker.
type GoGitRepository struct {
	root   string
	runner CommandRunner
	logger Logger
}

// Option configures GoGitRepository.
type Option func(*GoGitRepository)

// WithRunner sets the command runner used for git subprocesses.
func WithRunner(runner CommandRunner) Option {
	return func(r *GoGitRepository) {
		r.runner = runner
	}
}

// NewGoGitRepository opens the repository containing path.
// Parent directories are searched for .git, so path may be any directory in the worktree.
// Returns domain.ErrRepositoryNotFound if no repository is found or it has no worktree.
func NewGoGitRepository(path string, log Logger, opts ...Option) (*GoGitRepository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrRepositoryNotFound, path)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("%w: %s has no worktree: %w", domain.ErrRepositoryNotFound, path, err)
	}

	r := &GoGitRepository{
		root:   wt.Filesystem.Root(),
		runner: NewExecRunner(),
		logger: log,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Root returns the absolute worktree root.
func (r *GoGitRepository) Root() string {
	return r.root
}

// ListChanges returns every path with pending changes, sorted by path.
// Enumeration runs `git status` so every exclude source git honours applies
// (core.excludesFile, info/exclude, nested .gitignore files). Renames are
// reported as a deletion plus an addition so both paths reach a commit.
func (r *GoGitRepository) ListChanges(ctx context.Context) ([]domain.ChangedFile, error) {
	out, err := r.git(ctx, "status", "--porcelain=v1", "-z", "--untracked-files=all", "--no-renames")
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree status: %w", err)
	}

	changes, err := parsePorcelain(out)
	if err != nil {
		return nil, err
	}
	sort.Slice(changes, func(i, j int) bool {
		return changes[i].Path < changes[j].Path
	})

	r.logger.Debug(ctx, "listed worktree changes", map[string]interface{}{
		"root":    r.root,
		"changes": len(changes),
	})
	return changes, nil
}

// parsePorcelain decodes `git status --porcelain=v1 -z` output.
// Each entry is "XY path", NUL-terminated; rename and copy entries carry the
// source path as an extra NUL-terminated field.
func parsePorcelain(out string) ([]domain.ChangedFile, error) {
	fields := strings.Split(out, "\x00")
	changes := make([]domain.ChangedFile, 0, len(fields))
	for i := 0; i < len(fields); i++ {
		entry := fields[i]
		if entry == "" {
			continue
		}
		if len(entry) < 4 || entry[2] != ' ' {
			return nil, fmt.Errorf("unexpected git status entry %q", entry)
		}
		fs := &git.FileStatus{
			Staging:  git.StatusCode(entry[0]),
			Worktree: git.StatusCode(entry[1]),
		}
		if isRenameOrCopy(fs) && i+1 < len(fields) {
			i++
			fs.Extra = fields[i]
		}
		changes = append(changes, domain.ChangedFile{
			Path:   entry[3:],
			Status: changeStatus(fs),
		})
	}
	return changes, nil
}

func isRenameOrCopy(fs *git.FileStatus) bool {
	return fs.Staging == git.Renamed || fs.Staging == git.Copied ||
		fs.Worktree == git.Renamed || fs.Worktree == git.Copied
}

// changeStatus folds go-git's staging and worktree codes into one status.
func changeStatus(fs *git.FileStatus) domain.ChangeStatus {
	switch {
	case fs.Worktree == git.Untracked:
		return domain.StatusUntracked
	case fs.Staging == git.Deleted || fs.Worktree == git.Deleted:
		return domain.StatusDeleted
	case fs.Staging == git.Renamed || fs.Worktree == git.Renamed:
		return domain.StatusRenamed
	case fs.Staging == git.Added:
		return domain.StatusAdded
	default:
		return domain.StatusModified
	}
}

// DiffUnstaged returns `git diff -- path`.
func (r *GoGitRepository) DiffUnstaged(ctx context.Context, path string) (string, error) {
	return r.git(ctx, "diff", "--no-color", "--", path)
}

// DiffStaged returns `git diff --cached -- path`.
func (r *GoGitRepository) DiffStaged(ctx context.Context, path string) (string, error) {
	return r.git(ctx, "diff", "--no-color", "--cached", "--", path)
}

// DiffUntracked diffs an untracked file against /dev/null so every line is added.
// git exits with status 1 when the files differ, which is the expected case here.
func (r *GoGitRepository) DiffUntracked(ctx context.Context, path string) (string, error) {
	out, err := r.git(ctx, "diff", "--no-color", "--no-index", "--", "/dev/null", path)
	if err != nil {
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) && cmdErr.ExitCode == 1 && out != "" {
			return out, nil
		}
		return "", err
	}
	return out, nil
}

// Stage runs `git add -- paths...`.
func (r *GoGitRepository) Stage(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"add", "--"}, paths...)
	_, err := r.git(ctx, args...)
	return err
}

// Commit commits only the given paths with a header and body, skipping hooks.
func (r *GoGitRepository) Commit(ctx context.Context, paths []string, header, body string) error {
	args := []string{"commit", "--no-verify", "-m", header}
	if body != "" {
		args = append(args, "-m", body)
	}
	args = append(args, "--")
	args = append(args, paths...)

	out, err := r.git(ctx, args...)
	if err != nil {
		return err
	}
	r.logger.Debug(ctx, "git commit completed", map[string]interface{}{
		"header": header,
		"output": strings.TrimSpace(out),
	})
	return nil
}

// Close releases any resources held by the repository.
// For go-git, this is a no-op as the repository doesn't hold persistent resources.
func (r *GoGitRepository) Close() error {
	return nil
}

// git runs a git subcommand at the worktree root. Pathspecs are literal, so
// a file named "a[1].md" never matches "a1.md".
func (r *GoGitRepository) git(ctx context.Context, args ...string) (string, error) {
	return r.runner.Run(ctx, r.root, "git", append([]string{"--literal-pathspecs"}, args...)...)
}
