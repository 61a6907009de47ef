// Package domain defines the core business entities and interfaces for smart-commit.
// This package contains no external dependencies and represents the innermost layer
// of the CLEAN architecture.
package domain

import (
	"context"
	"errors"
)

// Domain errors for repository access, commit execution and the knowledge log.
var (
	// ErrRepositoryNotFound indicates the specified path is not a valid Git repository.
	ErrRepositoryNotFound = errors.New("git repository not found at specified path")

	// ErrEmptyGroup indicates a commit group with no paths was submitted.
	ErrEmptyGroup = errors.New("commit group has no files")

	// ErrStageFailed indicates the group's files could not be staged.
	ErrStageFailed = errors.New("staging failed")

	// ErrCommitFailed indicates the commit operation returned an error.
	ErrCommitFailed = errors.New("commit failed")

	// ErrSinkClosed indicates a record was appended to a closed knowledge sink.
	ErrSinkClosed = errors.New("knowledge sink is closed")
)

// ChangeTracker is the version-control service consumed by smart-commit.
// Every operation blocks until the underlying git process returns.
type ChangeTracker interface {
	// ListChanges returns every path with pending changes, in lexical path order.
	ListChanges(ctx context.Context) ([]ChangedFile, error)

	// DiffUnstaged returns the worktree-vs-index diff for a path.
	DiffUnstaged(ctx context.Context, path string) (string, error)

	// DiffStaged returns the index-vs-HEAD diff for a path.
	DiffStaged(ctx context.Context, path string) (string, error)

	// DiffUntracked returns a diff presenting an untracked file as fully added.
	DiffUntracked(ctx context.Context, path string) (string, error)

	// Stage adds exactly the given paths to the index.
	Stage(ctx context.Context, paths []string) error

	// Commit records exactly the given staged paths with header and body,
	// bypassing hooks. Other staged paths are left in the index.
	Commit(ctx context.Context, paths []string, header, body string) error

	// Root returns the absolute worktree root.
	Root() string

	// Close releases any resources held by the tracker.
	Close() error
}

// KnowledgeSink is the append-only commit record store.
type KnowledgeSink interface {
	// Append writes one record.
	Append(ctx context.Context, record CommitRecord) error

	// Close releases any resources held by the sink.
	Close() error
}

// ProgressReporter prints user-facing progress for a run.
type ProgressReporter interface {
	Banner()
	NoChanges()
	Found(count int)
	Staging(group CommitGroup, description string)
	Planned(header string, paths []string)
	GroupDone(result GroupResult)
	Summary(summary *RunSummary)
}

// Committer runs the detect, classify, group and commit cycle.
type Committer interface {
	Run(ctx context.Context, input RunInput) (*RunSummary, error)
}
