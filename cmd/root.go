// Package cmd provides the CLI commands for smart-commit.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MyCarrier-DevOps/smart-commit/internal/domain"
)

// Logger defines the logging interface used by the command.
type Logger interface {
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, err error, fields map[string]interface{})
}

// Dependencies holds all injectable dependencies for the command.
// This enables testing by allowing mock implementations to be injected.
type Dependencies struct {
	// LoggerFactory creates a logger instance.
	LoggerFactory func() Logger

	// RepoFactory opens the ChangeTracker for the repository containing path.
	RepoFactory func(path string, log Logger) (domain.ChangeTracker, error)

	// ConfigLoader loads application configuration for the worktree root.
	ConfigLoader func(root string) (*AppConfig, error)

	// SinkFactory creates the knowledge log sink.
	SinkFactory func(ctx context.Context, cfg *AppConfig, log Logger) (domain.KnowledgeSink, error)

	// CommitterFactory creates a Committer with the given dependencies.
	CommitterFactory func(
		tracker domain.ChangeTracker,
		sink domain.KnowledgeSink,
		rules domain.Rules,
		progress domain.ProgressReporter,
		log Logger,
	) domain.Committer

	// ProgressFactory creates the progress reporter writing to out.
	ProgressFactory func(out io.Writer) domain.ProgressReporter

	// Stdout is the writer for progress output.
	Stdout io.Writer

	// Stderr is the writer for standard error (for warnings/errors).
	Stderr io.Writer
}

// AppConfig holds application configuration loaded by ConfigLoader.
type AppConfig struct {
	// Rules holds the classification tables.
	Rules domain.Rules

	// KnowledgeLogPath is the JSONL knowledge log location.
	KnowledgeLogPath string

	// ClickHouseConfig is passed to the SinkFactory; nil disables the mirror.
	ClickHouseConfig any
}

// Command-line flags.
var (
	dryRun  bool
	verbose bool
)

// defaultDeps holds the production dependencies.
// This is set by the production wiring in main or via SetDefaultDependencies.
var defaultDeps *Dependencies

// SetDefaultDependencies sets the default dependencies for production use.
// This should be called from main() before Execute().
func SetDefaultDependencies(deps *Dependencies) {
	defaultDeps = deps
}

// NewRootCmd creates the root command for smart-commit.
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithDeps(defaultDeps)
}

// NewRootCmdWithDeps creates the root command with explicit dependencies.
// This is the primary constructor that enables testing via dependency injection.
func NewRootCmdWithDeps(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "smart-commit [path]",
		Short: "Group pending changes by intent and commit each group atomically",
		Long: `smart-commit inspects the working tree's pending changes, infers a commit
type, scope and message for every changed file, groups files sharing an intent,
and creates one commit per group. Each commit is recorded in the knowledge log.

Intent is declared explicitly with a marker on an added line:

  # [commit] feat: add retry to installer
  // [commit] fix: handle empty pool

Files without a marker are classified by extension and diff keywords, and
files of the same inferred type are committed together.

Per-group failures are reported on stdout and do not change the exit status.

Examples:
  # Commit pending changes in the current repository
  smart-commit

  # Show the planned groups without committing
  smart-commit --dry-run

  # Operate on another repository with debug logging
  smart-commit /path/to/repo -v`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommit(cmd, args, deps)
		},
	}

	rootCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false,
		"Plan commit groups without staging, committing or logging")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose/debug logging")

	return rootCmd
}

// runCommit executes the smart commit cycle with injected dependencies.
func runCommit(cmd *cobra.Command, args []string, deps *Dependencies) error {
	if deps == nil {
		return errors.New("dependencies not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	repoPath := "."
	if len(args) > 0 {
		repoPath = args[0]
	}

	stdout := deps.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := deps.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	// Set log level based on verbose flag (best-effort)
	if verbose {
		if err := os.Setenv("LOG_LEVEL", "debug"); err != nil {
			writeWarningf(stderr, "warning: could not set log level: %v\n", err)
		}
	}

	log := deps.LoggerFactory()

	log.Info(ctx, "starting smart-commit", map[string]interface{}{
		"path":    repoPath,
		"dry_run": dryRun,
		"verbose": verbose,
	})

	tracker, err := deps.RepoFactory(repoPath, log)
	if err != nil {
		log.Error(ctx, "failed to open git repository", err, map[string]interface{}{
			"path": repoPath,
		})
		if errors.Is(err, domain.ErrRepositoryNotFound) {
			return fmt.Errorf("not a git repository: %s", repoPath)
		}
		return err
	}
	defer func() {
		if closeErr := tracker.Close(); closeErr != nil {
			log.Warn(ctx, "failed to close git repository", map[string]interface{}{
				"error": closeErr.Error(),
			})
		}
	}()

	cfg, err := deps.ConfigLoader(tracker.Root())
	if err != nil {
		log.Error(ctx, "failed to load configuration", err, nil)
		return fmt.Errorf("configuration error: %w", err)
	}

	sink, err := deps.SinkFactory(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "failed to open knowledge log", err, nil)
		return fmt.Errorf("knowledge log error: %w", err)
	}
	defer func() {
		if closeErr := sink.Close(); closeErr != nil {
			log.Warn(ctx, "failed to close knowledge log", map[string]interface{}{
				"error": closeErr.Error(),
			})
		}
	}()

	progress := deps.ProgressFactory(stdout)
	committer := deps.CommitterFactory(tracker, sink, cfg.Rules, progress, log)

	input := domain.RunInput{DryRun: dryRun}
	if rel, ok := worktreePath(tracker.Root(), cfg.KnowledgeLogPath); ok {
		input.Exclude = append(input.Exclude, rel)
	}

	summary, err := committer.Run(ctx, input)
	if err != nil {
		log.Error(ctx, "smart commit failed", err, nil)
		return err
	}

	log.Info(ctx, "smart commit complete", map[string]interface{}{
		"changed_files":   summary.ChangedFiles,
		"groups":          len(summary.Groups),
		"committed":       summary.Committed,
		"failed":          summary.Failed,
		"files_committed": summary.FilesCommitted,
		"dry_run":         summary.DryRun,
	})

	return nil
}

// worktreePath returns path relative to root in slash form, or false when
// path lies outside the worktree.
func worktreePath(root, path string) (string, bool) {
	if root == "" || path == "" {
		return "", false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// Execute runs the root command.
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// writeWarningf writes a warning message to the given writer.
// Errors are ignored: there is no recovery action if stderr writes fail.
func writeWarningf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
