// Package usecases contains the application business logic.
// This package orchestrates domain entities and interfaces to fulfill use cases.
package usecases

import (
	"context"
	"strings"

	"github.com/MyCarrier-DevOps/smart-commit/internal/domain"
)

// Logger defines the logging interface required by the use cases.
// This abstracts the logger dependency to avoid coupling to a specific implementation.
type Logger interface {
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, err error, fields map[string]interface{})
}

// DiffInspector retrieves the pending diff for a single path.
type DiffInspector struct {
	tracker domain.ChangeTracker
	logger  Logger
}

// NewDiffInspector creates a DiffInspector reading from the given tracker.
func NewDiffInspector(tracker domain.ChangeTracker, log Logger) *DiffInspector {
	return &DiffInspector{tracker: tracker, logger: log}
}

// Inspect returns the diff text for file and whether one was found.
// The unstaged diff is tried first, then the staged one. Untracked files are
// presented as fully added. Tracker errors degrade to "no diff".
func (d *DiffInspector) Inspect(ctx context.Context, file domain.ChangedFile) (string, bool) {
	if file.Status == domain.StatusUntracked {
		return d.try(ctx, file.Path, "untracked", d.tracker.DiffUntracked)
	}

	if diff, ok := d.try(ctx, file.Path, "unstaged", d.tracker.DiffUnstaged); ok {
		return diff, true
	}
	return d.try(ctx, file.Path, "staged", d.tracker.DiffStaged)
}

func (d *DiffInspector) try(
	ctx context.Context,
	path, kind string,
	diffFn func(context.Context, string) (string, error),
) (string, bool) {
	diff, err := diffFn(ctx, path)
	if err != nil {
		d.logger.Debug(ctx, "diff unavailable", map[string]interface{}{
			"path":  path,
			"kind":  kind,
			"error": err.Error(),
		})
		return "", false
	}
	if strings.TrimSpace(diff) == "" {
		return "", false
	}
	return diff, true
}
