package usecases

import (
	"context"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/MyCarrier-DevOps/smart-commit/internal/domain"
)

// bodyHeading introduces the file list in every commit body.
const bodyHeading = "### Semantic Context\nFiles affected:"

// CommitExecutor stages and commits one group at a time and records successes.
type CommitExecutor struct {
	tracker domain.ChangeTracker
	sink    domain.KnowledgeSink
	scopes  *ScopeResolver
	logger  Logger
	now     func() time.Time
}

// NewCommitExecutor creates a CommitExecutor with the given dependencies.
func NewCommitExecutor(
	tracker domain.ChangeTracker,
	sink domain.KnowledgeSink,
	scopes *ScopeResolver,
	log Logger,
) *CommitExecutor {
	return &CommitExecutor{
		tracker: tracker,
		sink:    sink,
		scopes:  scopes,
		logger:  log,
		now:     time.Now,
	}
}

// Describe returns the group's commit description: the explicit message when
// present, otherwise a generated phrase.
func Describe(group domain.CommitGroup) string {
	if group.Key.HasMessage {
		return group.Key.Message
	}
	if len(group.Paths) == 1 {
		return "update " + path.Base(group.Paths[0])
	}
	return fmt.Sprintf("update %d files", len(group.Paths))
}

// Header composes "type(scope): description".
func Header(commitType domain.CommitType, scope, description string) string {
	return fmt.Sprintf("%s(%s): %s", commitType, scope, description)
}

// Body lists every affected path under the semantic context heading.
func Body(paths []string) string {
	var b strings.Builder
	b.WriteString(bodyHeading)
	for _, p := range paths {
		b.WriteString("\n- ")
		b.WriteString(p)
	}
	return b.String()
}

// Prepare resolves the scope and header of a group without side effects.
func (e *CommitExecutor) Prepare(group domain.CommitGroup) domain.GroupResult {
	scope := e.scopes.Resolve(group.Paths)
	return domain.GroupResult{
		Group:  group,
		Scope:  scope,
		Header: Header(group.Key.Type, scope, Describe(group)),
	}
}

// Execute stages exactly the group's paths, commits them and appends a record.
// Failures are returned in the result; a failed group stays staged.
func (e *CommitExecutor) Execute(ctx context.Context, group domain.CommitGroup) domain.GroupResult {
	result := e.Prepare(group)
	fields := map[string]interface{}{
		"type":   string(group.Key.Type),
		"scope":  result.Scope,
		"header": result.Header,
		"files":  len(group.Paths),
	}

	if len(group.Paths) == 0 {
		result.Err = domain.ErrEmptyGroup
		return result
	}

	if err := e.tracker.Stage(ctx, group.Paths); err != nil {
		result.Err = fmt.Errorf("%w: %w", domain.ErrStageFailed, err)
		e.logger.Error(ctx, "failed to stage group", err, fields)
		return result
	}

	if err := e.tracker.Commit(ctx, group.Paths, result.Header, Body(group.Paths)); err != nil {
		result.Err = fmt.Errorf("%w: %w", domain.ErrCommitFailed, err)
		e.logger.Error(ctx, "failed to commit group", err, fields)
		return result
	}
	result.Committed = true

	record := domain.CommitRecord{
		Timestamp: strconv.FormatInt(e.now().Unix(), 10),
		Type:      string(group.Key.Type),
		Scope:     result.Scope,
		Files:     append([]string(nil), group.Paths...),
		Message:   result.Header,
	}
	if err := e.sink.Append(ctx, record); err != nil {
		result.LogErr = err
		e.logger.Warn(ctx, "commit succeeded but knowledge log append failed", map[string]interface{}{
			"header": result.Header,
			"error":  err.Error(),
		})
		return result
	}

	e.logger.Info(ctx, "group committed", fields)
	return result
}
