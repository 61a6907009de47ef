package usecases

import (
	"context"
	"fmt"

	"github.com/MyCarrier-DevOps/smart-commit/internal/domain"
)

// SmartCommitter sequences the detect, classify, group and commit cycle.
// Every step runs sequentially: staging and diffing share the same index.
type SmartCommitter struct {
	tracker    domain.ChangeTracker
	classifier *FileClassifier
	executor   *CommitExecutor
	progress   domain.ProgressReporter
	logger     Logger
}

// NewSmartCommitter creates a SmartCommitter from the tracker, sink and rule tables.
func NewSmartCommitter(
	tracker domain.ChangeTracker,
	sink domain.KnowledgeSink,
	rules domain.Rules,
	progress domain.ProgressReporter,
	log Logger,
) *SmartCommitter {
	inspector := NewDiffInspector(tracker, log)
	return &SmartCommitter{
		tracker:    tracker,
		classifier: NewFileClassifier(inspector, NewHeuristicClassifier(rules.Types), log),
		executor:   NewCommitExecutor(tracker, sink, NewScopeResolver(rules.Scopes), log),
		progress:   progress,
		logger:     log,
	}
}

// Run enumerates changes, classifies each file, plans groups and executes them.
// Per-group failures are reported in the summary; only a failure to enumerate
// changes is returned as an error.
func (c *SmartCommitter) Run(ctx context.Context, input domain.RunInput) (*domain.RunSummary, error) {
	c.progress.Banner()

	changes, err := c.tracker.ListChanges(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list changes: %w", err)
	}
	changes = withoutExcluded(changes, input.Exclude)

	summary := &domain.RunSummary{ChangedFiles: len(changes), DryRun: input.DryRun}
	if len(changes) == 0 {
		c.logger.Info(ctx, "no changes found", nil)
		c.progress.NoChanges()
		return summary, nil
	}
	c.progress.Found(len(changes))

	classified := make([]domain.ClassifiedFile, 0, len(changes))
	for _, file := range changes {
		classified = append(classified, domain.ClassifiedFile{
			File:           file,
			Classification: c.classifier.Classify(ctx, file),
		})
	}

	groups := PlanGroups(classified)
	c.logger.Info(ctx, "planned commit groups", map[string]interface{}{
		"files":   len(changes),
		"groups":  len(groups),
		"dry_run": input.DryRun,
	})

	for _, group := range groups {
		if input.DryRun {
			result := c.executor.Prepare(group)
			c.progress.Planned(result.Header, group.Paths)
			summary.Groups = append(summary.Groups, result)
			continue
		}

		c.progress.Staging(group, Describe(group))
		result := c.executor.Execute(ctx, group)
		c.progress.GroupDone(result)

		summary.Groups = append(summary.Groups, result)
		if result.Committed {
			summary.Committed++
			summary.FilesCommitted += len(group.Paths)
		} else {
			summary.Failed++
		}
	}

	c.progress.Summary(summary)
	return summary, nil
}

// withoutExcluded drops changes whose path is listed in exclude.
func withoutExcluded(changes []domain.ChangedFile, exclude []string) []domain.ChangedFile {
	if len(exclude) == 0 {
		return changes
	}
	skip := make(map[string]bool, len(exclude))
	for _, p := range exclude {
		skip[p] = true
	}
	kept := changes[:0:0]
	for _, c := range changes {
		if !skip[c.Path] {
			kept = append(kept, c)
		}
	}
	return kept
}
