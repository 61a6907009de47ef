// Package domain defines the core business entities and interfaces for smart-commit.
package domain

// ChangeStatus describes how a path differs from HEAD.
type ChangeStatus string

// Change statuses reported by a ChangeTracker.
const (
	StatusModified  ChangeStatus = "modified"
	StatusAdded     ChangeStatus = "added"
	StatusDeleted   ChangeStatus = "deleted"
	StatusRenamed   ChangeStatus = "renamed"
	StatusUntracked ChangeStatus = "untracked"
)

// ChangedFile is a path with pending modifications in the working tree.
// It is discovered fresh on every run and never persisted.
type ChangedFile struct {
	// Path is relative to the worktree root, using forward slashes.
	Path string

	// Status is the change status of the path.
	Status ChangeStatus
}

// CommitType is the conventional-commit type token of a change.
// Explicit markers may carry any word token, so this is not a closed set.
type CommitType string

// Commit types produced by the heuristic classifier.
const (
	TypeFeat     CommitType = "feat"
	TypeFix      CommitType = "fix"
	TypeDocs     CommitType = "docs"
	TypeTest     CommitType = "test"
	TypeRefactor CommitType = "refactor"
	TypeChore    CommitType = "chore"
)

// Process-wide fallbacks.
const (
	// DefaultType is used when no extension rule matches.
	DefaultType = TypeChore

	// DefaultScope is used for paths matching no scope rule and for empty path sets.
	DefaultScope = "core"
)

// ClassificationSource tells where a classification came from.
type ClassificationSource string

// Classification sources.
const (
	SourceExplicit  ClassificationSource = "explicit"
	SourceHeuristic ClassificationSource = "heuristic"
)

// Classification is the resolved commit intent of one file.
// It is either Explicit (declared by an intent marker) or Heuristic.
type Classification interface {
	// Type returns the commit type token.
	Type() CommitType

	// Source reports which variant this is.
	Source() ClassificationSource

	// Key returns the grouping key for the file.
	Key() GroupKey

	sealed()
}

// Explicit is a classification declared by an intent marker in the diff.
type Explicit struct {
	CommitType CommitType
	Message    string
}

// Type returns the declared commit type.
func (e Explicit) Type() CommitType { return e.CommitType }

// Source returns SourceExplicit.
func (e Explicit) Source() ClassificationSource { return SourceExplicit }

// Key groups explicit files by type and exact message.
func (e Explicit) Key() GroupKey {
	return GroupKey{Type: e.CommitType, Message: e.Message, HasMessage: true}
}

func (Explicit) sealed() {}

// Heuristic is a classification inferred from the path and diff contents.
type Heuristic struct {
	CommitType CommitType
}

// Type returns the inferred commit type.
func (h Heuristic) Type() CommitType { return h.CommitType }

// Source returns SourceHeuristic.
func (h Heuristic) Source() ClassificationSource { return SourceHeuristic }

// Key groups heuristic files by type alone.
func (h Heuristic) Key() GroupKey {
	return GroupKey{Type: h.CommitType}
}

func (Heuristic) sealed() {}

// ClassifiedFile pairs a changed file with its classification.
type ClassifiedFile struct {
	File           ChangedFile
	Classification Classification
}

// GroupKey identifies a commit group: (type, explicit message or none).
type GroupKey struct {
	Type       CommitType
	Message    string
	HasMessage bool
}

// CommitGroup is the unit of one atomic commit.
type CommitGroup struct {
	Key GroupKey

	// Paths are in original enumeration order.
	Paths []string
}

// CommitRecord is the persisted outcome of one successful commit.
// Field names and the string timestamp are the knowledge log wire format.
type CommitRecord struct {
	// Timestamp is unix seconds rendered as a decimal string.
	Timestamp string   `json:"timestamp"`
	Type      string   `json:"type"`
	Scope     string   `json:"scope"`
	Files     []string `json:"files"`
	Message   string   `json:"message"`
}

// GroupResult is the outcome of executing one commit group.
type GroupResult struct {
	Group  CommitGroup
	Scope  string
	Header string

	// Committed is true when the commit operation succeeded.
	Committed bool

	// Err holds the stage or commit failure when Committed is false.
	Err error

	// LogErr holds a knowledge log failure after a successful commit.
	LogErr error
}

// RunInput contains the parameters for one smart-commit run.
type RunInput struct {
	// DryRun plans groups without staging, committing or logging.
	DryRun bool

	// Exclude lists worktree-relative paths that are never grouped or
	// committed, such as a knowledge log kept inside the worktree.
	Exclude []string
}

// RunSummary describes a completed run.
type RunSummary struct {
	ChangedFiles int
	DryRun       bool
	Groups       []GroupResult

	// Committed is the number of groups committed.
	Committed int

	// Failed is the number of groups whose stage or commit failed.
	Failed int

	// FilesCommitted counts paths across committed groups.
	FilesCommitted int
}
