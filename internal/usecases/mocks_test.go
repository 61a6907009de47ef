package usecases

import (
	"context"
	"errors"

	"github.com/MyCarrier-DevOps/smart-commit/internal/domain"
)

var errGit = errors.New("exit status 128")

// mockLogger implements the Logger interface for testing.
type mockLogger struct{}

func (m *mockLogger) Info(_ context.Context, _ string, _ map[string]interface{})           {}
func (m *mockLogger) Debug(_ context.Context, _ string, _ map[string]interface{})          {}
func (m *mockLogger) Warn(_ context.Context, _ string, _ map[string]interface{})           {}
func (m *mockLogger) Error(_ context.Context, _ string, _ error, _ map[string]interface{}) {}

type commitCall struct {
	paths  []string
	header string
	body   string
}

// mockTracker implements domain.ChangeTracker for testing.
type mockTracker struct {
	changes []domain.ChangedFile
	listErr error

	unstaged  map[string]string
	staged    map[string]string
	untracked map[string]string
	diffErrs  map[string]error

	// stageErrs and commitErrs are keyed by the first path of the group.
	stageErrs  map[string]error
	commitErrs map[string]error

	diffCalls   []string
	stageCalls  [][]string
	commitCalls []commitCall
	closeCalled bool
}

func (m *mockTracker) ListChanges(_ context.Context) ([]domain.ChangedFile, error) {
	return m.changes, m.listErr
}

func (m *mockTracker) diff(kind string, diffs map[string]string, path string) (string, error) {
	m.diffCalls = append(m.diffCalls, kind+":"+path)
	if err := m.diffErrs[kind+":"+path]; err != nil {
		return "", err
	}
	return diffs[path], nil
}

func (m *mockTracker) DiffUnstaged(_ context.Context, path string) (string, error) {
	return m.diff("unstaged", m.unstaged, path)
}

func (m *mockTracker) DiffStaged(_ context.Context, path string) (string, error) {
	return m.diff("staged", m.staged, path)
}

func (m *mockTracker) DiffUntracked(_ context.Context, path string) (string, error) {
	return m.diff("untracked", m.untracked, path)
}

func (m *mockTracker) Stage(_ context.Context, paths []string) error {
	m.stageCalls = append(m.stageCalls, paths)
	if len(paths) > 0 {
		return m.stageErrs[paths[0]]
	}
	return nil
}

func (m *mockTracker) Commit(_ context.Context, paths []string, header, body string) error {
	m.commitCalls = append(m.commitCalls, commitCall{paths: paths, header: header, body: body})
	if len(paths) > 0 {
		return m.commitErrs[paths[0]]
	}
	return nil
}

func (m *mockTracker) Root() string {
	return "/repo"
}

func (m *mockTracker) Close() error {
	m.closeCalled = true
	return nil
}

// mockSink implements domain.KnowledgeSink for testing.
type mockSink struct {
	records   []domain.CommitRecord
	appendErr error
}

func (m *mockSink) Append(_ context.Context, record domain.CommitRecord) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.records = append(m.records, record)
	return nil
}

func (m *mockSink) Close() error {
	return nil
}

// mockProgress implements domain.ProgressReporter, recording event names.
type mockProgress struct {
	events  []string
	summary *domain.RunSummary
}

func (m *mockProgress) Banner()     { m.events = append(m.events, "banner") }
func (m *mockProgress) NoChanges()  { m.events = append(m.events, "no-changes") }
func (m *mockProgress) Found(_ int) { m.events = append(m.events, "found") }

func (m *mockProgress) Staging(_ domain.CommitGroup, description string) {
	m.events = append(m.events, "staging:"+description)
}

func (m *mockProgress) Planned(header string, _ []string) {
	m.events = append(m.events, "planned:"+header)
}

func (m *mockProgress) GroupDone(result domain.GroupResult) {
	if result.Committed {
		m.events = append(m.events, "committed:"+result.Header)
		return
	}
	m.events = append(m.events, "failed:"+result.Header)
}

func (m *mockProgress) Summary(summary *domain.RunSummary) {
	m.summary = summary
	m.events = append(m.events, "summary")
}
