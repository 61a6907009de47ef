package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/smart-commit/internal/domain"
)

func TestHeuristicClassifier_Classify(t *testing.T) {
	classifier := NewHeuristicClassifier(domain.DefaultRules().Types)

	tests := []struct {
		name string
		path string
		diff string
		want domain.CommitType
	}{
		{name: "markdown", path: "docs/guide.md", diff: "+More words\n", want: domain.TypeDocs},
		{name: "shell", path: "scripts/a.sh", diff: "+echo hi\n", want: domain.TypeFeat},
		{name: "python", path: "tools/x.py", want: domain.TypeFeat},
		{name: "bats", path: "tests/c.bats", want: domain.TypeTest},
		{name: "conf", path: "config/zbm.conf", want: domain.TypeChore},
		{name: "unmapped extension", path: "src/main.rs", want: domain.DefaultType},
		{name: "no extension", path: "Makefile", want: domain.DefaultType},
		{name: "fix keyword overrides markdown", path: "README.md", diff: "+Fixed typo in install step\n", want: domain.TypeFix},
		{name: "bug keyword lower case", path: "a.sh", diff: "+# workaround for bug 12\n", want: domain.TypeFix},
		{name: "error keyword on removed line", path: "a.py", diff: "-raise Error()\n", want: domain.TypeFix},
		{name: "refactor keyword", path: "a.sh", diff: "+# Refactor loop\n", want: domain.TypeRefactor},
		{name: "optimize keyword", path: "a.conf", diff: "+optimize=true\n", want: domain.TypeRefactor},
		{name: "fix wins over refactor", path: "a.sh", diff: "+refactor and fix\n", want: domain.TypeFix},
		{name: "keywords in headers ignored", path: "fix/notes.md", diff: "--- a/fix/notes.md\n+++ b/fix/notes.md\n+words\n", want: domain.TypeDocs},
		{name: "keywords in context ignored", path: "notes.md", diff: " error handling\n+words\n", want: domain.TypeDocs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifier.Classify(tt.path, tt.diff))
		})
	}
}

func TestDiffInspector_Inspect(t *testing.T) {
	tests := []struct {
		name      string
		file      domain.ChangedFile
		tracker   *mockTracker
		wantDiff  string
		wantFound bool
		wantCalls []string
	}{
		{
			name: "unstaged diff first",
			file: domain.ChangedFile{Path: "a.sh", Status: domain.StatusModified},
			tracker: &mockTracker{
				unstaged: map[string]string{"a.sh": "+x\n"},
				staged:   map[string]string{"a.sh": "+y\n"},
			},
			wantDiff:  "+x\n",
			wantFound: true,
			wantCalls: []string{"unstaged:a.sh"},
		},
		{
			name: "falls back to staged diff",
			file: domain.ChangedFile{Path: "a.sh", Status: domain.StatusAdded},
			tracker: &mockTracker{
				staged: map[string]string{"a.sh": "+y\n"},
			},
			wantDiff:  "+y\n",
			wantFound: true,
			wantCalls: []string{"unstaged:a.sh", "staged:a.sh"},
		},
		{
			name: "unstaged error falls back to staged",
			file: domain.ChangedFile{Path: "a.sh", Status: domain.StatusModified},
			tracker: &mockTracker{
				staged:   map[string]string{"a.sh": "+y\n"},
				diffErrs: map[string]error{"unstaged:a.sh": errGit},
			},
			wantDiff:  "+y\n",
			wantFound: true,
			wantCalls: []string{"unstaged:a.sh", "staged:a.sh"},
		},
		{
			name: "both fail",
			file: domain.ChangedFile{Path: "a.bin", Status: domain.StatusModified},
			tracker: &mockTracker{
				diffErrs: map[string]error{"unstaged:a.bin": errGit, "staged:a.bin": errGit},
			},
			wantFound: false,
			wantCalls: []string{"unstaged:a.bin", "staged:a.bin"},
		},
		{
			name: "whitespace only is no diff",
			file: domain.ChangedFile{Path: "a.sh", Status: domain.StatusModified},
			tracker: &mockTracker{
				unstaged: map[string]string{"a.sh": "\n  \n"},
			},
			wantFound: false,
			wantCalls: []string{"unstaged:a.sh", "staged:a.sh"},
		},
		{
			name: "untracked uses synthesized diff",
			file: domain.ChangedFile{Path: "new.py", Status: domain.StatusUntracked},
			tracker: &mockTracker{
				untracked: map[string]string{"new.py": "+print(1)\n"},
			},
			wantDiff:  "+print(1)\n",
			wantFound: true,
			wantCalls: []string{"untracked:new.py"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inspector := NewDiffInspector(tt.tracker, &mockLogger{})

			diff, found := inspector.Inspect(context.Background(), tt.file)

			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantDiff, diff)
			assert.Equal(t, tt.wantCalls, tt.tracker.diffCalls)
		})
	}
}

func newTestFileClassifier(tracker *mockTracker) *FileClassifier {
	return NewFileClassifier(
		NewDiffInspector(tracker, &mockLogger{}),
		NewHeuristicClassifier(domain.DefaultRules().Types),
		&mockLogger{},
	)
}

func TestFileClassifier_ExplicitMarkerRegardlessOfExtension(t *testing.T) {
	tracker := &mockTracker{
		unstaged: map[string]string{"README.md": "+# [commit] feat: add X\n+fix the bug\n"},
	}

	got := newTestFileClassifier(tracker).Classify(context.Background(),
		domain.ChangedFile{Path: "README.md", Status: domain.StatusModified})

	require.IsType(t, domain.Explicit{}, got)
	assert.Equal(t, domain.TypeFeat, got.Type())
	assert.Equal(t, domain.SourceExplicit, got.Source())
	assert.Equal(t, "add X", got.(domain.Explicit).Message)
}

func TestFileClassifier_LastMarkerWins(t *testing.T) {
	tracker := &mockTracker{
		unstaged: map[string]string{"a.sh": "+# [commit] feat: first\n+# [commit] fix: second\n"},
	}

	got := newTestFileClassifier(tracker).Classify(context.Background(),
		domain.ChangedFile{Path: "a.sh", Status: domain.StatusModified})

	assert.Equal(t, domain.Explicit{CommitType: domain.TypeFix, Message: "second"}, got)
}

func TestFileClassifier_Heuristic(t *testing.T) {
	tests := []struct {
		name string
		path string
		diff string
		want domain.CommitType
	}{
		{name: "markdown is docs", path: "README.md", diff: "+words\n", want: domain.TypeDocs},
		{name: "markdown with bug keyword is fix", path: "README.md", diff: "+bug: wrong flag\n", want: domain.TypeFix},
		{name: "no diff uses extension", path: "blob.md", want: domain.TypeDocs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := &mockTracker{unstaged: map[string]string{tt.path: tt.diff}}

			got := newTestFileClassifier(tracker).Classify(context.Background(),
				domain.ChangedFile{Path: tt.path, Status: domain.StatusModified})

			assert.Equal(t, domain.Heuristic{CommitType: tt.want}, got)
			assert.Equal(t, domain.SourceHeuristic, got.Source())
		})
	}
}

func TestFileClassifier_UntrackedMarker(t *testing.T) {
	tracker := &mockTracker{
		untracked: map[string]string{"tools/new.py": "+# [commit] feat: add tool\n"},
	}

	got := newTestFileClassifier(tracker).Classify(context.Background(),
		domain.ChangedFile{Path: "tools/new.py", Status: domain.StatusUntracked})

	assert.Equal(t, domain.Explicit{CommitType: domain.TypeFeat, Message: "add tool"}, got)
}
