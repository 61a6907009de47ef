package knowledge

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/smart-commit/internal/domain"
)

// recordingSink implements domain.KnowledgeSink for testing.
type recordingSink struct {
	records   []domain.CommitRecord
	appendErr error
	closeErr  error
	closed    bool
}

func (s *recordingSink) Append(_ context.Context, record domain.CommitRecord) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.records = append(s.records, record)
	return nil
}

func (s *recordingSink) Close() error {
	s.closed = true
	return s.closeErr
}

// warnRecorder implements Logger for testing.
type warnRecorder struct {
	messages []string
}

func (w *warnRecorder) Warn(_ context.Context, msg string, _ map[string]interface{}) {
	w.messages = append(w.messages, msg)
}

func TestMultiSink_Append_WritesAll(t *testing.T) {
	primary, mirror := &recordingSink{}, &recordingSink{}
	sink := NewMultiSink(&warnRecorder{}, primary, mirror)

	require.NoError(t, sink.Append(context.Background(), sampleRecord()))

	assert.Len(t, primary.records, 1)
	assert.Len(t, mirror.records, 1)
}

func TestMultiSink_Append_PrimaryFailureSkipsMirrors(t *testing.T) {
	primary := &recordingSink{appendErr: errors.New("disk full")}
	mirror := &recordingSink{}
	sink := NewMultiSink(&warnRecorder{}, primary, mirror)

	err := sink.Append(context.Background(), sampleRecord())

	assert.EqualError(t, err, "disk full")
	assert.Empty(t, mirror.records)
}

func TestMultiSink_Append_MirrorFailureIsLogged(t *testing.T) {
	primary := &recordingSink{}
	mirror := &recordingSink{appendErr: errors.New("unreachable")}
	log := &warnRecorder{}
	sink := NewMultiSink(log, primary, mirror)

	err := sink.Append(context.Background(), sampleRecord())

	require.NoError(t, err)
	assert.Len(t, primary.records, 1)
	assert.Equal(t, []string{"knowledge mirror append failed"}, log.messages)
}

func TestMultiSink_Close_JoinsErrors(t *testing.T) {
	primary := &recordingSink{}
	mirror := &recordingSink{closeErr: errors.New("close failed")}
	sink := NewMultiSink(&warnRecorder{}, primary, mirror)

	err := sink.Close()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "close failed")
	assert.True(t, primary.closed)
	assert.True(t, mirror.closed)
}
