package knowledge

import (
	"context"
	"errors"

	"github.com/MyCarrier-DevOps/smart-commit/internal/domain"
)

// Logger defines the logging interface for mirror failures.
type Logger interface {
	Warn(ctx context.Context, msg string, fields map[string]interface{})
}

// MultiSink writes to a primary sink and best-effort mirrors.
// Only primary failures are returned; mirror failures are logged.
type MultiSink struct {
	primary domain.KnowledgeSink
	mirrors []domain.KnowledgeSink
	logger  Logger
}

// NewMultiSink creates a MultiSink.
func NewMultiSink(log Logger, primary domain.KnowledgeSink, mirrors ...domain.KnowledgeSink) *MultiSink {
	return &MultiSink{primary: primary, mirrors: mirrors, logger: log}
}

// Append writes record to the primary sink, then to each mirror.
func (m *MultiSink) Append(ctx context.Context, record domain.CommitRecord) error {
	if err := m.primary.Append(ctx, record); err != nil {
		return err
	}
	for i, mirror := range m.mirrors {
		if err := mirror.Append(ctx, record); err != nil {
			m.logger.Warn(ctx, "knowledge mirror append failed", map[string]interface{}{
				"mirror": i,
				"header": record.Message,
				"error":  err.Error(),
			})
		}
	}
	return nil
}

// Close closes every sink and joins their errors.
func (m *MultiSink) Close() error {
	errs := []error{m.primary.Close()}
	for _, mirror := range m.mirrors {
		errs = append(errs, mirror.Close())
	}
	return errors.Join(errs...)
}
