// Package knowledge provides sinks for the append-only commit knowledge log.
package knowledge

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/MyCarrier-DevOps/smart-commit/internal/domain"
)

// DefaultPath is the knowledge log location relative to the worktree root.
const DefaultPath = ".agent/logs/knowledge_base.jsonl"

// FileSink appends one JSON object per line to a file.
type FileSink struct {
	path   string
	mu     sync.Mutex
	closed bool
}

// NewFileSink creates a FileSink writing to path. The file and its directory
// are created on first append.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Path returns the log file path.
func (s *FileSink) Path() string {
	return s.path
}

// Append writes record as a single line.
func (s *FileSink) Append(_ context.Context, record domain.CommitRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrSinkClosed
	}

	line, err := encodeLine(record)
	if err != nil {
		return fmt.Errorf("failed to encode commit record: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create knowledge log directory: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open knowledge log: %w", err)
	}
	if err := repairTail(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to repair knowledge log tail: %w", err)
	}
	if _, err := f.Write(line); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to append to knowledge log: %w", err)
	}
	return f.Close()
}

// Close marks the sink closed. Later appends return domain.ErrSinkClosed.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// tailChunk is the read size used while scanning back for the last newline.
const tailChunk = 4096

// repairTail makes sure the next append starts on a fresh line.
// A final line without its newline is the remains of an interrupted append:
// it is completed when it holds a whole record and cut off otherwise.
func repairTail(f *os.File) error {
	info, err := f.Stat()
	if err != nil {
		return err
	}
	size := info.Size()
	if size == 0 {
		return nil
	}

	last := make([]byte, 1)
	if _, err := f.ReadAt(last, size-1); err != nil {
		return err
	}
	if last[0] == '\n' {
		return nil
	}

	start, err := lastLineStart(f, size)
	if err != nil {
		return err
	}
	tail := make([]byte, size-start)
	if _, err := f.ReadAt(tail, start); err != nil {
		return err
	}

	var record domain.CommitRecord
	if json.Unmarshal(bytes.TrimSpace(tail), &record) == nil {
		_, err = f.Write([]byte{'\n'})
		return err
	}
	return f.Truncate(start)
}

// lastLineStart returns the offset just past the last newline before size,
// or 0 when the file holds a single line.
func lastLineStart(f *os.File, size int64) (int64, error) {
	end := size
	buf := make([]byte, tailChunk)
	for end > 0 {
		n := int64(tailChunk)
		if end < n {
			n = end
		}
		chunk := buf[:n]
		if _, err := f.ReadAt(chunk, end-n); err != nil {
			return 0, err
		}
		if i := bytes.LastIndexByte(chunk, '\n'); i >= 0 {
			return end - n + int64(i) + 1, nil
		}
		end -= n
	}
	return 0, nil
}

func encodeLine(record domain.CommitRecord) ([]byte, error) {
	if record.Files == nil {
		record.Files = []string{}
	}
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(record); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadRecords reads every record in the log at path. A missing file yields no
// records. An unparsable final line is ignored as the remains of an interrupted
// append; unparsable lines before it are an error.
func ReadRecords(path string) ([]domain.CommitRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read knowledge log: %w", err)
	}

	var lines [][]byte
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		lines = append(lines, append([]byte(nil), line...))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan knowledge log: %w", err)
	}

	records := make([]domain.CommitRecord, 0, len(lines))
	for i, line := range lines {
		var record domain.CommitRecord
		if err := json.Unmarshal(line, &record); err != nil {
			if i == len(lines)-1 {
				break
			}
			return nil, fmt.Errorf("corrupt knowledge log record %d: %w", i+1, err)
		}
		records = append(records, record)
	}
	return records, nil
}
