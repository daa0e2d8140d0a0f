// Package file archives committed entries as NDJSON on disk.
package file

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/crimson-sun/neurallink/internal/engine/compactor"
	"github.com/crimson-sun/neurallink/internal/model"
	"github.com/crimson-sun/neurallink/internal/output"
)

const (
	defaultBufSize    = 64 * 1024
	defaultMaxBackups = 9
)

// Option configures a file Output.
type Option func(*Output)

// WithMaxSize rotates the file before a write would take it past n bytes.
// 0, the default, never rotates.
func WithMaxSize(n int64) Option {
	return func(o *Output) { o.maxSize = n }
}

// WithMaxBackups sets how many rotated files ({path}.1 is the newest) are
// kept. Default: 9.
func WithMaxBackups(n int) Option {
	return func(o *Output) {
		if n > 0 {
			o.maxBackups = n
		}
	}
}

// WithBufSize sets the write buffer size. Default: 64KB.
func WithBufSize(n int) Option {
	return func(o *Output) { o.bufSize = n }
}

// Output appends entries to path, one JSON object per line.
type Output struct {
	path       string
	verbosity  compactor.Verbosity
	maxSize    int64
	maxBackups int
	bufSize    int

	mu   sync.Mutex
	f    *os.File
	w    *bufio.Writer
	size int64 // bytes in the current file, buffered ones included
}

// New opens path for appending, creating it if needed.
func New(path string, verbosity compactor.Verbosity, opts ...Option) (*Output, error) {
	o := &Output{
		path:       path,
		verbosity:  verbosity,
		maxBackups: defaultMaxBackups,
		bufSize:    defaultBufSize,
	}
	for _, opt := range opts {
		opt(o)
	}
	if err := o.open(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Output) Write(_ context.Context, entry model.LogEntry) error {
	line, err := json.Marshal(output.FormatEntry(entry, o.verbosity))
	if err != nil {
		return fmt.Errorf("file output: marshal: %w", err)
	}
	line = append(line, '\n')

	o.mu.Lock()
	defer o.mu.Unlock()

	// An empty file takes the line even when it alone exceeds maxSize.
	if o.maxSize > 0 && o.size > 0 && o.size+int64(len(line)) > o.maxSize {
		if err := o.rotate(); err != nil {
			return fmt.Errorf("file output: rotate %s: %w", o.path, err)
		}
	}
	n, err := o.w.Write(line)
	o.size += int64(n)
	if err != nil {
		return fmt.Errorf("file output: write %s: %w", o.path, err)
	}
	return nil
}

// Flush pushes buffered entries to the file and syncs it.
func (o *Output) Flush() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.w.Flush(); err != nil {
		return fmt.Errorf("file output: flush %s: %w", o.path, err)
	}
	return o.f.Sync()
}

// Close flushes and closes the file.
func (o *Output) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return errors.Join(o.w.Flush(), o.f.Close())
}

func (o *Output) open() error {
	f, err := os.OpenFile(o.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("file output: open %s: %w", o.path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("file output: stat %s: %w", o.path, err)
	}
	o.f, o.w, o.size = f, bufio.NewWriterSize(f, o.bufSize), info.Size()
	return nil
}

func (o *Output) backup(i int) string {
	return fmt.Sprintf("%s.%d", o.path, i)
}

// rotate shifts {path}.i to {path}.i+1, dropping the oldest, moves the
// current file to {path}.1 and reopens path empty.
func (o *Output) rotate() error {
	if err := errors.Join(o.w.Flush(), o.f.Close()); err != nil {
		return err
	}
	if err := os.Remove(o.backup(o.maxBackups)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	for i := o.maxBackups - 1; i >= 1; i-- {
		if err := os.Rename(o.backup(i), o.backup(i+1)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	if err := os.Rename(o.path, o.backup(1)); err != nil {
		return err
	}
	return o.open()
}
