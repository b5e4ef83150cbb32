package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const dayLayout = "2006-01-02"

// DailyWriter appends to <dir>/<name>.<YYYY-MM-DD>, switching to a new file
// the first time it is written to on a new day. It implements
// zapcore.WriteSyncer and is safe for concurrent use.
type DailyWriter struct {
	dir  string
	name string
	now  func() time.Time

	mu   sync.Mutex
	day  string
	file *os.File
}

// NewDailyWriter creates dir if needed and returns a writer for name.
func NewDailyWriter(dir, name string) (*DailyWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	return &DailyWriter{dir: dir, name: name, now: time.Now}, nil
}

// Write appends p to the file of the current day.
func (w *DailyWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	day := w.now().Format(dayLayout)
	if w.file == nil || day != w.day {
		if err := w.rotate(day); err != nil {
			return 0, err
		}
	}
	return w.file.Write(p)
}

func (w *DailyWriter) rotate(day string) error {
	if w.file != nil {
		_ = w.file.Close()
		w.file = nil
	}
	path := filepath.Join(w.dir, w.name+"."+day)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	w.file = f
	w.day = day
	return nil
}

// Path returns the file written to today.
func (w *DailyWriter) Path() string {
	return filepath.Join(w.dir, w.name+"."+w.now().Format(dayLayout))
}

// Sync flushes the current file.
func (w *DailyWriter) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	return w.file.Sync()
}

// Close closes the current file. A later Write reopens it.
func (w *DailyWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}
