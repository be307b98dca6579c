package logging

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"sync"
	"time"
)

// FileLogger appends JSON lines to a log file. Safe for concurrent use;
// the dispatcher worker and the interactive path share one instance.
type FileLogger struct {
	mu   sync.Mutex
	file *os.File
}

func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &FileLogger{file: f}, nil
}

func (l *FileLogger) log(level, msg string, fields map[string]any) {
	entry := map[string]any{
		"level": level,
		"msg":   msg,
		"time":  time.Now().UTC().Format(time.RFC3339),
	}

	maps.Copy(entry, fields)

	b, _ := json.Marshal(entry)

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.file, string(b))
}

func (l *FileLogger) Info(msg string, fields map[string]any) {
	l.log("INFO", msg, fields)
}

func (l *FileLogger) Error(msg string, fields map[string]any) {
	l.log("ERROR", msg, fields)
}

func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}
