package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"time"
)

// StreamLogger writes one JSON object per line. Logs go to stderr by
// default so command output on stdout stays machine-readable.
type StreamLogger struct {
	Out io.Writer
}

func NewStderrLogger() *StreamLogger {
	return &StreamLogger{Out: os.Stderr}
}

func (l *StreamLogger) log(level, msg string, fields map[string]any) {
	entry := map[string]any{
		"level": level,
		"msg":   msg,
		"time":  time.Now().UTC().Format(time.RFC3339),
	}

	maps.Copy(entry, fields)

	b, _ := json.Marshal(entry)
	fmt.Fprintln(l.Out, string(b))
}

func (l *StreamLogger) Info(msg string, fields map[string]any) {
	l.log("INFO", msg, fields)
}

func (l *StreamLogger) Error(msg string, fields map[string]any) {
	l.log("ERROR", msg, fields)
}
