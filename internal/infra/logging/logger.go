package logging

type Logger interface {
	Info(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

// Noop discards everything. Used by tests and by quiet CLI runs.
type Noop struct{}

func (Noop) Info(string, map[string]any)  {}
func (Noop) Error(string, map[string]any) {}
