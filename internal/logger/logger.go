package logger

type Logger interface {
	Logf(format string, args ...interface{})
	Log(msg string)
}

// Nop discards everything. Used when diagnostics are disabled.
type Nop struct{}

func (Nop) Logf(format string, args ...interface{}) {}
func (Nop) Log(msg string)                          {}
