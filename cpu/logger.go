package cpu

// Logger is the minimal diagnostic sink the CPU writes to: Debugf for
// high-volume per-instruction diagnostics (undefined opcode dispatch),
// Infof for low-volume lifecycle events (reset, interrupt servicing). Any
// logger with these two methods satisfies it; the standard library's
// *log.Logger does not (it has Printf but no Debugf or Infof).
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
}

// nopLogger discards everything; it is the default installed by New so
// that SetLogger is opt-in.
type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
