package logger

import (
	"bytes"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
)

// Level is the level at which a logger is configured. All messages sent
// to a level which is below the current level are filtered.
type Level uint32

// Level constants.
const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelCritical
	LevelOff
)

var levelStrs = [...]string{"TRC", "DBG", "INF", "WRN", "ERR", "CRT", "OFF"}

// LevelFromString returns a level based on the input string s. If the input
// can't be interpreted as a valid log level, the info level and false is
// returned.
func LevelFromString(s string) (l Level, ok bool) {
	switch strings.ToLower(s) {
	case "trace", "trc":
		return LevelTrace, true
	case "debug", "dbg":
		return LevelDebug, true
	case "info", "inf":
		return LevelInfo, true
	case "warn", "wrn":
		return LevelWarn, true
	case "error", "err":
		return LevelError, true
	case "critical", "crt":
		return LevelCritical, true
	case "off":
		return LevelOff, true
	default:
		return LevelInfo, false
	}
}

// String returns the tag of the level used in log messages, or "OFF" if
// the level will not produce any log output.
func (l Level) String() string {
	if l >= LevelOff {
		return "OFF"
	}
	return levelStrs[l]
}

// Logger is a subsystem logger. Every entry it emits is prefixed with a
// timestamp, its level and the subsystem tag.
type Logger struct {
	level uint32
	tag   string
	b     *Backend
}

// Level returns the current logging level.
func (l *Logger) Level() Level {
	return Level(atomic.LoadUint32(&l.level))
}

// SetLevel changes the logging level to the passed level.
func (l *Logger) SetLevel(level Level) {
	atomic.StoreUint32(&l.level, uint32(level))
}

// Backend returns the backend this logger writes to.
func (l *Logger) Backend() *Backend {
	return l.b
}

// Tracef formats message according to format specifier and writes to log with LevelTrace.
func (l *Logger) Tracef(format string, args ...interface{}) { l.writef(LevelTrace, format, args...) }

// Debugf formats message according to format specifier and writes to log with LevelDebug.
func (l *Logger) Debugf(format string, args ...interface{}) { l.writef(LevelDebug, format, args...) }

// Infof formats message according to format specifier and writes to log with LevelInfo.
func (l *Logger) Infof(format string, args ...interface{}) { l.writef(LevelInfo, format, args...) }

// Warnf formats message according to format specifier and writes to log with LevelWarn.
func (l *Logger) Warnf(format string, args ...interface{}) { l.writef(LevelWarn, format, args...) }

// Errorf formats message according to format specifier and writes to log with LevelError.
func (l *Logger) Errorf(format string, args ...interface{}) { l.writef(LevelError, format, args...) }

// Criticalf formats message according to format specifier and writes to log with LevelCritical.
func (l *Logger) Criticalf(format string, args ...interface{}) {
	l.writef(LevelCritical, format, args...)
}

// Info formats message using the default formats for its operands and writes to log with LevelInfo.
func (l *Logger) Info(args ...interface{}) { l.writef(LevelInfo, "%s", fmt.Sprint(args...)) }

// Warn formats message using the default formats for its operands and writes to log with LevelWarn.
func (l *Logger) Warn(args ...interface{}) { l.writef(LevelWarn, "%s", fmt.Sprint(args...)) }

// Error formats message using the default formats for its operands and writes to log with LevelError.
func (l *Logger) Error(args ...interface{}) { l.writef(LevelError, "%s", fmt.Sprint(args...)) }

func (l *Logger) writef(level Level, format string, args ...interface{}) {
	if level < l.Level() {
		return
	}
	l.write(level, fmt.Sprintf(format, args...))
}

func (l *Logger) write(level Level, message string) {
	if level < l.Level() {
		return
	}
	buf := &bytes.Buffer{}
	buf.WriteString(time.Now().Format("2006-01-02 15:04:05.000"))
	fmt.Fprintf(buf, " [%s] %s: ", level, l.tag)
	if l.b.flag&(LogFlagShortFile|LogFlagLongFile) != 0 {
		buf.WriteString(callsite(l.b.flag))
		buf.WriteString(": ")
	}
	buf.WriteString(message)
	if !strings.HasSuffix(message, "\n") {
		buf.WriteByte('\n')
	}
	l.b.write(level, buf.Bytes())
}

// callsite returns the file and line of the code that called one of the
// Logger's printing methods.
func callsite(flag uint32) string {
	const callDepth = 4
	_, file, line, ok := runtime.Caller(callDepth)
	if !ok {
		return "???:0"
	}
	if flag&LogFlagShortFile != 0 {
		if i := strings.LastIndex(file, "/"); i >= 0 {
			file = file[i+1:]
		}
	}
	return fmt.Sprintf("%s:%d", file, line)
}

// BackendLog is the logging backend used to create all subsystem loggers.
var BackendLog = NewBackend()

var (
	subsystemLoggers      = map[string]*Logger{}
	subsystemLoggersMutex sync.Mutex
)

// RegisterSubSystem returns the logger of the given subsystem, creating it
// on first use.
func RegisterSubSystem(subsystem string) *Logger {
	subsystemLoggersMutex.Lock()
	defer subsystemLoggersMutex.Unlock()
	logger, exists := subsystemLoggers[subsystem]
	if !exists {
		logger = BackendLog.Logger(subsystem)
		subsystemLoggers[subsystem] = logger
	}
	return logger
}

// SetLogLevels sets the log level for all subsystem loggers to the passed
// level.
func SetLogLevels(level Level) {
	subsystemLoggersMutex.Lock()
	defer subsystemLoggersMutex.Unlock()
	for _, logger := range subsystemLoggers {
		logger.SetLevel(level)
	}
}

// ParseAndSetLogLevels parses a level name and applies it to every
// registered subsystem.
func ParseAndSetLogLevels(logLevel string) error {
	level, ok := LevelFromString(logLevel)
	if !ok {
		return errors.Errorf("the specified debug level [%s] is invalid", logLevel)
	}
	SetLogLevels(level)
	return nil
}

// InitLog attaches log file and error log file to the backend log and
// starts it.
func InitLog(logFile, errLogFile string) {
	err := BackendLog.AddLogFile(logFile, LevelTrace)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding log file %s as log rotator for level %s: %s", logFile, LevelTrace, err)
		os.Exit(1)
	}
	err = BackendLog.AddLogFile(errLogFile, LevelWarn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding log file %s as log rotator for level %s: %s", errLogFile, LevelWarn, err)
		os.Exit(1)
	}
	err = BackendLog.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting the logger: %s ", err)
		os.Exit(1)
	}
}
