// Package console writes human readable log lines for the quizc CLI,
// optionally mirrored into a size-rotated file.
package console

import (
	"context"
	"io"
	"maps"
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/goliatone/go-quizz/internal/logging"
	"github.com/goliatone/go-quizz/pkg/interfaces"
)

// Options configures the console logger provider.
type Options struct {
	// Writer defaults to os.Stderr so command output on stdout stays clean.
	Writer     io.Writer
	TimeFunc   func() time.Time
	TimeFormat string
	MinLevel   *Level
	File       *FileOptions
}

// FileOptions configures the rotating log file.
type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// RotatingWriter returns the lumberjack writer for the options.
func (o FileOptions) RotatingWriter() io.WriteCloser {
	maxSize := o.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 10
	}
	return &lumberjack.Logger{
		Filename:   o.Path,
		MaxSize:    maxSize,
		MaxBackups: o.MaxBackups,
		MaxAge:     o.MaxAgeDays,
		Compress:   o.Compress,
	}
}

// sink serialises writes from every logger handed out by one provider.
type sink struct {
	mu       sync.Mutex
	out      io.Writer
	now      func() time.Time
	layout   string
	minLevel Level
}

func (s *sink) write(e entry) {
	line := e.encode(s.layout)
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = io.WriteString(s.out, line)
}

type provider struct {
	sink *sink
}

// NewProvider constructs a console logger provider writing entries at or
// above INFO to stderr unless Options say otherwise.
func NewProvider(opts Options) interfaces.LoggerProvider {
	s := &sink{
		out:      opts.Writer,
		now:      opts.TimeFunc,
		layout:   opts.TimeFormat,
		minLevel: LevelInfo,
	}
	if s.out == nil {
		s.out = os.Stderr
	}
	if opts.File != nil && strings.TrimSpace(opts.File.Path) != "" {
		s.out = io.MultiWriter(s.out, opts.File.RotatingWriter())
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.layout == "" {
		s.layout = DefaultTimeFormat
	}
	if opts.MinLevel != nil {
		s.minLevel = *opts.MinLevel
	}
	return &provider{sink: s}
}

func (p *provider) GetLogger(name string) interfaces.Logger {
	return &consoleLogger{sink: p.sink, name: strings.TrimSpace(name)}
}

type consoleLogger struct {
	sink   *sink
	name   string
	fields map[string]any
	ctx    context.Context
}

var (
	_ interfaces.Logger       = (*consoleLogger)(nil)
	_ interfaces.FieldsLogger = (*consoleLogger)(nil)
)

func (l *consoleLogger) Trace(msg string, args ...any) { l.log(LevelTrace, msg, args) }
func (l *consoleLogger) Debug(msg string, args ...any) { l.log(LevelDebug, msg, args) }
func (l *consoleLogger) Info(msg string, args ...any)  { l.log(LevelInfo, msg, args) }
func (l *consoleLogger) Warn(msg string, args ...any)  { l.log(LevelWarn, msg, args) }
func (l *consoleLogger) Error(msg string, args ...any) { l.log(LevelError, msg, args) }
func (l *consoleLogger) Fatal(msg string, args ...any) { l.log(LevelFatal, msg, args) }

func (l *consoleLogger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	next := *l
	next.fields = make(map[string]any, len(l.fields)+len(fields))
	maps.Copy(next.fields, l.fields)
	maps.Copy(next.fields, fields)
	return &next
}

func (l *consoleLogger) WithContext(ctx context.Context) interfaces.Logger {
	next := *l
	next.ctx = ctx
	return &next
}

func (l *consoleLogger) log(level Level, msg string, args []any) {
	if l.sink == nil || level < l.sink.minLevel {
		return
	}

	fields := make(map[string]any, len(l.fields))
	maps.Copy(fields, l.fields)
	maps.Copy(fields, logging.ContextFields(l.ctx))
	maps.Copy(fields, pairsToFields(args))

	l.sink.write(entry{
		time:   l.sink.now().UTC(),
		level:  level,
		logger: l.name,
		msg:    msg,
		fields: fields,
	})
}
