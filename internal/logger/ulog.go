package logger

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/fhuszti/rated-posters-ms-go/internal/api_context"
	"gopkg.in/natefinch/lumberjack.v2"
)

const logFileName = "rated-posters.log"

var (
	std *slog.Logger

	fileMu sync.Mutex
	file   io.Closer
)

// --- handler that appends the request id as an attribute ---

type requestAttrHandler struct{ h slog.Handler }

func (u requestAttrHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return u.h.Enabled(ctx, lvl)
}

func (u requestAttrHandler) Handle(ctx context.Context, r slog.Record) error {
	if rid, ok := api_context.RequestIDFromContext(ctx); ok {
		r.AddAttrs(slog.String("rid", rid.String()))
	} else {
		r.AddAttrs(slog.String("rid", "system"))
	}
	return u.h.Handle(ctx, r)
}

func (u requestAttrHandler) WithAttrs(a []slog.Attr) slog.Handler {
	return requestAttrHandler{h: u.h.WithAttrs(a)}
}
func (u requestAttrHandler) WithGroup(n string) slog.Handler {
	return requestAttrHandler{h: u.h.WithGroup(n)}
}

// --- public API ---

// Options controls the handler built by New.
type Options struct {
	Format    string // json|text
	Level     slog.Leveler
	AddSource bool
}

// New builds a service logger writing to w.
func New(w io.Writer, o Options) *slog.Logger {
	opts := &slog.HandlerOptions{Level: o.Level, AddSource: o.AddSource}

	var base slog.Handler
	if strings.ToLower(o.Format) == "text" {
		base = slog.NewTextHandler(w, opts)
	} else {
		base = slog.NewJSONHandler(w, opts)
	}
	return slog.New(requestAttrHandler{h: base}).With("svc", "rated-posters-ms")
}

// Init configures the process logger, installs it as the slog default and
// returns it so it can be handed to the use cases.
// ENV:
//
//	LOG_FORMAT        json|text (default: json)
//	LOG_LEVEL         debug|info|warn|error (default: info)
//	LOG_SOURCE        true|false (default: false)
//	LOG_DIRECTORY     also write to a rotating file in this directory
//	LOG_MAX_AGE_DAYS  days of rotated files to keep (default: 3)
func Init() *slog.Logger {
	var w io.Writer = os.Stdout
	if dir := getEnv("LOG_DIRECTORY", ""); dir != "" {
		maxAge, err := strconv.Atoi(getEnv("LOG_MAX_AGE_DAYS", "3"))
		if err != nil || maxAge <= 0 {
			maxAge = 3
		}
		lj := &lumberjack.Logger{
			Filename: filepath.Join(dir, logFileName),
			MaxSize:  20, // MB
			MaxAge:   maxAge,
		}
		fileMu.Lock()
		file = lj
		fileMu.Unlock()
		w = io.MultiWriter(os.Stdout, lj)
	}

	std = New(w, Options{
		Format:    getEnv("LOG_FORMAT", "json"),
		Level:     parseLevel(getEnv("LOG_LEVEL", "info")),
		AddSource: parseBool(getEnv("LOG_SOURCE", "false")),
	})
	slog.SetDefault(std)

	// Keep legacy log.Printf visible (no ctx → no rid).
	log.SetFlags(0)
	log.SetOutput(slog.NewLogLogger(std.Handler(), slog.LevelInfo).Writer())

	return std
}

// Close flushes and closes the log file, if any.
func Close() error {
	fileMu.Lock()
	defer fileMu.Unlock()
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	return err
}

// --- small helpers ---

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseLevel(s string) slog.Leveler {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseBool(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}

func activeLogger() *slog.Logger {
	if std != nil {
		return std
	}
	return slog.Default()
}

// --- convenience wrappers ---

func Info(ctx context.Context, msg string, attrs ...any) {
	activeLogger().InfoContext(ctx, msg, attrs...)
}
func Warn(ctx context.Context, msg string, attrs ...any) {
	activeLogger().WarnContext(ctx, msg, attrs...)
}
func Error(ctx context.Context, msg string, attrs ...any) {
	activeLogger().ErrorContext(ctx, msg, attrs...)
}
func Debug(ctx context.Context, msg string, attrs ...any) {
	activeLogger().DebugContext(ctx, msg, attrs...)
}

func Infof(ctx context.Context, format string, a ...any) {
	activeLogger().InfoContext(ctx, fmt.Sprintf(format, a...))
}
func Errorf(ctx context.Context, format string, a ...any) {
	activeLogger().ErrorContext(ctx, fmt.Sprintf(format, a...))
}
func Warnf(ctx context.Context, format string, a ...any) {
	activeLogger().WarnContext(ctx, fmt.Sprintf(format, a...))
}
func Debugf(ctx context.Context, format string, a ...any) {
	activeLogger().DebugContext(ctx, fmt.Sprintf(format, a...))
}
