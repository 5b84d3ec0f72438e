package cli

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("resolved licenses") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("cache hit") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("cache hit") }, true},
		{"warn at info level", log.InfoLevel, func(l *log.Logger) { l.Warn("redis unavailable") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))

			if gotLog := buf.Len() > 0; gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestNewLoggerTimestamp(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, log.InfoLevel).Info("collected dependencies")

	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `).MatchString(buf.String()) {
		t.Errorf("output %q should start with an HH:MM:SS.cc timestamp", buf.String())
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))

	time.Sleep(5 * time.Millisecond)
	prog.done("Checked ThirdPartyNotice.txt")

	out := strings.TrimSpace(buf.String())
	re := regexp.MustCompile(`Checked ThirdPartyNotice\.txt \((\d+(\.\d+)?)(ms|s)\)$`)
	if !re.MatchString(out) {
		t.Errorf("done() output = %q, want message followed by elapsed time", out)
	}
}

func TestProgressDoneFiltered(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.WarnLevel)).done("Checked ThirdPartyNotice.txt")

	if buf.Len() != 0 {
		t.Errorf("done() wrote %q at warn level, want nothing", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)

	ctx := withLogger(context.Background(), custom)
	if got := loggerFromContext(ctx); got != custom {
		t.Error("loggerFromContext should return the attached logger")
	}

	loggerFromContext(ctx).Info("checked notice")
	if buf.Len() == 0 {
		t.Error("attached logger should write to its buffer")
	}

	if got := loggerFromContext(context.Background()); got != log.Default() {
		t.Error("loggerFromContext without a logger should return log.Default()")
	}
}

func TestLoggerFromContextNil(t *testing.T) {
	var ctx context.Context

	if got := loggerFromContext(ctx); got != log.Default() {
		t.Error("loggerFromContext(nil) should return log.Default()")
	}

	custom := newLogger(&bytes.Buffer{}, log.InfoLevel)
	attached := withLogger(ctx, custom)
	if attached == nil {
		t.Fatal("withLogger(nil) returned a nil context")
	}
	if got := loggerFromContext(attached); got != custom {
		t.Error("withLogger(nil) should still attach the logger")
	}
}
