package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func resetLoggers() {
	loggersMu.Lock()
	loggers = make(map[string]*logrus.Entry)
	loggersMu.Unlock()
}

func TestNewLogger(t *testing.T) {
	t.Cleanup(resetLoggers)

	logger := NewLogger("test-component")
	if logger == nil {
		t.Fatal("Expected logger to be created")
	}

	if logger.Data["component"] != "test-component" {
		t.Errorf("Expected component to be 'test-component', got %v", logger.Data["component"])
	}

	if again := NewLogger("test-component"); again != logger {
		t.Error("Expected NewLogger to return the cached entry for the same component")
	}
}

func TestLoggerOutput(t *testing.T) {
	var buf bytes.Buffer

	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&TextFormatter{Config: FormatConfig{}})

	entry := logger.WithField("component", "test")
	entry.WithField("id", "S0").Info("Test message")

	output := buf.String()

	for _, want := range []string{"[INFO]", "test", "Test message", "id=S0"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q, got: %s", want, output)
		}
	}
}

func TestTextFormatter(t *testing.T) {
	tests := []struct {
		name    string
		config  FormatConfig
		entry   *logrus.Entry
		want    []string
		notWant []string
	}{
		{
			name:   "default format",
			config: FormatConfig{},
			entry: &logrus.Entry{
				Level:   logrus.InfoLevel,
				Message: "drag started",
				Data:    logrus.Fields{"component": "dnd"},
			},
			want: []string{"[INFO]", "dnd", "drag started"},
		},
		{
			name:   "disabled component",
			config: FormatConfig{DisableComponent: true},
			entry: &logrus.Entry{
				Level:   logrus.WarnLevel,
				Message: "warning message",
				Data:    logrus.Fields{"component": "pointer"},
			},
			want:    []string{"[WARN]", "warning message"},
			notWant: []string{"pointer"},
		},
		{
			name:   "sorted fields",
			config: FormatConfig{DisableTimestamp: true},
			entry: &logrus.Entry{
				Level:   logrus.DebugLevel,
				Message: "hover",
				Data:    logrus.Fields{"component": "dnd", "targets": 2, "action": "HOVER"},
			},
			want: []string{"[DEBUG]", "action=HOVER targets=2"},
		},
		{
			name:   "caller information with function name",
			config: FormatConfig{},
			entry: func() *logrus.Entry {
				logger := logrus.New()
				logger.SetReportCaller(true)
				return &logrus.Entry{
					Logger:  logger,
					Level:   logrus.InfoLevel,
					Message: "test message with caller",
					Data:    logrus.Fields{"component": "test-component"},
					Caller: &runtime.Frame{
						File:     "/path/to/file.go",
						Line:     42,
						Function: "github.com/example/package.TestFunction",
					},
				}
			}(),
			want: []string{"[INFO]", "test message with caller", "[file.go:42 package.TestFunction]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := &TextFormatter{Config: tt.config}
			tt.entry.Time = tt.entry.Time.UTC()

			output, err := formatter.Format(tt.entry)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			outputStr := string(output)
			for _, want := range tt.want {
				if !strings.Contains(outputStr, want) {
					t.Errorf("Expected output to contain '%s', got: %s", want, outputStr)
				}
			}
			for _, notWant := range tt.notWant {
				if strings.Contains(outputStr, notWant) {
					t.Errorf("Expected output NOT to contain '%s', got: %s", notWant, outputStr)
				}
			}
		})
	}
}

func TestEnvironmentVariables(t *testing.T) {
	t.Cleanup(resetLoggers)
	t.Setenv("DND_LOG_LEVEL", "debug")
	t.Setenv("DND_LOG_CALLER", "true")

	logger := NewLogger("env-test")

	if logger.Logger.Level != logrus.DebugLevel {
		t.Errorf("Expected debug level from env var, got %v", logger.Logger.Level)
	}
	if !logger.Logger.ReportCaller {
		t.Error("Expected caller reporting to be enabled from env var")
	}
}

func TestConfiguredFileSinkAndJSON(t *testing.T) {
	t.Setenv("DND_LOG_LEVEL", "")
	logPath := filepath.Join(t.TempDir(), "logs", "dnd.log")

	logger := newLoggerWithConfig(Config{
		Level:  "warn",
		File:   FileSinkConfig{Enabled: true, Path: logPath},
		Format: FormatConfig{Preset: "json", StructuredToStderr: "never"},
	})

	if logger.GetLevel() != logrus.WarnLevel {
		t.Errorf("Expected warn level from config, got %v", logger.GetLevel())
	}
	if _, ok := logger.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("Expected JSON formatter, got %T", logger.Formatter)
	}

	logger.WithField("component", "dnd").Warn("written to file")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Expected log file to exist: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"written to file"`) {
		t.Errorf("Expected JSON line in log file, got: %s", data)
	}
}

func TestShouldLogToStderr(t *testing.T) {
	if !shouldLogToStderr("always", logrus.InfoLevel) {
		t.Error("always should log to stderr")
	}
	if shouldLogToStderr("never", logrus.DebugLevel) {
		t.Error("never should not log to stderr")
	}
	if !shouldLogToStderr("auto", logrus.DebugLevel) {
		t.Error("auto should log to stderr at debug level")
	}
}

func TestFileSinkDefaultsToStateDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("DND_HOME", home)

	got := FileSinkConfig{Enabled: true}.FilePath()
	if want := filepath.Join(home, "state", "dndctl.log"); got != want {
		t.Errorf("FilePath() = %q, want %q", got, want)
	}

	explicit := filepath.Join(home, "elsewhere.log")
	if got := (FileSinkConfig{Path: explicit}).FilePath(); got != explicit {
		t.Errorf("FilePath() = %q, want %q", got, explicit)
	}
}

func TestValidateRejectsUnknownModes(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"zero", Config{}, false},
		{"json", Config{Format: FormatConfig{Preset: "json", StructuredToStderr: "never"}}, false},
		{"bad preset", Config{Format: FormatConfig{Preset: "pretty"}}, true},
		{"bad stderr mode", Config{Format: FormatConfig{StructuredToStderr: "sometimes"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
