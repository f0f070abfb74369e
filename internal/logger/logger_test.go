package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// setupTestLogger creates a temp log file and initializes the logger with it.
// Returns the path to the temp file and a cleanup function.
func setupTestLogger(t *testing.T) (string, func()) {
	t.Helper()
	Reset()

	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test-debug.log")
	if err := Init(logPath); err != nil {
		t.Fatalf("Failed to init logger: %v", err)
	}

	return logPath, func() {
		Reset()
	}
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	return string(content)
}

func TestInit_CreatesFile(t *testing.T) {
	logPath, cleanup := setupTestLogger(t)
	defer cleanup()

	if _, err := os.Stat(logPath); err != nil {
		t.Fatalf("expected log file to exist: %v", err)
	}
	if Path() != logPath {
		t.Errorf("Path() = %q, want %q", Path(), logPath)
	}
	if !strings.Contains(readLog(t, logPath), "Logger initialized") {
		t.Error("expected the init line in the log")
	}
}

func TestInit_MissingDirectory(t *testing.T) {
	Reset()
	defer Reset()

	err := Init(filepath.Join(t.TempDir(), "missing", "kavosh.log"))
	if err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}

func TestLevels(t *testing.T) {
	logPath, cleanup := setupTestLogger(t)
	defer cleanup()

	Debug("debug-hidden-marker")
	Info("info-marker %d", 1)
	Warn("warn-marker %s", "x")
	Error("error-marker")

	content := readLog(t, logPath)
	if strings.Contains(content, "debug-hidden-marker") {
		t.Error("debug messages should be filtered at info level")
	}
	for _, want := range []string{"info-marker 1", "warn-marker x", "error-marker"} {
		if !strings.Contains(content, want) {
			t.Errorf("log should contain %q", want)
		}
	}

	SetDebug(true)
	Debug("debug-visible-marker")
	if !strings.Contains(readLog(t, logPath), "debug-visible-marker") {
		t.Error("debug messages should be written once debug is enabled")
	}
}

func TestComponentLogger(t *testing.T) {
	logPath, cleanup := setupTestLogger(t)
	defer cleanup()

	ComponentLogger("Search").Info("submitted", "seq", 3)

	content := readLog(t, logPath)
	if !strings.Contains(content, "component=Search") {
		t.Errorf("expected component attribute, got:\n%s", content)
	}
	if !strings.Contains(content, "seq=3") {
		t.Errorf("expected seq attribute, got:\n%s", content)
	}
}

func TestWithSession(t *testing.T) {
	logPath, cleanup := setupTestLogger(t)
	defer cleanup()

	WithSession("abc-123").Info("resolved")

	if !strings.Contains(readLog(t, logPath), "sessionID=abc-123") {
		t.Error("expected sessionID attribute")
	}
}

func TestLog_Concurrent(t *testing.T) {
	_, cleanup := setupTestLogger(t)
	defer cleanup()

	done := make(chan bool)

	for i := 0; i < 10; i++ {
		go func(n int) {
			for j := 0; j < 100; j++ {
				Info("concurrent test %d-%d", n, j)
			}
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestReset(t *testing.T) {
	Reset()
	tmpDir := t.TempDir()
	logPath1 := filepath.Join(tmpDir, "log1.log")
	if err := Init(logPath1); err != nil {
		t.Fatalf("Failed to init logger: %v", err)
	}
	Info("message to log1")

	Reset()

	logPath2 := filepath.Join(tmpDir, "log2.log")
	if err := Init(logPath2); err != nil {
		t.Fatalf("Failed to reinit logger: %v", err)
	}
	Info("message to log2")

	content1 := readLog(t, logPath1)
	if !strings.Contains(content1, "message to log1") {
		t.Error("log1 should contain 'message to log1'")
	}
	if strings.Contains(content1, "message to log2") {
		t.Error("log1 should NOT contain 'message to log2'")
	}

	content2 := readLog(t, logPath2)
	if !strings.Contains(content2, "message to log2") {
		t.Error("log2 should contain 'message to log2'")
	}

	Reset()
}

func TestClose_Idempotent(t *testing.T) {
	_, cleanup := setupTestLogger(t)
	defer cleanup()

	Close()
	Close()
	// Logging after close is a silent no-op
	Info("after close")
}

func TestClearLogsAt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kavosh-debug.log")
	for _, name := range []string{
		"kavosh-debug.log",
		"kavosh-debug-2026-01-02T03-04-05.000.log",
		"unrelated.log",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	count, err := clearLogsAt(path)
	if err != nil {
		t.Fatalf("clearLogsAt() error = %v", err)
	}
	if count != 2 {
		t.Errorf("removed %d files, want 2", count)
	}
	if _, err := os.Stat(filepath.Join(dir, "unrelated.log")); err != nil {
		t.Error("unrelated log should be left alone")
	}
}
