package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	pkgerrors "github.com/matzehuels/noticecheck/pkg/errors"
	"github.com/matzehuels/noticecheck/pkg/notice"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func testCLI() (*CLI, *bytes.Buffer) {
	var out bytes.Buffer
	return &CLI{Logger: newLogger(io.Discard, LogInfo), Out: &out}, &out
}

func execute(c *CLI, args ...string) error {
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func metadata(crates ...string) string {
	var pkgs []string
	for _, name := range crates {
		pkgs = append(pkgs, fmt.Sprintf(`{"id": %q, "name": %q, "version": "1.0.0", "license": "MIT"}`, name, name))
	}
	return `{"packages": [` + strings.Join(pkgs, ",") + `]}`
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitOK},
		{ErrNoticeChanged, ExitChanged},
		{fmt.Errorf("check: %w", ErrNoticeChanged), ExitChanged},
		{context.Canceled, ExitCanceled},
		{errors.New("boom"), ExitError},
	}

	for _, tt := range tests {
		if got := ExitCode(tt.err); got != tt.want {
			t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"changed", fmt.Errorf("check: %w", ErrNoticeChanged), ""},
		{"canceled", fmt.Errorf("collect: %w", context.Canceled), ""},
		{"coded", pkgerrors.New(pkgerrors.ErrCodeInvalidInput, "input path is required"), "input path is required"},
		{"coded with cause", fmt.Errorf("collect: %w", pkgerrors.Wrap(pkgerrors.ErrCodeIO, os.ErrPermission, "read lockfile")), "read lockfile: permission denied"},
		{"plain", errors.New("no license found for shady"), "no license found for shady"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorMessage(tt.err); got != tt.want {
				t.Errorf("ErrorMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCargoCommand(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "Cargo.toml")
	meta := filepath.Join(dir, "metadata.json")
	licenses := filepath.Join(dir, "licenses")
	writeFile(t, manifest, "[package]\n")
	writeFile(t, meta, metadata("anyhow", "serde"))
	writeFile(t, filepath.Join(licenses, "MIT.txt"), "MIT License\n")

	args := []string{"cargo", "--no-cache", "--metadata", meta, "--licenses", licenses, manifest}

	c, out := testCLI()
	if err := execute(c, args...); err != nil {
		t.Fatalf("first run error: %v", err)
	}
	if !strings.Contains(out.String(), "Created notice") {
		t.Errorf("first run output = %q, want created", out.String())
	}
	notice := filepath.Join(dir, "ThirdPartyNotice.txt")
	if _, err := os.Stat(notice); err != nil {
		t.Fatalf("notice not written: %v", err)
	}

	c, out = testCLI()
	if err := execute(c, args...); err != nil {
		t.Fatalf("second run error: %v", err)
	}
	if !strings.Contains(out.String(), "Notice up to date") {
		t.Errorf("second run output = %q, want up to date", out.String())
	}

	writeFile(t, meta, metadata("anyhow", "serde", "tokio"))
	c, out = testCLI()
	err := execute(c, args...)
	if !errors.Is(err, ErrNoticeChanged) {
		t.Fatalf("third run error = %v, want ErrNoticeChanged", err)
	}
	if !strings.Contains(out.String(), "+tokio 1.0.0 (MIT)") {
		t.Errorf("third run output should show the diff, got %q", out.String())
	}

	writeFile(t, meta, metadata("serde"))
	c, _ = testCLI()
	if err := execute(c, append([]string{"cargo", "--no-fail"}, args[1:]...)...); err != nil {
		t.Fatalf("--no-fail run error: %v", err)
	}
}

func TestCheckCommandDetectsNPM(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "node_modules")
	licenses := filepath.Join(dir, "licenses")
	writeFile(t, filepath.Join(root, "left-pad", "package.json"), `{"name": "left-pad", "version": "1.3.0", "license": "WTFPL"}`)
	writeFile(t, filepath.Join(licenses, "WTFPL.txt"), "WTFPL text\n")

	c, _ := testCLI()
	if err := execute(c, "check", "--no-cache", "--name", "NOTICE", "--licenses", licenses, root); err != nil {
		t.Fatalf("check error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "NOTICE.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "left-pad 1.3.0 (WTFPL)") {
		t.Errorf("notice = %q, want left-pad entry", data)
	}
}

func TestCheckCommandErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
	}{
		{"missing argument", []string{"cargo"}},
		{"unsupported input", []string{"check", "--no-cache", dir}},
		{"bad match mode", []string{"npm", "--no-cache", "--match", "exact", dir}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := testCLI()
			err := execute(c, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if ExitCode(err) != ExitError {
				t.Errorf("ExitCode(%v) = %d, want %d", err, ExitCode(err), ExitError)
			}
		})
	}
}

func TestCacheCommands(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)
	t.Setenv(envCacheURL, "")

	c, out := testCLI()
	if err := execute(c, "cache", "path"); err != nil {
		t.Fatalf("cache path error: %v", err)
	}
	dir := filepath.Join(xdg, appName)
	if strings.TrimSpace(out.String()) != dir {
		t.Errorf("cache path = %q, want %q", out.String(), dir)
	}

	writeFile(t, filepath.Join(dir, "ab", "cdef.json"), `{}`)
	c, out = testCLI()
	if err := execute(c, "cache", "clear"); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}
	if !strings.Contains(out.String(), "Cleared 1 cached entries") {
		t.Errorf("cache clear output = %q", out.String())
	}
}

func TestDiffPrinter(t *testing.T) {
	unified := "--- a.txt\n+++ b.txt\n@@ -1,2 +1,2 @@\n keep\n-old\n+new\n"

	var buf bytes.Buffer
	diffPrinter{w: &buf}.PrintDiff(unified, notice.DiffStats{Added: 1, Removed: 1})

	got := buf.String()
	for _, want := range []string{"+1", "-1", "--- a.txt", "@@ -1,2 +1,2 @@", "-old", "+new", " keep"} {
		if !strings.Contains(got, want) {
			t.Errorf("PrintDiff output missing %q:\n%s", want, got)
		}
	}
}

func TestRootCommandVersion(t *testing.T) {
	c, _ := testCLI()
	root := c.RootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"--version"})
	if err := root.Execute(); err != nil {
		t.Fatalf("--version error: %v", err)
	}
	if !strings.HasPrefix(buf.String(), appName+" version ") {
		t.Errorf("--version output = %q", buf.String())
	}
}
