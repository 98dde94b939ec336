package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/TheGojiOG/pwhashtool/internal/envedit"
)

type recordingClipboard struct {
	text string
}

func (r *recordingClipboard) WriteText(text string) error {
	r.text = text
	return nil
}

type harness struct {
	home   string
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	cb     *recordingClipboard
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	home := t.TempDir()
	t.Setenv("PWHASH_HOME", home)
	t.Setenv("PWHASH_CONFIG", "")
	t.Setenv("PWHASH_ALGO", "")
	t.Setenv("LOG_LEVEL", "")
	return &harness{
		home:   home,
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		cb:     &recordingClipboard{},
	}
}

func (h *harness) run(stdin string, args ...string) int {
	h.stdout.Reset()
	h.stderr.Reset()
	return run(context.Background(), args, deps{
		stdin:     strings.NewReader(stdin),
		stdout:    h.stdout,
		stderr:    h.stderr,
		clipboard: h.cb,
		launcher: envedit.NewWithRunner("linux", func(context.Context, string, ...string) ([]byte, error) {
			return nil, nil
		}),
	})
}

func (h *harness) settingsFile() string {
	return filepath.Join(h.home, ".passwordhashtool", "PasswordHashTool.config.json")
}

func TestHashCopiesAndSavesGeometry(t *testing.T) {
	h := newHarness(t)

	if code := h.run("abc123\nabc123\n"); code != exitOK {
		t.Fatalf("expected exit 0, got %d: %s", code, h.stderr)
	}
	want := "6ca13d52ca70c883e0f0bb101e425a89e8624de51db2d2392593af6a84118090"
	if strings.TrimSpace(h.stdout.String()) != want {
		t.Fatalf("unexpected stdout %q", h.stdout)
	}
	if h.cb.text != want {
		t.Fatalf("expected digest on clipboard, got %q", h.cb.text)
	}
	if !strings.Contains(h.stderr.String(), "Copied to clipboard.") {
		t.Fatalf("expected copy confirmation, got %q", h.stderr)
	}
	if _, err := os.Stat(h.settingsFile()); err != nil {
		t.Fatalf("expected geometry saved on exit: %v", err)
	}
}

func TestHashRejectsMismatch(t *testing.T) {
	h := newHarness(t)

	if code := h.run("abc\nabd\n"); code != exitFail {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(h.stderr.String(), "passwords do not match") {
		t.Fatalf("expected mismatch reason, got %q", h.stderr)
	}
	if h.stdout.Len() != 0 || h.cb.text != "" {
		t.Fatalf("nothing should be output on mismatch")
	}
}

func TestHashRejectsEmpty(t *testing.T) {
	h := newHarness(t)

	if code := h.run("\n\n", "hash"); code != exitFail {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(h.stderr.String(), "password not entered") {
		t.Fatalf("expected not-entered reason, got %q", h.stderr)
	}
}

func TestHashNoClipboardWithAlgorithm(t *testing.T) {
	h := newHarness(t)

	if code := h.run("abc\nabc\n", "-no-clipboard", "-algo", "sha3-256"); code != exitOK {
		t.Fatalf("expected exit 0, got %d: %s", code, h.stderr)
	}
	want := "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532"
	if strings.TrimSpace(h.stdout.String()) != want {
		t.Fatalf("unexpected stdout %q", h.stdout)
	}
	if h.cb.text != "" {
		t.Fatalf("clipboard must not be written with -no-clipboard")
	}
}

func TestUnknownAlgorithmIsUsageError(t *testing.T) {
	h := newHarness(t)

	if code := h.run("", "-algo", "md5"); code != exitUsage {
		t.Fatalf("expected exit 2, got %d", code)
	}
}

func TestWindowSetShowReset(t *testing.T) {
	h := newHarness(t)

	if code := h.run("", "window", "set", "-w", "800", "-h", "600", "-x", "-10", "-y", "20"); code != exitOK {
		t.Fatalf("set failed with %d: %s", code, h.stderr)
	}
	data, err := os.ReadFile(h.settingsFile())
	if err != nil {
		t.Fatalf("failed to read settings: %v", err)
	}
	if !strings.Contains(string(data), `"x": -10`) || !strings.Contains(string(data), `"w": 800`) {
		t.Fatalf("unexpected settings file %s", data)
	}

	if code := h.run("", "window", "show"); code != exitOK {
		t.Fatalf("show failed with %d", code)
	}
	if !strings.HasPrefix(h.stdout.String(), "800x600-10+20 (loaded)") {
		t.Fatalf("unexpected show output %q", h.stdout)
	}

	if code := h.run("", "window", "reset"); code != exitOK {
		t.Fatalf("reset failed with %d", code)
	}
	if _, err := os.Stat(h.settingsFile()); !os.IsNotExist(err) {
		t.Fatalf("expected settings removed, got %v", err)
	}
}

func TestWindowSetValidation(t *testing.T) {
	h := newHarness(t)

	if code := h.run("", "window", "set", "-w", "0"); code != exitUsage {
		t.Fatalf("expected exit 2 for zero width, got %d", code)
	}
	if code := h.run("", "window", "set", "-x", "5"); code != exitUsage {
		t.Fatalf("expected exit 2 for lone -x, got %d", code)
	}
	if _, err := os.Stat(h.settingsFile()); !os.IsNotExist(err) {
		t.Fatalf("invalid geometry must not be written, got %v", err)
	}
}

func TestEnvUnsupportedPlatform(t *testing.T) {
	h := newHarness(t)

	if code := h.run("", "env"); code != exitFail {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(h.stderr.String(), "Windows") {
		t.Fatalf("expected platform diagnostic, got %q", h.stderr)
	}
}

func TestReadmeVersionAndUnknown(t *testing.T) {
	h := newHarness(t)

	if code := h.run("", "readme"); code != exitOK || !strings.Contains(h.stdout.String(), "PASSWORD_HASH") {
		t.Fatalf("readme failed: %d %q", code, h.stdout)
	}
	if code := h.run("", "-version"); code != exitOK || !strings.Contains(h.stdout.String(), "Version: dev") {
		t.Fatalf("version failed: %d %q", code, h.stdout)
	}
	if code := h.run("", "frobnicate"); code != exitUsage {
		t.Fatalf("expected exit 2 for unknown command, got %d", code)
	}
}
