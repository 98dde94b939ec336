// Package envedit opens the operating system's environment-variable editor.
// Only Windows has a dialog that can be launched directly.
package envedit

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// ErrUnsupported is returned on every platform other than Windows.
var ErrUnsupported = errors.New("the environment variable editor can only be opened on Windows; follow your operating system's instructions for setting environment variables")

const (
	windowsLauncher = "rundll32.exe"
	windowsDialog   = "sysdm.cpl,EditEnvironmentVariables"

	// DefaultTimeout bounds how long the launch may block.
	DefaultTimeout = 30 * time.Second
)

// Runner executes an external command and returns its combined output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs the command with os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Launcher opens the editor for a given OS.
type Launcher struct {
	goos string
	run  Runner
}

// New returns a launcher for the running OS.
func New() *Launcher {
	return &Launcher{goos: runtime.GOOS, run: ExecRunner}
}

// NewWithRunner returns a launcher for goos that executes through run.
func NewWithRunner(goos string, run Runner) *Launcher {
	return &Launcher{goos: goos, run: run}
}

// Supported reports whether the editor can be opened on this OS.
func (l *Launcher) Supported() bool {
	return l.goos == "windows"
}

// Open launches the dialog and waits for the launcher to return.
func (l *Launcher) Open(ctx context.Context) error {
	if !l.Supported() {
		return ErrUnsupported
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultTimeout)
		defer cancel()
	}

	out, err := l.run(ctx, windowsLauncher, windowsDialog)
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("failed to open environment variable dialog: %w: %s", err, msg)
		}
		return fmt.Errorf("failed to open environment variable dialog: %w", err)
	}
	return nil
}
