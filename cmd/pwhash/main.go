package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/TheGojiOG/pwhashtool/internal/clipboard"
	"github.com/TheGojiOG/pwhashtool/internal/config"
	"github.com/TheGojiOG/pwhashtool/internal/digest"
	"github.com/TheGojiOG/pwhashtool/internal/envedit"
	"github.com/TheGojiOG/pwhashtool/internal/hashtool"
	"github.com/TheGojiOG/pwhashtool/internal/logging"
	"github.com/TheGojiOG/pwhashtool/internal/notify"
	"github.com/TheGojiOG/pwhashtool/internal/prompt"
	"github.com/TheGojiOG/pwhashtool/internal/settings"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

// deps are the collaborators main wires up; tests replace them.
type deps struct {
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
	clipboard clipboard.Writer
	notifier  notify.Notifier
	launcher  *envedit.Launcher
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	d := deps{
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		launcher: envedit.New(),
	}
	code := run(ctx, os.Args[1:], d)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, d deps) int {
	fs := flag.NewFlagSet("pwhash", flag.ContinueOnError)
	fs.SetOutput(d.stderr)

	var (
		configPath  string
		algo        string
		noClipboard bool
		showQR      bool
		withNotify  bool
		showVer     bool
	)
	fs.StringVar(&configPath, "config", "", "path to options file (default <home>/.passwordhashtool/config.yaml)")
	fs.StringVar(&algo, "algo", "", "digest algorithm: "+strings.Join(digest.Algorithms(), " | "))
	fs.BoolVar(&noClipboard, "no-clipboard", false, "print the hash without copying it")
	fs.BoolVar(&showQR, "qr", false, "also print the hash as a QR code")
	fs.BoolVar(&withNotify, "notify", false, "show a desktop notification after copying")
	fs.BoolVar(&showVer, "version", false, "show build version and date")
	fs.Usage = func() {
		fmt.Fprintln(d.stderr, "usage: pwhash [flags] [hash | env | window show|reset|set | readme]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if showVer {
		fmt.Fprintf(d.stdout, "PasswordHashTool\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return exitOK
	}

	opts, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(d.stderr, "Failed to load configuration: %v\n", err)
		return exitFail
	}
	if algo != "" {
		opts.Digest.Algorithm = strings.ToLower(algo)
	}
	if noClipboard {
		opts.Clipboard.Enabled = false
	}
	if withNotify {
		opts.Notify.Enabled = true
	}
	if err := opts.Validate(); err != nil {
		fmt.Fprintf(d.stderr, "Invalid options: %v\n", err)
		return exitUsage
	}

	paths := opts.Paths()
	if err := setupLogging(opts, paths); err != nil {
		fmt.Fprintf(d.stderr, "Logging to stderr instead: %v\n", err)
	}
	defer logging.Close()
	logger := logging.L()

	store := settings.NewStore(paths, logger)
	geometry, status := store.LoadStatus()
	logger.Debug("geometry restored", "geometry", geometry.String(), "status", status.String())

	cmd, rest := "hash", fs.Args()
	if len(rest) > 0 {
		cmd, rest = rest[0], rest[1:]
	}

	persist := true
	code := exitOK
	switch cmd {
	case "hash":
		code = runHash(ctx, opts, showQR, d)
	case "env":
		code = runEnv(ctx, d)
	case "window":
		code, geometry, persist = runWindow(rest, store, geometry, status, d)
	case "readme", "help":
		fmt.Fprint(d.stdout, readme)
	default:
		fmt.Fprintf(d.stderr, "Unknown command %q. Run 'pwhash help' for usage.\n", cmd)
		return exitUsage
	}

	if persist {
		store.Save(geometry)
	}
	return code
}

func setupLogging(opts *config.Options, paths config.Paths) error {
	if strings.TrimSpace(opts.Logging.File) == "" {
		opts.Logging.File = paths.LogFile
	}
	_, err := logging.Init(opts.Logging)
	return err
}

func runHash(ctx context.Context, opts *config.Options, showQR bool, d deps) int {
	digester, err := digest.New(opts.Digest.Algorithm)
	if err != nil {
		fmt.Fprintln(d.stderr, err)
		return exitUsage
	}

	var cb clipboard.Writer
	if opts.Clipboard.Enabled {
		cb = d.clipboard
		if cb == nil {
			cb = clipboard.System()
		}
	}
	var n notify.Notifier = notify.Nop{}
	if opts.Notify.Enabled {
		n = d.notifier
		if n == nil {
			n = notify.NewDBus(opts.App.Name, opts.Notify.Icon, opts.Notify.Timeout)
		}
	}

	pw1, pw2, err := prompt.New(d.stdin, d.stderr).ReadPair()
	if err != nil {
		fmt.Fprintf(d.stderr, "Failed to read password: %v\n", err)
		return exitFail
	}

	gen := hashtool.New(digester, cb, n, logging.L())
	res, err := gen.Generate(ctx, pw1, pw2)
	if !res.OK {
		fmt.Fprintln(d.stderr, res.Reason)
		return exitFail
	}

	fmt.Fprintln(d.stdout, res.Digest)
	if showQR {
		if qr, qrErr := hashtool.RenderQR(res.Digest); qrErr == nil {
			fmt.Fprint(d.stdout, qr)
		} else {
			fmt.Fprintln(d.stderr, qrErr)
		}
	}

	switch {
	case err != nil:
		fmt.Fprintf(d.stderr, "Could not copy to the clipboard (%v). Copy the hash above manually.\n", err)
	case res.Copied:
		fmt.Fprintln(d.stderr, "Copied to clipboard.")
	}
	fmt.Fprintln(d.stderr, "(example) New variable -> [name] PASSWORD_HASH -> [value] paste")
	return exitOK
}

func runEnv(ctx context.Context, d deps) int {
	launcher := d.launcher
	if launcher == nil {
		launcher = envedit.New()
	}
	if err := launcher.Open(ctx); err != nil {
		logging.L().Info("environment editor not opened", "error", err)
		fmt.Fprintln(d.stderr, err)
		return exitFail
	}
	return exitOK
}

const readme = `PasswordHashTool

Overview
  - Type a password twice; the two entries must match.
  - The password is hashed with SHA-256 (or the algorithm chosen with -algo).
  - The hash is printed and copied to the clipboard.
  - On Windows, 'pwhash env' opens the environment variable dialog.

Usage
  1. Run 'pwhash' and enter the password twice.
  2. The hash is printed and copied automatically.
  3. If needed, run 'pwhash env' and create a variable such as
     PASSWORD_HASH with the hash as its value.

Commands
  hash                      prompt, hash and copy (default)
  env                       open the environment variable editor (Windows)
  window show               print the stored window geometry
  window set -w W -h H [-x X -y Y]
                            store a window geometry
  window reset              forget the stored geometry
  readme                    show this text

The hash is a plain digest without salt or iteration. Do not use it to
store credentials.
`
