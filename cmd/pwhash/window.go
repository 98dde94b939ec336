package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/TheGojiOG/pwhashtool/internal/settings"
)

// runWindow handles the window subcommands. It returns the exit code, the
// geometry to keep, and whether main should still save it on exit.
func runWindow(args []string, store *settings.Store, current settings.Geometry, status settings.Status, d deps) (int, settings.Geometry, bool) {
	if len(args) == 0 {
		args = []string{"show"}
	}

	switch args[0] {
	case "show":
		fmt.Fprintf(d.stdout, "%s (%s)\n%s\n", current, status, store.Path())
		return exitOK, current, false
	case "reset":
		if err := store.Reset(); err != nil {
			fmt.Fprintln(d.stderr, err)
			return exitFail, current, false
		}
		fmt.Fprintf(d.stdout, "Reset to %s\n", settings.DefaultGeometry())
		return exitOK, settings.DefaultGeometry(), false
	case "set":
		g, err := parseGeometry(args[1:], current, d)
		if err != nil {
			if !errors.Is(err, flag.ErrHelp) {
				fmt.Fprintln(d.stderr, err)
			}
			return exitUsage, current, false
		}
		if err := store.SaveErr(g); err != nil {
			fmt.Fprintln(d.stderr, err)
			return exitFail, current, false
		}
		fmt.Fprintf(d.stdout, "Saved %s\n", g)
		return exitOK, g, false
	default:
		fmt.Fprintf(d.stderr, "Unknown window command %q (show, reset, set)\n", args[0])
		return exitUsage, current, false
	}
}

func parseGeometry(args []string, current settings.Geometry, d deps) (settings.Geometry, error) {
	fs := flag.NewFlagSet("window set", flag.ContinueOnError)
	fs.SetOutput(d.stderr)
	w := fs.Int("w", current.W, "window width")
	h := fs.Int("h", current.H, "window height")
	x := fs.Int("x", 0, "horizontal position")
	y := fs.Int("y", 0, "vertical position")
	if err := fs.Parse(args); err != nil {
		return settings.Geometry{}, err
	}

	seen := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { seen[f.Name] = true })
	if seen["x"] != seen["y"] {
		return settings.Geometry{}, errors.New("-x and -y must be given together")
	}

	g := settings.Geometry{W: *w, H: *h}
	if seen["x"] {
		g = g.At(*x, *y)
	} else if current.Pos != nil {
		g = g.At(current.Pos.X, current.Pos.Y)
	}
	return g, g.Validate()
}
