package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/TheGojiOG/pwhashtool/internal/digest"
	"github.com/TheGojiOG/pwhashtool/internal/validate"
)

// genhash prints the digest of a password without prompting, for scripts.
func main() {
	os.Exit(run(os.Args[1:], os.Getenv, os.Stdout, os.Stderr))
}

func run(args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("genhash", flag.ContinueOnError)
	fs.SetOutput(stderr)
	password := fs.String("password", "", "Password to hash")
	confirm := fs.String("confirm", "", "Repeat of the password (defaults to -password)")
	algo := fs.String("algo", digest.DefaultAlgorithm, "Digest algorithm")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *password == "" {
		*password = getenv("PWHASH_PASSWORD")
	}
	if *confirm == "" {
		*confirm = *password
	}
	if err := validate.Check(*password, *confirm); err != nil {
		fmt.Fprintf(stderr, "%v (use -password or set PWHASH_PASSWORD)\n", err)
		return 1
	}

	d, err := digest.New(*algo)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	fmt.Fprintln(stdout, d.Sum(*password))
	return 0
}
