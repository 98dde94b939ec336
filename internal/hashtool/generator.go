// Package hashtool ties validation, digesting and the clipboard together for
// one generate request.
package hashtool

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/TheGojiOG/pwhashtool/internal/clipboard"
	"github.com/TheGojiOG/pwhashtool/internal/logging"
	"github.com/TheGojiOG/pwhashtool/internal/notify"
	"github.com/TheGojiOG/pwhashtool/internal/validate"
)

// Digester computes a digest of text.
type Digester interface {
	Name() string
	Sum(text string) string
}

// Result describes one generate request.
type Result struct {
	OK        bool
	Reason    string
	Digest    string
	Algorithm string
	Copied    bool
}

// Generator validates a password pair and hands its digest to the clipboard.
type Generator struct {
	digester  Digester
	clipboard clipboard.Writer
	notifier  notify.Notifier
	logger    *slog.Logger
}

// New creates a generator. A nil clipboard or notifier disables that step.
func New(d Digester, cb clipboard.Writer, n notify.Notifier, logger *slog.Logger) *Generator {
	if n == nil {
		n = notify.Nop{}
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Generator{
		digester:  d,
		clipboard: cb,
		notifier:  n,
		logger:    logger.With("component", "generator"),
	}
}

// Generate validates pw1/pw2 and digests pw1. A validation failure is
// reported in the result, not as an error. A clipboard failure is returned as
// an error alongside a result that still carries the digest.
func (g *Generator) Generate(ctx context.Context, pw1, pw2 string) (Result, error) {
	if ok, reason := validate.Passwords(pw1, pw2); !ok {
		g.logger.Info("password pair rejected", "reason", reason)
		return Result{Reason: reason}, nil
	}

	res := Result{
		OK:        true,
		Digest:    g.digester.Sum(pw1),
		Algorithm: g.digester.Name(),
	}

	if g.clipboard != nil {
		if err := g.clipboard.WriteText(res.Digest); err != nil {
			g.logger.Warn("clipboard write failed", "error", err)
			return res, fmt.Errorf("failed to copy digest: %w", err)
		}
		res.Copied = true
	}
	g.logger.Info("digest generated", "algorithm", res.Algorithm, "copied", res.Copied)

	if res.Copied {
		if err := g.notifier.Notify(ctx, "Hash copied", "The "+res.Algorithm+" hash is on the clipboard."); err != nil {
			g.logger.Debug("notification failed", "error", err)
		}
	}
	return res, nil
}
