package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/billfold-dev/billfold/internal/auditlog"
	"github.com/billfold-dev/billfold/internal/config"
	"github.com/billfold-dev/billfold/internal/cycle"
	"github.com/billfold-dev/billfold/internal/store"
)

// app bundles the per-invocation state: profile root, config, logger
// and the opened card store.
type app struct {
	root  string
	cfg   *config.Config
	log   *logrus.Logger
	store *store.Store
}

// openApp loads a profile. A missing billfold.yaml falls back to
// defaults so commands work in a bare directory.
func openApp(profileDir string) (*app, error) {
	root, err := filepath.Abs(profileDir)
	if err != nil {
		return nil, fmt.Errorf("resolving profile path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		cfg = config.Default()
	}

	log := logrus.New()
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		log.SetLevel(level)
	}

	blob := store.NewFileBlob(filepath.Join(root, cfg.Data.Dir))
	return &app{
		root:  root,
		cfg:   cfg,
		log:   log,
		store: store.Open(blob, log),
	}, nil
}

// audit records a mutation in the activity log. Logging failures never
// fail the operation itself.
func (a *app) audit(action, cardID, details string) {
	entry := auditlog.Entry{
		Timestamp: time.Now().UTC(),
		Action:    action,
		CardID:    cardID,
		Details:   details,
	}
	if err := auditlog.Append(a.root, []auditlog.Entry{entry}); err != nil {
		a.log.WithError(err).Warn("failed to write activity log")
	}
}

// rollover runs the once-per-session billing cycle pass: paid cards
// whose bill date has arrived move to the next unbilled cycle.
func (a *app) rollover(out io.Writer, today time.Time) error {
	rolled := 0
	for _, card := range a.store.All() {
		next, cycles, changed := cycle.Advance(card, today)
		if !changed {
			continue
		}
		if err := a.store.Update(next); err != nil {
			return fmt.Errorf("saving rolled-over card: %w", err)
		}
		a.audit(auditlog.ActionRollover, next.ID, fmt.Sprintf("advanced %d cycle(s)", cycles))
		rolled++
	}
	if rolled > 0 {
		fmt.Fprintf(out, "%d card(s) rolled over to the next cycle. Enter their new bill amounts.\n", rolled)
	}
	return nil
}

// reminders prints a warning for cards due or overdue.
func (a *app) reminders(out io.Writer, today time.Time) {
	due := cycle.DueReminders(a.store.All(), today)
	if len(due) > 0 {
		fmt.Fprintf(out, "Payment reminder: %d card(s) with payments due or overdue.\n", len(due))
	}
}
