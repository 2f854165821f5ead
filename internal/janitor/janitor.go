// Package janitor evicts idle sessions on a cron schedule so abandoned
// conversations do not accumulate for the life of the process.
package janitor

import (
	"fmt"
	"log/slog"
	"time"

	robfigcron "github.com/robfig/cron/v3"

	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/config"
	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/session"
)

// Janitor periodically sweeps the session store. A zero or negative TTL
// disables eviction entirely: sessions then live for the process lifetime.
type Janitor struct {
	store    *session.MemoryStore
	ttl      time.Duration
	schedule string
	cron     *robfigcron.Cron
	log      *slog.Logger
}

func New(store *session.MemoryStore, cfg config.SessionsConfig, log *slog.Logger) *Janitor {
	schedule := cfg.SweepSchedule
	if schedule == "" {
		schedule = "@every 5m"
	}
	return &Janitor{
		store:    store,
		ttl:      time.Duration(cfg.IdleTTLMinutes) * time.Minute,
		schedule: schedule,
		log:      log,
	}
}

// Enabled reports whether eviction is configured.
func (j *Janitor) Enabled() bool { return j.ttl > 0 }

// Start registers the sweep job and begins the scheduler. With eviction
// disabled it does nothing.
func (j *Janitor) Start() error {
	if !j.Enabled() {
		j.log.Info("session janitor disabled", "ttl", j.ttl.String())
		return nil
	}
	j.cron = robfigcron.New()
	if _, err := j.cron.AddFunc(j.schedule, j.Sweep); err != nil {
		return fmt.Errorf("janitor: bad schedule %q: %w", j.schedule, err)
	}
	j.cron.Start()
	j.log.Info("session janitor started", "schedule", j.schedule, "ttl", j.ttl.String())
	return nil
}

// Stop halts the scheduler, waiting for a running sweep to finish.
func (j *Janitor) Stop() {
	if j.cron != nil {
		<-j.cron.Stop().Done()
	}
}

// Sweep drops sessions idle longer than the TTL.
func (j *Janitor) Sweep() {
	if !j.Enabled() {
		return
	}
	if removed := j.store.SweepIdle(j.ttl); removed > 0 {
		j.log.Info("swept idle sessions", "removed", removed)
	}
}
