// Package sweeper wires up the cron job that periodically removes bids whose
// validity window has elapsed.
package sweeper

import (
	"context"
	"fmt"
	"time"

	"freight-exchange/utils"

	"github.com/robfig/cron/v3"
)

// DefaultSpec runs a sweep every minute
const DefaultSpec = "@every 1m"

// Expirer deletes bids that expired at or before now and reports how many
type Expirer interface {
	ExpireBids(ctx context.Context, now time.Time) (int, error)
}

// Sweeper wraps robfig/cron and manages the expiry loop
type Sweeper struct {
	cron    *cron.Cron
	expirer Expirer
	spec    string
	now     func() time.Time
}

// New creates a Sweeper firing on spec (cron syntax or "@every <duration>")
func New(expirer Expirer, spec string) *Sweeper {
	if spec == "" {
		spec = DefaultSpec
	}
	logger := cronLogger{}
	return &Sweeper{
		cron: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		expirer: expirer,
		spec:    spec,
		now:     utils.Now,
	}
}

// Start registers the job and starts the scheduler. One sweep also runs
// immediately so bids that expired while the process was down disappear
// without waiting for the first tick.
func (s *Sweeper) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc(%q): %w", s.spec, err)
	}

	s.cron.Start()
	utils.Info("Bid sweeper started", map[string]any{"spec": s.spec})

	go s.RunOnce(ctx)
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
	utils.Info("Bid sweeper stopped", nil)
}

// RunOnce performs a single sweep. Failures are logged, never returned: the
// next tick retries.
func (s *Sweeper) RunOnce(ctx context.Context) int {
	if ctx.Err() != nil {
		return 0
	}
	n, err := s.expirer.ExpireBids(ctx, s.now())
	if err != nil {
		utils.Error("Bid sweep failed", map[string]any{"error": err.Error(), "removed": n})
		return n
	}
	if n > 0 {
		utils.Info("Expired bids removed", map[string]any{"removed": n})
	}
	return n
}

// cronLogger routes cron's own logging through the application logger
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	utils.Debug("cron: "+msg, kvFields(keysAndValues))
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := kvFields(keysAndValues)
	fields["error"] = err.Error()
	utils.Error("cron: "+msg, fields)
}

func kvFields(keysAndValues []interface{}) map[string]any {
	fields := make(map[string]any, len(keysAndValues)/2+1)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return fields
}
