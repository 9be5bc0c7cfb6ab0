package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/crypto/bcrypt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}

	if err := c.Identity.validate(); err != nil {
		return fmt.Errorf("identity: %w", err)
	}
	if err := c.Engagement.validate(); err != nil {
		return fmt.Errorf("engagement: %w", err)
	}
	if c.Subscription.RenewalPeriod < 24*time.Hour {
		return fmt.Errorf("subscription.renewal_period must be at least 24h (got %v)", c.Subscription.RenewalPeriod)
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be > 0 when the cache is enabled (got %v)", c.Cache.TTL)
	}
	if err := c.Worker.validate(); err != nil {
		return fmt.Errorf("worker: %w", err)
	}

	return nil
}

func (i *IdentityConfig) validate() error {
	if i.BcryptCost < bcrypt.MinCost || i.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt_cost must be within [%d, %d] (got %d)", bcrypt.MinCost, bcrypt.MaxCost, i.BcryptCost)
	}
	if i.MinPasswordLength < 6 {
		return fmt.Errorf("min_password_length must be >= 6 (got %d)", i.MinPasswordLength)
	}
	return nil
}

func (e *EngagementConfig) validate() error {
	if e.ExternalCheckTimeout <= 0 {
		return fmt.Errorf("external_check_timeout must be > 0 (got %v)", e.ExternalCheckTimeout)
	}
	if e.ReconcileConcurrency < 1 {
		return fmt.Errorf("reconcile_concurrency must be >= 1 (got %d)", e.ReconcileConcurrency)
	}
	if e.ReconcileExternalPage < 1 {
		return fmt.Errorf("reconcile_external_page must be >= 1 (got %d)", e.ReconcileExternalPage)
	}
	return nil
}

func (w *WorkerConfig) validate() error {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(w.ReconcileSchedule); err != nil {
		return fmt.Errorf("reconcile_schedule: %w", err)
	}
	if _, err := parser.Parse(w.CompleteEventsSchedule); err != nil {
		return fmt.Errorf("complete_events_schedule: %w", err)
	}
	if _, err := parser.Parse(w.DispatchSchedule); err != nil {
		return fmt.Errorf("dispatch_schedule: %w", err)
	}
	if w.DispatchBatch < 1 || w.DispatchBatch > 100 {
		return fmt.Errorf("dispatch_batch must be in [1, 100] (got %d)", w.DispatchBatch)
	}
	if w.JobTimeout <= 0 {
		return fmt.Errorf("job_timeout must be > 0 (got %v)", w.JobTimeout)
	}
	return nil
}
