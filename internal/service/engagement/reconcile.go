package engagement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/eventhub-backend/internal/domain"
)

const (
	defaultReconcileConcurrency = 8
	defaultExternalPage         = 500
)

// Reconcile repairs counter drift and prunes join rows whose external target
// no longer exists. It is safe to run next to live toggles.
//
// Drifted events are found in one read-only snapshot; each is then fixed in
// its own transaction that locks the event row and recounts. Rows referencing
// documents the store could not confirm either way are kept.
func (s *Service) Reconcile(ctx context.Context) (domain.ReconcileReport, error) {
	start := s.now()
	var report domain.ReconcileReport

	// Step 1: Recount drifted events
	if err := s.fixDrift(ctx, &report); err != nil {
		return report, fmt.Errorf("engagement.Reconcile: %w", err)
	}

	// Step 2: Prune liked and saved rows of vanished external events
	err := s.prune(ctx, s.external, s.engagement.ListExternalTargets, s.engagement.DeleteExternalTarget, &report)
	if err != nil {
		return report, fmt.Errorf("engagement.Reconcile prune external events: %w", err)
	}

	// Step 3: Prune saved posts that vanished
	err = s.prune(ctx, s.posts, s.engagement.ListSavedPostIDs, s.engagement.DeleteSavedPostsByPost, &report)
	if err != nil {
		return report, fmt.Errorf("engagement.Reconcile prune saved posts: %w", err)
	}

	report.Duration = s.now().Sub(start)
	s.log.InfoContext(ctx, "reconciliation finished",
		slog.Int("events_corrected", report.EventsCorrected),
		slog.Int("likes_adjusted", report.LikesAdjusted),
		slog.Int("saves_adjusted", report.SavesAdjusted),
		slog.Int("external_checked", report.ExternalChecked),
		slog.Int("external_pruned", report.ExternalPruned),
		slog.Int("external_failures", report.ExternalFailures),
		slog.Duration("duration", report.Duration),
	)
	return report, nil
}

func (s *Service) fixDrift(ctx context.Context, report *domain.ReconcileReport) error {
	for {
		var drifted []domain.CounterDrift
		err := s.tx.RunInSnapshot(ctx, func(txCtx context.Context) error {
			var err error
			drifted, err = s.engagement.FindDrift(txCtx, driftBatchSize)
			return err
		})
		if err != nil {
			return fmt.Errorf("find drift: %w", err)
		}

		corrected := 0
		for _, d := range drifted {
			var fixed domain.CounterDrift
			err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
				var err error
				fixed, err = s.engagement.Recount(txCtx, d.EventID)
				return err
			})
			if errors.Is(err, domain.ErrNotFound) {
				// Deleted after the snapshot.
				continue
			}
			if err != nil {
				return fmt.Errorf("recount %s: %w", d.EventID, err)
			}

			likes := abs(fixed.ActualLikes - fixed.StoredLikes)
			saves := abs(fixed.ActualSaves - fixed.StoredSaves)
			if likes == 0 && saves == 0 {
				continue
			}
			corrected++
			report.EventsCorrected++
			report.LikesAdjusted += likes
			report.SavesAdjusted += saves

			s.log.InfoContext(ctx, "counter drift corrected",
				slog.String("event_id", d.EventID.String()),
				slog.Int("like_count", fixed.ActualLikes),
				slog.Int("save_count", fixed.ActualSaves),
			)
		}

		if len(drifted) < driftBatchSize || corrected == 0 {
			return nil
		}
	}
}

// prune pages through target ids, checks each against store with bounded
// concurrency and removes the rows of targets the store reports missing.
func (s *Service) prune(
	ctx context.Context,
	store documentStore,
	list func(ctx context.Context, afterID string, limit int) ([]string, error),
	remove func(ctx context.Context, id string) (int64, error),
	report *domain.ReconcileReport,
) error {
	page := s.cfg.ReconcileExternalPage
	if page <= 0 {
		page = defaultExternalPage
	}

	after := ""
	for {
		ids, err := list(ctx, after, page)
		if err != nil {
			return fmt.Errorf("list targets: %w", err)
		}
		if len(ids) == 0 {
			return nil
		}

		missing, failures, err := s.findMissing(ctx, store, ids)
		if err != nil {
			return err
		}
		report.ExternalChecked += len(ids)
		report.ExternalFailures += failures

		for _, id := range missing {
			n, err := remove(ctx, id)
			if err != nil {
				return fmt.Errorf("remove target %s: %w", id, err)
			}
			report.ExternalPruned += int(n)
		}

		if len(ids) < page {
			return nil
		}
		after = ids[len(ids)-1]
	}
}

// findMissing returns the ids store reports as missing and the number of ids
// whose check failed.
func (s *Service) findMissing(ctx context.Context, store documentStore, ids []string) ([]string, int, error) {
	limit := s.cfg.ReconcileConcurrency
	if limit <= 0 {
		limit = defaultReconcileConcurrency
	}

	gone := make([]bool, len(ids))
	var failures atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, id := range ids {
		g.Go(func() error {
			err := s.checkExists(gctx, store, id)
			switch {
			case err == nil:
			case errors.Is(err, domain.ErrTargetNotFound):
				gone[i] = true
			case errors.Is(err, domain.ErrExternalDependency):
				failures.Add(1)
				s.log.WarnContext(gctx, "external check failed, keeping rows",
					slog.String("target_id", id),
					slog.String("error", err.Error()),
				)
			default:
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, fmt.Errorf("check targets: %w", err)
	}

	var missing []string
	for i, id := range ids {
		if gone[i] {
			missing = append(missing, id)
		}
	}
	return missing, int(failures.Load()), nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
