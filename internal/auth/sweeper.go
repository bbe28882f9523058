package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/yahuti/trade-engine/internal/metrics"
	"github.com/yahuti/trade-engine/internal/notify"
	"github.com/yahuti/trade-engine/internal/session"
)

// Sweeper periodically refreshes sessions nearing expiry and prunes sessions
// that have already lapsed.
type Sweeper struct {
	cron      *cron.Cron
	flow      *Flow
	store     session.Store
	watermark time.Duration
	notifier  notify.Notifier
	log       *slog.Logger
	nowFunc   func() time.Time
}

// NewSweeper creates a Sweeper that runs every interval. Sessions whose
// access token expires within watermark are refreshed proactively. Refresh
// failures are reported through the notifier.
func NewSweeper(
	flow *Flow,
	store session.Store,
	interval time.Duration,
	watermark time.Duration,
	notifier notify.Notifier,
	log *slog.Logger,
) (*Sweeper, error) {
	c := cron.New()

	if notifier == nil {
		notifier = notify.NewNoOpNotifier(log)
	}

	s := &Sweeper{
		cron:      c,
		flow:      flow,
		store:     store,
		watermark: watermark,
		notifier:  notifier,
		log:       log,
		nowFunc:   time.Now,
	}

	if _, err := c.AddFunc("@every "+interval.String(), s.runSweep); err != nil {
		return nil, err
	}

	return s, nil
}

// Start begins running scheduled sweeps.
func (s *Sweeper) Start() {
	s.log.Info("session sweeper started", "watermark", s.watermark)
	s.cron.Start()
}

// Stop gracefully stops the sweeper, waiting for a running sweep to finish.
func (s *Sweeper) Stop() context.Context {
	s.log.Info("session sweeper stopping")
	return s.cron.Stop()
}

func (s *Sweeper) runSweep() {
	ctx := context.Background()
	if err := s.Sweep(ctx); err != nil {
		s.log.Error("session sweep failed", "error", err)
	}
}

// Sweep performs one pass: refresh sessions inside the expiry watermark, then
// delete sessions whose tokens already lapsed. Refresh failures mark the
// session expired; the delete pass on a later sweep removes it.
func (s *Sweeper) Sweep(ctx context.Context) error {
	now := s.nowFunc()

	expiring, err := s.store.ListExpiring(ctx, now.Add(s.watermark))
	if err != nil {
		return err
	}

	refreshed := 0
	for i := range expiring {
		rec := &expiring[i]
		if rec.Expired(now) {
			// Already lapsed, refresh would be rejected anyway.
			continue
		}
		if err := s.flow.Refresh(ctx, rec); err != nil {
			s.notifyRefreshFailure(ctx, rec.ID, err)
			continue
		}
		refreshed++
	}

	removed, err := s.store.DeleteExpired(ctx, now)
	if err != nil {
		return err
	}
	if removed > 0 {
		metrics.SessionsExpiredTotal.Add(float64(removed))
	}

	if active, err := s.store.Count(ctx); err == nil {
		metrics.SessionsActive.Set(float64(active))
	}

	s.log.Info("session sweep complete",
		"expiring", len(expiring),
		"refreshed", refreshed,
		"removed", removed,
	)
	return nil
}

func (s *Sweeper) notifyRefreshFailure(ctx context.Context, sessionID string, cause error) {
	err := s.notifier.Send(ctx, &notify.Event{
		Title:    "eBay token refresh failed",
		Detail:   "The session was marked expired; the user must re-authenticate.",
		Severity: notify.SeverityError,
		Fields: []notify.Field{
			{Name: "Session", Value: sessionID, Inline: true},
			{Name: "Error", Value: cause.Error(), Inline: true},
		},
	})
	if err != nil {
		s.log.Warn("refresh failure notification not delivered", "error", err)
	}
}
