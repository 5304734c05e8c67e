package core

import (
	"context"
	"log/slog"
	"time"
)

type AuditPruner interface {
	DeleteOldAudits(ctx context.Context, olderThan time.Duration) (int64, error)
}

type SchedulerService struct {
	store     AuditPruner
	retention time.Duration
	interval  time.Duration
}

func NewSchedulerService(store AuditPruner, retention time.Duration) *SchedulerService {
	if retention <= 0 {
		retention = 30 * 24 * time.Hour
	}
	return &SchedulerService{store: store, retention: retention, interval: 24 * time.Hour}
}

func (s *SchedulerService) Start(ctx context.Context) {
	go s.runRetentionPolicy(ctx)
}

// runRetentionPolicy deletes audits older than the retention window.
func (s *SchedulerService) runRetentionPolicy(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Run immediately on startup
	s.cleanup(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cleanup(ctx)
		}
	}
}

func (s *SchedulerService) cleanup(ctx context.Context) int64 {
	count, err := s.store.DeleteOldAudits(ctx, s.retention)
	if err != nil {
		slog.Error("retention policy: failed to delete old audits", "error", err)
		return 0
	}
	slog.Info("retention policy: deleted old audits", "count", count)
	return count
}
