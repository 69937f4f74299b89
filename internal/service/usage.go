package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
	"docvault/internal/domain/services"
)

type usageLimiter struct {
	activity repositories.ActivityRepository
	now      func() time.Time
	logger   *slog.Logger
}

// NewUsageLimiter creates the daily quota enforcer. Quotas are counted
// against the audit log over the local server calendar day.
func NewUsageLimiter(activity repositories.ActivityRepository, logger *slog.Logger) services.UsageLimiter {
	return &usageLimiter{
		activity: activity,
		now:      time.Now,
		logger:   logger,
	}
}

// CheckAndRecord allows the action when the resolved quota is unlimited or
// the user's same-day count is under it, recording the attempt in the same
// conditional statement so parallel requests cannot overshoot. It is
// advisory-before-action: callers must not perform the action when it
// returns false.
func (s *usageLimiter) CheckAndRecord(ctx context.Context, pctx *models.PermissionContext, userID int64, action models.ActionType, entityID int64) (bool, error) {
	entry := &models.ActivityEntry{
		UserID:     userID,
		Action:     action,
		EntityType: "document",
		EntityID:   entityID,
	}

	quota := pctx.QuotaFor(action)
	if !quota.Limited {
		if err := s.activity.Record(ctx, entry); err != nil {
			return false, fmt.Errorf("record %s: %w", action, err)
		}
		return true, nil
	}

	from, to := dayBounds(s.now())
	allowed, err := s.activity.RecordIfUnderLimit(ctx, entry, quota.Max, from, to)
	if err != nil {
		return false, fmt.Errorf("check %s quota: %w", action, err)
	}
	if !allowed {
		s.logger.Info("daily quota reached",
			"user_id", userID,
			"action", action,
			"limit", quota.Max,
		)
	}
	return allowed, nil
}

// dayBounds returns the local calendar day containing t as [from, to).
func dayBounds(t time.Time) (time.Time, time.Time) {
	year, month, day := t.Date()
	from := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	return from, from.AddDate(0, 0, 1)
}
