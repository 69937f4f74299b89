package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"docvault/internal/domain/models"
)

func newUsage(activity *fakeActivityRepo, now time.Time) *usageLimiter {
	return &usageLimiter{
		activity: activity,
		now:      func() time.Time { return now },
		logger:   testLogger(),
	}
}

func TestUsageUnlimitedAlwaysAllows(t *testing.T) {
	activity := &fakeActivityRepo{}
	limiter := newUsage(activity, time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))

	pctx := openContext()
	for i := 0; i < 10; i++ {
		allowed, err := limiter.CheckAndRecord(context.Background(), pctx, 7, models.ActionDownload, int64(i))
		if err != nil {
			t.Fatalf("CheckAndRecord: %v", err)
		}
		if !allowed {
			t.Fatalf("attempt %d denied under unlimited quota", i)
		}
	}
	if len(activity.entries) != 10 {
		t.Errorf("recorded %d entries, want 10", len(activity.entries))
	}
}

func TestUsageLimitDeniesPastCeiling(t *testing.T) {
	activity := &fakeActivityRepo{}
	limiter := newUsage(activity, time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))

	pctx := openContext()
	pctx.DownloadLimit = models.QuotaOf(3)

	for i := 0; i < 3; i++ {
		allowed, err := limiter.CheckAndRecord(context.Background(), pctx, 7, models.ActionDownload, int64(i))
		if err != nil {
			t.Fatalf("CheckAndRecord: %v", err)
		}
		if !allowed {
			t.Fatalf("attempt %d denied under quota", i)
		}
	}

	allowed, err := limiter.CheckAndRecord(context.Background(), pctx, 7, models.ActionDownload, 3)
	if err != nil {
		t.Fatalf("CheckAndRecord: %v", err)
	}
	if allowed {
		t.Fatal("attempt past the ceiling was allowed")
	}
	if len(activity.entries) != 3 {
		t.Errorf("recorded %d entries, want 3 (denied attempt must not count)", len(activity.entries))
	}
}

func TestUsageActionsCountedSeparately(t *testing.T) {
	activity := &fakeActivityRepo{}
	limiter := newUsage(activity, time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))

	pctx := openContext()
	pctx.DownloadLimit = models.QuotaOf(1)
	pctx.UploadLimit = models.QuotaOf(1)

	if ok, _ := limiter.CheckAndRecord(context.Background(), pctx, 7, models.ActionDownload, 1); !ok {
		t.Fatal("first download denied")
	}
	// The exhausted download quota must not bleed into uploads.
	if ok, _ := limiter.CheckAndRecord(context.Background(), pctx, 7, models.ActionUpload, 0); !ok {
		t.Fatal("first upload denied after download quota spent")
	}
}

func TestUsageQuotaResetsAtMidnight(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	activity := &fakeActivityRepo{}
	evening := time.Date(2024, 3, 15, 23, 50, 0, 0, loc)
	limiter := newUsage(activity, evening)

	pctx := openContext()
	pctx.DownloadLimit = models.QuotaOf(1)

	if ok, _ := limiter.CheckAndRecord(context.Background(), pctx, 7, models.ActionDownload, 1); !ok {
		t.Fatal("first download denied")
	}
	if ok, _ := limiter.CheckAndRecord(context.Background(), pctx, 7, models.ActionDownload, 2); ok {
		t.Fatal("second download allowed within the same day")
	}

	// Twenty minutes later it is the next local day.
	limiter.now = func() time.Time { return evening.Add(20 * time.Minute) }
	if ok, _ := limiter.CheckAndRecord(context.Background(), pctx, 7, models.ActionDownload, 3); !ok {
		t.Fatal("download denied after the daily window rolled over")
	}
}

func TestUsageStorageFailurePropagates(t *testing.T) {
	activity := &fakeActivityRepo{err: errors.New("connection refused")}
	limiter := newUsage(activity, time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))

	pctx := openContext()
	pctx.DownloadLimit = models.QuotaOf(3)

	allowed, err := limiter.CheckAndRecord(context.Background(), pctx, 7, models.ActionDownload, 1)
	if err == nil {
		t.Fatal("expected error")
	}
	if allowed {
		t.Fatal("allowed despite storage failure")
	}
}

func TestDayBounds(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	at := time.Date(2024, 3, 15, 18, 30, 45, 0, loc)
	from, to := dayBounds(at)

	if want := time.Date(2024, 3, 15, 0, 0, 0, 0, loc); !from.Equal(want) {
		t.Errorf("from = %v, want %v", from, want)
	}
	if want := time.Date(2024, 3, 16, 0, 0, 0, 0, loc); !to.Equal(want) {
		t.Errorf("to = %v, want %v", to, want)
	}
}
