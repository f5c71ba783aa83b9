package service

import (
	"context"
	"time"

	"sales-intel-scryper/internal/intel/config"
	"sales-intel-scryper/internal/intel/repository"
	"sales-intel-scryper/pkg/logger"

	"github.com/robfig/cron/v3"
)

// CacheJanitor periodically purges expired cache rows and re-warms a
// configured list of frequently viewed tickers.
type CacheJanitor struct {
	cacheRepo repository.CacheRepository
	intelSvc  IntelService
	cfg       config.Janitor
	logger    *logger.Logger
	cron      *cron.Cron
}

// NewCacheJanitor creates a new CacheJanitor.
func NewCacheJanitor(cacheRepo repository.CacheRepository, intelSvc IntelService, cfg config.Janitor, log *logger.Logger) *CacheJanitor {
	return &CacheJanitor{
		cacheRepo: cacheRepo,
		intelSvc:  intelSvc,
		cfg:       cfg,
		logger:    log,
		cron:      cron.New(),
	}
}

// Start schedules the janitor and blocks until ctx is canceled.
func (j *CacheJanitor) Start(ctx context.Context) {
	schedule := j.cfg.Schedule
	if schedule == "" {
		schedule = "@hourly"
	}

	if _, err := j.cron.AddFunc(schedule, func() { j.run(ctx) }); err != nil {
		j.logger.Error("Invalid janitor schedule", logger.StringField("schedule", schedule), logger.ErrorField(err))
		return
	}

	j.cron.Start()
	j.logger.Info("Cache janitor started", logger.StringField("schedule", schedule))

	<-ctx.Done()
	stopCtx := j.cron.Stop()
	<-stopCtx.Done()
	j.logger.Info("Cache janitor stopped")
}

func (j *CacheJanitor) run(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()

	purged, err := j.cacheRepo.PurgeExpired(runCtx)
	if err != nil {
		j.logger.Error("Failed to purge expired cache entries", logger.ErrorField(err))
	} else if purged > 0 {
		j.logger.Info("Purged expired cache entries", logger.Field("count", purged))
	}

	for _, ticker := range j.cfg.WarmTickers {
		if runCtx.Err() != nil {
			return
		}
		// GetIntelligence is a no-op when the entry is still fresh.
		if _, err := j.intelSvc.GetIntelligence(runCtx, ticker, false); err != nil {
			j.logger.Warn("Failed to warm cache entry", logger.StringField("ticker", ticker), logger.ErrorField(err))
		}
	}
}
