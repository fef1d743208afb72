package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/voicecart/voicecart-server/internal/app/service"
	"github.com/voicecart/voicecart-server/pkg/logger"
)

// DealsScheduler refreshes the cached deals listing on a cron schedule so
// the deals page never pays the backend round trip.
type DealsScheduler struct {
	cron           *cron.Cron
	catalogService service.CatalogService
	schedule       string
}

// NewDealsScheduler creates a scheduler with a cron expression, e.g.
// "*/15 * * * *" for every 15 minutes.
func NewDealsScheduler(catalogService service.CatalogService, schedule string) *DealsScheduler {
	return &DealsScheduler{
		cron:           cron.New(),
		catalogService: catalogService,
		schedule:       schedule,
	}
}

// Start registers the refresh job and begins the schedule.
func (s *DealsScheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		logger.Info("Starting scheduled deals refresh", nil)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.catalogService.RefreshDeals(ctx); err != nil {
			logger.Error("Scheduled deals refresh failed", err)
			return
		}

		logger.Info("Scheduled deals refresh completed", nil)
	})
	if err != nil {
		logger.Error("Failed to register deals refresh job", err)
		return err
	}

	s.cron.Start()
	logger.Info("Deals scheduler started", map[string]interface{}{
		"schedule": s.schedule,
	})
	return nil
}

// Stop halts the schedule.
func (s *DealsScheduler) Stop() {
	logger.Info("Stopping deals scheduler...", nil)
	s.cron.Stop()
	logger.Info("Deals scheduler stopped", nil)
}
