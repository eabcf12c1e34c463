package scheduler

import (
	"github.com/nexora/nexora-backend/internal/app/service"
	"github.com/nexora/nexora-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// RatingScheduler runs the nightly rating reconciliation sweep. Normal
// operation keeps aggregates current on every moderation write; the
// sweep repairs drift left by crashes in between.
type RatingScheduler struct {
	cron          *cron.Cron
	ratingService service.RatingService
}

func NewRatingScheduler(ratingService service.RatingService) *RatingScheduler {
	return &RatingScheduler{
		cron:          cron.New(),
		ratingService: ratingService,
	}
}

// Start schedules the sweep every night at 03:00.
func (s *RatingScheduler) Start() error {
	_, err := s.cron.AddFunc("0 3 * * *", func() {
		logger.Info("Starting scheduled rating reconciliation", nil)

		if err := s.ratingService.ReconcileAll(); err != nil {
			logger.Error("Rating reconciliation failed", err)
			return
		}

		logger.Info("Rating reconciliation completed", nil)
	})

	if err != nil {
		logger.Error("Failed to add cron job for rating reconciliation", err)
		return err
	}

	s.cron.Start()
	logger.Info("Rating scheduler started successfully (daily at 3:00 AM)", nil)

	return nil
}

// Stop halts the cron loop.
func (s *RatingScheduler) Stop() {
	logger.Info("Stopping rating scheduler...", nil)
	s.cron.Stop()
}
