package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"unihub/internal/adapters/persistence/repositories"
	"unihub/internal/pkg/logger"
)

// DefaultPurgeSchedule runs the refresh-token purge nightly at 03:00
const DefaultPurgeSchedule = "0 3 * * *"

// CronService runs scheduled maintenance jobs
type CronService struct {
	cron             *cron.Cron
	refreshTokenRepo repositories.RefreshTokenRepository
	schedule         string
	log              *slog.Logger
}

// NewCronService creates a new cron service
func NewCronService(refreshTokenRepo repositories.RefreshTokenRepository, schedule string) *CronService {
	if schedule == "" {
		schedule = DefaultPurgeSchedule
	}
	return &CronService{
		cron:             cron.New(),
		refreshTokenRepo: refreshTokenRepo,
		schedule:         schedule,
		log:              logger.WithComponent("cron"),
	}
}

// Start registers the jobs and starts the scheduler
func (s *CronService) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.PurgeRefreshTokens); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("cron service started", "purge_schedule", s.schedule)
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("cron service stopped")
}

// PurgeRefreshTokens deletes expired and revoked refresh tokens
func (s *CronService) PurgeRefreshTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	deleted, err := s.refreshTokenRepo.DeleteExpired(ctx)
	if err != nil {
		s.log.Error("refresh token purge failed", "error", err)
		return
	}
	s.log.Info("refresh tokens purged", "deleted", deleted)
}
