package services

import (
	"context"
	"log"
	"time"

	"machinehub/internal/adapters/persistence/repositories"
	"machinehub/internal/core/domain"

	"github.com/robfig/cron/v3"
)

// stalePendingAge is how long a booking may sit PENDING before the
// daily sweep cancels it
const stalePendingAge = 7 * 24 * time.Hour

// CronService runs the scheduled booking lifecycle jobs
type CronService struct {
	cron             *cron.Cron
	bookingRepo      repositories.BookingRepository
	refreshTokenRepo repositories.RefreshTokenRepository
}

// NewCronService creates a new cron service
func NewCronService(
	bookingRepo repositories.BookingRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
) *CronService {
	return &CronService{
		cron:             cron.New(),
		bookingRepo:      bookingRepo,
		refreshTokenRepo: refreshTokenRepo,
	}
}

// Start registers and starts the scheduled jobs
func (s *CronService) Start() error {
	// Booking lifecycle roll-forward, shortly after midnight
	if _, err := s.cron.AddFunc("5 0 * * *", s.rollBookingsForward); err != nil {
		return err
	}

	// Stale PENDING sweep, daily
	if _, err := s.cron.AddFunc("15 0 * * *", s.expireStalePending); err != nil {
		return err
	}

	// Expired refresh token cleanup, weekly
	if _, err := s.cron.AddFunc("30 3 * * 0", s.cleanupExpiredTokens); err != nil {
		return err
	}

	s.cron.Start()
	log.Println("✅ Cron jobs scheduled")
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 Cron jobs stopped")
}

// rollBookingsForward advances bookings whose boundary date has been
// reached: CONFIRMED → ONGOING at start date, ONGOING → COMPLETED past
// end date
func (s *CronService) rollBookingsForward() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	today := time.Now().Truncate(24 * time.Hour)

	started, err := s.bookingRepo.RollStatusForward(ctx,
		string(domain.StatusConfirmed), string(domain.StatusOngoing), today)
	if err != nil {
		log.Printf("❌ Failed to start confirmed bookings: %v", err)
	} else if started > 0 {
		log.Printf("✅ %d booking(s) started", started)
	}

	yesterday := today.AddDate(0, 0, -1)
	completed, err := s.bookingRepo.RollStatusForward(ctx,
		string(domain.StatusOngoing), string(domain.StatusCompleted), yesterday)
	if err != nil {
		log.Printf("❌ Failed to complete ongoing bookings: %v", err)
	} else if completed > 0 {
		log.Printf("✅ %d booking(s) completed", completed)
	}
}

// expireStalePending cancels bookings the owner never decided on
func (s *CronService) expireStalePending() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	expired, err := s.bookingRepo.ExpireStalePending(ctx, time.Now().Add(-stalePendingAge))
	if err != nil {
		log.Printf("❌ Failed to expire stale pending bookings: %v", err)
		return
	}
	if expired > 0 {
		log.Printf("⚠️ %d stale pending booking(s) cancelled", expired)
	}
}

// cleanupExpiredTokens removes refresh tokens past their expiry
func (s *CronService) cleanupExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.refreshTokenRepo.DeleteExpired(ctx); err != nil {
		log.Printf("❌ Failed to clean up expired refresh tokens: %v", err)
		return
	}
	log.Println("✅ Expired refresh tokens cleaned up")
}
