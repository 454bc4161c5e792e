package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"chantierpro/api/internal/repository"
)

// Scheduler purges rows that only matter while they are fresh: expired
// sessions and consumed or expired one-time tokens.
type Scheduler struct {
	cron     *cron.Cron
	sessions *repository.SessionRepository
	tokens   *repository.TokenRepository
	log      zerolog.Logger
}

func NewScheduler(sessions *repository.SessionRepository, tokens *repository.TokenRepository, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:     c,
		sessions: sessions,
		tokens:   tokens,
		log:      log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 0 3 * * *", s.purgeSessions); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("0 30 3 * * *", s.purgeTokens); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop waits for running jobs, up to five seconds.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
	}
}

func (s *Scheduler) purgeSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// Revoked rows stay for the session-history view; only expiry removes them.
	deleted, err := s.sessions.DeleteExpiredBefore(ctx, time.Now().UTC())
	if err != nil {
		s.log.Error().Err(err).Msg("session purge failed")
		return
	}
	if deleted > 0 {
		s.log.Info().Int64("deleted", deleted).Msg("expired sessions purged")
	}
}

func (s *Scheduler) purgeTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	deleted, err := s.tokens.DeleteExpiredBefore(ctx, time.Now().UTC())
	if err != nil {
		s.log.Error().Err(err).Msg("token purge failed")
		return
	}
	if deleted > 0 {
		s.log.Info().Int64("deleted", deleted).Msg("stale tokens purged")
	}
}
