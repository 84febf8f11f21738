package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/aviato-app/aviato-backend/internal/features/chat/repository"
	"github.com/aviato-app/aviato-backend/internal/features/chat/timer"
)

// RoundSweeper periodically stamps TimerExpired on rounds whose deadline has
// passed unrated. The stamp is advisory: every read path already derives
// expiry from the clock, so a missed sweep never changes a verdict. Its job is
// to persist the flag so the next message correctly opens a new round even
// after a restart.
type RoundSweeper struct {
	ctx      context.Context
	cancel   context.CancelFunc
	convs    repository.ChatRepository
	round    timer.Engine
	interval time.Duration
	wg       sync.WaitGroup
}

func NewRoundSweeper(convs repository.ChatRepository, roundDuration, interval time.Duration) *RoundSweeper {
	ctx, cancel := context.WithCancel(context.Background())
	return &RoundSweeper{
		ctx:      ctx,
		cancel:   cancel,
		convs:    convs,
		round:    timer.Engine{RoundDuration: roundDuration},
		interval: interval,
	}
}

func (s *RoundSweeper) Start() {
	log.Info().Dur("interval", s.interval).Msg("Starting round sweeper")
	s.wg.Add(1)

	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := s.sweep(); err != nil {
					log.Error().Err(err).Msg("Round sweep failed")
				}
			case <-s.ctx.Done():
				return
			}
		}
	}()
}

func (s *RoundSweeper) Stop() {
	log.Info().Msg("Stopping round sweeper")
	s.cancel()
	s.wg.Wait()
	log.Info().Msg("Round sweeper stopped")
}

func (s *RoundSweeper) sweep() error {
	convs, err := s.convs.ListAll(s.ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, conv := range convs {
		if conv.TimerStarted == 0 || conv.Rated || conv.TimerExpired {
			continue
		}
		if s.round.Remaining(conv, now) > 0 {
			continue
		}

		conv.TimerExpired = true
		if err := s.convs.Update(s.ctx, conv); err != nil {
			log.Error().Err(err).Str("conversation_id", conv.ID).Msg("Failed to stamp expired round")
			continue
		}
		log.Debug().Str("conversation_id", conv.ID).Msg("Round expired unrated")
	}
	return nil
}
