package services

import (
	"context"
	"fmt"
	"mindful/internal/models"
	"mindful/internal/providers"
	"mindful/internal/storage"
	"mindful/internal/storage/interfaces"
	"sync"
)

const (
	StreakKey           = "mindful_streak"
	LastBlockedVisitKey = "last_blocked_visit"
)

type StreakServiceInterface interface {
	GetStreak(ctx context.Context) (models.StreakRecord, error)
	UpdateStreak(ctx context.Context) (models.StreakRecord, error)
	RecordBlockedVisit(ctx context.Context) (models.StreakRecord, error)
	ResetStreak(ctx context.Context) (models.StreakRecord, error)
	LastBlockedVisit(ctx context.Context) (int64, error)
}

// StreakService owns the streak record and the last blocked visit timestamp.
// Mutations are serialized so concurrent callers cannot lose an update.
type StreakService struct {
	mu      sync.Mutex
	store   interfaces.Store
	clock   providers.ClockInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewStreakService(store interfaces.Store, clock providers.ClockInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) StreakServiceInterface {
	return &StreakService{
		store:   store,
		clock:   clock,
		logger:  logger,
		metrics: metrics,
	}
}

func (s *StreakService) load(ctx context.Context) (models.StreakRecord, error) {
	var record models.StreakRecord
	if _, err := storage.Load(ctx, s.store, StreakKey, &record); err != nil {
		return models.StreakRecord{}, err
	}
	return record, nil
}

// GetStreak returns the zero record when none is stored, without persisting it.
func (s *StreakService) GetStreak(ctx context.Context) (models.StreakRecord, error) {
	record, err := s.load(ctx)
	if err != nil {
		return models.StreakRecord{}, fmt.Errorf("get streak: %w", err)
	}
	s.metrics.SetStreakCount(record.Count)
	return record, nil
}

func (s *StreakService) UpdateStreak(ctx context.Context) (models.StreakRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.update(ctx)
}

func (s *StreakService) update(ctx context.Context) (models.StreakRecord, error) {
	record, err := s.load(ctx)
	if err != nil {
		return models.StreakRecord{}, fmt.Errorf("update streak: %w", err)
	}

	today, yesterday := s.clock.Dates()
	next, changed := record.Advance(today, yesterday)
	if !changed {
		return record, nil
	}

	if err := storage.Save(ctx, s.store, map[string]any{StreakKey: next}); err != nil {
		return models.StreakRecord{}, fmt.Errorf("update streak: %w", err)
	}

	if next.Count == 1 && record.Count > 0 {
		s.logger.Infof(providers.TypeStreak, "Streak of %d days broken (last update %s), restarting on %s", record.Count, record.LastUpdateDate, today)
	} else {
		s.logger.Debugf(providers.TypeStreak, "Streak advanced to %d on %s", next.Count, today)
	}
	s.metrics.SetStreakCount(next.Count)
	return next, nil
}

// RecordBlockedVisit stores the visit time and advances the streak. Several
// visits on one day advance it once.
func (s *StreakService) RecordBlockedVisit(ctx context.Context) (models.StreakRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.clock.Now().UnixMilli()
	if err := storage.Save(ctx, s.store, map[string]any{LastBlockedVisitKey: ts}); err != nil {
		return models.StreakRecord{}, fmt.Errorf("record blocked visit: %w", err)
	}
	return s.update(ctx)
}

func (s *StreakService) ResetStreak(ctx context.Context) (models.StreakRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	zero := models.StreakRecord{}
	if err := storage.Save(ctx, s.store, map[string]any{StreakKey: zero}); err != nil {
		return models.StreakRecord{}, fmt.Errorf("reset streak: %w", err)
	}
	s.logger.Infof(providers.TypeStreak, "Streak reset")
	s.metrics.SetStreakCount(0)
	return zero, nil
}

// LastBlockedVisit returns 0 when no visit was recorded yet.
func (s *StreakService) LastBlockedVisit(ctx context.Context) (int64, error) {
	var ts int64
	if _, err := storage.Load(ctx, s.store, LastBlockedVisitKey, &ts); err != nil {
		return 0, fmt.Errorf("last blocked visit: %w", err)
	}
	return ts, nil
}
