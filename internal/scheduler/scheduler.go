package scheduler

import (
	"context"
	"mindful/internal/providers"
	"mindful/internal/scheduler/interfaces"
	"mindful/internal/services"
	storageInterfaces "mindful/internal/storage/interfaces"
	"mindful/internal/structures"
	"sync"
	"time"

	"github.com/roylee0704/gron"
)

const (
	jobTimeout     = 10 * time.Second
	expiryInterval = time.Minute
)

// Scheduler runs the daily streak check, re-enables blocking after a
// temporary disable and flushes buffered stores.
type Scheduler struct {
	config    *structures.Config
	logger    providers.Logger
	clock     providers.ClockInterface
	streak    services.StreakServiceInterface
	settings  services.SettingsServiceInterface
	persister storageInterfaces.Persister
	cron      *gron.Cron
	initial   *time.Timer
	opsMu     sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	daily, err := parseDailyAt(s.config.Streak.CheckAt, s.clock.Now().Location())
	if err != nil {
		s.logger.Errorf(providers.TypeScheduler, "Daily streak check disabled: %s", err)
	} else {
		s.cron.AddFunc(daily, s.checkStreak)
	}

	s.cron.AddFunc(gron.Every(expiryInterval), s.expireTemporaryDisable)

	if s.persister != nil && s.config.Storage.Driver == "file" && !s.config.Storage.SyncWrites && s.config.Storage.SaveInterval > 0 {
		s.cron.AddFunc(gron.Every(s.config.Storage.SaveInterval), func() {
			if err := s.Persist(); err == nil {
				s.logger.Debugf(providers.TypeScheduler, "Persisted store to %s", s.config.Storage.FilePath)
			}
		})
	}

	s.cron.Start()
	s.initial = time.AfterFunc(s.config.Streak.InitialDelay, s.checkStreak)
}

func (s *Scheduler) checkStreak() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	record, err := s.streak.UpdateStreak(ctx)
	if err != nil {
		s.logger.Errorf(providers.TypeScheduler, "Daily streak check failed: %s", err)
		return
	}
	s.logger.Infof(providers.TypeScheduler, "Daily streak check done, streak is %d", record.Count)
}

func (s *Scheduler) expireTemporaryDisable() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if _, err := s.settings.ExpireTemporaryDisable(ctx); err != nil {
		s.logger.Errorf(providers.TypeScheduler, "Temporary disable check failed: %s", err)
	}
}

func (s *Scheduler) Stop() {
	if s.initial != nil {
		s.initial.Stop()
	}
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	if s.persister == nil {
		return nil
	}
	return s.persister.Restore()
}

func (s *Scheduler) Persist() error {
	if s.persister == nil {
		return nil
	}

	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	err := s.persister.Persist()
	if err != nil {
		s.logger.Errorf(providers.TypeScheduler, "Error while persisting store: %s", err)
		return err
	}
	return nil
}

func NewScheduler(
	config *structures.Config,
	logger providers.Logger,
	clock providers.ClockInterface,
	store storageInterfaces.Store,
	streak services.StreakServiceInterface,
	settings services.SettingsServiceInterface,
) interfaces.SchedulerInterface {
	s := &Scheduler{
		config:   config,
		logger:   logger,
		clock:    clock,
		streak:   streak,
		settings: settings,
	}
	if p, ok := store.(storageInterfaces.Persister); ok {
		s.persister = p
	}
	return s
}
