package services

import (
	"context"
	"fmt"
	"mindful/internal/blocking"
	"mindful/internal/models"
	"mindful/internal/providers"
	"mindful/internal/storage"
	"mindful/internal/storage/interfaces"
	"sync"
	"time"
)

const (
	ExtensionEnabledKey = "extension_enabled"
	FirstInstallKey     = "first_install"
	InstallDateKey      = "install_date"
	ReenableAtKey       = "reenable_at"
)

// DefaultDisableDuration is used when a temporary disable names no duration.
const DefaultDisableDuration = 10 * time.Minute

type SettingsServiceInterface interface {
	EnsureInstalled(ctx context.Context) (bool, error)
	Get(ctx context.Context) (models.Settings, error)
	SetEnabled(ctx context.Context, enabled bool) error
	DisableFor(ctx context.Context, d time.Duration) (models.Settings, error)
	ExpireTemporaryDisable(ctx context.Context) (bool, error)
	SyncRuleSets(ctx context.Context) error
}

type SettingsService struct {
	mu       sync.Mutex
	store    interfaces.Store
	ruleSets blocking.RuleSetManagerInterface
	clock    providers.ClockInterface
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
}

func NewSettingsService(store interfaces.Store, ruleSets blocking.RuleSetManagerInterface, clock providers.ClockInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) SettingsServiceInterface {
	return &SettingsService{
		store:    store,
		ruleSets: ruleSets,
		clock:    clock,
		logger:   logger,
		metrics:  metrics,
	}
}

// EnsureInstalled writes the install defaults the first time the daemon runs
// against a store and reports whether it did so.
func (s *SettingsService) EnsureInstalled(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var installDate int64
	found, err := storage.Load(ctx, s.store, InstallDateKey, &installDate)
	if err != nil {
		return false, fmt.Errorf("check install: %w", err)
	}
	if found {
		return false, nil
	}

	err = storage.Save(ctx, s.store, map[string]any{
		ExtensionEnabledKey: true,
		FirstInstallKey:     true,
		InstallDateKey:      s.clock.Now().UnixMilli(),
	})
	if err != nil {
		return false, fmt.Errorf("install defaults: %w", err)
	}
	s.logger.Infof(providers.TypeApp, "First run, install defaults written")
	return true, nil
}

func (s *SettingsService) Get(ctx context.Context) (models.Settings, error) {
	var settings models.Settings
	err := storage.LoadMany(ctx, s.store, map[string]any{
		ExtensionEnabledKey: &settings.ExtensionEnabled,
		FirstInstallKey:     &settings.FirstInstall,
		InstallDateKey:      &settings.InstallDate,
		ReenableAtKey:       &settings.ReenableAt,
	})
	if err != nil {
		return models.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	return settings, nil
}

// SetEnabled applies the switch to the default rule set, then persists it and
// cancels any pending temporary disable.
func (s *SettingsService) SetEnabled(ctx context.Context, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setEnabled(ctx, enabled, 0)
}

// setEnabled leaves the stored flag and the rule set agreeing on failure: a
// rejected rule set change stores nothing, a failed write puts the rule set back.
func (s *SettingsService) setEnabled(ctx context.Context, enabled bool, reenableAt int64) error {
	was := s.ruleSets.IsEnabled(blocking.DefaultRuleSetID)
	if err := s.applyRuleSet(enabled); err != nil {
		return fmt.Errorf("toggle extension: %w", err)
	}

	err := storage.Save(ctx, s.store, map[string]any{
		ExtensionEnabledKey: enabled,
		ReenableAtKey:       reenableAt,
	})
	if err != nil {
		if rerr := s.applyRuleSet(was); rerr != nil {
			s.logger.Errorf(providers.TypeApp, "Could not restore rule set %s after failed write: %s", blocking.DefaultRuleSetID, rerr)
		}
		return fmt.Errorf("toggle extension: %w", err)
	}
	s.metrics.SetExtensionEnabled(enabled)
	return nil
}

func (s *SettingsService) applyRuleSet(enabled bool) error {
	if enabled {
		return s.ruleSets.UpdateEnabledRulesets([]string{blocking.DefaultRuleSetID}, nil)
	}
	return s.ruleSets.UpdateEnabledRulesets(nil, []string{blocking.DefaultRuleSetID})
}

// DisableFor turns blocking off and records when it must come back on.
func (s *SettingsService) DisableFor(ctx context.Context, d time.Duration) (models.Settings, error) {
	if d <= 0 {
		d = DefaultDisableDuration
	}

	s.mu.Lock()
	reenableAt := s.clock.Now().Add(d).UnixMilli()
	err := s.setEnabled(ctx, false, reenableAt)
	s.mu.Unlock()
	if err != nil {
		return models.Settings{}, err
	}

	s.logger.Infof(providers.TypeApp, "Blocking disabled for %s", d)
	return s.Get(ctx)
}

// ExpireTemporaryDisable re-enables blocking once a pending temporary disable
// has run out. It reports whether it re-enabled.
func (s *SettingsService) ExpireTemporaryDisable(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var reenableAt int64
	if _, err := storage.Load(ctx, s.store, ReenableAtKey, &reenableAt); err != nil {
		return false, fmt.Errorf("check temporary disable: %w", err)
	}
	if reenableAt == 0 || s.clock.Now().UnixMilli() < reenableAt {
		return false, nil
	}

	if err := s.setEnabled(ctx, true, 0); err != nil {
		return false, err
	}
	s.logger.Infof(providers.TypeApp, "Temporary disable expired, blocking re-enabled")
	return true, nil
}

// SyncRuleSets applies the stored switch to the rule set manager. Called once
// at startup since rule set state is not persisted on its own.
func (s *SettingsService) SyncRuleSets(ctx context.Context) error {
	settings, err := s.Get(ctx)
	if err != nil {
		return err
	}
	if err := s.applyRuleSet(settings.ExtensionEnabled); err != nil {
		return fmt.Errorf("sync rule sets: %w", err)
	}
	s.metrics.SetExtensionEnabled(settings.ExtensionEnabled)
	return nil
}
