package services

import (
	"context"
	"errors"
	"mindful/internal/blocking"
	"mindful/internal/models"
	"mindful/internal/storage"
	"mindful/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type settingsFixture struct {
	store    *testutil.MockStore
	clock    *testutil.MockClock
	ruleSets *testutil.MockRuleSets
	metrics  *testutil.MockMetrics
	logger   *testutil.MockLogger
	service  SettingsServiceInterface
}

func newSettingsFixture() *settingsFixture {
	f := &settingsFixture{
		store:    &testutil.MockStore{},
		clock:    testutil.NewMockClock(thursday),
		ruleSets: &testutil.MockRuleSets{},
		metrics:  &testutil.MockMetrics{},
		logger:   &testutil.MockLogger{},
	}
	f.service = NewSettingsService(f.store, f.ruleSets, f.clock, f.logger, f.metrics)
	return f
}

func TestEnsureInstalled_FirstRunWritesDefaults(t *testing.T) {
	f := newSettingsFixture()
	ctx := context.Background()

	fresh, err := f.service.EnsureInstalled(ctx)
	require.NoError(t, err)
	assert.True(t, fresh)

	settings, err := f.service.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Settings{
		ExtensionEnabled: true,
		FirstInstall:     true,
		InstallDate:      thursday.UnixMilli(),
	}, settings)
}

func TestEnsureInstalled_SecondRunIsNoop(t *testing.T) {
	f := newSettingsFixture()
	ctx := context.Background()

	_, err := f.service.EnsureInstalled(ctx)
	require.NoError(t, err)
	require.NoError(t, f.service.SetEnabled(ctx, false))

	f.clock.AddDays(3)
	fresh, err := f.service.EnsureInstalled(ctx)
	require.NoError(t, err)
	assert.False(t, fresh)

	settings, err := f.service.Get(ctx)
	require.NoError(t, err)
	assert.False(t, settings.ExtensionEnabled, "existing settings must survive")
	assert.Equal(t, thursday.UnixMilli(), settings.InstallDate)
}

func TestGet_EmptyStore(t *testing.T) {
	f := newSettingsFixture()
	settings, err := f.service.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Settings{}, settings)
}

func TestSetEnabled_DrivesRuleSet(t *testing.T) {
	f := newSettingsFixture()
	ctx := context.Background()

	require.NoError(t, f.service.SetEnabled(ctx, false))
	assert.False(t, f.ruleSets.IsEnabled(blocking.DefaultRuleSetID))
	assert.False(t, f.metrics.ExtensionEnabled)

	require.NoError(t, f.service.SetEnabled(ctx, true))
	assert.True(t, f.ruleSets.IsEnabled(blocking.DefaultRuleSetID))
	assert.True(t, f.metrics.ExtensionEnabled)

	settings, err := f.service.Get(ctx)
	require.NoError(t, err)
	assert.True(t, settings.ExtensionEnabled)
}

func TestSetEnabled_RuleSetFailureStoresNothing(t *testing.T) {
	f := newSettingsFixture()
	ctx := context.Background()
	_, err := f.service.EnsureInstalled(ctx)
	require.NoError(t, err)
	setCalls := f.store.SetCalls

	f.ruleSets.Err = blocking.ErrUnknownRuleSet
	err = f.service.SetEnabled(ctx, false)
	assert.ErrorIs(t, err, blocking.ErrUnknownRuleSet)
	assert.Equal(t, setCalls, f.store.SetCalls)

	settings, err := f.service.Get(ctx)
	require.NoError(t, err)
	assert.True(t, settings.ExtensionEnabled)
}

func TestSetEnabled_StorageFailureRestoresRuleSet(t *testing.T) {
	f := newSettingsFixture()
	ctx := context.Background()
	require.NoError(t, f.service.SetEnabled(ctx, true))

	f.store.SetErr = errors.New("disk full")
	err := f.service.SetEnabled(ctx, false)
	assert.ErrorIs(t, err, storage.ErrStorageFailure)
	assert.True(t, f.ruleSets.IsEnabled(blocking.DefaultRuleSetID))
	assert.True(t, f.metrics.ExtensionEnabled)
}

func TestDisableFor_AndExpire(t *testing.T) {
	f := newSettingsFixture()
	ctx := context.Background()
	require.NoError(t, f.service.SetEnabled(ctx, true))

	settings, err := f.service.DisableFor(ctx, 10*time.Minute)
	require.NoError(t, err)
	assert.False(t, settings.ExtensionEnabled)
	assert.Equal(t, thursday.Add(10*time.Minute).UnixMilli(), settings.ReenableAt)
	assert.False(t, f.ruleSets.IsEnabled(blocking.DefaultRuleSetID))

	f.clock.Set(thursday.Add(9 * time.Minute))
	expired, err := f.service.ExpireTemporaryDisable(ctx)
	require.NoError(t, err)
	assert.False(t, expired)

	f.clock.Set(thursday.Add(10 * time.Minute))
	expired, err = f.service.ExpireTemporaryDisable(ctx)
	require.NoError(t, err)
	assert.True(t, expired)
	assert.True(t, f.ruleSets.IsEnabled(blocking.DefaultRuleSetID))

	settings, err = f.service.Get(ctx)
	require.NoError(t, err)
	assert.True(t, settings.ExtensionEnabled)
	assert.Zero(t, settings.ReenableAt)
}

func TestDisableFor_DefaultDuration(t *testing.T) {
	f := newSettingsFixture()

	settings, err := f.service.DisableFor(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, thursday.Add(DefaultDisableDuration).UnixMilli(), settings.ReenableAt)
}

func TestToggleCancelsPendingDisable(t *testing.T) {
	f := newSettingsFixture()
	ctx := context.Background()

	_, err := f.service.DisableFor(ctx, time.Minute)
	require.NoError(t, err)
	require.NoError(t, f.service.SetEnabled(ctx, false))

	f.clock.Set(thursday.Add(time.Hour))
	expired, err := f.service.ExpireTemporaryDisable(ctx)
	require.NoError(t, err)
	assert.False(t, expired, "explicit toggle overrides the timer")
	assert.False(t, f.ruleSets.IsEnabled(blocking.DefaultRuleSetID))
}

func TestExpireTemporaryDisable_NothingPending(t *testing.T) {
	f := newSettingsFixture()
	expired, err := f.service.ExpireTemporaryDisable(context.Background())
	require.NoError(t, err)
	assert.False(t, expired)
	assert.Equal(t, 0, f.ruleSets.Calls)
}

func TestSyncRuleSets(t *testing.T) {
	f := newSettingsFixture()
	ctx := context.Background()
	require.NoError(t, storage.Save(ctx, f.store, map[string]any{ExtensionEnabledKey: false}))
	f.ruleSets.Enabled = map[string]bool{blocking.DefaultRuleSetID: true}

	require.NoError(t, f.service.SyncRuleSets(ctx))
	assert.False(t, f.ruleSets.IsEnabled(blocking.DefaultRuleSetID))
}
