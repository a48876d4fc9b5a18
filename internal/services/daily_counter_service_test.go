package services

import (
	"context"
	"errors"
	"mindful/internal/storage"
	"mindful/internal/structures"
	"mindful/internal/testutil"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCounterFixture() (*testutil.MockStore, *testutil.MockClock, *testutil.MockMetrics, DailyCounterServiceInterface) {
	store := &testutil.MockStore{}
	clock := testutil.NewMockClock(thursday)
	metrics := &testutil.MockMetrics{}
	conf := &structures.Config{Stats: structures.StatsConfig{MinutesPerBlock: 5.5}}
	return store, clock, metrics, NewDailyCounterService(conf, store, clock, metrics)
}

func TestDailyCounter_Sequence(t *testing.T) {
	_, clock, metrics, svc := newCounterFixture()
	ctx := context.Background()

	n, err := svc.GetBlocksToday(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = svc.RecordBlockToday(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = svc.RecordBlockToday(ctx)
	require.NoError(t, err)
	n, err = svc.GetBlocksToday(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, metrics.BlocksToday)

	clock.AddDays(1)
	n, err = svc.GetBlocksToday(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestDailyCounter_KeepsPreviousDays(t *testing.T) {
	store, clock, _, svc := newCounterFixture()
	ctx := context.Background()

	_, err := svc.RecordBlockToday(ctx)
	require.NoError(t, err)
	clock.AddDays(1)
	_, err = svc.RecordBlockToday(ctx)
	require.NoError(t, err)

	raw, ok := store.Raw(DailyBlocksKey)
	require.True(t, ok)
	assert.JSONEq(t, `{"`+thu+`":1,"`+fri+`":1}`, string(raw))
}

func TestDailyCounter_StoredNullStartsEmpty(t *testing.T) {
	store, _, _, svc := newCounterFixture()
	ctx := context.Background()
	require.NoError(t, storage.Save(ctx, store, map[string]any{DailyBlocksKey: nil}))

	n, err := svc.RecordBlockToday(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = svc.GetBlocksToday(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestDailyCounter_Stats(t *testing.T) {
	_, _, _, svc := newCounterFixture()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.RecordBlockToday(ctx)
		require.NoError(t, err)
	}

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, thu, stats.Date)
	assert.Equal(t, 3, stats.BlocksToday)
	assert.Equal(t, 16, stats.MinutesSaved)
}

func TestDailyCounter_ConcurrentIncrementsAreNotLost(t *testing.T) {
	_, _, _, svc := newCounterFixture()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RecordBlockToday(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	n, err := svc.GetBlocksToday(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 50, n)
}

func TestDailyCounter_StorageFailure(t *testing.T) {
	store, _, _, svc := newCounterFixture()
	store.SetErr = errors.New("read-only")

	_, err := svc.RecordBlockToday(context.Background())
	assert.ErrorIs(t, err, storage.ErrStorageFailure)

	store.GetErr = errors.New("gone")
	_, err = svc.GetBlocksToday(context.Background())
	assert.ErrorIs(t, err, storage.ErrStorageFailure)
	_, err = svc.Stats(context.Background())
	assert.ErrorIs(t, err, storage.ErrStorageFailure)
}
