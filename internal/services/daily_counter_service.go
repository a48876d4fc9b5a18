package services

import (
	"context"
	"fmt"
	"mindful/internal/models"
	"mindful/internal/providers"
	"mindful/internal/storage"
	"mindful/internal/storage/interfaces"
	"mindful/internal/structures"
	"sync"
)

const DailyBlocksKey = "daily_blocks"

type DailyCounterServiceInterface interface {
	RecordBlockToday(ctx context.Context) (int, error)
	GetBlocksToday(ctx context.Context) (int, error)
	Stats(ctx context.Context) (models.DailyStats, error)
}

type DailyCounterService struct {
	mu              sync.Mutex
	store           interfaces.Store
	clock           providers.ClockInterface
	metrics         providers.MetricsProviderInterface
	minutesPerBlock float64
}

func NewDailyCounterService(conf *structures.Config, store interfaces.Store, clock providers.ClockInterface, metrics providers.MetricsProviderInterface) DailyCounterServiceInterface {
	return &DailyCounterService{
		store:           store,
		clock:           clock,
		metrics:         metrics,
		minutesPerBlock: conf.Stats.MinutesPerBlock,
	}
}

func (d *DailyCounterService) load(ctx context.Context) (models.DailyBlocks, error) {
	blocks := models.DailyBlocks{}
	if _, err := storage.Load(ctx, d.store, DailyBlocksKey, &blocks); err != nil {
		return nil, err
	}
	// A stored null decodes to a nil map.
	if blocks == nil {
		blocks = models.DailyBlocks{}
	}
	return blocks, nil
}

func (d *DailyCounterService) RecordBlockToday(ctx context.Context) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	blocks, err := d.load(ctx)
	if err != nil {
		return 0, fmt.Errorf("record block: %w", err)
	}
	count := blocks.Inc(d.clock.Today())
	if err := storage.Save(ctx, d.store, map[string]any{DailyBlocksKey: blocks}); err != nil {
		return 0, fmt.Errorf("record block: %w", err)
	}
	d.metrics.SetBlocksToday(count)
	return count, nil
}

func (d *DailyCounterService) GetBlocksToday(ctx context.Context) (int, error) {
	blocks, err := d.load(ctx)
	if err != nil {
		return 0, fmt.Errorf("get blocks today: %w", err)
	}
	return blocks.Get(d.clock.Today()), nil
}

func (d *DailyCounterService) Stats(ctx context.Context) (models.DailyStats, error) {
	blocks, err := d.load(ctx)
	if err != nil {
		return models.DailyStats{}, fmt.Errorf("daily stats: %w", err)
	}
	today := d.clock.Today()
	return models.NewDailyStats(today, blocks.Get(today), d.minutesPerBlock), nil
}
