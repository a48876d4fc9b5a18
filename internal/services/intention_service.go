package services

import (
	"context"
	"errors"
	"fmt"
	"mindful/internal/models"
	"mindful/internal/providers"
	"mindful/internal/storage"
	"mindful/internal/storage/interfaces"

	"github.com/gookit/validate"
)

const (
	LastIntentionKey     = "last_intention"
	LastIntentionTimeKey = "last_intention_time"
)

var ErrInvalidIntention = errors.New("invalid intention")

type IntentionServiceInterface interface {
	RecordIntention(ctx context.Context, intention string) (models.Intention, error)
	LastIntention(ctx context.Context) (models.Intention, error)
}

type IntentionService struct {
	store  interfaces.Store
	clock  providers.ClockInterface
	logger providers.Logger
}

func NewIntentionService(store interfaces.Store, clock providers.ClockInterface, logger providers.Logger) IntentionServiceInterface {
	return &IntentionService{store: store, clock: clock, logger: logger}
}

// RecordIntention stores what the user chose to do instead of the blocked site.
func (i *IntentionService) RecordIntention(ctx context.Context, intention string) (models.Intention, error) {
	record := models.Intention{Intention: intention, Time: i.clock.Now().UnixMilli()}

	v := validate.Struct(&record)
	if !v.Validate() {
		return models.Intention{}, fmt.Errorf("%w: %s", ErrInvalidIntention, v.Errors.One())
	}

	err := storage.Save(ctx, i.store, map[string]any{
		LastIntentionKey:     record.Intention,
		LastIntentionTimeKey: record.Time,
	})
	if err != nil {
		return models.Intention{}, fmt.Errorf("record intention: %w", err)
	}
	i.logger.Debugf(providers.TypeApp, "Intention recorded: %s", record.Intention)
	return record, nil
}

func (i *IntentionService) LastIntention(ctx context.Context) (models.Intention, error) {
	var record models.Intention
	err := storage.LoadMany(ctx, i.store, map[string]any{
		LastIntentionKey:     &record.Intention,
		LastIntentionTimeKey: &record.Time,
	})
	if err != nil {
		return models.Intention{}, fmt.Errorf("last intention: %w", err)
	}
	return record, nil
}
