package messaging

import (
	"context"
	"errors"
	"fmt"
	"mindful/internal/providers"
	"mindful/internal/services"
	"time"
)

type RouterInterface interface {
	Dispatch(ctx context.Context, req Request) (Response, error)
	Handle(ctx context.Context, raw []byte) (Response, error)
}

// Router maps each request variant to its service call. It is the only
// place errors are turned into failure responses; nothing it returns is
// fatal to the caller.
type Router struct {
	streak     services.StreakServiceInterface
	counter    services.DailyCounterServiceInterface
	settings   services.SettingsServiceInterface
	intentions services.IntentionServiceInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

func NewRouter(
	streak services.StreakServiceInterface,
	counter services.DailyCounterServiceInterface,
	settings services.SettingsServiceInterface,
	intentions services.IntentionServiceInterface,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
) RouterInterface {
	return &Router{
		streak:     streak,
		counter:    counter,
		settings:   settings,
		intentions: intentions,
		logger:     logger,
		metrics:    metrics,
	}
}

// Handle decodes and dispatches a raw message. The returned error is the
// cause of a failure response, for callers that map it to a status code.
func (r *Router) Handle(ctx context.Context, raw []byte) (Response, error) {
	req, err := Decode(raw)
	if err != nil {
		r.logger.Warnf(providers.TypeRouter, "Rejected message: %s", err)
		r.metrics.IncActionsTotal("invalid", false)
		return failure(err), err
	}
	return r.Dispatch(ctx, req)
}

func (r *Router) Dispatch(ctx context.Context, req Request) (resp Response, err error) {
	action := "unknown"
	if req != nil {
		action = req.Action()
	}

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrHandlerException, p)
		}
		if err != nil {
			resp = failure(err)
			r.logger.Errorf(providers.TypeRouter, "Action %s failed: %s", action, err)
		}
		r.metrics.IncActionsTotal(action, err == nil)
	}()

	resp, err = r.dispatch(ctx, req)
	if err == nil {
		resp.Success = true
	}
	return resp, err
}

func (r *Router) dispatch(ctx context.Context, req Request) (Response, error) {
	switch m := req.(type) {
	case GetStreak:
		streak, err := r.streak.GetStreak(ctx)
		return Response{Streak: &streak}, err

	case RecordBlockedVisit:
		streak, err := r.streak.RecordBlockedVisit(ctx)
		return Response{Streak: &streak}, err

	case ResetStreak:
		streak, err := r.streak.ResetStreak(ctx)
		return Response{Streak: &streak}, err

	case ToggleExtension:
		if err := r.settings.SetEnabled(ctx, m.Enabled); err != nil {
			return Response{}, err
		}
		enabled := m.Enabled
		return Response{Enabled: &enabled}, nil

	case GetSettings:
		settings, err := r.settings.Get(ctx)
		return Response{Settings: &settings}, err

	case RecordBlock:
		if _, err := r.counter.RecordBlockToday(ctx); err != nil {
			return Response{}, err
		}
		stats, err := r.counter.Stats(ctx)
		return Response{Stats: &stats}, err

	case GetStats:
		stats, err := r.counter.Stats(ctx)
		if err != nil {
			return Response{}, err
		}
		streak, err := r.streak.GetStreak(ctx)
		return Response{Stats: &stats, Streak: &streak}, err

	case RecordIntention:
		intention, err := r.intentions.RecordIntention(ctx, m.Intention)
		if errors.Is(err, services.ErrInvalidIntention) {
			return Response{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
		return Response{Intention: &intention}, err

	case DisableTemporarily:
		settings, err := r.settings.DisableFor(ctx, time.Duration(m.Minutes)*time.Minute)
		return Response{Settings: &settings}, err

	default:
		return Response{}, fmt.Errorf("%w: %T", ErrUnknownAction, req)
	}
}
