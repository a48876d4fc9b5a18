package messaging

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
)

const (
	ActionGetStreak          = "getStreak"
	ActionRecordBlockedVisit = "recordBlockedVisit"
	ActionResetStreak        = "resetStreak"
	ActionToggleExtension    = "toggleExtension"
	ActionGetSettings        = "getSettings"
	ActionRecordBlock        = "recordBlock"
	ActionGetStats           = "getStats"
	ActionRecordIntention    = "recordIntention"
	ActionDisableTemporarily = "disableTemporarily"
)

var (
	ErrUnknownAction    = errors.New("unknown action")
	ErrInvalidRequest   = errors.New("invalid request")
	ErrHandlerException = errors.New("handler exception")
)

// Request is one of the message variants below. The set is closed.
type Request interface {
	Action() string
	isRequest()
}

type GetStreak struct{}
type RecordBlockedVisit struct{}
type ResetStreak struct{}
type GetSettings struct{}
type RecordBlock struct{}
type GetStats struct{}

type ToggleExtension struct {
	Enabled bool
}

type RecordIntention struct {
	Intention string
}

// DisableTemporarily turns blocking off for Minutes; zero means the default.
type DisableTemporarily struct {
	Minutes int
}

func (GetStreak) Action() string          { return ActionGetStreak }
func (RecordBlockedVisit) Action() string { return ActionRecordBlockedVisit }
func (ResetStreak) Action() string        { return ActionResetStreak }
func (ToggleExtension) Action() string    { return ActionToggleExtension }
func (GetSettings) Action() string        { return ActionGetSettings }
func (RecordBlock) Action() string        { return ActionRecordBlock }
func (GetStats) Action() string           { return ActionGetStats }
func (RecordIntention) Action() string    { return ActionRecordIntention }
func (DisableTemporarily) Action() string { return ActionDisableTemporarily }

func (GetStreak) isRequest()          {}
func (RecordBlockedVisit) isRequest() {}
func (ResetStreak) isRequest()        {}
func (ToggleExtension) isRequest()    {}
func (GetSettings) isRequest()        {}
func (RecordBlock) isRequest()        {}
func (GetStats) isRequest()           {}
func (RecordIntention) isRequest()    {}
func (DisableTemporarily) isRequest() {}

type envelope struct {
	Action    string `json:"action"`
	Enabled   *bool  `json:"enabled"`
	Intention string `json:"intention"`
	Minutes   *int   `json:"minutes"`
}

// Decode parses a {"action": ...} message into its typed variant.
func Decode(raw []byte) (Request, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}

	switch env.Action {
	case ActionGetStreak:
		return GetStreak{}, nil
	case ActionRecordBlockedVisit:
		return RecordBlockedVisit{}, nil
	case ActionResetStreak:
		return ResetStreak{}, nil
	case ActionGetSettings:
		return GetSettings{}, nil
	case ActionRecordBlock:
		return RecordBlock{}, nil
	case ActionGetStats:
		return GetStats{}, nil
	case ActionToggleExtension:
		if env.Enabled == nil {
			return nil, fmt.Errorf("%w: %s requires enabled", ErrInvalidRequest, env.Action)
		}
		return ToggleExtension{Enabled: *env.Enabled}, nil
	case ActionRecordIntention:
		return RecordIntention{Intention: env.Intention}, nil
	case ActionDisableTemporarily:
		req := DisableTemporarily{}
		if env.Minutes != nil {
			if *env.Minutes <= 0 {
				return nil, fmt.Errorf("%w: minutes must be positive", ErrInvalidRequest)
			}
			req.Minutes = *env.Minutes
		}
		return req, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, env.Action)
	}
}
