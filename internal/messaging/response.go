package messaging

import (
	"errors"
	"mindful/internal/models"
)

// unknownActionMessage is the error text UI surfaces match on.
const unknownActionMessage = "Unknown action"

// Response is the tagged result of one message: Success with the payload
// field for the action, or Success=false with Error.
type Response struct {
	Success   bool                 `json:"success"`
	Streak    *models.StreakRecord `json:"streak,omitempty"`
	Enabled   *bool                `json:"enabled,omitempty"`
	Settings  *models.Settings     `json:"settings,omitempty"`
	Stats     *models.DailyStats   `json:"stats,omitempty"`
	Intention *models.Intention    `json:"intention,omitempty"`
	Error     string               `json:"error,omitempty"`
}

func failure(err error) Response {
	if errors.Is(err, ErrUnknownAction) {
		return Response{Error: unknownActionMessage}
	}
	return Response{Error: err.Error()}
}
