package controllers

import (
	"fmt"
	"mindful/internal/blocking"
	"net/http"
	"time"
)

type HealthController struct {
	ruleSets  blocking.RuleSetManagerInterface
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Enabled       bool    `json:"enabled"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Enabled:       hc.ruleSets.IsEnabled(blocking.DefaultRuleSetID),
	})
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(ruleSets blocking.RuleSetManagerInterface) *HealthController {
	return &HealthController{
		ruleSets:  ruleSets,
		startTime: time.Now(),
	}
}
