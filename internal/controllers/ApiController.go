package controllers

import (
	"context"
	"errors"
	"io"
	"mindful/internal/blocking"
	"mindful/internal/messaging"
	"mindful/internal/models"
	"mindful/internal/providers"
	"mindful/internal/services"
	"net/http"

	json "github.com/goccy/go-json"
)

const maxRequestBodySize = 64 << 10 // 64 KB

type ApiController struct {
	logger   providers.Logger
	router   messaging.RouterInterface
	counter  services.DailyCounterServiceInterface
	streak   services.StreakServiceInterface
	quotes   services.QuoteServiceInterface
	ruleSets blocking.RuleSetManagerInterface
}

func NewApiController(
	logger providers.Logger,
	router messaging.RouterInterface,
	counter services.DailyCounterServiceInterface,
	streak services.StreakServiceInterface,
	quotes services.QuoteServiceInterface,
	ruleSets blocking.RuleSetManagerInterface,
) *ApiController {
	return &ApiController{
		logger:   logger,
		router:   router,
		counter:  counter,
		streak:   streak,
		quotes:   quotes,
		ruleSets: ruleSets,
	}
}

type statsResponse struct {
	models.DailyStats
	Streak models.StreakRecord `json:"streak"`
}

type checkResponse struct {
	Blocked bool   `json:"blocked"`
	RuleSet string `json:"ruleset,omitempty"`
}

type quoteResponse struct {
	Kind  string        `json:"kind"`
	Quote *models.Quote `json:"quote,omitempty"`
	Text  string        `json:"text,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

// messageStatus maps a routing failure to an HTTP status. The body is the
// tagged result either way.
func messageStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, messaging.ErrInvalidRequest), errors.Is(err, messaging.ErrUnknownAction):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (ac *ApiController) ReceiveMessage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, messaging.Response{Error: "request body too large"})
		return
	}

	resp, err := ac.router.Handle(r.Context(), raw)
	writeJSON(w, messageStatus(err), resp)
}

func (ac *ApiController) GetStats(w http.ResponseWriter, r *http.Request) {
	resp, err := ac.stats(r.Context())
	if err != nil {
		ac.logger.Errorf(providers.TypeGet, "Error building stats: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (ac *ApiController) stats(ctx context.Context) (statsResponse, error) {
	daily, err := ac.counter.Stats(ctx)
	if err != nil {
		return statsResponse{}, err
	}
	streak, err := ac.streak.GetStreak(ctx)
	if err != nil {
		return statsResponse{}, err
	}
	return statsResponse{DailyStats: daily, Streak: streak}, nil
}

func (ac *ApiController) GetQuote(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	if kind == "" {
		kind = "quote"
	}

	resp := quoteResponse{Kind: kind}
	var ok bool
	switch kind {
	case "quote":
		var q models.Quote
		q, ok = ac.quotes.RandomQuote()
		resp.Quote = &q
	case "tip":
		resp.Text, ok = ac.quotes.RandomTip()
	case "affirmation":
		resp.Text, ok = ac.quotes.RandomAffirmation()
	default:
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (ac *ApiController) CheckURL(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("url")
	if target == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ruleSet, blocked := ac.ruleSets.Match(target)
	writeJSON(w, http.StatusOK, checkResponse{Blocked: blocked, RuleSet: ruleSet})
}
