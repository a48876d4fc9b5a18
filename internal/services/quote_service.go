package services

import (
	"math/rand/v2"
	"mindful/internal/models"
	"mindful/internal/providers"
	"mindful/internal/structures"
	"os"

	json "github.com/goccy/go-json"
)

type QuoteServiceInterface interface {
	RandomQuote() (models.Quote, bool)
	RandomTip() (string, bool)
	RandomAffirmation() (string, bool)
}

// QuoteService serves the quotes document loaded once at startup.
type QuoteService struct {
	data models.QuoteData
}

func NewQuoteService(conf *structures.Config, logger providers.Logger) QuoteServiceInterface {
	data, err := loadQuotes(conf.Quotes.FilePath)
	if err != nil {
		logger.Warnf(providers.TypeApp, "Error loading quotes from %q, using fallback: %s", conf.Quotes.FilePath, err)
		data = models.FallbackQuotes
	}
	return &QuoteService{data: data}
}

func loadQuotes(path string) (models.QuoteData, error) {
	var data models.QuoteData
	raw, err := os.ReadFile(path)
	if err != nil {
		return data, err
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return data, err
	}
	if len(data.Quotes) == 0 {
		data.Quotes = models.FallbackQuotes.Quotes
	}
	return data, nil
}

func pick[T any](items []T) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}
	return items[rand.IntN(len(items))], true
}

func (q *QuoteService) RandomQuote() (models.Quote, bool) {
	return pick(q.data.Quotes)
}

func (q *QuoteService) RandomTip() (string, bool) {
	return pick(q.data.Tips)
}

func (q *QuoteService) RandomAffirmation() (string, bool) {
	return pick(q.data.Affirmations)
}
