package services

import (
	"mindful/internal/models"
	"mindful/internal/structures"
	"mindful/internal/testutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quoteConfig(path string) *structures.Config {
	return &structures.Config{Quotes: structures.QuotesConfig{FilePath: path}}
}

func TestQuoteService_LoadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotes.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"quotes": [{"text": "Breathe.", "author": "Anon", "category": "calm"}],
		"tips": ["Close the tab."],
		"affirmations": ["I choose where my attention goes."]
	}`), 0644))

	logger := &testutil.MockLogger{}
	svc := NewQuoteService(quoteConfig(path), logger)

	q, ok := svc.RandomQuote()
	require.True(t, ok)
	assert.Equal(t, models.Quote{Text: "Breathe.", Author: "Anon", Category: "calm"}, q)

	tip, ok := svc.RandomTip()
	require.True(t, ok)
	assert.Equal(t, "Close the tab.", tip)

	a, ok := svc.RandomAffirmation()
	require.True(t, ok)
	assert.Equal(t, "I choose where my attention goes.", a)
	assert.False(t, logger.Has("warn"))
}

func TestQuoteService_MissingFileFallsBack(t *testing.T) {
	logger := &testutil.MockLogger{}
	svc := NewQuoteService(quoteConfig(filepath.Join(t.TempDir(), "nope.json")), logger)

	q, ok := svc.RandomQuote()
	require.True(t, ok)
	assert.Contains(t, models.FallbackQuotes.Quotes, q)
	assert.True(t, logger.Has("warn"))

	_, ok = svc.RandomTip()
	assert.False(t, ok)
}

func TestQuoteService_MalformedFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotes.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"quotes": [`), 0644))

	logger := &testutil.MockLogger{}
	svc := NewQuoteService(quoteConfig(path), logger)

	q, ok := svc.RandomQuote()
	require.True(t, ok)
	assert.Contains(t, models.FallbackQuotes.Quotes, q)
	assert.True(t, logger.Has("warn"))
}

func TestQuoteService_EmptyQuoteListUsesFallbackQuotes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotes.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"quotes": [], "tips": ["t"]}`), 0644))

	svc := NewQuoteService(quoteConfig(path), &testutil.MockLogger{})

	q, ok := svc.RandomQuote()
	require.True(t, ok)
	assert.Contains(t, models.FallbackQuotes.Quotes, q)
	tip, ok := svc.RandomTip()
	require.True(t, ok)
	assert.Equal(t, "t", tip)
}
