package models

type Quote struct {
	Text     string `json:"text"`
	Author   string `json:"author"`
	Category string `json:"category,omitempty"`
}

// QuoteData mirrors the quotes.json document shipped with the UI.
type QuoteData struct {
	Quotes       []Quote  `json:"quotes"`
	Tips         []string `json:"tips"`
	Affirmations []string `json:"affirmations"`
}

// FallbackQuotes is served when the data file cannot be loaded.
var FallbackQuotes = QuoteData{
	Quotes: []Quote{
		{
			Text:     "The present moment is the only time over which we have dominion.",
			Author:   "Thich Nhat Hanh",
			Category: "mindfulness",
		},
		{
			Text:     "You are not your thoughts. You are the awareness behind your thoughts.",
			Author:   "Eckhart Tolle",
			Category: "mindfulness",
		},
	},
}
