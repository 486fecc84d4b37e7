package domain

// NewsArticle is one row of the news reference dataset, tagged with a
// single RIASEC trait.
type NewsArticle struct {
	NewsID      string `json:"news_id"`
	Headline    string `json:"headline"`
	Description string `json:"description"`
	Trait       string `json:"riasec_type"`
}

// NewsRecommendation augments an article with its per-request relevance.
type NewsRecommendation struct {
	NewsArticle
	TraitDescription string  `json:"riasec_description"`
	RelevanceScore   float64 `json:"relevance_score"`
}
