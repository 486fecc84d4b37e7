package service

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"edu-guidance/internal/domain"
	"edu-guidance/internal/repository"
)

const defaultNewsResults = 5

// NewsService recommends news articles tagged with RIASEC traits using the
// single-layer weighted scorer: articles matching an earlier-requested
// trait outrank later ones, stable order otherwise.
type NewsService struct {
	news   repository.NewsRepository
	logger *zap.Logger
}

func NewNewsService(news repository.NewsRepository, logger *zap.Logger) *NewsService {
	return &NewsService{news: news, logger: logger}
}

// Recommend scores articles against the requested trait letters and caps
// the result. Invalid letters are dropped; an input with none left fails.
func (s *NewsService) Recommend(ctx context.Context, traitInput string, limit int) ([]domain.NewsRecommendation, error) {
	traits := parseTraitLetters(traitInput)
	if len(traits) == 0 {
		return nil, ErrInvalidTraitInput
	}
	if limit <= 0 {
		limit = defaultNewsResults
	}

	articles, err := s.news.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatasetUnavailable, err)
	}

	// Earlier requested traits weigh more: first trait scores highest.
	traitWeight := make(map[string]float64, len(traits))
	for i, trait := range traits {
		traitWeight[trait] = float64(len(traits) - i)
	}

	var out []domain.NewsRecommendation
	for _, article := range articles {
		weight, ok := traitWeight[article.Trait]
		if !ok {
			continue
		}
		out = append(out, domain.NewsRecommendation{
			NewsArticle:      article,
			TraitDescription: domain.TraitDescriptions[article.Trait],
			RelevanceScore:   weight,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RelevanceScore > out[j].RelevanceScore
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ByType lists every article tagged with one trait.
func (s *NewsService) ByType(ctx context.Context, trait string) ([]domain.NewsArticle, error) {
	codes := parseTraitLetters(trait)
	if len(codes) != 1 {
		return nil, ErrInvalidTraitInput
	}
	articles, err := s.news.ListByTrait(ctx, codes[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatasetUnavailable, err)
	}
	return articles, nil
}

// NewsStats summarizes the news dataset.
type NewsStats struct {
	TotalArticles   int            `json:"total_articles"`
	ArticlesByTrait map[string]int `json:"articles_by_riasec"`
}

// Stats counts articles per trait.
func (s *NewsService) Stats(ctx context.Context) (NewsStats, error) {
	articles, err := s.news.List(ctx)
	if err != nil {
		return NewsStats{}, fmt.Errorf("%w: %v", ErrDatasetUnavailable, err)
	}
	if len(articles) == 0 {
		return NewsStats{}, ErrDatasetUnavailable
	}
	stats := NewsStats{
		TotalArticles:   len(articles),
		ArticlesByTrait: make(map[string]int),
	}
	for _, article := range articles {
		stats.ArticlesByTrait[article.Trait]++
	}
	return stats, nil
}
