package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"edu-guidance/internal/domain"
)

type mockNewsRepo struct {
	articles []domain.NewsArticle
	err      error
}

func (m *mockNewsRepo) List(ctx context.Context) ([]domain.NewsArticle, error) {
	return m.articles, m.err
}

func (m *mockNewsRepo) ListByTrait(ctx context.Context, trait string) ([]domain.NewsArticle, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.NewsArticle
	for _, a := range m.articles {
		if a.Trait == trait {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockNewsRepo) InsertBatch(ctx context.Context, articles []domain.NewsArticle) error {
	return nil
}

func testArticles() []domain.NewsArticle {
	return []domain.NewsArticle{
		{NewsID: "n1", Headline: "Robotics lab opens", Trait: "R"},
		{NewsID: "n2", Headline: "Research grant announced", Trait: "I"},
		{NewsID: "n3", Headline: "Art fair this weekend", Trait: "A"},
		{NewsID: "n4", Headline: "New vocational workshop", Trait: "R"},
		{NewsID: "n5", Headline: "Startup accelerator launched", Trait: "E"},
		{NewsID: "n6", Headline: "Science olympiad results", Trait: "I"},
	}
}

func TestNewsService_Recommend(t *testing.T) {
	ctx := context.Background()
	svc := NewNewsService(&mockNewsRepo{articles: testArticles()}, zap.NewNop())

	got, err := svc.Recommend(ctx, "IR", 10)
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	// Two I articles and two R articles; A and E never match.
	if len(got) != 4 {
		t.Fatalf("expected 4 recommendations, got %d", len(got))
	}
	// I was requested first, so I articles rank above R articles.
	if got[0].Trait != "I" || got[1].Trait != "I" {
		t.Fatalf("expected I articles first, got %s, %s", got[0].Trait, got[1].Trait)
	}
	if got[0].RelevanceScore != 2 || got[2].RelevanceScore != 1 {
		t.Fatalf("unexpected weights: %v, %v", got[0].RelevanceScore, got[2].RelevanceScore)
	}
	// Stable within a weight class: dataset order preserved.
	if got[0].NewsID != "n2" || got[1].NewsID != "n6" {
		t.Fatalf("expected dataset order within ties, got %s, %s", got[0].NewsID, got[1].NewsID)
	}
	if got[0].TraitDescription == "" {
		t.Fatal("expected a trait description on recommendations")
	}
}

func TestNewsService_Recommend_DefaultLimit(t *testing.T) {
	ctx := context.Background()
	var many []domain.NewsArticle
	for i := 0; i < 12; i++ {
		many = append(many, domain.NewsArticle{NewsID: "n", Trait: "S"})
	}
	svc := NewNewsService(&mockNewsRepo{articles: many}, zap.NewNop())

	got, err := svc.Recommend(ctx, "S", 0)
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("expected default limit 5, got %d", len(got))
	}
}

func TestNewsService_Recommend_InvalidInput(t *testing.T) {
	ctx := context.Background()
	svc := NewNewsService(&mockNewsRepo{articles: testArticles()}, zap.NewNop())

	if _, err := svc.Recommend(ctx, "XYZ", 5); !errors.Is(err, ErrInvalidTraitInput) {
		t.Fatalf("expected ErrInvalidTraitInput, got %v", err)
	}
}

func TestNewsService_ByType(t *testing.T) {
	ctx := context.Background()
	svc := NewNewsService(&mockNewsRepo{articles: testArticles()}, zap.NewNop())

	got, err := svc.ByType(ctx, "r")
	if err != nil {
		t.Fatalf("by type failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 R articles, got %d", len(got))
	}

	if _, err := svc.ByType(ctx, "RI"); !errors.Is(err, ErrInvalidTraitInput) {
		t.Fatalf("expected ErrInvalidTraitInput for multi-letter input, got %v", err)
	}
	if _, err := svc.ByType(ctx, "Z"); !errors.Is(err, ErrInvalidTraitInput) {
		t.Fatalf("expected ErrInvalidTraitInput for unknown letter, got %v", err)
	}
}

func TestNewsService_Stats(t *testing.T) {
	ctx := context.Background()
	svc := NewNewsService(&mockNewsRepo{articles: testArticles()}, zap.NewNop())

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TotalArticles != 6 {
		t.Fatalf("expected 6 articles, got %d", stats.TotalArticles)
	}
	if stats.ArticlesByTrait["R"] != 2 || stats.ArticlesByTrait["I"] != 2 {
		t.Fatalf("unexpected trait counts: %v", stats.ArticlesByTrait)
	}

	empty := NewNewsService(&mockNewsRepo{}, zap.NewNop())
	if _, err := empty.Stats(ctx); !errors.Is(err, ErrDatasetUnavailable) {
		t.Fatalf("expected ErrDatasetUnavailable, got %v", err)
	}
}
