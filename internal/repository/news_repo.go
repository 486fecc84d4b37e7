package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"edu-guidance/internal/domain"
)

type NewsRepository interface {
	List(ctx context.Context) ([]domain.NewsArticle, error)
	ListByTrait(ctx context.Context, trait string) ([]domain.NewsArticle, error)
	InsertBatch(ctx context.Context, articles []domain.NewsArticle) error
}

type PgNewsRepository struct {
	pool *pgxpool.Pool
}

func NewPgNewsRepository(pool *pgxpool.Pool) *PgNewsRepository {
	return &PgNewsRepository{pool: pool}
}

func (r *PgNewsRepository) List(ctx context.Context) ([]domain.NewsArticle, error) {
	const query = `
		SELECT news_id, headline, description, riasec_type
		FROM news_articles
		ORDER BY news_id
	`
	return r.queryArticles(ctx, query)
}

func (r *PgNewsRepository) ListByTrait(ctx context.Context, trait string) ([]domain.NewsArticle, error) {
	const query = `
		SELECT news_id, headline, description, riasec_type
		FROM news_articles
		WHERE riasec_type = $1
		ORDER BY news_id
	`
	return r.queryArticles(ctx, query, trait)
}

func (r *PgNewsRepository) queryArticles(ctx context.Context, query string, args ...any) ([]domain.NewsArticle, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []domain.NewsArticle
	for rows.Next() {
		var a domain.NewsArticle
		if err := rows.Scan(&a.NewsID, &a.Headline, &a.Description, &a.Trait); err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

func (r *PgNewsRepository) InsertBatch(ctx context.Context, articles []domain.NewsArticle) error {
	const query = `
		INSERT INTO news_articles (news_id, headline, description, riasec_type)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (news_id) DO NOTHING
	`
	batch := &pgx.Batch{}
	for _, a := range articles {
		batch.Queue(query, a.NewsID, a.Headline, a.Description, a.Trait)
	}
	return r.pool.SendBatch(ctx, batch).Close()
}
