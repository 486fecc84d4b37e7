package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"edu-guidance/internal/domain"
)

type CollegeRepository interface {
	List(ctx context.Context) ([]domain.College, error)
	InsertBatch(ctx context.Context, colleges []domain.College) error
}

type PgCollegeRepository struct {
	pool *pgxpool.Pool
}

func NewPgCollegeRepository(pool *pgxpool.Pool) *PgCollegeRepository {
	return &PgCollegeRepository{pool: pool}
}

func (r *PgCollegeRepository) List(ctx context.Context) ([]domain.College, error) {
	const query = `
		SELECT college_id, college_name, division, district, college_type,
		       COALESCE(address, ''), COALESCE(website, '')
		FROM colleges
		ORDER BY college_name
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var colleges []domain.College
	for rows.Next() {
		var c domain.College
		if err := rows.Scan(
			&c.CollegeID,
			&c.Name,
			&c.Division,
			&c.District,
			&c.CollegeType,
			&c.Address,
			&c.Website,
		); err != nil {
			return nil, err
		}
		colleges = append(colleges, c)
	}
	return colleges, rows.Err()
}

func (r *PgCollegeRepository) InsertBatch(ctx context.Context, colleges []domain.College) error {
	const query = `
		INSERT INTO colleges (college_id, college_name, division, district,
		                      college_type, address, website)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (college_id) DO NOTHING
	`
	batch := &pgx.Batch{}
	for _, c := range colleges {
		batch.Queue(query,
			c.CollegeID,
			c.Name,
			c.Division,
			c.District,
			c.CollegeType,
			c.Address,
			c.Website,
		)
	}
	return r.pool.SendBatch(ctx, batch).Close()
}
