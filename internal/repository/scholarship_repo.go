package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"edu-guidance/internal/domain"
)

type ScholarshipRepository interface {
	List(ctx context.Context) ([]domain.Scholarship, error)
	GetByID(ctx context.Context, id string) (domain.Scholarship, error)
	InsertBatch(ctx context.Context, scholarships []domain.Scholarship) error
}

// PgScholarshipRepository stores eligibility criteria as a JSONB column;
// the nested rule set has too many optional fields to flatten usefully.
type PgScholarshipRepository struct {
	pool *pgxpool.Pool
}

func NewPgScholarshipRepository(pool *pgxpool.Pool) *PgScholarshipRepository {
	return &PgScholarshipRepository{pool: pool}
}

func (r *PgScholarshipRepository) List(ctx context.Context) ([]domain.Scholarship, error) {
	const query = `
		SELECT scholarship_id, name, COALESCE(provider, ''), COALESCE(description, ''),
		       COALESCE(field, ''), COALESCE(min_cgpa, 0), COALESCE(income_criteria, ''),
		       COALESCE(location, ''), COALESCE(amount_inr, 0), eligibility_criteria
		FROM scholarships
		ORDER BY scholarship_id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scholarships []domain.Scholarship
	for rows.Next() {
		s, err := scanScholarship(rows)
		if err != nil {
			return nil, err
		}
		scholarships = append(scholarships, s)
	}
	return scholarships, rows.Err()
}

func (r *PgScholarshipRepository) GetByID(ctx context.Context, id string) (domain.Scholarship, error) {
	const query = `
		SELECT scholarship_id, name, COALESCE(provider, ''), COALESCE(description, ''),
		       COALESCE(field, ''), COALESCE(min_cgpa, 0), COALESCE(income_criteria, ''),
		       COALESCE(location, ''), COALESCE(amount_inr, 0), eligibility_criteria
		FROM scholarships
		WHERE scholarship_id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	s, err := scanScholarship(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Scholarship{}, ErrNotFound
	}
	return s, err
}

func (r *PgScholarshipRepository) InsertBatch(ctx context.Context, scholarships []domain.Scholarship) error {
	const query = `
		INSERT INTO scholarships (scholarship_id, name, provider, description, field,
		                          min_cgpa, income_criteria, location, amount_inr,
		                          eligibility_criteria)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (scholarship_id) DO NOTHING
	`
	batch := &pgx.Batch{}
	for _, s := range scholarships {
		criteria, err := json.Marshal(s.Eligibility)
		if err != nil {
			return fmt.Errorf("marshal eligibility for %s: %w", s.ScholarshipID, err)
		}
		batch.Queue(query,
			s.ScholarshipID,
			s.Name,
			s.Provider,
			s.Description,
			s.Field,
			s.MinCGPA,
			s.IncomeCriteria,
			s.Location,
			s.AmountINR,
			criteria,
		)
	}
	return r.pool.SendBatch(ctx, batch).Close()
}

func scanScholarship(row pgx.Row) (domain.Scholarship, error) {
	var s domain.Scholarship
	var criteria []byte
	if err := row.Scan(
		&s.ScholarshipID,
		&s.Name,
		&s.Provider,
		&s.Description,
		&s.Field,
		&s.MinCGPA,
		&s.IncomeCriteria,
		&s.Location,
		&s.AmountINR,
		&criteria,
	); err != nil {
		return domain.Scholarship{}, err
	}
	if len(criteria) > 0 {
		if err := json.Unmarshal(criteria, &s.Eligibility); err != nil {
			return domain.Scholarship{}, fmt.Errorf("unmarshal eligibility for %s: %w", s.ScholarshipID, err)
		}
	}
	return s, nil
}
