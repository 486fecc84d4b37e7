package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"edu-guidance/internal/domain"
)

type CourseRepository interface {
	List(ctx context.Context) ([]domain.Course, error)
	Count(ctx context.Context) (int, error)
	InsertBatch(ctx context.Context, courses []domain.Course) error
}

type PgCourseRepository struct {
	pool *pgxpool.Pool
}

func NewPgCourseRepository(pool *pgxpool.Pool) *PgCourseRepository {
	return &PgCourseRepository{pool: pool}
}

func (r *PgCourseRepository) List(ctx context.Context) ([]domain.Course, error) {
	const query = `
		SELECT college_name, course_name, degree_level, riasec_trait,
		       potential_professions, latitude, longitude,
		       course_rating, college_rating
		FROM courses
		ORDER BY college_name, course_name
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []domain.Course
	for rows.Next() {
		var c domain.Course
		if err := rows.Scan(
			&c.CollegeName,
			&c.CourseName,
			&c.DegreeLevel,
			&c.Trait,
			&c.PotentialProfessions,
			&c.Latitude,
			&c.Longitude,
			&c.CourseRating,
			&c.CollegeRating,
		); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

func (r *PgCourseRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&n)
	return n, err
}

func (r *PgCourseRepository) InsertBatch(ctx context.Context, courses []domain.Course) error {
	const query = `
		INSERT INTO courses (college_name, course_name, degree_level, riasec_trait,
		                     potential_professions, latitude, longitude,
		                     course_rating, college_rating)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (college_name, course_name) DO NOTHING
	`
	batch := &pgx.Batch{}
	for _, c := range courses {
		batch.Queue(query,
			c.CollegeName,
			c.CourseName,
			c.DegreeLevel,
			c.Trait,
			c.PotentialProfessions,
			c.Latitude,
			c.Longitude,
			c.CourseRating,
			c.CollegeRating,
		)
	}
	return r.pool.SendBatch(ctx, batch).Close()
}
