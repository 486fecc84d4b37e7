// Command migrate loads the reference datasets (courses, colleges, news,
// scholarships) from CSV/JSON files into Postgres. Malformed rows are
// skipped with a warning instead of aborting the whole load.
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"edu-guidance/internal/config"
	"edu-guidance/internal/db"
	"edu-guidance/internal/domain"
	"edu-guidance/internal/repository"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Ping(ctx, pool); err != nil {
		logger.Fatal("db ping", zap.Error(err))
	}

	if err := ensureSchema(ctx, pool); err != nil {
		logger.Fatal("create tables", zap.Error(err))
	}

	migrateCourses(ctx, logger, cfg.DataDir, repository.NewPgCourseRepository(pool))
	migrateColleges(ctx, logger, cfg.DataDir, repository.NewPgCollegeRepository(pool))
	migrateNews(ctx, logger, cfg.DataDir, repository.NewPgNewsRepository(pool))
	migrateScholarships(ctx, logger, cfg.DataDir, repository.NewPgScholarshipRepository(pool))

	logger.Info("migration completed")
}

func ensureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS courses (
			id                    BIGSERIAL PRIMARY KEY,
			college_name          TEXT NOT NULL,
			course_name           TEXT NOT NULL,
			degree_level          TEXT NOT NULL,
			riasec_trait          TEXT NOT NULL,
			potential_professions TEXT NOT NULL DEFAULT '',
			latitude              DOUBLE PRECISION NOT NULL,
			longitude             DOUBLE PRECISION NOT NULL,
			course_rating         DOUBLE PRECISION NOT NULL DEFAULT 0,
			college_rating        DOUBLE PRECISION NOT NULL DEFAULT 0,
			UNIQUE (college_name, course_name)
		);
		CREATE TABLE IF NOT EXISTS colleges (
			college_id   TEXT PRIMARY KEY,
			college_name TEXT NOT NULL,
			division     TEXT NOT NULL DEFAULT '',
			district     TEXT NOT NULL DEFAULT '',
			college_type TEXT NOT NULL DEFAULT '',
			address      TEXT,
			website      TEXT
		);
		CREATE TABLE IF NOT EXISTS news_articles (
			news_id     TEXT PRIMARY KEY,
			headline    TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			riasec_type TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS scholarships (
			scholarship_id       TEXT PRIMARY KEY,
			name                 TEXT NOT NULL,
			provider             TEXT,
			description          TEXT,
			field                TEXT,
			min_cgpa             DOUBLE PRECISION,
			income_criteria      TEXT,
			location             TEXT,
			amount_inr           BIGINT,
			eligibility_criteria JSONB NOT NULL DEFAULT '{}'
		);
	`
	_, err := pool.Exec(ctx, schema)
	return err
}

func migrateCourses(ctx context.Context, logger *zap.Logger, dataDir string, repo repository.CourseRepository) {
	// Re-runs are no-ops once the dataset is in place.
	if n, err := repo.Count(ctx); err == nil && n > 0 {
		logger.Info("courses already loaded, skipping", zap.Int("count", n))
		return
	}

	rows, header, err := readCSV(filepath.Join(dataDir, "courseAndCollegedata.csv"))
	if err != nil {
		logger.Warn("course data not loaded", zap.Error(err))
		return
	}

	var courses []domain.Course
	skipped := 0
	for _, row := range rows {
		get := fieldGetter(header, row)
		lat, err1 := strconv.ParseFloat(get("Latitude"), 64)
		lon, err2 := strconv.ParseFloat(get("Longitude"), 64)
		collegeRating, err3 := strconv.ParseFloat(get("College_Rating_Placeholder"), 64)
		courseRating, err4 := strconv.ParseFloat(get("Course_Rating_Placeholder"), 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			skipped++
			continue
		}
		courses = append(courses, domain.Course{
			CollegeName:          get("College_Name"),
			CourseName:           get("Course_Name"),
			DegreeLevel:          get("Degree_Level"),
			Trait:                get("RIASEC_Trait"),
			PotentialProfessions: get("Potential_Professions"),
			Latitude:             lat,
			Longitude:            lon,
			CourseRating:         courseRating,
			CollegeRating:        collegeRating,
		})
	}
	if skipped > 0 {
		logger.Warn("skipped malformed course rows", zap.Int("count", skipped))
	}
	if err := repo.InsertBatch(ctx, courses); err != nil {
		logger.Error("insert courses failed", zap.Error(err))
		return
	}
	logger.Info("loaded courses", zap.Int("count", len(courses)))
}

func migrateColleges(ctx context.Context, logger *zap.Logger, dataDir string, repo repository.CollegeRepository) {
	rows, header, err := readCSV(filepath.Join(dataDir, "college_list.csv"))
	if err != nil {
		logger.Warn("college data not loaded", zap.Error(err))
		return
	}

	var colleges []domain.College
	skipped := 0
	for _, row := range rows {
		get := fieldGetter(header, row)
		// Rows without an id are division headers in the source file.
		if get("College_ID") == "" {
			skipped++
			continue
		}
		colleges = append(colleges, domain.College{
			CollegeID:   get("College_ID"),
			Name:        get("College_Name"),
			Division:    get("Division"),
			District:    get("District"),
			CollegeType: get("College_Type"),
			Address:     get("Address"),
			Website:     get("Website"),
		})
	}
	if skipped > 0 {
		logger.Warn("skipped header rows", zap.Int("count", skipped))
	}
	if err := repo.InsertBatch(ctx, colleges); err != nil {
		logger.Error("insert colleges failed", zap.Error(err))
		return
	}
	logger.Info("loaded colleges", zap.Int("count", len(colleges)))
}

func migrateNews(ctx context.Context, logger *zap.Logger, dataDir string, repo repository.NewsRepository) {
	rows, header, err := readCSV(filepath.Join(dataDir, "news_data.csv"))
	if err != nil {
		logger.Warn("news data not loaded", zap.Error(err))
		return
	}

	var articles []domain.NewsArticle
	skipped := 0
	for _, row := range rows {
		get := fieldGetter(header, row)
		trait := get("RIASEC")
		if get("News_ID") == "" || !domain.ValidTrait(trait) {
			skipped++
			continue
		}
		articles = append(articles, domain.NewsArticle{
			NewsID:      get("News_ID"),
			Headline:    get("Headline"),
			Description: get("Description"),
			Trait:       trait,
		})
	}
	if skipped > 0 {
		logger.Warn("skipped malformed news rows", zap.Int("count", skipped))
	}
	if err := repo.InsertBatch(ctx, articles); err != nil {
		logger.Error("insert news failed", zap.Error(err))
		return
	}
	logger.Info("loaded news articles", zap.Int("count", len(articles)))
}

func migrateScholarships(ctx context.Context, logger *zap.Logger, dataDir string, repo repository.ScholarshipRepository) {
	raw, err := os.ReadFile(filepath.Join(dataDir, "scholarship.json"))
	if err != nil {
		logger.Warn("scholarship data not loaded", zap.Error(err))
		return
	}

	var scholarships []domain.Scholarship
	if err := json.Unmarshal(raw, &scholarships); err != nil {
		// A single object instead of an array is also accepted.
		var one domain.Scholarship
		if err := json.Unmarshal(raw, &one); err != nil {
			logger.Error("scholarship json corrupted", zap.Error(err))
			return
		}
		scholarships = []domain.Scholarship{one}
	}

	if err := repo.InsertBatch(ctx, scholarships); err != nil {
		logger.Error("insert scholarships failed", zap.Error(err))
		return
	}
	logger.Info("loaded scholarships", zap.Int("count", len(scholarships)))
}

// readCSV returns the data rows and header of a CSV file, tolerating rows
// with a deviating field count.
func readCSV(path string) ([][]string, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, nil
	}
	return records[1:], records[0], nil
}

// fieldGetter looks a row value up by header name, returning "" for
// missing or short rows.
func fieldGetter(header, row []string) func(string) string {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	return func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}
}
