package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"

	"edu-guidance/internal/domain"
)

// mockCourseRepo serves a fixed dataset, or an error.
type mockCourseRepo struct {
	courses []domain.Course
	err     error
}

func (m *mockCourseRepo) List(ctx context.Context) ([]domain.Course, error) {
	return m.courses, m.err
}

func (m *mockCourseRepo) Count(ctx context.Context) (int, error) {
	return len(m.courses), m.err
}

func (m *mockCourseRepo) InsertBatch(ctx context.Context, courses []domain.Course) error {
	return nil
}

// Courses around Dhaka (23.8103, 90.4125). The remote one sits ~250km away.
func testCourses() []domain.Course {
	return []domain.Course{
		{CollegeName: "City College", CourseName: "BSc in Computer Science", DegreeLevel: "UG", Trait: "I", Latitude: 23.81, Longitude: 90.41, CourseRating: 4.5, CollegeRating: 4.0},
		{CollegeName: "City College", CourseName: "BBA in Management", DegreeLevel: "UG", Trait: "E", Latitude: 23.80, Longitude: 90.42, CourseRating: 4.0, CollegeRating: 4.0},
		{CollegeName: "Metro Institute", CourseName: "Diploma in Nursing", DegreeLevel: "Diploma", Trait: "S", Latitude: 23.79, Longitude: 90.40, CourseRating: 3.5, CollegeRating: 3.0},
		{CollegeName: "Metro Institute", CourseName: "MSc in Physics", DegreeLevel: "PG", Trait: "I", Latitude: 23.82, Longitude: 90.43, CourseRating: 4.8, CollegeRating: 3.0},
		{CollegeName: "Far College", CourseName: "BA in Fine Arts", DegreeLevel: "UG", Trait: "A", Latitude: 26.0, Longitude: 90.41, CourseRating: 4.2, CollegeRating: 4.5},
	}
}

func fullProfile(base float64) map[string]float64 {
	p := make(map[string]float64, 6)
	for _, code := range domain.TraitOrder {
		p[code] = base
	}
	return p
}

func ptr(f float64) *float64 { return &f }

func validCourseRequest() CourseRequest {
	profile := fullProfile(5)
	profile["I"] = 9
	return CourseRequest{
		Latitude:       ptr(23.8103),
		Longitude:      ptr(90.4125),
		EducationLevel: "12th",
		Profile:        profile,
	}
}

func TestCourseRequestValidate(t *testing.T) {
	req := validCourseRequest()
	if err := req.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	missingLat := validCourseRequest()
	missingLat.Latitude = nil
	if err := missingLat.Validate(); !errors.Is(err, ErrMissingParameter) {
		t.Fatalf("expected ErrMissingParameter, got %v", err)
	}

	missingLevel := validCourseRequest()
	missingLevel.EducationLevel = " "
	if err := missingLevel.Validate(); !errors.Is(err, ErrMissingParameter) {
		t.Fatalf("expected ErrMissingParameter, got %v", err)
	}

	missingProfile := validCourseRequest()
	missingProfile.Profile = nil
	if err := missingProfile.Validate(); !errors.Is(err, ErrMissingParameter) {
		t.Fatalf("expected ErrMissingParameter, got %v", err)
	}

	outOfRange := validCourseRequest()
	outOfRange.Profile["R"] = 11
	if err := outOfRange.Validate(); !errors.Is(err, ErrInvalidProfileValue) {
		t.Fatalf("expected ErrInvalidProfileValue, got %v", err)
	}
	outOfRange.Profile["R"] = 0
	if err := outOfRange.Validate(); !errors.Is(err, ErrInvalidProfileValue) {
		t.Fatalf("expected ErrInvalidProfileValue for 0, got %v", err)
	}
}

func TestCourseService_Recommend(t *testing.T) {
	ctx := context.Background()
	svc := NewCourseService(&mockCourseRepo{courses: testCourses()}, 0, zap.NewNop())

	got, err := svc.Recommend(ctx, validCourseRequest())
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}

	// The remote course falls outside the default 100km radius and the
	// diploma course is not open to a 12th pass student.
	if got.Layer1Matched != 3 {
		t.Fatalf("expected 3 layer-1 matches, got %d", got.Layer1Matched)
	}
	for _, rec := range got.Results {
		if rec.CollegeName == "Far College" {
			t.Fatal("course outside the radius survived filtering")
		}
		if rec.DistanceKm > 100 {
			t.Fatalf("distance %v exceeds the radius", rec.DistanceKm)
		}
	}

	// Descending final rank, top entry normalizes to the best blend.
	for i := 1; i < len(got.Results); i++ {
		if got.Results[i].FinalRank > got.Results[i-1].FinalRank {
			t.Fatalf("results not sorted: %v before %v",
				got.Results[i-1].FinalRank, got.Results[i].FinalRank)
		}
	}

	// I weighted 9: the physics PG course carries primary 9*1.5 plus
	// nothing secondary (science pattern matches its own trait), computer
	// science the same. Both outrank the management course.
	if got.Results[0].Trait != "I" {
		t.Fatalf("expected an I course on top, got %s (%s)", got.Results[0].Trait, got.Results[0].CourseName)
	}
}

func TestCourseService_EducationLevelFilter(t *testing.T) {
	ctx := context.Background()
	svc := NewCourseService(&mockCourseRepo{courses: testCourses()}, 0, zap.NewNop())

	req := validCourseRequest()
	req.EducationLevel = "10th"
	got, err := svc.Recommend(ctx, req)
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	for _, rec := range got.Results {
		if rec.DegreeLevel == "PG" {
			t.Fatal("PG course offered to a 10th pass student")
		}
	}
	// UG x2 + Diploma, remote course excluded by distance.
	if got.Layer1Matched != 3 {
		t.Fatalf("expected 3 matches for 10th, got %d", got.Layer1Matched)
	}
}

func TestCourseService_ZeroRadius(t *testing.T) {
	ctx := context.Background()
	svc := NewCourseService(&mockCourseRepo{courses: testCourses()}, 0, zap.NewNop())

	req := validCourseRequest()
	req.SetRadius(0)
	got, err := svc.Recommend(ctx, req)
	if err != nil {
		t.Fatalf("explicit zero radius must not error: %v", err)
	}
	if len(got.Results) != 0 || got.Layer1Matched != 0 {
		t.Fatalf("expected empty result for radius 0, got %d", len(got.Results))
	}
}

func TestCourseService_ConfiguredDefaultRadius(t *testing.T) {
	ctx := context.Background()
	// A 2km default keeps only the two nearest courses; the physics course
	// sits ~2.1km out.
	svc := NewCourseService(&mockCourseRepo{courses: testCourses()}, 2, zap.NewNop())

	got, err := svc.Recommend(ctx, validCourseRequest())
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	if got.Layer1Matched != 2 {
		t.Fatalf("expected 2 matches within 2km, got %d", got.Layer1Matched)
	}

	// An explicit request radius still overrides the configured default.
	req := validCourseRequest()
	req.SetRadius(100)
	got, err = svc.Recommend(ctx, req)
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	if got.Layer1Matched != 3 {
		t.Fatalf("explicit radius ignored: got %d matches", got.Layer1Matched)
	}
}

func TestCourseService_MaxResults(t *testing.T) {
	ctx := context.Background()
	var many []domain.Course
	for i := 0; i < 30; i++ {
		c := testCourses()[0]
		c.CourseRating = float64(i)
		many = append(many, c)
	}
	svc := NewCourseService(&mockCourseRepo{courses: many}, 0, zap.NewNop())

	req := validCourseRequest()
	req.MaxResults = 5
	got, err := svc.Recommend(ctx, req)
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	if len(got.Results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(got.Results))
	}
	if got.Layer1Matched != 30 {
		t.Fatalf("cap must not shrink the layer-1 count, got %d", got.Layer1Matched)
	}

	// Default cap is 20.
	req.MaxResults = 0
	got, err = svc.Recommend(ctx, req)
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	if len(got.Results) != 20 {
		t.Fatalf("expected default cap 20, got %d", len(got.Results))
	}
}

func TestCourseService_EmptyDataset(t *testing.T) {
	ctx := context.Background()
	svc := NewCourseService(&mockCourseRepo{}, 0, zap.NewNop())

	if _, err := svc.Recommend(ctx, validCourseRequest()); !errors.Is(err, ErrDatasetUnavailable) {
		t.Fatalf("expected ErrDatasetUnavailable, got %v", err)
	}
	if _, err := svc.DatasetInfo(ctx); !errors.Is(err, ErrDatasetUnavailable) {
		t.Fatalf("expected ErrDatasetUnavailable from DatasetInfo, got %v", err)
	}
}

func TestCourseService_FlatSignalsNormalizeToZero(t *testing.T) {
	ctx := context.Background()
	// Identical ratings and traits: every blended component is flat.
	flat := []domain.Course{
		{CollegeName: "A", CourseName: "BSc in History", DegreeLevel: "UG", Trait: "C", Latitude: 23.81, Longitude: 90.41, CourseRating: 4, CollegeRating: 4},
		{CollegeName: "B", CourseName: "BSc in Geography", DegreeLevel: "UG", Trait: "C", Latitude: 23.80, Longitude: 90.42, CourseRating: 4, CollegeRating: 4},
	}
	svc := NewCourseService(&mockCourseRepo{courses: flat}, 0, zap.NewNop())

	got, err := svc.Recommend(ctx, validCourseRequest())
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	for _, rec := range got.Results {
		if rec.FinalRank != 0 {
			t.Fatalf("flat signals must rank 0, got %v", rec.FinalRank)
		}
	}
}

func TestCourseService_SecondaryTraitScoring(t *testing.T) {
	ctx := context.Background()
	courses := []domain.Course{
		// "engineering" pattern maps to I, distinct from primary R.
		{CollegeName: "A", CourseName: "BSc in Civil Engineering", DegreeLevel: "UG", Trait: "R", Latitude: 23.81, Longitude: 90.41, CourseRating: 4, CollegeRating: 4},
	}
	svc := NewCourseService(&mockCourseRepo{courses: courses}, 0, zap.NewNop())

	req := validCourseRequest()
	req.Profile = fullProfile(5)
	req.Profile["R"] = 8
	req.Profile["I"] = 6

	got, err := svc.Recommend(ctx, req)
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	if len(got.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(got.Results))
	}
	// primary 8*1.5 + secondary 6*1.0 = 18; max possible 8*2.5 = 20.
	if got.Results[0].MatchScore != 18 {
		t.Fatalf("expected match score 18, got %v", got.Results[0].MatchScore)
	}
	if math.Abs(got.Results[0].MatchPercent-90) > 0.01 {
		t.Fatalf("expected match percent 90, got %v", got.Results[0].MatchPercent)
	}
}

func TestCourseService_DatasetInfo(t *testing.T) {
	ctx := context.Background()
	svc := NewCourseService(&mockCourseRepo{courses: testCourses()}, 0, zap.NewNop())

	info, err := svc.DatasetInfo(ctx)
	if err != nil {
		t.Fatalf("dataset info failed: %v", err)
	}
	if info.TotalCourses != 5 {
		t.Fatalf("expected 5 courses, got %d", info.TotalCourses)
	}
	if info.Colleges != 3 {
		t.Fatalf("expected 3 colleges, got %d", info.Colleges)
	}
	if info.DegreeLevels["UG"] != 3 {
		t.Fatalf("expected 3 UG courses, got %d", info.DegreeLevels["UG"])
	}
	if info.TraitCounts["I"] != 2 {
		t.Fatalf("expected 2 I courses, got %d", info.TraitCounts["I"])
	}
	if len(info.SampleCourses) != 5 {
		t.Fatalf("expected 5 samples, got %d", len(info.SampleCourses))
	}
}

func TestHaversineKm(t *testing.T) {
	if d := haversineKm(23.81, 90.41, 23.81, 90.41); d != 0 {
		t.Fatalf("zero distance expected, got %v", d)
	}
	// Dhaka to Chittagong is roughly 215km.
	d := haversineKm(23.8103, 90.4125, 22.3569, 91.7832)
	if d < 200 || d > 230 {
		t.Fatalf("implausible Dhaka-Chittagong distance: %v", d)
	}
}
