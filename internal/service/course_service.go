package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"edu-guidance/internal/domain"
	"edu-guidance/internal/repository"
)

var (
	ErrMissingParameter    = errors.New("missing required parameter")
	ErrInvalidProfileValue = errors.New("riasec profile value out of range")
	ErrDatasetUnavailable  = errors.New("dataset not loaded")
)

// Ranking blend weights: personality match dominates, ratings refine.
const (
	weightMatch         = 0.6
	weightCourseRating  = 0.25
	weightCollegeRating = 0.15

	primaryTraitWeight   = 1.5
	secondaryTraitWeight = 1.0

	defaultRadiusKm   = 100.0
	defaultMaxResults = 20
)

// secondaryTraitPatterns infers a secondary trait from the course name.
// Order matters: the first matching substring wins, which keeps scoring
// reproducible even when names match several patterns.
var secondaryTraitPatterns = []struct {
	Pattern string
	Trait   string
}{
	{"engineering", "I"},
	{"management", "E"},
	{"arts", "A"},
	{"science", "I"},
	{"commerce", "C"},
	{"education", "S"},
	{"medical", "I"},
	{"nursing", "S"},
	{"journalism", "A"},
}

// CourseRequest is the profile a recommendation query supplies.
type CourseRequest struct {
	Latitude       *float64
	Longitude      *float64
	EducationLevel string             // "10th" or "12th"
	Profile        map[string]float64 // RIASEC weights, 1-10 each
	RadiusKm       float64
	MaxResults     int
	radiusSet      bool
}

// SetRadius records an explicit radius, distinguishing radius 0 from the
// unset default.
func (r *CourseRequest) SetRadius(km float64) {
	r.RadiusKm = km
	r.radiusSet = true
}

func (r *CourseRequest) maxResults() int {
	if r.MaxResults <= 0 {
		return defaultMaxResults
	}
	return r.MaxResults
}

// Validate enforces required fields and profile bounds.
func (r *CourseRequest) Validate() error {
	if r.Latitude == nil || r.Longitude == nil {
		return fmt.Errorf("%w: user_latitude and user_longitude", ErrMissingParameter)
	}
	if strings.TrimSpace(r.EducationLevel) == "" {
		return fmt.Errorf("%w: education_level", ErrMissingParameter)
	}
	if len(r.Profile) == 0 {
		return fmt.Errorf("%w: riasec_profile", ErrMissingParameter)
	}
	for trait, score := range r.Profile {
		if score < 1 || score > 10 {
			return fmt.Errorf("%w: trait %q = %v", ErrInvalidProfileValue, trait, score)
		}
	}
	return nil
}

// CourseService scores and ranks the course dataset against a RIASEC
// profile using the three-layer pipeline: hard filters, content scoring,
// blended final ranking.
type CourseService struct {
	courses  repository.CourseRepository
	radiusKm float64 // applied when a request carries no explicit radius
	logger   *zap.Logger
}

func NewCourseService(courses repository.CourseRepository, radiusKm float64, logger *zap.Logger) *CourseService {
	if radiusKm <= 0 {
		radiusKm = defaultRadiusKm
	}
	return &CourseService{courses: courses, radiusKm: radiusKm, logger: logger}
}

// CourseRecommendations is the ranked result of one query.
type CourseRecommendations struct {
	Results       []domain.CourseRecommendation
	Layer1Matched int // candidates surviving the hard filters
}

// Recommend runs the full pipeline. An empty candidate set after filtering
// is a valid empty result, not an error; only a missing dataset fails.
func (s *CourseService) Recommend(ctx context.Context, req CourseRequest) (CourseRecommendations, error) {
	if err := req.Validate(); err != nil {
		return CourseRecommendations{}, err
	}

	dataset, err := s.courses.List(ctx)
	if err != nil {
		return CourseRecommendations{}, fmt.Errorf("%w: %v", ErrDatasetUnavailable, err)
	}
	if len(dataset) == 0 {
		return CourseRecommendations{}, ErrDatasetUnavailable
	}

	radius := req.RadiusKm
	if !req.radiusSet {
		radius = s.radiusKm
	}
	filtered := s.layer1Filter(dataset, *req.Latitude, *req.Longitude, req.EducationLevel, radius)
	scored := s.layer2Score(filtered, req.Profile)
	ranked := s.layer3Rank(scored)

	if limit := req.maxResults(); len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return CourseRecommendations{Results: ranked, Layer1Matched: len(filtered)}, nil
}

// layer1Filter drops courses outside the radius or ineligible for the
// requester's education stage. Distance is kept on the surviving rows.
func (s *CourseService) layer1Filter(dataset []domain.Course, lat, lon float64, educationLevel string, radiusKm float64) []domain.CourseRecommendation {
	var out []domain.CourseRecommendation
	for _, course := range dataset {
		distance := haversineKm(lat, lon, course.Latitude, course.Longitude)
		if distance > radiusKm {
			continue
		}
		if !degreeLevelEligible(educationLevel, course.DegreeLevel) {
			continue
		}
		out = append(out, domain.CourseRecommendation{
			Course:     course,
			DistanceKm: round2(distance),
		})
	}
	return out
}

// degreeLevelEligible maps education stage to admissible course levels.
// 12th pass admits UG/PG, 10th pass admits UG/Diploma/Certificate.
func degreeLevelEligible(educationLevel, degreeLevel string) bool {
	switch educationLevel {
	case "12th":
		return degreeLevel == "UG" || degreeLevel == "PG"
	case "10th":
		return degreeLevel == "UG" || degreeLevel == "Diploma" || degreeLevel == "Certificate"
	default:
		return true
	}
}

// layer2Score computes a content match score per candidate: the profile
// weight of the course's primary trait (x1.5) plus the weight of a
// secondary trait inferred from the course name (x1.0).
func (s *CourseService) layer2Score(candidates []domain.CourseRecommendation, profile map[string]float64) []domain.CourseRecommendation {
	maxWeight := 0.0
	for _, w := range profile {
		if w > maxWeight {
			maxWeight = w
		}
	}
	maxPossible := maxWeight*primaryTraitWeight + maxWeight*secondaryTraitWeight

	for i := range candidates {
		primary := profile[candidates[i].Trait] * primaryTraitWeight

		secondary := 0.0
		name := strings.ToLower(candidates[i].CourseName)
		for _, p := range secondaryTraitPatterns {
			if strings.Contains(name, p.Pattern) && p.Trait != candidates[i].Trait {
				secondary = profile[p.Trait] * secondaryTraitWeight
				break
			}
		}

		candidates[i].MatchScore = primary + secondary
		if maxPossible > 0 {
			candidates[i].MatchPercent = round2(candidates[i].MatchScore / maxPossible * 100)
		}
	}
	return candidates
}

// layer3Rank blends match score, course rating and college rating, each
// min-max normalized over the candidate set, then sorts descending. The
// stable sort preserves layer-1 order on ties.
func (s *CourseService) layer3Rank(candidates []domain.CourseRecommendation) []domain.CourseRecommendation {
	if len(candidates) == 0 {
		return candidates
	}

	matchNorm := newMinMax(candidates, func(r domain.CourseRecommendation) float64 { return r.MatchScore })
	courseNorm := newMinMax(candidates, func(r domain.CourseRecommendation) float64 { return r.CourseRating })
	collegeNorm := newMinMax(candidates, func(r domain.CourseRecommendation) float64 { return r.CollegeRating })

	for i := range candidates {
		candidates[i].FinalRank = round3(weightMatch*matchNorm.normalize(candidates[i].MatchScore) +
			weightCourseRating*courseNorm.normalize(candidates[i].CourseRating) +
			weightCollegeRating*collegeNorm.normalize(candidates[i].CollegeRating))
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].FinalRank > candidates[j].FinalRank
	})
	return candidates
}

// minMax normalizes a signal into [0,1] over the observed range. A flat
// signal normalizes to 0 for every candidate instead of dividing by zero.
type minMax struct {
	min, max float64
}

func newMinMax(candidates []domain.CourseRecommendation, field func(domain.CourseRecommendation) float64) minMax {
	m := minMax{min: field(candidates[0]), max: field(candidates[0])}
	for _, c := range candidates[1:] {
		v := field(c)
		if v < m.min {
			m.min = v
		}
		if v > m.max {
			m.max = v
		}
	}
	return m
}

func (m minMax) normalize(v float64) float64 {
	if m.max == m.min {
		return 0
	}
	return (v - m.min) / (m.max - m.min)
}

const earthRadiusKm = 6371.0

// haversineKm computes the great-circle distance between two coordinates.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := rad(lat2 - lat1)
	dLon := rad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}

// DatasetInfo summarizes the loaded course dataset.
type DatasetInfo struct {
	TotalCourses  int            `json:"total_courses"`
	Colleges      int            `json:"colleges"`
	DegreeLevels  map[string]int `json:"degree_levels"`
	TraitCounts   map[string]int `json:"riasec_traits"`
	SampleCourses []string       `json:"sample_courses"`
}

// DatasetInfo reports counts by college, degree level and trait plus a few
// sample course names.
func (s *CourseService) DatasetInfo(ctx context.Context) (DatasetInfo, error) {
	dataset, err := s.courses.List(ctx)
	if err != nil {
		return DatasetInfo{}, fmt.Errorf("%w: %v", ErrDatasetUnavailable, err)
	}
	if len(dataset) == 0 {
		return DatasetInfo{}, ErrDatasetUnavailable
	}

	colleges := make(map[string]struct{})
	info := DatasetInfo{
		TotalCourses: len(dataset),
		DegreeLevels: make(map[string]int),
		TraitCounts:  make(map[string]int),
	}
	for i, course := range dataset {
		colleges[course.CollegeName] = struct{}{}
		info.DegreeLevels[course.DegreeLevel]++
		info.TraitCounts[course.Trait]++
		if i < 10 {
			info.SampleCourses = append(info.SampleCourses, course.CourseName)
		}
	}
	info.Colleges = len(colleges)
	return info, nil
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
