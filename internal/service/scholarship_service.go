package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"edu-guidance/internal/domain"
	"edu-guidance/internal/repository"
)

var (
	ErrScholarshipNotFound = errors.New("scholarship not found")
	ErrInvalidTraitInput   = errors.New("valid riasec trait letters required")
)

const allCriteriaMet = "All eligibility criteria met"

// Recommendation level thresholds on the soft match score.
const (
	highMatchThreshold   = 70
	mediumMatchThreshold = 40
)

// ScholarshipService applies the hard/soft eligibility rules and the
// keyword-based recommender over the scholarship dataset.
type ScholarshipService struct {
	scholarships repository.ScholarshipRepository
	logger       *zap.Logger
}

func NewScholarshipService(scholarships repository.ScholarshipRepository, logger *zap.Logger) *ScholarshipService {
	return &ScholarshipService{scholarships: scholarships, logger: logger}
}

// List returns the whole dataset.
func (s *ScholarshipService) List(ctx context.Context) ([]domain.Scholarship, error) {
	records, err := s.scholarships.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatasetUnavailable, err)
	}
	return records, nil
}

// GetByID looks up a single scholarship.
func (s *ScholarshipService) GetByID(ctx context.Context, id string) (domain.Scholarship, error) {
	record, err := s.scholarships.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Scholarship{}, ErrScholarshipNotFound
		}
		return domain.Scholarship{}, fmt.Errorf("%w: %v", ErrDatasetUnavailable, err)
	}
	return record, nil
}

// MatchResult is the full matcher output, ordered eligible-first then by
// descending score.
type MatchResult struct {
	Matches         []domain.ScholarshipMatch
	EligibleCount   int
	IneligibleCount int
}

// Match evaluates every scholarship against the profile. Each criterion is
// dual-purpose: violating it disqualifies, satisfying it adds points.
func (s *ScholarshipService) Match(ctx context.Context, profile domain.EligibilityProfile) (MatchResult, error) {
	records, err := s.scholarships.List(ctx)
	if err != nil {
		return MatchResult{}, fmt.Errorf("%w: %v", ErrDatasetUnavailable, err)
	}

	matches := make([]domain.ScholarshipMatch, 0, len(records))
	for _, scholarship := range records {
		matches = append(matches, evaluateEligibility(scholarship, profile))
	}

	// Eligible items first, then higher scores; stable on full ties.
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].IsEligible != matches[j].IsEligible {
			return matches[i].IsEligible
		}
		return matches[i].MatchScore > matches[j].MatchScore
	})

	result := MatchResult{Matches: matches}
	for _, m := range matches {
		if m.IsEligible {
			result.EligibleCount++
		} else {
			result.IneligibleCount++
		}
	}
	return result, nil
}

func evaluateEligibility(scholarship domain.Scholarship, profile domain.EligibilityProfile) domain.ScholarshipMatch {
	criteria := scholarship.Eligibility
	eligible := true
	score := 0
	var reasons []string

	fail := func(reason string) {
		eligible = false
		reasons = append(reasons, reason)
	}

	if len(criteria.Domicile) > 0 && profile.Domicile != "" {
		if !containsString(criteria.Domicile, profile.Domicile) {
			fail("Domicile requirement not met. Required: " + strings.Join(criteria.Domicile, ", "))
		} else {
			score += 20
		}
	}

	if criteria.Gender != "" && criteria.Gender != "All" && profile.Gender != "" {
		if !strings.EqualFold(profile.Gender, criteria.Gender) {
			fail("Gender requirement not met. Required: " + criteria.Gender)
		} else {
			score += 15
		}
	} else if criteria.Gender == "All" {
		score += 10
	}

	if profile.Age != nil {
		switch {
		case criteria.MinAge != nil && *profile.Age < *criteria.MinAge:
			fail(fmt.Sprintf("Age too low. Minimum age: %d", *criteria.MinAge))
		case criteria.MaxAge != nil && *profile.Age > *criteria.MaxAge:
			fail(fmt.Sprintf("Age too high. Maximum age: %d", *criteria.MaxAge))
		default:
			score += 10
		}
	}

	if profile.AnnualIncome != nil && criteria.IncomeCeilingPA != nil {
		if *profile.AnnualIncome > *criteria.IncomeCeilingPA {
			fail(fmt.Sprintf("Income exceeds limit. Maximum income: %d", *criteria.IncomeCeilingPA))
		} else {
			score += 15
		}
	}

	if len(criteria.SocialCategory) > 0 && profile.SocialCategory != "" {
		if !containsString(criteria.SocialCategory, profile.SocialCategory) {
			fail("Social category not eligible. Required: " + strings.Join(criteria.SocialCategory, ", "))
		} else {
			score += 15
		}
	}

	if len(criteria.EducationLevel) > 0 && profile.EducationLevel != "" {
		if !containsString(criteria.EducationLevel, profile.EducationLevel) {
			fail("Education level not eligible. Required: " + strings.Join(criteria.EducationLevel, ", "))
		} else {
			score += 20
		}
	}

	// Course stream mismatch is a soft penalty, never a disqualifier.
	if len(criteria.CourseStream) > 0 && profile.CourseStream != "" {
		if !containsString(criteria.CourseStream, profile.CourseStream) {
			score -= 5
			reasons = append(reasons, "Course stream preference: "+strings.Join(criteria.CourseStream, ", "))
		} else {
			score += 10
		}
	}

	if profile.Percentage != nil && criteria.Academic.MinPercentage != nil {
		if *profile.Percentage < *criteria.Academic.MinPercentage {
			fail(fmt.Sprintf("Academic percentage too low. Minimum required: %.1f%%", *criteria.Academic.MinPercentage))
		} else {
			score += 10
		}
	}

	if score < 0 {
		score = 0
	}
	if eligible {
		reasons = []string{allCriteriaMet}
	}

	level := "Low"
	switch {
	case score >= highMatchThreshold:
		level = "High"
	case score >= mediumMatchThreshold:
		level = "Medium"
	}

	return domain.ScholarshipMatch{
		Scholarship:         scholarship,
		IsEligible:          eligible,
		MatchScore:          score,
		EligibilityReasons:  reasons,
		RecommendationLevel: level,
	}
}

// RecommendRequest feeds the single-layer keyword recommender.
type RecommendRequest struct {
	Traits       string // RIASEC letters, e.g. "IE"
	CGPA         float64
	IncomeLevel  string
	Location     string
	FieldOfStudy string
}

// Fixed point values of the weighted-sum recommender. Candidates scoring
// at or below minRelevance are dropped.
const (
	pointsFieldRelevance  = 30
	pointsCGPAEligible    = 25
	pointsCGPAUnspecified = 15
	pointsIncomeMatch     = 20
	pointsNoIncomeRule    = 10
	pointsLocationMatch   = 15
	pointsGlobalAward     = 10
	pointsFieldOfStudy    = 20
	minRelevance          = 10
	maxRecommendations    = 10
)

// Recommend scores each scholarship with additive points for trait-relevant
// field keywords, CGPA satisfaction, income bracket, location and field of
// study, then returns the top 10 above the relevance floor.
func (s *ScholarshipService) Recommend(ctx context.Context, req RecommendRequest) ([]domain.ScholarshipRecommendation, error) {
	traits := parseTraitLetters(req.Traits)
	if len(traits) == 0 {
		return nil, ErrInvalidTraitInput
	}

	var relevantFields []string
	for _, trait := range traits {
		relevantFields = append(relevantFields, domain.ScholarshipFieldsByTrait[trait]...)
	}

	records, err := s.scholarships.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatasetUnavailable, err)
	}

	var out []domain.ScholarshipRecommendation
	for _, scholarship := range records {
		score := 0
		var matchReasons []string
		field := strings.ToLower(scholarship.Field)

		for _, relevant := range relevantFields {
			if strings.Contains(field, strings.ToLower(relevant)) {
				score += pointsFieldRelevance
				matchReasons = append(matchReasons, "Field matches your interests")
				break
			}
		}

		if req.CGPA >= scholarship.MinCGPA {
			score += pointsCGPAEligible
			matchReasons = append(matchReasons, "CGPA meets requirement")
		} else if req.CGPA > 0 {
			score += pointsCGPAUnspecified
		}

		income := strings.ToLower(scholarship.IncomeCriteria)
		if req.IncomeLevel != "" && strings.Contains(income, strings.ToLower(req.IncomeLevel)) {
			score += pointsIncomeMatch
			matchReasons = append(matchReasons, "Income level eligible")
		} else if income == "" {
			score += pointsNoIncomeRule
		}

		location := strings.ToLower(scholarship.Location)
		if req.Location != "" && strings.Contains(location, strings.ToLower(req.Location)) {
			score += pointsLocationMatch
		} else if strings.Contains(location, "international") || strings.Contains(location, "worldwide") {
			score += pointsGlobalAward
		}

		if req.FieldOfStudy != "" && strings.Contains(field, strings.ToLower(req.FieldOfStudy)) {
			score += pointsFieldOfStudy
		}

		if score > minRelevance {
			out = append(out, domain.ScholarshipRecommendation{
				Scholarship:    scholarship,
				RelevanceScore: score,
				MatchReasons:   matchReasons,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RelevanceScore > out[j].RelevanceScore
	})
	if len(out) > maxRecommendations {
		out = out[:maxRecommendations]
	}
	return out, nil
}

// parseTraitLetters keeps the valid RIASEC letters of the input, uppercased,
// preserving order and duplicates dropped.
func parseTraitLetters(input string) []string {
	seen := make(map[string]bool, 6)
	var out []string
	for _, r := range strings.ToUpper(strings.TrimSpace(input)) {
		code := string(r)
		if domain.ValidTrait(code) && !seen[code] {
			seen[code] = true
			out = append(out, code)
		}
	}
	return out
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
