package domain

// AcademicRequirements nests the academic part of eligibility criteria.
type AcademicRequirements struct {
	MinPercentage *float64 `json:"min_percentage,omitempty"`
}

// EligibilityCriteria is the rule set a scholarship imposes. Absent fields
// (nil/empty) mean "no restriction".
type EligibilityCriteria struct {
	Domicile        []string             `json:"domicile,omitempty"`
	Gender          string               `json:"gender,omitempty"` // "All" matches everyone
	MinAge          *int                 `json:"min_age,omitempty"`
	MaxAge          *int                 `json:"max_age,omitempty"`
	IncomeCeilingPA *int                 `json:"income_ceiling_pa,omitempty"`
	SocialCategory  []string             `json:"social_category,omitempty"`
	EducationLevel  []string             `json:"education_level,omitempty"`
	CourseStream    []string             `json:"course_stream,omitempty"`
	Academic        AcademicRequirements `json:"academic_requirements,omitempty"`
}

// Scholarship is one record of the scholarship dataset.
type Scholarship struct {
	ScholarshipID  string              `json:"scholarship_id"`
	Name           string              `json:"name"`
	Provider       string              `json:"provider,omitempty"`
	Description    string              `json:"description,omitempty"`
	Field          string              `json:"field,omitempty"`
	MinCGPA        float64             `json:"min_cgpa,omitempty"`
	IncomeCriteria string              `json:"income_criteria,omitempty"`
	Location       string              `json:"location,omitempty"`
	AmountINR      int                 `json:"amount_inr,omitempty"`
	Eligibility    EligibilityCriteria `json:"eligibility_criteria"`
}

// EligibilityProfile is the per-request user profile the matcher evaluates.
// All fields are optional; absent ones simply skip their checks.
type EligibilityProfile struct {
	Domicile       string   `json:"domicile,omitempty"`
	Gender         string   `json:"gender,omitempty"`
	Age            *int     `json:"age,omitempty"`
	AnnualIncome   *int     `json:"annual_income,omitempty"`
	SocialCategory string   `json:"social_category,omitempty"`
	EducationLevel string   `json:"education_level,omitempty"`
	CourseStream   string   `json:"course_stream,omitempty"`
	Percentage     *float64 `json:"percentage,omitempty"`
}

// ScholarshipMatch is a scholarship augmented with the matcher's verdict.
type ScholarshipMatch struct {
	Scholarship
	IsEligible          bool     `json:"is_eligible"`
	MatchScore          int      `json:"match_score"`
	EligibilityReasons  []string `json:"eligibility_reasons"`
	RecommendationLevel string   `json:"recommendation_level"` // High / Medium / Low
}

// ScholarshipRecommendation is the output of the keyword-based recommender.
type ScholarshipRecommendation struct {
	Scholarship
	RelevanceScore int      `json:"relevance_score"`
	MatchReasons   []string `json:"match_reasons"`
}
