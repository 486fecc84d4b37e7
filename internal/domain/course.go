package domain

// Course is one row of the course/college reference dataset.
type Course struct {
	CollegeName          string  `json:"college_name"`
	CourseName           string  `json:"course_name"`
	DegreeLevel          string  `json:"degree_level"` // UG, PG, Diploma, Certificate
	Trait                string  `json:"riasec_trait"` // primary RIASEC tag
	PotentialProfessions string  `json:"potential_careers"`
	Latitude             float64 `json:"latitude"`
	Longitude            float64 `json:"longitude"`
	CourseRating         float64 `json:"course_rating"`
	CollegeRating        float64 `json:"college_rating"`
}

// CourseRecommendation augments a course with per-request scoring fields.
// None of these are persisted; they exist only in the response payload.
type CourseRecommendation struct {
	Course
	DistanceKm   float64 `json:"distance_km"`
	MatchScore   float64 `json:"match_score"`
	MatchPercent float64 `json:"match_percent"`
	FinalRank    float64 `json:"final_rank"`
}
