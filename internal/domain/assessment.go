package domain

import "time"

// Answer is one accepted questionnaire response.
type Answer struct {
	QuestionNumber int    `json:"question_number"` // 1-based
	Trait          string `json:"riasec_type"`
	Value          int    `json:"answer"` // Likert 1-5
}

// AssessmentResults is the terminal output of a completed session.
type AssessmentResults struct {
	TraitSummary
	TotalQuestions        int      `json:"total_questions"`
	CareerRecommendations []string `json:"career_recommendations"`
}

// AssessmentSession tracks one run through the questionnaire. The answers
// list is append-only and its length always equals CurrentQuestion; once
// Completed is set the session is read-only.
type AssessmentSession struct {
	ID              string             `json:"session_id"`
	UserID          string             `json:"user_id,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	CurrentQuestion int                `json:"current_question"` // 0-based cursor
	Answers         []Answer           `json:"answers"`
	Scores          TraitVector        `json:"riasec_scores"`
	Completed       bool               `json:"completed"`
	Results         *AssessmentResults `json:"results,omitempty"`
}
