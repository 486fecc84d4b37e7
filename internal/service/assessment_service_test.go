package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"

	"edu-guidance/internal/domain"
)

func newTestAssessmentService() *AssessmentService {
	return NewAssessmentService(NewMemorySessionStore(), nil, zap.NewNop())
}

func TestAssessmentService_FullRun(t *testing.T) {
	ctx := context.Background()
	svc := newTestAssessmentService()

	session, err := svc.StartTest(ctx, "user-1")
	if err != nil {
		t.Fatalf("start test failed: %v", err)
	}
	if session.ID == "" {
		t.Fatal("expected a session id")
	}
	if svc.ActiveSessions(ctx) != 1 {
		t.Fatalf("expected 1 active session, got %d", svc.ActiveSessions(ctx))
	}

	total := svc.TotalQuestions()
	if total != 24 {
		t.Fatalf("expected 24 questions, got %d", total)
	}

	for i := 0; i < total; i++ {
		next, err := svc.GetQuestion(ctx, session.ID)
		if err != nil {
			t.Fatalf("get question %d failed: %v", i+1, err)
		}
		if next.QuestionNumber != i+1 {
			t.Fatalf("expected question %d, got %d", i+1, next.QuestionNumber)
		}
		if _, err := svc.SubmitAnswer(ctx, session.ID, 5); err != nil {
			t.Fatalf("submit answer %d failed: %v", i+1, err)
		}
	}

	result, err := svc.GetResults(ctx, session.ID)
	if err != nil {
		t.Fatalf("get results failed: %v", err)
	}
	if !result.Completed {
		t.Fatal("session should be completed")
	}
	if result.Results == nil {
		t.Fatal("expected results on the completed session")
	}
	if result.Results.TotalScore != 120 {
		t.Fatalf("expected total 120, got %d", result.Results.TotalScore)
	}
	for _, code := range domain.TraitOrder {
		if result.Results.Scores[code] != 20 {
			t.Fatalf("expected %s=20, got %d", code, result.Results.Scores[code])
		}
		if math.Abs(result.Results.Percentages[code]-16.67) > 0.01 {
			t.Fatalf("expected %s=16.67%%, got %v", code, result.Results.Percentages[code])
		}
	}
	// All traits tied at 20; the priority order picks R.
	if result.Results.DominantTrait != "R" {
		t.Fatalf("expected dominant R, got %s", result.Results.DominantTrait)
	}
	if len(result.Results.CareerRecommendations) == 0 {
		t.Fatal("expected career recommendations for R")
	}
	if len(result.Answers) != total {
		t.Fatalf("expected %d answers, got %d", total, len(result.Answers))
	}
}

func TestAssessmentService_SubmitAfterComplete(t *testing.T) {
	ctx := context.Background()
	svc := newTestAssessmentService()

	session, err := svc.StartTest(ctx, "")
	if err != nil {
		t.Fatalf("start test failed: %v", err)
	}
	for i := 0; i < svc.TotalQuestions(); i++ {
		if _, err := svc.SubmitAnswer(ctx, session.ID, 3); err != nil {
			t.Fatalf("submit answer failed: %v", err)
		}
	}

	if _, err := svc.SubmitAnswer(ctx, session.ID, 3); !errors.Is(err, ErrAssessmentComplete) {
		t.Fatalf("expected ErrAssessmentComplete, got %v", err)
	}
	if _, err := svc.GetQuestion(ctx, session.ID); !errors.Is(err, ErrAssessmentComplete) {
		t.Fatalf("expected ErrAssessmentComplete from GetQuestion, got %v", err)
	}
}

func TestAssessmentService_ResultsBeforeComplete(t *testing.T) {
	ctx := context.Background()
	svc := newTestAssessmentService()

	session, err := svc.StartTest(ctx, "")
	if err != nil {
		t.Fatalf("start test failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := svc.SubmitAnswer(ctx, session.ID, 4); err != nil {
			t.Fatalf("submit answer failed: %v", err)
		}
	}

	got, err := svc.GetResults(ctx, session.ID)
	if !errors.Is(err, ErrAssessmentIncomplete) {
		t.Fatalf("expected ErrAssessmentIncomplete, got %v", err)
	}
	if got.CurrentQuestion != 3 {
		t.Fatalf("expected cursor 3 alongside the error, got %d", got.CurrentQuestion)
	}
}

func TestAssessmentService_InvalidAnswer(t *testing.T) {
	ctx := context.Background()
	svc := newTestAssessmentService()

	session, err := svc.StartTest(ctx, "")
	if err != nil {
		t.Fatalf("start test failed: %v", err)
	}

	for _, value := range []int{0, 6, -1} {
		if _, err := svc.SubmitAnswer(ctx, session.ID, value); !errors.Is(err, ErrInvalidAnswer) {
			t.Fatalf("expected ErrInvalidAnswer for %d, got %v", value, err)
		}
	}

	// Rejected answers must not advance the cursor.
	next, err := svc.GetQuestion(ctx, session.ID)
	if err != nil {
		t.Fatalf("get question failed: %v", err)
	}
	if next.QuestionNumber != 1 {
		t.Fatalf("cursor moved on invalid answer: question %d", next.QuestionNumber)
	}
}

func TestAssessmentService_UnknownSession(t *testing.T) {
	ctx := context.Background()
	svc := newTestAssessmentService()

	if _, err := svc.GetQuestion(ctx, "nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, err := svc.SubmitAnswer(ctx, "nope", 3); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, err := svc.GetResults(ctx, "nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
