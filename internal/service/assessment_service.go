package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"edu-guidance/internal/domain"
)

var (
	ErrAssessmentComplete   = errors.New("assessment already completed")
	ErrAssessmentIncomplete = errors.New("assessment not completed yet")
	ErrInvalidAnswer        = errors.New("answer must be between 1 and 5")
)

// AssessmentService drives the fixed-length RIASEC questionnaire. Sessions
// live in the store; the service itself is stateless per request.
type AssessmentService struct {
	store   SessionStore
	bank    domain.QuestionBank
	careers map[string][]string
	logger  *zap.Logger
}

func NewAssessmentService(store SessionStore, bank domain.QuestionBank, logger *zap.Logger) *AssessmentService {
	if bank.Len() == 0 {
		bank = domain.DefaultQuestionBank()
	}
	return &AssessmentService{
		store:   store,
		bank:    bank,
		careers: domain.CareerSuggestions,
		logger:  logger,
	}
}

// TotalQuestions returns the questionnaire length.
func (s *AssessmentService) TotalQuestions() int { return s.bank.Len() }

// ActiveSessions reports how many sessions the store currently holds.
func (s *AssessmentService) ActiveSessions(ctx context.Context) int {
	n, err := s.store.Count(ctx)
	if err != nil {
		s.logger.Warn("session count failed", zap.Error(err))
		return 0
	}
	return n
}

// StartTest allocates a fresh session with an empty trait vector.
func (s *AssessmentService) StartTest(ctx context.Context, userID string) (domain.AssessmentSession, error) {
	session := domain.AssessmentSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
		Answers:   []domain.Answer{},
		Scores:    domain.NewTraitVector(),
	}
	if err := s.store.Create(ctx, session); err != nil {
		return domain.AssessmentSession{}, fmt.Errorf("create session: %w", err)
	}
	s.logger.Info("started test session", zap.String("session_id", session.ID))
	return session, nil
}

// NextQuestion describes the question at the session cursor.
type NextQuestion struct {
	SessionID      string
	QuestionNumber int // 1-based
	TotalQuestions int
	Question       domain.Question
	Progress       float64 // percent of questions already answered
}

// GetQuestion returns the question the session is currently waiting on.
func (s *AssessmentService) GetQuestion(ctx context.Context, sessionID string) (NextQuestion, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return NextQuestion{}, err
	}
	if session.Completed || session.CurrentQuestion >= s.bank.Len() {
		return NextQuestion{}, ErrAssessmentComplete
	}
	cursor := session.CurrentQuestion
	return NextQuestion{
		SessionID:      sessionID,
		QuestionNumber: cursor + 1,
		TotalQuestions: s.bank.Len(),
		Question:       s.bank[cursor],
		Progress:       float64(cursor) / float64(s.bank.Len()) * 100,
	}, nil
}

// SubmitAnswer records a Likert answer for the current question and
// advances the cursor. The mutation runs inside the store's per-id update
// so concurrent submissions cannot corrupt the answers list. Completing the
// final question freezes the session and attaches its results.
func (s *AssessmentService) SubmitAnswer(ctx context.Context, sessionID string, value int) (domain.AssessmentSession, error) {
	if value < 1 || value > 5 {
		return domain.AssessmentSession{}, fmt.Errorf("%w: got %d", ErrInvalidAnswer, value)
	}

	session, err := s.store.Update(ctx, sessionID, func(session *domain.AssessmentSession) error {
		if session.Completed || session.CurrentQuestion >= s.bank.Len() {
			return ErrAssessmentComplete
		}
		question := s.bank[session.CurrentQuestion]
		if err := session.Scores.Increment(question.Trait, value); err != nil {
			return err
		}
		session.Answers = append(session.Answers, domain.Answer{
			QuestionNumber: session.CurrentQuestion + 1,
			Trait:          question.Trait,
			Value:          value,
		})
		session.CurrentQuestion++

		if session.CurrentQuestion >= s.bank.Len() {
			session.Completed = true
			session.Results = s.buildResults(session.Scores)
		}
		return nil
	})
	if err != nil {
		return domain.AssessmentSession{}, err
	}

	if session.Completed {
		s.logger.Info("test session completed",
			zap.String("session_id", sessionID),
			zap.String("dominant_trait", session.Results.DominantTrait),
		)
	}
	return session, nil
}

// GetResults returns the stored results of a completed session.
func (s *AssessmentService) GetResults(ctx context.Context, sessionID string) (domain.AssessmentSession, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return domain.AssessmentSession{}, err
	}
	if !session.Completed {
		return session, fmt.Errorf("%w: %d of %d answered",
			ErrAssessmentIncomplete, session.CurrentQuestion, s.bank.Len())
	}
	return session, nil
}

func (s *AssessmentService) buildResults(scores domain.TraitVector) *domain.AssessmentResults {
	summary := scores.Summarize()
	careers := s.careers[summary.DominantTrait]
	if careers == nil {
		careers = []string{}
	}
	return &domain.AssessmentResults{
		TraitSummary:          summary,
		TotalQuestions:        s.bank.Len(),
		CareerRecommendations: careers,
	}
}
