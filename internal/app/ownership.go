package app

import (
	"context"

	"journey-quiz-service/internal/domain"
)

// QuizChain is a quiz together with the journey that grants access to it.
// Journey is nil for a journey-less quiz.
type QuizChain struct {
	Quiz    domain.Quiz
	Journey *domain.Journey
}

// QuestionChain is the full Question -> Quiz -> Journey path.
type QuestionChain struct {
	Question domain.Question
	Quiz     domain.Quiz
	Journey  *domain.Journey
}

// OwnershipResolver walks the ownership chain of quizzes and questions up to
// the owning journey. Every call reads the current persisted state.
type OwnershipResolver struct {
	journeys  JourneyRepository
	quizzes   QuizRepository
	questions QuestionRepository
}

func NewOwnershipResolver(journeys JourneyRepository, quizzes QuizRepository, questions QuestionRepository) *OwnershipResolver {
	return &OwnershipResolver{journeys: journeys, quizzes: quizzes, questions: questions}
}

// AuthorizeJourney loads a journey and checks it belongs to userID.
func (r *OwnershipResolver) AuthorizeJourney(ctx context.Context, journeyID, userID, action string) (domain.Journey, error) {
	journey, err := r.journeys.GetByID(ctx, journeyID)
	if err != nil {
		return domain.Journey{}, err
	}
	if journey.UserID != userID {
		return domain.Journey{}, domain.Forbidden(action)
	}
	return journey, nil
}

// AuthorizeQuiz fails with NotFound when the quiz or its journey does not
// resolve and with Forbidden when the journey belongs to someone else.
// A journey-less quiz is only accessible to the user that created it.
func (r *OwnershipResolver) AuthorizeQuiz(ctx context.Context, quizID, userID, action string) (QuizChain, error) {
	quiz, err := r.quizzes.GetByID(ctx, quizID)
	if err != nil {
		return QuizChain{}, err
	}
	return r.authorizeLoadedQuiz(ctx, quiz, userID, action)
}

// AuthorizeQuestion resolves the question's quiz and delegates to the quiz check.
func (r *OwnershipResolver) AuthorizeQuestion(ctx context.Context, questionID, userID, action string) (QuestionChain, error) {
	question, err := r.questions.GetByID(ctx, questionID)
	if err != nil {
		return QuestionChain{}, err
	}
	quiz, err := r.quizzes.GetByID(ctx, question.QuizID)
	if err != nil {
		return QuestionChain{}, err
	}
	chain, err := r.authorizeLoadedQuiz(ctx, quiz, userID, action)
	if err != nil {
		return QuestionChain{}, err
	}
	return QuestionChain{Question: question, Quiz: chain.Quiz, Journey: chain.Journey}, nil
}

func (r *OwnershipResolver) authorizeLoadedQuiz(ctx context.Context, quiz domain.Quiz, userID, action string) (QuizChain, error) {
	if quiz.JourneyID == nil {
		if quiz.OwnerID == "" || quiz.OwnerID != userID {
			return QuizChain{}, domain.Forbidden(action)
		}
		return QuizChain{Quiz: quiz}, nil
	}

	// A dangling journey reference surfaces as the repository's NotFound.
	journey, err := r.journeys.GetByID(ctx, *quiz.JourneyID)
	if err != nil {
		return QuizChain{}, err
	}
	if journey.UserID != userID {
		return QuizChain{}, domain.Forbidden(action)
	}
	return QuizChain{Quiz: quiz, Journey: &journey}, nil
}
