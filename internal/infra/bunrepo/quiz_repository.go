package bunrepo

import (
	"context"

	"github.com/uptrace/bun"

	"journey-quiz-service/internal/domain"
)

// QuizRepository implements app.QuizRepository on top of bun.
type QuizRepository struct {
	db *bun.DB
}

func (r *QuizRepository) Create(ctx context.Context, quiz domain.Quiz) (domain.Quiz, error) {
	if _, err := r.db.NewInsert().Model(quizToRow(quiz)).Exec(ctx); err != nil {
		return domain.Quiz{}, err
	}
	return quiz, nil
}

func (r *QuizRepository) CreateWithQuestions(ctx context.Context, quiz domain.Quiz, questions []domain.Question) (domain.Quiz, []domain.Question, error) {
	created := make([]domain.Question, len(questions))
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(quizToRow(quiz)).Exec(ctx); err != nil {
			return err
		}
		for i, question := range questions {
			question.QuizID = quiz.ID
			if err := insertQuestionTx(ctx, tx, question); err != nil {
				return err
			}
			created[i] = question
		}
		return nil
	})
	if err != nil {
		return domain.Quiz{}, nil, err
	}
	return quiz, created, nil
}

func (r *QuizRepository) GetByID(ctx context.Context, id string) (domain.Quiz, error) {
	row := new(quizRow)
	if err := r.db.NewSelect().Model(row).Where("qz.id = ?", id).Scan(ctx); err != nil {
		return domain.Quiz{}, mapNotFound(err, domain.KindQuiz, id)
	}
	return row.toDomain(), nil
}

func (r *QuizRepository) List(ctx context.Context, page domain.Page) ([]domain.Quiz, error) {
	return r.list(ctx, r.db.NewSelect(), page)
}

func (r *QuizRepository) ListByJourney(ctx context.Context, journeyID string, page domain.Page) ([]domain.Quiz, error) {
	return r.list(ctx, r.db.NewSelect().Where("qz.journey_id = ?", journeyID), page)
}

func (r *QuizRepository) list(ctx context.Context, q *bun.SelectQuery, page domain.Page) ([]domain.Quiz, error) {
	var rows []*quizRow
	if err := pageQuery(q.Model(&rows), "qz", page).Scan(ctx); err != nil {
		return nil, err
	}
	quizzes := make([]domain.Quiz, len(rows))
	for i, row := range rows {
		quizzes[i] = row.toDomain()
	}
	return quizzes, nil
}

func (r *QuizRepository) Update(ctx context.Context, quiz domain.Quiz) (domain.Quiz, error) {
	res, err := r.db.NewUpdate().Model(quizToRow(quiz)).WherePK().Exec(ctx)
	if err != nil {
		return domain.Quiz{}, err
	}
	if err := expectAffected(res, domain.KindQuiz, quiz.ID); err != nil {
		return domain.Quiz{}, err
	}
	return quiz, nil
}

func (r *QuizRepository) Delete(ctx context.Context, id string) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().Model((*quizRow)(nil)).Where("id = ?", id).Exists(ctx)
		if err != nil {
			return err
		}
		if !exists {
			return domain.NewNotFound(domain.KindQuiz, id)
		}
		return deleteQuizzesTx(ctx, tx, []string{id})
	})
}
