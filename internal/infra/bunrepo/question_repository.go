package bunrepo

import (
	"context"

	"github.com/uptrace/bun"

	"journey-quiz-service/internal/domain"
)

// QuestionRepository implements app.QuestionRepository; options live in their own table.
type QuestionRepository struct {
	db *bun.DB
}

func (r *QuestionRepository) Create(ctx context.Context, question domain.Question) (domain.Question, error) {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return insertQuestionTx(ctx, tx, question)
	})
	if err != nil {
		return domain.Question{}, err
	}
	return question, nil
}

func (r *QuestionRepository) GetByID(ctx context.Context, id string) (domain.Question, error) {
	row := new(questionRow)
	if err := withOptions(r.db.NewSelect().Model(row)).Where("qn.id = ?", id).Scan(ctx); err != nil {
		return domain.Question{}, mapNotFound(err, domain.KindQuestion, id)
	}
	return row.toDomain(), nil
}

func (r *QuestionRepository) List(ctx context.Context, page domain.Page) ([]domain.Question, error) {
	return r.list(ctx, r.db.NewSelect(), page)
}

func (r *QuestionRepository) ListByQuiz(ctx context.Context, quizID string, page domain.Page) ([]domain.Question, error) {
	return r.list(ctx, r.db.NewSelect().Where("qn.quiz_id = ?", quizID), page)
}

func (r *QuestionRepository) list(ctx context.Context, q *bun.SelectQuery, page domain.Page) ([]domain.Question, error) {
	var rows []*questionRow
	if err := pageQuery(withOptions(q.Model(&rows)), "qn", page).Scan(ctx); err != nil {
		return nil, err
	}
	questions := make([]domain.Question, len(rows))
	for i, row := range rows {
		questions[i] = row.toDomain()
	}
	return questions, nil
}

func (r *QuestionRepository) Update(ctx context.Context, question domain.Question) (domain.Question, error) {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		row := questionToRow(question)
		res, err := tx.NewUpdate().Model(row).WherePK().Exec(ctx)
		if err != nil {
			return err
		}
		if err := expectAffected(res, domain.KindQuestion, question.ID); err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model((*optionRow)(nil)).Where("question_id = ?", question.ID).Exec(ctx); err != nil {
			return err
		}
		if len(row.Options) == 0 {
			return nil
		}
		_, err = tx.NewInsert().Model(&row.Options).Exec(ctx)
		return err
	})
	if err != nil {
		return domain.Question{}, err
	}
	return question, nil
}

func (r *QuestionRepository) Delete(ctx context.Context, id string) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().Model((*questionRow)(nil)).Where("id = ?", id).Exists(ctx)
		if err != nil {
			return err
		}
		if !exists {
			return domain.NewNotFound(domain.KindQuestion, id)
		}
		return deleteQuestionsTx(ctx, tx, []string{id})
	})
}
