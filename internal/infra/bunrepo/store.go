package bunrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"journey-quiz-service/internal/domain"
)

// Store exposes the SQL-backed repositories sharing one bun handle.
type Store struct {
	db *bun.DB
}

func NewStore(db *bun.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Users() *UserRepository         { return &UserRepository{db: s.db} }
func (s *Store) Journeys() *JourneyRepository   { return &JourneyRepository{db: s.db} }
func (s *Store) Quizzes() *QuizRepository       { return &QuizRepository{db: s.db} }
func (s *Store) Questions() *QuestionRepository { return &QuestionRepository{db: s.db} }

func mapNotFound(err error, kind domain.EntityKind, id string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFound(kind, id)
	}
	return err
}

func expectAffected(res sql.Result, kind domain.EntityKind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NewNotFound(kind, id)
	}
	return nil
}

func pageQuery(q *bun.SelectQuery, alias string, page domain.Page) *bun.SelectQuery {
	page = page.Normalize()
	return q.
		OrderExpr(alias + ".created_at ASC, " + alias + ".id ASC").
		Offset(page.Offset).
		Limit(page.Limit)
}

func withOptions(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Relation("Options", func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr("opt.position ASC, opt.id ASC")
	})
}

// deleteUserTx cascades to the user's journeys and to journey-less quizzes it owns.
func deleteUserTx(ctx context.Context, tx bun.Tx, id string) error {
	var journeyIDs []string
	if err := tx.NewSelect().Model((*journeyRow)(nil)).Column("id").Where("user_id = ?", id).Scan(ctx, &journeyIDs); err != nil {
		return err
	}
	for _, jid := range journeyIDs {
		if err := deleteJourneyTx(ctx, tx, jid); err != nil {
			return err
		}
	}

	var quizIDs []string
	if err := tx.NewSelect().Model((*quizRow)(nil)).Column("id").
		Where("owner_id = ?", id).Where("journey_id IS NULL").Scan(ctx, &quizIDs); err != nil {
		return err
	}
	if err := deleteQuizzesTx(ctx, tx, quizIDs); err != nil {
		return err
	}

	_, err := tx.NewDelete().Model((*userRow)(nil)).Where("id = ?", id).Exec(ctx)
	return err
}

func deleteJourneyTx(ctx context.Context, tx bun.Tx, id string) error {
	var quizIDs []string
	if err := tx.NewSelect().Model((*quizRow)(nil)).Column("id").Where("journey_id = ?", id).Scan(ctx, &quizIDs); err != nil {
		return err
	}
	if err := deleteQuizzesTx(ctx, tx, quizIDs); err != nil {
		return err
	}
	_, err := tx.NewDelete().Model((*journeyRow)(nil)).Where("id = ?", id).Exec(ctx)
	return err
}

func deleteQuizzesTx(ctx context.Context, tx bun.Tx, quizIDs []string) error {
	if len(quizIDs) == 0 {
		return nil
	}
	var questionIDs []string
	if err := tx.NewSelect().Model((*questionRow)(nil)).Column("id").
		Where("quiz_id IN (?)", bun.In(quizIDs)).Scan(ctx, &questionIDs); err != nil {
		return err
	}
	if err := deleteQuestionsTx(ctx, tx, questionIDs); err != nil {
		return err
	}
	_, err := tx.NewDelete().Model((*quizRow)(nil)).Where("id IN (?)", bun.In(quizIDs)).Exec(ctx)
	return err
}

func deleteQuestionsTx(ctx context.Context, tx bun.Tx, questionIDs []string) error {
	if len(questionIDs) == 0 {
		return nil
	}
	if _, err := tx.NewDelete().Model((*optionRow)(nil)).Where("question_id IN (?)", bun.In(questionIDs)).Exec(ctx); err != nil {
		return err
	}
	_, err := tx.NewDelete().Model((*questionRow)(nil)).Where("id IN (?)", bun.In(questionIDs)).Exec(ctx)
	return err
}

func insertQuestionTx(ctx context.Context, tx bun.Tx, question domain.Question) error {
	row := questionToRow(question)
	if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
		return err
	}
	if len(row.Options) == 0 {
		return nil
	}
	_, err := tx.NewInsert().Model(&row.Options).Exec(ctx)
	return err
}
