package bunrepo

import (
	"context"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			tables := []struct {
				model       any
				foreignKeys []string
			}{
				{model: (*userRow)(nil)},
				{model: (*journeyRow)(nil), foreignKeys: []string{
					`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`,
				}},
				{model: (*quizRow)(nil), foreignKeys: []string{
					`("journey_id") REFERENCES "journeys" ("id") ON DELETE CASCADE`,
				}},
				{model: (*questionRow)(nil), foreignKeys: []string{
					`("quiz_id") REFERENCES "quizzes" ("id") ON DELETE CASCADE`,
				}},
				{model: (*optionRow)(nil), foreignKeys: []string{
					`("question_id") REFERENCES "questions" ("id") ON DELETE CASCADE`,
				}},
			}
			for _, table := range tables {
				q := db.NewCreateTable().Model(table.model).IfNotExists()
				for _, fk := range table.foreignKeys {
					q = q.ForeignKey(fk)
				}
				if _, err := q.Exec(ctx); err != nil {
					return err
				}
			}

			indexes := []struct {
				model  any
				name   string
				column string
			}{
				{(*journeyRow)(nil), "journeys_user_id_idx", "user_id"},
				{(*quizRow)(nil), "quizzes_journey_id_idx", "journey_id"},
				{(*quizRow)(nil), "quizzes_owner_id_idx", "owner_id"},
				{(*questionRow)(nil), "questions_quiz_id_idx", "quiz_id"},
				{(*optionRow)(nil), "question_options_question_id_idx", "question_id"},
			}
			for _, idx := range indexes {
				if _, err := db.NewCreateIndex().Model(idx.model).Index(idx.name).Column(idx.column).IfNotExists().Exec(ctx); err != nil {
					return err
				}
			}
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			for _, model := range []any{(*optionRow)(nil), (*questionRow)(nil), (*quizRow)(nil), (*journeyRow)(nil), (*userRow)(nil)} {
				if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
					return err
				}
			}
			return nil
		},
	)
}
