package bunrepo

import (
	"context"

	"github.com/uptrace/bun"

	"journey-quiz-service/internal/domain"
)

// JourneyRepository implements app.JourneyRepository on top of bun.
type JourneyRepository struct {
	db *bun.DB
}

func (r *JourneyRepository) Create(ctx context.Context, journey domain.Journey) (domain.Journey, error) {
	if _, err := r.db.NewInsert().Model(journeyToRow(journey)).Exec(ctx); err != nil {
		return domain.Journey{}, err
	}
	return journey, nil
}

func (r *JourneyRepository) GetByID(ctx context.Context, id string) (domain.Journey, error) {
	row := new(journeyRow)
	if err := r.db.NewSelect().Model(row).Where("j.id = ?", id).Scan(ctx); err != nil {
		return domain.Journey{}, mapNotFound(err, domain.KindJourney, id)
	}
	return row.toDomain(), nil
}

func (r *JourneyRepository) List(ctx context.Context, page domain.Page) ([]domain.Journey, error) {
	return r.list(ctx, r.db.NewSelect(), page)
}

func (r *JourneyRepository) ListByUser(ctx context.Context, userID string, page domain.Page) ([]domain.Journey, error) {
	return r.list(ctx, r.db.NewSelect().Where("j.user_id = ?", userID), page)
}

func (r *JourneyRepository) list(ctx context.Context, q *bun.SelectQuery, page domain.Page) ([]domain.Journey, error) {
	var rows []*journeyRow
	if err := pageQuery(q.Model(&rows), "j", page).Scan(ctx); err != nil {
		return nil, err
	}
	journeys := make([]domain.Journey, len(rows))
	for i, row := range rows {
		journeys[i] = row.toDomain()
	}
	return journeys, nil
}

func (r *JourneyRepository) Update(ctx context.Context, journey domain.Journey) (domain.Journey, error) {
	res, err := r.db.NewUpdate().Model(journeyToRow(journey)).WherePK().Exec(ctx)
	if err != nil {
		return domain.Journey{}, err
	}
	if err := expectAffected(res, domain.KindJourney, journey.ID); err != nil {
		return domain.Journey{}, err
	}
	return journey, nil
}

func (r *JourneyRepository) Delete(ctx context.Context, id string) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().Model((*journeyRow)(nil)).Where("id = ?", id).Exists(ctx)
		if err != nil {
			return err
		}
		if !exists {
			return domain.NewNotFound(domain.KindJourney, id)
		}
		return deleteJourneyTx(ctx, tx, id)
	})
}
