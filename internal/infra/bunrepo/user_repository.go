package bunrepo

import (
	"context"

	"github.com/uptrace/bun"

	"journey-quiz-service/internal/domain"
)

// UserRepository implements app.UserRepository on top of bun.
type UserRepository struct {
	db *bun.DB
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	if _, err := r.db.NewInsert().Model(userToRow(user)).Exec(ctx); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.getBy(ctx, "username", username)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *UserRepository) getBy(ctx context.Context, column, value string) (domain.User, error) {
	row := new(userRow)
	err := r.db.NewSelect().Model(row).Where("?TableAlias.? = ?", bun.Ident(column), value).Scan(ctx)
	if err != nil {
		return domain.User{}, mapNotFound(err, domain.KindUser, value)
	}
	return row.toDomain(), nil
}

func (r *UserRepository) List(ctx context.Context, page domain.Page) ([]domain.User, error) {
	var rows []*userRow
	if err := pageQuery(r.db.NewSelect().Model(&rows), "u", page).Scan(ctx); err != nil {
		return nil, err
	}
	users := make([]domain.User, len(rows))
	for i, row := range rows {
		users[i] = row.toDomain()
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	res, err := r.db.NewUpdate().Model(userToRow(user)).WherePK().Exec(ctx)
	if err != nil {
		return domain.User{}, err
	}
	if err := expectAffected(res, domain.KindUser, user.ID); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().Model((*userRow)(nil)).Where("id = ?", id).Exists(ctx)
		if err != nil {
			return err
		}
		if !exists {
			return domain.NewNotFound(domain.KindUser, id)
		}
		return deleteUserTx(ctx, tx, id)
	})
}
