package store

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-errors"
	"github.com/herogame/herogame/internal/model"
	"github.com/uptrace/bun"
)

// Heroes is the hero repository.
type Heroes interface {
	Create(ctx context.Context, hero *model.Hero) (*model.Hero, error)
	FindByID(ctx context.Context, id int64) (*model.Hero, error)
	List(ctx context.Context) ([]*model.Hero, error)
	ListByAccount(ctx context.Context, accountID int64) ([]*model.Hero, error)
	Delete(ctx context.Context, id int64) error
}

type heroes struct {
	db bun.IDB
}

var _ Heroes = (*heroes)(nil)

// NewHeroesRepository creates the bun-backed hero repository.
func NewHeroesRepository(db bun.IDB) Heroes {
	return &heroes{db: db}
}

func (h *heroes) Create(ctx context.Context, hero *model.Hero) (*model.Hero, error) {
	if _, err := h.db.NewInsert().Model(hero).Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to insert hero")
	}
	return hero, nil
}

func (h *heroes) FindByID(ctx context.Context, id int64) (*model.Hero, error) {
	record := &model.Hero{}
	err := h.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, heroNotFound(id)
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load hero")
	}
	return record, nil
}

func (h *heroes) List(ctx context.Context) ([]*model.Hero, error) {
	var records []*model.Hero
	err := h.db.NewSelect().
		Model(&records).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list heroes")
	}
	return records, nil
}

func (h *heroes) ListByAccount(ctx context.Context, accountID int64) ([]*model.Hero, error) {
	var records []*model.Hero
	err := h.db.NewSelect().
		Model(&records).
		Where("?TableAlias.account_id = ?", accountID).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list account heroes")
	}
	return records, nil
}

func (h *heroes) Delete(ctx context.Context, id int64) error {
	res, err := h.db.NewDelete().
		Model((*model.Hero)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete hero")
	}

	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to read affected rows")
	}
	if n == 0 {
		return heroNotFound(id)
	}
	return nil
}

func heroNotFound(id int64) *errors.Error {
	return errors.New("hero not found", errors.CategoryNotFound).
		WithTextCode("HERO_NOT_FOUND").
		WithCode(errors.CodeNotFound).
		WithMetadata(map[string]any{"id": id})
}
