package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/herogame/herogame/internal/auth"
	"github.com/herogame/herogame/internal/model"
	"github.com/uptrace/bun"
)

// Accounts is the account repository. It satisfies auth.AccountStore, which
// keeps the auth core independent of the storage technology.
type Accounts interface {
	auth.AccountStore
	List(ctx context.Context) ([]*model.Account, error)
}

type accounts struct {
	db bun.IDB
}

var _ Accounts = (*accounts)(nil)

// NewAccountsRepository creates the bun-backed account repository.
func NewAccountsRepository(db bun.IDB) Accounts {
	return &accounts{db: db}
}

func (a *accounts) FindByID(ctx context.Context, id int64) (*model.Account, error) {
	record := &model.Account{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, accountNotFound(map[string]any{"id": id})
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load account by id")
	}
	return record, nil
}

func (a *accounts) FindByUsername(ctx context.Context, username string) (*model.Account, error) {
	record := &model.Account{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.username = ?", username).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, accountNotFound(map[string]any{"username": username})
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load account by username")
	}
	return record, nil
}

func (a *accounts) Insert(ctx context.Context, account *model.Account) error {
	taken, err := a.db.NewSelect().
		Model((*model.Account)(nil)).
		Where("?TableAlias.username = ?", account.Username).
		Exists(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to check username availability")
	}

	if taken {
		return errors.New("username "+account.Username+" is already taken", errors.CategoryConflict).
			WithTextCode(auth.TextCodeUsernameTaken).
			WithCode(errors.CodeConflict).
			WithMetadata(map[string]any{"username": account.Username})
	}

	if _, err := a.db.NewInsert().Model(account).Exec(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to insert account")
	}

	return nil
}

func (a *accounts) Update(ctx context.Context, account *model.Account) error {
	account.UpdatedAt = time.Now()
	res, err := a.db.NewUpdate().
		Model(account).
		Column("username", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to update account")
	}
	return requireAffected(res, map[string]any{"id": account.ID})
}

// UpdateHash replaces hash and salt in a single statement so the pair is
// swapped atomically.
func (a *accounts) UpdateHash(ctx context.Context, id int64, hash, salt []byte) error {
	res, err := a.db.NewUpdate().
		Model((*model.Account)(nil)).
		Set("password_hash = ?", hash).
		Set("password_salt = ?", salt).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to update account credential")
	}
	return requireAffected(res, map[string]any{"id": id})
}

func (a *accounts) Delete(ctx context.Context, id int64) error {
	res, err := a.db.NewDelete().
		Model((*model.Account)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete account")
	}
	return requireAffected(res, map[string]any{"id": id})
}

func (a *accounts) List(ctx context.Context) ([]*model.Account, error) {
	var records []*model.Account
	err := a.db.NewSelect().
		Model(&records).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list accounts")
	}
	return records, nil
}

func accountNotFound(metadata map[string]any) *errors.Error {
	return errors.New("account not found", errors.CategoryNotFound).
		WithTextCode("ACCOUNT_NOT_FOUND").
		WithCode(errors.CodeNotFound).
		WithMetadata(metadata)
}

func requireAffected(res sql.Result, metadata map[string]any) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to read affected rows")
	}
	if n == 0 {
		return accountNotFound(metadata)
	}
	return nil
}
