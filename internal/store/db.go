package store

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-errors"
	"github.com/herogame/herogame/internal/model"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// Connect opens the sqlite database behind the given DSN.
func Connect(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to open database")
	}

	// sqlite: a single writer connection avoids SQLITE_BUSY under load
	sqldb.SetMaxOpenConns(1)

	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// InitSchema creates the account and hero tables if they do not exist.
func InitSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*model.Account)(nil),
		(*model.Hero)(nil),
	}

	for _, m := range models {
		if _, err := db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "failed to create table")
		}
	}

	return nil
}
