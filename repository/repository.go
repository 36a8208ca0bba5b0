package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/sethvargo/go-retry"
	_ "modernc.org/sqlite"

	"pokeelite_backend/model"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

func init() {
	// modernc registers itself as "sqlite", which sqlx does not know
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

var errNoRowsAffected = errors.New("no rows affected, expected one")

type Repository struct {
	DB     *sqlx.DB
	driver string
}

// New opens the database and waits for it to answer. The probe is retried a
// few times because the database container usually starts alongside us.
func New(ctx context.Context, driver string, dsn string) (*Repository, error) {
	if driver == DriverSQLite {
		dsn = sqliteDSN(dsn)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if driver == DriverSQLite {
		// one writer at a time; also keeps ":memory:" databases on a single connection
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	backoff := retry.WithMaxRetries(5, retry.NewExponential(200*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if errPing := db.PingContext(ctx); errPing != nil {
			return retry.RetryableError(errPing)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error connecting to %s: %w", driver, err)
	}

	return &Repository{DB: db, driver: driver}, nil
}

func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func (r *Repository) Driver() string {
	return r.driver
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}

func (r *Repository) Close() error {
	return r.DB.Close()
}

// withTransaction runs txFunc inside one transaction. Any error rolls the
// whole transaction back and is returned unchanged.
func withTransaction(ctx context.Context, db *sqlx.DB, txFunc func(*sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return storageErr("begin transaction", err)
	}

	if err = txFunc(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, storageErr("rollback", rbErr))
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return classify("commit", err)
	}
	return nil
}

func (r *Repository) valueExists(ctx context.Context, query string, args ...interface{}) (bool, error) {
	var count int
	if err := r.DB.GetContext(ctx, &count, query, args...); err != nil {
		return false, storageErr("exists", err)
	}
	return count > 0, nil
}

func expectOneRow(res interface{ RowsAffected() (int64, error) }) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return storageErr("rows affected", err)
	}
	if rows == 0 {
		return errNoRowsAffected
	}
	return nil
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, model.ErrStorageFailure, err)
}

// classify maps unique key violations to the domain error for that key and
// everything else to a storage failure.
func classify(op string, err error) error {
	key, ok := duplicateKey(err)
	switch {
	case !ok || key == "":
		return storageErr(op, err)
	case key == keyPlayerName:
		return fmt.Errorf("%s: %w", op, model.ErrNameTaken)
	default:
		return fmt.Errorf("%s: %w", op, &model.DuplicateIdentityError{Field: accountField(key)})
	}
}
