// Package db provides database/sql helpers for verifying persisted state from tests.
//
// Parameters are bound positionally in the order given using the placeholder
// syntax of the driver ($1 for PostgreSQL, ? for SQLite).
package db

import (
	"context"
	"database/sql"
	"io"

	"github.com/gravitational/uitest/lib/constants"

	"github.com/gravitational/trace"
	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// Querier executes statements.
// It is implemented by *sql.DB, *sql.Conn and *sql.Tx
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// TxBeginner starts transactions.
// It is implemented by *sql.DB and *sql.Conn
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Open connects to the database described by config
func Open(ctx context.Context, config Config) (*sql.DB, error) {
	driver, dsn, err := config.DriverAndDSN()
	if err != nil {
		return nil, trace.Wrap(err)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if err := db.PingContext(ctx); err != nil {
		CloseQuietly(db)
		return nil, trace.ConnectionProblem(err, "failed to connect to %v database", driver)
	}
	return db, nil
}

// OpenFromEnv connects to the database named by DB_URL, DB_USER and DB_PASS
func OpenFromEnv(ctx context.Context) (*sql.DB, error) {
	config, err := ConfigFromEnv()
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return Open(ctx, *config)
}

// Query runs a query and returns all rows
func Query(ctx context.Context, q Querier, query string, params ...interface{}) (QueryResult, error) {
	log.WithField(constants.FieldSQL, query).Debug("query")
	rows, err := q.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	defer rows.Close()
	result, err := scanRows(rows)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return result, nil
}

// QueryWith runs a query on a connection opened for the duration of the call
func QueryWith(ctx context.Context, config Config, query string, params ...interface{}) (QueryResult, error) {
	db, err := Open(ctx, config)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	defer CloseQuietly(db)
	return Query(ctx, db, query, params...)
}

// Update executes a data-modifying statement and returns the number of affected rows
func Update(ctx context.Context, q Querier, query string, params ...interface{}) (int64, error) {
	log.WithField(constants.FieldSQL, query).Debug("update")
	result, err := q.ExecContext(ctx, query, params...)
	if err != nil {
		return 0, trace.Wrap(err)
	}
	affected, err := result.RowsAffected()
	return affected, trace.Wrap(err)
}

// UpdateWith executes a statement on a connection opened for the duration of the call
func UpdateWith(ctx context.Context, config Config, query string, params ...interface{}) (int64, error) {
	db, err := Open(ctx, config)
	if err != nil {
		return 0, trace.Wrap(err)
	}
	defer CloseQuietly(db)
	return Update(ctx, db, query, params...)
}

// ExecuteBatch prepares the statement once and executes it for each parameter set.
// Returns the number of affected rows for every executed parameter set
func ExecuteBatch(ctx context.Context, q Querier, query string, batch [][]interface{}) ([]int64, error) {
	log.WithField(constants.FieldSQL, query).Debugf("batch of %v", len(batch))
	stmt, err := q.PrepareContext(ctx, query)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	defer stmt.Close()
	counts := make([]int64, 0, len(batch))
	for i, params := range batch {
		result, err := stmt.ExecContext(ctx, params...)
		if err != nil {
			return counts, trace.Wrap(err, "batch entry %v", i)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return counts, trace.Wrap(err)
		}
		counts = append(counts, affected)
	}
	return counts, nil
}

// QueryForString returns the first column of the first row as text.
// ok is false if the query returned no rows or the value is NULL
func QueryForString(ctx context.Context, q Querier, query string, params ...interface{}) (value string, ok bool, err error) {
	result, err := Query(ctx, q, query, params...)
	if err != nil {
		return "", false, trace.Wrap(err)
	}
	if len(result) == 0 || len(result[0].values) == 0 {
		return "", false, nil
	}
	return toString(result[0].values[0])
}

// RunInTransaction runs fn in a transaction.
// The transaction is committed if fn succeeds and rolled back otherwise.
// A failed rollback is logged and the error from fn is returned unchanged.
// The underlying connection is returned to auto-commit mode on all paths
func RunInTransaction(ctx context.Context, db TxBeginner, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return trace.Wrap(err)
	}
	defer func() {
		if r := recover(); r != nil {
			rollback(tx)
			panic(r)
		}
	}()
	if err := fn(tx); err != nil {
		rollback(tx)
		return err
	}
	return trace.Wrap(tx.Commit())
}

func rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
		log.WithError(err).Warn("Failed to roll back transaction.")
	}
}

// CloseQuietly closes c ignoring errors.
// A nil closer is ignored, including typed nil pointers of the database/sql types
func CloseQuietly(c io.Closer) {
	switch v := c.(type) {
	case nil:
		return
	case *sql.DB:
		if v == nil {
			return
		}
	case *sql.Conn:
		if v == nil {
			return
		}
	case *sql.Stmt:
		if v == nil {
			return
		}
	case *sql.Rows:
		if v == nil {
			return
		}
	}
	if err := c.Close(); err != nil {
		log.WithError(err).Debug("Failed to close.")
	}
}
