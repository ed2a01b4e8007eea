package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/redexp/kaiserhof/i18n"
	. "github.com/redexp/kaiserhof/types"
	"github.com/tliron/commonlog"
	"go.uber.org/multierr"

	_ "modernc.org/sqlite"
)

const DefaultDriver = "sqlite"

// CgoDriver is registered only in cgo builds
const CgoDriver = "sqlite3"

var ErrNoYear = errors.New("no record date")

type Store struct {
	db    *sql.DB
	log   commonlog.Logger
	lock  sync.Mutex
	stmts map[Query]*sql.Stmt
}

func Open(driver string, dsn string) (*Store, error) {
	if driver == "" {
		driver = DefaultDriver
	}

	db, err := sql.Open(driver, dsn)

	if err != nil {
		return nil, fmt.Errorf("%s: %w", i18n.L("unsupported_db_driver", driver), err)
	}

	if strings.Contains(dsn, ":memory:") {
		// every connection of an in-memory db is a separate db
		db.SetMaxOpenConns(1)
	}

	return New(db), nil
}

func New(db *sql.DB) *Store {
	return &Store{
		db:    db,
		log:   commonlog.GetLogger("kaiserhof.store"),
		stmts: make(map[Query]*sql.Stmt),
	}
}

func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Close() (err error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	for q, stmt := range s.stmts {
		err = multierr.Append(err, stmt.Close())
		delete(s.stmts, q)
	}

	return multierr.Append(err, s.db.Close())
}

func (s *Store) prepare(ctx context.Context, q Query) (*sql.Stmt, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	stmt, ok := s.stmts[q]

	if ok {
		return stmt, nil
	}

	text, ok := q.SQL()

	if !ok {
		return nil, fmt.Errorf("unknown statement %s", q)
	}

	stmt, err := s.db.PrepareContext(ctx, text)

	if err != nil {
		return nil, fmt.Errorf("prepare %s: %w", q, err)
	}

	s.stmts[q] = stmt

	return stmt, nil
}

// Query runs a catalog statement and returns its rows. No rows is an empty set.
func (s *Store) Query(ctx context.Context, q Query, args ...any) (RowSet, error) {
	stmt, err := s.prepare(ctx, q)

	if err != nil {
		return nil, err
	}

	s.log.Debugf("%s %v", q, args)

	rows, err := stmt.QueryContext(ctx, args...)

	if err != nil {
		return nil, fmt.Errorf("%s: %w", q, err)
	}

	defer rows.Close()

	list, err := scanRows(rows)

	if err != nil {
		return nil, fmt.Errorf("%s: %w", q, err)
	}

	return list, nil
}

func (s *Store) Exec(ctx context.Context, q Query, args ...any) (int64, error) {
	stmt, err := s.prepare(ctx, q)

	if err != nil {
		return 0, err
	}

	res, err := stmt.ExecContext(ctx, args...)

	if err != nil {
		return 0, fmt.Errorf("%s: %w", q, err)
	}

	return res.RowsAffected()
}

func scanRows(rows *sql.Rows) (RowSet, error) {
	columns, err := rows.Columns()

	if err != nil {
		return nil, err
	}

	list := make(RowSet, 0)

	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))

		for i := range values {
			pointers[i] = &values[i]
		}

		if err = rows.Scan(pointers...); err != nil {
			return nil, err
		}

		row := make(Row, len(columns))

		for i, name := range columns {
			if b, ok := values[i].([]byte); ok {
				row[name] = string(b)
				continue
			}

			row[name] = values[i]
		}

		list = append(list, row)
	}

	return list, rows.Err()
}
