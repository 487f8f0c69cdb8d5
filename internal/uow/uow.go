package uow

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// Session is one connection+transaction scope bounding a single logical
// operation. It is owned by exactly one in-flight operation and must never be
// shared or nested; the caller commits or rolls back once and then closes.
type Session struct {
	tx   *sqlx.Tx
	done bool
}

// Tx exposes the transaction for repositories executing against this session.
func (s *Session) Tx() *sqlx.Tx {
	return s.tx
}

func (s *Session) Commit() error {
	if s.done {
		return sql.ErrTxDone
	}
	s.done = true
	return s.tx.Commit()
}

func (s *Session) Rollback() error {
	if s.done {
		return sql.ErrTxDone
	}
	s.done = true
	return s.tx.Rollback()
}

// Close releases the session. Closing without a prior Commit rolls the
// transaction back, so `defer sess.Close()` guarantees release on every exit
// path, including panics and early returns.
func (s *Session) Close() error {
	if s.done {
		return nil
	}
	s.done = true
	if err := s.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}

// Factory hands out sessions backed by the shared connection pool.
type Factory struct {
	db *sqlx.DB
}

func NewFactory(db *sqlx.DB) *Factory {
	return &Factory{db: db}
}

func (f *Factory) Begin(ctx context.Context) (*Session, error) {
	tx, err := f.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Session{tx: tx}, nil
}
