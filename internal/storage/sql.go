package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS local_storage (
	namespace  TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (namespace, key)
)`

const upsertQuery = `
INSERT INTO local_storage (namespace, key, value, updated_at)
VALUES (?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT (namespace, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

// SQL - хранилище в таблице local_storage (sqlite или postgres)
type SQL struct {
	db        *sqlx.DB
	namespace string
}

// NewSQL - создает таблицу при необходимости
func NewSQL(ctx context.Context, db *sqlx.DB, namespace string) (*SQL, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("не удалось создать таблицу local_storage: %w", err)
	}
	return &SQL{db: db, namespace: namespace}, nil
}

func (s *SQL) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.GetContext(ctx, &value,
		s.db.Rebind("SELECT value FROM local_storage WHERE namespace = ? AND key = ?"),
		s.namespace, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("чтение ключа %s: %w", key, err)
	}
	return value, nil
}

// SetMany - все ключи в одной транзакции
func (s *SQL) SetMany(ctx context.Context, values map[string]string) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("начало транзакции: %w", err)
	}
	defer tx.Rollback()

	query := s.db.Rebind(upsertQuery)
	for _, k := range keys {
		if _, err := tx.ExecContext(ctx, query, s.namespace, k, values[k]); err != nil {
			return fmt.Errorf("запись ключа %s: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("фиксация транзакции: %w", err)
	}
	return nil
}

func (s *SQL) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	query, args, err := sqlx.In("DELETE FROM local_storage WHERE namespace = ? AND key IN (?)", s.namespace, keys)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("удаление ключей: %w", err)
	}
	return nil
}

func (s *SQL) Close() error {
	return s.db.Close()
}
