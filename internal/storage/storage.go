// Package storage - долговременное локальное хранилище ключ-значение для сессии.
package storage

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"storefront/config"
	"storefront/pkg/database"
)

// ErrNotFound - ключ отсутствует в хранилище
var ErrNotFound = errors.New("ключ не найден")

// Storage - локальное хранилище. SetMany записывает все ключи атомарно.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	SetMany(ctx context.Context, values map[string]string) error
	Remove(ctx context.Context, keys ...string) error
	Close() error
}

// Open - выбирает реализацию хранилища по конфигурации
func Open(ctx context.Context, cfg config.StorageConfig, log *zap.Logger) (Storage, error) {
	switch cfg.Driver {
	case "memory":
		return NewMemory(), nil
	case "sqlite", "postgres":
		db, err := database.Connect(cfg)
		if err != nil {
			return nil, err
		}
		s, err := NewSQL(ctx, db, cfg.Namespace)
		if err != nil {
			db.Close()
			return nil, err
		}
		log.Debug("SQL хранилище открыто", zap.String("driver", cfg.Driver))
		return s, nil
	case "redis":
		s, err := NewRedis(ctx, cfg.Redis, cfg.Namespace)
		if err != nil {
			return nil, err
		}
		log.Debug("Redis хранилище открыто", zap.String("addr", cfg.Redis.Addr))
		return s, nil
	default:
		return nil, fmt.Errorf("неизвестный драйвер хранилища %q", cfg.Driver)
	}
}
