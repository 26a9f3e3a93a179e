package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"storefront/config"
)

// Connect - открывает базу для локального хранилища (sqlite или postgres)
func Connect(cfg config.StorageConfig) (*sqlx.DB, error) {
	var driver, dsn string
	switch cfg.Driver {
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o700); err != nil {
			return nil, fmt.Errorf("не удалось создать каталог хранилища: %w", err)
		}
		driver, dsn = "sqlite", cfg.Path
	case "postgres":
		if cfg.DSN == "" {
			return nil, fmt.Errorf("STORAGE_DSN не задан для драйвера postgres")
		}
		driver, dsn = "postgres", cfg.DSN
	default:
		return nil, fmt.Errorf("драйвер %q не поддерживает SQL", cfg.Driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к базе данных: %w", err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("не удалось проверить подключение: %w", err)
	}

	if driver == "sqlite" {
		// одна запись за раз, иначе SQLITE_BUSY при параллельных сохранениях
		db.SetMaxOpenConns(1)
	}
	return db, nil
}
