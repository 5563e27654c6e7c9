package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var DB *pgxpool.Pool

// ConnectDB opens the shared pool. maxConns comes from DB_MAX_CONNS;
// MinConns is kept at a quarter of it so idle deployments hold a couple
// of warm connections without pinning the whole pool.
func ConnectDB(dbUrl string, maxConns int) error {
	config, err := pgxpool.ParseConfig(dbUrl)
	if err != nil {
		return fmt.Errorf("parse database config: %w", err)
	}

	if maxConns < 1 {
		maxConns = 1
	}
	config.MaxConns = int32(maxConns)
	config.MinConns = int32(max(1, maxConns/4))
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute

	DB, err = pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return fmt.Errorf("open database pool: %w", err)
	}

	if err := DB.Ping(context.Background()); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	log.Printf("database pool ready (max_conns=%d)", maxConns)
	return nil
}

func CloseDB() {
	if DB != nil {
		DB.Close()
	}
}
