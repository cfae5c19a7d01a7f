package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	currency "github.com/malusev998/cbr-currency"
)

type (
	// PgxPool is the subset of *pgxpool.Pool the storage needs.
	PgxPool interface {
		Begin(ctx context.Context) (pgx.Tx, error)
		Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
		Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
		Close()
	}

	postgresStorage struct {
		pool        PgxPool
		tableName   string
		idGenerator IDGenerator
	}
)

func NewPostgresStorage(ctx context.Context, config PostgresConfig) (currency.Storage, error) {
	pool, err := pgxpool.New(ctx, config.ConnectionString)

	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	storage, err := NewPgxStorage(ctx, pool, config.IDGenerator, config.TableName, config.Migrate)

	if err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

func NewPgxStorage(ctx context.Context, pool PgxPool, generator IDGenerator, table string, migrate bool) (currency.Storage, error) {
	name, err := tableName(table)

	if err != nil {
		return nil, err
	}

	storage := postgresStorage{
		pool:        pool,
		tableName:   name,
		idGenerator: generator,
	}

	if migrate {
		if err := storage.Migrate(ctx); err != nil {
			return nil, err
		}
	}

	return storage, nil
}

func (p postgresStorage) Load(ctx context.Context) (currency.Snapshot, error) {
	rows, err := p.pool.Query(ctx, fmt.Sprintf("SELECT name, code, value, nominal, created_at FROM %s ORDER BY position", p.tableName))

	if err != nil {
		return currency.Snapshot{}, fmt.Errorf("failed to query %s: %w", p.tableName, err)
	}

	defer rows.Close()

	snapshot := currency.Snapshot{Currencies: make([]currency.Currency, 0)}

	for rows.Next() {
		var c currency.Currency
		var createdAt time.Time

		if err := rows.Scan(&c.Name, &c.Code, &c.Value, &c.Nominal, &createdAt); err != nil {
			return currency.Snapshot{}, fmt.Errorf("%w: %v", currency.ErrDecode, err)
		}

		snapshot.Currencies = append(snapshot.Currencies, c)
		snapshot.UpdatedAt = createdAt
	}

	if err := rows.Err(); err != nil {
		return currency.Snapshot{}, err
	}

	if len(snapshot.Currencies) == 0 {
		return currency.Snapshot{}, currency.ErrCacheMiss
	}

	return snapshot, nil
}

func (p postgresStorage) Store(ctx context.Context, currencies []currency.Currency) error {
	createdAt := time.Now().UTC()

	tx, err := p.pool.Begin(ctx)

	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s", p.tableName)); err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("failed to clear %s: %w", p.tableName, err)
	}

	query := fmt.Sprintf("INSERT INTO %s (id, position, name, code, value, nominal, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)", p.tableName)

	for i, c := range currencies {
		id, err := newID(p.idGenerator)

		if err != nil {
			_ = tx.Rollback(ctx)
			return err
		}

		if _, err := tx.Exec(ctx, query, id, i, c.Name, c.Code, c.Value, c.Nominal, createdAt); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("failed to save currency %s: %w", c.Code, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (p postgresStorage) Migrate(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id UUID PRIMARY KEY,
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	code TEXT NOT NULL,
	value TEXT NOT NULL,
	nominal TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
)`, p.tableName))

	return err
}

func (p postgresStorage) Drop(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", p.tableName))
	return err
}

func (p postgresStorage) Close() error {
	p.pool.Close()
	return nil
}

func (p postgresStorage) GetStorageProviderName() string {
	return string(Postgres)
}
