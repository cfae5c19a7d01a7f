package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	currency "github.com/malusev998/cbr-currency"
)

type mysqlStorage struct {
	db          *sql.DB
	tableName   string
	idGenerator IDGenerator
}

// MySQLConnectionString builds a DSN that scans DATETIME columns into time.Time.
func MySQLConnectionString(user, password, addr, db string) string {
	mysqlDriverConfig := mysql.NewConfig()
	mysqlDriverConfig.User = user
	mysqlDriverConfig.Passwd = password
	mysqlDriverConfig.Net = "tcp"
	mysqlDriverConfig.Addr = addr
	mysqlDriverConfig.DBName = db
	mysqlDriverConfig.ParseTime = true

	return mysqlDriverConfig.FormatDSN()
}

func NewMySQLStorage(ctx context.Context, config MySQLConfig) (currency.Storage, error) {
	db, err := sql.Open("mysql", config.ConnectionString)

	if err != nil {
		return nil, err
	}

	storage, err := NewSQLStorage(ctx, db, config.IDGenerator, config.TableName, config.Migrate)

	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return storage, nil
}

func NewSQLStorage(ctx context.Context, db *sql.DB, generator IDGenerator, table string, migrate bool) (currency.Storage, error) {
	name, err := tableName(table)

	if err != nil {
		return nil, err
	}

	storage := mysqlStorage{
		db:          db,
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

func (m mysqlStorage) Load(ctx context.Context) (currency.Snapshot, error) {
	rows, err := m.db.QueryContext(ctx, fmt.Sprintf("SELECT name, code, value, nominal, created_at FROM %s ORDER BY position;", m.tableName))

	if err != nil {
		return currency.Snapshot{}, err
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

func (m mysqlStorage) Store(ctx context.Context, currencies []currency.Currency) error {
	createdAt := time.Now().UTC()

	tx, err := m.db.BeginTx(ctx, nil)

	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s;", m.tableName)); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s(id, position, name, code, value, nominal, created_at) VALUES (?,?,?,?,?,?,?);", m.tableName))

	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for i, c := range currencies {
		id, err := newID(m.idGenerator)

		if err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}

		if _, err := stmt.ExecContext(ctx, id.String(), i, c.Name, c.Code, c.Value, c.Nominal, createdAt); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (m mysqlStorage) Migrate(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id CHAR(36) NOT NULL PRIMARY KEY,
	position INT NOT NULL,
	name VARCHAR(255) NOT NULL,
	code VARCHAR(16) NOT NULL,
	value VARCHAR(64) NOT NULL,
	nominal VARCHAR(16) NOT NULL,
	created_at DATETIME(6) NOT NULL
) CHARACTER SET utf8mb4;`, m.tableName))

	return err
}

func (m mysqlStorage) Drop(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s;", m.tableName))
	return err
}

func (m mysqlStorage) Close() error {
	return m.db.Close()
}

func (m mysqlStorage) GetStorageProviderName() string {
	return string(MySQL)
}
