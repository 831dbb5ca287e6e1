package storage

import (
	"context"
	"database/sql"
	"fmt"

	"menu-svc/internal/domain"
)

// PostgresRepository persists items in a menu_items table. The serial
// position column reproduces insertion order so listing and sort tie-breaks
// behave exactly like the in-memory store.
type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS menu_items (
			position BIGSERIAL PRIMARY KEY,
			id TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			price DOUBLE PRECISION NOT NULL,
			is_available BOOLEAN NOT NULL DEFAULT TRUE,
			is_deleted BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) Insert(ctx context.Context, item *domain.Item) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO menu_items (id, name, category, price, is_available, is_deleted, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		item.ID, item.Name, item.Category, item.Price, item.IsAvailable, item.IsDeleted, item.CreatedAt, item.UpdatedAt)
	return err
}

func (r *PostgresRepository) Update(ctx context.Context, item *domain.Item) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE menu_items
		 SET name=$2, category=$3, price=$4, is_available=$5, is_deleted=$6, updated_at=$7
		 WHERE id=$1`,
		item.ID, item.Name, item.Category, item.Price, item.IsAvailable, item.IsDeleted, item.UpdatedAt)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*domain.Item, error) {
	var item domain.Item
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, category, price, is_available, is_deleted, created_at, updated_at
		 FROM menu_items WHERE id = $1`, id).
		Scan(&item.ID, &item.Name, &item.Category, &item.Price, &item.IsAvailable, &item.IsDeleted, &item.CreatedAt, &item.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) FindByName(ctx context.Context, name string) (*domain.Item, error) {
	var item domain.Item
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, category, price, is_available, is_deleted, created_at, updated_at
		 FROM menu_items
		 WHERE NOT is_deleted AND LOWER(BTRIM(name)) = LOWER(BTRIM($1))
		 LIMIT 1`, name).
		Scan(&item.ID, &item.Name, &item.Category, &item.Price, &item.IsAvailable, &item.IsDeleted, &item.CreatedAt, &item.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]domain.Item, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, category, price, is_available, is_deleted, created_at, updated_at
		 FROM menu_items
		 ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.Item{}
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Category, &item.Price, &item.IsAvailable, &item.IsDeleted, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
