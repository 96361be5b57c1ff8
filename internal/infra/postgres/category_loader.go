package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"trivia-quiz/internal/domain"
)

// CategoryLoader loads the category catalog from Postgres.
type CategoryLoader struct {
	pool *pgxpool.Pool
}

func NewCategoryLoader(pool *pgxpool.Pool) *CategoryLoader {
	return &CategoryLoader{pool: pool}
}

func (l *CategoryLoader) LoadCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := l.pool.Query(ctx, `SELECT id, name FROM categories ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	if len(categories) == 0 {
		return nil, domain.ErrCategoriesUnavailable
	}
	return categories, nil
}
