package migrations

import (
	"context"

	"github.com/uptrace/bun"

	"trivia-quiz/internal/infra/memory"
)

type categoryRow struct {
	bun.BaseModel `bun:"table:categories"`

	ID       int    `bun:"id,pk"`
	Name     string `bun:"name,notnull"`
	Position int    `bun:"position,notnull"`
}

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			rows := make([]categoryRow, 0, len(memory.DefaultCategories))
			for i, c := range memory.DefaultCategories {
				rows = append(rows, categoryRow{ID: c.ID, Name: c.Name, Position: i})
			}
			_, err := db.NewInsert().
				Model(&rows).
				On("CONFLICT (id) DO UPDATE").
				Set("name = EXCLUDED.name").
				Set("position = EXCLUDED.position").
				Exec(ctx)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.NewDelete().
				Model((*categoryRow)(nil)).
				Where("1 = 1").
				Exec(ctx)
			return err
		},
	)
}
