package cli

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/config"
	"trivia-quiz/internal/infra/memory"
	"trivia-quiz/internal/infra/opentdb"
	pgloader "trivia-quiz/internal/infra/postgres"
	rediscache "trivia-quiz/internal/infra/redis"
)

// deps holds the collaborators shared by the play and serve commands.
type deps struct {
	categories app.CategoryRepository
	questions  app.QuestionSource
	opts       app.Options
	closers    []func()
}

func (d *deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}

func buildDeps(ctx context.Context, cfg config.Config, log *zap.Logger) (*deps, error) {
	d := &deps{}
	client := opentdb.NewClient(cfg.OpenTDB.BaseURL, nil)
	d.questions = client

	var loader memory.CategoryLoader
	switch cfg.Categories.Source {
	case config.SourceRemote:
		loader = client
	case config.SourcePostgres:
		if err := runMigrations(ctx, cfg, log); err != nil {
			return nil, err
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, err
		}
		d.closers = append(d.closers, pool.Close)
		loader = pgloader.NewCategoryLoader(pool)
	default:
		loader = memory.NewStaticCategoryLoader(memory.DefaultCategories)
	}

	ttl := config.TTLDuration(cfg.Categories.TTL, time.Hour)
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		d.closers = append(d.closers, func() { _ = redisClient.Close() })
		d.categories = rediscache.NewCategoryRepository(redisClient, loader, ttl)
	} else {
		d.categories = memory.NewCategoryRepository(loader, ttl)
	}

	d.opts = app.Options{
		Amount:        cfg.OpenTDB.Amount,
		RevealDelay:   config.TTLDuration(cfg.Quiz.RevealDelay, app.DefaultRevealDelay),
		AnswerTimeout: config.TTLDuration(cfg.Quiz.AnswerTimeout, 0),
	}

	log.Info("dependencies ready",
		zap.String("categories_source", cfg.Categories.Source),
		zap.Bool("redis_cache", cfg.Redis.Addr != ""),
		zap.String("opentdb", cfg.OpenTDB.BaseURL),
		zap.Duration("reveal_delay", d.opts.RevealDelay),
	)
	return d, nil
}
