package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"trivia-quiz/internal/domain"
)

// CategoryLoader fetches the category catalog from a backing store (API, Postgres).
type CategoryLoader interface {
	LoadCategories(ctx context.Context) ([]domain.Category, error)
}

const catalogKey = "categories"

// CategoryRepository caches the catalog with TTL to avoid repeated loads.
type CategoryRepository struct {
	loader CategoryLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group

	mu        sync.RWMutex
	rnd       *rand.Rand
	cached    []domain.Category
	expiresAt time.Time
}

func NewCategoryRepository(loader CategoryLoader, ttl time.Duration) *CategoryRepository {
	return &CategoryRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *CategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if categories, ok := r.fresh(r.clock()); ok {
		return categories, nil
	}

	result, err, _ := r.sf.Do(catalogKey, func() (interface{}, error) {
		now := r.clock()
		if categories, ok := r.fresh(now); ok {
			return categories, nil
		}

		categories, err := r.loader.LoadCategories(ctx)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.cached = categories
		r.expiresAt = now.Add(r.ttlWithJitterLocked())
		r.mu.Unlock()
		return categories, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Category), nil
}

func (r *CategoryRepository) fresh(now time.Time) ([]domain.Category, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.cached != nil && r.expiresAt.After(now) {
		return r.cached, true
	}
	return nil, false
}

func (r *CategoryRepository) ttlWithJitterLocked() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
