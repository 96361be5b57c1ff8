package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"trivia-quiz/internal/domain"
	"trivia-quiz/internal/infra/memory"
)

func TestCategoryRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)
	loader := &countingLoader{CategoryLoader: memory.NewStaticCategoryLoader(sampleCategories())}
	repo := NewCategoryRepository(client, loader, time.Minute)

	categories, err := repo.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(categories) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(categories))
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if got := mr.HGet(CategoriesKey, "18"); got != "Science: Computers" {
		t.Fatalf("expected cached name, got %q", got)
	}
	if ttl := mr.TTL(CategoriesKey); ttl < time.Minute || ttl > time.Minute+6*time.Second {
		t.Fatalf("expected ttl with up to 10%% jitter, got %v", ttl)
	}

	// Second call should hit cache, loader not incremented.
	cached, err := repo.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("list categories 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	if cached[0].ID != 9 || cached[2].ID != 21 {
		t.Fatalf("expected cached catalog ordered by id, got %+v", cached)
	}
}

func TestCategoryRepositoryReloadsAfterExpiry(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	loader := &countingLoader{CategoryLoader: memory.NewStaticCategoryLoader(sampleCategories())}
	repo := NewCategoryRepository(newClient(mr), loader, time.Minute)

	_, _ = repo.ListCategories(context.Background())
	mr.FastForward(2 * time.Minute)
	_, _ = repo.ListCategories(context.Background())

	if loader.calls != 2 {
		t.Fatalf("expected reload after expiry, loader calls=%d", loader.calls)
	}
}

type countingLoader struct {
	memory.CategoryLoader
	calls int
}

func (l *countingLoader) LoadCategories(ctx context.Context) ([]domain.Category, error) {
	l.calls++
	return l.CategoryLoader.LoadCategories(ctx)
}

func sampleCategories() []domain.Category {
	return []domain.Category{
		{ID: 21, Name: "Sports"},
		{ID: 9, Name: "General Knowledge"},
		{ID: 18, Name: "Science: Computers"},
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
