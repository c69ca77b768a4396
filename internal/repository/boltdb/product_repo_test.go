package boltdb

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/radhe-vastra/storefront-backend/internal/domain"
	"github.com/radhe-vastra/storefront-backend/internal/repository/boltdb/converter"
	"github.com/radhe-vastra/storefront-backend/pkg/e"
	bolt "go.etcd.io/bbolt"
)

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)        {}
func (nopLogger) Infof(string, ...any)         {}
func (nopLogger) Warnf(string, ...any)         {}
func (nopLogger) Errorf(error, string, ...any) {}

func openTestRepo(t *testing.T) *ProductRepo {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "products.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewProductRepo(db, converter.NewProductConverterImpl(), nopLogger{})
}

func teeInput() *domain.ProductInput {
	return &domain.ProductInput{
		Title:       "Tee",
		Price:       499,
		Description: "Classic tee",
		Sizes:       []string{"S", "M"},
		Image:       "data:image/png;base64,xyz",
	}
}

func TestListEmptyOnFreshStore(t *testing.T) {
	repo := openTestRepo(t)

	products, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("want empty, got %d", len(products))
	}
}

func TestCreateThenList(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	saved, err := repo.Create(ctx, teeInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if saved.ID == "" {
		t.Fatalf("id must be assigned")
	}
	if saved.CreatedAt.IsZero() {
		t.Fatalf("timestamp must be assigned")
	}

	products, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("want 1 product, got %d", len(products))
	}

	got := products[0]
	if got.Title != "Tee" || got.Price != 499 {
		t.Fatalf("unexpected fields: %+v", got)
	}
	if !reflect.DeepEqual(got.Sizes, []string{"S", "M"}) {
		t.Fatalf("unexpected sizes: %v", got.Sizes)
	}
}

func TestCreateAssignsUniqueIDs(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	seen := make(map[string]struct{})
	for i := 0; i < 20; i++ {
		saved, err := repo.Create(ctx, teeInput())
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if _, ok := seen[saved.ID]; ok {
			t.Fatalf("duplicate id %s", saved.ID)
		}
		seen[saved.ID] = struct{}{}
	}
}

func TestUpdatePreservesIdentityAndTimestamp(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, teeInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := repo.Update(ctx, created.ID, &domain.ProductInput{
		Title:       "Tee v2",
		Price:       599,
		Description: "Updated tee",
		Sizes:       []string{"M"},
		Image:       "data:image/png;base64,abc",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("id changed: %s -> %s", created.ID, updated.ID)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("creation timestamp changed: %v -> %v", created.CreatedAt, updated.CreatedAt)
	}

	products, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("want 1 product, got %d", len(products))
	}
	got := products[0]
	if got.Title != "Tee v2" || got.Price != 599 {
		t.Fatalf("update not applied: %+v", got)
	}
	if !reflect.DeepEqual(got.Sizes, []string{"M"}) {
		t.Fatalf("unexpected sizes: %v", got.Sizes)
	}
}

func TestUpdateMissingIDReturnsNotFound(t *testing.T) {
	repo := openTestRepo(t)

	_, err := repo.Update(context.Background(), "missing", teeInput())
	if !errors.Is(err, e.ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound, got %v", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, teeInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("second delete must not error: %v", err)
	}

	products, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("want empty, got %d", len(products))
	}
}

func TestClearAllEmptiesStore(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := repo.Create(ctx, teeInput()); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	if err := repo.ClearAll(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}

	products, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("want empty after clear, got %d", len(products))
	}
}

func TestCorruptedDataTreatedAsEmpty(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "products.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	err = db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		if err != nil {
			return err
		}
		return bucket.Put([]byte(productKey), []byte("{not valid json"))
	})
	if err != nil {
		t.Fatalf("seed corrupted data: %v", err)
	}

	repo := NewProductRepo(db, converter.NewProductConverterImpl(), nopLogger{})
	products, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list must not fail on corrupted data: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("corrupted data must read as empty, got %d", len(products))
	}

	// После порчи хранилище остаётся пригодным для записи
	if _, err := repo.Create(context.Background(), teeInput()); err != nil {
		t.Fatalf("create after corruption: %v", err)
	}
}

func TestListReturnsNewestFirst(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		in := teeInput()
		in.Title = title
		if _, err := repo.Create(ctx, in); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	products, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i, title := range []string{"third", "second", "first"} {
		if products[i].Title != title {
			t.Fatalf("order broken at %d: want %s, got %s", i, title, products[i].Title)
		}
	}
}

func TestCheckAvailabilityAlwaysAvailable(t *testing.T) {
	repo := openTestRepo(t)

	status := repo.CheckAvailability(context.Background())
	if !status.Available {
		t.Fatalf("local store must report available: %+v", status)
	}
}
