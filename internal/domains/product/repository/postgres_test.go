package repository

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopping-backend/internal/domains/product/model"
)

// Integration suite against a real PostgreSQL, gated like the officer
// postgres backend: set TEST_DATABASE_URL (schema from migrations applied)
// to run it.

func newTestRepo(t *testing.T) RepositoryInterface {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, "TRUNCATE products RESTART IDENTITY")
	require.NoError(t, err)

	return NewRepository(pool)
}

func seedProduct(t *testing.T, repo RepositoryInterface, sku, price string, quantity int) *model.Product {
	t.Helper()
	p := &model.Product{
		Name:     "Widget " + sku,
		Price:    decimal.RequireFromString(price),
		Quantity: quantity,
		SKU:      sku,
	}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestCreateAssignsIDAndTimestamps(t *testing.T) {
	repo := newTestRepo(t)

	p := seedProduct(t, repo, "ABC-123456", "19.99", 5)

	assert.NotZero(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())
	assert.False(t, p.UpdatedAt.IsZero())

	got, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "ABC-123456", got.SKU)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("19.99")))
}

func TestCreateDuplicateSKUMapped(t *testing.T) {
	repo := newTestRepo(t)

	seedProduct(t, repo, "ABC-123456", "19.99", 5)

	dup := &model.Product{
		Name:     "Other Widget",
		Price:    decimal.RequireFromString("9.99"),
		Quantity: 1,
		SKU:      "ABC-123456",
	}
	err := repo.Create(context.Background(), dup)
	assert.True(t, model.IsDuplicateSKUError(err))
}

func TestGetByIDMissing(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetByID(context.Background(), 12345)
	assert.True(t, model.IsNotFoundError(err))
}

func TestUpdateMissingRow(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.Update(context.Background(), &model.Product{
		ID:       12345,
		Name:     "Ghost",
		Price:    decimal.RequireFromString("1.00"),
		Quantity: 1,
		SKU:      "GHO-000001",
	})
	assert.True(t, model.IsNotFoundError(err))
}

func TestListPaginationAndSort(t *testing.T) {
	repo := newTestRepo(t)

	seedProduct(t, repo, "AAA-000001", "30.00", 1)
	seedProduct(t, repo, "AAA-000002", "10.00", 2)
	seedProduct(t, repo, "AAA-000003", "20.00", 3)

	page, total, err := repo.List(context.Background(), model.PageRequest{
		Page: 0, Size: 2, SortCol: "price", SortDesc: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 2)
	assert.Equal(t, "AAA-000001", page[0].SKU) // 30.00 first
	assert.Equal(t, "AAA-000003", page[1].SKU)

	page, _, err = repo.List(context.Background(), model.PageRequest{
		Page: 1, Size: 2, SortCol: "price", SortDesc: true,
	})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "AAA-000002", page[0].SKU)
}

func TestSearchByNameCaseInsensitive(t *testing.T) {
	repo := newTestRepo(t)

	seedProduct(t, repo, "AAA-000001", "10.00", 1)

	found, err := repo.SearchByName(context.Background(), "widget aaa")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	found, err = repo.SearchByName(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestPriceRangeAndExpensive(t *testing.T) {
	repo := newTestRepo(t)

	seedProduct(t, repo, "AAA-000001", "10.00", 1)
	seedProduct(t, repo, "AAA-000002", "50.00", 1)
	seedProduct(t, repo, "AAA-000003", "150.00", 1)

	inRange, err := repo.FindByPriceRange(context.Background(),
		decimal.RequireFromString("10.00"), decimal.RequireFromString("50.00"))
	require.NoError(t, err)
	assert.Len(t, inRange, 2)

	expensive, err := repo.FindExpensive(context.Background(), decimal.RequireFromString("50.00"))
	require.NoError(t, err)
	assert.Len(t, expensive, 2) // bound is inclusive
}

func TestFindLowStock(t *testing.T) {
	repo := newTestRepo(t)

	seedProduct(t, repo, "AAA-000001", "10.00", 2)
	seedProduct(t, repo, "AAA-000002", "10.00", 20)

	low, err := repo.FindLowStock(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "AAA-000001", low[0].SKU)
}

func TestStockMutations(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	p := seedProduct(t, repo, "AAA-000001", "10.00", 5)

	set, err := repo.SetStock(ctx, p.ID, 50)
	require.NoError(t, err)
	assert.Equal(t, 50, set.Quantity)

	added, err := repo.AddStock(ctx, p.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 53, added.Quantity)

	_, err = repo.SetStock(ctx, 12345, 1)
	assert.True(t, model.IsNotFoundError(err))
}

func TestReserveStock(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	p := seedProduct(t, repo, "AAA-000001", "10.00", 5)

	reserved, err := repo.ReserveStock(ctx, p.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, reserved.Quantity)

	_, err = repo.ReserveStock(ctx, p.ID, 10)
	var insufficient *model.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 10, insufficient.Requested)
	assert.Equal(t, 2, insufficient.Available)

	// The failed reservation rolled back; quantity is unchanged.
	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity)
}

func TestReserveStockSerializesConcurrentReservations(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	p := seedProduct(t, repo, "AAA-000001", "10.00", 5)

	const workers = 10
	var successes, shortfalls int32
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.ReserveStock(ctx, p.ID, 1)
			switch {
			case err == nil:
				atomic.AddInt32(&successes, 1)
			default:
				var insufficient *model.InsufficientStockError
				if assert.ErrorAs(t, err, &insufficient) {
					atomic.AddInt32(&shortfalls, 1)
				}
			}
		}()
	}
	wg.Wait()

	// FOR UPDATE serializes the reservations: exactly the available
	// quantity succeeds, never more.
	assert.Equal(t, int32(5), atomic.LoadInt32(&successes))
	assert.Equal(t, int32(5), atomic.LoadInt32(&shortfalls))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity)
}
