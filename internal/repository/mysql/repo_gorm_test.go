package mysql

import (
	"context"
	"testing"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testPaidAt = time.Date(2024, 11, 14, 22, 13, 20, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(Models()...))
	return db
}

func seedOrder(t *testing.T, repo repository.OrderRepository, method domain.PaymentMethod, ref string, status domain.OrderStatus) *domain.Order {
	t.Helper()
	o := &domain.Order{
		UserID:        "user-1",
		Items:         []domain.LineItem{{ProductID: "p1", Name: "Tee", Quantity: 1, UnitPrice: 49900}},
		Amount:        50900,
		Currency:      "INR",
		PaymentMethod: method,
		Status:        status,
		ProviderRef:   ref,
		CreatedAt:     testPaidAt.Add(-time.Hour),
		UpdatedAt:     testPaidAt.Add(-time.Hour),
	}
	require.NoError(t, repo.Save(context.Background(), o))
	require.NotEmpty(t, o.ID)
	return o
}

func TestOrderRepo_MarkPaid(t *testing.T) {
	tests := []struct {
		name     string
		status   domain.OrderStatus
		expected bool
		want     domain.OrderStatus
	}{
		{name: "pending becomes paid", status: domain.StatusPending, expected: true, want: domain.StatusPaid},
		{name: "initiated becomes paid", status: domain.StatusInitiated, expected: true, want: domain.StatusPaid},
		{name: "paid is left alone", status: domain.StatusPaid, expected: false, want: domain.StatusPaid},
		{name: "failed is left alone", status: domain.StatusFailed, expected: false, want: domain.StatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewOrderRepository(setupTestDB(t))
			ctx := context.Background()
			seeded := seedOrder(t, repo, domain.MethodRazorpay, "order_1", tt.status)

			ok, err := repo.MarkPaid(ctx, domain.MethodRazorpay, "order_1", "pay_1", testPaidAt)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, ok)

			got, err := repo.FindByID(ctx, seeded.ID)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Status)
			if tt.expected {
				assert.Equal(t, "pay_1", got.PaymentRef)
				require.NotNil(t, got.PaidAt)
				assert.True(t, testPaidAt.Equal(*got.PaidAt))
			} else {
				assert.Empty(t, got.PaymentRef)
				assert.Nil(t, got.PaidAt)
			}
		})
	}
}

func TestOrderRepo_MarkPaidTwice(t *testing.T) {
	repo := NewOrderRepository(setupTestDB(t))
	ctx := context.Background()
	seeded := seedOrder(t, repo, domain.MethodRazorpay, "order_1", domain.StatusInitiated)

	first, err := repo.MarkPaid(ctx, domain.MethodRazorpay, "order_1", "pay_1", testPaidAt)
	require.NoError(t, err)
	second, err := repo.MarkPaid(ctx, domain.MethodRazorpay, "order_1", "pay_2", testPaidAt.Add(time.Minute))
	require.NoError(t, err)

	assert.True(t, first)
	assert.False(t, second)
	got, err := repo.FindByID(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "pay_1", got.PaymentRef)
	assert.True(t, testPaidAt.Equal(*got.PaidAt))
}

func TestOrderRepo_MarkPaidOtherProvider(t *testing.T) {
	repo := NewOrderRepository(setupTestDB(t))
	seedOrder(t, repo, domain.MethodStripe, "ref_1", domain.StatusInitiated)

	ok, err := repo.MarkPaid(context.Background(), domain.MethodRazorpay, "ref_1", "pay_1", testPaidAt)

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOrderRepo_UpdateStatus(t *testing.T) {
	tests := []struct {
		name     string
		seeded   domain.OrderStatus
		to       domain.OrderStatus
		from     []domain.OrderStatus
		expected bool
		want     domain.OrderStatus
	}{
		{
			name:     "source matches",
			seeded:   domain.StatusPending,
			to:       domain.StatusFailed,
			from:     []domain.OrderStatus{domain.StatusPending, domain.StatusInitiated},
			expected: true,
			want:     domain.StatusFailed,
		},
		{
			name:     "source does not match",
			seeded:   domain.StatusPaid,
			to:       domain.StatusFailed,
			from:     []domain.OrderStatus{domain.StatusPending, domain.StatusInitiated},
			expected: false,
			want:     domain.StatusPaid,
		},
		{
			name:     "empty source set matches nothing",
			seeded:   domain.StatusPending,
			to:       domain.StatusPaid,
			from:     nil,
			expected: false,
			want:     domain.StatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewOrderRepository(setupTestDB(t))
			ctx := context.Background()
			seeded := seedOrder(t, repo, domain.MethodCOD, "", tt.seeded)

			ok, err := repo.UpdateStatus(ctx, seeded.ID, tt.to, tt.from)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, ok)
			got, err := repo.FindByID(ctx, seeded.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Status)
		})
	}

	t.Run("unknown order", func(t *testing.T) {
		repo := NewOrderRepository(setupTestDB(t))

		ok, err := repo.UpdateStatus(context.Background(), "missing", domain.StatusPaid, []domain.OrderStatus{domain.StatusPending})

		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestOrderRepo_SaveUniqueProviderRef(t *testing.T) {
	repo := NewOrderRepository(setupTestDB(t))
	ctx := context.Background()
	seedOrder(t, repo, domain.MethodStripe, "cs_1", domain.StatusInitiated)

	err := repo.Save(ctx, &domain.Order{UserID: "user-2", PaymentMethod: domain.MethodStripe, Status: domain.StatusInitiated, ProviderRef: "cs_1"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	// Same ref under another provider is a different order.
	seedOrder(t, repo, domain.MethodRazorpay, "cs_1", domain.StatusInitiated)

	// Cash orders carry no ref and never collide.
	seedOrder(t, repo, domain.MethodCOD, "", domain.StatusPending)
	seedOrder(t, repo, domain.MethodCOD, "", domain.StatusPending)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	found, err := repo.FindByProviderRef(ctx, domain.MethodStripe, "cs_1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "user-1", found.UserID)
}

func TestMiniStoreRepo(t *testing.T) {
	repo := NewMiniStoreRepository(setupTestDB(t))
	ctx := context.Background()

	older := &domain.MiniStore{Slug: "older", DisplayName: "Older", IsActive: true, ProductIDs: []string{"p1"}, CreatedAt: testPaidAt.Add(-time.Hour)}
	newer := &domain.MiniStore{Slug: "newer", DisplayName: "Newer", IsActive: true, CreatedAt: testPaidAt}
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	err := repo.Create(ctx, &domain.MiniStore{Slug: "older", DisplayName: "Again", CreatedAt: testPaidAt})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	exists, err := repo.ExistsSlug(ctx, "older")
	require.NoError(t, err)
	assert.True(t, exists)

	stores, err := repo.ListActive(ctx, 1)
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, "newer", stores[0].Slug)

	toggled, err := repo.Toggle(ctx, newer.ID)
	require.NoError(t, err)
	require.NotNil(t, toggled)
	assert.False(t, toggled.IsActive)

	hidden, err := repo.FindActiveBySlug(ctx, "newer")
	require.NoError(t, err)
	assert.Nil(t, hidden)

	missing, err := repo.Toggle(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, missing)

	deleted, err := repo.Delete(ctx, older.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = repo.Delete(ctx, older.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
