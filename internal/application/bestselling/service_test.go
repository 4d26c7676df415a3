package bestselling

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kapee-shop/api/internal/domain"
)

type mockEntryStore struct{ mock.Mock }

func (m *mockEntryStore) Put(ctx context.Context, e *domain.BestSellingEntry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockEntryStore) Get(ctx context.Context, entryID string) (*domain.BestSellingEntry, error) {
	args := m.Called(ctx, entryID)
	if e := args.Get(0); e != nil {
		return e.(*domain.BestSellingEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEntryStore) GetByProduct(ctx context.Context, productID string) (*domain.BestSellingEntry, error) {
	args := m.Called(ctx, productID)
	if e := args.Get(0); e != nil {
		return e.(*domain.BestSellingEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEntryStore) Update(ctx context.Context, entryID string, fields map[string]any) (*domain.BestSellingEntry, error) {
	args := m.Called(ctx, entryID, fields)
	if e := args.Get(0); e != nil {
		return e.(*domain.BestSellingEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEntryStore) IncrementSales(ctx context.Context, entryID string, delta int) (*domain.BestSellingEntry, error) {
	args := m.Called(ctx, entryID, delta)
	if e := args.Get(0); e != nil {
		return e.(*domain.BestSellingEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEntryStore) Delete(ctx context.Context, entryID string) error {
	return m.Called(ctx, entryID).Error(0)
}

func (m *mockEntryStore) Scan(ctx context.Context) ([]domain.BestSellingEntry, error) {
	args := m.Called(ctx)
	if e := args.Get(0); e != nil {
		return e.([]domain.BestSellingEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockProductStore struct{ mock.Mock }

func (m *mockProductStore) Get(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if p := args.Get(0); p != nil {
		return p.(*domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestService(t *testing.T) (Service, *mockEntryStore, *mockProductStore) {
	t.Helper()
	entries := new(mockEntryStore)
	products := new(mockProductStore)
	return NewService(ServiceDeps{EntryRepo: entries, ProductRepo: products}), entries, products
}

func catalogProduct() *domain.Product {
	return &domain.Product{
		ProductID:   "prod-1",
		Name:        "Wireless Mouse",
		Description: "A mouse without wires",
		Price:       29.99,
		Category:    "electronics",
		Image:       "https://cdn.example.com/mouse.jpg",
	}
}

func strPtr(s string) *string { return &s }

func TestPromote_FallsBackToCatalog(t *testing.T) {
	svc, entries, products := newTestService(t)
	p := catalogProduct()

	entries.On("GetByProduct", mock.Anything, p.ProductID).Return(nil, domain.ErrNotFound)
	products.On("Get", mock.Anything, p.ProductID).Return(p, nil)

	var stored *domain.BestSellingEntry
	entries.On("Put", mock.Anything, mock.AnythingOfType("*domain.BestSellingEntry")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*domain.BestSellingEntry) }).
		Return(nil)

	got, err := svc.Promote(context.Background(), &domain.PromoteProductRequest{
		ProductID: p.ProductID,
		Name:      strPtr("Mouse, But Cheaper"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Mouse, But Cheaper", got.Name)
	assert.Equal(t, p.Description, got.Description)
	assert.Equal(t, p.Price, got.Price)
	assert.Equal(t, p.Category, got.Category)
	assert.Equal(t, p.Image, got.Image)
	assert.Equal(t, 0, got.SalesCount)
	assert.True(t, got.Featured)
	assert.Equal(t, stored, got)
}

func TestPromote_DuplicateProduct(t *testing.T) {
	svc, entries, products := newTestService(t)

	existing := &domain.BestSellingEntry{EntryID: "entry-1", ProductID: "prod-1", SalesCount: 7}
	entries.On("GetByProduct", mock.Anything, "prod-1").Return(existing, nil)

	_, err := svc.Promote(context.Background(), &domain.PromoteProductRequest{ProductID: "prod-1"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// The rejection carries the entry that already curates the product.
	var conflict *domain.PromotionConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, existing, conflict.Existing)

	products.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	entries.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestPromote_UnknownProduct(t *testing.T) {
	svc, entries, products := newTestService(t)

	entries.On("GetByProduct", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)
	products.On("Get", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

	_, err := svc.Promote(context.Background(), &domain.PromoteProductRequest{ProductID: "ghost"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPromote_SubstitutesRelativeImage(t *testing.T) {
	svc, entries, products := newTestService(t)
	p := catalogProduct()

	entries.On("GetByProduct", mock.Anything, p.ProductID).Return(nil, domain.ErrNotFound)
	products.On("Get", mock.Anything, p.ProductID).Return(p, nil)
	entries.On("Put", mock.Anything, mock.AnythingOfType("*domain.BestSellingEntry")).Return(nil)

	got, err := svc.Promote(context.Background(), &domain.PromoteProductRequest{
		ProductID: p.ProductID,
		Image:     strPtr("./local/pic.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, p.Image, got.Image)
}

func TestPromote_SubstitutesLoopbackImage(t *testing.T) {
	svc, entries, products := newTestService(t)
	p := catalogProduct()

	entries.On("GetByProduct", mock.Anything, p.ProductID).Return(nil, domain.ErrNotFound)
	products.On("Get", mock.Anything, p.ProductID).Return(p, nil)
	entries.On("Put", mock.Anything, mock.AnythingOfType("*domain.BestSellingEntry")).Return(nil)

	got, err := svc.Promote(context.Background(), &domain.PromoteProductRequest{
		ProductID: p.ProductID,
		Image:     strPtr("http://localhost:3000/pic.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, p.Image, got.Image)
}

func TestPromote_PlaceholderWhenCatalogImageUnusable(t *testing.T) {
	svc, entries, products := newTestService(t)
	p := catalogProduct()
	p.Image = "/uploads/mouse.jpg"

	entries.On("GetByProduct", mock.Anything, p.ProductID).Return(nil, domain.ErrNotFound)
	products.On("Get", mock.Anything, p.ProductID).Return(p, nil)
	entries.On("Put", mock.Anything, mock.AnythingOfType("*domain.BestSellingEntry")).Return(nil)

	got, err := svc.Promote(context.Background(), &domain.PromoteProductRequest{ProductID: p.ProductID})
	require.NoError(t, err)
	assert.Equal(t, placeholderImage, got.Image)
}

func TestUpdate_RejectsUnusableImage(t *testing.T) {
	svc, entries, _ := newTestService(t)

	for _, img := range []string{"./local/pic.png", "http://127.0.0.1/pic.png", "relative/pic.png"} {
		_, err := svc.Update(context.Background(), "entry-1", &domain.UpdateBestSellingRequest{Image: strPtr(img)})
		assert.ErrorIs(t, err, domain.ErrBadRequest, img)
	}
	entries.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_PatchesOnlyProvidedFields(t *testing.T) {
	svc, entries, _ := newTestService(t)

	entries.On("Update", mock.Anything, "entry-1", mock.MatchedBy(func(fields map[string]any) bool {
		_, hasName := fields["name"]
		_, hasImage := fields["image"]
		_, hasUpdated := fields["updated_at"]
		return hasName && hasUpdated && !hasImage && len(fields) == 2
	})).Return(&domain.BestSellingEntry{EntryID: "entry-1", Name: "Renamed"}, nil)

	got, err := svc.Update(context.Background(), "entry-1", &domain.UpdateBestSellingRequest{Name: strPtr("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
}

func TestUpdate_EmptyPatch(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Update(context.Background(), "entry-1", &domain.UpdateBestSellingRequest{})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestAdjustSales_DelegatesAtomically(t *testing.T) {
	svc, entries, _ := newTestService(t)

	entries.On("IncrementSales", mock.Anything, "entry-1", 3).
		Return(&domain.BestSellingEntry{EntryID: "entry-1", SalesCount: 3}, nil)
	entries.On("IncrementSales", mock.Anything, "entry-1", -1).
		Return(&domain.BestSellingEntry{EntryID: "entry-1", SalesCount: 2}, nil)

	up, err := svc.AdjustSales(context.Background(), "entry-1", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, up.SalesCount)

	down, err := svc.AdjustSales(context.Background(), "entry-1", -1)
	require.NoError(t, err)
	assert.Equal(t, 2, down.SalesCount)
}

func TestAdjustSales_ZeroDelta(t *testing.T) {
	svc, entries, _ := newTestService(t)

	_, err := svc.AdjustSales(context.Background(), "entry-1", 0)
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	entries.AssertNotCalled(t, "IncrementSales", mock.Anything, mock.Anything, mock.Anything)
}

func TestList_SortsFiltersAndLimits(t *testing.T) {
	svc, entries, _ := newTestService(t)

	entries.On("Scan", mock.Anything).Return([]domain.BestSellingEntry{
		{EntryID: "a", Category: "electronics", SalesCount: 5, Featured: true},
		{EntryID: "b", Category: "clothing", SalesCount: 50, Featured: true},
		{EntryID: "c", Category: "electronics", SalesCount: 20, Featured: false},
		{EntryID: "d", Category: "electronics", SalesCount: 10, Featured: true},
	}, nil)

	all, err := svc.List(context.Background(), ListOptions{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, []string{"b", "c", "d", "a"},
		[]string{all[0].EntryID, all[1].EntryID, all[2].EntryID, all[3].EntryID})

	filtered, err := svc.List(context.Background(), ListOptions{Category: "electronics", FeaturedOnly: true, Limit: 1})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "d", filtered[0].EntryID)
}
