package cart

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront/pkg/logger"
)

type failingStorage struct {
	*MemoryStorage
	getErr error
	setErr error
	delErr error
}

func (f *failingStorage) GetItem(key string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	return f.MemoryStorage.GetItem(key)
}

func (f *failingStorage) SetItem(key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.MemoryStorage.SetItem(key, value)
}

func (f *failingStorage) RemoveItem(key string) error {
	if f.delErr != nil {
		return f.delErr
	}
	return f.MemoryStorage.RemoveItem(key)
}

type loadCounter map[string]int

func (l loadCounter) ObserveCartLoad(status string) { l[status]++ }

func TestRepositoryLoadStates(t *testing.T) {
	tests := []struct {
		name       string
		stored     *string
		want       Cart
		wantStatus LoadStatus
	}{
		{name: "missing", stored: nil, want: New(), wantStatus: LoadMissing},
		{name: "blank", stored: strPtr(""), want: New(), wantStatus: LoadMissing},
		{name: "empty object", stored: strPtr("{}"), want: New(), wantStatus: LoadEmpty},
		{name: "not json", stored: strPtr("not json"), want: New(), wantStatus: LoadMalformed},
		{name: "array", stored: strPtr("[1,2]"), want: New(), wantStatus: LoadMalformed},
		{name: "null", stored: strPtr("null"), want: New(), wantStatus: LoadMalformed},
		{name: "number", stored: strPtr("42"), want: New(), wantStatus: LoadMalformed},
		{name: "valid", stored: strPtr(`{"A":2,"B":1}`), want: Cart{"A": 2, "B": 1}, wantStatus: LoadOK},
		{name: "drops invalid lines", stored: strPtr(`{"A":2,"B":0,"C":-1,"D":1.5,"E":"3","F":null,"G":true}`), want: Cart{"A": 2}, wantStatus: LoadOK},
		{name: "large and float-form integers", stored: strPtr(`{"A":3000000000,"B":2.0,"C":1e3}`), want: Cart{"A": 3000000000, "B": 2, "C": 1000}, wantStatus: LoadOK},
		{name: "beyond int64", stored: strPtr(`{"A":99999999999999999999,"B":1}`), want: Cart{"B": 1}, wantStatus: LoadOK},
		{name: "only invalid lines", stored: strPtr(`{"B":0}`), want: New(), wantStatus: LoadEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := NewMemoryStorage()
			if tt.stored != nil {
				require.NoError(t, storage.SetItem(StorageKey, *tt.stored))
			}
			c, status := NewRepository(storage, nil).Load(context.Background())
			assert.Equal(t, tt.want, c)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantStatus != LoadOK, status.ShouldRedirect())
		})
	}
}

func TestRepositorySaveThenLoad(t *testing.T) {
	storage := NewMemoryStorage()
	repo := NewRepository(storage, nil)
	ctx := context.Background()

	repo.Save(ctx, Cart{"A": 2, "B": 1})
	raw, ok, err := storage.GetItem(StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"A":2,"B":1}`, raw)

	c, status := repo.Load(ctx)
	assert.Equal(t, LoadOK, status)
	assert.Equal(t, Cart{"A": 2, "B": 1}, c)
}

func TestRepositorySaveThenLoadKeepsLargeQuantities(t *testing.T) {
	repo := NewRepository(NewMemoryStorage(), nil)
	ctx := context.Background()

	c, res := SetQuantity(New(), "A", 3000000000)
	require.Equal(t, Updated(3000000000), res)
	c, _ = AddItem(c, "A")
	repo.Save(ctx, c)

	loaded, status := repo.Load(ctx)
	assert.Equal(t, LoadOK, status)
	assert.Equal(t, Cart{"A": 3000000001}, loaded)
}

func TestRepositoryClearedCartLoadsEmpty(t *testing.T) {
	storage := NewMemoryStorage()
	repo := NewRepository(storage, nil)
	ctx := context.Background()

	repo.Save(ctx, Clear())
	raw, _, _ := storage.GetItem(StorageKey)
	assert.Equal(t, "{}", raw)

	c, status := repo.Load(ctx)
	assert.True(t, c.IsEmpty())
	assert.True(t, status.ShouldRedirect())

	repo.Save(ctx, nil)
	raw, _, _ = storage.GetItem(StorageKey)
	assert.Equal(t, "{}", raw, "nil cart must persist as an empty object")

	repo.Clear(ctx)
	_, ok, _ := storage.GetItem(StorageKey)
	assert.False(t, ok)
	_, status = repo.Load(ctx)
	assert.Equal(t, LoadMissing, status)
}

func TestRepositorySwallowsStorageFailures(t *testing.T) {
	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "test", Output: buf})
	storage := &failingStorage{
		MemoryStorage: NewMemoryStorage(),
		setErr:        errors.New("quota exceeded"),
		delErr:        errors.New("private mode"),
	}
	repo := NewRepository(storage, logg)
	ctx := context.Background()

	assert.NotPanics(t, func() {
		repo.Save(ctx, Cart{"A": 1})
		repo.Clear(ctx)
	})
	assert.Contains(t, buf.String(), "cart.save.failed")
	assert.Contains(t, buf.String(), "quota exceeded")
	assert.Contains(t, buf.String(), "cart.clear.failed")
}

func TestRepositoryReadFailureRedirects(t *testing.T) {
	storage := &failingStorage{MemoryStorage: NewMemoryStorage(), getErr: errors.New("denied")}
	c, status := NewRepository(storage, nil).Load(context.Background())
	assert.True(t, c.IsEmpty())
	assert.True(t, status.ShouldRedirect())
}

func TestRepositoryLogsMalformedAndRecordsMetrics(t *testing.T) {
	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "test", Output: buf})
	storage := NewMemoryStorage()
	require.NoError(t, storage.SetItem(StorageKey, "not json"))

	counts := loadCounter{}
	repo := NewRepository(storage, logg).WithMetrics(counts)
	_, status := repo.Load(context.Background())

	assert.Equal(t, LoadMalformed, status)
	assert.Contains(t, buf.String(), "cart.load.malformed")
	assert.Equal(t, 1, counts["malformed"])
}

func TestNilStorageIsInert(t *testing.T) {
	repo := NewRepository(nil, nil)
	ctx := context.Background()
	repo.Save(ctx, Cart{"A": 1})
	repo.Clear(ctx)
	_, status := repo.Load(ctx)
	assert.Equal(t, LoadMissing, status)
}

func strPtr(s string) *string { return &s }
