package cart

import (
	"context"
	"sort"

	"github.com/angelmondragon/storefront/pkg/logger"
)

type loadRecorder interface {
	ObserveCartLoad(status string)
}

// Repository is the explicit load/save contract both views use to reach the
// persisted cart. Persistence is best effort: read problems become an empty
// cart and write problems are logged, never returned.
type Repository struct {
	storage Storage
	logg    *logger.Logger
	metrics loadRecorder
}

// NewRepository wraps storage. logg may be nil.
func NewRepository(storage Storage, logg *logger.Logger) *Repository {
	if logg == nil {
		logg = logger.Nop()
	}
	return &Repository{storage: storage, logg: logg}
}

// WithMetrics records load outcomes on m.
func (r *Repository) WithMetrics(m loadRecorder) *Repository {
	r.metrics = m
	return r
}

// Load reads the persisted cart.
func (r *Repository) Load(ctx context.Context) (Cart, LoadStatus) {
	c, status := r.load(ctx)
	if r.metrics != nil {
		r.metrics.ObserveCartLoad(status.String())
	}
	return c, status
}

func (r *Repository) load(ctx context.Context) (Cart, LoadStatus) {
	if r.storage == nil {
		return New(), LoadMissing
	}

	raw, ok, err := r.storage.GetItem(StorageKey)
	if err != nil {
		r.logg.Warn(r.logg.WithField(ctx, "error", err.Error()), "cart.load.storage_failed")
		return New(), LoadMalformed
	}
	if !ok {
		return New(), LoadMissing
	}

	c, status, skipped, err := Decode(raw)
	if err != nil {
		r.logg.Warn(r.logg.WithField(ctx, "error", err.Error()), "cart.load.malformed")
		return c, status
	}
	if len(skipped) > 0 {
		sort.Strings(skipped)
		r.logg.Warn(r.logg.WithField(ctx, "skipped_ids", skipped), "cart.load.invalid_lines_dropped")
	}
	return c, status
}

// Save writes c under StorageKey. Failures are logged and swallowed; the
// caller's in-memory cart stays authoritative for the current request.
func (r *Repository) Save(ctx context.Context, c Cart) {
	if r.storage == nil {
		return
	}
	raw, err := Encode(c)
	if err != nil {
		r.logg.Error(ctx, "cart.save.encode_failed", err)
		return
	}
	if err := r.storage.SetItem(StorageKey, raw); err != nil {
		ctx = r.logg.WithFields(ctx, map[string]any{"error": err.Error(), "lines": len(c)})
		r.logg.Warn(ctx, "cart.save.failed")
	}
}

// Clear removes the persisted cart entirely.
func (r *Repository) Clear(ctx context.Context) {
	if r.storage == nil {
		return
	}
	if err := r.storage.RemoveItem(StorageKey); err != nil {
		r.logg.Warn(r.logg.WithField(ctx, "error", err.Error()), "cart.clear.failed")
	}
}
