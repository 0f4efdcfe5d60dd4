package memory

import (
	"context"
	"testing"
	"time"

	"github.com/driversense-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVehicleRepo_GetAndList(t *testing.T) {
	r := NewVehicleRepo()
	ctx := context.Background()
	require.NoError(t, r.Put(ctx, domain.Vehicle{ID: "b", Brand: "DAF"}))
	require.NoError(t, r.Put(ctx, domain.Vehicle{ID: "a", Brand: "Volvo"}))
	require.NoError(t, r.Put(ctx, domain.Vehicle{ID: "b", Brand: "DAF", LastKm: 10}))

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].ID)
	assert.Equal(t, 10, list[0].LastKm)

	_, err = r.Get(ctx, "zzz")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_ListByUserNewestFirst(t *testing.T) {
	r := NewTripRepo()
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 6, 0, 0, 0, time.UTC)
	require.NoError(t, r.Put(ctx, domain.Trip{ID: "t1", UserID: "u1", StartedAt: base}))
	require.NoError(t, r.Put(ctx, domain.Trip{ID: "t2", UserID: "u1", StartedAt: base.Add(time.Hour)}))
	require.NoError(t, r.Put(ctx, domain.Trip{ID: "t3", UserID: "u2", StartedAt: base.Add(2 * time.Hour)}))

	trips, err := r.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, trips, 2)
	assert.Equal(t, "t2", trips[0].ID)
	assert.Equal(t, "t1", trips[1].ID)

	none, err := r.ListByUser(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestTripRepo_UpdateAppliesOnlyOnSuccess(t *testing.T) {
	r := NewTripRepo()
	ctx := context.Background()
	require.NoError(t, r.Put(ctx, domain.Trip{ID: "t1", UserID: "u1", Status: domain.TripActive}))

	_, err := r.Update(ctx, "t1", func(tr *domain.Trip) error {
		tr.Status = domain.TripCompleted
		return domain.ErrConflict
	})
	require.ErrorIs(t, err, domain.ErrConflict)
	got, err := r.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, domain.TripActive, got.Status)

	updated, err := r.Update(ctx, "t1", func(tr *domain.Trip) error {
		tr.Status = domain.TripCompleted
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TripCompleted, updated.Status)

	_, err = r.Update(ctx, "missing", func(*domain.Trip) error { return nil })
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVehicleRepo_UpdateAppliesOnlyOnSuccess(t *testing.T) {
	r := NewVehicleRepo()
	ctx := context.Background()
	require.NoError(t, r.Put(ctx, domain.Vehicle{ID: "v1", LastKm: 100}))

	_, err := r.Update(ctx, "v1", func(v *domain.Vehicle) error {
		v.LastKm = 999
		return domain.ErrConflict
	})
	require.ErrorIs(t, err, domain.ErrConflict)
	got, err := r.Get(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, 100, got.LastKm)

	updated, err := r.Update(ctx, "v1", func(v *domain.Vehicle) error {
		v.LastKm = 150
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 150, updated.LastKm)

	_, err = r.Update(ctx, "missing", func(*domain.Vehicle) error { return nil })
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
