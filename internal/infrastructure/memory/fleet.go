package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/driversense-api/internal/domain"
)

// VehicleRepo holds the fleet. Vehicles are seeded at start; only the odometer
// changes afterwards.
type VehicleRepo struct {
	mu       sync.RWMutex
	vehicles map[string]domain.Vehicle
	order    []string
}

func NewVehicleRepo() *VehicleRepo {
	return &VehicleRepo{vehicles: make(map[string]domain.Vehicle)}
}

func (r *VehicleRepo) Put(_ context.Context, v domain.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.vehicles[v.ID]; !exists {
		r.order = append(r.order, v.ID)
	}
	r.vehicles[v.ID] = v
	return nil
}

func (r *VehicleRepo) Get(_ context.Context, vehicleID string) (*domain.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.vehicles[vehicleID]
	if !ok {
		return nil, fmt.Errorf("Vehicle not found: %w", domain.ErrNotFound)
	}
	return &v, nil
}

// Update applies fn to the stored vehicle under the write lock. The vehicle is
// saved only when fn returns nil.
func (r *VehicleRepo) Update(_ context.Context, vehicleID string, fn func(v *domain.Vehicle) error) (*domain.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[vehicleID]
	if !ok {
		return nil, fmt.Errorf("Vehicle not found: %w", domain.ErrNotFound)
	}
	if err := fn(&v); err != nil {
		return nil, err
	}
	r.vehicles[vehicleID] = v
	return &v, nil
}

// List returns vehicles in insertion order.
func (r *VehicleRepo) List(_ context.Context) ([]domain.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Vehicle, 0, len(r.order))
	for _, vid := range r.order {
		out = append(out, r.vehicles[vid])
	}
	return out, nil
}

// TripRepo holds trips for the lifetime of the process.
type TripRepo struct {
	mu    sync.RWMutex
	trips map[string]domain.Trip
}

func NewTripRepo() *TripRepo {
	return &TripRepo{trips: make(map[string]domain.Trip)}
}

func (r *TripRepo) Put(_ context.Context, t domain.Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trips[t.ID] = t
	return nil
}

func (r *TripRepo) Get(_ context.Context, tripID string) (*domain.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.trips[tripID]
	if !ok {
		return nil, fmt.Errorf("Trip not found: %w", domain.ErrNotFound)
	}
	return &t, nil
}

// ListByUser returns the user's trips, newest first.
func (r *TripRepo) ListByUser(_ context.Context, userID string) ([]domain.Trip, error) {
	r.mu.RLock()
	out := make([]domain.Trip, 0)
	for _, t := range r.trips {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	return out, nil
}

// Update applies fn to the stored trip under the write lock. The trip is
// saved only when fn returns nil.
func (r *TripRepo) Update(_ context.Context, tripID string, fn func(t *domain.Trip) error) (*domain.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trips[tripID]
	if !ok {
		return nil, fmt.Errorf("Trip not found: %w", domain.ErrNotFound)
	}
	if err := fn(&t); err != nil {
		return nil, err
	}
	r.trips[tripID] = t
	return &t, nil
}
