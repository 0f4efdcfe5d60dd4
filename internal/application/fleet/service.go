package fleet

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/driversense-api/internal/domain"
	"github.com/driversense-api/internal/pkg/id"
	"github.com/driversense-api/internal/pkg/validate"
)

// sampleStatistics is served until trip analytics exist.
var sampleStatistics = domain.TripStatistics{
	TotalTrips:   42,
	TotalKm:      15234,
	TotalHours:   312,
	AverageSpeed: 65,
	SafetyScore:  92,
	StreakDays:   7,
}

type Service interface {
	AssignedVehicles(ctx context.Context, userID string) ([]domain.Vehicle, error)
	Vehicle(ctx context.Context, vehicleID string) (*domain.Vehicle, error)
	StartTrip(ctx context.Context, userID string, req domain.StartTripRequest) (*domain.Trip, error)
	StopTrip(ctx context.Context, userID, tripID string, req domain.StopTripRequest) (*domain.Trip, error)
	ActiveTrip(ctx context.Context, userID string) (*domain.Trip, error)
	Trips(ctx context.Context, userID string) ([]domain.Trip, error)
	Statistics(ctx context.Context, userID string) domain.TripStatistics
}

type vehicleStore interface {
	Get(ctx context.Context, vehicleID string) (*domain.Vehicle, error)
	List(ctx context.Context) ([]domain.Vehicle, error)
	Update(ctx context.Context, vehicleID string, fn func(v *domain.Vehicle) error) (*domain.Vehicle, error)
}

type tripStore interface {
	Put(ctx context.Context, t domain.Trip) error
	Update(ctx context.Context, tripID string, fn func(t *domain.Trip) error) (*domain.Trip, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Trip, error)
}

type ServiceDeps struct {
	VehicleRepo vehicleStore
	TripRepo    tripStore
	Now         func() time.Time
}

type service struct {
	vehicles vehicleStore
	trips    tripStore
	nowF     func() time.Time
}

func NewService(deps ServiceDeps) Service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &service{vehicles: deps.VehicleRepo, trips: deps.TripRepo, nowF: now}
}

// AssignedVehicles returns the whole fleet; assignment per driver is not
// modelled.
func (s *service) AssignedVehicles(ctx context.Context, _ string) ([]domain.Vehicle, error) {
	return s.vehicles.List(ctx)
}

func (s *service) Vehicle(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	return s.vehicles.Get(ctx, vehicleID)
}

func (s *service) StartTrip(ctx context.Context, userID string, req domain.StartTripRequest) (*domain.Trip, error) {
	if err := validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("vehicle_id is required: %w", domain.ErrValidation)
	}
	if _, err := s.vehicles.Get(ctx, req.VehicleID); err != nil {
		return nil, err
	}
	t := domain.Trip{
		ID:            id.New(),
		UserID:        userID,
		VehicleID:     req.VehicleID,
		Status:        domain.TripActive,
		StartedAt:     s.nowF().UTC(),
		StartLocation: req.StartLocation,
		Points:        []domain.TripPoint{},
	}
	if err := s.trips.Put(ctx, t); err != nil {
		return nil, err
	}
	slog.Info("trip started", "user_id", userID, "trip_id", t.ID, "vehicle_id", t.VehicleID)
	return &t, nil
}

func (s *service) StopTrip(ctx context.Context, userID, tripID string, req domain.StopTripRequest) (*domain.Trip, error) {
	if err := validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("end_km must not be negative: %w", domain.ErrValidation)
	}
	t, err := s.trips.Update(ctx, tripID, func(t *domain.Trip) error {
		if t.UserID != userID {
			return fmt.Errorf("Trip not found: %w", domain.ErrNotFound)
		}
		if t.Status != domain.TripActive {
			return fmt.Errorf("trip already completed: %w", domain.ErrConflict)
		}
		ended := s.nowF().UTC()
		t.Status = domain.TripCompleted
		t.EndedAt = &ended
		t.EndLocation = req.EndLocation
		t.EndKm = req.EndKm
		return nil
	})
	if err != nil {
		return nil, err
	}
	if t.EndKm != nil {
		s.recordOdometer(ctx, t.VehicleID, *t.EndKm)
	}
	slog.Info("trip stopped", "user_id", userID, "trip_id", t.ID)
	return t, nil
}

// recordOdometer raises the vehicle's last known km. Failures are logged only;
// the trip itself is already stored.
func (s *service) recordOdometer(ctx context.Context, vehicleID string, km int) {
	_, err := s.vehicles.Update(ctx, vehicleID, func(v *domain.Vehicle) error {
		if km > v.LastKm {
			v.LastKm = km
		}
		return nil
	})
	if err != nil {
		slog.Warn("odometer update failed", "vehicle_id", vehicleID, "error", err)
	}
}

func (s *service) ActiveTrip(ctx context.Context, userID string) (*domain.Trip, error) {
	trips, err := s.trips.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range trips {
		if trips[i].Status == domain.TripActive {
			return &trips[i], nil
		}
	}
	return nil, fmt.Errorf("No active trip: %w", domain.ErrNotFound)
}

func (s *service) Trips(ctx context.Context, userID string) ([]domain.Trip, error) {
	return s.trips.ListByUser(ctx, userID)
}

func (s *service) Statistics(_ context.Context, _ string) domain.TripStatistics {
	return sampleStatistics
}

