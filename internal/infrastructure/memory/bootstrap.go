package memory

import (
	"context"
	"errors"
	"log/slog"

	"github.com/driversense-api/internal/domain"
)

// Seed credentials. The test account matches what the mobile app ships with.
const (
	TestUserEmail    = "test@driversense.nl"
	TestUserPassword = "Test1234!"

	TwoFactorUserEmail = "2fa@driversense.nl"
	ConsentUserEmail   = "consent@driversense.nl"
	DemoPassword       = "Demo1234!"
)

// Bootstrap seeds the stores with the test account and the two vehicles.
// When demo is set it also adds accounts that exercise the 2FA and consent
// branches of login. Safe to call on every startup; existing entries are kept.
func Bootstrap(ctx context.Context, users *UserRepo, vehicles *VehicleRepo, demo bool) {
	phone := "+31612345678"
	seedUser(ctx, users, domain.User{
		Email:           TestUserEmail,
		FirstName:       "Test",
		LastName:        "Gebruiker",
		Role:            domain.RoleDriver,
		CompanyID:       "company-1",
		Language:        "nl",
		PhoneNumber:     phone,
		ConsentAccepted: true,
		ConsentVersion:  "1.0",
	}, TestUserPassword)

	if demo {
		seedUser(ctx, users, domain.User{
			Email:           TwoFactorUserEmail,
			FirstName:       "Twee",
			LastName:        "Factor",
			Role:            domain.RoleDriver,
			CompanyID:       "company-1",
			Language:        "nl",
			ConsentAccepted: true,
			ConsentVersion:  "1.0",
			Requires2FA:     true,
		}, DemoPassword)
		seedUser(ctx, users, domain.User{
			Email:     ConsentUserEmail,
			FirstName: "Nieuwe",
			LastName:  "Chauffeur",
			Role:      domain.RoleDriver,
			CompanyID: "company-1",
			Language:  "en",
		}, DemoPassword)
	}

	for _, v := range []domain.Vehicle{
		{ID: "vehicle-1", LicensePlate: "AB-123-CD", Brand: "Volvo", Model: "FH16", Type: "truck", Year: 2022, LastKm: 125000},
		{ID: "vehicle-2", LicensePlate: "EF-456-GH", Brand: "DAF", Model: "XF", Type: "truck", Year: 2021, LastKm: 89000},
	} {
		if _, err := vehicles.Get(ctx, v.ID); err == nil {
			continue
		}
		_ = vehicles.Put(ctx, v)
	}
}

func seedUser(ctx context.Context, users *UserRepo, u domain.User, password string) {
	created, err := users.Create(ctx, u, password)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			slog.Info("user already seeded, skipping", "email", u.Email)
			return
		}
		slog.Error("failed to seed user", "email", u.Email, "err", err)
		return
	}
	slog.Info("seeded user", "email", created.Email, "user_id", created.UserID)
}
