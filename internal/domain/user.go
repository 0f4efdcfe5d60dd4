package domain

import "time"

// Roles known to the driver app. Authorization is not role based; the role is
// informational for the client.
const (
	RoleDriver  = "driver"
	RolePlanner = "planner"
)

// User is a driver account. The password hash lives only inside the user store.
type User struct {
	UserID          string
	Email           string
	FirstName       string
	LastName        string
	Role            string
	CompanyID       string
	Language        string
	PhoneNumber     string
	ProfileImageURL *string
	ConsentAccepted bool
	ConsentVersion  string
	Requires2FA     bool
	CreatedAt       time.Time
}

// UserPatch carries the fields an update may change. Nil or zero-valued fields
// are left untouched.
type UserPatch struct {
	FirstName       *string
	LastName        *string
	Language        *string
	PhoneNumber     *string
	ConsentAccepted *bool
	ConsentVersion  *string
}

// ProfileSummary is the reduced profile returned while consent is pending.
type ProfileSummary struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	CompanyID string `json:"companyId"`
	Language  string `json:"language"`
}

// Profile is the full client-facing view of a User.
type Profile struct {
	ProfileSummary
	PhoneNumber     string  `json:"phoneNumber"`
	ProfileImageURL *string `json:"profileImageUrl"`
}

func (u *User) Summary() ProfileSummary {
	return ProfileSummary{
		ID:        u.UserID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		CompanyID: u.CompanyID,
		Language:  u.Language,
	}
}

func (u *User) Profile() Profile {
	return Profile{
		ProfileSummary:  u.Summary(),
		PhoneNumber:     u.PhoneNumber,
		ProfileImageURL: u.ProfileImageURL,
	}
}
