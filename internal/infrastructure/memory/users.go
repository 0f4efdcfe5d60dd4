package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/driversense-api/internal/domain"
	"github.com/driversense-api/internal/pkg/id"
	"golang.org/x/crypto/bcrypt"
)

type userRecord struct {
	user         domain.User
	passwordHash []byte
}

// UserRepo is the in-memory credential store. Lookups by email are
// case-insensitive; password hashes never leave the repo.
type UserRepo struct {
	mu      sync.RWMutex
	byID    map[string]*userRecord
	byEmail map[string]*userRecord
	cost    int
	// dummyHash is compared against when the email is unknown so both
	// failure paths cost one bcrypt comparison.
	dummyHash []byte
	nowF      func() time.Time
}

// NewUserRepo returns an empty repo hashing passwords at the given bcrypt cost.
func NewUserRepo(cost int) *UserRepo {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("driversense-no-such-user"), cost)
	if err != nil {
		panic("generate dummy hash: " + err.Error())
	}
	return &UserRepo{
		byID:      make(map[string]*userRecord),
		byEmail:   make(map[string]*userRecord),
		cost:      cost,
		dummyHash: dummy,
		nowF:      time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create hashes password and stores u. Empty UserID and CreatedAt are filled in.
func (r *UserRepo) Create(_ context.Context, u domain.User, password string) (*domain.User, error) {
	u.Email = normalizeEmail(u.Email)
	if u.Email == "" || password == "" {
		return nil, fmt.Errorf("Email and password are required: %w", domain.ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), r.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if u.UserID == "" {
		u.UserID = id.New()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = r.nowF().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[u.Email]; exists {
		return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	}
	if _, exists := r.byID[u.UserID]; exists {
		return nil, fmt.Errorf("user id already registered: %w", domain.ErrConflict)
	}
	rec := &userRecord{user: u, passwordHash: hash}
	r.byID[u.UserID] = rec
	r.byEmail[u.Email] = rec
	out := rec.user
	return &out, nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, fmt.Errorf("User not found: %w", domain.ErrNotFound)
	}
	out := rec.user
	return &out, nil
}

func (r *UserRepo) FindByID(_ context.Context, userID string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.byID[userID]
	if !ok {
		return nil, fmt.Errorf("User not found: %w", domain.ErrNotFound)
	}
	out := rec.user
	return &out, nil
}

// Authenticate returns the user when password matches the stored hash. Unknown
// email and wrong password produce the same error.
func (r *UserRepo) Authenticate(_ context.Context, email, password string) (*domain.User, error) {
	r.mu.RLock()
	rec, ok := r.byEmail[normalizeEmail(email)]
	var (
		hash []byte
		user domain.User
	)
	if ok {
		hash, user = rec.passwordHash, rec.user
	} else {
		hash = r.dummyHash
	}
	r.mu.RUnlock()

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil || !ok {
		return nil, fmt.Errorf("Invalid email or password: %w", domain.ErrAuthentication)
	}
	return &user, nil
}

// Update applies p to the user. Nil and empty fields are skipped, and
// ConsentAccepted can only move to true.
func (r *UserRepo) Update(_ context.Context, userID string, p domain.UserPatch) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.byID[userID]
	if !ok {
		return nil, fmt.Errorf("User not found: %w", domain.ErrNotFound)
	}
	u := &rec.user
	setString(&u.FirstName, p.FirstName)
	setString(&u.LastName, p.LastName)
	setString(&u.Language, p.Language)
	setString(&u.PhoneNumber, p.PhoneNumber)
	setString(&u.ConsentVersion, p.ConsentVersion)
	if p.ConsentAccepted != nil && *p.ConsentAccepted {
		u.ConsentAccepted = true
	}
	out := rec.user
	return &out, nil
}

func setString(dst *string, v *string) {
	if v != nil && *v != "" {
		*dst = *v
	}
}
