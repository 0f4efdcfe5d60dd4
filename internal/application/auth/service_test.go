package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/driversense-api/internal/domain"
	jwtinfra "github.com/driversense-api/internal/infrastructure/jwt"
	"github.com/driversense-api/internal/infrastructure/memory"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) FindByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Update(ctx context.Context, userID string, p domain.UserPatch) (*domain.User, error) {
	args := m.Called(ctx, userID, p)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockChallengeStore struct{ mock.Mock }

func (m *mockChallengeStore) Create(ctx context.Context, userID string, typ domain.ChallengeType, ttl time.Duration) (string, error) {
	args := m.Called(ctx, userID, typ, ttl)
	return args.String(0), args.Error(1)
}
func (m *mockChallengeStore) Lookup(ctx context.Context, token string, typ domain.ChallengeType) (*domain.Challenge, error) {
	args := m.Called(ctx, token, typ)
	if c, _ := args.Get(0).(*domain.Challenge); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockChallengeStore) Consume(ctx context.Context, token string, typ domain.ChallengeType) (*domain.Challenge, error) {
	args := m.Called(ctx, token, typ)
	if c, _ := args.Get(0).(*domain.Challenge); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockTokenIssuer struct{ mock.Mock }

func (m *mockTokenIssuer) IssuePair(userID string) (domain.TokenPair, error) {
	args := m.Called(userID)
	return args.Get(0).(domain.TokenPair), args.Error(1)
}
func (m *mockTokenIssuer) VerifyRefresh(token string) (*jwtinfra.Claims, error) {
	args := m.Called(token)
	if c, _ := args.Get(0).(*jwtinfra.Claims); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

// --- helpers ---

type fixture struct {
	users      *mockUserStore
	challenges *mockChallengeStore
	tokens     *mockTokenIssuer
	svc        Service
}

func newFixture() *fixture {
	f := &fixture{users: &mockUserStore{}, challenges: &mockChallengeStore{}, tokens: &mockTokenIssuer{}}
	f.svc = NewService(ServiceDeps{
		Users:                 f.users,
		Challenges:            f.challenges,
		Tokens:                f.tokens,
		Ledger:                memory.NewRefreshLedger(),
		ChallengeTTL:          5 * time.Minute,
		DefaultConsentVersion: "1.0",
	})
	return f
}

func testUser() *domain.User {
	return &domain.User{
		UserID:          "user-1",
		Email:           "test@driversense.nl",
		FirstName:       "Test",
		LastName:        "Gebruiker",
		Role:            domain.RoleDriver,
		CompanyID:       "company-1",
		Language:        "nl",
		ConsentAccepted: true,
	}
}

var pair = domain.TokenPair{AccessToken: "access", RefreshToken: "refresh"}

func refreshClaims(jti string) *jwtinfra.Claims {
	return &jwtinfra.Claims{
		UserID: "user-1",
		Type:   domain.TokenRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

// --- Login ---

func TestLogin_MissingFields(t *testing.T) {
	for _, req := range []LoginRequest{{}, {Email: "a@b.nl"}, {Password: "pw"}} {
		f := newFixture()
		_, err := f.svc.Login(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrValidation)
		f.users.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestLogin_BadCredentialsIndistinguishable(t *testing.T) {
	f := newFixture()
	f.users.On("Authenticate", mock.Anything, "ghost@driversense.nl", "pw").
		Return(nil, fmt.Errorf("unknown email: %w", domain.ErrAuthentication))
	f.users.On("Authenticate", mock.Anything, "test@driversense.nl", "wrong").
		Return(nil, fmt.Errorf("password mismatch: %w", domain.ErrAuthentication))

	_, unknown := f.svc.Login(context.Background(), LoginRequest{Email: "ghost@driversense.nl", Password: "pw"})
	_, wrongPw := f.svc.Login(context.Background(), LoginRequest{Email: "test@driversense.nl", Password: "wrong"})

	require.ErrorIs(t, unknown, domain.ErrAuthentication)
	require.ErrorIs(t, wrongPw, domain.ErrAuthentication)
	assert.Equal(t, unknown.Error(), wrongPw.Error())
	f.tokens.AssertNotCalled(t, "IssuePair", mock.Anything)
}

func TestLogin_StoreFailurePassesThrough(t *testing.T) {
	f := newFixture()
	boom := errors.New("store unavailable")
	f.users.On("Authenticate", mock.Anything, "test@driversense.nl", "pw").Return(nil, boom)

	_, err := f.svc.Login(context.Background(), LoginRequest{Email: "test@driversense.nl", Password: "pw"})
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrAuthentication)
}

func TestLogin_Authenticated(t *testing.T) {
	f := newFixture()
	f.users.On("Authenticate", mock.Anything, "test@driversense.nl", "Test1234!").Return(testUser(), nil)
	f.tokens.On("IssuePair", "user-1").Return(pair, nil)

	res, err := f.svc.Login(context.Background(), LoginRequest{Email: "test@driversense.nl", Password: "Test1234!"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAuthenticated, res.Status)
	require.NotNil(t, res.Tokens)
	assert.Equal(t, pair, *res.Tokens)
	assert.Equal(t, "test@driversense.nl", res.User.Email)
	assert.Empty(t, res.SessionToken)
}

func TestLogin_RequiresTwoFactor(t *testing.T) {
	f := newFixture()
	u := testUser()
	u.Requires2FA = true
	f.users.On("Authenticate", mock.Anything, u.Email, "pw").Return(u, nil)
	f.challenges.On("Create", mock.Anything, "user-1", domain.ChallengeTwoFactor, 5*time.Minute).Return("challenge-1", nil)

	res, err := f.svc.Login(context.Background(), LoginRequest{Email: u.Email, Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRequires2FA, res.Status)
	assert.Equal(t, "challenge-1", res.SessionToken)
	assert.Nil(t, res.Tokens)
	assert.Nil(t, res.User)
	f.tokens.AssertNotCalled(t, "IssuePair", mock.Anything)
}

func TestLogin_TwoFactorTakesPrecedenceOverConsent(t *testing.T) {
	f := newFixture()
	u := testUser()
	u.Requires2FA = true
	u.ConsentAccepted = false
	f.users.On("Authenticate", mock.Anything, u.Email, "pw").Return(u, nil)
	f.challenges.On("Create", mock.Anything, "user-1", domain.ChallengeTwoFactor, mock.Anything).Return("challenge-1", nil)

	res, err := f.svc.Login(context.Background(), LoginRequest{Email: u.Email, Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRequires2FA, res.Status)
}

func TestLogin_RequiresConsent(t *testing.T) {
	f := newFixture()
	u := testUser()
	u.ConsentAccepted = false
	f.users.On("Authenticate", mock.Anything, u.Email, "pw").Return(u, nil)
	f.tokens.On("IssuePair", "user-1").Return(pair, nil)

	res, err := f.svc.Login(context.Background(), LoginRequest{Email: u.Email, Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRequiresConsent, res.Status)
	require.NotNil(t, res.Tokens)
	assert.Equal(t, "user-1", res.User.UserID)
}

// --- VerifyTwoFactor ---

func TestVerifyTwoFactor_MissingSessionToken(t *testing.T) {
	f := newFixture()
	_, err := f.svc.VerifyTwoFactor(context.Background(), VerifyTwoFactorRequest{Code: "123456"})
	assert.ErrorIs(t, err, domain.ErrInvalidSession)
}

func TestVerifyTwoFactor_UnknownSession(t *testing.T) {
	f := newFixture()
	f.challenges.On("Lookup", mock.Anything, "nope", domain.ChallengeTwoFactor).Return(nil, domain.ErrInvalidOrExpiredChallenge)

	_, err := f.svc.VerifyTwoFactor(context.Background(), VerifyTwoFactorRequest{SessionToken: "nope", Code: "123456"})
	assert.ErrorIs(t, err, domain.ErrInvalidSession)
}

func TestVerifyTwoFactor_BadCodeKeepsChallenge(t *testing.T) {
	for _, code := range []string{"", "12345", "1234567", "12a456", "-12345", " 123456"} {
		f := newFixture()
		f.challenges.On("Lookup", mock.Anything, "c1", domain.ChallengeTwoFactor).
			Return(&domain.Challenge{Token: "c1", UserID: "user-1", Type: domain.ChallengeTwoFactor}, nil)

		_, err := f.svc.VerifyTwoFactor(context.Background(), VerifyTwoFactorRequest{SessionToken: "c1", Code: LooseString(code)})
		assert.ErrorIs(t, err, domain.ErrInvalidCode, "code %q", code)
		f.challenges.AssertNotCalled(t, "Consume", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestVerifyTwoFactor_Success(t *testing.T) {
	f := newFixture()
	c := &domain.Challenge{Token: "c1", UserID: "user-1", Type: domain.ChallengeTwoFactor}
	f.challenges.On("Lookup", mock.Anything, "c1", domain.ChallengeTwoFactor).Return(c, nil)
	f.challenges.On("Consume", mock.Anything, "c1", domain.ChallengeTwoFactor).Return(c, nil)
	f.users.On("FindByID", mock.Anything, "user-1").Return(testUser(), nil)
	f.tokens.On("IssuePair", "user-1").Return(pair, nil)

	res, err := f.svc.VerifyTwoFactor(context.Background(), VerifyTwoFactorRequest{SessionToken: "c1", Code: "000000"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAuthenticated, res.Status)
	assert.Equal(t, pair, *res.Tokens)
	f.challenges.AssertExpectations(t)
}

func TestVerifyTwoFactor_LostConsumeRace(t *testing.T) {
	f := newFixture()
	c := &domain.Challenge{Token: "c1", UserID: "user-1", Type: domain.ChallengeTwoFactor}
	f.challenges.On("Lookup", mock.Anything, "c1", domain.ChallengeTwoFactor).Return(c, nil)
	f.challenges.On("Consume", mock.Anything, "c1", domain.ChallengeTwoFactor).Return(nil, domain.ErrInvalidOrExpiredChallenge)

	_, err := f.svc.VerifyTwoFactor(context.Background(), VerifyTwoFactorRequest{SessionToken: "c1", Code: "123456"})
	assert.ErrorIs(t, err, domain.ErrInvalidSession)
	f.tokens.AssertNotCalled(t, "IssuePair", mock.Anything)
}

// --- Refresh ---

func TestRefresh_Empty(t *testing.T) {
	_, err := newFixture().svc.Refresh(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestRefresh_VerifyFails(t *testing.T) {
	f := newFixture()
	f.tokens.On("VerifyRefresh", "bad").Return(nil, domain.ErrInvalidToken)
	_, err := f.svc.Refresh(context.Background(), "bad")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestRefresh_RotatesAndRejectsReuse(t *testing.T) {
	f := newFixture()
	f.tokens.On("VerifyRefresh", "r1").Return(refreshClaims("jti-1"), nil)
	f.users.On("FindByID", mock.Anything, "user-1").Return(testUser(), nil)
	f.tokens.On("IssuePair", "user-1").Return(pair, nil).Once()

	got, err := f.svc.Refresh(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, pair, got)

	_, err = f.svc.Refresh(context.Background(), "r1")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
	f.tokens.AssertNumberOfCalls(t, "IssuePair", 1)
}

func TestRefresh_UserGone(t *testing.T) {
	f := newFixture()
	f.tokens.On("VerifyRefresh", "r1").Return(refreshClaims("jti-2"), nil)
	f.users.On("FindByID", mock.Anything, "user-1").Return(nil, domain.ErrNotFound)

	_, err := f.svc.Refresh(context.Background(), "r1")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

// --- Consent / forgot password ---

func TestAcceptConsent_DefaultVersion(t *testing.T) {
	f := newFixture()
	f.users.On("Update", mock.Anything, "user-1", mock.MatchedBy(func(p domain.UserPatch) bool {
		return p.ConsentAccepted != nil && *p.ConsentAccepted && p.ConsentVersion != nil && *p.ConsentVersion == "1.0"
	})).Return(testUser(), nil)

	require.NoError(t, f.svc.AcceptConsent(context.Background(), "user-1", ""))
	f.users.AssertExpectations(t)
}

func TestAcceptConsent_ExplicitVersion(t *testing.T) {
	f := newFixture()
	f.users.On("Update", mock.Anything, "user-1", mock.MatchedBy(func(p domain.UserPatch) bool {
		return p.ConsentVersion != nil && *p.ConsentVersion == "2.1"
	})).Return(testUser(), nil)

	require.NoError(t, f.svc.AcceptConsent(context.Background(), "user-1", "2.1"))
	f.users.AssertExpectations(t)
}

func TestAcceptConsent_UnknownUser(t *testing.T) {
	f := newFixture()
	f.users.On("Update", mock.Anything, "ghost", mock.Anything).Return(nil, domain.ErrNotFound)
	assert.ErrorIs(t, f.svc.AcceptConsent(context.Background(), "ghost", ""), domain.ErrNotFound)
}

func TestForgotPassword_AlwaysGeneric(t *testing.T) {
	f := newFixture()
	f.users.On("FindByEmail", mock.Anything, "test@driversense.nl").Return(testUser(), nil)
	f.users.On("FindByEmail", mock.Anything, "ghost@driversense.nl").Return(nil, domain.ErrNotFound)

	assert.Equal(t, ForgotPasswordMessage, f.svc.ForgotPassword(context.Background(), "test@driversense.nl"))
	assert.Equal(t, ForgotPasswordMessage, f.svc.ForgotPassword(context.Background(), "ghost@driversense.nl"))
	assert.Equal(t, ForgotPasswordMessage, f.svc.ForgotPassword(context.Background(), ""))
}
