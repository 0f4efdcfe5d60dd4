package driver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/driversense-api/internal/domain"
	"github.com/driversense-api/internal/pkg/id"
	"github.com/driversense-api/internal/pkg/validate"
)

const (
	defaultZoneRadius = 200
	panicAckMessage   = "Je locatie is gedeeld met de planner"
)

var (
	startQuestions = []domain.CheckQuestion{
		{ID: "q1", Text: "Heb je goed geslapen?", Type: "boolean", Required: true},
		{ID: "q2", Text: "Heb je alcohol of drugs gebruikt in de laatste 24 uur?", Type: "boolean", Required: true},
		{ID: "q3", Text: "Zijn er beschadigingen aan het voertuig?", Type: "boolean", Required: true},
		{ID: "q4", Text: "Opmerkingen", Type: "text", Required: false},
	}
	endQuestions = []domain.CheckQuestion{
		{ID: "q5", Text: "Waren er incidenten tijdens de rit?", Type: "boolean", Required: true},
		{ID: "q6", Text: "Is het voertuig schoon achtergelaten?", Type: "boolean", Required: true},
		{ID: "q7", Text: "Opmerkingen", Type: "text", Required: false},
	}
	incidentTypes = []domain.IncidentType{
		{ID: "accident", Label: "Ongeval", Icon: "car_crash"},
		{ID: "breakdown", Label: "Pech", Icon: "build"},
		{ID: "traffic", Label: "File/Vertraging", Icon: "traffic"},
		{ID: "weather", Label: "Weer", Icon: "cloud"},
		{ID: "road_condition", Label: "Wegconditie", Icon: "road"},
		{ID: "other", Label: "Overig", Icon: "more_horiz"},
	}
	privacyZones = []domain.PrivacyZone{
		{ID: "zone-1", Name: "Thuis", Latitude: 52.3676, Longitude: 4.9041, RadiusMeters: defaultZoneRadius},
	}
	defaultNotificationSettings = domain.NotificationSettings{
		PushEnabled:              true,
		ChatNotifications:        true,
		TripReminders:            true,
		AchievementNotifications: true,
	}
	streaks = domain.Streaks{CurrentStreak: 7, LongestStreak: 14, TotalDaysWorked: 42}
)

const planningGreeting = "Je route voor morgen is klaar"

// Service serves the driver-app screens that have no backing data yet.
// Payloads are fixed or echo the request.
type Service interface {
	Questions(ctx context.Context, kind string) []domain.CheckQuestion
	SubmitCheck(ctx context.Context, userID, kind string) domain.CheckResult
	IncidentTypes(ctx context.Context) []domain.IncidentType
	ReportIncident(ctx context.Context, userID string, req domain.ReportIncidentRequest) (*domain.Incident, error)
	PrivacyZones(ctx context.Context, userID string) []domain.PrivacyZone
	CreatePrivacyZone(ctx context.Context, userID string, req domain.CreatePrivacyZoneRequest) (*domain.PrivacyZone, error)
	Conversations(ctx context.Context, userID string) []domain.Conversation
	Messages(ctx context.Context, userID, conversationID string) []domain.ChatMessage
	SendMessage(ctx context.Context, userID, conversationID string, req domain.SendMessageRequest) (*domain.ChatMessage, error)
	Achievements(ctx context.Context, userID string) []domain.Achievement
	Streaks(ctx context.Context, userID string) domain.Streaks
	Panic(ctx context.Context, userID string, req domain.PanicRequest) domain.PanicAck
	NotificationSettings(ctx context.Context, userID string) domain.NotificationSettings
	RegisterPushToken(ctx context.Context, userID string, req domain.RegisterPushTokenRequest) error
}

type ServiceDeps struct {
	Now func() time.Time
}

type service struct {
	nowF func() time.Time
}

func NewService(deps ServiceDeps) Service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &service{nowF: now}
}

func (s *service) now() time.Time { return s.nowF().UTC() }

// Questions returns the end-of-trip set for kind "end" and the start set
// otherwise.
func (s *service) Questions(_ context.Context, kind string) []domain.CheckQuestion {
	src := startQuestions
	if kind == domain.CheckEnd {
		src = endQuestions
	}
	return append([]domain.CheckQuestion(nil), src...)
}

func (s *service) SubmitCheck(_ context.Context, userID, kind string) domain.CheckResult {
	r := domain.CheckResult{ID: id.New(), Status: "completed", CreatedAt: s.now()}
	slog.Info("check submitted", "user_id", userID, "kind", kind, "check_id", r.ID)
	return r
}

func (s *service) IncidentTypes(_ context.Context) []domain.IncidentType {
	return append([]domain.IncidentType(nil), incidentTypes...)
}

func (s *service) ReportIncident(_ context.Context, userID string, req domain.ReportIncidentRequest) (*domain.Incident, error) {
	if err := validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("incident type is required: %w", domain.ErrValidation)
	}
	inc := &domain.Incident{
		ID:          id.New(),
		Type:        req.Type,
		Description: req.Description,
		Location:    req.Location,
		CreatedAt:   s.now(),
		Status:      "reported",
	}
	slog.Info("incident reported", "user_id", userID, "incident_id", inc.ID, "type", inc.Type)
	return inc, nil
}

func (s *service) PrivacyZones(_ context.Context, _ string) []domain.PrivacyZone {
	return append([]domain.PrivacyZone(nil), privacyZones...)
}

func (s *service) CreatePrivacyZone(_ context.Context, _ string, req domain.CreatePrivacyZoneRequest) (*domain.PrivacyZone, error) {
	if err := validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrValidation)
	}
	radius := req.RadiusMeters
	if radius == 0 {
		radius = defaultZoneRadius
	}
	return &domain.PrivacyZone{
		ID:           id.New(),
		Name:         req.Name,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: radius,
	}, nil
}

func (s *service) Conversations(_ context.Context, _ string) []domain.Conversation {
	return []domain.Conversation{{
		ID:            "conv-1",
		Title:         "Planning",
		LastMessage:   planningGreeting,
		LastMessageAt: s.now(),
		UnreadCount:   1,
	}}
}

func (s *service) Messages(_ context.Context, _ string, conversationID string) []domain.ChatMessage {
	return []domain.ChatMessage{{
		ID:             "msg-1",
		ConversationID: conversationID,
		Content:        planningGreeting,
		SenderID:       "planner-1",
		SenderName:     "Planning",
		CreatedAt:      s.now(),
		IsRead:         false,
	}}
}

func (s *service) SendMessage(_ context.Context, userID, conversationID string, req domain.SendMessageRequest) (*domain.ChatMessage, error) {
	if err := validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("message content is required: %w", domain.ErrValidation)
	}
	return &domain.ChatMessage{
		ID:             id.New(),
		ConversationID: conversationID,
		Content:        req.Content,
		SenderID:       userID,
		CreatedAt:      s.now(),
		IsRead:         true,
	}, nil
}

func (s *service) Achievements(_ context.Context, _ string) []domain.Achievement {
	first := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	week := time.Date(2024, 1, 22, 18, 0, 0, 0, time.UTC)
	progress := 0.7
	return []domain.Achievement{
		{ID: "ach-1", Name: "Eerste Rit", Description: "Voltooi je eerste rit", Unlocked: true, UnlockedAt: &first},
		{ID: "ach-2", Name: "Week Streak", Description: "Rij 7 dagen achter elkaar", Unlocked: true, UnlockedAt: &week},
		{ID: "ach-3", Name: "Veilige Chauffeur", Description: "Geen incidenten in 30 dagen", Progress: &progress},
	}
}

func (s *service) Streaks(_ context.Context, _ string) domain.Streaks {
	return streaks
}

// Panic records the alert. Planner notification is not wired up; the log line
// is the only trace.
func (s *service) Panic(_ context.Context, userID string, req domain.PanicRequest) domain.PanicAck {
	slog.Warn("panic alert", "user_id", userID, "location", map[string]any(req.Location))
	return domain.PanicAck{Status: "received", Message: panicAckMessage, Timestamp: s.now()}
}

func (s *service) NotificationSettings(_ context.Context, _ string) domain.NotificationSettings {
	return defaultNotificationSettings
}

func (s *service) RegisterPushToken(_ context.Context, userID string, req domain.RegisterPushTokenRequest) error {
	if err := validate.Struct(&req); err != nil {
		return fmt.Errorf("%s: %w", err.Error(), domain.ErrValidation)
	}
	slog.Debug("push token registered", "user_id", userID, "platform", req.Platform)
	return nil
}
