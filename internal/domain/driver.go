package domain

import "time"

// Check question sets.
const (
	CheckStart = "start"
	CheckEnd   = "end"
)

type CheckQuestion struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Type     string `json:"type"` // "boolean" | "text"
	Required bool   `json:"required"`
}

type CheckResult struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type IncidentType struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

type ReportIncidentRequest struct {
	Type        string   `json:"type" validate:"required"`
	Description string   `json:"description"`
	Location    Location `json:"location"`
}

type Incident struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Location    Location  `json:"location"`
	CreatedAt   time.Time `json:"createdAt"`
	Status      string    `json:"status"`
}

type PrivacyZone struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters int     `json:"radiusMeters"`
}

type CreatePrivacyZoneRequest struct {
	Name         string  `json:"name" validate:"required"`
	Latitude     float64 `json:"latitude" validate:"latitude"`
	Longitude    float64 `json:"longitude" validate:"longitude"`
	RadiusMeters int     `json:"radius_meters" validate:"omitempty,min=1"`
}

type Conversation struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	LastMessage   string    `json:"lastMessage"`
	LastMessageAt time.Time `json:"lastMessageAt"`
	UnreadCount   int       `json:"unreadCount"`
}

type ChatMessage struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	Content        string    `json:"content"`
	SenderID       string    `json:"senderId"`
	SenderName     string    `json:"senderName,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	IsRead         bool      `json:"isRead"`
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

type Achievement struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Unlocked    bool       `json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlockedAt,omitempty"`
	Progress    *float64   `json:"progress,omitempty"`
}

type Streaks struct {
	CurrentStreak   int `json:"currentStreak"`
	LongestStreak   int `json:"longestStreak"`
	TotalDaysWorked int `json:"totalDaysWorked"`
}

type PanicRequest struct {
	Location Location `json:"location"`
}

type PanicAck struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
