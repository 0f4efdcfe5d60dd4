package domain

// NotificationSettings are the per-driver push preferences shown in the app.
type NotificationSettings struct {
	PushEnabled              bool `json:"pushEnabled"`
	ChatNotifications        bool `json:"chatNotifications"`
	TripReminders            bool `json:"tripReminders"`
	AchievementNotifications bool `json:"achievementNotifications"`
}

// RegisterPushTokenRequest is accepted and discarded; no push delivery exists.
type RegisterPushTokenRequest struct {
	Token    string `json:"token" validate:"required"`
	Platform string `json:"platform" validate:"omitempty,oneof=android ios"`
}
