package models

import "time"

type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	DisplayName  string `json:"display_name"`
	CompanyName  string `json:"company_name"`

	// IANA zone name used when combining a task's deadline date and time.
	Timezone string `json:"timezone"`

	// Notification settings for task events.
	TelegramChatID int64 `json:"-"`
	NotifyTelegram bool  `json:"notify_telegram"`
	NotifyEmail    bool  `json:"notify_email"`

	// refresh token storage
	RefreshToken     *string    `json:"-"`
	RefreshExpiresAt *time.Time `json:"-"`
	RefreshRevoked   bool       `json:"-"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
