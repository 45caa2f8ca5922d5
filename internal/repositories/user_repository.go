package repositories

import (
	"context"
	"database/sql"
	"time"

	"taskhub/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// Timezone returns the user's configured IANA zone name, "" when the
	// user is unknown or never set one.
	Timezone(ctx context.Context, userID int64) (string, error)

	// notification settings
	GetNotifySettings(ctx context.Context, userID int64) (chatID int64, notifyTG bool, email string, notifyEmail bool, err error)

	// refresh helpers
	UpdateRefresh(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	RotateRefresh(ctx context.Context, oldToken, newToken string, newExpiresAt time.Time) (*models.User, error)
	GetByRefreshToken(ctx context.Context, token string) (*models.User, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, password_hash, display_name, company_name, timezone,
       COALESCE(telegram_chat_id,0), notify_telegram, notify_email,
       refresh_token, refresh_expires_at, refresh_revoked`

func scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.CompanyName, &u.Timezone,
		&u.TelegramChatID, &u.NotifyTelegram, &u.NotifyEmail,
		&u.RefreshToken, &u.RefreshExpiresAt, &u.RefreshRevoked,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	const q = `
		INSERT INTO users (
			email, password_hash, display_name, company_name, timezone,
			telegram_chat_id, notify_telegram, notify_email,
			refresh_token, refresh_expires_at, refresh_revoked
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NULL,NULL,FALSE)
		RETURNING id`
	return r.db.QueryRowContext(ctx, q,
		user.Email, user.PasswordHash, user.DisplayName, user.CompanyName, user.Timezone,
		nullableChatID(user.TelegramChatID), user.NotifyTelegram, user.NotifyEmail,
	).Scan(&user.ID)
}

func nullableChatID(id int64) interface{} {
	if id == 0 {
		return nil
	}
	return id
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *userRepository) Timezone(ctx context.Context, userID int64) (string, error) {
	var tz string
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(timezone,'') FROM users WHERE id = $1`, userID).Scan(&tz)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return tz, nil
}

func (r *userRepository) GetNotifySettings(ctx context.Context, userID int64) (int64, bool, string, bool, error) {
	var (
		chatID      int64
		notifyTG    bool
		email       string
		notifyEmail bool
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(telegram_chat_id,0), notify_telegram, email, notify_email
		FROM users WHERE id = $1`, userID,
	).Scan(&chatID, &notifyTG, &email, &notifyEmail)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, false, "", false, nil
		}
		return 0, false, "", false, err
	}
	return chatID, notifyTG, email, notifyEmail, nil
}

func (r *userRepository) UpdateRefresh(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET refresh_token=$1, refresh_expires_at=$2, refresh_revoked=FALSE
		WHERE id=$3`, token, expiresAt, userID)
	return err
}

func (r *userRepository) RotateRefresh(ctx context.Context, oldToken, newToken string, newExpiresAt time.Time) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `
		UPDATE users SET refresh_token=$1, refresh_expires_at=$2
		WHERE refresh_token=$3 AND refresh_revoked=FALSE
		RETURNING `+userColumns, newToken, newExpiresAt, oldToken))
}

func (r *userRepository) GetByRefreshToken(ctx context.Context, token string) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE refresh_token = $1`, token))
}
