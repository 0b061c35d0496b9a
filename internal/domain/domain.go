package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the identity record created at patient intake. It is immutable
// after creation; the registration step extends it with a Patient record.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`

	Name  string `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Email string `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone string `gorm:"column:phone;type:varchar(20);not null" json:"phone"`
}

func (User) TableName() string {
	return "booking.users"
}

// DeviceToken is a push-notification registration for a user's device.
// Booking confirmations and cancellations are delivered through these.
type DeviceToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`

	UserID uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Value  string    `gorm:"column:value;type:text;uniqueIndex" json:"value"`
}

func (DeviceToken) TableName() string {
	return "booking.device_tokens"
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	SaveDeviceToken(ctx context.Context, t *DeviceToken) error
	DeviceTokens(ctx context.Context, userID uuid.UUID) ([]string, error)
}

type AuditAction string

const (
	ActionCreate AuditAction = "create"
	ActionRead   AuditAction = "read"
	ActionUpdate AuditAction = "update"
	ActionUnlock AuditAction = "unlock"
)

// AuditLog records who did what to which booking resource. Admin schedule
// and cancel actions always land here with the acting user id.
type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OccurredAt time.Time `gorm:"autoCreateTime;index"`

	// Who
	ActorID   string `gorm:"column:actor_id;type:varchar(50);index"`
	IPAddress string `gorm:"column:ip_address;type:varchar(45)"` // Supports IPv6

	// What
	Action       AuditAction `gorm:"column:action;type:varchar(20);not null;index"`
	ResourceType string      `gorm:"column:resource_type;type:varchar(50);not null;index"`
	ResourceID   string      `gorm:"column:resource_id;type:varchar(50);index"`

	Changes string `gorm:"column:changes;type:jsonb"`
}

func (AuditLog) TableName() string {
	return "audit.logs"
}

// NormalizeEmail lowercases and trims an email for uniqueness comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
