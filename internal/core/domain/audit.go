package domain

import "time"

// Audit actions recorded for account and catalog mutations.
const (
	AuditRegister       = "register"
	AuditLogin          = "login"
	AuditLoginFailed    = "login_failed"
	AuditPasswordChange = "password_change"
	AuditProfileUpdate  = "profile_update"
	AuditRoleChange     = "role_change"
	AuditUserDelete     = "user_delete"
	AuditCategoryWrite  = "category_write"
	AuditProductWrite   = "product_write"
)

// AuditEntry is an append-only record of a sensitive action. UserID is the
// acting (or targeted, for failed logins) account; zero when unknown.
type AuditEntry struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index"`
	Action    string    `json:"action" gorm:"size:64;not null"`
	Detail    string    `json:"detail,omitempty" gorm:"size:255"`
	CreatedAt time.Time `json:"created_at"`
}
