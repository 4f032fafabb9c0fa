package logs

import (
	"log"
	"time"

	"gorm.io/gorm"
)

const (
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// SystemLog is an application event row the superadmin console lists.
type SystemLog struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	TenantID *string `gorm:"type:uuid;index" json:"tenant_id,omitempty"`
	UserID   *uint   `gorm:"index" json:"user_id,omitempty"`

	Level   string `gorm:"type:varchar(10);not null;index" json:"level"`
	Source  string `gorm:"not null;index" json:"source"`
	Message string `gorm:"not null" json:"message"`

	CreatedAt time.Time `json:"created_at"`
}

// Record writes a log row, best effort. Log persistence must never fail a
// request.
func Record(db *gorm.DB, level, source, message string, tenantID *string, userID *uint) {
	row := SystemLog{
		TenantID: tenantID,
		UserID:   userID,
		Level:    level,
		Source:   source,
		Message:  message,
	}
	if err := db.Create(&row).Error; err != nil {
		log.Printf("failed to persist system log (%s/%s): %v", level, source, err)
	}
}
