// Package domain contains persistence models for API request logging.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// RequestLog records a single API call. Rows are append-only.
type RequestLog struct {
	ID         snowflake.ID      `gorm:"primaryKey"`
	UserID     snowflake.ID      `gorm:"not null;index:idx_request_logs_user_created,priority:1"`
	Action     string            `gorm:"type:text;not null"`
	StatusCode int               `gorm:"not null"`
	Success    bool              `gorm:"not null"`
	Error      string            `gorm:"type:text"`
	Metadata   datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt  time.Time         `gorm:"not null;index:idx_request_logs_user_created,priority:2"`
}

// TableName sets the database table name.
func (RequestLog) TableName() string { return "request_logs" }
