// Package domain contains persistence models for chat message activity.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// MessageLog records a single sent message. Rows are append-only.
type MessageLog struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	UserID    snowflake.ID `gorm:"not null;index:idx_message_logs_user_created,priority:1"`
	CreatedAt time.Time    `gorm:"not null;index:idx_message_logs_user_created,priority:2"`
}

// TableName sets the database table name.
func (MessageLog) TableName() string { return "message_logs" }
