// Package domain contains the credit balance persistence model.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// UserCredit holds a user's current credit balance, one row per user.
// The balance is mutated on grant and spend; this service only reads it.
type UserCredit struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	UserID    snowflake.ID `gorm:"not null;uniqueIndex"`
	Balance   int64        `gorm:"not null;default:0"`
	UpdatedAt time.Time    `gorm:"not null"`
}

// TableName sets the database table name.
func (UserCredit) TableName() string { return "user_credits" }
