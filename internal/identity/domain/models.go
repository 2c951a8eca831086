// Package domain contains persistence models for users and linked accounts.
package domain

import (
	"github.com/bwmarrin/snowflake"
)

// User is a registered account holder. The schema records no creation
// timestamp, so growth metrics approximate registration history.
type User struct {
	ID    snowflake.ID `gorm:"primaryKey"`
	Name  string       `gorm:"type:text;not null"`
	Email string       `gorm:"type:text;not null;uniqueIndex"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

// Account links a user to an OAuth provider, one row per provider.
type Account struct {
	ID                snowflake.ID `gorm:"primaryKey"`
	UserID            snowflake.ID `gorm:"not null;index"`
	Provider          string       `gorm:"type:text;not null;uniqueIndex:ux_accounts_provider_account,priority:1"`
	ProviderAccountID string       `gorm:"type:text;not null;uniqueIndex:ux_accounts_provider_account,priority:2"`
}

// TableName sets the database table name.
func (Account) TableName() string { return "accounts" }
