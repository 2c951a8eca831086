// Package domain contains persistence models for the payment pipeline.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Intent statuses.
const (
	IntentStatusPending   = "pending"
	IntentStatusCompleted = "completed"
	IntentStatusFailed    = "failed"
)

// Record statuses.
const (
	RecordStatusSucceeded = "succeeded"
	RecordStatusFailed    = "failed"
)

// PaymentIntent is created pending and transitions to completed or failed.
type PaymentIntent struct {
	ID                snowflake.ID `gorm:"primaryKey"`
	UserID            snowflake.ID `gorm:"not null;index:idx_payment_intents_user_created,priority:1"`
	Tier              string       `gorm:"type:text;not null"`
	CreditsToGrant    int64        `gorm:"not null"`
	AmountCents       int64        `gorm:"not null"`
	Status            string       `gorm:"type:text;not null"`
	ProviderPaymentID string       `gorm:"type:text;not null;index"`
	CreatedAt         time.Time    `gorm:"not null;index:idx_payment_intents_user_created,priority:2"`
	CompletedAt       *time.Time
}

// TableName sets the database table name.
func (PaymentIntent) TableName() string { return "payment_intents" }

// PaymentRecord is the append-only ledger entry for a settled charge,
// linked to its intent by provider payment id.
type PaymentRecord struct {
	ID                snowflake.ID `gorm:"primaryKey"`
	UserID            snowflake.ID `gorm:"not null;index:idx_payment_records_user_created,priority:1"`
	ProviderPaymentID string       `gorm:"type:text;not null;index"`
	Status            string       `gorm:"type:text;not null"`
	CreditsGranted    int64        `gorm:"not null"`
	AmountCents       int64        `gorm:"not null"`
	PaymentIntentID   snowflake.ID `gorm:"not null"`
	CreatedAt         time.Time    `gorm:"not null;index:idx_payment_records_user_created,priority:2"`
}

// TableName sets the database table name.
func (PaymentRecord) TableName() string { return "payment_records" }
