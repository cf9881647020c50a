package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =========================
   Enums
========================= */

type TransactionType string

const (
	TransactionTypeCreditPurchase TransactionType = "CREDIT_PURCHASE"
	TransactionTypeCreditGrant    TransactionType = "CREDIT_GRANT"
	TransactionTypeMeetingCost    TransactionType = "MEETING_COST"
	TransactionTypeRefund         TransactionType = "REFUND"
	TransactionTypeScorePenalty   TransactionType = "SCORE_PENALTY"
)

/* =========================
   Model: transactions
========================= */

// TransactionModel is the append-only ledger of score/credit-affecting events.
// Rows are never updated or deleted.
type TransactionModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;column:transaction_id" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index;column:transaction_user_id" json:"user_id"`
	MeetingID *uuid.UUID `gorm:"type:uuid;index;column:transaction_meeting_id" json:"meeting_id,omitempty"`

	Type        TransactionType `gorm:"type:varchar(20);not null;column:transaction_type" json:"type"`
	Amount      int             `gorm:"not null;column:transaction_amount" json:"amount"`
	Description string          `gorm:"type:text;not null;column:transaction_description" json:"description"`
	Metadata    datatypes.JSON  `gorm:"column:transaction_metadata" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;column:transaction_created_at" json:"created_at"`
}

func (TransactionModel) TableName() string {
	return "transactions"
}

func (t *TransactionModel) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
