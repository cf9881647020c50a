package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreditPurchaseStatus string

const (
	CreditPurchaseStatusPending  CreditPurchaseStatus = "pending"
	CreditPurchaseStatusPaid     CreditPurchaseStatus = "paid"
	CreditPurchaseStatusExpired  CreditPurchaseStatus = "expired"
	CreditPurchaseStatusCanceled CreditPurchaseStatus = "canceled"
)

/* =========================
   Model: credit_purchases
========================= */

// CreditPurchaseModel tracks one Midtrans checkout. Credits land on the user
// only when the gateway notification flips status pending → paid.
type CreditPurchaseModel struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;column:credit_purchase_id" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index;column:credit_purchase_user_id" json:"user_id"`

	OrderID     string               `gorm:"size:64;unique;not null;column:credit_purchase_order_id" json:"order_id"`
	Credits     int                  `gorm:"not null;column:credit_purchase_credits" json:"credits"`
	GrossAmount int64                `gorm:"not null;column:credit_purchase_gross_amount" json:"gross_amount"`
	Status      CreditPurchaseStatus `gorm:"type:varchar(20);not null;default:'pending';column:credit_purchase_status" json:"status"`
	SnapToken   *string              `gorm:"type:text;column:credit_purchase_snap_token" json:"snap_token,omitempty"`
	PaidAt      *time.Time           `gorm:"column:credit_purchase_paid_at" json:"paid_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;column:credit_purchase_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;column:credit_purchase_updated_at" json:"updated_at"`
}

func (CreditPurchaseModel) TableName() string {
	return "credit_purchases"
}

func (p *CreditPurchaseModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = CreditPurchaseStatusPending
	}
	return nil
}
