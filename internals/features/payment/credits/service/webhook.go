package service

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	"github.com/OVECJOE/sos/internals/configs"
	creditModel "github.com/OVECJOE/sos/internals/features/payment/credits/model"
	userModel "github.com/OVECJOE/sos/internals/features/users/user/model"
)

// VerifySignature checks the Midtrans notification signature:
// sha512(order_id + status_code + gross_amount + server_key).
func VerifySignature(orderID, statusCode, grossAmount, signatureKey string) bool {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + configs.MidtransServerKey))
	return hex.EncodeToString(sum[:]) == signatureKey
}

// HandleCreditPurchaseWebhook is called when a Midtrans notification arrives.
// On settlement it flips the purchase pending → paid (CAS, so replayed
// notifications credit the user only once), increments the user's credits and
// appends the CREDIT_PURCHASE ledger entry — all in one transaction.
func HandleCreditPurchaseWebhook(db *gorm.DB, body map[string]interface{}) error {
	orderID, ok1 := body["order_id"].(string)
	status, ok2 := body["transaction_status"].(string)
	if !ok1 || !ok2 {
		log.Println("[ERROR] Incomplete webhook payload:", body)
		return fmt.Errorf("invalid payload")
	}

	log.Println("📄 Order ID:", orderID)
	log.Println("📌 Transaction Status:", status)

	var purchase creditModel.CreditPurchaseModel
	if err := db.Where("credit_purchase_order_id = ?", orderID).First(&purchase).Error; err != nil {
		log.Println("[ERROR] Purchase not found:", err)
		return fmt.Errorf("purchase with order_id %s not found", orderID)
	}

	switch status {
	case "capture", "settlement":
		return settlePurchase(db, &purchase)
	case "expire":
		return markPurchase(db, &purchase, creditModel.CreditPurchaseStatusExpired)
	case "cancel", "deny":
		return markPurchase(db, &purchase, creditModel.CreditPurchaseStatusCanceled)
	default:
		log.Println("[INFO] Unhandled transaction status:", status)
		return nil
	}
}

func settlePurchase(db *gorm.DB, purchase *creditModel.CreditPurchaseModel) error {
	return db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		res := tx.Model(&creditModel.CreditPurchaseModel{}).
			Where("credit_purchase_id = ? AND credit_purchase_status = ?",
				purchase.ID, creditModel.CreditPurchaseStatusPending).
			Updates(map[string]interface{}{
				"credit_purchase_status":  creditModel.CreditPurchaseStatusPaid,
				"credit_purchase_paid_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// replayed notification; credits were already granted
			return nil
		}

		if err := tx.Model(&userModel.UserModel{}).
			Where("user_id = ?", purchase.UserID).
			Update("user_credits", gorm.Expr("user_credits + ?", purchase.Credits)).Error; err != nil {
			return err
		}

		meta, _ := sonic.Marshal(map[string]interface{}{
			"order_id":     purchase.OrderID,
			"gross_amount": purchase.GrossAmount,
		})
		ledger := creditModel.TransactionModel{
			UserID:      purchase.UserID,
			Type:        creditModel.TransactionTypeCreditPurchase,
			Amount:      purchase.Credits,
			Description: fmt.Sprintf("Purchased %d credits via Midtrans", purchase.Credits),
			Metadata:    meta,
		}
		return tx.Create(&ledger).Error
	})
}

func markPurchase(db *gorm.DB, purchase *creditModel.CreditPurchaseModel, status creditModel.CreditPurchaseStatus) error {
	return db.Model(&creditModel.CreditPurchaseModel{}).
		Where("credit_purchase_id = ? AND credit_purchase_status = ?",
			purchase.ID, creditModel.CreditPurchaseStatusPending).
		Update("credit_purchase_status", status).Error
}
