package controller

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/OVECJOE/sos/internals/features/payment/credits/dto"
	creditModel "github.com/OVECJOE/sos/internals/features/payment/credits/model"
	creditService "github.com/OVECJOE/sos/internals/features/payment/credits/service"
	userModel "github.com/OVECJOE/sos/internals/features/users/user/model"
	helper "github.com/OVECJOE/sos/internals/helpers"
)

/* ========================================================
   Controller
======================================================== */

type CreditsController struct {
	DB *gorm.DB
}

func NewCreditsController(db *gorm.DB) *CreditsController {
	return &CreditsController{DB: db}
}

// POST /api/u/credits/checkout
func (ctrl *CreditsController) Checkout(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var body dto.CheckoutRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := body.Validate(); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var user userModel.UserModel
	if err := ctrl.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch user")
	}

	purchase := creditModel.CreditPurchaseModel{
		UserID:      userID,
		OrderID:     fmt.Sprintf("CREDITS-%d", time.Now().UnixNano()),
		Credits:     body.Credits,
		GrossAmount: int64(body.Credits) * creditService.CreditPriceIDR,
		Status:      creditModel.CreditPurchaseStatusPending,
	}
	if err := ctrl.DB.Create(&purchase).Error; err != nil {
		log.Println("[ERROR] Failed to create credit purchase:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create purchase")
	}

	token, redirectURL, err := creditService.GenerateSnapToken(purchase, user.UserName, user.Email)
	if err != nil {
		log.Println("[ERROR] GenerateSnapToken failed:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create payment token")
	}

	if err := ctrl.DB.Model(&purchase).Update("credit_purchase_snap_token", &token).Error; err != nil {
		log.Println("[ERROR] Failed to store snap token:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store payment token")
	}

	return helper.JsonCreated(c, "Checkout created", dto.CheckoutResponse{
		OrderID:     purchase.OrderID,
		SnapToken:   token,
		RedirectURL: redirectURL,
		GrossAmount: purchase.GrossAmount,
	})
}

// POST /api/credits/notification — Midtrans webhook (public, signature-checked)
func (ctrl *CreditsController) Notification(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}

	orderID, _ := body["order_id"].(string)
	statusCode, _ := body["status_code"].(string)
	grossAmount, _ := body["gross_amount"].(string)
	signatureKey, _ := body["signature_key"].(string)
	if !creditService.VerifySignature(orderID, statusCode, grossAmount, signatureKey) {
		log.Println("[WARNING] Webhook signature mismatch for order:", orderID)
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid signature")
	}

	if err := creditService.HandleCreditPurchaseWebhook(ctrl.DB, body); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", nil)
}

// GET /api/u/credits/transactions — the caller's own ledger, newest first
func (ctrl *CreditsController) ListTransactions(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&creditModel.TransactionModel{}).Where("transaction_user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count transactions")
	}

	var transactions []creditModel.TransactionModel
	if err := q.Order("transaction_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&transactions).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch transactions")
	}

	return helper.JsonList(c, "OK", transactions, helper.BuildPagination(total, paging, len(transactions)))
}
