package dto

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type CheckoutRequest struct {
	Credits int `json:"credits" validate:"required,min=1,max=100"`
}

func (r *CheckoutRequest) Validate() error {
	return validate.Struct(r)
}

type CheckoutResponse struct {
	OrderID     string `json:"order_id"`
	SnapToken   string `json:"snap_token"`
	RedirectURL string `json:"redirect_url"`
	GrossAmount int64  `json:"gross_amount"`
}
