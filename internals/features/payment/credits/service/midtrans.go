package service

import (
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	creditModel "github.com/OVECJOE/sos/internals/features/payment/credits/model"
)

// CreditPriceIDR is the gross price of a single meeting credit.
const CreditPriceIDR int64 = 10000

var SnapClient snap.Client

// Call at app bootstrap (sandbox)
func InitMidtrans(serverKey string) {
	SnapClient.New(serverKey, midtrans.Sandbox)
}

// GenerateSnapToken creates the Snap token + redirect_url for a pending purchase.
func GenerateSnapToken(p creditModel.CreditPurchaseModel, name, email string) (string, string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  p.OrderID,
			GrossAmt: p.GrossAmount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: name,
			Email: email,
		},
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", "", err
	}

	return resp.Token, resp.RedirectURL, nil
}
