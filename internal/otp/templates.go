package otp

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Message templates registered with the SMS provider for DLT compliance.
// The wording must stay in sync with the approved templates, so resist the
// urge to fix the grammar.

// PaymentOTPMessage is sent to the retailer when a collection OTP is issued.
func PaymentOTPMessage(code string, amount decimal.Decimal, lineWorkerName, wholesalerName string) string {
	return fmt.Sprintf(
		"Your OTP is %s. As per your request %s Line worker collecting %s Amount behalf of %s wholesaler. IF you wish to Make this payment - Your OTP is %s",
		code, lineWorkerName, amount.String(), wholesalerName, code,
	)
}

// RetailerConfirmationMessage is sent to the retailer after a payment commits.
func RetailerConfirmationMessage(amount decimal.Decimal, lineWorkerName, wholesalerName string) string {
	return fmt.Sprintf(
		"You payment of %s is successfully paid to %s line worker of %s Wholesaler.",
		amount.String(), lineWorkerName, wholesalerName,
	)
}

// WholesalerConfirmationMessage is sent to the tenant admin after a payment commits.
func WholesalerConfirmationMessage(lineWorkerName string, amount decimal.Decimal, retailerName string) string {
	return fmt.Sprintf(
		"Your %s Line worker collected %s amount from %s retailer. Payment status successful.",
		lineWorkerName, amount.String(), retailerName,
	)
}
