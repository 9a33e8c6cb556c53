package workflow

import (
	"context"

	"github.com/LavaJover/shvark-refund-service/internal/domain"
)

// CreditWallet pays a completed refund into the buyer's wallet when the
// refund method says so. Any failure aborts the surrounding transaction.
func CreditWallet(ctx context.Context, wallet domain.WalletGateway, step *Step) error {
	if wallet == nil {
		return nil
	}
	refund := step.Refund
	method := refund.FinalRefundMethod
	if method == "" {
		method = refund.BuyerPreferredRefundMethod
	}
	if !method.PaysToWallet() {
		return nil
	}
	amount := step.Parties.Order.TotalAmount
	if refund.AwardedAmount != nil {
		amount = *refund.AwardedAmount
	}
	if !amount.IsPositive() {
		return nil
	}
	return wallet.CreditRefund(ctx, domain.WalletCredit{
		UserID:    refund.RequestedBy,
		RefundID:  refund.ID,
		OrderID:   refund.OrderID,
		Amount:    amount,
		Reference: "refund:" + refund.ID,
	})
}
