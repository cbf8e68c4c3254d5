package services

import (
	"abcpay/entity"
	"context"
)

// Payments is the payment transaction pipeline. Payment methods never return
// errors: every stage fault surfaces as a failure-shaped result value.
type Payments interface {
	ProcessPayment(ctx context.Context, intent *entity.PaymentIntent, channel entity.Channel) *entity.CanonicalResult
	ProcessWalletPayment(ctx context.Context, intent *entity.PaymentIntent) *entity.WalletSdkParameters
	QueryOrder(ctx context.Context, orderNo string) *entity.CanonicalResult
	Notify(ctx context.Context, data []byte) error
}
