package services

import (
	"abcpay/entity"
	"context"
)

// Database is the optional audit store for log records and normalized
// payment results. The pipeline works without one.
type Database interface {
	WriteLogMessage(data Data) error

	SavePaymentResult(ctx context.Context, result *entity.CanonicalResult) error
	GetPaymentResult(ctx context.Context, orderNo string) (*entity.CanonicalResult, error)
}

type Data interface {
	DataType() string
}
