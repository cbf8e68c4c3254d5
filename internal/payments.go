package internal

import (
	"abcpay/config"
	"abcpay/entity"
	"abcpay/services"
	"context"
	"fmt"
)

// Payments orchestrates the payment transaction pipeline against the bank's
// aggregated payment platform: field mapping, signing, transport, response
// normalization and, for the wallet SDK channel, parameter derivation.
//
// Each intent is processed as an independent unit of work; beyond the
// read-only configuration and the pooled HTTP client there is no state
// shared between in-flight requests, and no stage retries automatically.
type Payments struct {
	conf      *config.Config
	database  services.Database
	logger    services.LogHandler
	signer    *RequestSigner
	transport *Transport
	wallet    *WalletDeriver
}

func NewPayments(conf *config.Config) *Payments {
	return &Payments{
		conf:      conf,
		signer:    NewRequestSigner(conf),
		transport: NewTransport(conf),
		wallet:    NewWalletDeriver(conf),
	}
}

func (p *Payments) SetDatabase(database services.Database) {
	p.database = database
}

func (p *Payments) SetLogger(logger services.LogHandler) {
	p.logger = logger
	p.signer.SetLogger(logger)
	p.wallet.SetLogger(logger)
}

// SetPayloadSigner installs the bank's certificate signing transform.
func (p *Payments) SetPayloadSigner(signer services.PayloadSigner) {
	p.signer.SetPayloadSigner(signer)
}

// ProcessPayment runs the full pipeline for one payment intent. Every stage
// fault surfaces as a failure-shaped result; no error escapes to the caller.
func (p *Payments) ProcessPayment(ctx context.Context, intent *entity.PaymentIntent, channel entity.Channel) *entity.CanonicalResult {
	p.logger.Info(fmt.Sprintf("process payment: order %s, amount %s, type %s",
		intent.OrderNo, intent.OrderAmount, channel.TrxType()))

	fields := BuildFieldSet(intent, channel, p.conf.MerchantId())
	result := p.execute(ctx, fields)
	if result.OrderNo == "" {
		result.OrderNo = intent.OrderNo
	}

	p.logger.Info(fmt.Sprintf("payment complete: order %s, code %s", intent.OrderNo, result.ResponseCode))
	return result
}

// ProcessWalletPayment runs the pipeline on the wallet SDK channel and, on
// success, derives the signed SDK parameter bundle for the client app.
func (p *Payments) ProcessWalletPayment(ctx context.Context, intent *entity.PaymentIntent) *entity.WalletSdkParameters {
	result := p.ProcessPayment(ctx, intent, entity.ChannelWalletSDK)
	if !result.IsSuccess() {
		return &entity.WalletSdkParameters{
			IsSuccess:    false,
			ErrorCode:    result.ResponseCode,
			ErrorMessage: result.ResponseMessage,
			OrderNo:      intent.OrderNo,
		}
	}
	return p.wallet.Derive(result, intent)
}

// QueryOrder checks order state through the reduced query pipeline. Orders
// abandoned at the transport step have unknown bank-side state and are
// resolved here, never assumed failed.
func (p *Payments) QueryOrder(ctx context.Context, orderNo string) *entity.CanonicalResult {
	p.logger.Info(fmt.Sprintf("query order %s", orderNo))

	fields := BuildQueryFieldSet(orderNo, p.conf.MerchantId())
	result := p.execute(ctx, fields)
	if result.OrderNo == "" {
		result.OrderNo = orderNo
	}
	return result
}

// Notify accepts the bank's asynchronous payment result callback and stores
// the normalized body for audit.
//
// TODO: verify the callback signature per the bank's published callback
// signing scheme before trusting the body.
func (p *Payments) Notify(ctx context.Context, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty notification body")
	}
	p.logger.Info(fmt.Sprintf("payment notification: %s", string(data)))

	result := ParseResponse(string(data))
	p.saveResult(ctx, result)
	return nil
}

// execute signs, sends and normalizes a prepared field set. A transport
// failure short-circuits: the normalizer is not invoked and the result
// carries the reserved network code with no raw response text.
func (p *Payments) execute(ctx context.Context, fields *entity.FieldSet) *entity.CanonicalResult {
	payload, err := p.signer.Sign(fields)
	if err != nil {
		p.logger.Error("sign request", err)
		return &entity.CanonicalResult{
			ResponseCode:    entity.CodeSystemError,
			ResponseMessage: fmt.Sprintf("signing error: %v", err),
		}
	}

	raw, err := p.transport.Send(ctx, payload)
	if err != nil {
		p.logger.Error("send request", err)
		return &entity.CanonicalResult{
			ResponseCode:    entity.CodeNetworkError,
			ResponseMessage: fmt.Sprintf("network error: %v", err),
		}
	}

	result := ParseResponse(raw)
	p.saveResult(ctx, result)
	return result
}

func (p *Payments) saveResult(ctx context.Context, result *entity.CanonicalResult) {
	if p.database == nil {
		return
	}
	if err := p.database.SavePaymentResult(ctx, result); err != nil {
		p.logger.Error("save payment result", err)
	}
}
