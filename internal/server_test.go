package internal

import (
	"abcpay/entity"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// paymentsStub satisfies services.Payments and records what the server asked.
type paymentsStub struct {
	result      *entity.CanonicalResult
	wallet      *entity.WalletSdkParameters
	lastChannel entity.Channel
	lastOrderNo string
	notified    []byte
}

func (s *paymentsStub) ProcessPayment(_ context.Context, intent *entity.PaymentIntent, channel entity.Channel) *entity.CanonicalResult {
	s.lastChannel = channel
	s.lastOrderNo = intent.OrderNo
	return s.result
}

func (s *paymentsStub) ProcessWalletPayment(_ context.Context, intent *entity.PaymentIntent) *entity.WalletSdkParameters {
	s.lastOrderNo = intent.OrderNo
	return s.wallet
}

func (s *paymentsStub) QueryOrder(_ context.Context, orderNo string) *entity.CanonicalResult {
	s.lastOrderNo = orderNo
	return s.result
}

func (s *paymentsStub) Notify(_ context.Context, data []byte) error {
	s.notified = data
	return nil
}

func newTestServer(stub *paymentsStub) *Server {
	server := NewServer(newTestConfig())
	server.SetLogger(NewLogger("test", false, nil))
	server.SetPaymentsService(stub)
	return server
}

func serve(server *Server, method, path, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	server.httpServer.Handler.ServeHTTP(recorder, request)
	return recorder
}

func TestServer_QRCodePayment(t *testing.T) {
	stub := &paymentsStub{result: &entity.CanonicalResult{ResponseCode: "0000", ResponseMessage: "OK"}}
	server := newTestServer(stub)

	recorder := serve(server, http.MethodPost, "/api/payment/qrcode", `{"OrderNo":"T1","OrderAmount":"100"}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, entity.ChannelQRCode, stub.lastChannel)
	assert.Equal(t, "T1", stub.lastOrderNo)

	var result entity.CanonicalResult
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
	assert.True(t, result.IsSuccess())
}

func TestServer_EWalletPayment(t *testing.T) {
	stub := &paymentsStub{result: &entity.CanonicalResult{ResponseCode: "EC01", ResponseMessage: "declined"}}
	server := newTestServer(stub)

	recorder := serve(server, http.MethodPost, "/api/payment/ewallet", `{"OrderNo":"T2","OrderAmount":"100"}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, entity.ChannelEWallet, stub.lastChannel)
}

func TestServer_PaymentRejectsMissingFields(t *testing.T) {
	stub := &paymentsStub{}
	server := newTestServer(stub)

	recorder := serve(server, http.MethodPost, "/api/payment/qrcode", `{"OrderNo":"T1"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = serve(server, http.MethodPost, "/api/payment/qrcode", `not json`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestServer_WalletPayment(t *testing.T) {
	stub := &paymentsStub{wallet: &entity.WalletSdkParameters{IsSuccess: true, Package: "prepay_id=p1"}}
	server := newTestServer(stub)

	recorder := serve(server, http.MethodPost, "/api/payment/wechat", `{"OrderNo":"T3","OrderAmount":"100"}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
	var parameters entity.WalletSdkParameters
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &parameters))
	assert.Equal(t, "prepay_id=p1", parameters.Package)
}

func TestServer_WalletPaymentParamError(t *testing.T) {
	server := newTestServer(&paymentsStub{})

	recorder := serve(server, http.MethodPost, "/api/payment/wechat", `{"OrderNo":"T3"}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	var parameters entity.WalletSdkParameters
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &parameters))
	assert.False(t, parameters.IsSuccess)
	assert.Equal(t, "PARAM_ERROR", parameters.ErrorCode)
}

func TestServer_QueryOrder(t *testing.T) {
	stub := &paymentsStub{result: &entity.CanonicalResult{ResponseCode: "0000", PayStatus: "PAID"}}
	server := newTestServer(stub)

	recorder := serve(server, http.MethodGet, "/api/payment/query/T1001", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "T1001", stub.lastOrderNo)
}

func TestServer_Notify(t *testing.T) {
	stub := &paymentsStub{}
	server := newTestServer(stub)

	recorder := serve(server, http.MethodPost, "/api/payment/notify", `{"RspCode":"0000"}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"success":true,"message":"SUCCESS"}`, recorder.Body.String())
	assert.Equal(t, `{"RspCode":"0000"}`, string(stub.notified))
}

func TestServer_HealthAndPing(t *testing.T) {
	server := newTestServer(&paymentsStub{})

	recorder := serve(server, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	var health map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health["status"])

	recorder = serve(server, http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "pong", recorder.Body.String())
}
