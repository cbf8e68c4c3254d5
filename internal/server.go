package internal

import (
	"abcpay/config"
	"abcpay/entity"
	"abcpay/services"
	"encoding/json"
	"fmt"
	"github.com/julienschmidt/httprouter"
	"io"
	"net"
	"net/http"
	"time"
)

const (
	qrCodePayment    = "/api/payment/qrcode"
	eWalletPayment   = "/api/payment/ewallet"
	walletSdkPayment = "/api/payment/wechat"
	orderQuery       = "/api/payment/query/:order_no"
	paymentNotify    = "/api/payment/notify"
	healthCheck      = "/health"
	pingCheck        = "/ping"
	rootInfo         = "/"
)

// Server is the merchant-facing HTTP front door. It maps channel endpoints
// onto pipeline calls and carries no payment logic of its own.
type Server struct {
	conf        *config.Config
	httpServer  *http.Server
	payments    services.Payments
	logger      services.LogHandler
	timeStarted time.Time
}

func NewServer(conf *config.Config) *Server {

	server := Server{
		conf:        conf,
		timeStarted: time.Now(),
	}

	// register itself as a router for httpServer handler
	router := httprouter.New()
	server.Register(router)
	server.httpServer = &http.Server{
		Handler: router,
	}

	return &server
}

func (s *Server) Register(router *httprouter.Router) {
	router.POST(qrCodePayment, s.qrCodePay)
	router.POST(eWalletPayment, s.eWalletPay)
	router.POST(walletSdkPayment, s.walletSdkPay)
	router.GET(orderQuery, s.queryOrder)
	router.POST(paymentNotify, s.paymentNotify)
	router.GET(healthCheck, s.health)
	router.GET(pingCheck, s.ping)
	router.GET(rootInfo, s.root)
}

func (s *Server) SetPaymentsService(payments services.Payments) {
	s.payments = payments
}

func (s *Server) SetLogger(logger services.LogHandler) {
	s.logger = logger
}

func (s *Server) Start() error {
	if s.conf == nil {
		return fmt.Errorf("configuration not loaded")
	}

	serverAddress := fmt.Sprintf("%s:%s", s.conf.Listen.BindIP, s.conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	if s.conf.Listen.TLS {
		s.logger.Info(fmt.Sprintf("starting https TLS on %s", serverAddress))
		err = s.httpServer.ServeTLS(listener, s.conf.Listen.CertFile, s.conf.Listen.KeyFile)
	} else {
		s.logger.Info(fmt.Sprintf("starting http on %s", serverAddress))
		err = s.httpServer.Serve(listener)
	}

	return err
}

func (s *Server) qrCodePay(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.channelPay(w, r, entity.ChannelQRCode)
}

func (s *Server) eWalletPay(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.channelPay(w, r, entity.ChannelEWallet)
}

func (s *Server) channelPay(w http.ResponseWriter, r *http.Request, channel entity.Channel) {
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	intent, ok := s.readIntent(w, r, reqID)
	if !ok {
		return
	}

	result := s.payments.ProcessPayment(ctx, intent, channel)
	if result.IsSuccess() {
		s.respondJSON(w, http.StatusOK, result)
	} else {
		s.respondJSON(w, http.StatusBadRequest, result)
	}
}

func (s *Server) walletSdkPay(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	intent, ok := s.decodeIntent(r)
	if !ok {
		s.logger.Warn(fmt.Sprintf("[%s] wallet pay: malformed request body", reqID))
		s.respondJSON(w, http.StatusBadRequest, &entity.WalletSdkParameters{
			IsSuccess:    false,
			ErrorCode:    "PARAM_ERROR",
			ErrorMessage: "malformed request body",
		})
		return
	}
	if intent.OrderNo == "" || intent.OrderAmount == "" {
		s.logger.Warn(fmt.Sprintf("[%s] wallet pay: missing order number or amount", reqID))
		s.respondJSON(w, http.StatusBadRequest, &entity.WalletSdkParameters{
			IsSuccess:    false,
			ErrorCode:    "PARAM_ERROR",
			ErrorMessage: "order number and amount are required",
			OrderNo:      intent.OrderNo,
		})
		return
	}

	parameters := s.payments.ProcessWalletPayment(ctx, intent)
	if parameters.IsSuccess {
		s.respondJSON(w, http.StatusOK, parameters)
	} else {
		s.respondJSON(w, http.StatusBadRequest, parameters)
	}
}

func (s *Server) queryOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	orderNo := ps.ByName("order_no")
	if orderNo == "" {
		s.logger.Warn(fmt.Sprintf("[%s] query: empty order number", reqID))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	result := s.payments.QueryOrder(ctx, orderNo)
	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) paymentNotify(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] payment notify: read body", reqID), err)
		s.respondJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "message": "FAIL"})
		return
	}

	if err = s.payments.Notify(ctx, body); err != nil {
		s.logger.Error(fmt.Sprintf("[%s] payment notify: process body", reqID), err)
		s.respondJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "message": "FAIL"})
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"success": true, "message": "SUCCESS"})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    int(time.Since(s.timeStarted).Seconds()),
	})
}

func (s *Server) ping(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("pong"))
}

func (s *Server) root(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"name":      "abcpay gateway",
		"version":   "1.0",
		"status":    "running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// readIntent decodes and validates the intent, answering the request itself
// when the body is unusable.
func (s *Server) readIntent(w http.ResponseWriter, r *http.Request, reqID string) (*entity.PaymentIntent, bool) {
	intent, ok := s.decodeIntent(r)
	if !ok {
		s.logger.Warn(fmt.Sprintf("[%s] malformed request body", reqID))
		s.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return nil, false
	}
	if intent.OrderNo == "" || intent.OrderAmount == "" {
		s.logger.Warn(fmt.Sprintf("[%s] missing order number or amount", reqID))
		s.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "order number and amount are required"})
		return nil, false
	}
	return intent, true
}

func (s *Server) decodeIntent(r *http.Request) (*entity.PaymentIntent, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, false
	}
	var intent entity.PaymentIntent
	if err = json.Unmarshal(body, &intent); err != nil {
		return nil, false
	}
	return &intent, true
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
