package internal

import (
	"abcpay/config"
	"abcpay/entity"
	"abcpay/services"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"gitee.com/golang-module/dongle"
	"strconv"
	"strings"
	"time"
)

const (
	nonceChars  = "abcdefghijklmnopqrstuvwxyz0123456789"
	nonceLength = 32

	signTypeMD5    = "MD5"
	signTypeSHA256 = "SHA256"

	prepayTokenField = "prepay_id"

	errCodePrepayToken = "PREPAY_ID_ERROR"

	defaultGoodsDescription = "Purchase"
)

// WalletDeriver builds the signed parameter bundle the merchant's client app
// needs to invoke the wallet SDK. Its canonicalization and hashing rules are
// fixed by the SDK's verification routine and are independent of the outer
// transaction signature. MD5 and HMAC-SHA256 here are externally mandated
// legacy requirements, not a security boundary this service controls.
type WalletDeriver struct {
	appId     string
	apiSecret string
	signType  string
	logger    services.LogHandler
}

func NewWalletDeriver(conf *config.Config) *WalletDeriver {
	signType := strings.ToUpper(conf.Wallet.SignType)
	if signType != signTypeSHA256 {
		signType = signTypeMD5
	}
	return &WalletDeriver{
		appId:     conf.Wallet.AppId,
		apiSecret: conf.Wallet.ApiSecret,
		signType:  signType,
	}
}

func (d *WalletDeriver) SetLogger(logger services.LogHandler) {
	d.logger = logger
}

// Derive assembles and signs SDK parameters from a successful canonical
// result. When no prepay token can be recovered it returns a failure-shaped
// bundle; no partial signature is ever produced.
func (d *WalletDeriver) Derive(result *entity.CanonicalResult, intent *entity.PaymentIntent) *entity.WalletSdkParameters {
	token := extractPrepayToken(result)
	if token == "" {
		if d.logger != nil {
			d.logger.Warn(fmt.Sprintf("no prepay token for order %s", intent.OrderNo))
		}
		return &entity.WalletSdkParameters{
			IsSuccess:    false,
			ErrorCode:    errCodePrepayToken,
			ErrorMessage: "payment platform returned no usable prepay token",
			OrderNo:      intent.OrderNo,
		}
	}

	timeStamp := strconv.FormatInt(time.Now().Unix(), 10)
	nonce := NonceString()
	pkg := fmt.Sprintf("prepay_id=%s", token)

	return &entity.WalletSdkParameters{
		AppId:            d.appId,
		TimeStamp:        timeStamp,
		NonceStr:         nonce,
		Package:          pkg,
		SignType:         d.signType,
		PaySign:          SignSdkParameters(d.appId, nonce, pkg, d.signType, timeStamp, d.apiSecret),
		OrderNo:          intent.OrderNo,
		TrxId:            result.TrxId,
		Amount:           intent.OrderAmount,
		GoodsDescription: goodsDescription(intent),
		IsSuccess:        true,
	}
}

// SignSdkParameters computes the SDK signature over the canonical parameter
// string. The field order in the canonical string is fixed by the SDK's
// verification routine and must match exactly.
func SignSdkParameters(appId, nonce, pkg, signType, timeStamp, secret string) string {
	canonical := fmt.Sprintf("appId=%s&nonceStr=%s&package=%s&signType=%s&timeStamp=%s",
		appId, nonce, pkg, signType, timeStamp)
	if strings.EqualFold(signType, signTypeSHA256) {
		return dongle.Encrypt.FromString(canonical).ByHmacSha256(secret).ToHexString()
	}
	return dongle.Encrypt.FromString(canonical).ByMd5().ToHexString()
}

// extractPrepayToken reads the prepay token from the raw bank reply, falling
// back to the transaction id when the reply carries none.
func extractPrepayToken(result *entity.CanonicalResult) string {
	if result.RawResponse != "" {
		var reply map[string]any
		if err := json.Unmarshal([]byte(result.RawResponse), &reply); err == nil {
			if token, ok := reply[prepayTokenField].(string); ok && token != "" {
				return token
			}
		}
	}
	return result.TrxId
}

func goodsDescription(intent *entity.PaymentIntent) string {
	if intent.OrderDesc != "" {
		return intent.OrderDesc
	}
	if intent.ProductName != "" {
		return intent.ProductName
	}
	return defaultGoodsDescription
}

// NonceString returns a fresh 32-character nonce drawn from [a-z0-9].
func NonceString() string {
	buf := make([]byte, nonceLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is effectively fatal for signing; a timestamp
		// nonce keeps the shape valid while staying unique per call.
		return fmt.Sprintf("%032x", time.Now().UnixNano())
	}
	for i, b := range buf {
		buf[i] = nonceChars[int(b)%len(nonceChars)]
	}
	return string(buf)
}
