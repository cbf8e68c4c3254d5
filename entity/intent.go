// Package entity defines data models for the abcpay payment adapter.
package entity

// Channel selects which transaction type, field subset and downstream
// behavior applies to a payment intent.
type Channel int

const (
	// ChannelQRCode is scan-to-pay with a wallet QR code.
	ChannelQRCode Channel = iota
	// ChannelEWallet is a direct e-wallet payment with a token.
	ChannelEWallet
	// ChannelWalletSDK is a native in-app wallet payment; the client app
	// invokes the wallet SDK with parameters derived from the bank reply.
	ChannelWalletSDK
	// ChannelQuery is an order status lookup.
	ChannelQuery
)

// TrxType returns the wire transaction type tag for the channel.
func (c Channel) TrxType() string {
	switch c {
	case ChannelQRCode:
		return "UDCAppQRCodePayReq"
	case ChannelEWallet:
		return "EWalletPayReq"
	case ChannelWalletSDK:
		return "WeChatAppPayReq"
	case ChannelQuery:
		return "OrderQuery"
	}
	return ""
}

func (c Channel) String() string {
	return c.TrxType()
}

// PaymentIntent is the merchant-supplied, channel-agnostic payment order.
// OrderNo and OrderAmount are always required; an absent optional field is
// omitted from the wire payload, never sent as an empty string.
type PaymentIntent struct {
	// OrderNo is the merchant-unique order number.
	OrderNo string `json:"OrderNo"`
	// OrderAmount is a string-encoded amount in minor units (cents).
	OrderAmount string `json:"OrderAmount"`
	// OrderDesc is a free-form order description.
	OrderDesc string `json:"OrderDesc,omitempty"`
	// OrderValidTime bounds order validity, format yyyyMMddHHmmss.
	OrderValidTime string `json:"OrderValidTime,omitempty"`
	// PayQRCode carries the scanned wallet QR code content.
	PayQRCode string `json:"PayQRCode,omitempty"`
	// OrderTime is the order creation time, format yyyyMMddHHmmss.
	// When empty the mapper stamps the current time.
	OrderTime string `json:"OrderTime,omitempty"`
	// OrderAbstract is a short order summary.
	OrderAbstract string `json:"OrderAbstract,omitempty"`
	// ResultNotifyURL receives the asynchronous payment result callback.
	ResultNotifyURL string `json:"ResultNotifyURL,omitempty"`
	ProductName     string `json:"ProductName,omitempty"`
	PaymentType     string `json:"PaymentType,omitempty"`
	PaymentLinkType string `json:"PaymentLinkType,omitempty"`
	MerchantRemarks string `json:"MerchantRemarks,omitempty"`
	NotifyType      string `json:"NotifyType,omitempty"`
	// Token is the e-wallet payment token.
	Token string `json:"Token,omitempty"`

	// Wallet SDK channel fields.
	OpenId        string `json:"OpenId,omitempty"`
	ClientIP      string `json:"ClientIP,omitempty"`
	SceneInfo     string `json:"SceneInfo,omitempty"`
	GoodsId       string `json:"GoodsId,omitempty"`
	GoodsQuantity *int   `json:"GoodsQuantity,omitempty"`
	Attach        string `json:"Attach,omitempty"`
	Detail        string `json:"Detail,omitempty"`
}
