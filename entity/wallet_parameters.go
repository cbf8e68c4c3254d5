package entity

// WalletSdkParameters is the signed parameter bundle the merchant's client
// app passes to the wallet SDK to start the payment UI. The JSON field names
// match what the SDK's verification routine expects and must not change.
type WalletSdkParameters struct {
	AppId     string `json:"appId,omitempty"`
	TimeStamp string `json:"timeStamp,omitempty"`
	NonceStr  string `json:"nonceStr,omitempty"`
	// Package embeds the prepay token as "prepay_id=<token>".
	Package  string `json:"package,omitempty"`
	SignType string `json:"signType,omitempty"`
	PaySign  string `json:"paySign,omitempty"`

	OrderNo          string `json:"orderNo,omitempty"`
	TrxId            string `json:"trxId,omitempty"`
	Amount           string `json:"amount,omitempty"`
	GoodsDescription string `json:"goodsDescription,omitempty"`

	IsSuccess    bool   `json:"isSuccess"`
	ErrorCode    string `json:"errorCode,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}
