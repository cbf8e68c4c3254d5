package internal

import (
	"abcpay/entity"
	"strconv"
	"time"
)

// orderTimeLayout is the bank's textual timestamp format, yyyyMMddHHmmss.
const orderTimeLayout = "20060102150405"

// BuildFieldSet converts a payment intent into the flat wire field set for
// the given channel. Insertion order is the canonical serialization order;
// the signature over the serialized set is order-sensitive.
//
// Absent optional intent fields are omitted entirely. The bank rejects
// unknown fields in some configurations, so omission is the safe default.
// No format validation happens here: a malformed amount goes through as-is
// and comes back as a normal failure response from the bank.
func BuildFieldSet(intent *entity.PaymentIntent, channel entity.Channel, merchantId string) *entity.FieldSet {
	fields := &entity.FieldSet{}
	fields.Set("TrxType", channel.TrxType())
	fields.Set("OrderNo", intent.OrderNo)
	fields.Set("OrderAmount", intent.OrderAmount)
	fields.Set("MerchantID", merchantId)

	orderTime := intent.OrderTime
	if orderTime == "" {
		orderTime = time.Now().Format(orderTimeLayout)
	}
	fields.Set("OrderTime", orderTime)

	if channel == entity.ChannelWalletSDK {
		setIfPresent(fields, "OpenId", intent.OpenId)
		setIfPresent(fields, "ClientIP", intent.ClientIP)
		setIfPresent(fields, "SceneInfo", intent.SceneInfo)
		setIfPresent(fields, "GoodsId", intent.GoodsId)
		if intent.GoodsQuantity != nil {
			fields.Set("GoodsQuantity", strconv.Itoa(*intent.GoodsQuantity))
		}
		setIfPresent(fields, "Attach", intent.Attach)
		setIfPresent(fields, "Detail", intent.Detail)
		setIfPresent(fields, "OrderDesc", intent.OrderDesc)
		setIfPresent(fields, "ProductName", intent.ProductName)
		setIfPresent(fields, "ResultNotifyURL", intent.ResultNotifyURL)
		setIfPresent(fields, "OrderValidTime", intent.OrderValidTime)
		return fields
	}

	setIfPresent(fields, "OrderDesc", intent.OrderDesc)
	setIfPresent(fields, "OrderValidTime", intent.OrderValidTime)
	setIfPresent(fields, "PayQRCode", intent.PayQRCode)
	setIfPresent(fields, "OrderAbstract", intent.OrderAbstract)
	setIfPresent(fields, "ResultNotifyURL", intent.ResultNotifyURL)
	setIfPresent(fields, "ProductName", intent.ProductName)
	setIfPresent(fields, "PaymentType", intent.PaymentType)
	setIfPresent(fields, "PaymentLinkType", intent.PaymentLinkType)
	setIfPresent(fields, "MerchantRemarks", intent.MerchantRemarks)
	setIfPresent(fields, "NotifyType", intent.NotifyType)
	setIfPresent(fields, "Token", intent.Token)
	return fields
}

// BuildQueryFieldSet builds the reduced field set for an order status lookup.
func BuildQueryFieldSet(orderNo, merchantId string) *entity.FieldSet {
	fields := &entity.FieldSet{}
	fields.Set("TrxType", entity.ChannelQuery.TrxType())
	fields.Set("OrderNo", orderNo)
	fields.Set("MerchantID", merchantId)
	return fields
}

func setIfPresent(fields *entity.FieldSet, name, value string) {
	if value != "" {
		fields.Set(name, value)
	}
}
