package internal

import (
	"abcpay/entity"
	"encoding/json"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderTimePattern = regexp.MustCompile(`^\d{14}$`)

func TestBuildFieldSet_QRCodeMinimal(t *testing.T) {
	intent := &entity.PaymentIntent{OrderNo: "T1001", OrderAmount: "10000"}

	fields := BuildFieldSet(intent, entity.ChannelQRCode, "103881000000")

	assert.Equal(t, []string{"TrxType", "OrderNo", "OrderAmount", "MerchantID", "OrderTime"}, fields.Names())

	trxType, _ := fields.Get("TrxType")
	assert.Equal(t, "UDCAppQRCodePayReq", trxType)
	orderNo, _ := fields.Get("OrderNo")
	assert.Equal(t, "T1001", orderNo)
	amount, _ := fields.Get("OrderAmount")
	assert.Equal(t, "10000", amount)
	merchant, _ := fields.Get("MerchantID")
	assert.Equal(t, "103881000000", merchant)

	orderTime, ok := fields.Get("OrderTime")
	require.True(t, ok)
	assert.Regexp(t, orderTimePattern, orderTime)

	for _, name := range []string{"OpenId", "ClientIP", "SceneInfo", "GoodsId", "GoodsQuantity", "Attach", "Detail"} {
		_, present := fields.Get(name)
		assert.False(t, present, "wallet-only field %s must not appear", name)
	}
}

func TestBuildFieldSet_GenericOptionals(t *testing.T) {
	intent := &entity.PaymentIntent{
		OrderNo:         "T2",
		OrderAmount:     "500",
		OrderDesc:       "coffee",
		PayQRCode:       "134567890",
		ResultNotifyURL: "https://merchant.example/notify",
		Token:           "tok-1",
	}

	fields := BuildFieldSet(intent, entity.ChannelEWallet, "M1")

	assert.Equal(t, []string{
		"TrxType", "OrderNo", "OrderAmount", "MerchantID", "OrderTime",
		"OrderDesc", "PayQRCode", "ResultNotifyURL", "Token",
	}, fields.Names())

	trxType, _ := fields.Get("TrxType")
	assert.Equal(t, "EWalletPayReq", trxType)
}

func TestBuildFieldSet_OmitsEmptyOptionals(t *testing.T) {
	intent := &entity.PaymentIntent{OrderNo: "T3", OrderAmount: "1"}

	fields := BuildFieldSet(intent, entity.ChannelEWallet, "M1")

	// absent optionals are omitted, never sent as empty strings
	assert.Equal(t, 5, fields.Len())
}

func TestBuildFieldSet_WalletChannel(t *testing.T) {
	quantity := 3
	intent := &entity.PaymentIntent{
		OrderNo:       "T4",
		OrderAmount:   "9900",
		OpenId:        "o-abc",
		ClientIP:      "10.0.0.1",
		SceneInfo:     "app",
		GoodsId:       "g-7",
		GoodsQuantity: &quantity,
		Attach:        "extra",
		Detail:        "detail",
		OrderDesc:     "order desc",
		ProductName:   "widget",
		PayQRCode:     "must-not-appear",
		Token:         "must-not-appear",
	}

	fields := BuildFieldSet(intent, entity.ChannelWalletSDK, "M1")

	assert.Equal(t, []string{
		"TrxType", "OrderNo", "OrderAmount", "MerchantID", "OrderTime",
		"OpenId", "ClientIP", "SceneInfo", "GoodsId", "GoodsQuantity",
		"Attach", "Detail", "OrderDesc", "ProductName",
	}, fields.Names())

	trxType, _ := fields.Get("TrxType")
	assert.Equal(t, "WeChatAppPayReq", trxType)
	goodsQuantity, _ := fields.Get("GoodsQuantity")
	assert.Equal(t, "3", goodsQuantity)

	_, present := fields.Get("PayQRCode")
	assert.False(t, present)
	_, present = fields.Get("Token")
	assert.False(t, present)
}

func TestBuildFieldSet_OrderTimePassthrough(t *testing.T) {
	intent := &entity.PaymentIntent{OrderNo: "T5", OrderAmount: "1", OrderTime: "20260115093000"}

	fields := BuildFieldSet(intent, entity.ChannelQRCode, "M1")

	orderTime, _ := fields.Get("OrderTime")
	assert.Equal(t, "20260115093000", orderTime)
}

func TestBuildFieldSet_Deterministic(t *testing.T) {
	intent := &entity.PaymentIntent{
		OrderNo:     "T6",
		OrderAmount: "42",
		OrderTime:   "20260115093000",
		OrderDesc:   "desc",
	}

	first, err := json.Marshal(BuildFieldSet(intent, entity.ChannelQRCode, "M1"))
	require.NoError(t, err)
	second, err := json.Marshal(BuildFieldSet(intent, entity.ChannelQRCode, "M1"))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestBuildQueryFieldSet(t *testing.T) {
	fields := BuildQueryFieldSet("T1001", "M1")

	assert.Equal(t, []string{"TrxType", "OrderNo", "MerchantID"}, fields.Names())
	trxType, _ := fields.Get("TrxType")
	assert.Equal(t, "OrderQuery", trxType)

	data, err := json.Marshal(fields)
	require.NoError(t, err)
	assert.Equal(t, `{"TrxType":"OrderQuery","OrderNo":"T1001","MerchantID":"M1"}`, string(data))
}
