package internal

import (
	"abcpay/entity"
	"encoding/json"
)

// fieldAlias lists the wire names tried in order for one logical response
// field, with the value used when none is present. The bank's reply shape is
// not uniform across transaction types, hence the two-tier lookup.
type fieldAlias struct {
	names    []string
	fallback string
}

var (
	codeAlias      = fieldAlias{names: []string{"ResponseCode", "RspCode"}, fallback: entity.CodeSystemError}
	messageAlias   = fieldAlias{names: []string{"ResponseMessage", "RspMsg"}, fallback: "unknown response"}
	orderNoAlias   = fieldAlias{names: []string{"OrderNo"}}
	trxIdAlias     = fieldAlias{names: []string{"TrxId"}}
	payStatusAlias = fieldAlias{names: []string{"PayStatus"}}
)

func (a fieldAlias) resolve(reply map[string]any) string {
	for _, name := range a.names {
		if value, ok := reply[name].(string); ok {
			return value
		}
	}
	return a.fallback
}

// ParseResponse normalizes the bank's reply into a canonical result. A
// malformed reply is a recoverable data-quality condition, not a fault: it
// yields the reserved parse-failure code with the raw text preserved.
func ParseResponse(raw string) *entity.CanonicalResult {
	var reply map[string]any
	if err := json.Unmarshal([]byte(raw), &reply); err != nil || reply == nil {
		return &entity.CanonicalResult{
			ResponseCode:    entity.CodeParseError,
			ResponseMessage: "response parse failure",
			RawResponse:     raw,
		}
	}
	return &entity.CanonicalResult{
		ResponseCode:    codeAlias.resolve(reply),
		ResponseMessage: messageAlias.resolve(reply),
		OrderNo:         orderNoAlias.resolve(reply),
		TrxId:           trxIdAlias.resolve(reply),
		PayStatus:       payStatusAlias.resolve(reply),
		RawResponse:     raw,
	}
}
