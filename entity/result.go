package entity

// Reserved response codes. The bank owns the success codes; the local codes
// report pipeline failures through the same result shape.
const (
	CodeSuccess      = "0000"
	CodeSuccessShort = "00"
	// CodeSystemError reports a local fault, including signing failures.
	CodeSystemError = "9999"
	// CodeNetworkError reports a transport failure; the order state on the
	// bank side is unknown and must be resolved with an order query.
	CodeNetworkError = "9998"
	// CodeParseError reports an unparsable bank reply.
	CodeParseError = "9997"
)

// CanonicalResult is the normalized outcome of one bank transaction.
// RawResponse keeps the original reply text for downstream use, such as
// extracting a wallet prepay token.
type CanonicalResult struct {
	ResponseCode    string `json:"responseCode" bson:"response_code"`
	ResponseMessage string `json:"responseMessage" bson:"response_message"`
	OrderNo         string `json:"orderNo,omitempty" bson:"order_no,omitempty"`
	TrxId           string `json:"trxId,omitempty" bson:"trx_id,omitempty"`
	PayStatus       string `json:"payStatus,omitempty" bson:"pay_status,omitempty"`
	RawResponse     string `json:"rawResponse,omitempty" bson:"raw_response,omitempty"`
}

// IsSuccess classifies the result by response code alone.
func (r *CanonicalResult) IsSuccess() bool {
	return r.ResponseCode == CodeSuccess || r.ResponseCode == CodeSuccessShort
}
