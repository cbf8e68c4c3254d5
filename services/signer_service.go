package services

// PayloadSigner applies the bank-mandated signing transform to the canonical
// serialized field set. The transform itself is an external contract keyed by
// the merchant credential loaded at startup; implementations must consume the
// serialized canonical form unchanged.
type PayloadSigner interface {
	Sign(payload []byte) ([]byte, error)
}
