package entity

// SignedPayload is the wire-ready transaction body. It is produced fresh per
// request and never reused across orders.
type SignedPayload struct {
	Body        []byte
	ContentType string
}
