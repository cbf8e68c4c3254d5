package internal

import (
	"abcpay/config"
	"abcpay/entity"
	"abcpay/services"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const contentTypeJSON = "application/json"

// RequestSigner turns a wire field set into a transport-ready payload.
// Serialization is deterministic (the field set's insertion order); the
// actual signing transform is a pluggable capability keyed by the merchant
// credential, because the bank prescribes the algorithm, not this service.
type RequestSigner struct {
	conf   *config.Config
	signer services.PayloadSigner
	logger services.LogHandler
}

func NewRequestSigner(conf *config.Config) *RequestSigner {
	rs := &RequestSigner{conf: conf}
	if path, password, ok := conf.Credential(); ok {
		rs.signer = NewCertificateSigner(path, password)
	}
	return rs
}

func (rs *RequestSigner) SetLogger(logger services.LogHandler) {
	rs.logger = logger
}

// SetPayloadSigner replaces the signing transform, typically with an
// implementation of the bank's published certificate algorithm.
func (rs *RequestSigner) SetPayloadSigner(signer services.PayloadSigner) {
	rs.signer = signer
}

// Sign serializes the field set and applies the signing transform. Without a
// configured credential the payload may go out unsigned, but only when the
// insecure_skip_sign flag says so explicitly.
func (rs *RequestSigner) Sign(fields *entity.FieldSet) (*entity.SignedPayload, error) {
	serialized, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("serialize fields: %w", err)
	}
	if rs.conf.Merchant.PrintLog && rs.logger != nil {
		rs.logger.Debug(fmt.Sprintf("request payload: %s", serialized))
	}

	if rs.signer == nil {
		if rs.conf.Merchant.InsecureSkipSign {
			if rs.logger != nil {
				rs.logger.Warn("no signature applied: insecure mode enabled")
			}
			return &entity.SignedPayload{Body: serialized, ContentType: contentTypeJSON}, nil
		}
		return nil, fmt.Errorf("merchant certificate not configured")
	}

	signed, err := rs.signer.Sign(serialized)
	if err != nil {
		return nil, fmt.Errorf("sign payload: %w", err)
	}
	return &entity.SignedPayload{Body: signed, ContentType: contentTypeJSON}, nil
}

// CertificateSigner holds the merchant certificate reference. The bank's
// certificate signing transform is an external contract that must be sourced
// from the bank's protocol specification; until an implementation of that
// algorithm replaces this one via SetPayloadSigner, signing fails instead of
// guessing.
type CertificateSigner struct {
	path     string
	password string
}

func NewCertificateSigner(path, password string) *CertificateSigner {
	return &CertificateSigner{path: path, password: password}
}

func (s *CertificateSigner) Sign(_ []byte) ([]byte, error) {
	if _, err := os.Stat(s.path); err != nil {
		return nil, fmt.Errorf("read certificate %s: %w", filepath.Base(s.path), err)
	}
	return nil, fmt.Errorf("certificate signing transform not installed for %s", filepath.Base(s.path))
}

// HmacSigner wraps the serialized payload in an envelope carrying an
// HMAC-SHA256 signature over the body. It stands in for the certificate
// transform in tests and sandbox setups; production uses the bank's
// algorithm instead.
type HmacSigner struct {
	secret []byte
}

func NewHmacSigner(secret string) *HmacSigner {
	return &HmacSigner{secret: []byte(secret)}
}

func (s *HmacSigner) Sign(payload []byte) ([]byte, error) {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(payload)
	envelope := struct {
		Message   json.RawMessage `json:"Message"`
		Signature string          `json:"Signature"`
	}{
		Message:   payload,
		Signature: base64.StdEncoding.EncodeToString(mac.Sum(nil)),
	}
	return json.Marshal(envelope)
}
