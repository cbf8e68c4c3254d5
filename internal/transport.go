package internal

import (
	"abcpay/config"
	"abcpay/entity"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Transport delivers signed payloads to the bank endpoint and returns the
// raw reply text. The payload is opaque at this layer. The underlying client
// pools connections and is safe for concurrent use.
type Transport struct {
	requestUrl string
	httpClient *http.Client
}

func NewTransport(conf *config.Config) *Transport {
	connect := conf.Merchant.Connect
	return &Transport{
		requestUrl: fmt.Sprintf("%s://%s:%s%s", connect.Scheme, connect.Host, connect.Port, connect.Path),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				DisableKeepAlives:   false,
			},
		},
	}
}

// Send posts the payload and reads the reply. A caller abandoning the call
// through ctx leaves the order in unknown bank-side state; it must be
// resolved with an order query, not assumed failed.
func (t *Transport) Send(ctx context.Context, payload *entity.SignedPayload) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.requestUrl, bytes.NewReader(payload.Body))
	if err != nil {
		return "", fmt.Errorf("create http request: %w", err)
	}
	req.Header.Set("Content-Type", payload.ContentType)

	response, err := t.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("request timeout or cancelled: %w", ctx.Err())
		}
		return "", fmt.Errorf("post request: %w", err)
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(response.Body)

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}
	return string(body), nil
}
