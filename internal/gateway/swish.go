// Package gateway wraps the outbound calls to the mobile payment provider.
// Both creation endpoints answer with a Location header whose trailing path
// segment is the gateway-assigned id; status changes arrive later through
// the callback webhooks.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"bus-booking/pkg/utils"

	"go.uber.org/zap"
)

type PaymentParams struct {
	PayerAlias string
	Amount     int
	Message    string
}

// RefundParams carries no payer: refunds are paid by the merchant, the
// original recipient is implied by PaymentReference.
type RefundParams struct {
	PaymentReference string
	Amount           int
	Message          string
}

type paymentRequestBody struct {
	CallbackURL string `json:"callbackUrl"`
	PayerAlias  string `json:"payerAlias"`
	PayeeAlias  string `json:"payeeAlias"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Message     string `json:"message"`
}

type refundRequestBody struct {
	OriginalPaymentReference string `json:"originalPaymentReference"`
	CallbackURL              string `json:"callbackUrl"`
	PayerAlias               string `json:"payerAlias"`
	Amount                   string `json:"amount"`
	Currency                 string `json:"currency"`
	Message                  string `json:"message"`
}

type Client struct {
	httpClient *http.Client
	config     utils.SwishConfig
	log        *zap.Logger
}

func NewClient(config utils.SwishConfig, log *zap.Logger) *Client {
	timeout := time.Duration(config.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		config:     config,
		log:        log.With(zap.String("client", "swish")),
	}
}

// CreatePayment issues a payment request and returns the gateway payment id.
func (c *Client) CreatePayment(ctx context.Context, params PaymentParams) (string, error) {
	body := paymentRequestBody{
		CallbackURL: c.config.CallbackBaseURL + "/api/callback/payment",
		PayerAlias:  params.PayerAlias,
		PayeeAlias:  c.config.PayeeAlias,
		Amount:      strconv.Itoa(params.Amount),
		Currency:    c.config.Currency,
		Message:     params.Message,
	}

	id, err := c.post(ctx, c.config.BaseURL+"/api/v1/paymentrequests", body)
	if err != nil {
		return "", fmt.Errorf("create payment request: %w", err)
	}

	c.log.Info("Payment request created",
		zap.String("swish_id", id),
		zap.Int("amount", params.Amount),
	)
	return id, nil
}

// CreateRefund issues a refund against an earlier payment and returns the
// gateway refund id.
func (c *Client) CreateRefund(ctx context.Context, params RefundParams) (string, error) {
	body := refundRequestBody{
		OriginalPaymentReference: params.PaymentReference,
		CallbackURL:              c.config.CallbackBaseURL + "/api/callback/refund",
		PayerAlias:               c.config.PayeeAlias,
		Amount:                   strconv.Itoa(params.Amount),
		Currency:                 c.config.Currency,
		Message:                  params.Message,
	}

	id, err := c.post(ctx, c.config.BaseURL+"/api/v1/refunds", body)
	if err != nil {
		return "", fmt.Errorf("create refund request: %w", err)
	}

	c.log.Info("Refund request created",
		zap.String("swish_refund_id", id),
		zap.String("payment_reference", params.PaymentReference),
		zap.Int("amount", params.Amount),
	)
	return id, nil
}

// post sends the payload and extracts the created id from the Location
// header. Non-2xx responses carry the body for operator diagnostics; there
// is no automatic retry.
func (c *Client) post(ctx context.Context, url string, payload any) (string, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call gateway: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, string(respBody))
	}

	location := resp.Header.Get("Location")
	if location == "" {
		return "", fmt.Errorf("gateway response missing Location header")
	}

	segments := strings.Split(strings.TrimRight(location, "/"), "/")
	id := segments[len(segments)-1]
	if id == "" {
		return "", fmt.Errorf("gateway Location header %q has no id segment", location)
	}

	return id, nil
}
