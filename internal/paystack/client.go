// Package paystack wraps the two Paystack calls the storefront needs:
// initialize a transaction and verify it after the customer pays.
package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"example.com/glams-api/internal/model"
)

var ErrNoSecret = errors.New("paystack secret key not configured")

// GatewayError: the gateway answered but without its success flag set.
type GatewayError struct {
	Op      string
	Message string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("paystack %s failed: %s", e.Op, e.Message)
}

// VerificationError: the envelope succeeded but the transaction itself is not
// in the "success" state (abandoned, failed, pending...).
type VerificationError struct {
	Reference string
	Status    string
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("payment %s not successful: status %q", e.Reference, e.Status)
}

type Client struct {
	secret      string
	baseURL     string
	callbackURL string
	httpc       *http.Client
}

func New(secret, baseURL, callbackURL string) *Client {
	return &Client{
		secret:      secret,
		baseURL:     baseURL,
		callbackURL: callbackURL,
		httpc:       &http.Client{Timeout: 30 * time.Second},
	}
}

type InitResult struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// VerifiedTransaction is the slice of Paystack's verify payload the order
// flow cares about. Amount is in kobo.
type VerifiedTransaction struct {
	Status    string
	Reference string
	Amount    int64
	Channel   string
	PaidAt    string
	Draft     model.OrderDraft
}

type initRequest struct {
	Email       string       `json:"email"`
	Amount      int64        `json:"amount"`
	CallbackURL string       `json:"callback_url"`
	Metadata    metadataWrap `json:"metadata"`
}

type metadataWrap struct {
	Order model.OrderDraft `json:"order"`
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type verifyData struct {
	Status   string       `json:"status"`
	Amount   int64        `json:"amount"`
	Channel  string       `json:"channel"`
	PaidAt   string       `json:"paid_at"`
	Metadata metadataWrap `json:"metadata"`
}

// ToKobo converts a major-unit NGN amount to Paystack's integer kobo,
// rounding to the nearest kobo.
func ToKobo(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// FromKobo recovers the major-unit amount from Paystack's kobo field.
func FromKobo(kobo int64) float64 {
	f, _ := decimal.NewFromInt(kobo).Div(decimal.NewFromInt(100)).Float64()
	return f
}

func (c *Client) Initialize(ctx context.Context, email string, amount float64, draft model.OrderDraft) (*InitResult, error) {
	if c.secret == "" {
		return nil, ErrNoSecret
	}
	body, err := json.Marshal(initRequest{
		Email:       email,
		Amount:      ToKobo(amount),
		CallbackURL: c.callbackURL + "/checkout",
		Metadata:    metadataWrap{Order: draft},
	})
	if err != nil {
		return nil, err
	}
	env, err := c.do(ctx, http.MethodPost, "/transaction/initialize", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	if !env.Status {
		return nil, &GatewayError{Op: "initialize", Message: env.Message}
	}
	var res InitResult
	if err := json.Unmarshal(env.Data, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Verify(ctx context.Context, reference string) (*VerifiedTransaction, error) {
	if c.secret == "" {
		return nil, ErrNoSecret
	}
	env, err := c.do(ctx, http.MethodGet, "/transaction/verify/"+reference, nil)
	if err != nil {
		return nil, err
	}
	if !env.Status {
		return nil, &GatewayError{Op: "verify", Message: env.Message}
	}
	var data verifyData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, err
	}
	if data.Status != "success" {
		return nil, &VerificationError{Reference: reference, Status: data.Status}
	}
	return &VerifiedTransaction{
		Status:    data.Status,
		Reference: reference,
		Amount:    data.Amount,
		Channel:   data.Channel,
		PaidAt:    data.PaidAt,
		Draft:     data.Metadata.Order,
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secret)
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode paystack response: %w", err)
	}
	return &env, nil
}
