// Package payclient calls the payment service over HTTP on behalf of the
// catalog service.
package payclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/junaidrashid-git/trendy-shop/payment"
)

const defaultTimeout = 10 * time.Second

var (
	// ErrUnavailable covers transport failures and any answer the client does
	// not understand. Callers surface it as a bad gateway.
	ErrUnavailable = errors.New("payment service unavailable")
	// ErrRejected means the payment service refused the request itself
	// (bad amount, missing method) rather than declining the charge.
	ErrRejected = errors.New("payment request rejected")
)

// RejectedError carries the payment service's reason for refusing a request.
// It matches ErrRejected.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string { return ErrRejected.Error() + ": " + e.Message }

func (e *RejectedError) Is(target error) bool { return target == ErrRejected }

// Result is the process-payment response body. Declined charges come back
// with Success false and a TransactionID.
type Result struct {
	Success       bool    `json:"success"`
	Message       string  `json:"message"`
	TransactionID string  `json:"transactionId"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Status        string  `json:"status"`
}

func (r *Result) Approved() bool {
	return r.Success && r.Status == string(payment.StatusSuccess)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// ProcessPayment charges req. A declined charge is a normal result, not an
// error.
func (c *Client) ProcessPayment(ctx context.Context, req payment.PaymentRequest) (*Result, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode payment request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/process-payment", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("%w: status %d: %v", ErrUnavailable, resp.StatusCode, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK && result.Approved():
		return &result, nil
	case resp.StatusCode == http.StatusBadRequest && result.TransactionID != "":
		return &result, nil
	case resp.StatusCode == http.StatusBadRequest:
		return nil, &RejectedError{Message: result.Message}
	default:
		return nil, fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, result.Message)
	}
}
