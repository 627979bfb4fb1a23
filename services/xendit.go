package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"edesign/config"
)

const defaultXenditURL = "https://api.xendit.co/v2/invoices"

// XenditClient creates hosted invoices through Xendit's Invoice API.
type XenditClient struct {
	APIKey     string // base64-encoded secret key, sent as Basic auth
	BaseURL    string
	HTTPClient *http.Client
}

func NewXenditClient() *XenditClient {
	return &XenditClient{
		APIKey:     config.GetEnv("XENDIT_API_KEY_BASE64", ""),
		BaseURL:    config.GetEnv("XENDIT_API_URL", defaultXenditURL),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type InvoiceRequest struct {
	ExternalID         string `json:"external_id"`
	Amount             int64  `json:"amount"`
	Currency           string `json:"currency"`
	Description        string `json:"description"`
	SuccessRedirectURL string `json:"success_redirect_url"`
	FailureRedirectURL string `json:"failure_redirect_url"`
}

type Invoice struct {
	ID         string `json:"id"`
	ExternalID string `json:"external_id"`
	Status     string `json:"status"`
	InvoiceURL string `json:"invoice_url"`
}

// CreateInvoice creates a hosted invoice and returns it, including the
// redirect URL the customer pays on. Provider error messages are
// surfaced in the returned error.
func (xc *XenditClient) CreateInvoice(ctx context.Context, invReq InvoiceRequest) (*Invoice, error) {
	payload, err := json.Marshal(invReq)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, xc.BaseURL, bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Basic "+xc.APIKey)

	resp, err := xc.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach payment gateway: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read gateway response: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			ErrorCode string `json:"error_code"`
			Message   string `json:"message"`
		}
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("xendit error: %s", apiErr.Message)
		}
		return nil, fmt.Errorf("xendit API error (%d): %s", resp.StatusCode, string(body))
	}

	var invoice Invoice
	if err := json.Unmarshal(body, &invoice); err != nil {
		return nil, fmt.Errorf("failed to parse invoice response: %v", err)
	}
	if invoice.InvoiceURL == "" {
		return nil, fmt.Errorf("xendit returned empty invoice URL")
	}

	return &invoice, nil
}
