package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInvoicePassesOrderReferenceAndAmount(t *testing.T) {
	var gotReq InvoiceRequest
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(map[string]string{
			"id":          "inv_123",
			"external_id": gotReq.ExternalID,
			"status":      "PENDING",
			"invoice_url": "https://checkout.xendit.co/web/inv_123",
		})
	}))
	defer srv.Close()

	client := &XenditClient{APIKey: "a2V5OnNlY3JldA==", BaseURL: srv.URL, HTTPClient: srv.Client()}

	invoice, err := client.CreateInvoice(context.Background(), InvoiceRequest{
		ExternalID:         "68b1c2d3e4f5a6b7c8d9e0f1",
		Amount:             108500,
		Currency:           "IDR",
		Description:        "Payment for Order #68b1c2d3e4f5a6b7c8d9e0f1",
		SuccessRedirectURL: "http://localhost:3000/payment/success",
		FailureRedirectURL: "http://localhost:3000/payment/failure",
	})
	require.NoError(t, err)

	assert.Equal(t, "Basic a2V5OnNlY3JldA==", gotAuth)
	assert.Equal(t, "68b1c2d3e4f5a6b7c8d9e0f1", gotReq.ExternalID)
	assert.Equal(t, int64(108500), gotReq.Amount)
	assert.Equal(t, "IDR", gotReq.Currency)

	// The redirect URL comes back exactly as the provider sent it.
	assert.Equal(t, "https://checkout.xendit.co/web/inv_123", invoice.InvoiceURL)
	assert.Equal(t, "inv_123", invoice.ID)
}

func TestCreateInvoiceSurfacesProviderMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{
			"error_code": "INVALID_API_KEY",
			"message":    "API key is invalid",
		})
	}))
	defer srv.Close()

	client := &XenditClient{APIKey: "bad", BaseURL: srv.URL, HTTPClient: srv.Client()}

	invoice, err := client.CreateInvoice(context.Background(), InvoiceRequest{ExternalID: "x", Amount: 1})
	require.Error(t, err)
	assert.Nil(t, invoice)
	assert.Contains(t, err.Error(), "API key is invalid")
}

func TestCreateInvoiceRejectsResponseWithoutURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"id": "inv_123"})
	}))
	defer srv.Close()

	client := &XenditClient{APIKey: "key", BaseURL: srv.URL, HTTPClient: srv.Client()}

	_, err := client.CreateInvoice(context.Background(), InvoiceRequest{ExternalID: "x", Amount: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty invoice URL")
}

func TestCreateInvoiceFailsWhenGatewayUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately, so the call cannot connect

	client := &XenditClient{APIKey: "key", BaseURL: srv.URL, HTTPClient: &http.Client{}}

	_, err := client.CreateInvoice(context.Background(), InvoiceRequest{ExternalID: "x", Amount: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to reach payment gateway")
}
