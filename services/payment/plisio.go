package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"skybook/models"
)

// PlisioClient talks to the Plisio invoice API. Invoices are created with a
// single GET carrying the order and callback parameters; the gateway answers
// with a hosted invoice URL the customer is redirected to.
type PlisioClient struct {
	APIKey     string
	BaseURL    string // e.g. https://api.plisio.net/api/v1
	AppURL     string // public base URL used to build callback and return URLs
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// NewPlisioClient returns an InvoiceClient for the given gateway credentials.
func NewPlisioClient(apiKey, baseURL, appURL string, logger *zap.Logger) *PlisioClient {
	return &PlisioClient{
		APIKey:     apiKey,
		BaseURL:    baseURL,
		AppURL:     appURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		Logger:     logger,
	}
}

// plisioResponse is the gateway's envelope for invoice creation.
type plisioResponse struct {
	Status string `json:"status"`
	Data   struct {
		InvoiceURL string `json:"invoice_url"`
		Message    string `json:"message"`
	} `json:"data"`
	Message string `json:"message"`
}

// CreateInvoice creates a BTC invoice denominated in USD for the given booking.
func (c *PlisioClient) CreateInvoice(ctx context.Context, req models.InvoiceRequest) (*models.InvoiceResult, error) {
	if req.OrderID == "" {
		return &models.InvoiceResult{Success: false, Error: "Order ID is required"}, nil
	}

	callbackBase := fmt.Sprintf("%s/api/payment/callback?booking_token=%s", c.AppURL, url.QueryEscape(req.BookingToken))

	params := url.Values{}
	params.Set("api_key", c.APIKey)
	params.Set("order_name", fmt.Sprintf("Booking #%s", req.OrderID))
	params.Set("order_number", strconv.FormatInt(time.Now().UnixMilli(), 10))
	params.Set("currency", "BTC")
	params.Set("source_currency", "USD")
	params.Set("source_amount", strconv.FormatFloat(req.Amount, 'f', -1, 64))
	params.Set("email", req.CustomerEmail)
	params.Set("description", fmt.Sprintf("Booking for %s (%s)", req.CustomerName, req.CustomerPhone))
	params.Set("callback_url", callbackBase+"&json=true")
	params.Set("success_callback_url", callbackBase+"&status=success&json=true")
	params.Set("fail_callback_url", callbackBase+"&status=fail&json=true")
	params.Set("success_invoice_url", c.AppURL+"/payment/success")
	params.Set("fail_invoice_url", c.AppURL+"/payment/fail")

	endpoint := fmt.Sprintf("%s/invoices/new?%s", c.BaseURL, params.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build invoice request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to reach payment gateway: %w", err)
	}
	defer resp.Body.Close()

	var result plisioResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse gateway response: %w", err)
	}

	if result.Status != "success" {
		msg := result.Data.Message
		if msg == "" {
			msg = result.Message
		}
		if msg == "" {
			msg = "Invoice creation failed"
		}
		c.Logger.Warn("gateway rejected invoice", zap.String("orderId", req.OrderID), zap.String("message", msg))
		return &models.InvoiceResult{Success: false, Error: msg}, nil
	}

	return &models.InvoiceResult{Success: true, InvoiceURL: result.Data.InvoiceURL}, nil
}
