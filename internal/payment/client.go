package payment

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bitebakers/brownie-backend/config"
	"github.com/bitebakers/brownie-backend/pkg/logger"
)

var ErrSourceCreationFailed = errors.New("payment source creation failed")

// Client talks to the external payment provider. The provider is
// opaque to the rest of the app: we create a "source" for an amount and
// hand the shopper its redirect URL.
type Client struct {
	httpClient *http.Client
	cfg        config.PaymentConfig
}

func NewClient(cfg config.PaymentConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		cfg:        cfg,
	}
}

type CreateSourceInput struct {
	Amount      float64
	Method      string // e.g. "gcash", "grab_pay", "card"
	OrderNumber string
}

type Source struct {
	ID          string
	RedirectURL string
	Status      string
}

type sourceRequest struct {
	Data struct {
		Attributes struct {
			Amount   int64  `json:"amount"` // centavos
			Currency string `json:"currency"`
			Type     string `json:"type"`
			Redirect struct {
				Success string `json:"success"`
				Failed  string `json:"failed"`
			} `json:"redirect"`
		} `json:"attributes"`
	} `json:"data"`
}

type sourceResponse struct {
	Data struct {
		ID         string `json:"id"`
		Attributes struct {
			Status   string `json:"status"`
			Redirect struct {
				CheckoutURL string `json:"checkout_url"`
			} `json:"redirect"`
		} `json:"attributes"`
	} `json:"data"`
}

// CreateSource registers a payment intent with the provider and
// returns the checkout redirect for the shopper.
func (c *Client) CreateSource(ctx context.Context, input CreateSourceInput) (*Source, error) {
	var reqBody sourceRequest
	reqBody.Data.Attributes.Amount = int64(input.Amount * 100)
	reqBody.Data.Attributes.Currency = "PHP"
	reqBody.Data.Attributes.Type = input.Method
	reqBody.Data.Attributes.Redirect.Success = c.cfg.SuccessURL
	reqBody.Data.Attributes.Redirect.Failed = c.cfg.FailURL

	raw, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/sources", bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(c.cfg.SecretKey+":")))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("Payment provider request failed", err, map[string]interface{}{
			"order_number": input.OrderNumber,
		})
		return nil, ErrSourceCreationFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Error("Payment provider rejected source", fmt.Errorf("status %d", resp.StatusCode), map[string]interface{}{
			"order_number": input.OrderNumber,
		})
		return nil, ErrSourceCreationFailed
	}

	var parsed sourceResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, ErrSourceCreationFailed
	}

	return &Source{
		ID:          parsed.Data.ID,
		RedirectURL: parsed.Data.Attributes.Redirect.CheckoutURL,
		Status:      parsed.Data.Attributes.Status,
	}, nil
}
