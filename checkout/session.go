package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"paynapple-backend/models"
)

// Session is a server-issued authorization for a hosted payment page.
type Session struct {
	SessionId string `json:"sessionId"`
	URL       string `json:"url"`
}

// SessionClient creates hosted checkout sessions. The orchestrator treats
// any error as "processor unavailable" and falls back to the demo flow.
type SessionClient interface {
	CreateSession(ctx context.Context, req models.CheckoutRequest) (*Session, error)
}

// sessionPayload is the wire shape of the payment-session endpoint: the
// presence of "invoice" selects the invoice-payment line item, its absence
// the onboarding one.
type sessionPayload struct {
	Name    string          `json:"name,omitempty"`
	Email   string          `json:"email,omitempty"`
	Invoice *invoicePayload `json:"invoice,omitempty"`
}

type invoicePayload struct {
	Id         string  `json:"id"`
	ClientName string  `json:"clientName"`
	Amount     float64 `json:"amount"`
}

// HTTPSessionClient talks to the payment-session endpoint over JSON.
type HTTPSessionClient struct {
	Endpoint string
	Client   *http.Client
}

func NewHTTPSessionClient(endpoint string) *HTTPSessionClient {
	return &HTTPSessionClient{Endpoint: endpoint, Client: http.DefaultClient}
}

func (c *HTTPSessionClient) CreateSession(ctx context.Context, req models.CheckoutRequest) (*Session, error) {
	payload := sessionPayload{Name: req.Name, Email: req.Email}
	if req.Kind == models.CheckoutInvoicePayment {
		payload.Invoice = &invoicePayload{
			Id:         req.InvoiceId,
			ClientName: req.ClientName,
			Amount:     req.Amount,
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode session request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build session request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error == "" {
			apiErr.Error = resp.Status
		}
		return nil, fmt.Errorf("checkout session backend: %s", apiErr.Error)
	}

	var sess Session
	if err := json.NewDecoder(resp.Body).Decode(&sess); err != nil {
		return nil, fmt.Errorf("decode session response: %w", err)
	}
	if sess.URL == "" {
		return nil, fmt.Errorf("checkout session backend returned no redirect URL")
	}
	return &sess, nil
}
