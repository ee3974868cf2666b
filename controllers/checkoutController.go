package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"paynapple-backend/utils"
)

// OnboardingFeeCents is the fixed one-time access fee ($9.00).
const OnboardingFeeCents = 900

type sessionInvoiceDTO struct {
	Id         string  `json:"id"`
	ClientName string  `json:"clientName"`
	Amount     float64 `json:"amount"`
}

type sessionRequestDTO struct {
	Name    string             `json:"name"`
	Email   string             `json:"email"`
	Invoice *sessionInvoiceDTO `json:"invoice"`
}

// NewStripeClient builds the processor handle, or nil when no credential is
// configured (the handler then answers with the error body the orchestrator
// expects from a misconfigured backend).
func NewStripeClient(secretKey string) *client.API {
	if secretKey == "" {
		return nil
	}
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return sc
}

// CreateCheckoutSession is the payment-session backend: it accepts either an
// onboarding request (no invoice field) or an invoice payment and answers
// with the hosted checkout redirect. The originating context rides along as
// session metadata for later reconciliation.
func CreateCheckoutSession(sc *client.API, fallbackOrigin string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var dto sessionRequestDTO
		if err := c.BodyParser(&dto); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		if sc == nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "payment processor credential not configured",
			})
		}

		origin := c.Get(fiber.HeaderOrigin)
		if origin == "" {
			origin = fallbackOrigin
		}

		params := &stripe.CheckoutSessionParams{
			Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
			PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
			SuccessURL:         stripe.String(origin + "?paid=1&session_id={CHECKOUT_SESSION_ID}"),
			CancelURL:          stripe.String(origin),
		}
		if dto.Email != "" {
			params.CustomerEmail = stripe.String(dto.Email)
		}

		if dto.Invoice != nil {
			params.LineItems = []*stripe.CheckoutSessionLineItemParams{{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String("usd"),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String("Invoice for " + dto.Invoice.ClientName),
						Description: stripe.String("PayNapple Invoice - " + dto.Invoice.ClientName),
					},
					UnitAmount: stripe.Int64(utils.ToCents(dto.Invoice.Amount)),
				},
				Quantity: stripe.Int64(1),
			}}
			params.AddMetadata("type", "invoice")
			params.AddMetadata("invoiceId", dto.Invoice.Id)
		} else {
			params.LineItems = []*stripe.CheckoutSessionLineItemParams{{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String("usd"),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String("PayNapple Onboarding"),
						Description: stripe.String("One-time access fee to PayNapple invoicing platform"),
					},
					UnitAmount: stripe.Int64(OnboardingFeeCents),
				},
				Quantity: stripe.Int64(1),
			}}
			params.AddMetadata("type", "onboarding")
			params.AddMetadata("userName", dto.Name)
		}

		sess, err := sc.CheckoutSessions.New(params)
		if err != nil {
			log.Printf("create checkout session: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"sessionId": sess.ID,
			"url":       sess.URL,
		})
	}
}
