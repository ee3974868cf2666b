package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v79/client"

	"paynapple-backend/checkout"
	"paynapple-backend/controllers"
	"paynapple-backend/invoices"
	"paynapple-backend/middlewares"
)

// Deps carries the explicitly constructed collaborators the routes need.
type Deps struct {
	Manager      *invoices.Manager
	Orchestrator *checkout.Orchestrator
	Notifier     checkout.Notifier
	Stripe       *client.API
	AppOrigin    string
}

// Register wires all HTTP routes.
func Register(app *fiber.App, d Deps) {
	api := app.Group("/api")

	// Public endpoints
	api.Post("/signup", controllers.Signup(d.Manager, d.Orchestrator))
	api.Get("/account", controllers.GetAccount(d.Manager))
	api.Post("/payment-return", controllers.PaymentReturn(d.Manager, d.Notifier))

	// Payment-session backend (called by the orchestrator and by the UI)
	api.Post("/create-checkout-session", controllers.CreateCheckoutSession(d.Stripe, d.AppOrigin))

	// Invoice surface: reachable only with a session token for a paid account
	protected := api.Group("")
	protected.Use(middlewares.Paywall(d.Manager))

	protected.Get("/invoices", controllers.GetInvoices(d.Manager))
	protected.Post("/invoice", controllers.CreateInvoice(d.Manager))
	protected.Put("/invoices/:id/pay", controllers.MarkInvoicePaid(d.Manager))
	protected.Post("/invoices/:id/send", controllers.SendInvoice(d.Manager, d.Orchestrator))
	protected.Delete("/invoices/:id", controllers.DeleteInvoice(d.Manager))
	protected.Get("/invoices/export", controllers.ExportInvoices(d.Manager))
}
