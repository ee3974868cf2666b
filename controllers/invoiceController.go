package controllers

import (
	"bytes"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"paynapple-backend/checkout"
	"paynapple-backend/export"
	"paynapple-backend/invoices"
	"paynapple-backend/middlewares"
	"paynapple-backend/models"
	"paynapple-backend/utils"
)

type createInvoiceDTO struct {
	ClientName string  `json:"clientName" validate:"required"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
}

// CreateInvoice adds a pending invoice for a client.
func CreateInvoice(mgr *invoices.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var dto createInvoiceDTO
		if err := middlewares.BindAndValidate(c, &dto); err != nil {
			return err
		}
		utils.NormalizeDTO(&dto)

		inv, err := mgr.Add(c.Context(), dto.ClientName, dto.Amount)
		if err != nil {
			if errors.Is(err, invoices.ErrInvalidInvoice) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"message": "Invalid invoice input",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not save invoice",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(inv)
	}
}

// GetInvoices returns the collection plus its derived statistics.
func GetInvoices(mgr *invoices.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		collection := mgr.List()
		return c.JSON(fiber.Map{
			"invoices": collection,
			"stats":    invoices.ComputeStats(collection),
		})
	}
}

// MarkInvoicePaid transitions a pending invoice to paid. Unknown or
// already-paid ids succeed without effect.
func MarkInvoicePaid(mgr *invoices.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if err := mgr.MarkPaid(c.Context(), id); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not save invoice",
				"error":   err.Error(),
			})
		}
		inv, _ := mgr.Get(id)
		return c.JSON(inv)
	}
}

// DeleteInvoice removes an invoice regardless of status. Deletion is
// immediate and irreversible; unknown ids are a no-op.
func DeleteInvoice(mgr *invoices.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := mgr.Delete(c.Context(), c.Params("id")); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not delete invoice",
				"error":   err.Error(),
			})
		}
		return c.JSON(fiber.Map{"message": "invoice deleted"})
	}
}

// SendInvoice initiates a payment checkout for one invoice. The response is
// always a resolved outcome: a redirect URL, or a labeled demo outcome when
// the payment processor is unavailable.
func SendInvoice(mgr *invoices.Manager, orch *checkout.Orchestrator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		inv, ok := mgr.Get(c.Params("id"))
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "invoice not found",
			})
		}
		email := ""
		if acct := mgr.Account(); acct != nil {
			email = acct.Email
		}
		outcome := orch.Initiate(c.Context(), models.CheckoutRequest{
			Kind:       models.CheckoutInvoicePayment,
			Email:      email,
			InvoiceId:  inv.Id,
			ClientName: inv.ClientName,
			Amount:     inv.Amount,
		})
		return c.JSON(outcome)
	}
}

// ExportInvoices streams the collection as a CSV download. An empty
// collection is declined here rather than producing an empty file.
func ExportInvoices(mgr *invoices.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		collection := mgr.List()
		if len(collection) == 0 {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "No invoices to export",
			})
		}
		var buf bytes.Buffer
		if err := export.WriteCSV(&buf, collection); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not export invoices",
				"error":   err.Error(),
			})
		}
		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+export.Filename(time.Now())+`"`)
		return c.Send(buf.Bytes())
	}
}
