package controllers

import (
	"github.com/gofiber/fiber/v2"

	"paynapple-backend/checkout"
	"paynapple-backend/invoices"
	"paynapple-backend/middlewares"
	"paynapple-backend/models"
	"paynapple-backend/utils"
)

type signupDTO struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// Signup creates the (single) account, issues its session token and starts
// the onboarding checkout. The paid gate stays closed until the checkout
// completes, for real or in demo.
func Signup(mgr *invoices.Manager, orch *checkout.Orchestrator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var dto signupDTO
		if err := middlewares.BindAndValidate(c, &dto); err != nil {
			return err
		}
		utils.NormalizeDTO(&dto)

		if acct := mgr.Account(); acct != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "account already exists",
			})
		}

		acct, err := mgr.Signup(c.Context(), dto.Name, dto.Email)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not save account",
				"error":   err.Error(),
			})
		}

		token, err := middlewares.GenerateToken(acct.Id)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not issue session token",
				"error":   err.Error(),
			})
		}

		outcome := orch.Initiate(c.Context(), models.CheckoutRequest{
			Kind:  models.CheckoutOnboarding,
			Name:  acct.Name,
			Email: acct.Email,
		})

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"token":    token,
			"account":  acct,
			"checkout": outcome,
		})
	}
}

// GetAccount returns the account record, or 404 before signup.
func GetAccount(mgr *invoices.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		acct := mgr.Account()
		if acct == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "no account",
			})
		}
		return c.JSON(acct)
	}
}

type paymentReturnDTO struct {
	URL string `json:"url" validate:"required"`
}

// PaymentReturn handles the post-checkout landing: it looks for the paid=1
// marker in the landing URL, flips the account's paid gate when the account
// is still onboarding (an already-paid account means an invoice payment, so
// only a notification fires), and hands back the URL with the marker
// stripped. A missing or malformed marker is "no marker", not an error.
func PaymentReturn(mgr *invoices.Manager, notify checkout.Notifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var dto paymentReturnDTO
		if err := middlewares.BindAndValidate(c, &dto); err != nil {
			return err
		}

		paid, cleaned := utils.DetectPaidMarker(dto.URL)
		if !paid {
			return c.JSON(fiber.Map{"paid": false, "url": dto.URL})
		}

		if acct := mgr.Account(); acct != nil && !acct.HasPaid {
			if err := mgr.MarkAccountPaid(c.Context()); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"message": "Could not save account",
					"error":   err.Error(),
				})
			}
			notify.Notify("Payment successful! Welcome to PayNapple!", "success")
		} else {
			notify.Notify("Invoice payment received", "success")
		}

		return c.JSON(fiber.Map{"paid": true, "url": cleaned})
	}
}
