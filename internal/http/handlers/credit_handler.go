package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"shopbook/internal/domain"
	applog "shopbook/internal/log"
	"shopbook/internal/services"
	"shopbook/internal/validate"
)

type CreditHandler struct {
	Credits *services.CreditService
}

type creditRequest struct {
	Product  string `json:"product"`
	Buyer    string `json:"buyer"`
	Quantity int    `json:"quantity"`
}

func (r *creditRequest) entry() (services.CreditEntry, string) {
	productID, ok := validate.ID(r.Product)
	if !ok {
		return services.CreditEntry{}, "INVALID_PRODUCT"
	}
	buyer, ok := validate.Buyer(r.Buyer)
	if !ok {
		return services.CreditEntry{}, "INVALID_BUYER"
	}
	if !validate.Qty(r.Quantity) {
		return services.CreditEntry{}, "INVALID_QUANTITY"
	}
	return services.CreditEntry{ProductID: productID, Buyer: buyer, Quantity: r.Quantity}, ""
}

func (h *CreditHandler) List(c *fiber.Ctx) error {
	credits, err := h.Credits.List(currentUser(c).ID)
	if err != nil {
		return fail(c, err)
	}
	if credits == nil {
		credits = []domain.Credit{}
	}
	return c.JSON(credits)
}

func (h *CreditHandler) Create(c *fiber.Ctx) error {
	var req creditRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "INVALID_BODY")
	}
	entry, kind := req.entry()
	if kind != "" {
		return badRequest(c, kind)
	}
	credit, err := h.Credits.CreateDebt(currentUser(c).ID, entry)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "credit.create", map[string]any{"credit": credit.ID, "product": credit.ProductID, "qty": credit.Quantity})
	return c.Status(fiber.StatusCreated).JSON(credit)
}

func (h *CreditHandler) Correct(c *fiber.Ctx) error {
	var req creditRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "INVALID_BODY")
	}
	entry, kind := req.entry()
	if kind != "" {
		return badRequest(c, kind)
	}
	credit, err := h.Credits.CorrectDebt(currentUser(c).ID, c.Params("id"), entry)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "credit.correct", map[string]any{"credit": credit.ID, "qty": credit.Quantity})
	return c.JSON(credit)
}

type payRequest struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
}

func (h *CreditHandler) Pay(c *fiber.Ctx) error {
	var req payRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "INVALID_BODY")
	}
	id, ok := validate.ID(req.ID)
	if !ok {
		return badRequest(c, "INVALID_ID")
	}
	if !validate.Amount(req.Amount) {
		return badRequest(c, "INVALID_AMOUNT")
	}
	credit, err := h.Credits.PayDebt(currentUser(c).ID, id, req.Amount)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "credit.pay", map[string]any{"credit": credit.ID, "status": credit.Status})
	return c.JSON(credit)
}

// Total returns a bare number: the sum of remaining debt on pending credits.
func (h *CreditHandler) Total(c *fiber.Ctx) error {
	total, err := h.Credits.TotalDebtsAmount(currentUser(c).ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(total)
}

func (h *CreditHandler) ByDate(c *fiber.Ctx) error {
	date, ok := validate.ISODate(c.Params("date"))
	if !ok {
		return badRequest(c, "INVALID_DATE")
	}
	credits, err := h.Credits.FindByDate(currentUser(c).ID, date)
	if err != nil {
		return fail(c, err)
	}
	if credits == nil {
		credits = []domain.Credit{}
	}
	return c.JSON(credits)
}

func (h *CreditHandler) ByBuyer(c *fiber.Ctx) error {
	buyer, ok := validate.Buyer(c.Params("name"))
	if !ok {
		return badRequest(c, "INVALID_BUYER")
	}
	credits, err := h.Credits.FindByBuyer(currentUser(c).ID, buyer)
	if err != nil {
		return fail(c, err)
	}
	if credits == nil {
		credits = []domain.Credit{}
	}
	return c.JSON(credits)
}

func (h *CreditHandler) Get(c *fiber.Ctx) error {
	credit, err := h.Credits.Get(currentUser(c).ID, c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(credit)
}
