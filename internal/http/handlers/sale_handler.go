package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shopbook/internal/domain"
	applog "shopbook/internal/log"
	"shopbook/internal/services"
	"shopbook/internal/validate"
)

type SaleHandler struct {
	Sales *services.SaleService
}

type saleRequest struct {
	Product  string `json:"product"`
	Buyer    string `json:"buyer"`
	Quantity int    `json:"quantity"`
}

func (r *saleRequest) entry() (services.SaleEntry, string) {
	productID, ok := validate.ID(r.Product)
	if !ok {
		return services.SaleEntry{}, "INVALID_PRODUCT"
	}
	buyer, ok := validate.Buyer(r.Buyer)
	if !ok {
		return services.SaleEntry{}, "INVALID_BUYER"
	}
	if !validate.Qty(r.Quantity) {
		return services.SaleEntry{}, "INVALID_QUANTITY"
	}
	return services.SaleEntry{ProductID: productID, Buyer: buyer, Quantity: r.Quantity}, ""
}

func (h *SaleHandler) List(c *fiber.Ctx) error {
	sales, err := h.Sales.List(currentUser(c).ID)
	if err != nil {
		return fail(c, err)
	}
	if sales == nil {
		sales = []domain.Sale{}
	}
	return c.JSON(sales)
}

func (h *SaleHandler) Make(c *fiber.Ctx) error {
	var req saleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "INVALID_BODY")
	}
	entry, kind := req.entry()
	if kind != "" {
		return badRequest(c, kind)
	}
	sale, err := h.Sales.MakeSale(currentUser(c).ID, entry)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "sale.make", map[string]any{"sale": sale.ID, "product": sale.ProductID, "qty": sale.Quantity})
	return c.Status(fiber.StatusCreated).JSON(sale)
}

func (h *SaleHandler) Correct(c *fiber.Ctx) error {
	var req saleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "INVALID_BODY")
	}
	entry, kind := req.entry()
	if kind != "" {
		return badRequest(c, kind)
	}
	sale, err := h.Sales.CorrectSale(currentUser(c).ID, c.Params("id"), entry)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "sale.correct", map[string]any{"sale": sale.ID, "qty": sale.Quantity})
	return c.JSON(sale)
}

func (h *SaleHandler) ByDate(c *fiber.Ctx) error {
	date, ok := validate.ISODate(c.Params("date"))
	if !ok {
		return badRequest(c, "INVALID_DATE")
	}
	sales, err := h.Sales.FindByDate(currentUser(c).ID, date)
	if err != nil {
		return fail(c, err)
	}
	if sales == nil {
		sales = []domain.Sale{}
	}
	return c.JSON(sales)
}

func (h *SaleHandler) ByBuyer(c *fiber.Ctx) error {
	buyer, ok := validate.Buyer(c.Params("buyer"))
	if !ok {
		return badRequest(c, "INVALID_BUYER")
	}
	sales, err := h.Sales.FindByBuyer(currentUser(c).ID, buyer)
	if err != nil {
		return fail(c, err)
	}
	if sales == nil {
		sales = []domain.Sale{}
	}
	return c.JSON(sales)
}

func (h *SaleHandler) ByProduct(c *fiber.Ctx) error {
	sales, err := h.Sales.FindByProduct(currentUser(c).ID, c.Params("name"))
	if err != nil {
		return fail(c, err)
	}
	if sales == nil {
		sales = []domain.Sale{}
	}
	return c.JSON(sales)
}

// ProfitByDate returns a bare number: day revenue minus day cost of goods.
func (h *SaleHandler) ProfitByDate(c *fiber.Ctx) error {
	date, ok := validate.ISODate(c.Params("date"))
	if !ok {
		return badRequest(c, "INVALID_DATE")
	}
	profit, err := h.Sales.TotalProfitByDate(currentUser(c).ID, date)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(profit)
}

// TotalByDate returns the day's transaction count, not a revenue sum.
func (h *SaleHandler) TotalByDate(c *fiber.Ctx) error {
	date, ok := validate.ISODate(c.Params("date"))
	if !ok {
		return badRequest(c, "INVALID_DATE")
	}
	n, err := h.Sales.TotalSalesByDate(currentUser(c).ID, date)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(n)
}
