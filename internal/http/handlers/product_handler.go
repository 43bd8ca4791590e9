package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"shopbook/internal/domain"
	applog "shopbook/internal/log"
	"shopbook/internal/services"
	"shopbook/internal/validate"
)

type ProductHandler struct {
	Products *services.ProductService
}

type productRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Size        string          `json:"size"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	Supplier    string          `json:"supplier"`
	Stock       int             `json:"stock"`
}

func (r *productRequest) entry() (services.ProductEntry, string) {
	name, ok := validate.ProductName(r.Name)
	if !ok {
		return services.ProductEntry{}, "INVALID_NAME"
	}
	if !validate.Money(r.Price) || !validate.Money(r.Cost) {
		return services.ProductEntry{}, "INVALID_PRICE"
	}
	if r.Stock < 0 {
		return services.ProductEntry{}, "INVALID_STOCK"
	}
	return services.ProductEntry{
		Name:        name,
		Description: r.Description,
		Size:        r.Size,
		Price:       r.Price,
		Cost:        r.Cost,
		Supplier:    r.Supplier,
		Stock:       r.Stock,
	}, ""
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.Products.List(currentUser(c).ID)
	if err != nil {
		return fail(c, err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return c.JSON(products)
}

func (h *ProductHandler) GetByName(c *fiber.Ctx) error {
	product, err := h.Products.GetByName(currentUser(c).ID, c.Params("name"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(product)
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "INVALID_BODY")
	}
	entry, kind := req.entry()
	if kind != "" {
		return badRequest(c, kind)
	}
	product, err := h.Products.Create(currentUser(c).ID, entry)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "product.create", map[string]any{"name": product.Name})
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "INVALID_BODY")
	}
	entry, kind := req.entry()
	if kind != "" {
		return badRequest(c, kind)
	}
	product, err := h.Products.Update(currentUser(c).ID, entry)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "product.update", map[string]any{"name": product.Name})
	return c.JSON(product)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	name := c.Params("name")
	if err := h.Products.Delete(currentUser(c).ID, name); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "product.delete", map[string]any{"name": name})
	return c.SendStatus(fiber.StatusNoContent)
}
