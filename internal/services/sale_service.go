package services

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shopbook/internal/domain"
	"shopbook/internal/repos"
)

type SaleService struct {
	Products *repos.ProductRepo
	Sales    *repos.SaleRepo
	Stock    *StockService
}

func NewSaleService(products *repos.ProductRepo, sales *repos.SaleRepo, stock *StockService) *SaleService {
	return &SaleService{Products: products, Sales: sales, Stock: stock}
}

// SaleEntry is the caller-supplied part of a sale. Total price is never
// accepted from the caller; it is always recomputed from the product.
type SaleEntry struct {
	ProductID string
	Buyer     string
	Quantity  int
}

// MakeSale reserves stock and records the sale. The reservation happens
// first, so a rejected reservation leaves no sale behind.
func (s *SaleService) MakeSale(userID string, entry SaleEntry) (*domain.Sale, error) {
	product, err := s.Products.Get(entry.ProductID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.Stock.Reserve(product.ID, entry.Quantity); err != nil {
		return nil, err
	}

	sale := &domain.Sale{
		ID:         uuid.NewString(),
		UserID:     userID,
		ProductID:  product.ID,
		Buyer:      strings.ToLower(entry.Buyer),
		Date:       time.Now().UTC().Format(domain.DateLayout),
		Quantity:   entry.Quantity,
		TotalPrice: product.Price.Mul(decimal.NewFromInt(int64(entry.Quantity))),
		ReceiptID:  uuid.NewString(),
	}
	if err := s.Sales.Create(sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// CorrectSale reverses the original reservation and re-applies the corrected
// one (undo, then redo), then recomputes the total from the product's price.
func (s *SaleService) CorrectSale(userID, id string, entry SaleEntry) (*domain.Sale, error) {
	orig, err := s.Sales.Get(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if orig.UserID != userID {
		return nil, ErrNotFound
	}
	product, err := s.Products.Get(entry.ProductID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.Stock.Correct(product.ID, orig.Quantity, entry.Quantity); err != nil {
		return nil, err
	}

	orig.ProductID = product.ID
	orig.Buyer = strings.ToLower(entry.Buyer)
	orig.Quantity = entry.Quantity
	orig.TotalPrice = product.Price.Mul(decimal.NewFromInt(int64(entry.Quantity)))
	if err := s.Sales.Update(&orig); err != nil {
		return nil, err
	}
	return &orig, nil
}

func (s *SaleService) List(userID string) ([]domain.Sale, error) {
	return s.Sales.ListByUser(userID)
}

func (s *SaleService) Get(userID, id string) (*domain.Sale, error) {
	sale, err := s.Sales.Get(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if sale.UserID != userID {
		return nil, ErrNotFound
	}
	return &sale, nil
}

func (s *SaleService) FindByBuyer(userID, buyer string) ([]domain.Sale, error) {
	return s.Sales.ListByBuyer(userID, strings.ToLower(buyer))
}

func (s *SaleService) FindByProduct(userID, name string) ([]domain.Sale, error) {
	product, err := s.Products.GetByName(userID, name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.Sales.ListByProduct(userID, product.ID)
}

func (s *SaleService) FindByDate(userID, isoDate string) ([]domain.Sale, error) {
	start, end := dayWindow(isoDate)
	return s.Sales.ListByDateRange(userID, start, end)
}

// TotalSalesByDate counts the day's sale transactions; it is not a revenue sum.
func (s *SaleService) TotalSalesByDate(userID, isoDate string) (int, error) {
	start, end := dayWindow(isoDate)
	return s.Sales.CountByDateRange(userID, start, end)
}

// TotalProfitByDate is sum(totalPrice) minus sum(cost x quantity) over the
// day's sales, rejoining each sale to its current product cost. Editing a
// product's cost later shifts historical profit figures.
func (s *SaleService) TotalProfitByDate(userID, isoDate string) (decimal.Decimal, error) {
	start, end := dayWindow(isoDate)
	rows, err := s.Sales.ListByDateRangeWithCost(userID, start, end)
	if err != nil {
		return decimal.Zero, err
	}
	revenue := decimal.Zero
	cost := decimal.Zero
	for _, row := range rows {
		revenue = revenue.Add(row.TotalPrice)
		cost = cost.Add(row.Cost.Mul(decimal.NewFromInt(int64(row.Quantity))))
	}
	return revenue.Sub(cost), nil
}
