package services

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shopbook/internal/domain"
	"shopbook/internal/repos"
)

var (
	ErrExceedsDebt    = errors.New("payment exceeds debt")
	ErrAlreadySettled = errors.New("debt has already been settled")
)

type CreditService struct {
	Products *repos.ProductRepo
	Credits  *repos.CreditRepo
	Stock    *StockService
}

func NewCreditService(products *repos.ProductRepo, credits *repos.CreditRepo, stock *StockService) *CreditService {
	return &CreditService{Products: products, Credits: credits, Stock: stock}
}

type CreditEntry struct {
	ProductID string
	Buyer     string
	Quantity  int
}

// CreateDebt reserves stock and opens a pending credit with
// totalDebt = price x quantity and nothing paid yet.
func (s *CreditService) CreateDebt(userID string, entry CreditEntry) (*domain.Credit, error) {
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

	credit := &domain.Credit{
		ID:         uuid.NewString(),
		UserID:     userID,
		ProductID:  product.ID,
		Buyer:      strings.ToLower(entry.Buyer),
		Date:       time.Now().UTC().Format(domain.DateLayout),
		Quantity:   entry.Quantity,
		AmountPaid: decimal.Zero,
		TotalDebt:  product.Price.Mul(decimal.NewFromInt(int64(entry.Quantity))),
		Status:     domain.CreditPending,
		ReceiptID:  uuid.NewString(),
	}
	if err := s.Credits.Create(credit); err != nil {
		return nil, err
	}
	return credit, nil
}

// CorrectDebt undoes the original reservation, re-reserves the corrected
// quantity, and recomputes the remaining debt net of what was already paid.
func (s *CreditService) CorrectDebt(userID, id string, entry CreditEntry) (*domain.Credit, error) {
	orig, err := s.Credits.Get(id)
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

	debt := product.Price.Mul(decimal.NewFromInt(int64(entry.Quantity))).Sub(orig.AmountPaid)
	if debt.IsNegative() {
		debt = decimal.Zero
	}
	orig.ProductID = product.ID
	orig.Buyer = strings.ToLower(entry.Buyer)
	orig.Quantity = entry.Quantity
	orig.TotalDebt = debt
	if debt.IsZero() {
		orig.Status = domain.CreditSettled
	} else {
		orig.Status = domain.CreditPending
	}
	if err := s.Credits.Update(&orig); err != nil {
		return nil, err
	}
	return &orig, nil
}

// PayDebt applies a partial payment. The settled check comes first, so an
// already-settled credit rejects any amount; a payment above the remaining
// debt is rejected, and one equal to it settles the credit exactly.
func (s *CreditService) PayDebt(userID, id string, amount decimal.Decimal) (*domain.Credit, error) {
	credit, err := s.Credits.Get(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if credit.UserID != userID {
		return nil, ErrNotFound
	}
	if credit.Settled() {
		return nil, ErrAlreadySettled
	}
	if amount.GreaterThan(credit.TotalDebt) {
		return nil, ErrExceedsDebt
	}

	credit.AmountPaid = credit.AmountPaid.Add(amount)
	credit.TotalDebt = credit.TotalDebt.Sub(amount)
	if !credit.TotalDebt.IsPositive() {
		credit.TotalDebt = decimal.Zero
		credit.Status = domain.CreditSettled
	}
	if err := s.Credits.Update(&credit); err != nil {
		return nil, err
	}
	return &credit, nil
}

// TotalDebtsAmount sums the remaining debt across the owner's pending credits.
func (s *CreditService) TotalDebtsAmount(userID string) (decimal.Decimal, error) {
	pending, err := s.Credits.ListPendingByUser(userID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, c := range pending {
		total = total.Add(c.TotalDebt)
	}
	return total, nil
}

func (s *CreditService) List(userID string) ([]domain.Credit, error) {
	return s.Credits.ListByUser(userID)
}

func (s *CreditService) Get(userID, id string) (*domain.Credit, error) {
	credit, err := s.Credits.Get(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if credit.UserID != userID {
		return nil, ErrNotFound
	}
	return &credit, nil
}

func (s *CreditService) FindByBuyer(userID, buyer string) ([]domain.Credit, error) {
	return s.Credits.ListByBuyer(userID, strings.ToLower(buyer))
}

func (s *CreditService) FindByDate(userID, isoDate string) ([]domain.Credit, error) {
	start, end := dayWindow(isoDate)
	return s.Credits.ListByDateRange(userID, start, end)
}
