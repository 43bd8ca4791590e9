package services

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shopbook/internal/domain"
	"shopbook/internal/repos"
)

var ErrNameTaken = errors.New("product name already in use")

type ProductService struct {
	Products *repos.ProductRepo
}

func NewProductService(products *repos.ProductRepo) *ProductService {
	return &ProductService{Products: products}
}

type ProductEntry struct {
	Name        string
	Description string
	Size        string
	Price       decimal.Decimal
	Cost        decimal.Decimal
	Supplier    string
	Stock       int
}

func (s *ProductService) List(userID string) ([]domain.Product, error) {
	return s.Products.ListByUser(userID)
}

func (s *ProductService) GetByName(userID, name string) (*domain.Product, error) {
	product, err := s.Products.GetByName(userID, name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (s *ProductService) Create(userID string, entry ProductEntry) (*domain.Product, error) {
	if _, err := s.Products.GetByName(userID, entry.Name); err == nil {
		return nil, ErrNameTaken
	} else if err != sql.ErrNoRows {
		return nil, err
	}

	product := &domain.Product{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        entry.Name,
		Description: entry.Description,
		Size:        entry.Size,
		Price:       entry.Price,
		Cost:        entry.Cost,
		Supplier:    entry.Supplier,
		Stock:       entry.Stock,
	}
	if err := s.Products.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update replaces a product's fields, keyed by its name within the owner's
// catalog. Setting stock here is inventory intake by the owner, distinct from
// the transaction-driven stock adjustments.
func (s *ProductService) Update(userID string, entry ProductEntry) (*domain.Product, error) {
	product := &domain.Product{
		UserID:      userID,
		Name:        entry.Name,
		Description: entry.Description,
		Size:        entry.Size,
		Price:       entry.Price,
		Cost:        entry.Cost,
		Supplier:    entry.Supplier,
		Stock:       entry.Stock,
	}
	n, err := s.Products.Update(product)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return s.GetByName(userID, entry.Name)
}

// Delete removes a product. Historical sales and credits keep their weak
// reference and are not touched.
func (s *ProductService) Delete(userID, name string) error {
	n, err := s.Products.DeleteByName(userID, name)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
