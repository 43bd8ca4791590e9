package repos

import (
	"shopbook/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type SaleRepo struct{ db *sqlx.DB }

func NewSaleRepo(db *sqlx.DB) *SaleRepo { return &SaleRepo{db: db} }

const saleCols = `id, user_id, product_id, buyer, date, quantity, total_price, receipt_id`

func (r *SaleRepo) Create(s *domain.Sale) error {
	_, err := r.db.Exec(`
	  INSERT INTO sales(`+saleCols+`)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.UserID, s.ProductID, s.Buyer, s.Date, s.Quantity, s.TotalPrice, s.ReceiptID)
	return err
}

func (r *SaleRepo) Get(id string) (domain.Sale, error) {
	var s domain.Sale
	err := r.db.Get(&s, `SELECT `+saleCols+` FROM sales WHERE id = ?`, id)
	return s, err
}

// Update rewrites the correctable fields; date and receipt id carry over
// from the original transaction.
func (r *SaleRepo) Update(s *domain.Sale) error {
	_, err := r.db.Exec(`
	  UPDATE sales
	  SET product_id = ?, buyer = ?, quantity = ?, total_price = ?
	  WHERE id = ?
	`, s.ProductID, s.Buyer, s.Quantity, s.TotalPrice, s.ID)
	return err
}

func (r *SaleRepo) ListByUser(userID string) ([]domain.Sale, error) {
	var out []domain.Sale
	err := r.db.Select(&out, `SELECT `+saleCols+` FROM sales WHERE user_id = ? ORDER BY date DESC`, userID)
	return out, err
}

func (r *SaleRepo) ListByBuyer(userID, buyer string) ([]domain.Sale, error) {
	var out []domain.Sale
	err := r.db.Select(&out, `
	  SELECT `+saleCols+` FROM sales WHERE user_id = ? AND buyer = ? ORDER BY date DESC
	`, userID, buyer)
	return out, err
}

func (r *SaleRepo) ListByProduct(userID, productID string) ([]domain.Sale, error) {
	var out []domain.Sale
	err := r.db.Select(&out, `
	  SELECT `+saleCols+` FROM sales WHERE user_id = ? AND product_id = ? ORDER BY date DESC
	`, userID, productID)
	return out, err
}

// ListByDateRange returns sales with start <= date <= end. Dates are
// fixed-width UTC strings, so string comparison is chronological.
func (r *SaleRepo) ListByDateRange(userID, start, end string) ([]domain.Sale, error) {
	var out []domain.Sale
	err := r.db.Select(&out, `
	  SELECT `+saleCols+` FROM sales
	  WHERE user_id = ? AND date >= ? AND date <= ?
	  ORDER BY date
	`, userID, start, end)
	return out, err
}

func (r *SaleRepo) CountByDateRange(userID, start, end string) (int, error) {
	var n int
	err := r.db.Get(&n, `
	  SELECT COUNT(*) FROM sales WHERE user_id = ? AND date >= ? AND date <= ?
	`, userID, start, end)
	return n, err
}

// SaleWithCost carries the product's *current* unit cost alongside the sale.
// Sales whose product has since been deleted drop out of the join.
type SaleWithCost struct {
	domain.Sale
	Cost decimal.Decimal `db:"cost"`
}

func (r *SaleRepo) ListByDateRangeWithCost(userID, start, end string) ([]SaleWithCost, error) {
	var out []SaleWithCost
	err := r.db.Select(&out, `
	  SELECT s.id, s.user_id, s.product_id, s.buyer, s.date, s.quantity, s.total_price, s.receipt_id,
	         p.cost
	  FROM sales s
	  JOIN products p ON p.id = s.product_id
	  WHERE s.user_id = ? AND s.date >= ? AND s.date <= ?
	  ORDER BY s.date
	`, userID, start, end)
	return out, err
}
