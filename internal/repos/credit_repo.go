package repos

import (
	"shopbook/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CreditRepo struct{ db *sqlx.DB }

func NewCreditRepo(db *sqlx.DB) *CreditRepo { return &CreditRepo{db: db} }

const creditCols = `id, user_id, product_id, buyer, date, quantity, amount_paid, total_debt, status, receipt_id`

func (r *CreditRepo) Create(c *domain.Credit) error {
	_, err := r.db.Exec(`
	  INSERT INTO credits(`+creditCols+`)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.UserID, c.ProductID, c.Buyer, c.Date, c.Quantity, c.AmountPaid, c.TotalDebt, c.Status, c.ReceiptID)
	return err
}

func (r *CreditRepo) Get(id string) (domain.Credit, error) {
	var c domain.Credit
	err := r.db.Get(&c, `SELECT `+creditCols+` FROM credits WHERE id = ?`, id)
	return c, err
}

func (r *CreditRepo) Update(c *domain.Credit) error {
	_, err := r.db.Exec(`
	  UPDATE credits
	  SET product_id = ?, buyer = ?, quantity = ?, amount_paid = ?, total_debt = ?, status = ?
	  WHERE id = ?
	`, c.ProductID, c.Buyer, c.Quantity, c.AmountPaid, c.TotalDebt, c.Status, c.ID)
	return err
}

func (r *CreditRepo) ListByUser(userID string) ([]domain.Credit, error) {
	var out []domain.Credit
	err := r.db.Select(&out, `SELECT `+creditCols+` FROM credits WHERE user_id = ? ORDER BY date DESC`, userID)
	return out, err
}

func (r *CreditRepo) ListByBuyer(userID, buyer string) ([]domain.Credit, error) {
	var out []domain.Credit
	err := r.db.Select(&out, `
	  SELECT `+creditCols+` FROM credits WHERE user_id = ? AND buyer = ? ORDER BY date DESC
	`, userID, buyer)
	return out, err
}

func (r *CreditRepo) ListByDateRange(userID, start, end string) ([]domain.Credit, error) {
	var out []domain.Credit
	err := r.db.Select(&out, `
	  SELECT `+creditCols+` FROM credits
	  WHERE user_id = ? AND date >= ? AND date <= ?
	  ORDER BY date
	`, userID, start, end)
	return out, err
}

// ListPendingByUser feeds the outstanding-debt total; settled credits are
// excluded from the scan entirely rather than contributing zero.
func (r *CreditRepo) ListPendingByUser(userID string) ([]domain.Credit, error) {
	var out []domain.Credit
	err := r.db.Select(&out, `
	  SELECT `+creditCols+` FROM credits WHERE user_id = ? AND status = ?
	`, userID, domain.CreditPending)
	return out, err
}
