package domain

import "github.com/shopspring/decimal"

// Monetary fields are plain JSON numbers on the wire.
func init() { decimal.MarshalJSONWithoutQuotes = true }

// DateLayout is the canonical timestamp format for transaction dates.
// Fixed width and always UTC, so lexicographic order equals chronological
// order and SQL range filters work on plain string comparison.
const DateLayout = "2006-01-02T15:04:05.000Z"

type Product struct {
	ID          string          `db:"id" json:"id"`
	UserID      string          `db:"user_id" json:"-"`
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description"`
	Size        string          `db:"size" json:"size"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Cost        decimal.Decimal `db:"cost" json:"cost"`
	Supplier    string          `db:"supplier" json:"supplier"`
	Stock       int             `db:"stock" json:"stock"`
	CreatedAt   string          `db:"created_at" json:"-"`
}

type Sale struct {
	ID         string          `db:"id" json:"id"`
	UserID     string          `db:"user_id" json:"-"`
	ProductID  string          `db:"product_id" json:"product"`
	Buyer      string          `db:"buyer" json:"buyer"`
	Date       string          `db:"date" json:"date"`
	Quantity   int             `db:"quantity" json:"quantity"`
	TotalPrice decimal.Decimal `db:"total_price" json:"totalPrice"`
	ReceiptID  string          `db:"receipt_id" json:"receiptId"`
}

// Credit statuses. A credit is settled exactly when its total debt reaches zero.
const (
	CreditPending = "pending"
	CreditSettled = "settled"
)

type Credit struct {
	ID         string          `db:"id" json:"id"`
	UserID     string          `db:"user_id" json:"-"`
	ProductID  string          `db:"product_id" json:"product"`
	Buyer      string          `db:"buyer" json:"buyer"`
	Date       string          `db:"date" json:"date"`
	Quantity   int             `db:"quantity" json:"quantity"`
	AmountPaid decimal.Decimal `db:"amount_paid" json:"amountPaid"`
	TotalDebt  decimal.Decimal `db:"total_debt" json:"totalDebt"`
	Status     string          `db:"status" json:"status"`
	ReceiptID  string          `db:"receipt_id" json:"receiptId"`
}

// Settled reports whether the credit's repayment lifecycle is terminal.
func (c *Credit) Settled() bool { return c.Status == CreditSettled }
