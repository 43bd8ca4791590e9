package repos

import (
	"shopbook/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Create(p *domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(id, user_id, name, description, size, price, cost, supplier, stock)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.UserID, p.Name, p.Description, p.Size, p.Price, p.Cost, p.Supplier, p.Stock)
	return err
}

func (r *ProductRepo) ListByUser(userID string) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT id, user_id, name, description, size, price, cost, supplier, stock, created_at
	  FROM products
	  WHERE user_id = ?
	  ORDER BY LOWER(name)
	`, userID)
	return out, err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
	  SELECT id, user_id, name, description, size, price, cost, supplier, stock, created_at
	  FROM products
	  WHERE id = ?
	`, id)
	return p, err
}

func (r *ProductRepo) GetByName(userID, name string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
	  SELECT id, user_id, name, description, size, price, cost, supplier, stock, created_at
	  FROM products
	  WHERE user_id = ? AND LOWER(name) = LOWER(?)
	`, userID, name)
	return p, err
}

// Update rewrites the editable fields of an owner's product, keyed by name.
// Stock set here is direct inventory intake; transaction code never calls this.
func (r *ProductRepo) Update(p *domain.Product) (int64, error) {
	res, err := r.db.Exec(`
	  UPDATE products
	  SET description = ?, size = ?, price = ?, cost = ?, supplier = ?, stock = ?
	  WHERE user_id = ? AND LOWER(name) = LOWER(?)
	`, p.Description, p.Size, p.Price, p.Cost, p.Supplier, p.Stock, p.UserID, p.Name)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *ProductRepo) DeleteByName(userID, name string) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM products WHERE user_id = ? AND LOWER(name) = LOWER(?)`, userID, name)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
