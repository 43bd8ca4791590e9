package services

import (
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrOutOfStock = errors.New("out of stock")

// StockService is the only code path that moves product stock on behalf of
// transactions. Reserve and Release each persist immediately; Correct wraps
// its release+reserve pair in one transaction so a failed re-reserve leaves
// no trace.
type StockService struct {
	DB *sqlx.DB
}

func NewStockService(db *sqlx.DB) *StockService { return &StockService{DB: db} }

// Reserve takes qty units out of stock, or fails with ErrOutOfStock without
// touching anything. The availability check and the decrement are one guarded
// UPDATE, so a single reservation can never drive stock negative.
func (s *StockService) Reserve(productID string, qty int) error {
	return reserve(s.DB, productID, qty)
}

// Release puts qty units back (used when reversing a transaction's effect).
func (s *StockService) Release(productID string, qty int) error {
	return release(s.DB, productID, qty)
}

// Correct reverses a transaction's original reservation and applies the new
// one: undo, then redo. Stock is restored to its pre-transaction level before
// the new quantity is tested, so shrinking a quantity always succeeds even
// when free stock is otherwise exhausted.
func (s *StockService) Correct(productID string, oldQty, newQty int) error {
	tx, err := s.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := release(tx, productID, oldQty); err != nil {
		return err
	}
	if err := reserve(tx, productID, newQty); err != nil {
		return err
	}
	return tx.Commit()
}

func reserve(e sqlx.Execer, productID string, qty int) error {
	res, err := e.Exec(`
	  UPDATE products SET stock = stock - ? WHERE id = ? AND stock >= ?
	`, qty, productID, qty)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrOutOfStock
	}
	return nil
}

func release(e sqlx.Execer, productID string, qty int) error {
	_, err := e.Exec(`UPDATE products SET stock = stock + ? WHERE id = ?`, qty, productID)
	return err
}
