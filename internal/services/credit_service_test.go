package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopbook/internal/domain"
	"shopbook/internal/repos"
	"shopbook/internal/services"
)

func newCreditService(db *sqlx.DB) *services.CreditService {
	return services.NewCreditService(
		repos.NewProductRepo(db),
		repos.NewCreditRepo(db),
		services.NewStockService(db),
	)
}

func TestCreditService_CreateDebt(t *testing.T) {
	db := memdb(t)
	seedProduct(t, db, "p-1", "12.50", "8", 25)
	svc := newCreditService(db)

	credit, err := svc.CreateDebt("u-1", services.CreditEntry{ProductID: "p-1", Buyer: "Kofi", Quantity: 15})
	require.NoError(t, err)

	assert.Equal(t, 10, stockOf(t, db, "p-1"))
	assert.Equal(t, "kofi", credit.Buyer)
	assert.Equal(t, domain.CreditPending, credit.Status)
	assert.True(t, credit.TotalDebt.Equal(dec("187.5")), "totalDebt = price x quantity, got %s", credit.TotalDebt)
	assert.True(t, credit.AmountPaid.IsZero())
	assert.NotEmpty(t, credit.ReceiptID)
}

func TestCreditService_CreateDebt_Errors(t *testing.T) {
	db := memdb(t)
	seedProduct(t, db, "p-1", "12.50", "8", 5)
	svc := newCreditService(db)

	_, err := svc.CreateDebt("u-1", services.CreditEntry{ProductID: "missing", Buyer: "kofi", Quantity: 1})
	require.ErrorIs(t, err, services.ErrNotFound)

	_, err = svc.CreateDebt("u-1", services.CreditEntry{ProductID: "p-1", Buyer: "kofi", Quantity: 6})
	require.ErrorIs(t, err, services.ErrOutOfStock)
	assert.Equal(t, 5, stockOf(t, db, "p-1"))

	// a rejected reservation leaves no credit behind
	credits, err := svc.List("u-1")
	require.NoError(t, err)
	assert.Empty(t, credits)
}

func TestCreditService_PayDebt(t *testing.T) {
	db := memdb(t)
	seedProduct(t, db, "p-1", "10", "6", 25)
	svc := newCreditService(db)

	credit, err := svc.CreateDebt("u-1", services.CreditEntry{ProductID: "p-1", Buyer: "kofi", Quantity: 15})
	require.NoError(t, err)
	require.True(t, credit.TotalDebt.Equal(dec("150")))

	// partial payment keeps it pending
	credit, err = svc.PayDebt("u-1", credit.ID, dec("50"))
	require.NoError(t, err)
	assert.Equal(t, domain.CreditPending, credit.Status)
	assert.True(t, credit.TotalDebt.Equal(dec("100")))
	assert.True(t, credit.AmountPaid.Equal(dec("50")))

	// paying one cent over the remaining debt is rejected
	_, err = svc.PayDebt("u-1", credit.ID, dec("100.01"))
	require.ErrorIs(t, err, services.ErrExceedsDebt)

	// paying exactly the remaining debt settles it at exactly zero
	credit, err = svc.PayDebt("u-1", credit.ID, dec("100"))
	require.NoError(t, err)
	assert.Equal(t, domain.CreditSettled, credit.Status)
	assert.True(t, credit.TotalDebt.IsZero())
	assert.True(t, credit.AmountPaid.Equal(dec("150")))

	// settled rejects any further payment, whatever the amount
	_, err = svc.PayDebt("u-1", credit.ID, dec("0.01"))
	require.ErrorIs(t, err, services.ErrAlreadySettled)
	_, err = svc.PayDebt("u-1", credit.ID, dec("1000"))
	require.ErrorIs(t, err, services.ErrAlreadySettled)
}

func TestCreditService_PayDebt_NotFound(t *testing.T) {
	db := memdb(t)
	svc := newCreditService(db)

	_, err := svc.PayDebt("u-1", "missing", dec("1"))
	require.ErrorIs(t, err, services.ErrNotFound)
}

func TestCreditService_CorrectDebt(t *testing.T) {
	db := memdb(t)
	seedProduct(t, db, "p-1", "10", "6", 20)
	svc := newCreditService(db)

	credit, err := svc.CreateDebt("u-1", services.CreditEntry{ProductID: "p-1", Buyer: "kofi", Quantity: 8})
	require.NoError(t, err)
	require.Equal(t, 12, stockOf(t, db, "p-1"))

	_, err = svc.PayDebt("u-1", credit.ID, dec("30"))
	require.NoError(t, err)

	// correction to a new quantity recomputes debt net of what was paid
	credit, err = svc.CorrectDebt("u-1", credit.ID, services.CreditEntry{ProductID: "p-1", Buyer: "Kofi", Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, 15, stockOf(t, db, "p-1"))
	assert.Equal(t, 5, credit.Quantity)
	assert.True(t, credit.TotalDebt.Equal(dec("20")), "50 - 30 already paid, got %s", credit.TotalDebt)
	assert.Equal(t, domain.CreditPending, credit.Status)

	// shrinking below the amount already paid floors the debt at zero and settles
	credit, err = svc.CorrectDebt("u-1", credit.ID, services.CreditEntry{ProductID: "p-1", Buyer: "kofi", Quantity: 2})
	require.NoError(t, err)
	assert.True(t, credit.TotalDebt.IsZero())
	assert.Equal(t, domain.CreditSettled, credit.Status)
}

func TestCreditService_CorrectDebt_SameQuantityKeepsStock(t *testing.T) {
	db := memdb(t)
	seedProduct(t, db, "p-1", "10", "6", 25)
	svc := newCreditService(db)

	credit, err := svc.CreateDebt("u-1", services.CreditEntry{ProductID: "p-1", Buyer: "kofi", Quantity: 15})
	require.NoError(t, err)

	_, err = svc.CorrectDebt("u-1", credit.ID, services.CreditEntry{ProductID: "p-1", Buyer: "kofi", Quantity: 15})
	require.NoError(t, err)
	assert.Equal(t, 10, stockOf(t, db, "p-1"))
}

func TestCreditService_CorrectDebt_OutOfStockLeavesEverything(t *testing.T) {
	db := memdb(t)
	seedProduct(t, db, "p-1", "10", "6", 10)
	svc := newCreditService(db)

	credit, err := svc.CreateDebt("u-1", services.CreditEntry{ProductID: "p-1", Buyer: "kofi", Quantity: 8})
	require.NoError(t, err)
	require.Equal(t, 2, stockOf(t, db, "p-1"))

	// undo frees 8 units (10 available), 11 is still too many
	_, err = svc.CorrectDebt("u-1", credit.ID, services.CreditEntry{ProductID: "p-1", Buyer: "kofi", Quantity: 11})
	require.ErrorIs(t, err, services.ErrOutOfStock)
	assert.Equal(t, 2, stockOf(t, db, "p-1"))

	unchanged, err := svc.Get("u-1", credit.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, unchanged.Quantity)
}

func TestCreditService_TotalDebtsAmount(t *testing.T) {
	db := memdb(t)
	seedProduct(t, db, "p-1", "10", "6", 100)
	svc := newCreditService(db)

	a, err := svc.CreateDebt("u-1", services.CreditEntry{ProductID: "p-1", Buyer: "kofi", Quantity: 3})
	require.NoError(t, err)
	_, err = svc.CreateDebt("u-1", services.CreditEntry{ProductID: "p-1", Buyer: "abena", Quantity: 5})
	require.NoError(t, err)

	total, err := svc.TotalDebtsAmount("u-1")
	require.NoError(t, err)
	assert.True(t, total.Equal(dec("80")))

	// settled credits are excluded from the scan
	_, err = svc.PayDebt("u-1", a.ID, dec("30"))
	require.NoError(t, err)
	total, err = svc.TotalDebtsAmount("u-1")
	require.NoError(t, err)
	assert.True(t, total.Equal(dec("50")))
}

func TestCreditService_FindByBuyerIsCaseInsensitive(t *testing.T) {
	db := memdb(t)
	seedProduct(t, db, "p-1", "10", "6", 100)
	svc := newCreditService(db)

	_, err := svc.CreateDebt("u-1", services.CreditEntry{ProductID: "p-1", Buyer: "KoFi", Quantity: 1})
	require.NoError(t, err)

	credits, err := svc.FindByBuyer("u-1", "KOFI")
	require.NoError(t, err)
	require.Len(t, credits, 1)
	assert.Equal(t, "kofi", credits[0].Buyer)
}

func TestCreditService_OwnerScoping(t *testing.T) {
	db := memdb(t)
	seedProduct(t, db, "p-1", "10", "6", 100)
	_, err := db.Exec(`INSERT INTO users(id, name, email, password_hash) VALUES('u-2','Esi','esi@shop.test','x')`)
	require.NoError(t, err)
	svc := newCreditService(db)

	credit, err := svc.CreateDebt("u-1", services.CreditEntry{ProductID: "p-1", Buyer: "kofi", Quantity: 1})
	require.NoError(t, err)

	_, err = svc.Get("u-2", credit.ID)
	require.ErrorIs(t, err, services.ErrNotFound)
	_, err = svc.PayDebt("u-2", credit.ID, dec("1"))
	require.ErrorIs(t, err, services.ErrNotFound)
}
