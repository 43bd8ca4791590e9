package handlers

import (
	"github.com/jmoiron/sqlx"

	"shopbook/internal/repos"
	"shopbook/internal/services"
)

type Deps struct {
	UserHandler    *UserHandler
	ProductHandler *ProductHandler
	SaleHandler    *SaleHandler
	CreditHandler  *CreditHandler
}

func NewDeps(db *sqlx.DB, auth *services.AuthService) *Deps {
	productRepo := repos.NewProductRepo(db)
	saleRepo := repos.NewSaleRepo(db)
	creditRepo := repos.NewCreditRepo(db)

	stockSvc := services.NewStockService(db)
	productSvc := services.NewProductService(productRepo)
	saleSvc := services.NewSaleService(productRepo, saleRepo, stockSvc)
	creditSvc := services.NewCreditService(productRepo, creditRepo, stockSvc)

	return &Deps{
		UserHandler:    &UserHandler{Auth: auth},
		ProductHandler: &ProductHandler{Products: productSvc},
		SaleHandler:    &SaleHandler{Sales: saleSvc},
		CreditHandler:  &CreditHandler{Credits: creditSvc},
	}
}
