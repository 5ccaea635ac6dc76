package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/shopkeeper/internal/dbx"
	"github.com/dmitrijs2005/shopkeeper/internal/repositories/addresses"
	"github.com/dmitrijs2005/shopkeeper/internal/repositories/cartitems"
	"github.com/dmitrijs2005/shopkeeper/internal/repositories/categories"
	"github.com/dmitrijs2005/shopkeeper/internal/repositories/orders"
	"github.com/dmitrijs2005/shopkeeper/internal/repositories/products"
	"github.com/dmitrijs2005/shopkeeper/internal/repositories/reviews"
	"github.com/dmitrijs2005/shopkeeper/internal/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Products(db dbx.DBTX) products.Repository
	Orders(db dbx.DBTX) orders.Repository
	CartItems(db dbx.DBTX) cartitems.Repository
	Categories(db dbx.DBTX) categories.Repository
	Addresses(db dbx.DBTX) addresses.Repository
	Reviews(db dbx.DBTX) reviews.Repository
}
