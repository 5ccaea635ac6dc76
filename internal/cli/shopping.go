package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/shopkeeper/internal/models"
	"github.com/dmitrijs2005/shopkeeper/internal/services"
)

func (a *App) Cart(ctx context.Context, _ []string) error {
	u, err := a.currentUser()
	if err != nil {
		return err
	}
	lines := a.cart.Lines(ctx, u.ID)

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ITEM\tPRODUCT\tQTY\tPRICE\tLINE")
	for _, l := range lines {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n",
			l.ID, l.ProductName, l.Quantity, l.UnitPrice.StringFixed(2), l.LineTotal().StringFixed(2))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return a.done("%d items, total %s", a.cart.Count(ctx, u.ID), a.cart.Total(ctx, u.ID).StringFixed(2))
}

func (a *App) AddToCart(ctx context.Context, args []string) error {
	u, err := a.currentUser()
	if err != nil {
		return err
	}
	productID, err := a.idArg(args, 0, "product id")
	if err != nil {
		return err
	}
	qtyText := "1"
	if len(args) > 1 {
		qtyText = args[1]
	}
	qty, err := parseInt("quantity", qtyText)
	if err != nil {
		return err
	}
	if qty <= 0 {
		return invalid("quantity", qtyText)
	}

	p := a.products.GetByID(ctx, productID)
	if p == nil || !p.IsActive {
		return errNotFound
	}
	if a.cart.Add(ctx, u.ID, productID, qty) == -1 {
		return notStored("cart item")
	}
	return a.done("Added %d x %s", qty, p.Name)
}

// ownCartItem loads a cart item and checks it belongs to the logged-in user.
func (a *App) ownCartItem(ctx context.Context, args []string) (*models.CartItem, error) {
	u, err := a.currentUser()
	if err != nil {
		return nil, err
	}
	id, err := a.idArg(args, 0, "cart item id")
	if err != nil {
		return nil, err
	}
	item := a.cart.GetByID(ctx, id)
	if item == nil || item.UserID != u.ID {
		return nil, errNotFound
	}
	return item, nil
}

// RemoveFromCart drops a cart line, or with a quantity sets it instead.
// "rmcart product <id>" drops whatever line holds that product.
func (a *App) RemoveFromCart(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "product" {
		return a.removeProduct(ctx, args[1:])
	}
	item, err := a.ownCartItem(ctx, args)
	if err != nil {
		return err
	}
	if len(args) > 1 {
		qty, err := parseInt("quantity", args[1])
		if err != nil {
			return err
		}
		if qty > 0 {
			if !a.cart.UpdateQuantity(ctx, item.ID, qty) {
				return notStored("quantity")
			}
			return a.done("Quantity set to %d", qty)
		}
	}
	if !a.cart.Remove(ctx, item.ID) {
		return notStored("removal")
	}
	return a.done("Removed item %d", item.ID)
}

func (a *App) removeProduct(ctx context.Context, args []string) error {
	u, err := a.currentUser()
	if err != nil {
		return err
	}
	productID, err := a.idArg(args, 0, "product id")
	if err != nil {
		return err
	}
	if !a.cart.RemoveProduct(ctx, u.ID, productID) {
		return notStored("removal")
	}
	return a.done("Removed product %d from the cart", productID)
}

func (a *App) ClearCart(ctx context.Context, _ []string) error {
	u, err := a.currentUser()
	if err != nil {
		return err
	}
	if !a.cart.Clear(ctx, u.ID) {
		return notStored("cart")
	}
	return a.done("Cart cleared")
}

// defaultAddress returns the id of the user's default address of kind.
func (a *App) defaultAddress(ctx context.Context, userID int64, kind string) string {
	for _, ad := range a.catalog.Addresses(ctx, userID) {
		if ad.AddressType == kind && ad.IsDefault {
			return strconv.FormatInt(ad.ID, 10)
		}
	}
	return ""
}

func (a *App) Checkout(ctx context.Context, _ []string) error {
	u, err := a.currentUser()
	if err != nil {
		return err
	}

	ship, err := a.askDefault("Shipping address id", a.defaultAddress(ctx, u.ID, models.AddressShipping))
	if err != nil {
		return err
	}
	bill, err := a.askDefault("Billing address id", a.defaultAddress(ctx, u.ID, models.AddressBilling))
	if err != nil {
		return err
	}
	payment, err := a.ask("Payment method")
	if err != nil {
		return err
	}

	req := services.CheckoutRequest{UserID: u.ID, PaymentMethod: payment}
	if req.ShippingAddressID, err = parseOptionalID("shipping address", ship); err != nil {
		return err
	}
	if req.BillingAddressID, err = parseOptionalID("billing address", bill); err != nil {
		return err
	}

	id, err := a.orders.Checkout(ctx, req)
	if err != nil {
		return err
	}
	o := a.orders.GetByID(ctx, id)
	if o == nil {
		return a.done("Placed order %d", id)
	}
	return a.done("Placed order %s, total %s", o.OrderNumber, o.TotalAmount.StringFixed(2))
}

// Orders lists orders with the given status, the logged-in user's orders,
// or every order.
func (a *App) Orders(ctx context.Context, args []string) error {
	var list []models.Order
	switch {
	case len(args) > 0:
		if err := models.ValidateOrderStatus(args[0]); err != nil {
			return err
		}
		list = a.orders.GetByStatus(ctx, args[0])
	case a.user != nil:
		list = a.orders.GetByUser(ctx, a.user.ID)
	default:
		list = a.orders.GetAll(ctx)
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNUMBER\tUSER\tSTATUS\tPAYMENT\tTOTAL\tCREATED")
	for _, o := range list {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%s\t%s\n", o.ID, o.OrderNumber, o.UserID, o.Status,
			o.PaymentStatus, o.TotalAmount.StringFixed(2), o.CreatedAt.Format("2006-01-02 15:04"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return a.done("(%d orders)", len(list))
}

func (a *App) Order(ctx context.Context, args []string) error {
	key, err := a.arg(args, 0, "Enter order id or number")
	if err != nil {
		return err
	}
	var o *models.Order
	if id, err := strconv.ParseInt(key, 10, 64); err == nil {
		o = a.orders.GetByID(ctx, id)
	} else {
		o = a.orders.GetByOrderNumber(ctx, key)
	}
	if o == nil {
		return errNotFound
	}

	fmt.Fprintf(a.out, "Order %s (id %d) for user %d\n", o.OrderNumber, o.ID, o.UserID)
	fmt.Fprintf(a.out, "Status %s, payment %s via %s\n", o.Status, o.PaymentStatus, o.PaymentMethod)

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ITEM\tPRODUCT\tQTY\tPRICE\tLINE")
	for _, it := range a.orders.GetItemsByOrder(ctx, o.ID) {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%s\t%s\n",
			it.ID, it.ProductID, it.Quantity, it.UnitPrice.StringFixed(2), it.TotalPrice.StringFixed(2))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if !o.ShippingCost.IsZero() || !o.TaxAmount.IsZero() {
		fmt.Fprintf(a.out, "Shipping %s, tax %s\n", o.ShippingCost.StringFixed(2), o.TaxAmount.StringFixed(2))
	}
	return a.done("Total %s", o.TotalAmount.StringFixed(2))
}

func (a *App) OrderStatus(ctx context.Context, args []string) error {
	id, err := a.idArg(args, 0, "order id")
	if err != nil {
		return err
	}
	status, err := a.arg(args, 1, "New status (pending/processing/shipped/delivered/cancelled)")
	if err != nil {
		return err
	}
	if err := models.ValidateOrderStatus(status); err != nil {
		return err
	}
	if !a.orders.UpdateStatus(ctx, id, status) {
		return notStored("status")
	}
	return a.done("Order %d is now %s", id, status)
}
