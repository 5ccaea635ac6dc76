package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests provide a recording stub.
type execIface interface {
	isLoggedIn() bool

	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	Users(ctx context.Context, args []string) error
	Addresses(ctx context.Context, args []string) error
	AddAddress(ctx context.Context, args []string) error
	DefaultAddress(ctx context.Context, args []string) error

	Products(ctx context.Context, args []string) error
	Product(ctx context.Context, args []string) error
	AddProduct(ctx context.Context, args []string) error
	EditProduct(ctx context.Context, args []string) error
	Stock(ctx context.Context, args []string) error
	DeleteProduct(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	PriceRange(ctx context.Context, args []string) error
	Categories(ctx context.Context, args []string) error
	AddCategory(ctx context.Context, args []string) error
	Reviews(ctx context.Context, args []string) error
	AddReview(ctx context.Context, args []string) error

	Cart(ctx context.Context, args []string) error
	AddToCart(ctx context.Context, args []string) error
	RemoveFromCart(ctx context.Context, args []string) error
	ClearCart(ctx context.Context, args []string) error
	Checkout(ctx context.Context, args []string) error
	Orders(ctx context.Context, args []string) error
	Order(ctx context.Context, args []string) error
	OrderStatus(ctx context.Context, args []string) error

	SQL(ctx context.Context, stmt string) error
	Exec(ctx context.Context, stmt string) error
}

const (
	helpGuest = `Available commands:
  register, login, users
  products [all], product <id|sku>, addproduct, editproduct <id>, stock <id> <qty>, delproduct <id>
  search <term>, pricerange <min> <max>, categories [parent], addcategory
  reviews <product>, orders [status], order <id|number>, orderstatus <id> <status>
  sql <query>, exec <statement>, exit`
	helpUser = `Also available while logged in:
  cart, addtocart <product> <qty>, rmcart <item> [qty] | rmcart product <id>, clearcart, checkout
  addresses, addaddress, defaultaddress <id>, review <product>, logout`
)

// runREPL reads commands from reader until EOF or "exit"/"quit". The first
// token picks the handler; the remaining tokens are its arguments, except for
// sql and exec which get the rest of the line verbatim. Handler errors are
// printed and the loop carries on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("shop%s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			printlnFn(helpGuest)
			if a.isLoggedIn() {
				printlnFn(helpUser)
			}

		case "register":
			cmdErr = a.Register(ctx, args)
		case "login":
			cmdErr = a.Login(ctx, args)
		case "logout":
			cmdErr = a.Logout(ctx, args)
		case "users":
			cmdErr = a.Users(ctx, args)
		case "addresses":
			cmdErr = a.Addresses(ctx, args)
		case "addaddress":
			cmdErr = a.AddAddress(ctx, args)
		case "defaultaddress":
			cmdErr = a.DefaultAddress(ctx, args)

		case "products":
			cmdErr = a.Products(ctx, args)
		case "product":
			cmdErr = a.Product(ctx, args)
		case "addproduct":
			cmdErr = a.AddProduct(ctx, args)
		case "editproduct":
			cmdErr = a.EditProduct(ctx, args)
		case "stock":
			cmdErr = a.Stock(ctx, args)
		case "delproduct":
			cmdErr = a.DeleteProduct(ctx, args)
		case "search":
			cmdErr = a.Search(ctx, args)
		case "pricerange":
			cmdErr = a.PriceRange(ctx, args)
		case "categories":
			cmdErr = a.Categories(ctx, args)
		case "addcategory":
			cmdErr = a.AddCategory(ctx, args)
		case "reviews":
			cmdErr = a.Reviews(ctx, args)
		case "review":
			cmdErr = a.AddReview(ctx, args)

		case "cart":
			cmdErr = a.Cart(ctx, args)
		case "addtocart":
			cmdErr = a.AddToCart(ctx, args)
		case "rmcart":
			cmdErr = a.RemoveFromCart(ctx, args)
		case "clearcart":
			cmdErr = a.ClearCart(ctx, args)
		case "checkout":
			cmdErr = a.Checkout(ctx, args)
		case "orders":
			cmdErr = a.Orders(ctx, args)
		case "order":
			cmdErr = a.Order(ctx, args)
		case "orderstatus":
			cmdErr = a.OrderStatus(ctx, args)

		case "sql":
			cmdErr = a.SQL(ctx, statement(line, cmd))
		case "exec":
			cmdErr = a.Exec(ctx, statement(line, cmd))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}

// statement returns what follows the command word on line, inner spacing
// intact.
func statement(line, cmd string) string {
	rest := strings.TrimLeftFunc(line, unicode.IsSpace)
	return strings.TrimSpace(strings.TrimPrefix(rest, cmd))
}
