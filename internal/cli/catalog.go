package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/shopkeeper/internal/models"
)

func (a *App) printProducts(list []models.Product) error {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSKU\tNAME\tPRICE\tSTOCK\tACTIVE")
	for _, p := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%t\n", p.ID, p.SKU, p.Name, p.Price.StringFixed(2), p.StockQuantity, p.IsActive)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return a.done("(%d products)", len(list))
}

// Products lists active products, or every product with "all".
func (a *App) Products(ctx context.Context, args []string) error {
	activeOnly := len(args) == 0 || args[0] != "all"
	return a.printProducts(a.products.GetAll(ctx, activeOnly))
}

// lookupProduct resolves a numeric id or, failing that, a SKU.
func (a *App) lookupProduct(ctx context.Context, key string) *models.Product {
	if id, err := strconv.ParseInt(key, 10, 64); err == nil {
		return a.products.GetByID(ctx, id)
	}
	return a.products.GetBySKU(ctx, key)
}

func (a *App) Product(ctx context.Context, args []string) error {
	key, err := a.arg(args, 0, "Enter product id or SKU")
	if err != nil {
		return err
	}
	p := a.lookupProduct(ctx, key)
	if p == nil {
		return errNotFound
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", p.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", p.Name)
	fmt.Fprintf(tw, "SKU:\t%s\n", p.SKU)
	fmt.Fprintf(tw, "Price:\t%s\n", p.Price.StringFixed(2))
	fmt.Fprintf(tw, "Stock:\t%d\n", p.StockQuantity)
	if p.CategoryID != nil {
		fmt.Fprintf(tw, "Category:\t%d\n", *p.CategoryID)
	}
	if !p.Weight.IsZero() {
		fmt.Fprintf(tw, "Weight:\t%s\n", p.Weight.String())
	}
	if p.Dimensions != "" {
		fmt.Fprintf(tw, "Dimensions:\t%s\n", p.Dimensions)
	}
	fmt.Fprintf(tw, "Active:\t%t\n", p.IsActive)
	fmt.Fprintf(tw, "Rating:\t%s\n", a.catalog.AverageRating(ctx, p.ID).StringFixed(2))
	if p.Description != "" {
		fmt.Fprintf(tw, "Description:\t%s\n", p.Description)
	}
	return tw.Flush()
}

// editProduct prompts for every writable field, offering the current values.
func (a *App) editProduct(p *models.Product) error {
	var err error
	if p.Name, err = a.askDefault("Name", p.Name); err != nil {
		return err
	}
	if p.Description, err = a.askDefault("Description", p.Description); err != nil {
		return err
	}
	price, err := a.askDefault("Price", p.Price.String())
	if err != nil {
		return err
	}
	if p.Price, err = parseMoney("price", price); err != nil {
		return err
	}
	stock, err := a.askDefault("Stock", strconv.Itoa(p.StockQuantity))
	if err != nil {
		return err
	}
	if p.StockQuantity, err = parseInt("stock", stock); err != nil {
		return err
	}
	current := ""
	if p.CategoryID != nil {
		current = strconv.FormatInt(*p.CategoryID, 10)
	}
	category, err := a.ask(fmt.Sprintf("Category id, '-' for none [%s]", current))
	if err != nil {
		return err
	}
	switch category {
	case "":
	case "-":
		p.CategoryID = nil
	default:
		if p.CategoryID, err = parseOptionalID("category", category); err != nil {
			return err
		}
	}
	if p.SKU, err = a.askDefault("SKU", p.SKU); err != nil {
		return err
	}
	weight, err := a.askDefault("Weight", p.Weight.String())
	if err != nil {
		return err
	}
	if p.Weight, err = parseMoney("weight", weight); err != nil {
		return err
	}
	if p.Dimensions, err = a.askDefault("Dimensions", p.Dimensions); err != nil {
		return err
	}
	if p.ImageURL, err = a.askDefault("Image URL", p.ImageURL); err != nil {
		return err
	}
	active, err := a.askDefault("Active (y/n)", map[bool]string{true: "y", false: "n"}[p.IsActive])
	if err != nil {
		return err
	}
	p.IsActive, err = parseYesNo("active", active, p.IsActive)
	return err
}

func (a *App) AddProduct(ctx context.Context, _ []string) error {
	p := &models.Product{IsActive: true}
	if err := a.editProduct(p); err != nil {
		return err
	}
	id := a.products.Create(ctx, p)
	if id == -1 {
		return notStored("product")
	}
	return a.done("Created product %d", id)
}

func (a *App) EditProduct(ctx context.Context, args []string) error {
	id, err := a.idArg(args, 0, "product id")
	if err != nil {
		return err
	}
	p := a.products.GetByID(ctx, id)
	if p == nil {
		return errNotFound
	}
	if err := a.editProduct(p); err != nil {
		return err
	}
	if !a.products.Update(ctx, p) {
		return notStored("product")
	}
	return a.done("Updated product %d", id)
}

func (a *App) Stock(ctx context.Context, args []string) error {
	id, err := a.idArg(args, 0, "product id")
	if err != nil {
		return err
	}
	s, err := a.arg(args, 1, "Enter new stock quantity")
	if err != nil {
		return err
	}
	qty, err := parseInt("quantity", s)
	if err != nil {
		return err
	}
	if !a.products.UpdateStock(ctx, id, qty) {
		return notStored("stock level")
	}
	return a.done("Product %d stock set to %d", id, qty)
}

func (a *App) DeleteProduct(ctx context.Context, args []string) error {
	id, err := a.idArg(args, 0, "product id")
	if err != nil {
		return err
	}
	if !a.products.Delete(ctx, id) {
		return notStored("deletion")
	}
	return a.done("Deleted product %d", id)
}

func (a *App) Search(ctx context.Context, args []string) error {
	term := strings.Join(args, " ")
	if term == "" {
		var err error
		if term, err = a.ask("Search for"); err != nil {
			return err
		}
	}
	return a.printProducts(a.products.SearchByName(ctx, term))
}

func (a *App) PriceRange(ctx context.Context, args []string) error {
	lo, err := a.arg(args, 0, "Minimum price")
	if err != nil {
		return err
	}
	hi, err := a.arg(args, 1, "Maximum price")
	if err != nil {
		return err
	}
	minPrice, err := parseMoney("minimum", lo)
	if err != nil {
		return err
	}
	maxPrice, err := parseMoney("maximum", hi)
	if err != nil {
		return err
	}
	return a.printProducts(a.products.GetByPriceRange(ctx, minPrice, maxPrice))
}

// Categories lists all categories, or the children of the given parent.
func (a *App) Categories(ctx context.Context, args []string) error {
	var list []models.Category
	if len(args) > 0 {
		parent, err := parseID("parent", args[0])
		if err != nil {
			return err
		}
		list = a.catalog.Subcategories(ctx, parent)
	} else {
		list = a.catalog.Categories(ctx)
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPARENT\tDESCRIPTION")
	for _, c := range list {
		parent := "-"
		if c.ParentID != nil {
			parent = strconv.FormatInt(*c.ParentID, 10)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", c.ID, c.Name, parent, c.Description)
	}
	return tw.Flush()
}

func (a *App) AddCategory(ctx context.Context, args []string) error {
	name, err := a.arg(args, 0, "Category name")
	if err != nil {
		return err
	}
	desc, err := a.ask("Description (optional)")
	if err != nil {
		return err
	}
	parentText, err := a.ask("Parent category id (optional)")
	if err != nil {
		return err
	}
	parent, err := parseOptionalID("parent", parentText)
	if err != nil {
		return err
	}

	id := a.catalog.CreateCategory(ctx, &models.Category{Name: name, Description: desc, ParentID: parent})
	if id == -1 {
		return notStored("category")
	}
	return a.done("Created category %d", id)
}

func (a *App) Reviews(ctx context.Context, args []string) error {
	productID, err := a.idArg(args, 0, "product id")
	if err != nil {
		return err
	}
	list := a.catalog.Reviews(ctx, productID)
	for _, r := range list {
		fmt.Fprintf(a.out, "[%d/5] %s (user %d, %s)\n", r.Rating, r.Title, r.UserID, r.CreatedAt.Format("2006-01-02"))
		if r.Comment != "" {
			fmt.Fprintf(a.out, "  %s\n", strings.ReplaceAll(r.Comment, "\n", "\n  "))
		}
	}
	return a.done("Average rating %s over %d reviews", a.catalog.AverageRating(ctx, productID).StringFixed(2), len(list))
}

func (a *App) AddReview(ctx context.Context, args []string) error {
	u, err := a.currentUser()
	if err != nil {
		return err
	}
	productID, err := a.idArg(args, 0, "product id")
	if err != nil {
		return err
	}
	ratingText, err := a.ask("Rating (1-5)")
	if err != nil {
		return err
	}
	rating, err := parseInt("rating", ratingText)
	if err != nil {
		return err
	}
	title, err := a.ask("Title (optional)")
	if err != nil {
		return err
	}
	comment, err := GetMultiline(a.reader, "Comment (optional)", a.out)
	if err != nil {
		return err
	}

	// a review counts as verified when the user has ordered the product
	verified := false
	for _, o := range a.orders.GetByUser(ctx, u.ID) {
		for _, item := range a.orders.GetItemsByOrder(ctx, o.ID) {
			if item.ProductID == productID {
				verified = true
			}
		}
	}

	id := a.catalog.CreateReview(ctx, &models.Review{
		ProductID: productID, UserID: u.ID, Rating: rating,
		Title: title, Comment: comment, IsVerified: verified,
	})
	if id == -1 {
		return notStored("review")
	}
	return a.done("Created review %d", id)
}
