package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/shopkeeper/internal/db"
	"github.com/dmitrijs2005/shopkeeper/internal/logging"
	"github.com/dmitrijs2005/shopkeeper/internal/models"
	"github.com/dmitrijs2005/shopkeeper/internal/repositories/repomanager"
	"github.com/dmitrijs2005/shopkeeper/internal/services"
)

var (
	errNotLoggedIn = errors.New("log in first")
	errNotFound    = errors.New("not found")
)

// statementRunner is the raw statement surface of *db.Conn.
type statementRunner interface {
	Query(ctx context.Context, stmt string, args ...any) *db.ResultSet
	Execute(ctx context.Context, stmt string, args ...any) bool
}

type App struct {
	conn     statementRunner
	users    *services.UserService
	products *services.ProductService
	orders   *services.OrderService
	cart     *services.CartService
	catalog  *services.CatalogService
	log      logging.Logger

	reader *bufio.Reader
	out    io.Writer
	user   *models.User
}

// NewApp builds the services over conn. Prompts read from in and all output
// goes to out.
func NewApp(conn *db.Conn, rm repomanager.RepositoryManager, log logging.Logger, in io.Reader, out io.Writer) *App {
	return newApp(conn, conn.DB(), rm, log, in, out)
}

func newApp(conn statementRunner, sqlDB *sql.DB, rm repomanager.RepositoryManager, log logging.Logger, in io.Reader, out io.Writer) *App {
	if log == nil {
		log = logging.Discard()
	}
	return &App{
		conn:     conn,
		users:    services.NewUserService(sqlDB, rm, log),
		products: services.NewProductService(sqlDB, rm, log),
		orders:   services.NewOrderService(sqlDB, rm, log),
		cart:     services.NewCartService(sqlDB, rm, log),
		catalog:  services.NewCatalogService(sqlDB, rm, log),
		log:      log.With("component", "cli"),
		reader:   bufio.NewReader(in),
		out:      out,
	}
}

// Run blocks in the REPL until exit or end of input.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to shopkeeper (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) status() string {
	if a.user == nil {
		return ""
	}
	return "(" + a.user.Username + ")"
}

func (a *App) currentUser() (*models.User, error) {
	if a.user == nil {
		return nil, errNotLoggedIn
	}
	return a.user, nil
}

func (a *App) ask(prompt string) (string, error) {
	return GetSimpleText(a.reader, prompt, a.out)
}

// arg returns args[i] when present and prompts for it otherwise.
func (a *App) arg(args []string, i int, prompt string) (string, error) {
	if i < len(args) {
		return args[i], nil
	}
	return a.ask(prompt)
}

func (a *App) idArg(args []string, i int, field string) (int64, error) {
	s, err := a.arg(args, i, "Enter "+field)
	if err != nil {
		return 0, err
	}
	return parseID(field, s)
}

// askDefault prompts with the current value shown; an empty answer keeps it.
func (a *App) askDefault(prompt, current string) (string, error) {
	s, err := a.ask(fmt.Sprintf("%s [%s]", prompt, current))
	if err != nil {
		return "", err
	}
	if s == "" {
		return current, nil
	}
	return s, nil
}

func notStored(what string) error {
	return fmt.Errorf("%s was not stored, see log for details", what)
}

func (a *App) done(format string, args ...any) error {
	_, err := fmt.Fprintf(a.out, format+"\n", args...)
	return err
}
