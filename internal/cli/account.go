package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/shopkeeper/internal/models"
)

func (a *App) Register(ctx context.Context, args []string) error {
	username, err := a.arg(args, 0, "Enter user name")
	if err != nil {
		return err
	}
	email, err := a.ask("Enter email")
	if err != nil {
		return err
	}
	first, err := a.ask("First name (optional)")
	if err != nil {
		return err
	}
	last, err := a.ask("Last name (optional)")
	if err != nil {
		return err
	}
	pw, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	u := &models.User{Username: username, Email: email, FirstName: first, LastName: last}
	id := a.users.Register(ctx, u, string(pw))
	clear(pw)
	if id == -1 {
		return notStored("user")
	}
	return a.done("Registered user %d", id)
}

func (a *App) Login(ctx context.Context, args []string) error {
	username, err := a.arg(args, 0, "Enter user name")
	if err != nil {
		return err
	}
	pw, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	u, err := a.users.VerifyCredentials(ctx, username, string(pw))
	clear(pw)
	if err != nil {
		return err
	}
	a.user = u
	a.log.Info(ctx, "logged in", "user_id", u.ID)
	return a.done("Hello, %s!", u.Username)
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	if _, err := a.currentUser(); err != nil {
		return err
	}
	a.user = nil
	return a.done("Logged out")
}

func (a *App) Users(ctx context.Context, _ []string) error {
	list := a.users.GetAll(ctx)

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tEMAIL\tNAME\tACTIVE")
	for _, u := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s %s\t%t\n", u.ID, u.Username, u.Email, u.FirstName, u.LastName, u.IsActive)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return a.done("(%d users)", len(list))
}

func (a *App) Addresses(ctx context.Context, _ []string) error {
	u, err := a.currentUser()
	if err != nil {
		return err
	}
	list := a.catalog.Addresses(ctx, u.ID)

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tNAME\tADDRESS\tDEFAULT")
	for _, ad := range list {
		line := ad.AddressLine1
		if ad.AddressLine2 != "" {
			line += " " + ad.AddressLine2
		}
		fmt.Fprintf(tw, "%d\t%s\t%s %s\t%s, %s %s, %s\t%t\n",
			ad.ID, ad.AddressType, ad.FirstName, ad.LastName, line, ad.PostalCode, ad.City, ad.Country, ad.IsDefault)
	}
	return tw.Flush()
}

func (a *App) AddAddress(ctx context.Context, _ []string) error {
	u, err := a.currentUser()
	if err != nil {
		return err
	}

	ad := &models.Address{UserID: u.ID}
	prompts := []struct {
		prompt string
		dest   *string
	}{
		{"Address type (shipping/billing)", &ad.AddressType},
		{"First name (optional)", &ad.FirstName},
		{"Last name (optional)", &ad.LastName},
		{"Company (optional)", &ad.Company},
		{"Address line 1", &ad.AddressLine1},
		{"Address line 2 (optional)", &ad.AddressLine2},
		{"City", &ad.City},
		{"State or province (optional)", &ad.StateProvince},
		{"Postal code (optional)", &ad.PostalCode},
		{"Country", &ad.Country},
	}
	for _, p := range prompts {
		if *p.dest, err = a.ask(p.prompt); err != nil {
			return err
		}
	}
	def, err := a.ask("Make default? (y/N)")
	if err != nil {
		return err
	}
	if ad.IsDefault, err = parseYesNo("default", def, false); err != nil {
		return err
	}

	id := a.catalog.CreateAddress(ctx, ad)
	if id == -1 {
		return notStored("address")
	}
	if ad.IsDefault && !a.catalog.SetDefaultAddress(ctx, u.ID, id) {
		return errors.New("address stored but could not be made default")
	}
	return a.done("Created address %d", id)
}

func (a *App) DefaultAddress(ctx context.Context, args []string) error {
	u, err := a.currentUser()
	if err != nil {
		return err
	}
	id, err := a.idArg(args, 0, "address id")
	if err != nil {
		return err
	}
	if !a.catalog.SetDefaultAddress(ctx, u.ID, id) {
		return errNotFound
	}
	return a.done("Address %d is now the default", id)
}
