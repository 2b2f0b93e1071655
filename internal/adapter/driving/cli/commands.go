package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/ericfisherdev/crmclient/internal/domain/model"
)

type command struct {
	args    string
	help    string
	minArgs int
	run     func(ctx context.Context, a *App, args []string) error
}

var commandOrder = []string{
	"customers", "customer-set", "customer-delete",
	"users", "user", "user-create", "user-set", "user-delete",
}

var commands = map[string]command{
	"customers": {
		help: "list customers",
		run:  runCustomers,
	},
	"customer-set": {
		args:    "<oid> key=value...",
		help:    "update name, lastname or active",
		minArgs: 2,
		run:     runCustomerSet,
	},
	"customer-delete": {
		args:    "<oid>",
		help:    "delete a customer after confirmation",
		minArgs: 1,
		run:     runCustomerDelete,
	},
	"users": {
		help: "list users",
		run:  runUsers,
	},
	"user": {
		args:    "<id>",
		help:    "show one user",
		minArgs: 1,
		run:     runUser,
	},
	"user-create": {
		args:    "<username> <email> [first] [last]",
		help:    "create a user",
		minArgs: 2,
		run:     runUserCreate,
	},
	"user-set": {
		args:    "<id> key=value...",
		help:    "update username, email, first, last or active",
		minArgs: 2,
		run:     runUserSet,
	},
	"user-delete": {
		args:    "<id>",
		help:    "delete a user after confirmation",
		minArgs: 1,
		run:     runUserDelete,
	},
}

func runCustomers(ctx context.Context, a *App, _ []string) error {
	customers, err := a.customers.Load(ctx)
	if err != nil {
		return err
	}
	if len(customers) == 0 {
		fmt.Fprintln(a.out, "No customers.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "OID\tNAME\tACTIVE")
	for _, c := range customers {
		fmt.Fprintf(tw, "%s\t%s\t%t\n", c.Oid, c.FullName, c.Active)
	}
	return tw.Flush()
}

func runCustomerSet(ctx context.Context, a *App, args []string) error {
	if _, err := a.customers.Load(ctx); err != nil {
		return err
	}
	view, ok := a.customers.Find(args[0])
	if !ok {
		return fmt.Errorf("customer %s: %w", args[0], model.ErrNotFound)
	}

	for _, kv := range args[1:] {
		key, value, found := strings.Cut(kv, "=")
		if !found {
			return fmt.Errorf("%w: expected key=value, got %q", ErrUsage, kv)
		}
		switch strings.ToLower(key) {
		case "name":
			view.Name = value
		case "lastname":
			view.LastName = value
		case "active":
			active, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("%w: active must be true or false", ErrUsage)
			}
			view.Active = active
		default:
			return fmt.Errorf("%w: unknown field %q", ErrUsage, key)
		}
	}

	updated, err := a.customers.Update(ctx, view)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s has been updated.\n", updated.FullName)
	return nil
}

func runCustomerDelete(ctx context.Context, a *App, args []string) error {
	oid := args[0]
	if _, err := a.customers.Load(ctx); err != nil {
		return err
	}

	name := "Unknown customer"
	if view, ok := a.customers.Find(oid); ok {
		name = view.FullName
	}

	if !a.confirm(fmt.Sprintf("Are you sure you want to delete %s? This action cannot be undone.", name)) {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	ok, err := a.customers.Delete(ctx, oid)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Could not delete customer.")
		return nil
	}
	fmt.Fprintf(a.out, "%s has been deleted successfully.\n", name)
	return nil
}

func runUsers(ctx context.Context, a *App, _ []string) error {
	users, err := a.users.Load(ctx)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		fmt.Fprintln(a.out, "No users.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tNAME\tEMAIL\tACTIVE")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%t\n", u.ID, u.Username, u.DisplayName, u.Email, u.IsActive)
	}
	return tw.Flush()
}

func runUser(ctx context.Context, a *App, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	user, found, err := a.users.Get(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintf(a.out, "User %d not found.\n", id)
		return nil
	}

	fmt.Fprintf(a.out, "ID:       %d\n", user.ID)
	fmt.Fprintf(a.out, "Username: %s\n", user.Username)
	fmt.Fprintf(a.out, "Name:     %s\n", user.DisplayName)
	fmt.Fprintf(a.out, "Email:    %s\n", user.Email)
	fmt.Fprintf(a.out, "Active:   %t\n", user.IsActive)
	if !user.CreatedAt.IsZero() {
		fmt.Fprintf(a.out, "Created:  %s\n", user.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runUserCreate(ctx context.Context, a *App, args []string) error {
	user := model.User{Username: args[0], Email: args[1], IsActive: true}
	if len(args) > 2 {
		user.FirstName = args[2]
	}
	if len(args) > 3 {
		user.LastName = args[3]
	}

	created, err := a.users.Create(ctx, user)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "User %s created (id %d).\n", created.Username, created.ID)
	return nil
}

func runUserSet(ctx context.Context, a *App, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	view, found, err := a.users.Get(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("user %d: %w", id, model.ErrNotFound)
	}

	for _, kv := range args[1:] {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("%w: expected key=value, got %q", ErrUsage, kv)
		}
		switch strings.ToLower(key) {
		case "username":
			view.Username = value
		case "email":
			view.Email = value
		case "first":
			view.FirstName = value
		case "last":
			view.LastName = value
		case "active":
			active, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("%w: active must be true or false", ErrUsage)
			}
			view.IsActive = active
		default:
			return fmt.Errorf("%w: unknown field %q", ErrUsage, key)
		}
	}

	updated, err := a.users.Update(ctx, view)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s has been updated.\n", updated.DisplayName)
	return nil
}

func runUserDelete(ctx context.Context, a *App, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if !a.confirm(fmt.Sprintf("Delete user %d?", id)) {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	ok, err := a.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintln(a.out, "User deleted.")
	}
	return nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id must be a positive integer, got %q", ErrUsage, s)
	}
	return id, nil
}
