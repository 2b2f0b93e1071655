// Package crmapi implements the CRMClient port on top of the rest core.
package crmapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ericfisherdev/crmclient/internal/adapter/driven/rest"
	"github.com/ericfisherdev/crmclient/internal/domain/model"
	"github.com/ericfisherdev/crmclient/internal/domain/port/driven"
)

// Endpoint paths relative to the API base address.
const (
	pathAuthenticate = "Authentication/Authenticate"
	pathUsers        = "users"
	pathCustomers    = "odata/Customer"
)

// Compile-time interface satisfaction check.
var _ driven.CRMClient = (*Client)(nil)

// Client implements driven.CRMClient.
type Client struct {
	rest   *rest.Client
	logger *slog.Logger
}

// NewClient wraps a rest.Client. logger may be nil to use slog.Default().
func NewClient(rc *rest.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{rest: rc, logger: logger}
}

// Authenticate posts the login request. A decoded body with an empty Token is
// returned as-is; judging acceptance is the caller's job.
func (c *Client) Authenticate(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	resp, err := rest.Post[model.LoginResponse](ctx, c.rest, pathAuthenticate, req)
	if err != nil {
		return model.LoginResponse{}, fmt.Errorf("authenticating %q: %w", req.Username, err)
	}
	return resp, nil
}

// GetUser fetches users/{id}.
func (c *Client) GetUser(ctx context.Context, id int) (model.Envelope[model.User], error) {
	env, err := rest.Get[model.Envelope[model.User]](ctx, c.rest, userPath(id))
	if err != nil {
		return model.Envelope[model.User]{}, fmt.Errorf("getting user %d: %w", id, err)
	}
	env.Normalize()
	return env, nil
}

// ListUsers fetches users.
func (c *Client) ListUsers(ctx context.Context) (model.Envelope[[]model.User], error) {
	env, err := rest.Get[model.Envelope[[]model.User]](ctx, c.rest, pathUsers)
	if err != nil {
		return model.Envelope[[]model.User]{}, fmt.Errorf("listing users: %w", err)
	}
	env.Normalize()
	return env, nil
}

// CreateUser posts a new user.
func (c *Client) CreateUser(ctx context.Context, user model.User) (model.Envelope[model.User], error) {
	env, err := rest.Post[model.Envelope[model.User]](ctx, c.rest, pathUsers, user)
	if err != nil {
		return model.Envelope[model.User]{}, fmt.Errorf("creating user %q: %w", user.Username, err)
	}
	env.Normalize()
	return env, nil
}

// UpdateUser puts the user to users/{id}.
func (c *Client) UpdateUser(ctx context.Context, id int, user model.User) (model.Envelope[model.User], error) {
	env, err := rest.Put[model.Envelope[model.User]](ctx, c.rest, userPath(id), user)
	if err != nil {
		return model.Envelope[model.User]{}, fmt.Errorf("updating user %d: %w", id, err)
	}
	env.Normalize()
	return env, nil
}

// DeleteUser deletes users/{id}. An empty 2xx body counts as success.
func (c *Client) DeleteUser(ctx context.Context, id int) (model.Envelope[any], error) {
	env, err := rest.Delete[*model.Envelope[any]](ctx, c.rest, userPath(id))
	if err != nil {
		return model.Envelope[any]{}, fmt.Errorf("deleting user %d: %w", id, err)
	}
	if env == nil {
		return model.Envelope[any]{Success: true}, nil
	}
	env.Normalize()
	return *env, nil
}

// ListCustomers fetches the odata/Customer collection.
func (c *Client) ListCustomers(ctx context.Context) (model.ODataEnvelope[model.Customer], error) {
	env, err := rest.Get[model.ODataEnvelope[model.Customer]](ctx, c.rest, pathCustomers)
	if err != nil {
		return model.ODataEnvelope[model.Customer]{Value: []model.Customer{}}, fmt.Errorf("listing customers: %w", err)
	}
	env.Normalize()

	c.logger.Debug("customers fetched", "count", len(env.Value), "context", env.Context)
	if env.NextLink != "" {
		c.logger.Warn("customer collection is paged, only the first page was read",
			"count", len(env.Value),
			"next_link", env.NextLink,
		)
	}
	return env, nil
}

// UpdateCustomer puts the wire record to odata/Customer({oid}). OData servers
// commonly answer 204 No Content; the sent record is returned in that case.
func (c *Client) UpdateCustomer(ctx context.Context, customer model.Customer) (model.Customer, error) {
	if customer.Oid == "" {
		return model.Customer{}, fmt.Errorf("updating customer: %w", ErrMissingOid)
	}

	echo, err := rest.Put[*model.Customer](ctx, c.rest, customerPath(customer.Oid), customer)
	if err != nil {
		return model.Customer{}, fmt.Errorf("updating customer %s: %w", customer.Oid, err)
	}
	if echo == nil {
		return customer, nil
	}
	return *echo, nil
}

// DeleteCustomer deletes odata/Customer({oid}). Any 2xx answer means deleted;
// the body, if any, is ignored.
func (c *Client) DeleteCustomer(ctx context.Context, oid string) (bool, error) {
	if oid == "" {
		return false, fmt.Errorf("deleting customer: %w", ErrMissingOid)
	}

	if err := rest.Exec(ctx, c.rest, http.MethodDelete, customerPath(oid), nil); err != nil {
		return false, fmt.Errorf("deleting customer %s: %w", oid, err)
	}
	return true, nil
}

func userPath(id int) string {
	return pathUsers + "/" + strconv.Itoa(id)
}

// customerPath builds the OData key path. The key is inserted as given; it is
// only escaped, never quoted or otherwise rewritten.
func customerPath(oid string) string {
	return pathCustomers + "(" + url.PathEscape(oid) + ")"
}
