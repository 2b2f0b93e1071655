package driven

import (
	"context"

	"github.com/ericfisherdev/crmclient/internal/domain/model"
)

// CRMClient defines the driven port for the CRM backend. Failures are
// *model.RequestError values matching model.ErrAuthFailure, model.ErrNotFound,
// model.ErrTransportFailure or model.ErrDecodeFailure.
type CRMClient interface {
	// Authenticate posts credentials and returns the session. It never
	// touches the TokenStore; storing the token is the caller's decision.
	Authenticate(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error)

	// User administration

	GetUser(ctx context.Context, id int) (model.Envelope[model.User], error)
	ListUsers(ctx context.Context) (model.Envelope[[]model.User], error)
	CreateUser(ctx context.Context, user model.User) (model.Envelope[model.User], error)
	UpdateUser(ctx context.Context, id int, user model.User) (model.Envelope[model.User], error)
	DeleteUser(ctx context.Context, id int) (model.Envelope[any], error)

	// OData customers

	// ListCustomers returns the decoded odata/Customer collection. Value is never nil.
	ListCustomers(ctx context.Context) (model.ODataEnvelope[model.Customer], error)
	// UpdateCustomer sends the wire record and returns the server echo, or the
	// sent record when the server answers with an empty body.
	UpdateCustomer(ctx context.Context, customer model.Customer) (model.Customer, error)
	// DeleteCustomer returns true when the server accepted the deletion.
	DeleteCustomer(ctx context.Context, oid string) (bool, error)
}
