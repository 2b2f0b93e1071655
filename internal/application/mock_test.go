package application_test

import (
	"context"

	"github.com/ericfisherdev/crmclient/internal/domain/model"
)

// --- Mock implementations ---

// mockCRMClient answers each call through an optional func field; unset
// fields return zero values.
type mockCRMClient struct {
	authenticate   func(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error)
	getUser        func(ctx context.Context, id int) (model.Envelope[model.User], error)
	listUsers      func(ctx context.Context) (model.Envelope[[]model.User], error)
	createUser     func(ctx context.Context, user model.User) (model.Envelope[model.User], error)
	updateUser     func(ctx context.Context, id int, user model.User) (model.Envelope[model.User], error)
	deleteUser     func(ctx context.Context, id int) (model.Envelope[any], error)
	listCustomers  func(ctx context.Context) (model.ODataEnvelope[model.Customer], error)
	updateCustomer func(ctx context.Context, customer model.Customer) (model.Customer, error)
	deleteCustomer func(ctx context.Context, oid string) (bool, error)

	calls int
}

func (m *mockCRMClient) Authenticate(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	m.calls++
	if m.authenticate == nil {
		return model.LoginResponse{}, nil
	}
	return m.authenticate(ctx, req)
}

func (m *mockCRMClient) GetUser(ctx context.Context, id int) (model.Envelope[model.User], error) {
	m.calls++
	if m.getUser == nil {
		return model.Envelope[model.User]{}, nil
	}
	return m.getUser(ctx, id)
}

func (m *mockCRMClient) ListUsers(ctx context.Context) (model.Envelope[[]model.User], error) {
	m.calls++
	if m.listUsers == nil {
		return model.Envelope[[]model.User]{}, nil
	}
	return m.listUsers(ctx)
}

func (m *mockCRMClient) CreateUser(ctx context.Context, user model.User) (model.Envelope[model.User], error) {
	m.calls++
	if m.createUser == nil {
		return model.Envelope[model.User]{}, nil
	}
	return m.createUser(ctx, user)
}

func (m *mockCRMClient) UpdateUser(ctx context.Context, id int, user model.User) (model.Envelope[model.User], error) {
	m.calls++
	if m.updateUser == nil {
		return model.Envelope[model.User]{}, nil
	}
	return m.updateUser(ctx, id, user)
}

func (m *mockCRMClient) DeleteUser(ctx context.Context, id int) (model.Envelope[any], error) {
	m.calls++
	if m.deleteUser == nil {
		return model.Envelope[any]{}, nil
	}
	return m.deleteUser(ctx, id)
}

func (m *mockCRMClient) ListCustomers(ctx context.Context) (model.ODataEnvelope[model.Customer], error) {
	m.calls++
	if m.listCustomers == nil {
		return model.ODataEnvelope[model.Customer]{Value: []model.Customer{}}, nil
	}
	return m.listCustomers(ctx)
}

func (m *mockCRMClient) UpdateCustomer(ctx context.Context, customer model.Customer) (model.Customer, error) {
	m.calls++
	if m.updateCustomer == nil {
		return customer, nil
	}
	return m.updateCustomer(ctx, customer)
}

func (m *mockCRMClient) DeleteCustomer(ctx context.Context, oid string) (bool, error) {
	m.calls++
	if m.deleteCustomer == nil {
		return true, nil
	}
	return m.deleteCustomer(ctx, oid)
}

// authErr builds the error the rest core returns for a 401/403.
func authErr(method, path string, status int) error {
	return &model.RequestError{Kind: model.FailureAuth, Method: method, Path: path, Status: status}
}
