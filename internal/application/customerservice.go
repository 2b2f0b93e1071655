package application

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ericfisherdev/crmclient/internal/domain/model"
	"github.com/ericfisherdev/crmclient/internal/domain/port/driven"
)

// CustomerService loads and edits customers and keeps the last loaded list
// for lookups. Concurrent Load and Delete calls are allowed; the list is
// mutex-guarded and no ordering between them is promised.
type CustomerService struct {
	client  driven.CRMClient
	session *SessionService
	logger  *slog.Logger

	mu        sync.RWMutex
	customers []model.CustomerView
}

// NewCustomerService creates a CustomerService with the required dependencies.
func NewCustomerService(client driven.CRMClient, session *SessionService) *CustomerService {
	return &CustomerService{
		client:    client,
		session:   session,
		logger:    slog.Default(),
		customers: []model.CustomerView{},
	}
}

// Load fetches all customers. The returned slice is never nil: on any failure
// it is empty and the error says why. An auth failure clears the session and
// yields ErrReauthRequired.
func (s *CustomerService) Load(ctx context.Context) ([]model.CustomerView, error) {
	if err := s.session.Require(); err != nil {
		s.replace([]model.CustomerView{})
		return []model.CustomerView{}, err
	}

	env, err := s.client.ListCustomers(ctx)
	if err != nil {
		s.logger.Error("loading customers failed", "kind", model.KindOf(err), "error", err)
		s.replace([]model.CustomerView{})
		return []model.CustomerView{}, s.session.Check(err)
	}

	views := model.NewCustomerViews(env.Value)
	s.replace(views)
	s.logger.Info("customers loaded", "count", len(views))
	return views, nil
}

// Customers returns a copy of the last loaded list.
func (s *CustomerService) Customers() []model.CustomerView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.CustomerView, len(s.customers))
	copy(out, s.customers)
	return out
}

// Find looks up a customer in the last loaded list.
func (s *CustomerService) Find(oid string) (model.CustomerView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.customers {
		if c.Oid == oid {
			return c, true
		}
	}
	return model.CustomerView{}, false
}

// Update sends the wire part of view and refreshes the local copy from the
// server echo.
func (s *CustomerService) Update(ctx context.Context, view model.CustomerView) (model.CustomerView, error) {
	if err := s.session.Require(); err != nil {
		return model.CustomerView{}, err
	}

	echo, err := s.client.UpdateCustomer(ctx, view.Wire())
	if err != nil {
		s.logger.Error("updating customer failed", "oid", view.Oid, "kind", model.KindOf(err), "error", err)
		return model.CustomerView{}, s.session.Check(err)
	}

	updated := model.NewCustomerView(echo)
	s.mu.Lock()
	for i := range s.customers {
		if s.customers[i].Oid == updated.Oid {
			s.customers[i] = updated
			break
		}
	}
	s.mu.Unlock()

	return updated, nil
}

// Delete removes a customer on the server and, on success, from the local
// list. It returns false on any failure, with the error explaining why.
func (s *CustomerService) Delete(ctx context.Context, oid string) (bool, error) {
	if oid == "" {
		return false, ErrInvalidCustomer
	}
	if err := s.session.Require(); err != nil {
		return false, err
	}

	ok, err := s.client.DeleteCustomer(ctx, oid)
	if err != nil {
		s.logger.Error("deleting customer failed", "oid", oid, "kind", model.KindOf(err), "error", err)
		return false, s.session.Check(err)
	}
	if !ok {
		return false, nil
	}

	s.mu.Lock()
	for i := range s.customers {
		if s.customers[i].Oid == oid {
			s.customers = append(s.customers[:i:i], s.customers[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.logger.Info("customer deleted", "oid", oid)
	return true, nil
}

func (s *CustomerService) replace(views []model.CustomerView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = views
}
