package application

import (
	"context"
	"log/slog"

	"github.com/ericfisherdev/crmclient/internal/domain/model"
	"github.com/ericfisherdev/crmclient/internal/domain/port/driven"
)

// Default messages used when a failed envelope carries no error text.
const (
	msgLoadUsers  = "could not load users"
	msgGetUser    = "could not get user"
	msgCreateUser = "could not create user"
	msgUpdateUser = "could not update user"
	msgDeleteUser = "could not delete user"
)

// UserService administers users through the Envelope-wrapped endpoints.
// A success=false envelope is returned as *model.EnvelopeError.
type UserService struct {
	client  driven.CRMClient
	session *SessionService
	logger  *slog.Logger
}

// NewUserService creates a UserService with the required dependencies.
func NewUserService(client driven.CRMClient, session *SessionService) *UserService {
	return &UserService{
		client:  client,
		session: session,
		logger:  slog.Default(),
	}
}

// Load lists users. The result is never nil.
func (s *UserService) Load(ctx context.Context) ([]model.UserView, error) {
	env, err := s.client.ListUsers(ctx)
	if err != nil {
		s.logFailure("listing users failed", err)
		return []model.UserView{}, s.session.Check(err)
	}
	if err := env.Err(msgLoadUsers); err != nil {
		s.logger.Warn("listing users rejected", "error", err)
		return []model.UserView{}, err
	}

	views := []model.UserView{}
	if env.HasData() {
		for _, u := range *env.Data {
			views = append(views, model.NewUserView(u))
		}
	}
	return views, nil
}

// Get fetches one user. found is false when the server has no such user,
// either by 404 or by a successful envelope without data.
func (s *UserService) Get(ctx context.Context, id int) (user model.UserView, found bool, err error) {
	env, err := s.client.GetUser(ctx, id)
	if err != nil {
		if model.KindOf(err) == model.FailureNotFound {
			return model.UserView{}, false, nil
		}
		s.logFailure("getting user failed", err, "id", id)
		return model.UserView{}, false, s.session.Check(err)
	}
	if err := env.Err(msgGetUser); err != nil {
		return model.UserView{}, false, err
	}
	if !env.HasData() {
		return model.UserView{}, false, nil
	}
	return model.NewUserView(*env.Data), true, nil
}

// Create posts a new user and returns the stored record, or the sent one if
// the server echoed nothing.
func (s *UserService) Create(ctx context.Context, user model.User) (model.UserView, error) {
	env, err := s.client.CreateUser(ctx, user)
	if err != nil {
		s.logFailure("creating user failed", err, "username", user.Username)
		return model.UserView{}, s.session.Check(err)
	}
	return s.unwrap(env, user, msgCreateUser)
}

// Update puts the wire fields of view.
func (s *UserService) Update(ctx context.Context, view model.UserView) (model.UserView, error) {
	env, err := s.client.UpdateUser(ctx, view.ID, view.Wire())
	if err != nil {
		s.logFailure("updating user failed", err, "id", view.ID)
		return model.UserView{}, s.session.Check(err)
	}
	return s.unwrap(env, view.Wire(), msgUpdateUser)
}

// Delete removes a user. It returns false on any failure.
func (s *UserService) Delete(ctx context.Context, id int) (bool, error) {
	env, err := s.client.DeleteUser(ctx, id)
	if err != nil {
		s.logFailure("deleting user failed", err, "id", id)
		return false, s.session.Check(err)
	}
	if err := env.Err(msgDeleteUser); err != nil {
		s.logger.Warn("deleting user rejected", "id", id, "error", err)
		return false, err
	}
	return true, nil
}

func (s *UserService) unwrap(env model.Envelope[model.User], sent model.User, fallback string) (model.UserView, error) {
	if err := env.Err(fallback); err != nil {
		s.logger.Warn("user request rejected", "username", sent.Username, "error", err)
		return model.UserView{}, err
	}
	if !env.HasData() {
		return model.NewUserView(sent), nil
	}
	return model.NewUserView(*env.Data), nil
}

func (s *UserService) logFailure(msg string, err error, attrs ...any) {
	attrs = append(attrs, "kind", model.KindOf(err), "error", err)
	s.logger.Error(msg, attrs...)
}
