package usecase

import (
	"context"
	"fmt"

	"github.com/rbroggi/tinkoko/internal/core/model"
	"github.com/rbroggi/tinkoko/internal/core/ports"
)

// UserServiceArgs contains the mandatory arguments for the UserService.
type UserServiceArgs struct {
	// Repository is the repository for persistance operations.
	Repository ports.Repository
}

// NewUserService creates a new UserService.
func NewUserService(args UserServiceArgs, optArgs ...ServiceOptArgs) *UserService {
	return &UserService{repository: args.Repository, opts: newServiceOptions(optArgs)}
}

// UserService gathers the functionality around the user-lifecycle
type UserService struct {
	repository ports.Repository
	opts       serviceOptions
}

// CreateUser creates a user with a freshly generated ID.
func (s *UserService) CreateUser(ctx context.Context, args model.CreateUserArgs) (*model.CreateUserResponse, error) {
	user := &model.User{
		ID:           s.opts.idFunc(),
		ActivateUser: args.ActivateUser,
		Currency:     args.Currency,
		LastName:     args.LastName,
		Email:        args.Email,
		FirstName:    args.FirstName,
		Phone:        args.Phone,
		Role:         args.Role,
		UserName:     args.UserName,
		CreatedAt:    s.opts.nowFunc().UnixMilli(),
	}

	if err := s.repository.PutUser(ctx, user); err != nil {
		return nil, fmt.Errorf("error saving user in repository: %w", err)
	}

	return &model.CreateUserResponse{User: *user}, nil
}

// GetUserByID returns the user with the given ID. It returns model.ErrNotFound if there is no such user.
func (s *UserService) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repository.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting user [%s]: %w", id, err)
	}
	return user, nil
}

// GetUserByName returns the first user with the given user name. It returns model.ErrNotFound if none matches.
func (s *UserService) GetUserByName(ctx context.Context, userName string) (*model.User, error) {
	user, err := s.repository.FindUserByName(ctx, userName)
	if err != nil {
		return nil, fmt.Errorf("error finding user by name [%s]: %w", userName, err)
	}
	return user, nil
}

// UpdateUser merges the non-nil fields of args into the stored user and writes it back.
// There is no concurrency control: the last writer wins.
func (s *UserService) UpdateUser(ctx context.Context, args model.UpdateUserArgs) (*model.UpdateUserResponse, error) {
	user, err := s.repository.GetUser(ctx, args.ID)
	if err != nil {
		return nil, fmt.Errorf("error loading user [%s] for update: %w", args.ID, err)
	}

	if args.Photo != nil {
		user.Photo = *args.Photo
	}
	if args.VerificationMeans != nil {
		user.VerificationMeans = args.VerificationMeans
	}
	if args.IDNumber != nil {
		user.IDNumber = args.IDNumber
	}

	if err := s.repository.PutUser(ctx, user); err != nil {
		return nil, fmt.Errorf("error updating user: %w", err)
	}
	return &model.UpdateUserResponse{User: *user}, nil
}
