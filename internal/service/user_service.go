package service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"groupchat/internal/errors"
	"groupchat/internal/model"
	"groupchat/internal/repository"
)

const bcryptCost = 10

// UserService exposes the admin-facing credential operations.
type UserService interface {
	CreateUser(ctx context.Context, username, password string, isAdmin bool) (*model.User, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, username, password string, isAdmin *bool) (*model.User, error)
}

type userService struct {
	users repository.UserRepository
}

// NewUserService builds a UserService over the credential store.
func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

// CreateUser stores a new user with a bcrypt password hash. The username
// must not already exist, case-sensitive exact match.
func (s *userService) CreateUser(ctx context.Context, username, password string, isAdmin bool) (*model.User, error) {
	existing, err := s.users.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, errors.ErrUsernameTaken
	}
	if err != nil && err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("check username: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		Username:     username,
		PasswordHash: string(hashed),
		IsAdmin:      isAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// unique index backstop for a concurrent create of the same name
		if mongo.IsDuplicateKeyError(err) {
			return nil, errors.ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// UpdateUser rewrites username and password and, when isAdmin is non-nil,
// the admin flag. Re-submitting the user's own username is not a conflict.
func (s *userService) UpdateUser(ctx context.Context, id primitive.ObjectID, username, password string, isAdmin *bool) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if username != user.Username {
		existing, err := s.users.FindByUsername(ctx, username)
		if err == nil && existing != nil {
			return nil, errors.ErrUsernameTaken
		}
		if err != nil && err != mongo.ErrNoDocuments {
			return nil, fmt.Errorf("check username: %w", err)
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user.Username = username
	user.PasswordHash = string(hashed)
	if isAdmin != nil {
		user.IsAdmin = *isAdmin
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.ErrUserNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, errors.ErrUsernameTaken
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	return user, nil
}
