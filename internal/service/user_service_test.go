package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"groupchat/internal/errors"
	"groupchat/internal/model"
)

func TestUserService_CreateUser(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		isAdmin       bool
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful creation",
			username: "newuser",
			isAdmin:  true,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "newuser").Return(nil, mongo.ErrNoDocuments)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "duplicate username",
			username: "taken",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "taken").Return(&model.User{Username: "taken"}, nil)
			},
			expectedError: errors.ErrUsernameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewUserService(mockRepo)
			user, err := svc.CreateUser(context.Background(), tt.username, "password123", tt.isAdmin)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.username, user.Username)
				assert.Equal(t, tt.isAdmin, user.IsAdmin)
				assert.NotEqual(t, "password123", user.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_UpdateUser(t *testing.T) {
	userID := primitive.NewObjectID()
	oldHash, _ := bcrypt.GenerateFromPassword([]byte("old"), 10)
	adminTrue := true

	existing := func() *model.User {
		return &model.User{
			ID:           userID,
			Username:     "olduser",
			PasswordHash: string(oldHash),
			IsAdmin:      false,
		}
	}

	t.Run("user not found", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(nil, mongo.ErrNoDocuments)

		svc := NewUserService(mockRepo)
		user, err := svc.UpdateUser(context.Background(), userID, "x", "y", nil)

		assert.Equal(t, errors.ErrUserNotFound, err)
		assert.Nil(t, user)
		mockRepo.AssertExpectations(t)
	})

	t.Run("new username already taken", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(existing(), nil)
		mockRepo.On("FindByUsername", mock.Anything, "other").Return(&model.User{Username: "other"}, nil)

		svc := NewUserService(mockRepo)
		user, err := svc.UpdateUser(context.Background(), userID, "other", "pw", nil)

		assert.Equal(t, errors.ErrUsernameTaken, err)
		assert.Nil(t, user)
		mockRepo.AssertExpectations(t)
	})

	t.Run("own username is not a conflict", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(existing(), nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		svc := NewUserService(mockRepo)
		user, err := svc.UpdateUser(context.Background(), userID, "olduser", "newpass", nil)

		require.NoError(t, err)
		assert.Equal(t, "olduser", user.Username)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("newpass")))
		// isAdmin omitted: flag unchanged
		assert.False(t, user.IsAdmin)
		mockRepo.AssertExpectations(t)
	})

	t.Run("updates all fields", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(existing(), nil)
		mockRepo.On("FindByUsername", mock.Anything, "renamed").Return(nil, mongo.ErrNoDocuments)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		svc := NewUserService(mockRepo)
		user, err := svc.UpdateUser(context.Background(), userID, "renamed", "newpass", &adminTrue)

		require.NoError(t, err)
		assert.Equal(t, "renamed", user.Username)
		assert.True(t, user.IsAdmin)
		mockRepo.AssertExpectations(t)
	})
}
