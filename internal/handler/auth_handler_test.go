package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"groupchat/internal/auth"
	"groupchat/internal/errors"
	"groupchat/internal/model"
)

// MockAuthService is a mock implementation of AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*model.User), args.Error(2)
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("successful login returns a token", func(t *testing.T) {
		user := &model.User{ID: primitive.NewObjectID(), Username: "alice"}
		mockSvc := new(MockAuthService)
		mockSvc.On("Login", mock.Anything, "alice", "pw1").Return("signed-token", user, nil)

		h := NewAuthHandler(mockSvc)
		c, rec := newTestContext(t, http.MethodPost, "/login", `{"username":"alice","password":"pw1"}`, nil)

		require.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		assert.Equal(t, "Login successful", body["message"])
		assert.Equal(t, "signed-token", body["token"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("Login", mock.Anything, "alice", "wrong").Return("", nil, errors.ErrInvalidCredentials)

		h := NewAuthHandler(mockSvc)
		c, _ := newTestContext(t, http.MethodPost, "/login", `{"username":"alice","password":"wrong"}`, nil)

		err := h.Login(c)
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
		assert.Equal(t, errors.ErrorResponse{Message: "Invalid credentials"}, httpErr.Message)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing fields", func(t *testing.T) {
		h := NewAuthHandler(new(MockAuthService))
		c, _ := newTestContext(t, http.MethodPost, "/login", `{"username":"alice"}`, nil)

		err := h.Login(c)
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		assert.Equal(t, errors.ErrorResponse{Message: "Username and password are required"}, httpErr.Message)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	alice := &auth.Principal{ID: primitive.NewObjectID(), Username: "alice"}

	h := NewAuthHandler(new(MockAuthService))
	c, rec := newTestContext(t, http.MethodPost, "/logout", "", alice)

	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Logout successful", decodeBody(t, rec)["message"])
}
