package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"drivehub/internal/auth"
	"drivehub/internal/model"
)

// mockUserRepo stubs the user lookup behind LoadUser.
type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func newContextWithToken(userID uuid.UUID, role string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Mirror what echo-jwt leaves in the context after validation.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{
		UserID: userID,
		Role:   role,
	})
	c.Set("user", token)
	return c
}

func TestLoadUser(t *testing.T) {
	userID := uuid.New()

	t.Run("attaches resolved user", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("FindByID", mock.Anything, userID).Return(&model.User{
			ID:   userID,
			Role: model.RoleCustomer,
		}, nil)

		c := newContextWithToken(userID, "CUSTOMER")
		next := func(c echo.Context) error {
			user := CurrentUser(c)
			assert.NotNil(t, user)
			assert.Equal(t, userID, user.ID)
			return nil
		}

		err := LoadUser(repo)(next)(c)
		assert.NoError(t, err)
	})

	t.Run("deleted user is treated as invalid token", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)

		c := newContextWithToken(userID, "CUSTOMER")
		err := LoadUser(repo)(func(c echo.Context) error { return nil })(c)

		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		e := echo.New()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

		err := LoadUser(new(mockUserRepo))(func(c echo.Context) error { return nil })(c)

		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	e := echo.New()

	newContextWithUser := func(role model.Role) echo.Context {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		c.Set(userContextKey, &model.User{ID: uuid.New(), Role: role})
		return c
	}

	t.Run("admin passes", func(t *testing.T) {
		called := false
		next := func(c echo.Context) error {
			called = true
			return nil
		}

		err := RequireAdmin(next)(newContextWithUser(model.RoleAdmin))
		assert.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("customer is forbidden", func(t *testing.T) {
		err := RequireAdmin(func(c echo.Context) error { return nil })(newContextWithUser(model.RoleCustomer))

		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusForbidden, httpErr.Code)
	})

	t.Run("no resolved user", func(t *testing.T) {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		err := RequireAdmin(func(c echo.Context) error { return nil })(c)

		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})
}
