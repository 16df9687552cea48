package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/BradenHooton/gridboard/internal/auth"
	"github.com/BradenHooton/gridboard/internal/models"
	"github.com/BradenHooton/gridboard/internal/query"
	"github.com/BradenHooton/gridboard/internal/repositories"
	"github.com/BradenHooton/gridboard/internal/services"
	pkghttp "github.com/BradenHooton/gridboard/pkg/http"
)

// NewTestRequest creates an HTTP request with JSON body for testing
func NewTestRequest(t *testing.T, method, url string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewRawRequest creates a request with a literal body
func NewRawRequest(method, url, body string) *http.Request {
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// WithSession attaches a session the way auth.RequireSession would
func WithSession(req *http.Request, userID string, levels ...string) *http.Request {
	session := &auth.Session{UserID: userID, Name: "Test " + userID, Levels: levels}
	ctx := context.WithValue(req.Context(), auth.SessionContextKey, session)
	return req.WithContext(ctx)
}

// WithChiRouteContext adds chi URL parameters to request context for testing
//
// Example usage:
//
//	req := httptest.NewRequest("PUT", "/users/7", body)
//	req = WithChiRouteContext(req, map[string]string{"id": "7"})
func WithChiRouteContext(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// WithChiID sets the "id" route parameter
func WithChiID(r *http.Request, id string) *http.Request {
	return WithChiRouteContext(r, map[string]string{"id": id})
}

// AssertJSONResponse checks that response has correct status and decodes JSON body
func AssertJSONResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target any) {
	t.Helper()
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	if target != nil {
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), target), "Failed to decode response JSON")
	}
}

// AssertErrorResponse checks the status, error code and that a reason is shown
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedCode string) pkghttp.Response {
	t.Helper()
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	var resp pkghttp.Response
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "Failed to decode error response")
	assert.False(t, resp.Success)
	assert.Equal(t, expectedCode, resp.Code, "Error code mismatch")
	assert.NotEmpty(t, resp.Error, "Error message should not be empty")
	return resp
}

// DecodeData unmarshals the data field of a success envelope into target
func DecodeData(t *testing.T, w *httptest.ResponseRecorder, target any) {
	t.Helper()
	var env struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	assert.True(t, env.Success)
	if err := json.Unmarshal(env.Data, target); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
}

func NewTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockUserService implements UserService for testing
type MockUserService struct {
	ListUsersFunc      func(ctx context.Context, spec query.Spec) (query.Result[*models.User], error)
	SelectUsersFunc    func(ctx context.Context, spec query.Spec) ([]*models.User, error)
	GetUserFunc        func(ctx context.Context, id string) (*models.User, error)
	CreateUserFunc     func(ctx context.Context, in services.CreateUserInput) (*models.User, error)
	UpdateUserFunc     func(ctx context.Context, id string, patch repositories.UserPatch) (*models.User, error)
	DeleteUserFunc     func(ctx context.Context, id string) error
	SetPasswordFunc    func(ctx context.Context, id, password string) error
	SetRoleFunc        func(ctx context.Context, id, roleID string) (*models.User, error)
	SetPermissionsFunc func(ctx context.Context, id string, permissions []string) (*models.User, error)
}

func (m *MockUserService) Schema() *query.Schema[*models.User] {
	return query.UserSchema(10)
}

func (m *MockUserService) ListUsers(ctx context.Context, spec query.Spec) (query.Result[*models.User], error) {
	if m.ListUsersFunc == nil {
		return query.Result[*models.User]{}, nil
	}
	return m.ListUsersFunc(ctx, spec)
}

func (m *MockUserService) SelectUsers(ctx context.Context, spec query.Spec) ([]*models.User, error) {
	if m.SelectUsersFunc == nil {
		return nil, nil
	}
	return m.SelectUsersFunc(ctx, spec)
}

func (m *MockUserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	if m.GetUserFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.GetUserFunc(ctx, id)
}

func (m *MockUserService) CreateUser(ctx context.Context, in services.CreateUserInput) (*models.User, error) {
	if m.CreateUserFunc == nil {
		return nil, models.ErrConflict
	}
	return m.CreateUserFunc(ctx, in)
}

func (m *MockUserService) UpdateUser(ctx context.Context, id string, patch repositories.UserPatch) (*models.User, error) {
	if m.UpdateUserFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.UpdateUserFunc(ctx, id, patch)
}

func (m *MockUserService) DeleteUser(ctx context.Context, id string) error {
	if m.DeleteUserFunc == nil {
		return nil
	}
	return m.DeleteUserFunc(ctx, id)
}

func (m *MockUserService) SetPassword(ctx context.Context, id, password string) error {
	if m.SetPasswordFunc == nil {
		return nil
	}
	return m.SetPasswordFunc(ctx, id, password)
}

func (m *MockUserService) SetRole(ctx context.Context, id, roleID string) (*models.User, error) {
	if m.SetRoleFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.SetRoleFunc(ctx, id, roleID)
}

func (m *MockUserService) SetPermissions(ctx context.Context, id string, permissions []string) (*models.User, error) {
	if m.SetPermissionsFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.SetPermissionsFunc(ctx, id, permissions)
}

// MockRoleService implements RoleService for testing
type MockRoleService struct {
	ListRolesFunc      func(ctx context.Context) ([]models.Role, error)
	GetRoleFunc        func(ctx context.Context, id string) (*models.Role, error)
	CreateRoleFunc     func(ctx context.Context, role models.Role) (*models.Role, error)
	UpdateRoleFunc     func(ctx context.Context, id string, patch repositories.RolePatch) (*models.Role, error)
	DeleteRoleFunc     func(ctx context.Context, id string) error
	SetPermissionsFunc func(ctx context.Context, id string, permissions []string) (*models.Role, error)
}

func (m *MockRoleService) ListRoles(ctx context.Context) ([]models.Role, error) {
	if m.ListRolesFunc == nil {
		return nil, nil
	}
	return m.ListRolesFunc(ctx)
}

func (m *MockRoleService) GetRole(ctx context.Context, id string) (*models.Role, error) {
	if m.GetRoleFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.GetRoleFunc(ctx, id)
}

func (m *MockRoleService) CreateRole(ctx context.Context, role models.Role) (*models.Role, error) {
	if m.CreateRoleFunc == nil {
		return nil, models.ErrConflict
	}
	return m.CreateRoleFunc(ctx, role)
}

func (m *MockRoleService) UpdateRole(ctx context.Context, id string, patch repositories.RolePatch) (*models.Role, error) {
	if m.UpdateRoleFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.UpdateRoleFunc(ctx, id, patch)
}

func (m *MockRoleService) DeleteRole(ctx context.Context, id string) error {
	if m.DeleteRoleFunc == nil {
		return nil
	}
	return m.DeleteRoleFunc(ctx, id)
}

func (m *MockRoleService) SetPermissions(ctx context.Context, id string, permissions []string) (*models.Role, error) {
	if m.SetPermissionsFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.SetPermissionsFunc(ctx, id, permissions)
}

// MockProductService implements ProductService for testing
type MockProductService struct {
	ListProductsFunc   func(ctx context.Context, spec query.Spec) (services.ProductPage, error)
	SelectProductsFunc func(ctx context.Context, spec query.Spec) ([]*models.Product, error)
	CategoriesFunc     func(ctx context.Context) ([]models.Category, error)
	GetProductFunc     func(ctx context.Context, id string) (*models.Product, error)
	CreateProductFunc  func(ctx context.Context, product *models.Product) (*models.Product, error)
	UpdateProductFunc  func(ctx context.Context, id string, patch repositories.ProductPatch) (*models.Product, error)
	DeleteProductFunc  func(ctx context.Context, id string) error
	AdjustStockFunc    func(ctx context.Context, id string, delta int) (*models.Product, error)
}

func (m *MockProductService) Schema() *query.Schema[*models.Product] {
	return query.ProductSchema(10)
}

func (m *MockProductService) ListProducts(ctx context.Context, spec query.Spec) (services.ProductPage, error) {
	if m.ListProductsFunc == nil {
		return services.ProductPage{}, nil
	}
	return m.ListProductsFunc(ctx, spec)
}

func (m *MockProductService) SelectProducts(ctx context.Context, spec query.Spec) ([]*models.Product, error) {
	if m.SelectProductsFunc == nil {
		return nil, nil
	}
	return m.SelectProductsFunc(ctx, spec)
}

func (m *MockProductService) Categories(ctx context.Context) ([]models.Category, error) {
	if m.CategoriesFunc == nil {
		return nil, nil
	}
	return m.CategoriesFunc(ctx)
}

func (m *MockProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	if m.GetProductFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.GetProductFunc(ctx, id)
}

func (m *MockProductService) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if m.CreateProductFunc == nil {
		return nil, models.ErrConflict
	}
	return m.CreateProductFunc(ctx, product)
}

func (m *MockProductService) UpdateProduct(ctx context.Context, id string, patch repositories.ProductPatch) (*models.Product, error) {
	if m.UpdateProductFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.UpdateProductFunc(ctx, id, patch)
}

func (m *MockProductService) DeleteProduct(ctx context.Context, id string) error {
	if m.DeleteProductFunc == nil {
		return nil
	}
	return m.DeleteProductFunc(ctx, id)
}

func (m *MockProductService) AdjustStock(ctx context.Context, id string, delta int) (*models.Product, error) {
	if m.AdjustStockFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.AdjustStockFunc(ctx, id, delta)
}

// MockDashboardService implements DashboardService for testing
type MockDashboardService struct {
	GetStatsFunc func(ctx context.Context) (*services.DashboardStats, error)
}

func (m *MockDashboardService) GetStats(ctx context.Context) (*services.DashboardStats, error) {
	if m.GetStatsFunc == nil {
		return &services.DashboardStats{}, nil
	}
	return m.GetStatsFunc(ctx)
}
