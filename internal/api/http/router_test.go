package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/shop-service/internal/api/http/handlers"
	"github.com/spec-kit/shop-service/internal/auth"
	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/events"
	"github.com/spec-kit/shop-service/internal/observability"
	"github.com/spec-kit/shop-service/internal/repository"
	"github.com/spec-kit/shop-service/internal/service"
)

type stubUsers struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User
}

func (s *stubUsers) find(match func(*domain.User) bool) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if match(u) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *stubUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	return s.find(func(u *domain.User) bool { return u.ID == id })
}

func (s *stubUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	return s.find(func(u *domain.User) bool { return u.Username == username })
}

func (s *stubUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return s.find(func(u *domain.User) bool { return u.Email == email })
}

func (s *stubUsers) FindByUsernameOrEmail(_ context.Context, username, email string) (*domain.User, error) {
	return s.find(func(u *domain.User) bool { return u.Username == username || u.Email == email })
}

func (s *stubUsers) Create(_ context.Context, values map[string]any) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	u := &domain.User{
		ID:           s.nextID,
		Username:     values["username"].(string),
		Email:        values["email"].(string),
		PasswordHash: values["password_hash"].(string),
		Role:         domain.UserRole(values["role"].(string)),
		IsActive:     values["is_active"].(bool),
	}
	s.users[u.ID] = u
	clone := *u
	return &clone, nil
}

func (s *stubUsers) UpdatePassword(_ context.Context, id int64, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (s *stubUsers) TouchLastLogin(_ context.Context, id int64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		u.LastLogin = &at
	}
	return nil
}

type testServer struct {
	app  *fiber.App
	mock pgxmock.PgxPoolIface
}

func newTestServer(t *testing.T, loginAttempts int) *testServer {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	t.Cleanup(mock.Close)

	logger := zap.NewNop()
	tokens, err := auth.NewTokenManager("router-test-secret", "HS256", auth.TokenTTLs{})
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	users := &stubUsers{users: make(map[int64]*domain.User)}
	authService := service.NewAuthService(service.AuthDependencies{
		Users:      users,
		Tokens:     tokens,
		Hasher:     hasher,
		Dispatcher: events.NewInMemoryDispatcher(),
		Logger:     logger,
	})

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)
	carts := service.NewCartService(mock, logger)

	app := fiber.New()
	RegisterMiddlewares(app, MiddlewareConfig{Logger: logger, Metrics: metrics, Timeout: time.Second})
	RegisterRoutes(app, RouteConfig{
		Health:        handlers.NewHealthHandler("shop-service", "test", nil),
		Auth:          handlers.NewAuthHandler(authService),
		Users:         handlers.NewUsersHandler(service.NewUserService(mock, hasher, logger)),
		Addresses:     handlers.NewAddressesHandler(service.NewAddressService(mock, logger)),
		Catalogues:    handlers.NewCataloguesHandler(service.NewCatalogueService(mock, logger)),
		Carts:         handlers.NewCartsHandler(carts),
		CartLines:     handlers.NewCartLinesHandler(service.NewCartLineService(mock, logger), carts),
		Checkouts:     handlers.NewCheckoutsHandler(service.NewCheckoutService(mock, logger), carts),
		Offers:        handlers.NewOffersHandler(service.NewOfferService(mock, logger)),
		Vouchers:      handlers.NewVouchersHandler(service.NewVoucherService(mock, logger)),
		Wishlists:     handlers.NewWishlistsHandler(service.NewWishlistService(mock, logger)),
		Authenticator: auth.NewAuthenticator(tokens, users),
		LoginLimiter:  NewLoginLimiter(nil, loginAttempts, time.Minute, metrics, logger),
		Gatherer:      registry,
	})
	return &testServer{app: app, mock: mock}
}

type envelope struct {
	Status string          `json:"status"`
	Code   int             `json:"code"`
	Msg    string          `json:"msg"`
	Data   json.RawMessage `json:"data"`
}

func (s *testServer) do(t *testing.T, method, path, contentType, body, token string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if contentType != "" {
		req.Header.Set(fiber.HeaderContentType, contentType)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := s.app.Test(req, 5000)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	var env envelope
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("decode %s: %v", raw, err)
		}
	}
	return resp.StatusCode, env
}

func (s *testServer) registerAndLogin(t *testing.T) string {
	t.Helper()
	status, _ := s.do(t, fiber.MethodPost, "/v1/auth/register", fiber.MIMEApplicationJSON,
		`{"username":"alice","email":"alice@example.com","password":"s3cret!","password_confirm":"s3cret!"}`, "")
	if status != fiber.StatusCreated {
		t.Fatalf("register status = %d", status)
	}
	return s.loginAs(t, "alice", "s3cret!")
}

func (s *testServer) loginAs(t *testing.T, username, password string) string {
	t.Helper()
	status, env := s.do(t, fiber.MethodPost, "/v1/auth/login", fiber.MIMEApplicationForm,
		"username="+username+"&password="+password, "")
	if status != fiber.StatusOK {
		t.Fatalf("login status = %d (%s)", status, env.Msg)
	}
	var tokens struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(env.Data, &tokens); err != nil {
		t.Fatalf("decode tokens: %v", err)
	}
	if tokens.AccessToken == "" || tokens.TokenType != "bearer" {
		t.Fatalf("unexpected token payload %s", env.Data)
	}
	return tokens.AccessToken
}

func TestHealthLive(t *testing.T) {
	s := newTestServer(t, 10)
	status, env := s.do(t, fiber.MethodGet, "/health/live", "", "", "")
	if status != fiber.StatusOK || env.Status != "success" || env.Code != fiber.StatusOK {
		t.Fatalf("unexpected response %d %+v", status, env)
	}
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	s := newTestServer(t, 10)
	status, env := s.do(t, fiber.MethodGet, "/v1/users/me", "", "", "")
	if status != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", status)
	}
	if env.Status != "fail" || env.Code != fiber.StatusUnauthorized || env.Msg != "Not authenticated" {
		t.Fatalf("unexpected envelope %+v", env)
	}
}

func TestInvalidTokenIsRejected(t *testing.T) {
	s := newTestServer(t, 10)
	status, env := s.do(t, fiber.MethodGet, "/v1/catalogues", "", "", "not-a-jwt")
	if status != fiber.StatusUnauthorized || env.Msg != "Could not validate credentials" {
		t.Fatalf("unexpected response %d %+v", status, env)
	}
}

func TestAdminRouteForbidsRegularUser(t *testing.T) {
	s := newTestServer(t, 10)
	token := s.registerAndLogin(t)

	status, env := s.do(t, fiber.MethodGet, "/v1/users", "", "", token)
	if status != fiber.StatusForbidden || env.Code != fiber.StatusForbidden {
		t.Fatalf("unexpected response %d %+v", status, env)
	}
	if env.Msg != "The user doesn't have enough privileges" {
		t.Fatalf("unexpected message %q", env.Msg)
	}
}

func TestRegisterDuplicateIsBadRequest(t *testing.T) {
	s := newTestServer(t, 10)
	s.registerAndLogin(t)

	status, env := s.do(t, fiber.MethodPost, "/v1/auth/register", fiber.MIMEApplicationJSON,
		`{"username":"alice","email":"other@example.com","password":"x"}`, "")
	if status != fiber.StatusBadRequest || env.Status != "fail" {
		t.Fatalf("unexpected response %d %+v", status, env)
	}
}

func TestCatalogueListIsPublic(t *testing.T) {
	s := newTestServer(t, 10)
	now := time.Now().UTC()
	s.mock.ExpectQuery(`SELECT .+ FROM catalogues ORDER BY id ASC LIMIT 100`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description", "price", "stock", "category", "created_at", "updated_at"}).
			AddRow(int64(1), "Racket", "", 89.5, 3, "sports", now, now))

	status, env := s.do(t, fiber.MethodGet, "/v1/catalogues", "", "", "")
	if status != fiber.StatusOK || env.Status != "success" {
		t.Fatalf("unexpected response %d %+v", status, env)
	}
	var items []map[string]any
	if err := json.Unmarshal(env.Data, &items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 1 || items[0]["name"] != "Racket" {
		t.Fatalf("unexpected items %v", items)
	}
	if err := s.mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInvalidIDIsValidationError(t *testing.T) {
	s := newTestServer(t, 10)
	status, env := s.do(t, fiber.MethodGet, "/v1/catalogues/abc", "", "", "")
	if status != fiber.StatusBadRequest || env.Code != fiber.StatusBadRequest {
		t.Fatalf("unexpected response %d %+v", status, env)
	}
}

func TestUnknownRouteUsesFailEnvelope(t *testing.T) {
	s := newTestServer(t, 10)
	status, env := s.do(t, fiber.MethodGet, "/v1/nowhere", "", "", "")
	if status != fiber.StatusNotFound || env.Status != "fail" || env.Code != fiber.StatusNotFound {
		t.Fatalf("unexpected response %d %+v", status, env)
	}
}

func TestLoginIsRateLimited(t *testing.T) {
	s := newTestServer(t, 2)
	for i := 0; i < 2; i++ {
		status, _ := s.do(t, fiber.MethodPost, "/v1/auth/login", fiber.MIMEApplicationForm, "username=bob&password=nope", "")
		if status != fiber.StatusUnauthorized {
			t.Fatalf("attempt %d status = %d, want 401", i+1, status)
		}
	}
	status, env := s.do(t, fiber.MethodPost, "/v1/auth/login", fiber.MIMEApplicationForm, "username=bob&password=nope", "")
	if status != fiber.StatusTooManyRequests || env.Code != fiber.StatusTooManyRequests || env.Status != "fail" {
		t.Fatalf("unexpected response %d %+v", status, env)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, 10)
	s.do(t, fiber.MethodGet, "/health/live", "", "", "")

	req := httptest.NewRequest(fiber.MethodGet, "/metrics", nil)
	resp, err := s.app.Test(req, 5000)
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != fiber.StatusOK || !strings.Contains(string(body), "shop_http_requests_total") {
		t.Fatalf("unexpected metrics response %d", resp.StatusCode)
	}
}

var (
	cartColumns     = []string{"id", "customer_id", "total_amount", "created_at", "updated_at"}
	cartLineColumns = []string{"id", "cart_id", "product_id", "quantity", "price", "discount_amount", "added_at", "created_at", "updated_at"}
)

func TestCartTotalForOwner(t *testing.T) {
	s := newTestServer(t, 10)
	token := s.registerAndLogin(t)
	now := time.Now().UTC()

	for i := 0; i < 2; i++ {
		s.mock.ExpectQuery(`FROM carts WHERE id = \$1`).
			WithArgs(int64(5)).
			WillReturnRows(pgxmock.NewRows(cartColumns).AddRow(int64(5), int64(1), 20.0, now, now))
	}
	s.mock.ExpectQuery(`FROM cart_lines WHERE cart_id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows(cartLineColumns).
			AddRow(int64(1), int64(5), int64(7), 2, 10.0, 0.0, now, now, now))

	status, env := s.do(t, fiber.MethodGet, "/v1/carts/5/total?tax_rate=0.1", "", "", token)
	if status != fiber.StatusOK {
		t.Fatalf("status = %d (%s)", status, env.Msg)
	}
	var total struct {
		Total float64 `json:"total"`
	}
	if err := json.Unmarshal(env.Data, &total); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if total.Total != 22 {
		t.Fatalf("total = %v, want 22", total.Total)
	}
	if err := s.mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCartOfAnotherCustomerIsForbidden(t *testing.T) {
	s := newTestServer(t, 10)
	token := s.registerAndLogin(t)
	now := time.Now().UTC()

	s.mock.ExpectQuery(`FROM carts WHERE id = \$1`).
		WithArgs(int64(9)).
		WillReturnRows(pgxmock.NewRows(cartColumns).AddRow(int64(9), int64(99), 0.0, now, now))

	status, env := s.do(t, fiber.MethodGet, "/v1/carts/9", "", "", token)
	if status != fiber.StatusForbidden || env.Status != "fail" {
		t.Fatalf("unexpected response %d %+v", status, env)
	}
}

func TestMeReturnsCallerProfile(t *testing.T) {
	s := newTestServer(t, 10)

	status, env := s.do(t, fiber.MethodPost, "/v1/auth/register", fiber.MIMEApplicationJSON,
		`{"username":"alice","email":"alice@example.com","password":"s3cret!"}`, "")
	if status != fiber.StatusCreated {
		t.Fatalf("register status = %d (%s)", status, env.Msg)
	}
	status, env = s.do(t, fiber.MethodPost, "/v1/auth/login", fiber.MIMEApplicationForm,
		"username=alice&password=wrong", "")
	if status != fiber.StatusUnauthorized || env.Msg != "Incorrect username or password" {
		t.Fatalf("wrong password: %d %+v", status, env)
	}

	token := s.loginAs(t, "alice", "s3cret!")
	now := time.Now().UTC()
	s.mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "email", "password_hash", "role", "is_active", "is_verified", "last_login", "created_at", "updated_at"}).
			AddRow(int64(1), "alice", "alice@example.com", "hash", domain.UserRoleUser, true, false, &now, now, now))

	status, env = s.do(t, fiber.MethodGet, "/v1/users/me", "", "", token)
	if status != fiber.StatusOK || env.Status != "success" {
		t.Fatalf("unexpected response %d %+v", status, env)
	}
	var me struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	if err := json.Unmarshal(env.Data, &me); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if me.ID != 1 || me.Username != "alice" || me.Role != "USER" {
		t.Fatalf("unexpected profile %+v", me)
	}
	if strings.Contains(string(env.Data), "hash") {
		t.Fatalf("profile leaks the password hash: %s", env.Data)
	}
	if err := s.mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestVoucherWritesAreAdminOnly(t *testing.T) {
	s := newTestServer(t, 10)
	token := s.registerAndLogin(t)

	for _, path := range []string{"/v1/vouchers", "/v1/offers"} {
		status, env := s.do(t, fiber.MethodPost, path, fiber.MIMEApplicationJSON, `{}`, token)
		if status != fiber.StatusForbidden || env.Status != "fail" {
			t.Fatalf("POST %s: unexpected response %d %+v", path, status, env)
		}
	}
}

func TestWishlistEntryOfAnotherCustomerIsForbidden(t *testing.T) {
	s := newTestServer(t, 10)
	token := s.registerAndLogin(t)
	now := time.Now().UTC()

	s.mock.ExpectQuery(`FROM wishlists WHERE id = \$1`).
		WithArgs(int64(4)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "customer_id", "product_id", "added_at", "created_at", "updated_at"}).
			AddRow(int64(4), int64(99), int64(7), now, now, now))

	status, env := s.do(t, fiber.MethodDelete, "/v1/wishlists/4", "", "", token)
	if status != fiber.StatusForbidden || env.Status != "fail" {
		t.Fatalf("unexpected response %d %+v", status, env)
	}
	if err := s.mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
