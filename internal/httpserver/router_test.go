package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	reviewsvc "storefront/internal/service/review"
)

type stubCustomerService struct {
	customer *domain.Customer
	err      error
}

func (s *stubCustomerService) Create(_ context.Context, c domain.Customer) (*domain.Customer, error) {
	if s.err != nil {
		return nil, s.err
	}
	c.ID = 1
	return &c, nil
}

func (s *stubCustomerService) Get(context.Context, int64) (*domain.Customer, error) {
	return s.customer, s.err
}

func (s *stubCustomerService) List(context.Context) ([]domain.Customer, error) {
	return []domain.Customer{}, s.err
}

func (s *stubCustomerService) Update(context.Context, int64, domain.CustomerPatch) (*domain.Customer, error) {
	return s.customer, s.err
}

func (s *stubCustomerService) Delete(context.Context, int64) error { return s.err }

type stubCategoryService struct{}

func (stubCategoryService) Create(_ context.Context, c domain.Category) (*domain.Category, error) {
	return &c, nil
}
func (stubCategoryService) Get(_ context.Context, id int64) (*domain.Category, error) {
	return &domain.Category{ID: id}, nil
}
func (stubCategoryService) List(context.Context) ([]domain.Category, error) {
	return []domain.Category{}, nil
}
func (stubCategoryService) Update(_ context.Context, id int64, _ domain.CategoryPatch) (*domain.Category, error) {
	return &domain.Category{ID: id}, nil
}
func (stubCategoryService) Delete(context.Context, int64) error { return nil }

type stubProductService struct {
	filter domain.ProductFilter
}

func (s *stubProductService) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	return &p, nil
}
func (s *stubProductService) Get(_ context.Context, id int64) (*domain.Product, error) {
	return nil, &domain.NotFoundError{Entity: "product", ID: id}
}
func (s *stubProductService) List(_ context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	s.filter = f
	return []domain.Product{}, nil
}
func (s *stubProductService) Update(_ context.Context, id int64, _ domain.ProductPatch) (*domain.Product, error) {
	return &domain.Product{ID: id}, nil
}
func (s *stubProductService) Delete(context.Context, int64) error { return nil }

type mockReviewService struct {
	mock.Mock
}

func (m *mockReviewService) Upsert(ctx context.Context, in reviewsvc.UpsertInput) (*domain.Review, bool, error) {
	args := m.Called(ctx, in)
	rv, _ := args.Get(0).(*domain.Review)
	return rv, args.Bool(1), args.Error(2)
}

func (m *mockReviewService) Get(ctx context.Context, id int64) (*domain.Review, error) {
	args := m.Called(ctx, id)
	rv, _ := args.Get(0).(*domain.Review)
	return rv, args.Error(1)
}

func (m *mockReviewService) ListByProduct(ctx context.Context, id int64) ([]domain.Review, error) {
	args := m.Called(ctx, id)
	list, _ := args.Get(0).([]domain.Review)
	return list, args.Error(1)
}

func (m *mockReviewService) ListByCustomer(ctx context.Context, id int64) ([]domain.Review, error) {
	args := m.Called(ctx, id)
	list, _ := args.Get(0).([]domain.Review)
	return list, args.Error(1)
}

func (m *mockReviewService) Summary(ctx context.Context, id int64) (domain.ReviewSummary, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.ReviewSummary), args.Error(1)
}

func (m *mockReviewService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type testEnv struct {
	router    *gin.Engine
	reviews   *mockReviewService
	products  *stubProductService
	customers *stubCustomerService
	registry  *prometheus.Registry
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	env := testEnv{
		reviews:   new(mockReviewService),
		products:  &stubProductService{},
		customers: &stubCustomerService{},
		registry:  prometheus.NewRegistry(),
	}
	router, err := buildRouter(nil, stubPinger{}, Deps{
		CustomerSvc: env.customers,
		CategorySvc: stubCategoryService{},
		ProductSvc:  env.products,
		ReviewSvc:   env.reviews,
	}, Options{Registry: env.registry, CORSAllowedOrigins: []string{"https://shop.example.com"}})
	require.NoError(t, err)
	env.router = router
	return env
}

func (e testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp.Error
}

func TestBuildRouter_RequiresServices(t *testing.T) {
	_, err := buildRouter(nil, nil, Deps{}, Options{})
	assert.Error(t, err)
}

func TestHealthAndReady(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/readyz", "").Code)

	router, err := buildRouter(nil, stubPinger{err: errors.New("down")}, Deps{
		CustomerSvc: env.customers,
		CategorySvc: stubCategoryService{},
		ProductSvc:  env.products,
		ReviewSvc:   env.reviews,
	}, Options{})
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestUpsertReview_CreatedThenUpdated(t *testing.T) {
	env := newTestEnv(t)
	want := reviewsvc.UpsertInput{ProductID: 1, CustomerID: 2, Rating: 5, IsVerifiedPurchase: true}
	env.reviews.On("Upsert", mock.Anything, mock.MatchedBy(func(in reviewsvc.UpsertInput) bool {
		return in.ProductID == want.ProductID && in.CustomerID == want.CustomerID && in.Rating == 5 && in.IsVerifiedPurchase
	})).Return(&domain.Review{ID: 9, ProductID: 1, CustomerID: 2, Rating: 5}, true, nil).Once()
	env.reviews.On("Upsert", mock.Anything, mock.Anything).
		Return(&domain.Review{ID: 9, ProductID: 1, CustomerID: 2, Rating: 4}, false, nil).Once()

	rec := env.do(http.MethodPut, "/products/1/reviews/2", `{"rating":5,"is_verified_purchase":true}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(http.MethodPut, "/products/1/reviews/2", `{"rating":4}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	var rv domain.Review
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rv))
	assert.Equal(t, int64(9), rv.ID)
	assert.Equal(t, 4, rv.Rating)
}

func TestUpsertReview_RejectsBadRating(t *testing.T) {
	env := newTestEnv(t)

	for _, body := range []string{`{"rating":4.5}`, `{"rating":"5"}`, `{}`} {
		rec := env.do(http.MethodPut, "/products/1/reviews/2", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, "rating", decodeError(t, rec).Field, body)
	}
	env.reviews.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestUpsertReview_BadPathIDs(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPut, "/products/abc/reviews/2", `{"rating":4}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "id", decodeError(t, rec).Field)

	rec = env.do(http.MethodPut, "/products/1/reviews/0", `{"rating":4}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "customerId", decodeError(t, rec).Field)
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", domain.NewValidationError("rating", "must be an integer between 1 and 5"), http.StatusBadRequest, "INVALID_INPUT"},
		{"referential", &domain.ReferentialError{Field: "product_id", ID: 7}, http.StatusUnprocessableEntity, "REFERENCE_NOT_FOUND"},
		{"constraint", &domain.ConstraintViolation{Constraint: domain.ReviewPairConstraint, Field: "customer_id"}, http.StatusConflict, "ALREADY_EXISTS"},
		{"not found", &domain.NotFoundError{Entity: "product", ID: 7}, http.StatusNotFound, "NOT_FOUND"},
		{"internal", errors.New("connection reset by peer"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.reviews.On("Upsert", mock.Anything, mock.Anything).Return(nil, false, tc.err)

			rec := env.do(http.MethodPut, "/products/7/reviews/2", `{"rating":3}`)

			require.Equal(t, tc.status, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tc.code, body.Code)
			assert.NotEmpty(t, body.RequestID)
			assert.NotContains(t, body.Message, "connection reset")
		})
	}
}

func TestConstraintViolationCarriesConstraint(t *testing.T) {
	env := newTestEnv(t)
	env.customers.err = &domain.ConstraintViolation{Constraint: domain.CustomerEmailConstraint, Field: "email"}

	rec := env.do(http.MethodPost, "/customers", `{"first_name":"John","last_name":"Doe","email":"jdoe@hotmail.com"}`)

	require.Equal(t, http.StatusConflict, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "email", body.Field)
	assert.Equal(t, domain.CustomerEmailConstraint, body.Constraint)
}

func TestCreateCustomer_BadBirthDate(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/customers", `{"first_name":"John","last_name":"Doe","email":"jdoe@hotmail.com","birth_date":"24/09/1990"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "birth_date", decodeError(t, rec).Field)
}

func TestProductRating_NoReviews(t *testing.T) {
	env := newTestEnv(t)
	env.reviews.On("Summary", mock.Anything, int64(3)).Return(domain.ReviewSummary{}, nil)

	rec := env.do(http.MethodGet, "/products/3/rating", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"average_rating":null,"review_count":0}`, rec.Body.String())
}

func TestListProducts_Filters(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/products?category_id=2&active=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(2), env.products.filter.CategoryID)
	require.NotNil(t, env.products.filter.Active)
	assert.True(t, *env.products.filter.Active)

	rec = env.do(http.MethodGet, "/products?active=maybe", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "active", decodeError(t, rec).Field)
}

func TestRequestID(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/healthz", "")
	assert.Len(t, rec.Header().Get(requestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestCORS(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/products", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://shop.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.do(http.MethodGet, "/healthz", "")

	rec := env.do(http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_request_duration_seconds_count{method="GET",route="/healthz",status="200"} 1`)
}
