package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/GnanaJothi-79/elite-device-boutique/internal/api"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/api/handler"
	m "github.com/GnanaJothi-79/elite-device-boutique/internal/api/middleware"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/constants"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/infra/producer"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/infra/repository/catalog"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/infra/repository/memory"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/pkg/clock"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/pkg/token"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type RouterTestSuite struct {
	suite.Suite
	clock    *clock.Fake
	orders   *service.OrderService
	checkout *service.CheckoutService
	handler  http.Handler
}

func (suite *RouterTestSuite) SetupTest() {
	repo, err := catalog.NewDefaultCatalogRepo()
	require.NoError(suite.T(), err)
	maker, err := token.NewJWTMaker("0123456789abcdef0123456789abcdef")
	require.NoError(suite.T(), err)

	suite.clock = clock.NewFake(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	catalogService := service.NewCatalogService(repo)
	cartService := service.NewCartService(memory.NewCartRepo(), catalogService, service.DefaultPricing())
	suite.orders = service.NewOrderService(memory.NewOrderRepo(), &producer.NoopOrderEventProducer{}, suite.clock, service.DefaultOrderServiceConfig())
	suite.checkout = service.NewCheckoutService(cartService, suite.orders, suite.clock, 2500*time.Millisecond)
	authService := service.NewAuthService(memory.NewUserRepo(), maker, time.Hour)

	server := api.NewServer(
		handler.NewProductHandler(catalogService),
		handler.NewCartHandler(cartService),
		handler.NewCheckoutHandler(suite.checkout),
		handler.NewOrderHandler(suite.orders),
		handler.NewAuthHandler(authService),
	)
	suite.handler = SetupRouter(server, maker, nil, Options{
		AuthLimiter: m.NewKeyedTokenBucket(0.001, 10),
	})
}

func (suite *RouterTestSuite) TearDownTest() {
	suite.checkout.Close()
	suite.orders.Close()
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (suite *RouterTestSuite) do(method, path, session string, body interface{}, headers ...string) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(suite.T(), err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.Header.Set(constants.SessionIDHeader, session)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	suite.handler.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func (suite *RouterTestSuite) decode(env envelope, v interface{}) {
	require.NoError(suite.T(), json.Unmarshal(env.Data, v))
}

func (suite *RouterTestSuite) TestHealthz() {
	w, _ := suite.do(http.MethodGet, "/healthz", "", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *RouterTestSuite) TestSessionHeader() {
	w, _ := suite.do(http.MethodGet, "/api/v1/cart", "", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	require.NotEmpty(suite.T(), w.Header().Get(constants.SessionIDHeader))

	w, _ = suite.do(http.MethodGet, "/api/v1/cart", "s1", nil)
	require.Equal(suite.T(), "s1", w.Header().Get(constants.SessionIDHeader))
	require.NotEmpty(suite.T(), w.Header().Get(constants.RequestIDHeader))
}

func (suite *RouterTestSuite) TestProducts() {
	w, env := suite.do(http.MethodGet, "/api/v1/products", "", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	var products []struct {
		ID       int    `json:"id"`
		Category string `json:"category"`
		Discount int    `json:"discount"`
	}
	suite.decode(env, &products)
	require.Len(suite.T(), products, 13)

	_, env = suite.do(http.MethodGet, "/api/v1/products?category=Audio", "", nil)
	suite.decode(env, &products)
	require.Len(suite.T(), products, 2)
	for _, p := range products {
		require.Equal(suite.T(), "Audio", p.Category)
	}

	_, env = suite.do(http.MethodGet, "/api/v1/products?search=iphone", "", nil)
	suite.decode(env, &products)
	require.Len(suite.T(), products, 1)
	require.Equal(suite.T(), 1, products[0].ID)

	w, env = suite.do(http.MethodGet, "/api/v1/products/4", "", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	var product struct {
		Discount int `json:"discount"`
	}
	suite.decode(env, &product)
	require.Equal(suite.T(), 25, product.Discount)

	w, _ = suite.do(http.MethodGet, "/api/v1/products/999", "", nil)
	require.Equal(suite.T(), http.StatusNotFound, w.Code)
	w, _ = suite.do(http.MethodGet, "/api/v1/products/abc", "", nil)
	require.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w, env = suite.do(http.MethodGet, "/api/v1/categories", "", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	var categories []struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	suite.decode(env, &categories)
	require.Len(suite.T(), categories, 8)
}

type cartResp struct {
	Items []struct {
		ProductID int `json:"product_id"`
		Quantity  int `json:"quantity"`
	} `json:"items"`
	TotalItems int `json:"total_items"`
	Summary    struct {
		Subtotal    decimal.Decimal `json:"subtotal"`
		ShippingFee decimal.Decimal `json:"shipping_fee"`
		Tax         decimal.Decimal `json:"tax"`
		Total       decimal.Decimal `json:"total"`
	} `json:"summary"`
}

func (suite *RouterTestSuite) TestCart() {
	w, env := suite.do(http.MethodPost, "/api/v1/cart/items", "s1", map[string]int{"product_id": 13, "quantity": 2})
	require.Equal(suite.T(), http.StatusOK, w.Code)
	var cart cartResp
	suite.decode(env, &cart)
	require.Equal(suite.T(), 2, cart.TotalItems)
	require.True(suite.T(), decimal.RequireFromString("39.98").Equal(cart.Summary.Subtotal))
	require.True(suite.T(), decimal.RequireFromString("9.99").Equal(cart.Summary.ShippingFee))
	require.True(suite.T(), decimal.RequireFromString("3.20").Equal(cart.Summary.Tax))
	require.True(suite.T(), decimal.RequireFromString("53.17").Equal(cart.Summary.Total))

	_, env = suite.do(http.MethodPut, "/api/v1/cart/items/13", "s1", map[string]int{"quantity": 5})
	suite.decode(env, &cart)
	require.Equal(suite.T(), 5, cart.TotalItems)

	// 其他 session 看不到
	_, env = suite.do(http.MethodGet, "/api/v1/cart", "s2", nil)
	suite.decode(env, &cart)
	require.Empty(suite.T(), cart.Items)

	_, env = suite.do(http.MethodDelete, "/api/v1/cart/items/13", "s1", nil)
	suite.decode(env, &cart)
	require.Empty(suite.T(), cart.Items)

	w, _ = suite.do(http.MethodPost, "/api/v1/cart/items", "s1", map[string]int{"product_id": 999})
	require.Equal(suite.T(), http.StatusNotFound, w.Code)

	suite.do(http.MethodPost, "/api/v1/cart/items", "s1", map[string]int{"product_id": 1})
	w, env = suite.do(http.MethodDelete, "/api/v1/cart", "s1", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	suite.decode(env, &cart)
	require.Empty(suite.T(), cart.Items)
}

func (suite *RouterTestSuite) TestCheckoutFlow() {
	shipping := map[string]string{
		"name": "Jane Doe", "email": "jane@example.com", "address": "1 Main St",
		"city": "Springfield", "zip": "12345", "phone": "555-0100",
	}
	payment := map[string]string{
		"card_number": "4242 4242 4242 4242", "card_name": "Jane Doe", "expiry": "12/30", "cvv": "123",
	}

	w, _ := suite.do(http.MethodPost, "/api/v1/checkout", "s1", nil)
	require.Equal(suite.T(), http.StatusConflict, w.Code)

	suite.do(http.MethodPost, "/api/v1/cart/items", "s1", map[string]int{"product_id": 13, "quantity": 2})

	var flow struct {
		Step          string `json:"step"`
		PaymentMethod string `json:"payment_method"`
		OrderID       string `json:"order_id"`
	}
	w, env := suite.do(http.MethodPost, "/api/v1/checkout", "s1", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	suite.decode(env, &flow)
	require.Equal(suite.T(), "shipping", flow.Step)

	// 付款要在 shipping 之後
	w, _ = suite.do(http.MethodPost, "/api/v1/checkout/payment", "s1", payment)
	require.Equal(suite.T(), http.StatusConflict, w.Code)

	bad := map[string]string{}
	for k, v := range shipping {
		bad[k] = v
	}
	bad["city"] = " "
	w, env = suite.do(http.MethodPost, "/api/v1/checkout/shipping", "s1", bad)
	require.Equal(suite.T(), http.StatusBadRequest, w.Code)
	var fields struct {
		Fields []string `json:"fields"`
	}
	suite.decode(env, &fields)
	require.Equal(suite.T(), []string{"city"}, fields.Fields)

	w, env = suite.do(http.MethodPost, "/api/v1/checkout/shipping", "s1", shipping)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	suite.decode(env, &flow)
	require.Equal(suite.T(), "payment", flow.Step)

	w, env = suite.do(http.MethodPost, "/api/v1/checkout/payment", "s1", payment)
	require.Equal(suite.T(), http.StatusAccepted, w.Code)
	suite.decode(env, &flow)
	require.Equal(suite.T(), "processing", flow.Step)
	require.Equal(suite.T(), "**** **** **** 4242", flow.PaymentMethod)

	w, _ = suite.do(http.MethodPost, "/api/v1/checkout/back", "s1", nil)
	require.Equal(suite.T(), http.StatusConflict, w.Code)

	suite.clock.Advance(2500 * time.Millisecond)

	_, env = suite.do(http.MethodGet, "/api/v1/checkout", "s1", nil)
	suite.decode(env, &flow)
	require.Equal(suite.T(), "success", flow.Step)
	require.NotEmpty(suite.T(), flow.OrderID)

	var cart cartResp
	_, env = suite.do(http.MethodGet, "/api/v1/cart", "s1", nil)
	suite.decode(env, &cart)
	require.Empty(suite.T(), cart.Items)

	var orders []struct {
		ID     string          `json:"id"`
		Status string          `json:"status"`
		Total  decimal.Decimal `json:"total"`
	}
	_, env = suite.do(http.MethodGet, "/api/v1/orders", "s1", nil)
	suite.decode(env, &orders)
	require.Len(suite.T(), orders, 1)
	require.Equal(suite.T(), flow.OrderID, orders[0].ID)
	require.True(suite.T(), decimal.RequireFromString("53.17").Equal(orders[0].Total))

	w, _ = suite.do(http.MethodGet, "/api/v1/orders/"+flow.OrderID, "s2", nil)
	require.Equal(suite.T(), http.StatusNotFound, w.Code)

	suite.clock.Advance(3 * time.Second)
	var order struct {
		Status     string `json:"status"`
		StatusStep int    `json:"status_step"`
	}
	w, env = suite.do(http.MethodGet, "/api/v1/orders/"+flow.OrderID, "s1", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	suite.decode(env, &order)
	require.Equal(suite.T(), "confirmed", order.Status)
	require.Equal(suite.T(), 1, order.StatusStep)
}

func (suite *RouterTestSuite) TestCheckoutNotStarted() {
	w, _ := suite.do(http.MethodGet, "/api/v1/checkout", "nobody", nil)
	require.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *RouterTestSuite) TestAuth() {
	creds := map[string]string{"email": "jane@example.com", "password": "secret123", "name": "Jane"}

	w, env := suite.do(http.MethodPost, "/api/v1/auth/signup", "", creds)
	require.Equal(suite.T(), http.StatusCreated, w.Code)
	var user struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	suite.decode(env, &user)
	require.Equal(suite.T(), "jane@example.com", user.Email)

	w, _ = suite.do(http.MethodPost, "/api/v1/auth/signup", "", creds)
	require.Equal(suite.T(), http.StatusConflict, w.Code)

	w, _ = suite.do(http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"email": "long@example.com", "password": strings.Repeat("p", 80),
	})
	require.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w, _ = suite.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "jane@example.com", "password": "wrong"})
	require.Equal(suite.T(), http.StatusUnauthorized, w.Code)

	w, _ = suite.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "jane@example.com"})
	require.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w, env = suite.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "Jane@Example.com", "password": "secret123"})
	require.Equal(suite.T(), http.StatusOK, w.Code)
	var login struct {
		AccessToken struct {
			Value     string `json:"value"`
			ExpiresIn int    `json:"expires_in"`
		} `json:"access_token"`
	}
	suite.decode(env, &login)
	require.NotEmpty(suite.T(), login.AccessToken.Value)
	require.Greater(suite.T(), login.AccessToken.ExpiresIn, 0)

	w, env = suite.do(http.MethodGet, "/api/v1/auth/me", "", nil, "Authorization", "Bearer "+login.AccessToken.Value)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	suite.decode(env, &user)
	require.Equal(suite.T(), "jane@example.com", user.Email)

	w, _ = suite.do(http.MethodGet, "/api/v1/auth/me", "", nil)
	require.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *RouterTestSuite) TestAuthRateLimit() {
	var last int
	for i := 0; i < 11; i++ {
		w, _ := suite.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{})
		last = w.Code
		if i < 10 {
			require.Equal(suite.T(), http.StatusBadRequest, w.Code)
		}
	}
	require.Equal(suite.T(), http.StatusTooManyRequests, last)

	// 其他路由不受影響
	w, _ := suite.do(http.MethodGet, "/api/v1/products", "", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
}
