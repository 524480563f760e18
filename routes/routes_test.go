package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fiber-mongo-storefront/configs"
	"fiber-mongo-storefront/models"
	"fiber-mongo-storefront/routes"
	"fiber-mongo-storefront/services"
	"fiber-mongo-storefront/store/memstore"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

type apiResponse struct {
	Status  int                    `json:"status"`
	Message string                 `json:"message"`
	Result  map[string]interface{} `json:"result"`
}

type testServer struct {
	app *fiber.App
	db  *memstore.DB
	cfg configs.Config
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := configs.Config{
		AppEnv:         "dev",
		JWTSecret:      "test-secret",
		SessionTTL:     time.Hour,
		AdminEmails:    []string{"admin@shop.io"},
		PublicDir:      t.TempDir(),
		RequestTimeout: 5 * time.Second,
		CORSOrigins:    "*",
	}
	require.NoError(t, os.MkdirAll(cfg.ImageDir(), 0o755))

	db := memstore.New()
	catalog := services.NewCatalogService(db.Products())
	carts := services.NewCartService(db.Carts())

	app := routes.NewApp(cfg, routes.Services{
		Users:   services.NewUserService(db.Users(), cfg.AdminEmails),
		Catalog: catalog,
		Carts:   carts,
		Orders:  services.NewOrderService(db.Orders(), catalog, carts),
	})
	return &testServer{app: app, db: db, cfg: cfg}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (*http.Response, apiResponse) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return s.send(t, req)
}

func (s *testServer) send(t *testing.T, req *http.Request) (*http.Response, apiResponse) {
	t.Helper()

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)

	var out apiResponse
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

func (s *testServer) signup(t *testing.T, email string) string {
	t.Helper()

	resp, out := s.do(t, http.MethodPost, "/api/signup", "", map[string]string{
		"name":            "Test User",
		"email":           email,
		"password":        "password123",
		"confirmPassword": "password123",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, out.Message)
	return out.Result["data"].(map[string]interface{})["token"].(string)
}

func (s *testServer) seedProduct(t *testing.T, name, price string) string {
	t.Helper()

	id, err := s.db.Products().Insert(context.Background(), &models.Product{
		Name:     name,
		Category: "General",
		Price:    models.MustParseMoney(price),
	})
	require.NoError(t, err)
	return id.Hex()
}

func TestSignupAndSignin(t *testing.T) {
	s := setupTestServer(t)
	s.signup(t, "ada@example.com")

	t.Run("duplicate email", func(t *testing.T) {
		resp, _ := s.do(t, http.MethodPost, "/api/signup", "", map[string]string{
			"name": "Ada", "email": "ADA@example.com", "password": "password123", "confirmPassword": "password123",
		})
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	})

	t.Run("mismatched passwords", func(t *testing.T) {
		resp, out := s.do(t, http.MethodPost, "/api/signup", "", map[string]string{
			"name": "Bob", "email": "bob@example.com", "password": "password123", "confirmPassword": "password321",
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, out.Message, "confirmPassword")
	})

	t.Run("signin sets session cookie", func(t *testing.T) {
		resp, out := s.do(t, http.MethodPost, "/api/signin", "", map[string]string{
			"email": "ada@example.com", "password": "password123",
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "user", out.Result["data"].(map[string]interface{})["type"])

		var session *http.Cookie
		for _, c := range resp.Cookies() {
			if c.Name == "session" {
				session = c
			}
		}
		require.NotNil(t, session)
		assert.True(t, session.HttpOnly)

		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.AddCookie(&http.Cookie{Name: "session", Value: session.Value})
		resp, out = s.send(t, req)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "ada@example.com", out.Result["user"].(map[string]interface{})["email"])
	})

	t.Run("wrong password", func(t *testing.T) {
		resp, _ := s.do(t, http.MethodPost, "/api/signin", "", map[string]string{
			"email": "ada@example.com", "password": "not-the-password",
		})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestCartAndCheckout(t *testing.T) {
	s := setupTestServer(t)
	token := s.signup(t, "shopper@example.com")
	mug := s.seedProduct(t, "Mug", "9.99")
	lamp := s.seedProduct(t, "Lamp", "20")

	resp, _ := s.do(t, http.MethodGet, "/api/cart", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	for _, id := range []string{mug, mug, lamp} {
		resp, out := s.do(t, http.MethodPost, "/api/cart/add", token, map[string]string{"productId": id})
		require.Equal(t, fiber.StatusOK, resp.StatusCode, out.Message)
	}

	resp, out := s.do(t, http.MethodGet, "/api/cart", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "39.98", out.Result["total"])
	assert.EqualValues(t, 3, out.Result["count"])

	resp, out = s.do(t, http.MethodPost, "/api/cart/quantity", token, map[string]string{"productId": lamp, "action": "decrease"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "19.98", out.Result["total"])

	resp, _ = s.do(t, http.MethodPost, "/api/cart/quantity", token, map[string]string{"productId": lamp, "action": "double"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = s.do(t, http.MethodPost, "/api/cart/add", token, map[string]string{"productId": "not-hex"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, out = s.do(t, http.MethodPost, "/api/order-now", token, map[string]interface{}{
		"productId": mug, "quantity": 2, "price": "9.99", "location": " Depot 4 ",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, out.Message)
	orderId := out.Result["orderId"].(string)

	resp, out = s.do(t, http.MethodGet, "/api/cart", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, out.Result["products"])

	resp, out = s.do(t, http.MethodGet, "/api/orders", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	orders := out.Result["orders"].([]interface{})
	require.Len(t, orders, 1)
	order := orders[0].(map[string]interface{})
	assert.Equal(t, orderId, order["id"])
	assert.Equal(t, "19.98", order["totalAmount"])
	assert.Equal(t, "Pending", order["status"])
	assert.Equal(t, "Depot 4", order["location"])

	resp, _ = s.do(t, http.MethodGet, "/api/orders/"+orderId, token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	t.Run("unknown product", func(t *testing.T) {
		resp, _ := s.do(t, http.MethodPost, "/api/order-now", token, map[string]interface{}{
			"productId": "65f0c0ffee0000000000beef", "quantity": 1, "price": 3, "location": "Depot",
		})
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("missing location", func(t *testing.T) {
		resp, _ := s.do(t, http.MethodPost, "/api/order-now", token, map[string]interface{}{
			"productId": mug, "quantity": 1, "price": 3,
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("other users cannot read the order", func(t *testing.T) {
		other := s.signup(t, "other@example.com")
		resp, _ := s.do(t, http.MethodGet, "/api/orders/"+orderId, other, nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestOrderHistoryAfterRepricing(t *testing.T) {
	s := setupTestServer(t)
	admin := s.signup(t, "admin@shop.io")
	shopper := s.signup(t, "shopper@example.com")
	mug := s.seedProduct(t, "Mug", "9.99")

	resp, out := s.do(t, http.MethodPost, "/api/order-now", shopper, map[string]interface{}{
		"productId": mug, "quantity": 2, "price": "9.99", "location": "Depot",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, out.Message)

	resp, out = s.do(t, http.MethodPut, "/api/admin/products/"+mug, admin, map[string]string{
		"name": "Mug Deluxe", "category": "General", "price": "50",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, out.Message)

	resp, out = s.do(t, http.MethodGet, "/api/orders", shopper, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	orders := out.Result["orders"].([]interface{})
	require.Len(t, orders, 1)
	order := orders[0].(map[string]interface{})
	assert.Equal(t, "19.98", order["totalAmount"])
	products := order["products"].([]interface{})
	require.Len(t, products, 1)
	line := products[0].(map[string]interface{})
	assert.Equal(t, "Mug Deluxe", line["name"])
	assert.Equal(t, "50", line["price"])

	stored := s.db.StoredOrders()
	require.Len(t, stored, 1)
	assert.Equal(t, "9.99", stored[0].Products[0].Price.String())
}

func TestSearch(t *testing.T) {
	s := setupTestServer(t)
	s.seedProduct(t, "Running Shoe", "59.90")
	s.seedProduct(t, "Desk Lamp", "25")

	resp, out := s.do(t, http.MethodGet, "/api/search?q=SHOE", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	products := out.Result["products"].([]interface{})
	require.Len(t, products, 1)
	assert.Equal(t, "Running Shoe", products[0].(map[string]interface{})["name"])

	resp, out = s.do(t, http.MethodGet, "/api/search?q=", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, out.Result["products"])
}

func TestAdmin(t *testing.T) {
	s := setupTestServer(t)
	admin := s.signup(t, "admin@shop.io")
	shopper := s.signup(t, "shopper@example.com")

	resp, _ := s.do(t, http.MethodGet, "/api/admin/orders", shopper, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField("name", "Kettle"))
	require.NoError(t, form.WriteField("category", "Kitchen"))
	require.NoError(t, form.WriteField("description", "1.7 litre"))
	require.NoError(t, form.WriteField("price", "30.00"))
	part, err := form.CreateFormFile("image", "kettle.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG fake image"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/products", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+admin)
	resp, out := s.send(t, req)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, out.Message)

	productId := out.Result["productId"].(string)
	assert.Equal(t, "images/product-images/"+productId+".png", out.Result["image"])
	assert.FileExists(t, filepath.Join(s.cfg.ImageDir(), productId+".png"))

	resp, out = s.do(t, http.MethodPut, "/api/admin/products/"+productId, admin, map[string]string{
		"name": "Kettle XL", "category": "Kitchen", "price": "35",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, out.Message)

	resp, out = s.do(t, http.MethodGet, "/api/products/"+productId, "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Kettle XL", out.Result["product"].(map[string]interface{})["name"])

	resp, out = s.do(t, http.MethodPost, "/api/cart/add", shopper, map[string]string{"productId": productId})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, out.Message)
	resp, out = s.do(t, http.MethodPost, "/api/order-now", shopper, map[string]interface{}{
		"productId": productId, "quantity": 1, "price": "35", "location": "Depot",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, out.Message)

	resp, out = s.do(t, http.MethodGet, "/api/admin/orders", admin, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	orders := out.Result["orders"].([]interface{})
	require.Len(t, orders, 1)
	assert.Equal(t, "shopper@example.com", orders[0].(map[string]interface{})["user"].(map[string]interface{})["email"])

	t.Run("export products", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/products/export", nil)
		req.Header.Set("Authorization", "Bearer "+admin)
		resp, err := s.app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "products.xlsx")

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		file, err := xlsx.OpenBinary(raw)
		require.NoError(t, err)
		sheet := file.Sheet["Products"]
		require.NotNil(t, sheet)
		require.Len(t, sheet.Rows, 2)
		assert.Equal(t, "Kettle XL", sheet.Rows[1].Cells[1].String())
		assert.Equal(t, "35.00", sheet.Rows[1].Cells[3].String())
	})

	resp, _ = s.do(t, http.MethodDelete, "/api/admin/products/"+productId, admin, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NoFileExists(t, filepath.Join(s.cfg.ImageDir(), productId+".png"))

	resp, _ = s.do(t, http.MethodDelete, "/api/admin/products/"+productId, admin, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
