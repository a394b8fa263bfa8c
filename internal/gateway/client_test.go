package gateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopsphere/storefront/internal/domain"
	apperrors "github.com/shopsphere/storefront/pkg/errors"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, Timeout: 5 * time.Second}, newTestLogger())
}

func TestClient_Login(t *testing.T) {
	var gotBody map[string]string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"_id":"u1","name":"Ada","email":"ada@example.com","isAdmin":true,"token":"tok-1"}`))
	}))

	raw, err := client.Login(context.Background(), "ada@example.com", "secret")

	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", gotBody["email"])
	assert.Equal(t, "secret", gotBody["password"])
	assert.Equal(t, "u1", raw.ID)
	assert.True(t, raw.IsAdmin)
	assert.Equal(t, "tok-1", raw.Token)
}

func TestClient_Login_InvalidCredentials(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid email or password"}`))
	}))

	_, err := client.Login(context.Background(), "ada@example.com", "wrong")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Invalid email or password", appErr.Message)
}

func TestClient_Register(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/register", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"u2","name":"Bob","token":"tok-2"}`))
	}))

	raw, err := client.Register(context.Background(), "Bob", "bob@example.com", "secret")

	require.NoError(t, err)
	assert.Equal(t, "u2", raw.Identity())
}

func TestClient_ListProducts_Normalizes(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"_id":"p1","name":"Keyboard","price":49.99,"countInStock":3}]`))
	}))

	products, err := client.ListProducts(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)
	assert.Equal(t, int64(4999), products[0].Price)
	assert.Equal(t, 3, products[0].CountInStock)
}

func TestClient_GetProduct_NotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Product not found"}`))
	}))

	_, err := client.GetProduct(context.Background(), "missing")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestClient_CreateProduct_SendsBearerToken(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"_id":"p9","name":"Mouse","price":19.90,"countInStock":7}`))
	}))

	product, err := client.CreateProduct(context.Background(), "admin-tok", domain.ProductInput{
		Name:         "Mouse",
		Price:        1990,
		CountInStock: 7,
	})

	require.NoError(t, err)
	assert.Equal(t, "Bearer admin-tok", gotAuth)
	assert.InDelta(t, 19.90, gotBody["price"], 0.001)
	assert.Equal(t, "p9", product.ID)
	assert.Equal(t, int64(1990), product.Price)
}

func TestClient_CreateOrder(t *testing.T) {
	var gotBody map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"_id":"o1","user":"u1","orderItems":[{"productId":"p1","qty":2}],"status":"Pending","totalPrice":25.50}`))
	}))

	order, err := client.CreateOrder(context.Background(), "tok",
		[]domain.OrderItem{{ProductID: "p1", Qty: 2}},
		domain.ShippingAddress{FullName: "Ada", Address: "1 Main St", City: "Springfield", PostalCode: "12345", Country: "US", Phone: "555-0100"},
	)

	require.NoError(t, err)
	assert.Equal(t, "o1", order.ID)
	assert.Equal(t, "u1", order.UserID)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, int64(2550), order.TotalPrice)

	items := gotBody["orderItems"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].(map[string]any)["productId"])
}

func TestClient_MyOrders_PopulatedUserObject(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/my", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"_id":"o1","user":{"_id":"u1","name":"Ada"},"orderItems":[],"status":"Shipped","totalPrice":10}]`))
	}))

	orders, err := client.MyOrders(context.Background(), "tok")

	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "u1", orders[0].UserID)
	assert.Equal(t, domain.OrderStatusShipped, orders[0].Status)
}

func TestClient_UpdateOrderStatus(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/orders/o1/status", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Delivered", body["status"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"_id":"o1","status":"Delivered","totalPrice":10}`))
	}))

	order, err := client.UpdateOrderStatus(context.Background(), "tok", "o1", "Delivered")

	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusDelivered, order.Status)
}

func TestClient_CircuitBreakerOpensAfterRepeatedFailures(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	// Drive enough failures to trip the breaker.
	for i := 0; i < 5; i++ {
		_, err := client.ListProducts(context.Background())
		require.Error(t, err)
	}

	_, err := client.ListProducts(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavail)
}
