package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthFlow(t *testing.T) {
	app, _ := setupApp(t)

	_, token := registerAndLogin(t, app, "Alice Farmer", "alice@example.com", 1)

	status, body := doJSON(t, app, "GET", "/me", nil, token)
	require.Equal(t, 200, status)
	assert.Equal(t, "alice@example.com", body["email"])
	assert.Equal(t, "farmer", body["user_type"])

	status, _ = doJSON(t, app, "POST", "/logout", nil, token)
	require.Equal(t, 200, status)

	status, _ = doJSON(t, app, "GET", "/me", nil, token)
	assert.Equal(t, 401, status, "session must be invalid after logout")
}

func TestRegister_DuplicateEmailConflict(t *testing.T) {
	app, _ := setupApp(t)
	registerAndLogin(t, app, "Alice Farmer", "alice@example.com", 1)

	status, body := doJSON(t, app, "POST", "/register", map[string]interface{}{
		"name":         "Imposter",
		"email":        "alice@example.com",
		"password":     "secret123",
		"user_type_id": 2,
	}, "")
	assert.Equal(t, 409, status)
	assert.Contains(t, body["error"], "email")
}

func TestLogin_WrongPassword(t *testing.T) {
	app, _ := setupApp(t)
	registerAndLogin(t, app, "Alice Farmer", "alice@example.com", 1)

	status, body := doJSON(t, app, "POST", "/login", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "nope nope",
	}, "")
	assert.Equal(t, 401, status)
	assert.NotContains(t, body, "token")
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	app, _ := setupApp(t)

	for _, route := range []struct{ method, path string }{
		{"GET", "/me"},
		{"POST", "/products"},
		{"POST", "/user-products"},
		{"POST", "/orders-with-items"},
		{"GET", "/farmer-orders"},
	} {
		req := httptest.NewRequest(route.method, route.path, nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, 401, resp.StatusCode, "%s %s", route.method, route.path)
	}
}

func TestListingPatch_RejectsUnknownFields(t *testing.T) {
	app, _ := setupApp(t)
	farmerID, token := registerAndLogin(t, app, "Alice Farmer", "alice@example.com", 1)

	status, body := doJSON(t, app, "POST", "/products", map[string]interface{}{
		"name":       "Potatoes",
		"base_price": "1.20",
	}, token)
	require.Equal(t, 201, status, "%v", body)
	productID := body["data"].(map[string]interface{})["id"].(string)

	status, _ = doJSON(t, app, "POST", "/user-products", map[string]interface{}{
		"product_id":     productID,
		"price":          "1.50",
		"stock_quantity": 20,
	}, token)
	require.Equal(t, 201, status)

	path := "/user-products/" + farmerID.String() + "/" + productID

	// Mass assignment attempt: unknown key must be rejected outright.
	status, body = doJSON(t, app, "PUT", path, map[string]interface{}{
		"price":   "1.80",
		"user_id": "00000000-0000-0000-0000-000000000001",
	}, token)
	assert.Equal(t, 400, status)
	assert.Contains(t, body["error"], "unknown")

	// The allow-listed patch goes through and stock is untouched.
	status, body = doJSON(t, app, "PUT", path, map[string]interface{}{
		"price": "1.80",
	}, token)
	require.Equal(t, 200, status, "%v", body)
	data := body["data"].(map[string]interface{})
	assertDecimal(t, "1.80", data["price"])
	assert.Equal(t, float64(20), data["stock_quantity"])
}

func TestListingCreate_DuplicatePairConflict(t *testing.T) {
	app, _ := setupApp(t)
	_, token := registerAndLogin(t, app, "Alice Farmer", "alice@example.com", 1)

	status, body := doJSON(t, app, "POST", "/products", map[string]interface{}{
		"name":       "Leeks",
		"base_price": "2.10",
	}, token)
	require.Equal(t, 201, status)
	productID := body["data"].(map[string]interface{})["id"].(string)

	payload := map[string]interface{}{
		"product_id":     productID,
		"price":          "2.50",
		"stock_quantity": 5,
	}
	status, _ = doJSON(t, app, "POST", "/user-products", payload, token)
	require.Equal(t, 201, status)

	status, _ = doJSON(t, app, "POST", "/user-products", payload, token)
	assert.Equal(t, 409, status)
}

func TestOrderWorkflowOverHTTP(t *testing.T) {
	app, _ := setupApp(t)
	farmerID, farmerToken := registerAndLogin(t, app, "Alice Farmer", "alice@example.com", 1)
	_, buyerToken := registerAndLogin(t, app, "Bea Buyer", "bea@example.com", 2)

	status, body := doJSON(t, app, "POST", "/products", map[string]interface{}{
		"name":       "Apples",
		"base_price": "3.00",
	}, farmerToken)
	require.Equal(t, 201, status)
	productID := body["data"].(map[string]interface{})["id"].(string)

	status, _ = doJSON(t, app, "POST", "/user-products", map[string]interface{}{
		"product_id":     productID,
		"price":          "3.50",
		"stock_quantity": 10,
	}, farmerToken)
	require.Equal(t, 201, status)

	// Place a two-unit order as the buyer.
	status, body = doJSON(t, app, "POST", "/orders-with-items", map[string]interface{}{
		"items": []map[string]interface{}{
			{"product_id": productID, "quantity": 2},
		},
	}, buyerToken)
	require.Equal(t, 201, status, "%v", body)
	orderID := body["order_id"].(string)

	// Monetary fields serialize as decimal strings, never numbers.
	total := body["data"].(map[string]interface{})["total_price"]
	assertDecimal(t, "7.00", total)

	// Seller sees the incoming order.
	status, _ = doJSON(t, app, "GET", "/farmer-orders", nil, farmerToken)
	require.Equal(t, 200, status)

	// Buyer cannot pay a pending order.
	status, _ = doJSON(t, app, "PUT", "/orders/"+orderID+"/pay", nil, buyerToken)
	assert.Equal(t, 409, status)

	// Buyer cannot accept; only the seller can.
	status, _ = doJSON(t, app, "PUT", "/farmer-orders/"+orderID+"/accept", nil, buyerToken)
	assert.Equal(t, 403, status)

	status, body = doJSON(t, app, "PUT", "/farmer-orders/"+orderID+"/accept", nil, farmerToken)
	require.Equal(t, 200, status, "%v", body)

	status, body = doJSON(t, app, "PUT", "/orders/"+orderID+"/pay", nil, buyerToken)
	require.Equal(t, 200, status, "%v", body)
	assert.Equal(t, "paid", body["data"].(map[string]interface{})["status"])

	// Stock stayed reserved through the whole flow.
	status, body = doJSON(t, app, "GET", "/user-products/"+farmerID.String()+"/"+productID, nil, "")
	require.Equal(t, 200, status)
	assert.Equal(t, float64(8), body["stock_quantity"])
}

func TestPlaceOrder_InsufficientStockOverHTTP(t *testing.T) {
	app, _ := setupApp(t)
	farmerID, farmerToken := registerAndLogin(t, app, "Alice Farmer", "alice@example.com", 1)
	_, buyerToken := registerAndLogin(t, app, "Bea Buyer", "bea@example.com", 2)

	status, body := doJSON(t, app, "POST", "/products", map[string]interface{}{
		"name":       "Plums",
		"base_price": "4.00",
	}, farmerToken)
	require.Equal(t, 201, status)
	productID := body["data"].(map[string]interface{})["id"].(string)

	status, _ = doJSON(t, app, "POST", "/user-products", map[string]interface{}{
		"product_id":     productID,
		"price":          "4.20",
		"stock_quantity": 5,
	}, farmerToken)
	require.Equal(t, 201, status)

	status, body = doJSON(t, app, "POST", "/orders-with-items", map[string]interface{}{
		"items": []map[string]interface{}{
			{"product_id": productID, "quantity": 6},
		},
	}, buyerToken)
	assert.Equal(t, 409, status)
	assert.Contains(t, body["error"], "insufficient stock")

	status, body = doJSON(t, app, "GET", "/user-products/"+farmerID.String()+"/"+productID, nil, "")
	require.Equal(t, 200, status)
	assert.Equal(t, float64(5), body["stock_quantity"], "stock untouched after failed placement")

	status, body = doJSON(t, app, "GET", "/orders", nil, buyerToken)
	require.Equal(t, 200, status)
}

func TestUserRoutes(t *testing.T) {
	app, _ := setupApp(t)
	farmerID, farmerToken := registerAndLogin(t, app, "Alice Farmer", "alice@example.com", 1)
	buyerID, buyerToken := registerAndLogin(t, app, "Bea Buyer", "bea@example.com", 2)

	status, body := doJSON(t, app, "GET", "/users/"+farmerID.String(), nil, "")
	require.Equal(t, 200, status)
	assert.Equal(t, "Alice Farmer", body["name"])
	assert.NotContains(t, body, "password")

	status, _ = doJSON(t, app, "GET", "/users/"+farmerID.String()+"/products", nil, "")
	assert.Equal(t, 200, status)

	// Order history is private.
	status, _ = doJSON(t, app, "GET", "/users/"+buyerID.String()+"/orders", nil, farmerToken)
	assert.Equal(t, 403, status)
	status, _ = doJSON(t, app, "GET", "/users/"+buyerID.String()+"/orders", nil, buyerToken)
	assert.Equal(t, 200, status)
}
