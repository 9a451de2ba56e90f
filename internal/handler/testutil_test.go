package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agriconnect/internal/model"
	"agriconnect/internal/repository"
	"agriconnect/internal/service"
	"agriconnect/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupApp wires the full route table against an in-memory database and
// session store, mirroring cmd/api.
func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.UserType{},
		&model.User{},
		&model.Product{},
		&model.Listing{},
		&model.Order{},
		&model.OrderItem{},
	))

	userTypeRepo := repository.NewUserTypeRepo(db)
	require.NoError(t, userTypeRepo.SeedDefaults())

	sessions := session.NewMemoryStore(time.Hour)
	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)
	listingRepo := repository.NewListingRepo(db)
	orderRepo := repository.NewOrderRepo(db)

	authService := service.NewAuthService(userRepo, userTypeRepo, sessions)
	catalogService := service.NewCatalogService(productRepo, listingRepo)
	orderService := service.NewOrderService(orderRepo, listingRepo, db)

	app := fiber.New()
	RegisterRoutes(app, sessions,
		NewAuthHandler(authService, time.Hour),
		NewUserHandler(userRepo, catalogService, orderService),
		NewProductHandler(catalogService),
		NewListingHandler(catalogService),
		NewOrderHandler(orderService),
	)
	return app, db
}

// doJSON performs a request and decodes the JSON response body into a map.
// token, when non-empty, is sent as a bearer header.
func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	// Object responses decode into the returned map; array and empty
	// responses yield nil.
	var decoded map[string]interface{}
	if len(raw) > 0 && resp.StatusCode != http.StatusNoContent {
		var any interface{}
		require.NoError(t, json.Unmarshal(raw, &any), "body: %s", raw)
		decoded, _ = any.(map[string]interface{})
	}
	return resp.StatusCode, decoded
}

// assertDecimal compares a JSON decimal string against the expected value,
// ignoring formatting differences like trailing zeros.
func assertDecimal(t *testing.T, expected string, got interface{}) {
	t.Helper()
	s, ok := got.(string)
	require.True(t, ok, "decimal fields must serialize as strings, got %T (%v)", got, got)
	want, err := decimal.NewFromString(expected)
	require.NoError(t, err)
	actual, err := decimal.NewFromString(s)
	require.NoError(t, err)
	require.True(t, want.Equal(actual), "expected %s, got %s", expected, s)
}

// registerAndLogin creates an account and returns its id and session token.
func registerAndLogin(t *testing.T, app *fiber.App, name, email string, userTypeID uint) (uuid.UUID, string) {
	t.Helper()

	status, body := doJSON(t, app, "POST", "/register", map[string]interface{}{
		"name":         name,
		"email":        email,
		"password":     "secret123",
		"user_type_id": userTypeID,
	}, "")
	require.Equal(t, 201, status, "register: %v", body)

	data := body["data"].(map[string]interface{})
	userID, err := uuid.Parse(data["id"].(string))
	require.NoError(t, err)

	status, body = doJSON(t, app, "POST", "/login", map[string]interface{}{
		"email":    email,
		"password": "secret123",
	}, "")
	require.Equal(t, 200, status, "login: %v", body)

	return userID, body["token"].(string)
}
