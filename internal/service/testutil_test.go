package service

import (
	"fmt"
	"testing"

	"agriconnect/internal/model"
	"agriconnect/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database, migrates the schema and
// seeds the static user types. Each test gets its own database.
func setupTestDB(t *testing.T) *gorm.DB {
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
	require.NoError(t, repository.NewUserTypeRepo(db).SeedDefaults())

	return db
}

func createUser(t *testing.T, db *gorm.DB, name, email, typeName string) *model.User {
	t.Helper()

	userType, err := repository.NewUserTypeRepo(db).FindByName(typeName)
	require.NoError(t, err)

	user := &model.User{
		Name:       name,
		Email:      email,
		UserTypeID: userType.ID,
	}
	require.NoError(t, user.SetPassword("secret123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func createProduct(t *testing.T, db *gorm.DB, name, basePrice string) *model.Product {
	t.Helper()

	product := &model.Product{
		Name:      name,
		BasePrice: mustDecimal(t, basePrice),
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func createListing(t *testing.T, db *gorm.DB, sellerID, productID uuid.UUID, price string, stock int) *model.Listing {
	t.Helper()

	listing := &model.Listing{
		UserID:        sellerID,
		ProductID:     productID,
		Price:         mustDecimal(t, price),
		StockQuantity: stock,
	}
	require.NoError(t, db.Create(listing).Error)
	return listing
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func stockOf(t *testing.T, db *gorm.DB, sellerID, productID uuid.UUID) int {
	t.Helper()
	var listing model.Listing
	require.NoError(t, db.First(&listing, "user_id = ? AND product_id = ?", sellerID, productID).Error)
	return listing.StockQuantity
}
